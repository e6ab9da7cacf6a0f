// Package shm provides named shared-memory regions, the transport for the
// channel between numdeck and its out-of-process capture helper.
package shm

import "errors"

// ErrUnsupported is returned on platforms without named shared memory.
var ErrUnsupported = errors.New("shared memory is only supported on windows")
