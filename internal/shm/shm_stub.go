//go:build !windows

package shm

// Region is a stub on non-Windows platforms.
type Region struct{}

// Create is unsupported on this platform.
func Create(name string, size int) (*Region, error) {
	return nil, ErrUnsupported
}

// Open is unsupported on this platform.
func Open(name string, size int) (*Region, error) {
	return nil, ErrUnsupported
}

// Bytes returns nil.
func (r *Region) Bytes() []byte { return nil }

// Close is a no-op.
func (r *Region) Close() error { return nil }
