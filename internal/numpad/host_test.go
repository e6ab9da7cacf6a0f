package numpad

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Host selection in cmd/numdeck looks for the helper binary next to the main
// executable on every platform, so the naming constants must be visible
// outside the Windows-only files.
func TestHelperNamingConstants(t *testing.T) {
	assert.Equal(t, "numdeck-hook.exe", HelperExeName)
	assert.Equal(t, `Local\NumdeckNumpadHook`, ShmName)
}

func TestStubHostsDegradeGracefully(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("the real hosts run here; stubs are for other platforms")
	}
	// Off Windows both constructors must still exist, hand out channel state,
	// and fail Start with the typed error so the caller goes mouse-only.
	for _, h := range []Host{NewHost(DefaultLayout()), NewHelperHost(HelperExeName, DefaultLayout())} {
		assert.NotNil(t, h.State())
		assert.ErrorIs(t, h.Start(), ErrUnsupported)
		h.Stop()
	}
}
