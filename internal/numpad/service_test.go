package numpad

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHost stands in for the Windows capture host so the service's polling
// and dispatch can be tested anywhere.
type fakeHost struct {
	st       *State
	startErr error
	started  int
	stopped  int
}

func newFakeHost() *fakeHost {
	return &fakeHost{st: NewState()}
}

func (h *fakeHost) Start() error {
	if h.startErr != nil {
		return h.startErr
	}
	h.started++
	return nil
}

func (h *fakeHost) Stop()         { h.stopped++ }
func (h *fakeHost) State() *State { return h.st }

// eventRecorder collects callback invocations under a lock.
type eventRecorder struct {
	mu      sync.Mutex
	presses []Coordinate
	backs   int
	numLock []bool
}

func (r *eventRecorder) callbacks() Callbacks {
	return Callbacks{
		OnButtonPress: func(row, col int) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.presses = append(r.presses, Coordinate{Row: row, Col: col})
		},
		OnBackNavigation: func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.backs++
		},
		OnNumLockChanged: func(on bool) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.numLock = append(r.numLock, on)
		},
	}
}

func (r *eventRecorder) snapshot() ([]Coordinate, int, []bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Coordinate(nil), r.presses...), r.backs, append([]bool(nil), r.numLock...)
}

func newTestService(h Host, rec *eventRecorder) *Service {
	return NewService(h, DefaultLayout(), rec.callbacks(), WithPollInterval(time.Millisecond))
}

func TestServiceDeliversButtonPressOnce(t *testing.T) {
	host := newFakeHost()
	rec := &eventRecorder{}
	svc := newTestService(host, rec)

	require.NoError(t, svc.Start())
	defer svc.Stop()

	host.st.Publish(ScanNumpad7)

	require.Eventually(t, func() bool {
		presses, _, _ := rec.snapshot()
		return len(presses) == 1
	}, time.Second, time.Millisecond)

	presses, _, _ := rec.snapshot()
	assert.Equal(t, []Coordinate{{Row: 0, Col: 0}}, presses)

	// No re-delivery on later polls.
	time.Sleep(20 * time.Millisecond)
	presses, _, _ = rec.snapshot()
	assert.Len(t, presses, 1)
}

func TestServiceDeliversBackNavigation(t *testing.T) {
	host := newFakeHost()
	rec := &eventRecorder{}
	svc := newTestService(host, rec)

	require.NoError(t, svc.Start())
	defer svc.Stop()

	host.st.Publish(ScanNumpad0)

	require.Eventually(t, func() bool {
		_, backs, _ := rec.snapshot()
		return backs == 1
	}, time.Second, time.Millisecond)
}

func TestServiceDeliversNumLockChange(t *testing.T) {
	host := newFakeHost()
	rec := &eventRecorder{}
	svc := newTestService(host, rec)

	require.NoError(t, svc.Start())
	defer svc.Stop()

	host.st.PublishNumLockChange(true)

	require.Eventually(t, func() bool {
		_, _, numLock := rec.snapshot()
		return len(numLock) == 1
	}, time.Second, time.Millisecond)

	_, _, numLock := rec.snapshot()
	assert.Equal(t, []bool{true}, numLock)
}

func TestServicePreservesEventOrder(t *testing.T) {
	host := newFakeHost()
	rec := &eventRecorder{}
	svc := newTestService(host, rec)

	require.NoError(t, svc.Start())
	defer svc.Stop()

	host.st.Publish(ScanNumpad7)
	host.st.Publish(ScanNumpad5)
	host.st.Publish(ScanNumpad3)

	require.Eventually(t, func() bool {
		presses, _, _ := rec.snapshot()
		return len(presses) == 3
	}, time.Second, time.Millisecond)

	presses, _, _ := rec.snapshot()
	assert.Equal(t, []Coordinate{{0, 0}, {1, 1}, {2, 2}}, presses)
}

func TestServiceStartFailure(t *testing.T) {
	host := newFakeHost()
	host.startErr = errors.New("hook install failed")
	svc := newTestService(host, &eventRecorder{})

	err := svc.Start()
	require.Error(t, err)
	assert.ErrorContains(t, err, "starting capture host")

	// Stop on a never-started service is a no-op, not a hang or panic.
	svc.Stop()
	assert.Zero(t, host.stopped)
}

func TestServiceStartStopIdempotent(t *testing.T) {
	host := newFakeHost()
	svc := newTestService(host, &eventRecorder{})

	require.NoError(t, svc.Start())
	require.NoError(t, svc.Start())
	assert.Equal(t, 1, host.started)

	svc.Stop()
	svc.Stop()
	assert.Equal(t, 1, host.stopped)

	// A stopped service can start again.
	require.NoError(t, svc.Start())
	assert.Equal(t, 2, host.started)
	svc.Stop()
}

func TestServicePassthroughAppliedToHost(t *testing.T) {
	host := newFakeHost()
	svc := newTestService(host, &eventRecorder{})

	// Set before start; applied when the host comes up.
	svc.SetPassthrough(true)
	require.NoError(t, svc.Start())
	defer svc.Stop()
	assert.True(t, host.st.Passthrough())

	svc.SetPassthrough(false)
	assert.False(t, host.st.Passthrough())
}

func TestServiceStopDrainsNothingAfter(t *testing.T) {
	host := newFakeHost()
	rec := &eventRecorder{}
	svc := newTestService(host, rec)

	require.NoError(t, svc.Start())
	svc.Stop()

	host.st.Publish(ScanNumpad7)
	time.Sleep(20 * time.Millisecond)

	presses, _, _ := rec.snapshot()
	assert.Empty(t, presses, "a stopped service must not dispatch")
}
