package numpad

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultPollInterval is the channel drain cadence. ~60 Hz feels
// instantaneous to a human pressing a physical button.
const DefaultPollInterval = 16 * time.Millisecond

// diagInterval is how often capture health counters are logged.
const diagInterval = 3 * time.Second

// Callbacks is the closed set of notifications the service delivers. Nil
// entries are skipped. The vocabulary is intentionally not an open observer
// registry; these three events are all there is.
type Callbacks struct {
	OnButtonPress    func(row, col int)
	OnBackNavigation func()
	OnNumLockChanged func(on bool)
}

// Service owns the Capture Host lifecycle, drains the event channel on a
// fixed schedule, and republishes events to the registered callbacks.
//
// Lifecycle is Stopped -> Running -> Stopped; Start while running and Stop
// while stopped are no-ops.
type Service struct {
	mu          sync.Mutex
	host        Host
	layout      *Layout
	cb          Callbacks
	interval    time.Duration
	log         *logrus.Entry
	passthrough bool
	running     bool
	stop        chan struct{}
	done        chan struct{}
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithPollInterval overrides the drain cadence. Tests use a short interval.
func WithPollInterval(d time.Duration) ServiceOption {
	return func(s *Service) { s.interval = d }
}

// WithLogger overrides the service's log entry.
func WithLogger(log *logrus.Entry) ServiceOption {
	return func(s *Service) { s.log = log }
}

// NewService wires a Capture Host to consumer callbacks.
func NewService(host Host, layout *Layout, cb Callbacks, opts ...ServiceOption) *Service {
	s := &Service{
		host:     host,
		layout:   layout,
		cb:       cb,
		interval: DefaultPollInterval,
		log:      logrus.WithField("component", "numpad"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start brings up the Capture Host and begins polling. On failure the
// service stays stopped and the caller falls back to mouse-only operation.
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}

	if err := s.host.Start(); err != nil {
		return fmt.Errorf("starting capture host: %w", err)
	}
	s.host.State().SetPassthrough(s.passthrough)

	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.pollLoop(s.host.State(), s.stop, s.done)
	s.running = true
	s.log.WithField("interval", s.interval).Info("numpad capture running")
	return nil
}

// Stop shuts down polling and the Capture Host. Synchronous and bounded;
// no-op when already stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	close(s.stop)
	done := s.done
	s.running = false
	s.mu.Unlock()

	<-done
	s.host.Stop()
	s.log.Info("numpad capture stopped")
}

// SetPassthrough lets captured keys reach the foreground application again
// (classification still runs for diagnostics). Callable in any state; the
// flag is applied to the host as soon as it is running. Modal dialogs that
// want literal numeric/arrow input enable this.
func (s *Service) SetPassthrough(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.passthrough = enabled
	if s.running {
		s.host.State().SetPassthrough(enabled)
	}
}

// IsNumLockOn queries the current OS toggle state directly.
func (s *Service) IsNumLockOn() bool {
	return IsNumLockOn()
}

func (s *Service) pollLoop(st *State, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	diag := time.NewTicker(diagInterval)
	defer diag.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.drain(st)
		case <-diag.C:
			s.log.WithFields(logrus.Fields{
				"hook":       st.HookInstalled(),
				"keys":       st.KeysSeen(),
				"numpad":     st.NumpadSeen(),
				"suppressed": st.Suppressed(),
				"overflow":   st.Overflow(),
			}).Debug("capture health")
		}
	}
}

func (s *Service) drain(st *State) {
	for _, scan := range st.Drain() {
		ev, ok := s.layout.Lookup(scan)
		if !ok {
			continue
		}
		switch ev.Kind {
		case EventButtonPress:
			if s.cb.OnButtonPress != nil {
				s.cb.OnButtonPress(ev.Coord.Row, ev.Coord.Col)
			}
		case EventBackNavigation:
			if s.cb.OnBackNavigation != nil {
				s.cb.OnBackNavigation()
			}
		}
	}

	if on, changed := st.TakeNumLockChange(); changed {
		s.log.WithField("on", on).Info("num lock changed")
		if s.cb.OnNumLockChanged != nil {
			s.cb.OnNumLockChanged(on)
		}
	}
}
