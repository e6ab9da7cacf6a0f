package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcherReloadsOnFileChange(t *testing.T) {
	m := tempManager(t)
	require.NoError(t, m.Save())

	reloaded := make(chan struct{}, 1)
	m.OnChanged(func() {
		select {
		case reloaded <- struct{}{}:
		default:
		}
	})

	w, err := NewWatcher(m)
	require.NoError(t, err)
	defer w.Close()

	cfg := Default()
	cfg.Settings.Theme = "light"
	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(m.Path(), data, 0o644))

	select {
	case <-reloaded:
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not reload config")
	}
	require.Equal(t, "light", m.Get().Settings.Theme)
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	m := tempManager(t)
	require.NoError(t, m.Save())

	changed := make(chan struct{}, 1)
	m.OnChanged(func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})

	w, err := NewWatcher(m)
	require.NoError(t, err)
	defer w.Close()

	other := m.Path() + ".bak"
	require.NoError(t, os.WriteFile(other, []byte("{}"), 0o644))

	select {
	case <-changed:
		t.Fatal("unrelated file triggered a reload")
	case <-time.After(500 * time.Millisecond):
	}
}
