package deck

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"numdeck/internal/actions"
	"numdeck/internal/config"
)

// recordingExec captures executed actions instead of running them.
type recordingExec struct {
	mu       sync.Mutex
	executed []config.Action
}

func newTestController(t *testing.T, root *config.Folder) (*Controller, *recordingExec) {
	t.Helper()

	mgr := config.NewManagerWithPath(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, mgr.Update(func(c *config.Config) {
		c.Root = root
	}))

	rec := &recordingExec{}
	exec := actions.NewExecutor()
	exec.Register("test_action", func(params map[string]any) error {
		rec.mu.Lock()
		defer rec.mu.Unlock()
		rec.executed = append(rec.executed, config.Action{Type: "test_action", Params: params})
		return nil
	})

	return NewController(mgr, exec), rec
}

func testTree() *config.Folder {
	return &config.Folder{
		ID:   "root",
		Name: "Home",
		Buttons: []config.Button{
			{Row: 0, Col: 0, Label: "Run", Action: config.Action{
				Type:   "test_action",
				Params: map[string]any{"id": "top"},
			}},
			{Row: 0, Col: 1, Label: "Dev", Action: config.Action{
				Type:   "navigate",
				Params: map[string]any{"folder": "dev"},
			}},
		},
		Children: []*config.Folder{
			{
				ID:   "dev",
				Name: "Dev",
				Buttons: []config.Button{
					{Row: 1, Col: 1, Label: "Build", Action: config.Action{
						Type:   "test_action",
						Params: map[string]any{"id": "nested"},
					}},
				},
			},
		},
	}
}

func TestButtonPressExecutesAction(t *testing.T) {
	c, rec := newTestController(t, testTree())

	c.HandleButtonPress(0, 0)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Len(t, rec.executed, 1)
	assert.Equal(t, "top", rec.executed[0].Params["id"])
}

func TestButtonPressEmptyCellIgnored(t *testing.T) {
	c, rec := newTestController(t, testTree())

	c.HandleButtonPress(2, 2)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Empty(t, rec.executed)
}

func TestNavigateAndBack(t *testing.T) {
	c, rec := newTestController(t, testTree())

	c.HandleButtonPress(0, 1)
	assert.Equal(t, "dev", c.Current().ID)

	// The nested folder's buttons are live now.
	c.HandleButtonPress(1, 1)
	rec.mu.Lock()
	require.Len(t, rec.executed, 1)
	assert.Equal(t, "nested", rec.executed[0].Params["id"])
	rec.mu.Unlock()

	c.HandleBack()
	assert.Equal(t, "root", c.Current().ID)
}

func TestBackAtRootIsNoOp(t *testing.T) {
	c, _ := newTestController(t, testTree())

	c.HandleBack()
	assert.Equal(t, "root", c.Current().ID)
}

func TestNavigateToMissingFolder(t *testing.T) {
	root := testTree()
	root.Buttons = append(root.Buttons, config.Button{
		Row: 1, Col: 0, Action: config.Action{
			Type:   "navigate",
			Params: map[string]any{"folder": "nope"},
		},
	})
	c, _ := newTestController(t, root)

	c.HandleButtonPress(1, 0)
	assert.Equal(t, "root", c.Current().ID, "a dangling navigate stays put")
}

func TestNumLockDrivesVisibility(t *testing.T) {
	c, _ := newTestController(t, testTree())

	var mu sync.Mutex
	var changes []bool
	c.OnVisibilityChanged(func(v bool) {
		mu.Lock()
		defer mu.Unlock()
		changes = append(changes, v)
	})

	assert.False(t, c.Visible())

	// Num Lock off means the deck owns the numpad.
	c.HandleNumLockChanged(false)
	assert.True(t, c.Visible())

	// Repeating the same state fires nothing.
	c.HandleNumLockChanged(false)

	c.HandleNumLockChanged(true)
	assert.False(t, c.Visible())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []bool{true, false}, changes)
}

func TestToggleVisible(t *testing.T) {
	c, _ := newTestController(t, testTree())

	c.ToggleVisible()
	assert.True(t, c.Visible())
	c.ToggleVisible()
	assert.False(t, c.Visible())
}

func TestResetReturnsToRoot(t *testing.T) {
	c, _ := newTestController(t, testTree())

	c.HandleButtonPress(0, 1)
	require.Equal(t, "dev", c.Current().ID)

	var mu sync.Mutex
	var folders []string
	c.OnFolderChanged(func(f *config.Folder) {
		mu.Lock()
		defer mu.Unlock()
		folders = append(folders, f.ID)
	})

	c.Reset()
	assert.Equal(t, "root", c.Current().ID)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"root"}, folders)
}

func TestCallbacksAdapter(t *testing.T) {
	c, rec := newTestController(t, testTree())
	cb := c.Callbacks()

	cb.OnButtonPress(0, 0)
	rec.mu.Lock()
	assert.Len(t, rec.executed, 1)
	rec.mu.Unlock()

	cb.OnNumLockChanged(false)
	assert.True(t, c.Visible())

	cb.OnBackNavigation()
	assert.Equal(t, "root", c.Current().ID)
}
