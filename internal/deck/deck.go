// Package deck turns numpad events into button-deck behavior: executing
// actions, navigating the folder tree and tracking deck visibility.
package deck

import (
	"sync"

	"github.com/sirupsen/logrus"

	"numdeck/internal/actions"
	"numdeck/internal/config"
	"numdeck/internal/numpad"
)

// Controller is the glue between the capture service, the config tree and
// the action executor. One instance per application.
type Controller struct {
	mu      sync.Mutex
	mgr     *config.Manager
	exec    *actions.Executor
	stack   []*config.Folder
	visible bool
	log     *logrus.Entry

	onFolderChanged     func(*config.Folder)
	onVisibilityChanged func(bool)
}

// NewController starts at the config's root folder with the deck hidden.
func NewController(mgr *config.Manager, exec *actions.Executor) *Controller {
	c := &Controller{
		mgr:  mgr,
		exec: exec,
		log:  logrus.WithField("component", "deck"),
	}
	c.Reset()
	return c
}

// OnFolderChanged registers a callback fired whenever the current folder
// changes, for the UI to re-render.
func (c *Controller) OnFolderChanged(fn func(*config.Folder)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onFolderChanged = fn
}

// OnVisibilityChanged registers a callback fired when deck visibility flips.
func (c *Controller) OnVisibilityChanged(fn func(bool)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onVisibilityChanged = fn
}

// Reset returns to the root folder, e.g. after a config reload.
func (c *Controller) Reset() {
	c.mu.Lock()
	root := c.mgr.Get().Root
	c.stack = []*config.Folder{root}
	fn := c.onFolderChanged
	c.mu.Unlock()

	if fn != nil {
		fn(root)
	}
}

// Current returns the folder the deck is showing.
func (c *Controller) Current() *config.Folder {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stack[len(c.stack)-1]
}

// Visible reports whether the deck is active (NumLock off).
func (c *Controller) Visible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visible
}

// HandleButtonPress runs the button at (row, col) in the current folder.
// "navigate" actions descend into the referenced child folder; everything
// else goes to the action executor. Empty cells are ignored.
func (c *Controller) HandleButtonPress(row, col int) {
	c.mu.Lock()
	current := c.stack[len(c.stack)-1]
	btn := current.ButtonAt(row, col)
	if btn == nil {
		c.mu.Unlock()
		return
	}

	if btn.Action.Type == "navigate" {
		c.navigateLocked(btn)
		return
	}
	action := btn.Action
	label := btn.Label
	c.mu.Unlock()

	c.log.WithFields(logrus.Fields{"button": label, "type": action.Type}).
		Info("button pressed")
	if err := c.exec.Execute(action); err != nil {
		c.log.WithError(err).WithField("button", label).Error("action failed")
	}
}

// navigateLocked pushes the target folder. Called with c.mu held; unlocks it.
func (c *Controller) navigateLocked(btn *config.Button) {
	folderID, _ := btn.Action.Params["folder"].(string)
	target := c.stack[0].Find(folderID)
	if target == nil {
		c.mu.Unlock()
		c.log.WithField("folder", folderID).Warn("navigate target not found")
		return
	}
	c.stack = append(c.stack, target)
	fn := c.onFolderChanged
	c.mu.Unlock()

	c.log.WithField("folder", target.Name).Info("entered folder")
	if fn != nil {
		fn(target)
	}
}

// HandleBack pops one folder level. At the root it does nothing.
func (c *Controller) HandleBack() {
	c.mu.Lock()
	if len(c.stack) <= 1 {
		c.mu.Unlock()
		return
	}
	c.stack = c.stack[:len(c.stack)-1]
	current := c.stack[len(c.stack)-1]
	fn := c.onFolderChanged
	c.mu.Unlock()

	c.log.WithField("folder", current.Name).Info("back to folder")
	if fn != nil {
		fn(current)
	}
}

// HandleNumLockChanged ties deck visibility to the NumLock toggle: off
// means the numpad belongs to the deck, so the deck shows.
func (c *Controller) HandleNumLockChanged(on bool) {
	c.setVisible(!on)
}

// ToggleVisible flips visibility, e.g. from the global hotkey or tray.
func (c *Controller) ToggleVisible() {
	c.mu.Lock()
	visible := !c.visible
	c.mu.Unlock()
	c.setVisible(visible)
}

func (c *Controller) setVisible(visible bool) {
	c.mu.Lock()
	if c.visible == visible {
		c.mu.Unlock()
		return
	}
	c.visible = visible
	fn := c.onVisibilityChanged
	c.mu.Unlock()

	c.log.WithField("visible", visible).Debug("deck visibility changed")
	if fn != nil {
		fn(visible)
	}
}

// Callbacks adapts the controller to the capture service's callback set.
func (c *Controller) Callbacks() numpad.Callbacks {
	return numpad.Callbacks{
		OnButtonPress:    c.HandleButtonPress,
		OnBackNavigation: c.HandleBack,
		OnNumLockChanged: c.HandleNumLockChanged,
	}
}
