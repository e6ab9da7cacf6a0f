// Package tray provides system tray functionality using getlantern/systray.
package tray

import (
	"encoding/binary"

	"github.com/getlantern/systray"
)

// MenuItem represents a menu item
type MenuItem struct {
	ID        int
	Title     string
	Checkable bool
	Checked   bool
	Callback  func()
	item      *systray.MenuItem
}

// Tray manages the system tray icon and menu
type Tray struct {
	items   []*MenuItem
	onReady func()
	onExit  func()
	readyCh chan struct{}
	quitCh  chan struct{}
}

// New creates a new system tray
func New(tooltip string) *Tray {
	t := &Tray{
		items:   make([]*MenuItem, 0),
		readyCh: make(chan struct{}),
		quitCh:  make(chan struct{}),
	}

	t.onReady = func() {
		systray.SetTitle("NumDeck")
		systray.SetTooltip(tooltip)
		systray.SetIcon(getIcon())
		close(t.readyCh)
	}

	t.onExit = func() {
		close(t.quitCh)
	}

	return t
}

// AddMenuItem adds a menu item to the tray
func (t *Tray) AddMenuItem(title string, callback func()) int {
	id := len(t.items)
	t.items = append(t.items, &MenuItem{
		ID:       id,
		Title:    title,
		Callback: callback,
	})
	return id
}

// AddCheckItem adds a checkable menu item with an initial state. The
// callback toggles external state; call SetItemChecked to reflect it back.
func (t *Tray) AddCheckItem(title string, checked bool, callback func()) int {
	id := len(t.items)
	t.items = append(t.items, &MenuItem{
		ID:        id,
		Title:     title,
		Checkable: true,
		Checked:   checked,
		Callback:  callback,
	})
	return id
}

// SetItemCallback replaces an item's click callback. Only valid before Run.
func (t *Tray) SetItemCallback(id int, callback func()) {
	if id >= 0 && id < len(t.items) && t.items[id] != nil {
		t.items[id].Callback = callback
	}
}

// AddSeparator adds a separator to the menu
func (t *Tray) AddSeparator() {
	t.items = append(t.items, nil) // nil indicates separator
}

// SetItemChecked sets the checked state of a menu item
func (t *Tray) SetItemChecked(id int, checked bool) {
	if id >= 0 && id < len(t.items) && t.items[id] != nil {
		t.items[id].Checked = checked
		if t.items[id].item != nil {
			if checked {
				t.items[id].item.Check()
			} else {
				t.items[id].item.Uncheck()
			}
		}
	}
}

// Run starts the tray event loop (blocks)
func (t *Tray) Run() {
	systray.Run(t.setupMenu, t.onExit)
}

// setupMenu is called when systray is ready
func (t *Tray) setupMenu() {
	t.onReady()

	// Wait for ready signal
	<-t.readyCh

	// Create menu items
	for _, menuItem := range t.items {
		if menuItem == nil {
			// Separator
			systray.AddSeparator()
			continue
		}

		var item *systray.MenuItem
		if menuItem.Checkable {
			item = systray.AddMenuItemCheckbox(menuItem.Title, "", menuItem.Checked)
		} else {
			item = systray.AddMenuItem(menuItem.Title, "")
		}
		menuItem.item = item

		// Handle clicks in goroutine
		if menuItem.Callback != nil {
			go func(mi *MenuItem) {
				for {
					select {
					case <-mi.item.ClickedCh:
						mi.Callback()
					case <-t.quitCh:
						return
					}
				}
			}(menuItem)
		}
	}
}

// Stop stops the tray
func (t *Tray) Stop() {
	systray.Quit()
}

// getIcon renders the tray icon: a 3x3 grid of squares, the deck's button
// layout, as a 16x16 32-bit ICO built in memory.
func getIcon() []byte {
	const (
		size      = 16
		pixBytes  = size * size * 4
		maskBytes = size * 4 // 1bpp AND mask, rows padded to 32 bits
		imgBytes  = 40 + pixBytes + maskBytes
	)
	icon := make([]byte, 22+imgBytes)

	// ICONDIR + one directory entry.
	icon[2] = 1 // type: icon
	icon[4] = 1 // image count
	icon[6] = size
	icon[7] = size
	icon[10] = 1  // color planes
	icon[12] = 32 // bits per pixel
	binary.LittleEndian.PutUint32(icon[14:], imgBytes)
	binary.LittleEndian.PutUint32(icon[18:], 22)

	// BITMAPINFOHEADER; height is doubled to cover the AND mask.
	bmp := icon[22:]
	binary.LittleEndian.PutUint32(bmp[0:], 40)
	binary.LittleEndian.PutUint32(bmp[4:], size)
	binary.LittleEndian.PutUint32(bmp[8:], size*2)
	binary.LittleEndian.PutUint16(bmp[12:], 1)
	binary.LittleEndian.PutUint16(bmp[14:], 32)
	binary.LittleEndian.PutUint32(bmp[20:], pixBytes+maskBytes)

	// Nine 4px buttons with 1px gutters. Pixel rows are stored bottom-up
	// in BGRA; transparency comes from the alpha channel, so the AND mask
	// stays zero.
	pix := bmp[40:]
	for _, cy := range []int{1, 6, 11} {
		for _, cx := range []int{1, 6, 11} {
			for y := cy; y < cy+4; y++ {
				for x := cx; x < cx+4; x++ {
					off := ((size-1-y)*size + x) * 4
					pix[off] = 0xE0   // blue
					pix[off+1] = 0xC8 // green
					pix[off+2] = 0x46 // red
					pix[off+3] = 0xFF // alpha
				}
			}
		}
	}
	return icon
}
