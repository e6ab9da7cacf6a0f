// numdeck is an on-screen button deck driven by the numeric keypad. With
// NumLock off, numpad digits trigger the buttons of the current folder and
// numpad 0 navigates back; NumLock on returns the keypad to normal typing.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sirupsen/logrus"

	"numdeck/internal/actions"
	"numdeck/internal/autostart"
	"numdeck/internal/config"
	"numdeck/internal/deck"
	"numdeck/internal/hotkey"
	"numdeck/internal/numpad"
	"numdeck/internal/tray"
)

const version = "1.0.0"

var (
	showVersion = flag.Bool("version", false, "print version and exit")
	configPath  = flag.String("config", "", "override the config file path")
	widgetMode  = flag.Bool("widget", false, "mouse-only mode, no keyboard capture")
	hookHelper  = flag.String("hook-helper", "", "path to the numdeck-hook helper binary")
	verbose     = flag.Bool("verbose", false, "enable debug logging")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("numdeck %s\n", version)
		return
	}

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if err := run(); err != nil {
		logrus.WithError(err).Fatal("numdeck failed")
	}
}

func run() error {
	mgr, err := newConfigManager()
	if err != nil {
		return err
	}
	if err := mgr.Load(); err != nil {
		logrus.WithError(err).Warn("config load failed, using defaults")
	}
	logrus.WithField("path", mgr.Path()).Info("config loaded")

	watcher, err := config.NewWatcher(mgr)
	if err != nil {
		logrus.WithError(err).Warn("config watcher unavailable")
	} else {
		defer watcher.Close()
	}

	executor := actions.NewExecutor()
	controller := deck.NewController(mgr, executor)
	mgr.OnChanged(controller.Reset)

	settings := mgr.Get().Settings

	var svc *numpad.Service
	if !*widgetMode && settings.CaptureMode != "widget" {
		svc = numpad.NewService(selectHost(), numpad.DefaultLayout(), controller.Callbacks())
		if err := svc.Start(); err != nil {
			logrus.WithError(err).Warn("numpad capture unavailable, running mouse-only")
			svc = nil
		} else {
			defer svc.Stop()
			// Deck visibility follows the toggle from the start.
			controller.HandleNumLockChanged(svc.IsNumLockOn())
		}
	} else {
		logrus.Info("widget mode, numpad capture disabled")
	}

	hotkeys := hotkey.NewManager()
	if err := hotkeys.Register(settings.ToggleHotkey, controller.ToggleVisible); err != nil {
		logrus.WithError(err).Warn("invalid toggle hotkey")
	}
	if err := hotkeys.Start(); err != nil {
		logrus.WithError(err).Warn("global hotkey registration failed")
	} else {
		defer hotkeys.Stop()
	}

	tr := tray.New("NumDeck")
	buildMenu(tr, svc, mgr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logrus.Info("shutting down")
		tr.Stop()
	}()

	tr.Run()
	return nil
}

func newConfigManager() (*config.Manager, error) {
	if *configPath != "" {
		return config.NewManagerWithPath(*configPath), nil
	}
	return config.NewManager()
}

// selectHost prefers the out-of-process hook helper when its binary is
// available, and falls back to the in-process hook otherwise.
func selectHost() numpad.Host {
	layout := numpad.DefaultLayout()

	helperPath := *hookHelper
	if helperPath == "" {
		if exe, err := os.Executable(); err == nil {
			candidate := filepath.Join(filepath.Dir(exe), numpad.HelperExeName)
			if _, err := os.Stat(candidate); err == nil {
				helperPath = candidate
			}
		}
	}

	if helperPath != "" {
		logrus.WithField("helper", helperPath).Info("using out-of-process capture host")
		return numpad.NewHelperHost(helperPath, layout)
	}
	logrus.Info("using in-process capture host")
	return numpad.NewHost(layout)
}

func buildMenu(tr *tray.Tray, svc *numpad.Service, mgr *config.Manager) {
	passthrough := false
	passthroughID := tr.AddCheckItem("Passthrough", passthrough, func() {})
	tr.AddSeparator()
	autostartID := tr.AddCheckItem("Start on Login", autostart.IsEnabled(), func() {})
	tr.AddMenuItem("Reload Config", func() {
		if err := mgr.Reload(); err != nil {
			logrus.WithError(err).Error("config reload failed")
		}
	})
	tr.AddSeparator()
	tr.AddMenuItem("Quit", tr.Stop)

	// Rebind the checkbox callbacks now that the IDs exist.
	rebindCheck(tr, passthroughID, func() bool {
		passthrough = !passthrough
		if svc != nil {
			svc.SetPassthrough(passthrough)
		}
		return passthrough
	})
	rebindCheck(tr, autostartID, func() bool {
		var err error
		if autostart.IsEnabled() {
			err = autostart.Disable()
		} else {
			err = autostart.Enable()
		}
		if err != nil {
			logrus.WithError(err).Error("autostart toggle failed")
		}
		return autostart.IsEnabled()
	})
}

func rebindCheck(tr *tray.Tray, id int, toggle func() bool) {
	tr.SetItemCallback(id, func() {
		tr.SetItemChecked(id, toggle())
	})
}
