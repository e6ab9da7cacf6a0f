//go:build windows

package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/windows"

	"numdeck/internal/numpad"
	"numdeck/internal/shm"
)

func run(parentPID int, name string, layout *numpad.Layout) error {
	if name == "" {
		name = numpad.ShmName
	}

	region, err := shm.Create(name, numpad.StateSize)
	if err != nil {
		return fmt.Errorf("creating channel region: %w", err)
	}
	defer region.Close()

	st, err := numpad.StateFromBytes(region.Bytes())
	if err != nil {
		return err
	}
	st.SetRunning(true)
	st.SetNumLockOff(!numpad.IsNumLockOn())

	loop := numpad.NewCaptureLoop(st, layout)
	go loop.Run()

	if err := <-loop.Installed(); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"shm": name, "parent": parentPID}).
		Info("keyboard hook installed")

	go watchParent(parentPID, loop)

	<-loop.Done()
	logrus.Info("capture helper exiting")
	return nil
}

// watchParent stops the loop when the owning process dies. A global keyboard
// hook must never outlive the application it serves.
func watchParent(pid int, loop *numpad.CaptureLoop) {
	if pid <= 0 {
		return
	}
	h, err := windows.OpenProcess(windows.SYNCHRONIZE, false, uint32(pid))
	if err != nil {
		logrus.WithError(err).WithField("pid", pid).Warn("cannot watch parent process")
		return
	}
	defer windows.CloseHandle(h)

	windows.WaitForSingleObject(h, windows.INFINITE)
	logrus.WithField("pid", pid).Info("parent process exited")
	loop.Stop()
}
