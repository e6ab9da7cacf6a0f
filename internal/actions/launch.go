package actions

import (
	"fmt"
	"os/exec"
	"runtime"
)

// launchApp starts a program detached from the deck process.
//
// Params: "path" (required), "args" (optional string list).
func launchApp(params map[string]any) error {
	path, err := stringParam(params, "path")
	if err != nil {
		return err
	}
	args := stringSliceParam(params, "args")

	cmd := exec.Command(expandHome(path), args...)
	hideConsole(cmd)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launching %q: %w", path, err)
	}
	// The child owns its own lifetime; reap it so it never zombies.
	go cmd.Wait()
	return nil
}

// runCommand runs a shell command line and waits for it to finish.
//
// Params: "command" (required).
func runCommand(params map[string]any) error {
	line, err := stringParam(params, "command")
	if err != nil {
		return err
	}

	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.Command("cmd", "/C", line)
	} else {
		cmd = exec.Command("sh", "-c", line)
	}
	hideConsole(cmd)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("command failed: %w (output: %s)", err, out)
	}
	return nil
}
