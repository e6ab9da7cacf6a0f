package actions

import (
	"os"
	"path/filepath"
	"strings"

	"numdeck/internal/osutils"
)

// openTarget opens a URL (or any shell-openable target) with the default
// handler.
//
// Params: "url" (required).
func openTarget(params map[string]any) error {
	url, err := stringParam(params, "url")
	if err != nil {
		return err
	}
	return osutils.ShellOpen(url)
}

// openFolder opens a directory in the system file manager.
//
// Params: "path" (required). A leading "~" expands to the home directory.
func openFolder(params map[string]any) error {
	path, err := stringParam(params, "path")
	if err != nil {
		return err
	}
	return osutils.ShellOpen(expandHome(path))
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
