// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os/exec"
	"runtime"
)

// openCommand returns the command that opens path with the desktop's
// default application.
func openCommand(goos, path string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "cmd", []string{"/c", "start", "", path}
	default:
		return "xdg-open", []string{path}
	}
}

// openFile starts the viewer and returns without waiting for it.
func openFile(path string) error {
	name, args := openCommand(runtime.GOOS, path)
	return exec.Command(name, args...).Start()
}
