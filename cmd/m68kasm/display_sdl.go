//go:build !nogui && sdl

package main

import "github.com/m68kasm/m68kasm/exec"

func openDisplay(enabled bool) (exec.Display, error) {
	if !enabled {
		return exec.NullDisplay{}, nil
	}
	return exec.NewSDLDisplay(256, 224, "m68kasm")
}
