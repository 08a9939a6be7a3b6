//go:build nogui || !sdl

package main

import (
	"errors"

	"github.com/m68kasm/m68kasm/exec"
)

func openDisplay(enabled bool) (exec.Display, error) {
	if enabled {
		return nil, errors.New("graphics requested but this binary was built without the sdl build tag")
	}
	return exec.NullDisplay{}, nil
}
