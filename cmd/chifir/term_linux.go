//go:build linux

package main

import (
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// setRawIO switches stdin to raw, unechoed input and returns a restore
// function.
func setRawIO() (restore func(), err error) {
	var tios unix.Termios
	err = termios.Tcgetattr(os.Stdin.Fd(), &tios)
	if err != nil {
		return
	}

	raw := tios
	raw.Lflag &^= unix.ICANON | unix.ECHO | unix.ISIG
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	err = termios.Tcsetattr(os.Stdin.Fd(), termios.TCSANOW, &raw)
	if err != nil {
		// Try to restore as it was if it errors.
		termios.Tcsetattr(os.Stdin.Fd(), termios.TCSANOW, &tios)
		return
	}

	restore = func() {
		termios.Tcsetattr(os.Stdin.Fd(), termios.TCSANOW, &tios)
	}

	return
}
