package io

import (
	"bytes"
	"fmt"
	"io"
)

// Sixel control sequences.
const (
	SIXEL_BEGIN = "\x1bPq" // Enter sixel graphics mode.
	SIXEL_END   = "\x1b\\" // Return the terminal to normal mode.
	CURSOR_HOME = "\x1b[1;1H"
)

// Sixel encodes a frame buffer as a sixel pixel stream: six rows per
// output band, one bit per pixel, any non-zero word lit. The optional
// border frames the image with underscore, tilde and at-sign characters.
func Sixel(fb []uint32, width, height int, border bool) string {
	var pixels []byte
	row := 0

	if border {
		for range width + 2 {
			pixels = append(pixels, '_')
		}
		pixels = append(pixels, '$', '-')
	}

	for row < height {
		if border {
			pixels = append(pixels, '~')
		}

		for x := range width {
			var b byte

			for y := range 6 {
				offset := x + ((row + y) * width)
				if offset < len(fb) && fb[offset] > 0 {
					b |= 1 << y
				}
			}

			pixels = append(pixels, b+63)
		}

		if border {
			pixels = append(pixels, '~')
		}

		// "$-" advances to the next six-pixel band.
		pixels = append(pixels, '$', '-')
		row += 6
	}

	if border {
		for range width + 2 {
			pixels = append(pixels, '@')
		}
		pixels = append(pixels, '$', '-')
	}

	return string(pixels)
}

// Terminal is a Display rendering to a terminal that supports the sixel
// graphics protocol. The most recent frame stays readable through Frame
// even when no writer is connected.
type Terminal struct {
	Output io.Writer // Destination terminal; nil renders in memory only.
	Border bool      // Frame the image with a border.

	frame []byte
}

var _ Display = (*Terminal)(nil)

// Refresh renders the frame buffer and writes it to the output terminal.
func (tc *Terminal) Refresh(fb []uint32, width, height int) (err error) {
	buffer := &bytes.Buffer{}
	fmt.Fprintf(buffer, "%s%s%s%s",
		CURSOR_HOME,
		SIXEL_BEGIN,
		Sixel(fb, width, height, tc.Border),
		SIXEL_END)
	tc.frame = buffer.Bytes()

	if tc.Output != nil {
		_, err = tc.Output.Write(tc.frame)
	}

	return
}

// Frame returns the most recently rendered frame.
func (tc *Terminal) Frame() []byte {
	return tc.frame
}
