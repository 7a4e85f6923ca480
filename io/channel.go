// Package io provides the display and keyboard adapters for the Chifir
// machine. Both adapters are invoked synchronously from the fetch-execute
// cycle: the drw opcode hands the Display a frame buffer snapshot, and
// the key opcode polls the Keyboard without blocking.
package io

// Display renders a frame buffer of 32-bit words, one word per pixel.
type Display interface {
	// Refresh redraws the display from a frame buffer snapshot.
	Refresh(fb []uint32, width, height int) error
}

// Keyboard reports key presses to the machine.
type Keyboard interface {
	// Poll returns the most recent key code, or 0 if none has arrived
	// since the last call. Poll never blocks.
	Poll() uint32
}
