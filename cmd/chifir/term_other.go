//go:build !linux

package main

// setRawIO is a no-op where raw terminal switching is unsupported; input
// arrives line-buffered.
func setRawIO() (restore func(), err error) {
	restore = func() {}
	return
}
