package io

import (
	"io"
)

// Keys is a Keyboard fed from a byte stream. A pump goroutine copies the
// stream into a small buffer; Poll drains the buffer and keeps the newest
// byte, so only the last key pressed between polls is seen.
type Keys struct {
	buffer chan byte
}

var _ Keyboard = (*Keys)(nil)

// NewKeys starts a keyboard pump over the input stream. The pump stops at
// the first read error (including EOF).
func NewKeys(input io.Reader) (kc *Keys) {
	kc = &Keys{
		buffer: make(chan byte, 64),
	}
	go kc.pump(input)

	return
}

func (kc *Keys) pump(input io.Reader) {
	var one [1]byte
	for {
		n, err := input.Read(one[:])
		if n > 0 {
			for {
				select {
				case kc.buffer <- one[0]:
				default:
					// Full; drop the oldest key and retry. A
					// concurrent Poll may have emptied the buffer
					// already, so the drop must not block.
					select {
					case <-kc.buffer:
					default:
					}
					continue
				}
				break
			}
		}
		if err != nil {
			return
		}
	}
}

// Poll returns the most recent key code, 0 if none arrived since the
// last call.
func (kc *Keys) Poll() (key uint32) {
	for {
		select {
		case b := <-kc.buffer:
			key = uint32(b)
		default:
			return
		}
	}
}

// Queue is an in-memory Keyboard for tests and canned input. Each Poll
// delivers one queued key in press order, then 0 when empty.
type Queue struct {
	keys []uint32
}

var _ Keyboard = (*Queue)(nil)

// Press appends a key code to the queue.
func (kc *Queue) Press(keys ...uint32) {
	kc.keys = append(kc.keys, keys...)
}

// Poll returns the next queued key code, 0 when the queue is empty.
func (kc *Queue) Poll() (key uint32) {
	if len(kc.keys) > 0 {
		key = kc.keys[0]
		kc.keys = kc.keys[1:]
	}

	return
}
