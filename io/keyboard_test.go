package io

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQueue(t *testing.T) {
	assert := assert.New(t)

	kc := &Queue{}

	assert.Equal(uint32(0), kc.Poll())

	kc.Press('a', 'b')
	kc.Press('c')

	assert.Equal(uint32('a'), kc.Poll())
	assert.Equal(uint32('b'), kc.Poll())
	assert.Equal(uint32('c'), kc.Poll())
	assert.Equal(uint32(0), kc.Poll())
}

// pollFor polls until a non-zero key arrives or the deadline passes.
func pollFor(kc *Keys, deadline time.Duration) (key uint32) {
	limit := time.Now().Add(deadline)
	for time.Now().Before(limit) {
		key = kc.Poll()
		if key != 0 {
			return
		}
		time.Sleep(time.Millisecond)
	}

	return
}

func TestKeys(t *testing.T) {
	assert := assert.New(t)

	kc := NewKeys(strings.NewReader("abc"))

	// Wait for the pump to deliver all three bytes, then only the
	// newest one is seen.
	for len(kc.buffer) < 3 {
		time.Sleep(time.Millisecond)
	}

	assert.Equal(uint32('c'), kc.Poll())
	assert.Equal(uint32(0), kc.Poll())
}

func TestKeysPollContention(t *testing.T) {
	assert := assert.New(t)

	// A single-slot buffer that is already full forces every pump
	// iteration through the drop-oldest recovery while Poll empties the
	// buffer underneath it. The pump must keep making progress and
	// deliver the final byte.
	kc := &Keys{buffer: make(chan byte, 1)}
	kc.buffer <- 'a'

	done := make(chan struct{})
	go func() {
		kc.pump(strings.NewReader(strings.Repeat("x", 100) + "z"))
		close(done)
	}()

	limit := time.Now().Add(5 * time.Second)
	var key uint32
	for time.Now().Before(limit) {
		key = kc.Poll()
		if key == 'z' {
			break
		}
	}
	assert.Equal(uint32('z'), key)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("pump stalled in drop-oldest recovery")
	}
}

func TestKeysOverflow(t *testing.T) {
	assert := assert.New(t)

	// More input than the buffer holds; the oldest keys are dropped and
	// the final byte always survives.
	input := strings.Repeat("x", 200) + "z"
	kc := NewKeys(strings.NewReader(input))

	limit := time.Now().Add(time.Second)
	var key uint32
	for time.Now().Before(limit) {
		key = pollFor(kc, time.Second)
		if key == 'z' {
			break
		}
	}

	assert.Equal(uint32('z'), key)
}
