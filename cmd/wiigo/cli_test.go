package main

import (
	"fmt"
	"os"
	"sync"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openwiimote/wiigo/internal/pkg/wiimote/config"
)

// A signal arriving in headless mode must not touch the absent gui.
func TestHandleSigsWithoutUI(t *testing.T) {
	wg := sync.WaitGroup{}
	wg.Add(1)

	sigs := make(chan os.Signal, 1)
	sigs <- syscall.SIGINT
	close(sigs)

	var canceled bool
	handleSigs(&wg, sigs, func() { canceled = true }, nil, nil)

	wg.Wait()
	assert.True(t, canceled)
}

func TestRawStringLen(t *testing.T) {
	for i, tc := range []struct {
		input    string
		expected int
	}{
		{input: "", expected: 0},
		{input: "a", expected: 1},
		{input: "a\033", expected: 2},
		{input: "a\033[", expected: 3},
		{input: "a\033[2", expected: 4},
		{input: "a\033[2A", expected: 1},
		{input: "a\033[2Aa", expected: 2},
	} {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			l := rawStringLen(tc.input)
			assert.Equal(t, tc.expected, l)
		})
	}
}

func TestLogBuffer(t *testing.T) {
	buf := newLogBuffer(3)

	assert.Len(t, buf.ReadLastMessages(5), 0)

	buf.WriteMessage([]byte("1"))
	buf.WriteMessage([]byte("2"))

	assert.Equal(t, [][]byte{[]byte("1"), []byte("2")}, buf.ReadLastMessages(5))

	buf.WriteMessage([]byte("3"))
	buf.WriteMessage([]byte("4")) // overwrites the oldest

	assert.Equal(t, [][]byte{[]byte("2"), []byte("3"), []byte("4")}, buf.ReadLastMessages(5))
	assert.Equal(t, [][]byte{[]byte("4")}, buf.ReadLastMessages(1))
}

func TestPlayerSlots(t *testing.T) {
	var p playerSlots

	assert.Equal(t, 1, p.acquire())
	assert.Equal(t, 2, p.acquire())
	assert.Equal(t, 3, p.acquire())
	assert.Equal(t, 4, p.acquire())
	assert.Equal(t, 0, p.acquire())

	p.release(2)
	assert.Equal(t, 2, p.acquire())

	p.release(0) // out of range numbers are ignored
	assert.Equal(t, 0, p.acquire())
}

func TestCalibrate(t *testing.T) {
	c := config.Calibration{Min: 0, Max: 63, Flat: 3}

	assert.Equal(t, 0.0, calibrate(c, -5))
	assert.Equal(t, 0.0, calibrate(c, 2))
	assert.Equal(t, 1.0, calibrate(c, 63))
	assert.Equal(t, 1.0, calibrate(c, 100))
	assert.InDelta(t, 0.5, calibrate(c, 33), 0.001)
}
