package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncode(t *testing.T) {
	assert.Equal(t, []byte("plain text"), encode("plain text"))
	assert.Equal(t, []byte{0, 3, 7}, encode("▁▄█"))
	assert.Equal(t, []byte{'h', 'i', ' ', 0}, encode("hi ❤"))
}

func TestHaveExitMessage(t *testing.T) {
	var cfg ScreenConfig
	assert.False(t, cfg.HaveExitMessage())

	cfg.ExitMessage[2] = "bye"
	assert.True(t, cfg.HaveExitMessage())
}
