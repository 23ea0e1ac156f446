package main

import "sync"

// logBuffer keeps the last n log entries for the TUI scrollback.
type logBuffer struct {
	mu      sync.Mutex
	entries [][]byte
	next    int
	filled  bool
}

func newLogBuffer(size int) *logBuffer {
	if size < 1 {
		size = 1
	}
	return &logBuffer{entries: make([][]byte, size)}
}

func (b *logBuffer) WriteMessage(msg []byte) {
	b.mu.Lock()
	b.entries[b.next] = msg
	b.next++
	if b.next == len(b.entries) {
		b.next = 0
		b.filled = true
	}
	b.mu.Unlock()
}

// ReadLastMessages returns up to n most recent entries, oldest first.
func (b *logBuffer) ReadLastMessages(n int) [][]byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	stored := b.next
	if b.filled {
		stored = len(b.entries)
	}
	if n > stored {
		n = stored
	}

	var out = make([][]byte, 0, n)
	for i := 0; i < n; i++ {
		idx := (b.next - n + i + len(b.entries)) % len(b.entries)
		out = append(out, b.entries[idx])
	}
	return out
}
