// Package outbuf provides the mutex-guarded output accumulator shared
// between a session's background reader and its caller. The producer
// appends chunks as they arrive; the consumer takes everything seen so
// far in one atomic get-and-clear, so no text is ever delivered twice
// or dropped between an append and a later drain.
package outbuf

import (
	"strings"
	"sync"
)

// Buffer is an append-only text accumulator with a drain-and-clear read.
// The zero value is ready to use.
type Buffer struct {
	mu sync.Mutex
	sb strings.Builder
}

// Append adds text to the buffer. Called by the producer side only.
func (b *Buffer) Append(text string) {
	if text == "" {
		return
	}
	b.mu.Lock()
	b.sb.WriteString(text)
	b.mu.Unlock()
}

// Drain returns everything appended since the last Drain and resets the
// buffer. A subsequent Drain with no intervening Append returns "".
func (b *Buffer) Drain() string {
	b.mu.Lock()
	out := b.sb.String()
	b.sb.Reset()
	b.mu.Unlock()
	return out
}

// Len reports the number of buffered bytes not yet drained.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sb.Len()
}
