package scan

import (
	"strings"
	"sync"
	"time"
)

// FlushFunc receives one complete code per physical scan.
type FlushFunc func(code string)

// Buffer coalesces a burst of keystroke-like character events into a single
// code string. It flushes when a terminator arrives (Enter-equivalent) or
// when no character has arrived for the idle duration, whichever happens
// first. Exactly one flush is emitted per scan; blank input is discarded.
type Buffer struct {
	mu     sync.Mutex
	idle   time.Duration
	flush  FlushFunc
	chars  strings.Builder
	timer  *time.Timer
	closed bool
}

// NewBuffer creates a buffer that calls flush with each completed code.
func NewBuffer(idle time.Duration, flush FlushFunc) *Buffer {
	return &Buffer{idle: idle, flush: flush}
}

// Push feeds one character into the buffer. '\r' and '\n' act as
// terminators; any other character resets the idle timer.
func (b *Buffer) Push(r rune) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	if r == '\r' || r == '\n' {
		b.flushLocked()
		return
	}

	b.chars.WriteRune(r)
	b.resetTimerLocked()
}

// Close stops the idle timer and discards any buffered characters. No flush
// is emitted after Close returns.
func (b *Buffer) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.chars.Reset()
}

func (b *Buffer) resetTimerLocked() {
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.idle, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.closed {
			return
		}
		b.flushLocked()
	})
}

func (b *Buffer) flushLocked() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	code := strings.TrimSpace(b.chars.String())
	b.chars.Reset()
	if code == "" {
		return
	}
	b.flush(code)
}
