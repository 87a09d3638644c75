package busy

import (
	"fmt"
	"strings"
	"sync"
)

// Mode selects how overlapping acquisitions interact.
type Mode string

const (
	// ModeCounted keeps the indicator set until every holder releases.
	ModeCounted Mode = "counted"
	// ModeFlag clears the indicator on any release, even if other calls
	// are still in flight.
	ModeFlag Mode = "flag"
)

// Indicator is a process-wide busy marker shared by all API calls.
type Indicator interface {
	Acquire() *Token
	Busy() bool
}

// Token releases one acquisition. Release is safe to call more than once.
type Token struct {
	once    sync.Once
	release func()
}

// Release clears this token's hold on the indicator.
func (t *Token) Release() {
	if t == nil {
		return
	}
	t.once.Do(func() {
		if t.release != nil {
			t.release()
		}
	})
}

// New builds an indicator for the given mode.
func New(mode Mode) Indicator {
	if mode == ModeFlag {
		return &Flag{}
	}
	return &Counter{}
}

// ParseMode validates a configured mode name.
func ParseMode(value string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case "", ModeCounted:
		return ModeCounted, nil
	case ModeFlag:
		return ModeFlag, nil
	default:
		return "", fmt.Errorf("invalid busy mode %q (expected counted|flag)", value)
	}
}

// Flag is a single non-counted marker.
type Flag struct {
	mu   sync.Mutex
	busy bool
}

// Acquire sets the flag.
func (f *Flag) Acquire() *Token {
	f.mu.Lock()
	f.busy = true
	f.mu.Unlock()
	return &Token{release: func() {
		f.mu.Lock()
		f.busy = false
		f.mu.Unlock()
	}}
}

// Busy reports whether the flag is set.
func (f *Flag) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy
}

// Counter is a reference-counted marker.
type Counter struct {
	mu    sync.Mutex
	holds int
}

// Acquire adds one hold.
func (c *Counter) Acquire() *Token {
	c.mu.Lock()
	c.holds++
	c.mu.Unlock()
	return &Token{release: func() {
		c.mu.Lock()
		if c.holds > 0 {
			c.holds--
		}
		c.mu.Unlock()
	}}
}

// Busy reports whether any hold is outstanding.
func (c *Counter) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.holds > 0
}

// Holds returns the number of outstanding holds.
func (c *Counter) Holds() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.holds
}
