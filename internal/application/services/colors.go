package services

import (
	"math/rand"
	"sync"
	"time"
)

// Bubble palette from the reference widget. SelfColor is reserved for the
// viewer's own messages and never handed out to other senders.
var (
	DefaultPalette = []string{"#FCEED3", "#D2F2EA", "#F8F8F8"}
	SelfColor      = "#E9D5FF"
)

// ColorCache assigns each message sender a bubble color for the lifetime
// of a session. The first lookup for a sender picks pseudo-randomly from
// the palette and the choice sticks; the check-then-set happens under one
// lock so two views racing on the same new sender agree on the color.
//
// The cache is an injected object with an explicit lifecycle (created at
// session start, discarded at session end), not an ambient global.
type ColorCache struct {
	mu         sync.Mutex
	selfSender string
	palette    []string
	rng        *rand.Rand
	assigned   map[string]string
}

// NewColorCache creates a session color cache using the default palette.
func NewColorCache(selfSender string) *ColorCache {
	return NewColorCacheWithPalette(selfSender, DefaultPalette, rand.NewSource(time.Now().UnixNano()))
}

// NewColorCacheWithPalette allows tests to pin the palette and the seed.
// A palette left empty after the self color is filtered out falls back to
// the default so ColorFor always has something to draw from.
func NewColorCacheWithPalette(selfSender string, palette []string, src rand.Source) *ColorCache {
	p := make([]string, 0, len(palette))
	for _, c := range palette {
		if c != SelfColor {
			p = append(p, c)
		}
	}
	if len(p) == 0 {
		p = append(p, DefaultPalette...)
	}

	return &ColorCache{
		selfSender: selfSender,
		palette:    p,
		rng:        rand.New(src),
		assigned:   make(map[string]string),
	}
}

// ColorFor returns the sender's bubble color. The viewer's own sender name
// always maps to the reserved self color and is never cached.
func (c *ColorCache) ColorFor(sender string) string {
	if sender == c.selfSender {
		return SelfColor
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if color, ok := c.assigned[sender]; ok {
		return color
	}

	color := c.palette[c.rng.Intn(len(c.palette))]
	c.assigned[sender] = color
	return color
}

// Reset discards all assignments. Session end.
func (c *ColorCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.assigned = make(map[string]string)
}
