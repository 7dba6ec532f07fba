package services_test

import (
	"math/rand"
	"testing"

	"github.com/quickdesk/core/internal/application/services"
)

func TestColorCacheStableAssignment(t *testing.T) {
	cache := services.NewColorCache("You")

	first := cache.ColorFor("Dana")
	for i := 0; i < 20; i++ {
		if got := cache.ColorFor("Dana"); got != first {
			t.Fatalf("assignment changed on lookup %d: %q != %q", i, got, first)
		}
	}
}

func TestColorCacheDrawsFromPalette(t *testing.T) {
	cache := services.NewColorCache("You")

	allowed := make(map[string]bool, len(services.DefaultPalette))
	for _, c := range services.DefaultPalette {
		allowed[c] = true
	}

	for _, sender := range []string{"Dana", "Priya", "Marcus", "Lena"} {
		if got := cache.ColorFor(sender); !allowed[got] {
			t.Errorf("ColorFor(%q) = %q, not in the palette", sender, got)
		}
	}
}

func TestColorCacheSelfSenderReserved(t *testing.T) {
	cache := services.NewColorCache("You")

	if got := cache.ColorFor("You"); got != services.SelfColor {
		t.Fatalf("viewer color = %q, want %q", got, services.SelfColor)
	}
}

func TestColorCacheSelfColorNeverAssignedToOthers(t *testing.T) {
	palette := append([]string{services.SelfColor}, services.DefaultPalette...)
	cache := services.NewColorCacheWithPalette("You", palette, rand.NewSource(1))

	for i := 0; i < 50; i++ {
		sender := "sender-" + string(rune('a'+i%26)) + string(rune('a'+i/26))
		if got := cache.ColorFor(sender); got == services.SelfColor {
			t.Fatalf("reserved color leaked to %q", sender)
		}
	}
}

func TestColorCacheDegeneratePaletteFallsBack(t *testing.T) {
	allowed := make(map[string]bool, len(services.DefaultPalette))
	for _, c := range services.DefaultPalette {
		allowed[c] = true
	}

	for _, palette := range [][]string{nil, {}, {services.SelfColor}} {
		cache := services.NewColorCacheWithPalette("You", palette, rand.NewSource(3))
		if got := cache.ColorFor("Dana"); !allowed[got] {
			t.Errorf("palette %v: ColorFor = %q, want a default palette color", palette, got)
		}
	}
}

func TestColorCacheReset(t *testing.T) {
	cache := services.NewColorCacheWithPalette("You", []string{"#111111", "#222222"}, rand.NewSource(7))

	cache.ColorFor("Dana")
	cache.Reset()

	// After a reset the sender is unknown again; the new draw must still
	// come from the palette.
	after := cache.ColorFor("Dana")
	if after != "#111111" && after != "#222222" {
		t.Fatalf("post-reset color %q outside the palette", after)
	}
}
