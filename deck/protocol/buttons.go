package protocol

import "github.com/deckforge/deckforge/deck"

// ButtonMapping is the logical-order press state a handler formats into an
// Input report. Produced fresh on every scan cycle and never mutated after
// construction.
type ButtonMapping struct {
	Pressed [deck.MaxKeys]bool
	// ActiveCount is how many state bytes the Input report should carry.
	// Families disagree on its meaning: V1/V2 report the full key count,
	// Module 6 reports the number of pressed keys, Module 15/32 the model
	// maximum. The discrepancy is deliberate; host software depends on the
	// per-family framing.
	ActiveCount int
}

// mapButtons translates a physical press-state array (row-major, device layout
// order) into the logical index order the protocol expects. For left-to-right
// layouts the mapping is the identity; otherwise each row is reversed.
// Indices beyond MaxKeys are dropped.
func mapButtons(physical []bool, cols, rows int, leftToRight bool) [deck.MaxKeys]bool {
	var mapped [deck.MaxKeys]bool
	total := cols * rows
	for i, pressed := range physical {
		if i >= total {
			break
		}
		idx := i
		if !leftToRight {
			row := i / cols
			col := i % cols
			idx = row*cols + (cols - 1 - col)
		}
		if idx < deck.MaxKeys {
			mapped[idx] = pressed
		}
	}
	return mapped
}

func countPressed(mapped [deck.MaxKeys]bool) int {
	n := 0
	for _, p := range mapped {
		if p {
			n++
		}
	}
	return n
}
