package game

import (
	"github.com/bits-and-blooms/bitset"

	"battleship/internal/board"
)

// HitSet records every struck cell of one fleet. It only grows.
type HitSet struct {
	bits *bitset.BitSet
}

func NewHitSet() *HitSet {
	return &HitSet{bits: bitset.New(board.Cells)}
}

func (h *HitSet) Add(c board.Coord) { h.bits.Set(uint(c.Index())) }

func (h *HitSet) Has(c board.Coord) bool {
	return c.InBounds() && h.bits.Test(uint(c.Index()))
}

func (h *HitSet) Len() int { return int(h.bits.Count()) }

// Clone returns an independent copy.
func (h *HitSet) Clone() *HitSet { return &HitSet{bits: h.bits.Clone()} }

// Equal reports whether both sets hold the same cells.
func (h *HitSet) Equal(o *HitSet) bool { return h.bits.Equal(o.bits) }
