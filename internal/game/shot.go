// Package game resolves shots against a fleet and detects the end of a game.
package game

import (
	"battleship/internal/board"
	"battleship/internal/fleet"
)

// Result is the outcome of one shot.
type Result uint8

const (
	Repeat Result = iota
	Miss
	Hit
	Sunk
)

func (r Result) String() string {
	switch r {
	case Repeat:
		return "repeat"
	case Miss:
		return "miss"
	case Hit:
		return "hit"
	case Sunk:
		return "sunk"
	default:
		return "unknown"
	}
}

// IsHit reports whether the shot struck a ship.
func (r Result) IsHit() bool { return r == Hit || r == Sunk }

// Options tunes shot resolution.
type Options struct {
	// SweepSunk marks every unknown cell around a sunk ship as a miss.
	// Ships never touch, so those cells are known to be empty.
	SweepSunk bool
}

// DefaultOptions is what every game uses.
var DefaultOptions = Options{SweepSunk: true}

// ApplyShot fires at c, updating hits and fog. A cell that was already shot
// returns Repeat and changes nothing. c must be in bounds.
func ApplyShot(f *fleet.Fleet, hits *HitSet, fog *board.Fog, c board.Coord) Result {
	return DefaultOptions.ApplyShot(f, hits, fog, c)
}

func (o Options) ApplyShot(f *fleet.Fleet, hits *HitSet, fog *board.Fog, c board.Coord) Result {
	if fog.At(c) != board.Unknown {
		return Repeat
	}

	ship, ok := f.ShipAt(c)
	if !ok {
		fog.Set(c, board.Miss)
		return Miss
	}

	hits.Add(c)
	fog.Set(c, board.Hit)

	if !IsSunk(ship, hits) {
		return Hit
	}
	if o.SweepSunk {
		sweep(ship, fog)
	}
	return Sunk
}

func sweep(ship fleet.Ship, fog *board.Fog) {
	for _, cell := range ship.Cells {
		for _, n := range cell.Neighbors8() {
			if fog.At(n) == board.Unknown {
				fog.Set(n, board.Miss)
			}
		}
	}
}

// IsSunk reports whether every cell of ship has been hit.
func IsSunk(ship fleet.Ship, hits *HitSet) bool {
	for _, c := range ship.Cells {
		if !hits.Has(c) {
			return false
		}
	}
	return true
}

// AllSunk reports whether every ship of f has been sunk.
func AllSunk(f *fleet.Fleet, hits *HitSet) bool {
	for _, s := range f.Ships() {
		if !IsSunk(s, hits) {
			return false
		}
	}
	return true
}
