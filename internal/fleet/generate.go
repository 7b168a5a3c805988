package fleet

import (
	"errors"
	"math/rand/v2"

	"battleship/internal/board"
)

const (
	maxShipTries    = 1000
	maxFleetRetries = 100
)

var errStuck = errors.New("no room left for ship")

// Generate places a standard fleet at random. Ships go down in Sizes order;
// a placement that leaves the board or touches an earlier ship is retried,
// and a layout with no room left for the next ship starts over.
func Generate(rng *rand.Rand) (*Fleet, error) {
	for range maxFleetRetries {
		ships, err := place(rng)
		if errors.Is(err, errStuck) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return New(ships)
	}
	return nil, errors.New("failed to place ships")
}

func place(rng *rand.Rand) ([]Ship, error) {
	ships := make([]Ship, 0, len(Sizes))
	occupied := newCellSet()

	for i, size := range Sizes {
		placed := false
		for range maxShipTries {
			start := board.Coord{X: rng.IntN(board.Size), Y: rng.IntN(board.Size)}
			cells := lineFrom(start, size, rng.IntN(2) == 0)
			if !allInBounds(cells) || touches(cells, occupied) {
				continue
			}

			ships = append(ships, Ship{ID: i + 1, Cells: cells})
			for _, c := range cells {
				occupied.Put(c, struct{}{})
			}
			placed = true
			break
		}
		if !placed {
			return nil, errStuck
		}
	}
	return ships, nil
}

func lineFrom(start board.Coord, size int, horizontal bool) []board.Coord {
	out := make([]board.Coord, size)
	for i := range out {
		if horizontal {
			out[i] = board.Coord{X: start.X + i, Y: start.Y}
		} else {
			out[i] = board.Coord{X: start.X, Y: start.Y + i}
		}
	}
	return out
}

func allInBounds(cells []board.Coord) bool {
	for _, c := range cells {
		if !c.InBounds() {
			return false
		}
	}
	return true
}

func touches(cells []board.Coord, occupied *cellSet) bool {
	for _, c := range cells {
		if occupied.Has(c) {
			return true
		}
		for _, n := range c.Neighbors8() {
			if occupied.Has(n) {
				return true
			}
		}
	}
	return false
}
