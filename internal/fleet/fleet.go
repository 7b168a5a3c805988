package fleet

import (
	"fmt"
	"slices"

	"github.com/dolthub/swiss"

	"battleship/internal/board"
)

// Sizes is the standard fleet: one 4, two 3s, three 2s, four 1s. 20 cells.
var Sizes = []int{4, 3, 3, 2, 2, 2, 1, 1, 1, 1}

// Ship is a straight run of cells. IDs are 1-based and unique per fleet.
type Ship struct {
	ID    int
	Cells []board.Coord
}

// NewShip copies cells so the ship does not alias the caller's slice.
func NewShip(id int, cells []board.Coord) Ship {
	return Ship{ID: id, Cells: slices.Clone(cells)}
}

func (s Ship) Size() int { return len(s.Cells) }

// Fleet is a validated set of ships with a cell index for owner lookups.
type Fleet struct {
	ships []Ship
	owner *swiss.Map[board.Coord, int]
}

// New validates ships and builds a fleet. The ships are copied.
func New(ships []Ship) (*Fleet, error) {
	if len(ships) == 0 {
		return nil, ErrNoShips
	}
	ids := swiss.NewMap[int, struct{}](uint32(len(ships)))
	for _, s := range ships {
		if ids.Has(s.ID) {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, s.ID)
		}
		ids.Put(s.ID, struct{}{})
		if err := CheckShape(s.Cells); err != nil {
			return nil, fmt.Errorf("ship %d: %w", s.ID, err)
		}
	}
	if err := Validate(ships); err != nil {
		return nil, err
	}

	f := &Fleet{
		ships: make([]Ship, len(ships)),
		owner: swiss.NewMap[board.Coord, int](uint32(board.Cells)),
	}
	for i, s := range ships {
		f.ships[i] = NewShip(s.ID, s.Cells)
		for _, c := range s.Cells {
			f.owner.Put(c, i)
		}
	}
	return f, nil
}

// Ships returns a copy of the fleet's ships in placement order.
func (f *Fleet) Ships() []Ship {
	out := make([]Ship, len(f.ships))
	for i, s := range f.ships {
		out[i] = NewShip(s.ID, s.Cells)
	}
	return out
}

func (f *Fleet) Len() int { return len(f.ships) }

// ShipAt returns the ship occupying c.
func (f *Fleet) ShipAt(c board.Coord) (Ship, bool) {
	i, ok := f.owner.Get(c)
	if !ok {
		return Ship{}, false
	}
	return f.ships[i], true
}

// Occupancy flattens the fleet into board.Cells bits indexed y*Size+x, 1 = ship.
func (f *Fleet) Occupancy() []uint8 {
	out := make([]uint8, board.Cells)
	f.owner.Iter(func(c board.Coord, _ int) bool {
		out[c.Index()] = 1
		return false
	})
	return out
}

// cellSet is the occupied-cell index shared by validation and generation.
type cellSet = swiss.Map[board.Coord, struct{}]

func newCellSet() *cellSet { return swiss.NewMap[board.Coord, struct{}](uint32(board.Cells)) }

// Validate runs the placement rules over ships in order. Each ship is checked
// against the ships before it only, so the first violation is the one reported.
func Validate(ships []Ship) error {
	occupied := newCellSet()

	for _, s := range ships {
		for _, c := range s.Cells {
			if occupied.Has(c) {
				return &OverlapError{Coord: c}
			}
		}

		for _, c := range s.Cells {
			for _, n := range c.Neighbors8() {
				if occupied.Has(n) {
					return &AdjacencyError{A: c, B: n}
				}
			}
		}

		for _, c := range s.Cells {
			occupied.Put(c, struct{}{})
		}
	}
	return nil
}

// CheckComposition reports whether ships match Sizes in order.
func CheckComposition(ships []Ship) error {
	if len(ships) != len(Sizes) {
		return fmt.Errorf("%w: %d ships, want %d", ErrComposition, len(ships), len(Sizes))
	}
	for i, s := range ships {
		if s.Size() != Sizes[i] {
			return fmt.Errorf("%w: ship %d has size %d, want %d", ErrComposition, s.ID, s.Size(), Sizes[i])
		}
	}
	return nil
}
