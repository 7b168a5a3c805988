package fleet

import (
	"errors"
	"fmt"

	"battleship/internal/board"
)

var (
	ErrEmptyShip   = errors.New("empty ship input")
	ErrComposition = errors.New("fleet composition mismatch")
	ErrNoShips     = errors.New("fleet has no ships")
	ErrDuplicateID = errors.New("duplicate ship id")
)

// OverlapError reports a ship cell already taken by an earlier ship.
type OverlapError struct {
	Coord board.Coord
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("overlapping ship cell at (%d, %d)", e.Coord.X, e.Coord.Y)
}

// AdjacencyError reports a ship cell A touching cell B of an earlier ship.
type AdjacencyError struct {
	A, B board.Coord
}

func (e *AdjacencyError) Error() string {
	return fmt.Sprintf("ships touch near (%d, %d) and (%d, %d)", e.A.X, e.A.Y, e.B.X, e.B.Y)
}

// GeometryError reports endpoints that are neither in one row nor one column.
type GeometryError struct {
	A, B board.Coord
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("ship (%d, %d)-(%d, %d) must be only vertical or horizontal", e.A.X, e.A.Y, e.B.X, e.B.Y)
}

type SizeMismatchError struct {
	Want, Got int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("ship length mismatch: expected %d, got %d", e.Want, e.Got)
}

type DuplicateCellError struct {
	Coord board.Coord
}

func (e *DuplicateCellError) Error() string {
	return fmt.Sprintf("ship contains duplicate cell (%d, %d)", e.Coord.X, e.Coord.Y)
}
