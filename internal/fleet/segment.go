package fleet

import (
	"fmt"
	"slices"
	"strings"

	"battleship/internal/board"
)

// Segment expands the straight run from a to b inclusive, ordered by the
// varying axis. Diagonal endpoints are a GeometryError.
func Segment(a, b board.Coord) ([]board.Coord, error) {
	switch {
	case a.X == b.X:
		y1, y2 := min(a.Y, b.Y), max(a.Y, b.Y)
		out := make([]board.Coord, 0, y2-y1+1)
		for y := y1; y <= y2; y++ {
			out = append(out, board.Coord{X: a.X, Y: y})
		}
		return out, nil
	case a.Y == b.Y:
		x1, x2 := min(a.X, b.X), max(a.X, b.X)
		out := make([]board.Coord, 0, x2-x1+1)
		for x := x1; x <= x2; x++ {
			out = append(out, board.Coord{X: x, Y: a.Y})
		}
		return out, nil
	default:
		return nil, &GeometryError{A: a, B: b}
	}
}

// ParseShip reads a ship written as "xy-xy", or "xy" when size is 1, and
// checks it has exactly size distinct cells.
func ParseShip(line string, size int) ([]board.Coord, error) {
	s := strings.TrimSpace(line)
	if s == "" {
		return nil, ErrEmptyShip
	}

	var cells []board.Coord
	if left, right, ok := strings.Cut(s, "-"); ok {
		a, err := board.Parse(left)
		if err != nil {
			return nil, err
		}
		b, err := board.Parse(right)
		if err != nil {
			return nil, err
		}
		if cells, err = Segment(a, b); err != nil {
			return nil, err
		}
	} else {
		if size != 1 {
			return nil, fmt.Errorf("ship size %d needs format 'xy-xy'", size)
		}
		c, err := board.Parse(s)
		if err != nil {
			return nil, err
		}
		cells = []board.Coord{c}
	}

	if len(cells) != size {
		return nil, &SizeMismatchError{Want: size, Got: len(cells)}
	}
	if err := checkDistinct(cells); err != nil {
		return nil, err
	}
	return cells, nil
}

// CheckShape verifies cells are on the board, distinct, and form one straight
// contiguous run in any order.
func CheckShape(cells []board.Coord) error {
	if len(cells) == 0 {
		return ErrEmptyShip
	}
	for _, c := range cells {
		if !c.InBounds() {
			return fmt.Errorf("%w: (%d, %d)", board.ErrOutOfBounds, c.X, c.Y)
		}
	}
	if err := checkDistinct(cells); err != nil {
		return err
	}

	sorted := slices.Clone(cells)
	slices.SortFunc(sorted, func(a, b board.Coord) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
	want, err := Segment(sorted[0], sorted[len(sorted)-1])
	if err != nil {
		return err
	}
	if len(want) != len(sorted) {
		return &SizeMismatchError{Want: len(want), Got: len(sorted)}
	}
	if !slices.Equal(want, sorted) {
		return &GeometryError{A: sorted[0], B: sorted[len(sorted)-1]}
	}
	return nil
}

func checkDistinct(cells []board.Coord) error {
	seen := make(map[board.Coord]struct{}, len(cells))
	for _, c := range cells {
		if _, ok := seen[c]; ok {
			return &DuplicateCellError{Coord: c}
		}
		seen[c] = struct{}{}
	}
	return nil
}
