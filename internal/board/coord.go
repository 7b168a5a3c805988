package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Size is the width and height of every board.
const Size = 10

// Cells is the number of cells on a board.
const Cells = Size * Size

var (
	ErrEmpty       = errors.New("empty coordinates")
	ErrFormat      = errors.New("bad coordinate format, use 'xy', 'x,y' or 'x y'")
	ErrOutOfBounds = errors.New("out of bounds")
)

// Coord is a cell on the board. X is the column, Y the row.
type Coord struct {
	X, Y int
}

func (c Coord) String() string { return fmt.Sprintf("%d,%d", c.X, c.Y) }

// InBounds reports whether c lies on the board.
func (c Coord) InBounds() bool {
	return c.X >= 0 && c.X < Size && c.Y >= 0 && c.Y < Size
}

// Index maps c to y*Size+x. Only meaningful for in-bounds coordinates.
func (c Coord) Index() int { return c.Y*Size + c.X }

// FromIndex is the inverse of Coord.Index.
func FromIndex(i int) Coord { return Coord{X: i % Size, Y: i / Size} }

// Neighbors4 returns the in-bounds orthogonal neighbours of c
// in the order left, right, up, down.
func (c Coord) Neighbors4() []Coord {
	cand := [4]Coord{
		{c.X - 1, c.Y},
		{c.X + 1, c.Y},
		{c.X, c.Y - 1},
		{c.X, c.Y + 1},
	}
	out := make([]Coord, 0, 4)
	for _, n := range cand {
		if n.InBounds() {
			out = append(out, n)
		}
	}
	return out
}

// Neighbors8 returns the in-bounds cells touching c, diagonals included.
func (c Coord) Neighbors8() []Coord {
	out := make([]Coord, 0, 8)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			n := Coord{c.X + dx, c.Y + dy}
			if n.InBounds() {
				out = append(out, n)
			}
		}
	}
	return out
}

// Parse reads a coordinate written as "xy", "x,y", "x y" or "x, y".
func Parse(s string) (Coord, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Coord{}, ErrEmpty
	}

	var x, y int
	if len(s) == 2 && isDigits(s) {
		x, y = int(s[0]-'0'), int(s[1]-'0')
	} else {
		parts := strings.Fields(strings.ReplaceAll(s, ",", " "))
		if len(parts) != 2 || !isDigits(parts[0]) || !isDigits(parts[1]) {
			return Coord{}, ErrFormat
		}
		var err error
		if x, err = atoi(parts[0]); err != nil {
			return Coord{}, err
		}
		if y, err = atoi(parts[1]); err != nil {
			return Coord{}, err
		}
	}

	c := Coord{X: x, Y: y}
	if !c.InBounds() {
		return Coord{}, fmt.Errorf("%w: (%d, %d), must be 0..%d for both", ErrOutOfBounds, x, y, Size-1)
	}
	return c, nil
}

// atoi reads a digit string. Values too large for an int are off the board.
func atoi(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("%w: %s, must be 0..%d", ErrOutOfBounds, s, Size-1)
	}
	if err != nil {
		return 0, ErrFormat
	}
	return n, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
