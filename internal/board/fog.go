package board

import (
	"fmt"
	"strings"
)

// Cell is what a viewer knows about one cell of the opponent's board.
type Cell uint8

const (
	Unknown Cell = iota
	Miss
	Hit
)

func (c Cell) String() string {
	switch c {
	case Unknown:
		return "Unknown"
	case Miss:
		return "Miss"
	case Hit:
		return "Hit"
	default:
		return "Invalid"
	}
}

// Byte is the one-character encoding used by the turn log.
func (c Cell) Byte() byte {
	switch c {
	case Miss:
		return 'o'
	case Hit:
		return 'x'
	default:
		return '.'
	}
}

// Fog is one player's view of the opponent's board, indexed [y][x].
type Fog [Size][Size]Cell

// At returns the state of c. c must be in bounds.
func (f *Fog) At(c Coord) Cell { return f[c.Y][c.X] }

// Set records the state of c. c must be in bounds.
func (f *Fog) Set(c Coord, v Cell) { f[c.Y][c.X] = v }

// IsUnknown reports whether c is on the board and has not been shot yet.
func (f *Fog) IsUnknown(c Coord) bool {
	return c.InBounds() && f[c.Y][c.X] == Unknown
}

// UnknownCells lists every cell not shot yet, row by row.
func (f *Fog) UnknownCells() []Coord {
	var out []Coord
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			if f[y][x] == Unknown {
				out = append(out, Coord{X: x, Y: y})
			}
		}
	}
	return out
}

// Encode serializes f as Size rows of Size characters joined by "/".
func (f *Fog) Encode() string {
	rows := make([]string, Size)
	var row [Size]byte
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			row[x] = f[y][x].Byte()
		}
		rows[y] = string(row[:])
	}
	return strings.Join(rows, "/")
}

// Render draws f as a grid with column and row labels under title.
//
//	Fog
//	   0 1 2 3 4 5 6 7 8 9
//	 0 . . . . . . . . . .
func (f *Fog) Render(title string) string {
	var b strings.Builder
	b.WriteString(title)
	b.WriteByte('\n')
	b.WriteString("  ")
	for x := 0; x < Size; x++ {
		fmt.Fprintf(&b, " %d", x)
	}
	b.WriteByte('\n')
	for y := 0; y < Size; y++ {
		fmt.Fprintf(&b, "%2d", y)
		for x := 0; x < Size; x++ {
			b.WriteByte(' ')
			b.WriteByte(f[y][x].Byte())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
