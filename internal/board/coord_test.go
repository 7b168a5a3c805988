package board

import (
	"errors"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Coord
	}{
		{"34", Coord{3, 4}},
		{"3,4", Coord{3, 4}},
		{"3 4", Coord{3, 4}},
		{"3, 4", Coord{3, 4}},
		{"  09 ", Coord{0, 9}},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"", ErrEmpty},
		{"   ", ErrEmpty},
		{"a4", ErrFormat},
		{"345", ErrFormat},
		{"3-4", ErrFormat},
		{"1 2 3", ErrFormat},
		{"10,4", ErrOutOfBounds},
		{"3 12", ErrOutOfBounds},
		{"99999999999999999999 1", ErrOutOfBounds},
		{"1, 99999999999999999999", ErrOutOfBounds},
	}
	for _, tt := range tests {
		_, err := Parse(tt.in)
		if !errors.Is(err, tt.want) {
			t.Errorf("Parse(%q) error = %v, want %v", tt.in, err, tt.want)
		}
	}
}

func TestNeighbors(t *testing.T) {
	if got := len((Coord{0, 0}).Neighbors8()); got != 3 {
		t.Errorf("corner Neighbors8 = %d, want 3", got)
	}
	if got := len((Coord{5, 5}).Neighbors8()); got != 8 {
		t.Errorf("center Neighbors8 = %d, want 8", got)
	}
	if got := len((Coord{0, 5}).Neighbors8()); got != 5 {
		t.Errorf("edge Neighbors8 = %d, want 5", got)
	}

	got := (Coord{2, 2}).Neighbors4()
	want := []Coord{{1, 2}, {3, 2}, {2, 1}, {2, 3}}
	if len(got) != len(want) {
		t.Fatalf("Neighbors4 = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Neighbors4[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if got := len((Coord{9, 9}).Neighbors4()); got != 2 {
		t.Errorf("corner Neighbors4 = %d, want 2", got)
	}
}

func TestIndexRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := Coord{X: rapid.IntRange(0, Size-1).Draw(t, "x"), Y: rapid.IntRange(0, Size-1).Draw(t, "y")}
		if got := FromIndex(c.Index()); got != c {
			t.Fatalf("FromIndex(%d) = %v, want %v", c.Index(), got, c)
		}
		parsed, err := Parse(c.String())
		if err != nil || parsed != c {
			t.Fatalf("Parse(%q) = %v, %v", c.String(), parsed, err)
		}
	})
}

func TestFog_Encode(t *testing.T) {
	var f Fog
	f.Set(Coord{0, 0}, Miss)
	f.Set(Coord{9, 9}, Hit)

	rows := strings.Split(f.Encode(), "/")
	if len(rows) != Size {
		t.Fatalf("rows = %d, want %d", len(rows), Size)
	}
	if rows[0] != "o........." {
		t.Errorf("row 0 = %q", rows[0])
	}
	if rows[9] != ".........x" {
		t.Errorf("row 9 = %q", rows[9])
	}
	if got := len(f.UnknownCells()); got != Cells-2 {
		t.Errorf("UnknownCells = %d, want %d", got, Cells-2)
	}
}

func TestFog_Render(t *testing.T) {
	var f Fog
	f.Set(Coord{3, 1}, Hit)
	out := f.Render("Fog")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != Size+2 {
		t.Fatalf("lines = %d, want %d", len(lines), Size+2)
	}
	if lines[0] != "Fog" {
		t.Errorf("title = %q", lines[0])
	}
	if want := "   0 1 2 3 4 5 6 7 8 9"; lines[1] != want {
		t.Errorf("header = %q, want %q", lines[1], want)
	}
	if want := " 0 . . . . . . . . . ."; lines[2] != want {
		t.Errorf("row 0 = %q, want %q", lines[2], want)
	}
	if want := " 1 . . . x . . . . . ."; lines[3] != want {
		t.Errorf("row 1 = %q, want %q", lines[3], want)
	}
}
