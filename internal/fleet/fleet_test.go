package fleet

import (
	"errors"
	"math/rand/v2"
	"testing"

	"pgregory.net/rapid"

	"battleship/internal/board"
)

func c(x, y int) board.Coord { return board.Coord{X: x, Y: y} }

func TestSegment(t *testing.T) {
	tests := []struct {
		name string
		a, b board.Coord
		want []board.Coord
	}{
		{"vertical", c(2, 3), c(2, 6), []board.Coord{c(2, 3), c(2, 4), c(2, 5), c(2, 6)}},
		{"horizontal", c(1, 1), c(4, 1), []board.Coord{c(1, 1), c(2, 1), c(3, 1), c(4, 1)}},
		{"reversed", c(4, 1), c(1, 1), []board.Coord{c(1, 1), c(2, 1), c(3, 1), c(4, 1)}},
		{"single", c(7, 7), c(7, 7), []board.Coord{c(7, 7)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Segment(tt.a, tt.b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("cell %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSegment_Diagonal(t *testing.T) {
	_, err := Segment(c(1, 1), c(3, 4))
	var ge *GeometryError
	if !errors.As(err, &ge) {
		t.Fatalf("expected GeometryError, got %v", err)
	}
}

func TestParseShip(t *testing.T) {
	cells, err := ParseShip("23-26", 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cells) != 4 || cells[0] != c(2, 3) || cells[3] != c(2, 6) {
		t.Errorf("unexpected cells: %v", cells)
	}

	cells, err = ParseShip("5 5", 1)
	if err != nil || len(cells) != 1 || cells[0] != c(5, 5) {
		t.Errorf("single cell: got %v, %v", cells, err)
	}

	if _, err := ParseShip("55", 2); err == nil {
		t.Error("expected error for size 2 without segment")
	}

	var sm *SizeMismatchError
	if _, err := ParseShip("11-13", 2); !errors.As(err, &sm) || sm.Want != 2 || sm.Got != 3 {
		t.Errorf("expected SizeMismatchError{2,3}, got %v", err)
	}

	var ge *GeometryError
	if _, err := ParseShip("11-34", 3); !errors.As(err, &ge) {
		t.Errorf("expected GeometryError, got %v", err)
	}

	if _, err := ParseShip("1x-13", 3); !errors.Is(err, board.ErrFormat) {
		t.Errorf("expected ErrFormat, got %v", err)
	}

	if _, err := ParseShip("  ", 1); !errors.Is(err, ErrEmptyShip) {
		t.Errorf("expected ErrEmptyShip, got %v", err)
	}
}

func TestCheckShape(t *testing.T) {
	if err := CheckShape([]board.Coord{c(3, 2), c(1, 2), c(2, 2)}); err != nil {
		t.Errorf("unordered horizontal run rejected: %v", err)
	}

	var ge *GeometryError
	if err := CheckShape([]board.Coord{c(0, 0), c(1, 1), c(0, 2)}); !errors.As(err, &ge) {
		t.Errorf("bent ship: expected GeometryError, got %v", err)
	}

	var sm *SizeMismatchError
	if err := CheckShape([]board.Coord{c(0, 0), c(0, 2)}); !errors.As(err, &sm) {
		t.Errorf("gap: expected SizeMismatchError, got %v", err)
	}

	var de *DuplicateCellError
	if err := CheckShape([]board.Coord{c(0, 0), c(0, 0)}); !errors.As(err, &de) {
		t.Errorf("duplicate: expected DuplicateCellError, got %v", err)
	}

	if err := CheckShape([]board.Coord{c(10, 0)}); !errors.Is(err, board.ErrOutOfBounds) {
		t.Errorf("off board: expected ErrOutOfBounds, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		ships []Ship
		check func(t *testing.T, err error)
	}{
		{
			name: "overlap",
			ships: []Ship{
				{ID: 1, Cells: []board.Coord{c(0, 0), c(1, 0)}},
				{ID: 2, Cells: []board.Coord{c(1, 0), c(1, 1)}},
			},
			check: func(t *testing.T, err error) {
				var oe *OverlapError
				if !errors.As(err, &oe) {
					t.Fatalf("expected OverlapError, got %v", err)
				}
				if oe.Coord != c(1, 0) {
					t.Errorf("Coord = %v, want (1,0)", oe.Coord)
				}
			},
		},
		{
			name: "diagonal touch",
			ships: []Ship{
				{ID: 1, Cells: []board.Coord{c(0, 0)}},
				{ID: 2, Cells: []board.Coord{c(1, 1), c(2, 1)}},
			},
			check: func(t *testing.T, err error) {
				var ae *AdjacencyError
				if !errors.As(err, &ae) {
					t.Fatalf("expected AdjacencyError, got %v", err)
				}
				if ae.A != c(1, 1) || ae.B != c(0, 0) {
					t.Errorf("got %v/%v, want (1,1)/(0,0)", ae.A, ae.B)
				}
			},
		},
		{
			name: "separated",
			ships: []Ship{
				{ID: 1, Cells: []board.Coord{c(0, 0), c(1, 0)}},
				{ID: 2, Cells: []board.Coord{c(3, 0), c(3, 1)}},
				{ID: 3, Cells: []board.Coord{c(0, 2)}},
			},
			check: func(t *testing.T, err error) {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			},
		},
		{
			name: "first violation wins",
			ships: []Ship{
				{ID: 1, Cells: []board.Coord{c(5, 5)}},
				{ID: 2, Cells: []board.Coord{c(5, 6)}},
				{ID: 3, Cells: []board.Coord{c(5, 5)}},
			},
			check: func(t *testing.T, err error) {
				var ae *AdjacencyError
				if !errors.As(err, &ae) {
					t.Fatalf("expected AdjacencyError from ship 2, got %v", err)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, Validate(tt.ships))
		})
	}
}

func TestValidate_DoesNotMutate(t *testing.T) {
	ships := []Ship{
		{ID: 1, Cells: []board.Coord{c(0, 0), c(1, 0)}},
		{ID: 2, Cells: []board.Coord{c(1, 1)}},
	}
	_ = Validate(ships)
	if len(ships[0].Cells) != 2 || len(ships[1].Cells) != 1 || ships[1].Cells[0] != c(1, 1) {
		t.Errorf("ships mutated: %v", ships)
	}
}

func TestNew_ShipAt(t *testing.T) {
	f, err := New([]Ship{
		{ID: 1, Cells: []board.Coord{c(0, 0), c(0, 1), c(0, 2)}},
		{ID: 2, Cells: []board.Coord{c(5, 5)}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, ok := f.ShipAt(c(0, 1))
	if !ok || s.ID != 1 {
		t.Errorf("ShipAt(0,1) = %v, %v; want ship 1", s, ok)
	}
	if _, ok := f.ShipAt(c(4, 4)); ok {
		t.Error("ShipAt(4,4) should be empty")
	}

	occ := f.Occupancy()
	total := 0
	for _, v := range occ {
		total += int(v)
	}
	if total != 4 || occ[c(5, 5).Index()] != 1 {
		t.Errorf("Occupancy total = %d, want 4", total)
	}
}

func TestNew_RejectsInvalid(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrNoShips) {
		t.Errorf("expected ErrNoShips, got %v", err)
	}
	var ge *GeometryError
	if _, err := New([]Ship{{ID: 1, Cells: []board.Coord{c(0, 0), c(1, 1)}}}); !errors.As(err, &ge) {
		t.Errorf("expected GeometryError, got %v", err)
	}
	dup := []Ship{
		{ID: 3, Cells: []board.Coord{c(0, 0)}},
		{ID: 3, Cells: []board.Coord{c(5, 5)}},
	}
	if _, err := New(dup); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID, got %v", err)
	}
}

func TestGenerate(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Uint64().Draw(t, "seed")
		f, err := Generate(rand.New(rand.NewPCG(seed, seed)))
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		ships := f.Ships()
		if err := CheckComposition(ships); err != nil {
			t.Fatalf("composition: %v", err)
		}
		if err := Validate(ships); err != nil {
			t.Fatalf("generated fleet invalid: %v", err)
		}
		total := 0
		for _, v := range f.Occupancy() {
			total += int(v)
		}
		if total != 20 {
			t.Fatalf("occupied cells = %d, want 20", total)
		}
	})
}

func TestCheckComposition(t *testing.T) {
	if err := CheckComposition([]Ship{{ID: 1, Cells: []board.Coord{c(0, 0)}}}); !errors.Is(err, ErrComposition) {
		t.Errorf("expected ErrComposition, got %v", err)
	}
}
