// Package store persists fleets and turn logs as CSV files.
package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"battleship/internal/board"
	"battleship/internal/fleet"
)

// ErrNoFleet means a fleet file is missing, unreadable or invalid. Callers
// treat it as "no saved fleet" and generate a new one.
var ErrNoFleet = errors.New("no valid fleet")

var fleetHeader = []string{"ship_id", "size", "x", "y"}

// SaveFleet writes one row per ship cell to path, creating parent directories.
func SaveFleet(path string, f *fleet.Fleet) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := WriteFleet(file, f); err != nil {
		return err
	}
	return file.Close()
}

// WriteFleet encodes f as CSV with a header row.
func WriteFleet(w io.Writer, f *fleet.Fleet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(fleetHeader); err != nil {
		return err
	}
	for _, s := range f.Ships() {
		for _, c := range s.Cells {
			row := []string{
				strconv.Itoa(s.ID),
				strconv.Itoa(s.Size()),
				strconv.Itoa(c.X),
				strconv.Itoa(c.Y),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// LoadFleet reads a fleet saved by SaveFleet. Any failure, including a fleet
// that breaks the placement rules, is reported as ErrNoFleet.
func LoadFleet(path string) (*fleet.Fleet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoFleet, err)
	}
	defer file.Close()

	f, err := ReadFleet(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNoFleet, path, err)
	}
	return f, nil
}

// ReadFleet decodes CSV rows into ships grouped by ship_id ascending and
// validates the result as a standard fleet.
func ReadFleet(r io.Reader) (*fleet.Fleet, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(fleetHeader)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fleet.ErrNoShips
	}
	if records[0][0] == fleetHeader[0] {
		records = records[1:]
	}

	cells := make(map[int][]board.Coord)
	sizes := make(map[int]int)
	for i, rec := range records {
		var v [4]int
		for j, field := range rec {
			if v[j], err = strconv.Atoi(field); err != nil {
				return nil, fmt.Errorf("row %d: bad %s %q", i+1, fleetHeader[j], field)
			}
		}
		id, size := v[0], v[1]
		if prev, ok := sizes[id]; ok && prev != size {
			return nil, fmt.Errorf("row %d: ship %d size %d, earlier rows say %d", i+1, id, size, prev)
		}
		sizes[id] = size
		cells[id] = append(cells[id], board.Coord{X: v[2], Y: v[3]})
	}

	ids := make([]int, 0, len(cells))
	for id := range cells {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	ships := make([]fleet.Ship, 0, len(ids))
	for _, id := range ids {
		if len(cells[id]) != sizes[id] {
			return nil, fmt.Errorf("ship %d: %w", id, &fleet.SizeMismatchError{Want: sizes[id], Got: len(cells[id])})
		}
		ships = append(ships, fleet.Ship{ID: id, Cells: cells[id]})
	}
	if err := fleet.CheckComposition(ships); err != nil {
		return nil, err
	}
	return fleet.New(ships)
}
