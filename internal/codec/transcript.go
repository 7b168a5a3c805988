// Package codec defines the proof transcript written next to a game.
package codec

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"

	"github.com/fxamacker/cbor/v2"

	"battleship/internal/board"
	"battleship/internal/fleet"
	"battleship/internal/zk"
)

// ShotEntry is one player shot at the committed fleet with its proof.
type ShotEntry struct {
	Turn   int           `cbor:"1,keyasint"`
	X      int           `cbor:"2,keyasint"`
	Y      int           `cbor:"3,keyasint"`
	Result string        `cbor:"4,keyasint"`
	Proof  []byte        `cbor:"5,keyasint"`
	Public zk.ShotPublic `cbor:"6,keyasint"` // index, commitment and hit bit
}

func (e ShotEntry) Coord() board.Coord { return board.Coord{X: e.X, Y: e.Y} }

// RevealedShip is a ship disclosed after the game.
type RevealedShip struct {
	ID    int      `cbor:"1,keyasint"`
	Cells [][2]int `cbor:"2,keyasint"`
}

// Reveal opens the commitment once the game is over.
type Reveal struct {
	Salt  *big.Int       `cbor:"1,keyasint"`
	Ships []RevealedShip `cbor:"2,keyasint"`
}

// Transcript is everything needed to audit the bot's answers.
type Transcript struct {
	GameID     string      `cbor:"1,keyasint"`
	Commitment *big.Int    `cbor:"2,keyasint"`
	Shots      []ShotEntry `cbor:"3,keyasint"`
	Reveal     *Reveal     `cbor:"4,keyasint,omitempty"`
}

// NewReveal captures f and the salt used to commit it.
func NewReveal(f *fleet.Fleet, salt *big.Int) *Reveal {
	r := &Reveal{Salt: new(big.Int).Set(salt)}
	for _, s := range f.Ships() {
		rs := RevealedShip{ID: s.ID, Cells: make([][2]int, len(s.Cells))}
		for i, c := range s.Cells {
			rs.Cells[i] = [2]int{c.X, c.Y}
		}
		r.Ships = append(r.Ships, rs)
	}
	return r
}

// Fleet rebuilds and validates the revealed fleet.
func (r *Reveal) Fleet() (*fleet.Fleet, error) {
	ships := make([]fleet.Ship, 0, len(r.Ships))
	for _, rs := range r.Ships {
		cells := make([]board.Coord, len(rs.Cells))
		for i, c := range rs.Cells {
			cells[i] = board.Coord{X: c[0], Y: c[1]}
		}
		ships = append(ships, fleet.Ship{ID: rs.ID, Cells: cells})
	}
	return fleet.New(ships)
}

// Save writes t to path as CBOR, replacing any previous file.
func (t *Transcript) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := cbor.Marshal(t)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadTranscript reads a transcript written by Save.
func LoadTranscript(path string) (*Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var t Transcript
	if err := cbor.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}
	if t.Commitment == nil {
		return nil, errors.New("transcript has no commitment")
	}
	return &t, nil
}
