package app

import (
	"errors"
	"fmt"
	"math/big"

	"battleship/internal/codec"
	"battleship/internal/merkle"
	"battleship/internal/zk"
)

// ShotVerifier checks a single shot proof.
type ShotVerifier interface {
	VerifyShot(proof []byte, pub zk.ShotPublic, commitment *big.Int) error
}

var ErrAudit = errors.New("transcript audit failed")

type AuditReport struct {
	Shots    int
	Hits     int
	Revealed bool
}

// Audit verifies every shot proof in t and, when the fleet has been
// revealed, that it matches the commitment and every logged result.
func Audit(t *codec.Transcript, v ShotVerifier) (*AuditReport, error) {
	rep := &AuditReport{}
	for i, s := range t.Shots {
		c := s.Coord()
		if !c.InBounds() || s.Public.Index != c.Index() {
			return nil, fmt.Errorf("%w: shot %d at %v proves index %d", ErrAudit, i+1, c, s.Public.Index)
		}
		if err := v.VerifyShot(s.Proof, s.Public, t.Commitment); err != nil {
			return nil, fmt.Errorf("%w: shot %d at %v: %v", ErrAudit, i+1, c, err)
		}
		hit := s.Result == "hit" || s.Result == "sunk"
		if hit != (s.Public.Hit == 1) {
			return nil, fmt.Errorf("%w: shot %d at %v logged %q but proves hit=%d", ErrAudit, i+1, c, s.Result, s.Public.Hit)
		}
		if hit {
			rep.Hits++
		}
		rep.Shots++
	}

	if t.Reveal == nil {
		return rep, nil
	}
	f, err := t.Reveal.Fleet()
	if err != nil {
		return nil, fmt.Errorf("%w: revealed fleet: %v", ErrAudit, err)
	}
	recommit, err := merkle.CommitWithSalt(f.Occupancy(), t.Reveal.Salt)
	if err != nil {
		return nil, fmt.Errorf("%w: recommit: %v", ErrAudit, err)
	}
	if recommit.Value.Cmp(t.Commitment) != 0 {
		return nil, fmt.Errorf("%w: revealed fleet does not match commitment", ErrAudit)
	}
	for i, s := range t.Shots {
		_, owned := f.ShipAt(s.Coord())
		if owned != (s.Public.Hit == 1) {
			return nil, fmt.Errorf("%w: shot %d at %v disagrees with revealed fleet", ErrAudit, i+1, s.Coord())
		}
	}
	rep.Revealed = true
	return rep, nil
}
