package zk

import (
	"io"
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/test"

	"battleship/internal/merkle"
)

func init() { SetLogOutput(io.Discard, false) }

func testCommitment(t *testing.T) *merkle.Commitment {
	t.Helper()
	bits := make([]uint8, 100)
	for _, i := range []int{11, 12, 13, 64} {
		bits[i] = 1
	}
	c, err := merkle.CommitWithSalt(bits, big.NewInt(123456789))
	if err != nil {
		t.Fatalf("CommitWithSalt: %v", err)
	}
	return c
}

func assignment(t *testing.T, c *merkle.Commitment, idx int, bit, claimed uint8) *ShotCircuit {
	t.Helper()
	path, err := c.Tree.Path(idx)
	if err != nil {
		t.Fatal(err)
	}
	a := &ShotCircuit{
		Bit:        bit,
		Salt:       c.Salt,
		Index:      idx,
		Commitment: c.Value,
		Hit:        claimed,
	}
	for i := range merkle.Depth {
		a.Path[i] = path[i]
	}
	return a
}

func TestShotCircuit_Solved(t *testing.T) {
	c := testCommitment(t)
	for _, tt := range []struct {
		idx int
		bit uint8
	}{{12, 1}, {64, 1}, {0, 0}, {99, 0}} {
		err := test.IsSolved(&ShotCircuit{}, assignment(t, c, tt.idx, tt.bit, tt.bit), ecc.BN254.ScalarField())
		if err != nil {
			t.Errorf("idx %d: %v", tt.idx, err)
		}
	}
}

func TestShotCircuit_RejectsLies(t *testing.T) {
	c := testCommitment(t)

	// claiming miss on a ship cell
	if err := test.IsSolved(&ShotCircuit{}, assignment(t, c, 12, 0, 0), ecc.BN254.ScalarField()); err == nil {
		t.Error("accepted a false miss")
	}
	// hit claim that disagrees with the witness bit
	if err := test.IsSolved(&ShotCircuit{}, assignment(t, c, 12, 1, 0), ecc.BN254.ScalarField()); err == nil {
		t.Error("accepted Hit != Bit")
	}

	// path for ship cell 12 presented as empty cell 14
	a := assignment(t, c, 12, 1, 1)
	a.Index = 14
	if err := test.IsSolved(&ShotCircuit{}, a, ecc.BN254.ScalarField()); err == nil {
		t.Error("accepted a path for another index")
	}

	// wrong salt
	a = assignment(t, c, 12, 1, 1)
	a.Salt = 1
	if err := test.IsSolved(&ShotCircuit{}, a, ecc.BN254.ScalarField()); err == nil {
		t.Error("accepted a wrong salt")
	}
}

func TestProveVerify(t *testing.T) {
	if testing.Short() {
		t.Skip("groth16 setup is slow")
	}
	dir := t.TempDir()
	if err := EnsureShotKeys(dir); err != nil {
		t.Fatalf("EnsureShotKeys: %v", err)
	}
	// second call reuses the keys
	if err := EnsureShotKeys(dir); err != nil {
		t.Fatalf("EnsureShotKeys again: %v", err)
	}

	prover, err := NewProver(dir)
	if err != nil {
		t.Fatalf("NewProver: %v", err)
	}
	verifier, err := NewVerifier(VerifyingKeyPath(dir))
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}

	c := testCommitment(t)
	proof, pub, err := prover.ProveShot(c, 13)
	if err != nil {
		t.Fatalf("ProveShot: %v", err)
	}
	if pub.Hit != 1 || pub.Index != 13 {
		t.Fatalf("public = %+v, want hit at 13", pub)
	}
	if err := verifier.VerifyShot(proof, pub, c.Value); err != nil {
		t.Fatalf("VerifyShot: %v", err)
	}

	forged := pub
	forged.Hit = 0
	if err := verifier.VerifyShot(proof, forged, c.Value); err == nil {
		t.Error("verified a proof with a flipped result")
	}
	if err := verifier.VerifyShot(proof, pub, big.NewInt(1)); err == nil {
		t.Error("verified against the wrong commitment")
	}
}
