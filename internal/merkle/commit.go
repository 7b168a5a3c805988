package merkle

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Commitment binds a board to a random salt so equal boards commit differently.
// Value = MiMC(Salt, Tree.Root()).
type Commitment struct {
	Tree  *Tree
	Salt  *big.Int
	Value *big.Int
}

// Commit builds the tree for bits and salts its root with a random field element.
func Commit(bits []uint8) (*Commitment, error) {
	var e fr.Element
	if _, err := e.SetRandom(); err != nil {
		return nil, err
	}
	return CommitWithSalt(bits, e.BigInt(new(big.Int)))
}

// CommitWithSalt is Commit with a caller-chosen salt. The salt must be a
// canonical field element.
func CommitWithSalt(bits []uint8, salt *big.Int) (*Commitment, error) {
	if salt.Sign() < 0 || salt.Cmp(fr.Modulus()) >= 0 {
		return nil, fmt.Errorf("salt is not a field element")
	}
	t, err := Build(bits)
	if err != nil {
		return nil, err
	}
	v, err := HashNode(salt, t.Root())
	if err != nil {
		return nil, err
	}
	return &Commitment{Tree: t, Salt: new(big.Int).Set(salt), Value: v}, nil
}

// Hex formats the commitment value as 0x-prefixed hex.
func (c *Commitment) Hex() string { return fmt.Sprintf("0x%x", c.Value) }

// ParseHex reads a 0x-prefixed hex field element.
func ParseHex(s string) (*big.Int, error) {
	if len(s) < 3 || (s[:2] != "0x" && s[:2] != "0X") {
		return nil, fmt.Errorf("invalid hex %q", s)
	}
	v, ok := new(big.Int).SetString(s[2:], 16)
	if !ok {
		return nil, fmt.Errorf("invalid hex %q", s)
	}
	return v, nil
}
