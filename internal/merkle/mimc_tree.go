package merkle

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	bnmimc "github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
)

// Depth of the board tree: 2^7 = 128 leaves covers the 100 cells.
const Depth = 7

// Leaves is the padded leaf count.
const Leaves = 1 << Depth

// --- encode BN254 field elements as 32-byte big-endian ---
func feBytes(x *big.Int) []byte {
	out := make([]byte, fr.Bytes)
	x.FillBytes(out)
	return out
}

func hashFE(xs ...*big.Int) (*big.Int, error) {
	h := bnmimc.NewMiMC()
	for _, x := range xs {
		if _, err := h.Write(feBytes(x)); err != nil {
			return nil, err
		}
	}
	return new(big.Int).SetBytes(h.Sum(nil)), nil
}

// HashLeaf hashes one occupancy bit the same way the shot circuit does.
func HashLeaf(bit uint8) (*big.Int, error) {
	return hashFE(new(big.Int).SetUint64(uint64(bit)))
}

// HashNode hashes two children into their parent.
func HashNode(left, right *big.Int) (*big.Int, error) {
	return hashFE(left, right)
}

// Tree is a fixed-size binary Merkle tree stored level by level.
// Levels[0] holds the leaves and Levels[Depth] the root.
type Tree struct {
	Depth  int          `json:"depth"`
	Levels [][]*big.Int `json:"levels"`
}

// Build hashes bits into a depth-Depth tree, padding with the hash of 0.
func Build(bits []uint8) (*Tree, error) {
	if len(bits) > Leaves {
		return nil, errors.New("too many leaves")
	}

	pad, err := HashLeaf(0)
	if err != nil {
		return nil, err
	}
	level := make([]*big.Int, Leaves)
	for i := range level {
		if i >= len(bits) {
			level[i] = pad
			continue
		}
		if bits[i] > 1 {
			return nil, fmt.Errorf("leaf %d: non-binary value %d", i, bits[i])
		}
		if level[i], err = HashLeaf(bits[i]); err != nil {
			return nil, err
		}
	}

	levels := [][]*big.Int{level}
	for n := Leaves; n > 1; n /= 2 {
		prev := levels[len(levels)-1]
		up := make([]*big.Int, n/2)
		for i := range up {
			if up[i], err = HashNode(prev[2*i], prev[2*i+1]); err != nil {
				return nil, err
			}
		}
		levels = append(levels, up)
	}
	return &Tree{Depth: len(levels) - 1, Levels: levels}, nil
}

func (t *Tree) Root() *big.Int { return new(big.Int).Set(t.Levels[len(t.Levels)-1][0]) }

// Path returns the sibling hashes from leaf idx up to the root.
func (t *Tree) Path(idx int) ([]*big.Int, error) {
	if idx < 0 || idx >= len(t.Levels[0]) {
		return nil, fmt.Errorf("leaf index %d out of range", idx)
	}
	path := make([]*big.Int, 0, t.Depth)
	cur := idx
	for level := 0; level < t.Depth; level++ {
		path = append(path, new(big.Int).Set(t.Levels[level][cur^1]))
		cur /= 2
	}
	return path, nil
}

// VerifyPath recomputes the root from a leaf bit, its index and sibling path.
func VerifyPath(bit uint8, idx int, path []*big.Int, root *big.Int) (bool, error) {
	cur, err := HashLeaf(bit)
	if err != nil {
		return false, err
	}
	for _, sib := range path {
		if idx%2 == 1 {
			cur, err = HashNode(sib, cur)
		} else {
			cur, err = HashNode(cur, sib)
		}
		if err != nil {
			return false, err
		}
		idx /= 2
	}
	return cur.Cmp(root) == 0, nil
}
