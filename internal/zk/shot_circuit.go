package zk

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/mimc"

	"battleship/internal/board"
	"battleship/internal/merkle"
)

// ShotCircuit proves that the board behind Commitment holds Hit at Index,
// without revealing any other cell or the salt.
type ShotCircuit struct {
	Bit  frontend.Variable               `gnark:",secret"`
	Salt frontend.Variable               `gnark:",secret"`
	Path [merkle.Depth]frontend.Variable `gnark:",secret"`

	Index      frontend.Variable `gnark:",public"`
	Commitment frontend.Variable `gnark:",public"`
	Hit        frontend.Variable `gnark:",public"`
}

func (c *ShotCircuit) Define(api frontend.API) error {
	api.AssertIsBoolean(c.Bit)
	api.AssertIsEqual(c.Hit, c.Bit)
	api.AssertIsLessOrEqual(c.Index, board.Cells-1)

	// the index bits pick left/right at each level, so the path is tied to Index
	dir := api.ToBinary(c.Index, merkle.Depth)

	h, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}
	h.Write(c.Bit)
	curr := h.Sum()

	for i := 0; i < merkle.Depth; i++ {
		h.Reset()
		left := api.Select(dir[i], c.Path[i], curr)
		right := api.Select(dir[i], curr, c.Path[i])
		h.Write(left, right)
		curr = h.Sum()
	}

	h.Reset()
	h.Write(c.Salt, curr)
	api.AssertIsEqual(h.Sum(), c.Commitment)
	return nil
}
