package zk

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"battleship/internal/merkle"
)

const (
	vkFile = "shot.vk"
	pkFile = "shot.pk"
)

// ShotPublic is what a verifier learns from a shot proof.
type ShotPublic struct {
	Index      int      `json:"index" cbor:"1,keyasint"`
	Commitment *big.Int `json:"commitment" cbor:"2,keyasint"`
	Hit        uint8    `json:"hit" cbor:"3,keyasint"`
}

// SetLogOutput routes the proof system's zerolog output to w. Below debug
// only warnings and errors get through.
func SetLogOutput(w io.Writer, verbose bool) {
	lvl := zerolog.WarnLevel
	if verbose {
		lvl = zerolog.DebugLevel
	}
	logger.Set(zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(lvl).With().Timestamp().Logger())
}

// VerifyingKeyPath is where EnsureShotKeys keeps the verifying key.
func VerifyingKeyPath(dir string) string { return filepath.Join(dir, vkFile) }

func compile() (constraint.ConstraintSystem, error) {
	var circuit ShotCircuit
	return frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &circuit)
}

// EnsureShotKeys makes sure dir holds a readable proving/verifying key pair,
// running the groth16 setup when either is missing or corrupt.
func EnsureShotKeys(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	vkPath := filepath.Join(dir, vkFile)
	pkPath := filepath.Join(dir, pkFile)

	if _, _, err := readKeys(vkPath, pkPath); err == nil {
		return nil
	}

	cs, err := compile()
	if err != nil {
		return err
	}
	pk, vk, err := groth16.Setup(cs)
	if err != nil {
		return err
	}

	var g errgroup.Group
	g.Go(func() error { return writeKey(vkPath, vk) })
	g.Go(func() error { return writeKey(pkPath, pk) })
	return g.Wait()
}

// Prover produces shot proofs for one key pair. The circuit is compiled once.
type Prover struct {
	cs constraint.ConstraintSystem
	pk groth16.ProvingKey
}

func NewProver(keysDir string) (*Prover, error) {
	cs, err := compile()
	if err != nil {
		return nil, err
	}
	pk, err := readPK(filepath.Join(keysDir, pkFile))
	if err != nil {
		return nil, fmt.Errorf("read proving key: %w", err)
	}
	return &Prover{cs: cs, pk: pk}, nil
}

// ProveShot proves the committed bit at leaf idx.
func (p *Prover) ProveShot(c *merkle.Commitment, idx int) ([]byte, ShotPublic, error) {
	path, err := c.Tree.Path(idx)
	if err != nil {
		return nil, ShotPublic{}, err
	}
	if len(path) != merkle.Depth {
		return nil, ShotPublic{}, errors.New("bad path length")
	}
	bit, err := leafBit(c.Tree, idx)
	if err != nil {
		return nil, ShotPublic{}, err
	}

	var assign ShotCircuit
	assign.Bit = bit
	assign.Salt = c.Salt
	for i := range merkle.Depth {
		assign.Path[i] = path[i]
	}
	assign.Index = idx
	assign.Commitment = c.Value
	assign.Hit = bit

	wit, err := frontend.NewWitness(&assign, ecc.BN254.ScalarField())
	if err != nil {
		return nil, ShotPublic{}, err
	}
	proof, err := groth16.Prove(p.cs, p.pk, wit)
	if err != nil {
		return nil, ShotPublic{}, err
	}

	var buf bytes.Buffer
	if _, err := proof.WriteTo(&buf); err != nil {
		return nil, ShotPublic{}, err
	}
	pub := ShotPublic{Index: idx, Commitment: new(big.Int).Set(c.Value), Hit: bit}
	return buf.Bytes(), pub, nil
}

// leafBit recovers the committed bit at idx by comparing against the two
// possible leaf hashes.
func leafBit(t *merkle.Tree, idx int) (uint8, error) {
	one, err := merkle.HashLeaf(1)
	if err != nil {
		return 0, err
	}
	if t.Levels[0][idx].Cmp(one) == 0 {
		return 1, nil
	}
	return 0, nil
}

// Verifier checks shot proofs against one verifying key.
type Verifier struct {
	vk groth16.VerifyingKey
}

func NewVerifier(vkPath string) (*Verifier, error) {
	vk, err := readVK(vkPath)
	if err != nil {
		return nil, fmt.Errorf("read verifying key: %w", err)
	}
	return &Verifier{vk: vk}, nil
}

// VerifyShot returns nil when proofBin proves pub against commitment.
func (v *Verifier) VerifyShot(proofBin []byte, pub ShotPublic, commitment *big.Int) error {
	if pub.Commitment == nil {
		return errors.New("proof payload missing public commitment")
	}
	if pub.Commitment.Cmp(commitment) != 0 {
		return errors.New("commitment mismatch")
	}

	var pubAssign ShotCircuit
	pubAssign.Index = pub.Index
	pubAssign.Commitment = commitment
	pubAssign.Hit = pub.Hit

	pubWit, err := frontend.NewWitness(&pubAssign, ecc.BN254.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return err
	}
	pr := groth16.NewProof(ecc.BN254)
	if _, err := pr.ReadFrom(bytes.NewReader(proofBin)); err != nil {
		return err
	}
	return groth16.Verify(pr, v.vk, pubWit)
}

// --- key IO helpers using io.WriterTo / io.ReaderFrom ---

func writeKey(path string, k io.WriterTo) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := k.WriteTo(f); err != nil {
		return err
	}
	return f.Close()
}

func readVK(path string) (groth16.VerifyingKey, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	vk := groth16.NewVerifyingKey(ecc.BN254)
	_, err = vk.ReadFrom(f)
	return vk, err
}

func readPK(path string) (groth16.ProvingKey, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	pk := groth16.NewProvingKey(ecc.BN254)
	_, err = pk.ReadFrom(f)
	return pk, err
}

func readKeys(vkPath, pkPath string) (groth16.VerifyingKey, groth16.ProvingKey, error) {
	vk, err := readVK(vkPath)
	if err != nil {
		return nil, nil, err
	}
	pk, err := readPK(pkPath)
	if err != nil {
		return nil, nil, err
	}
	return vk, pk, nil
}
