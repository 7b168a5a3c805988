package main

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"flag"
	"fmt"
	mrand "math/rand/v2"
	"os"

	"github.com/charmbracelet/log"

	"battleship/internal/app"
	"battleship/internal/codec"
	"battleship/internal/config"
	"battleship/internal/console"
	"battleship/internal/fleet"
	"battleship/internal/store"
	"battleship/internal/zk"
)

func main() {
	log.SetOutput(os.Stderr)

	cmd, args := "play", os.Args[1:]
	if len(args) > 0 && len(args[0]) > 0 && args[0][0] != '-' {
		cmd, args = args[0], args[1:]
	}
	switch cmd {
	case "play":
		cmdPlay(args)
	case "gen":
		cmdGen(args)
	case "keys":
		cmdKeys(args)
	case "verify":
		cmdVerify(args)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Battleship CLI

Commands:
  play   [--data dir] [--seed n] [--player-ships file.csv | --random] [--fresh] [--prove --keys dir]
  gen    --out ships.csv [--seed n]
  keys   --keys ./keys
  verify --keys ./keys --transcript data/transcript.cbor`)
}

func newRand(seed uint64) *mrand.Rand {
	if seed == 0 {
		var b [8]byte
		if _, err := rand.Read(b[:]); err != nil {
			log.Fatal("seed rng", "err", err)
		}
		seed = binary.LittleEndian.Uint64(b[:])
	}
	log.Debug("rng seeded", "seed", seed)
	return mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func setVerbose(verbose bool) {
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
	zk.SetLogOutput(os.Stderr, verbose)
}

func cmdPlay(args []string) {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	var cfg config.Play
	fs.StringVar(&cfg.DataDir, "data", config.GetEnvDefault(config.EnvData, "data"), "directory for fleets, turn log and transcript")
	fs.StringVar(&cfg.KeysDir, "keys", config.GetEnvDefault(config.EnvKeys, "./keys"), "keys directory")
	fs.Uint64Var(&cfg.Seed, "seed", config.GetEnvUint(config.EnvSeed, 0), "rng seed, 0 for random")
	fs.StringVar(&cfg.PlayerShips, "player-ships", "", "load your fleet from this CSV instead of placing it")
	fs.BoolVar(&cfg.RandomPlayer, "random", false, "generate your fleet")
	fs.BoolVar(&cfg.Fresh, "fresh", false, "generate a new bot fleet even if one is saved")
	fs.BoolVar(&cfg.Prove, "prove", config.GetEnvBool(config.EnvProve, false), "prove every shot against the bot's commitment")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "debug logging")
	_ = fs.Parse(args)

	setVerbose(cfg.Verbose)
	if err := cfg.Validate(); err != nil {
		log.Fatal("bad flags", "err", err)
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatal("create data dir", "err", err)
	}
	rng := newRand(cfg.Seed)

	botFleet, err := app.LoadOrGenerateFleet(cfg.BotShipsPath(), rng, cfg.Fresh)
	if err != nil {
		log.Fatal("bot fleet", "err", err)
	}

	term := console.New(os.Stdin, os.Stdout)
	playerFleet, err := loadPlayerFleet(cfg, rng, term)
	if errors.Is(err, console.ErrQuit) {
		fmt.Println("Bye.")
		return
	}
	if err != nil {
		log.Fatal("player fleet", "err", err)
	}
	if err := store.SaveFleet(cfg.PlayerShipsPath(), playerFleet); err != nil {
		log.Fatal("save player fleet", "err", err)
	}

	turnLog := store.NewTurnLog(cfg.TurnLogPath())
	if err := turnLog.Reset(); err != nil {
		log.Fatal("reset turn log", "err", err)
	}

	sc := app.Config{
		PlayerFleet: playerFleet,
		BotFleet:    botFleet,
		Rng:         rng,
		TurnLog:     turnLog,
	}
	if cfg.Prove {
		if err := zk.EnsureShotKeys(cfg.KeysDir); err != nil {
			log.Fatal("shot keys", "err", err)
		}
		prover, err := zk.NewProver(cfg.KeysDir)
		if err != nil {
			log.Fatal("prover", "err", err)
		}
		sc.Prover = prover
		sc.TranscriptPath = cfg.TranscriptPath()
	}

	session, err := app.New(sc)
	if err != nil {
		log.Fatal("new game", "err", err)
	}
	if err := term.Play(session); err != nil {
		log.Fatal("game aborted", "game", session.ID, "err", err)
	}
	if cfg.Prove {
		fmt.Printf("Transcript saved to %s\n", cfg.TranscriptPath())
	}
}

func loadPlayerFleet(cfg config.Play, rng *mrand.Rand, term *console.Console) (*fleet.Fleet, error) {
	switch {
	case cfg.PlayerShips != "":
		return store.LoadFleet(cfg.PlayerShips)
	case cfg.RandomPlayer:
		return fleet.Generate(rng)
	default:
		return term.PromptFleet()
	}
}

func cmdGen(args []string) {
	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	out := fs.String("out", "ships.csv", "output fleet CSV")
	seed := fs.Uint64("seed", config.GetEnvUint(config.EnvSeed, 0), "rng seed, 0 for random")
	verbose := fs.Bool("verbose", false, "debug logging")
	_ = fs.Parse(args)
	setVerbose(*verbose)

	f, err := fleet.Generate(newRand(*seed))
	if err != nil {
		log.Fatal("generate fleet", "err", err)
	}
	if err := store.SaveFleet(*out, f); err != nil {
		log.Fatal("save fleet", "err", err)
	}
	fmt.Println("wrote", *out)
}

func cmdKeys(args []string) {
	fs := flag.NewFlagSet("keys", flag.ExitOnError)
	keysDir := fs.String("keys", config.GetEnvDefault(config.EnvKeys, "./keys"), "keys directory")
	verbose := fs.Bool("verbose", false, "debug logging")
	_ = fs.Parse(args)
	setVerbose(*verbose)

	if err := zk.EnsureShotKeys(*keysDir); err != nil {
		log.Fatal("shot keys", "err", err)
	}
	fmt.Println("keys ready in", *keysDir)
}

func cmdVerify(args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	var cfg config.Verify
	fs.StringVar(&cfg.KeysDir, "keys", config.GetEnvDefault(config.EnvKeys, "./keys"), "keys directory")
	fs.StringVar(&cfg.Transcript, "transcript", "", "transcript file")
	verbose := fs.Bool("verbose", false, "debug logging")
	_ = fs.Parse(args)
	setVerbose(*verbose)

	if cfg.Transcript == "" {
		cfg.Transcript = config.Play{DataDir: config.GetEnvDefault(config.EnvData, "data")}.TranscriptPath()
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("bad flags", "err", err)
	}

	t, err := codec.LoadTranscript(cfg.Transcript)
	if err != nil {
		log.Fatal("load transcript", "err", err)
	}
	v, err := zk.NewVerifier(zk.VerifyingKeyPath(cfg.KeysDir))
	if err != nil {
		log.Fatal("verifier", "err", err)
	}
	rep, err := app.Audit(t, v)
	if err != nil {
		log.Fatal("audit", "game", t.GameID, "err", err)
	}
	fmt.Printf("OK: game %s, %d shots verified (%d hits)", t.GameID, rep.Shots, rep.Hits)
	if rep.Revealed {
		fmt.Print(", revealed fleet matches commitment")
	}
	fmt.Println()
}
