// Package config holds command settings and their environment overrides.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
)

const (
	EnvData  = "BATTLESHIP_DATA"
	EnvKeys  = "BATTLESHIP_KEYS"
	EnvSeed  = "BATTLESHIP_SEED"
	EnvProve = "BATTLESHIP_PROVE"
)

func GetEnvDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvBool falls back to defaultValue when key is unset or not a bool.
func GetEnvBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

// GetEnvUint falls back to defaultValue when key is unset or not a number.
func GetEnvUint(key string, defaultValue uint64) uint64 {
	v, err := strconv.ParseUint(os.Getenv(key), 10, 64)
	if err != nil {
		return defaultValue
	}
	return v
}

// Play configures an interactive game.
type Play struct {
	DataDir string
	KeysDir string
	// Seed drives the bot's fleet and targeting. Zero picks a random seed.
	Seed uint64
	// PlayerShips, when set, loads the player's fleet from a CSV file.
	PlayerShips string
	// RandomPlayer generates the player's fleet instead of prompting.
	RandomPlayer bool
	// Fresh regenerates the bot's fleet even when a saved one is valid.
	Fresh   bool
	Prove   bool
	Verbose bool
}

func (p Play) Validate() error {
	if p.DataDir == "" {
		return errors.New("data directory required")
	}
	if p.Prove && p.KeysDir == "" {
		return errors.New("keys directory required with -prove")
	}
	if p.PlayerShips != "" && p.RandomPlayer {
		return errors.New("-player-ships and -random are mutually exclusive")
	}
	return nil
}

func (p Play) BotShipsPath() string    { return filepath.Join(p.DataDir, "bot_ships.csv") }
func (p Play) PlayerShipsPath() string { return filepath.Join(p.DataDir, "player_ships.csv") }
func (p Play) TurnLogPath() string     { return filepath.Join(p.DataDir, "game_state.csv") }
func (p Play) TranscriptPath() string  { return filepath.Join(p.DataDir, "transcript.cbor") }

// Verify configures a transcript audit.
type Verify struct {
	KeysDir    string
	Transcript string
}

func (v Verify) Validate() error {
	if v.KeysDir == "" {
		return errors.New("keys directory required")
	}
	if v.Transcript == "" {
		return errors.New("transcript path required")
	}
	return nil
}
