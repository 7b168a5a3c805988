package app

import (
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"battleship/internal/fleet"
	"battleship/internal/store"
)

// LoadOrGenerateFleet returns the fleet saved at path, or generates and saves
// a new one when the file is missing or invalid. fresh skips the load.
func LoadOrGenerateFleet(path string, rng *rand.Rand, fresh bool) (*fleet.Fleet, error) {
	if !fresh {
		f, err := store.LoadFleet(path)
		if err == nil {
			log.Debug("fleet loaded", "path", path)
			return f, nil
		}
		log.Warn("no usable saved fleet, generating", "path", path, "err", err)
	}

	f, err := fleet.Generate(rng)
	if err != nil {
		return nil, err
	}
	if err := store.SaveFleet(path, f); err != nil {
		return nil, fmt.Errorf("save fleet: %w", err)
	}
	return f, nil
}
