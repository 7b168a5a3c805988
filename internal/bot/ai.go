// Package bot implements the computer opponent's hunt/target heuristic.
//
// The AI searches at random until it hits something, then probes the four
// neighbours of the hit. Once two hits share a row or column it commits to
// that line and extends it at both ends until the ship sinks.
package bot

import (
	"errors"
	"math/rand/v2"
	"slices"

	"battleship/internal/board"
	"battleship/internal/game"
)

// ErrNoTargets means every cell has been shot. The game should have ended
// before that can happen.
var ErrNoTargets = errors.New("no available shots left")

// AI is the bot's targeting state. It only learns through Observe.
type AI struct {
	rng     *rand.Rand
	cluster map[board.Coord]struct{}
	queue   []board.Coord
}

func New(rng *rand.Rand) *AI {
	return &AI{
		rng:     rng,
		cluster: make(map[board.Coord]struct{}),
	}
}

// ChooseShot picks the next cell to fire at on fog.
func (a *AI) ChooseShot(fog *board.Fog) (board.Coord, error) {
	if len(a.cluster) > 0 {
		for _, c := range LineCandidates(a.clusterCells(), fog) {
			if !slices.Contains(a.queue, c) {
				a.queue = slices.Insert(a.queue, 0, c)
			}
		}
	}

	for len(a.queue) > 0 {
		c := a.queue[0]
		a.queue = a.queue[1:]
		if fog.IsUnknown(c) {
			return c, nil
		}
	}

	return a.randomShot(fog)
}

// Observe feeds back the result of the bot's last shot.
func (a *AI) Observe(shot board.Coord, res game.Result, fog *board.Fog) {
	switch res {
	case game.Hit:
		a.cluster[shot] = struct{}{}
		if len(LineCandidates(a.clusterCells(), fog)) > 0 {
			return
		}
		for _, n := range shot.Neighbors4() {
			if fog.IsUnknown(n) && !slices.Contains(a.queue, n) {
				a.queue = append(a.queue, n)
			}
		}
	case game.Sunk:
		clear(a.cluster)
		a.queue = a.queue[:0]
	}
}

// Queue returns a copy of the pending candidates, front first.
func (a *AI) Queue() []board.Coord { return slices.Clone(a.queue) }

// Cluster returns the hits on the ship currently being hunted.
func (a *AI) Cluster() []board.Coord { return a.clusterCells() }

func (a *AI) clusterCells() []board.Coord {
	out := make([]board.Coord, 0, len(a.cluster))
	for c := range a.cluster {
		out = append(out, c)
	}
	slices.SortFunc(out, func(p, q board.Coord) int { return p.Index() - q.Index() })
	return out
}

func (a *AI) randomShot(fog *board.Fog) (board.Coord, error) {
	choices := fog.UnknownCells()
	if len(choices) == 0 {
		return board.Coord{}, ErrNoTargets
	}
	return choices[a.rng.IntN(len(choices))], nil
}

// LineCandidates returns the unknown cells just past both ends of cluster
// when all of its cells share one column (or one row) and span at least two
// cells. Otherwise the orientation is unknown and it returns nil.
func LineCandidates(cluster []board.Coord, fog *board.Fog) []board.Coord {
	if len(cluster) == 0 {
		return nil
	}

	xs := make(map[int]struct{})
	ys := make(map[int]struct{})
	minX, maxX := cluster[0].X, cluster[0].X
	minY, maxY := cluster[0].Y, cluster[0].Y
	for _, c := range cluster {
		xs[c.X] = struct{}{}
		ys[c.Y] = struct{}{}
		minX, maxX = min(minX, c.X), max(maxX, c.X)
		minY, maxY = min(minY, c.Y), max(maxY, c.Y)
	}

	var ends [2]board.Coord
	switch {
	case len(xs) == 1 && len(ys) >= 2:
		ends = [2]board.Coord{{X: minX, Y: minY - 1}, {X: minX, Y: maxY + 1}}
	case len(ys) == 1 && len(xs) >= 2:
		ends = [2]board.Coord{{X: minX - 1, Y: minY}, {X: maxX + 1, Y: minY}}
	default:
		return nil
	}

	var out []board.Coord
	for _, c := range ends {
		if fog.IsUnknown(c) {
			out = append(out, c)
		}
	}
	return out
}
