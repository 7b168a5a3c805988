package app

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"battleship/internal/board"
	"battleship/internal/bot"
	"battleship/internal/codec"
	"battleship/internal/fleet"
	"battleship/internal/game"
	"battleship/internal/merkle"
	"battleship/internal/store"
	"battleship/internal/zk"
)

//go:generate go tool mockgen -destination=./mocks/turnlog_mock.go -package=mocks . TurnLog

// TurnLog receives one record per completed turn.
type TurnLog interface {
	Append(rec store.TurnRecord) error
}

// ShotProver proves the committed bit behind a shot.
type ShotProver interface {
	ProveShot(c *merkle.Commitment, idx int) ([]byte, zk.ShotPublic, error)
}

// Targeter chooses the bot's shots. *bot.AI is the implementation used in play.
type Targeter interface {
	ChooseShot(fog *board.Fog) (board.Coord, error)
	Observe(shot board.Coord, res game.Result, fog *board.Fog)
}

var ErrGameOver = errors.New("game is over")

// Outcome is how a session ended, if it has.
type Outcome uint8

const (
	Playing Outcome = iota
	Won
	Lost
	Quit
)

func (o Outcome) String() string {
	switch o {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	case Quit:
		return "quit"
	default:
		return "unknown"
	}
}

type Config struct {
	PlayerFleet *fleet.Fleet
	BotFleet    *fleet.Fleet
	// Rng drives the bot's random search. Ignored when Bot is set.
	Rng     *rand.Rand
	Bot     Targeter
	TurnLog TurnLog
	// Prover is optional. When set every fresh player shot is proved and
	// the transcript is saved to TranscriptPath.
	Prover         ShotProver
	TranscriptPath string
}

// Session is one game between the player and the bot. It owns all game
// state and is not safe for concurrent use.
type Session struct {
	ID string

	playerFleet *fleet.Fleet
	botFleet    *fleet.Fleet
	// playerHits are hits on the player's fleet, botHits on the bot's.
	playerHits *game.HitSet
	botHits    *game.HitSet
	// playerFog is the player's view of the bot's board, botFog the reverse.
	playerFog board.Fog
	botFog    board.Fog

	ai      Targeter
	turn    int
	outcome Outcome
	turnLog TurnLog

	commitment     *merkle.Commitment
	prover         ShotProver
	transcript     *codec.Transcript
	transcriptPath string
}

// TurnReport describes what happened on one call to Fire.
type TurnReport struct {
	Turn    int
	Player  store.Move
	Bot     *store.Move
	Outcome Outcome
}

// New starts a game and commits the bot's fleet.
func New(cfg Config) (*Session, error) {
	if cfg.PlayerFleet == nil || cfg.BotFleet == nil {
		return nil, errors.New("both fleets are required")
	}
	if cfg.TurnLog == nil {
		return nil, errors.New("turn log is required")
	}
	if cfg.Bot == nil {
		if cfg.Rng == nil {
			return nil, errors.New("rng is required")
		}
		cfg.Bot = bot.New(cfg.Rng)
	}
	if cfg.Prover != nil && cfg.TranscriptPath == "" {
		return nil, errors.New("transcript path required when proving")
	}

	commitment, err := merkle.Commit(cfg.BotFleet.Occupancy())
	if err != nil {
		return nil, fmt.Errorf("commit bot fleet: %w", err)
	}

	s := &Session{
		ID:             uuid.NewString(),
		playerFleet:    cfg.PlayerFleet,
		botFleet:       cfg.BotFleet,
		playerHits:     game.NewHitSet(),
		botHits:        game.NewHitSet(),
		ai:             cfg.Bot,
		turnLog:        cfg.TurnLog,
		commitment:     commitment,
		prover:         cfg.Prover,
		transcriptPath: cfg.TranscriptPath,
	}
	if s.prover != nil {
		s.transcript = &codec.Transcript{GameID: s.ID, Commitment: commitment.Value}
		if err := s.transcript.Save(s.transcriptPath); err != nil {
			return nil, fmt.Errorf("save transcript: %w", err)
		}
	}
	log.Info("game started", "game", s.ID, "commitment", commitment.Hex(), "prove", s.prover != nil)
	return s, nil
}

// Commitment is the salted root of the bot's fleet, fixed for the game.
func (s *Session) Commitment() string { return s.commitment.Hex() }

func (s *Session) Outcome() Outcome { return s.outcome }

func (s *Session) Turn() int { return s.turn }

// PlayerFog is the player's view of the bot's board.
func (s *Session) PlayerFog() board.Fog { return s.playerFog }

// BotFog is the bot's view of the player's board.
func (s *Session) BotFog() board.Fog { return s.botFog }

func (s *Session) PlayerFleet() *fleet.Fleet { return s.playerFleet }

// Fire plays the player's shot at c and, unless that ends the game, the
// bot's reply. A shot at a known cell reports game.Repeat and does not use
// up the turn.
func (s *Session) Fire(c board.Coord) (TurnReport, error) {
	if s.outcome != Playing {
		return TurnReport{}, ErrGameOver
	}
	if !c.InBounds() {
		return TurnReport{}, fmt.Errorf("%w: %v", board.ErrOutOfBounds, c)
	}

	if !s.playerFog.IsUnknown(c) {
		return TurnReport{Turn: s.turn, Player: store.Move{Coord: c, Result: game.Repeat}, Outcome: Playing}, nil
	}

	// a failed proof leaves the turn unplayed
	entry, err := s.prove(c)
	if err != nil {
		return TurnReport{Turn: s.turn, Outcome: Playing}, err
	}

	res := game.ApplyShot(s.botFleet, s.botHits, &s.playerFog, c)
	s.turn++
	report := TurnReport{Turn: s.turn, Player: store.Move{Coord: c, Result: res}, Outcome: Playing}
	if err := s.record(entry, res); err != nil {
		return report, err
	}

	if game.AllSunk(s.botFleet, s.botHits) {
		s.outcome = Won
	} else {
		mv, err := s.botTurn()
		if err != nil {
			return report, err
		}
		report.Bot = &mv
		if game.AllSunk(s.playerFleet, s.playerHits) {
			s.outcome = Lost
		}
	}
	report.Outcome = s.outcome

	rec := store.TurnRecord{
		Turn:      s.turn,
		Player:    &report.Player,
		Bot:       report.Bot,
		PlayerFog: s.playerFog,
		BotFog:    s.botFog,
	}
	if err := s.turnLog.Append(rec); err != nil {
		return report, fmt.Errorf("append turn %d: %w", s.turn, err)
	}

	if s.outcome != Playing {
		log.Info("game over", "game", s.ID, "outcome", s.outcome, "turns", s.turn)
		return report, s.reveal()
	}
	return report, nil
}

func (s *Session) botTurn() (store.Move, error) {
	shot, err := s.ai.ChooseShot(&s.botFog)
	if err != nil {
		// only reachable if the game ran past a loss
		return store.Move{}, fmt.Errorf("bot turn %d: %w", s.turn, err)
	}
	res := game.ApplyShot(s.playerFleet, s.playerHits, &s.botFog, shot)
	s.ai.Observe(shot, res, &s.botFog)
	log.Debug("bot fired", "game", s.ID, "turn", s.turn, "shot", shot, "result", res)
	return store.Move{Coord: shot, Result: res}, nil
}

// Quit ends the game with no winner.
func (s *Session) Quit() error {
	if s.outcome != Playing {
		return nil
	}
	s.outcome = Quit
	log.Info("game quit", "game", s.ID, "turns", s.turn)
	return s.reveal()
}

// prove returns nil when the session has no prover.
func (s *Session) prove(c board.Coord) (*codec.ShotEntry, error) {
	if s.prover == nil {
		return nil, nil
	}
	proof, pub, err := s.prover.ProveShot(s.commitment, c.Index())
	if err != nil {
		return nil, fmt.Errorf("prove shot %v: %w", c, err)
	}
	return &codec.ShotEntry{X: c.X, Y: c.Y, Proof: proof, Public: pub}, nil
}

func (s *Session) record(entry *codec.ShotEntry, res game.Result) error {
	if entry == nil {
		return nil
	}
	entry.Turn = s.turn
	entry.Result = res.String()
	s.transcript.Shots = append(s.transcript.Shots, *entry)
	return s.transcript.Save(s.transcriptPath)
}

func (s *Session) reveal() error {
	if s.transcript == nil {
		return nil
	}
	s.transcript.Reveal = codec.NewReveal(s.botFleet, s.commitment.Salt)
	return s.transcript.Save(s.transcriptPath)
}
