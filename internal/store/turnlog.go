package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"battleship/internal/board"
	"battleship/internal/game"
)

var turnHeader = []string{"turn", "player_move", "bot_move", "state"}

// Move is one side's shot in a turn. A nil Move encodes as "".
type Move struct {
	Coord  board.Coord
	Result game.Result
}

func (m *Move) String() string {
	if m == nil {
		return ""
	}
	return fmt.Sprintf("%d,%d:%s", m.Coord.X, m.Coord.Y, m.Result)
}

// TurnRecord is one completed turn.
type TurnRecord struct {
	Turn   int
	Player *Move
	Bot    *Move
	// PlayerFog is the player's view of the bot's board, BotFog the reverse.
	PlayerFog board.Fog
	BotFog    board.Fog
}

// State encodes both fogs as "P=<player fog>|B=<bot fog>".
func (r TurnRecord) State() string {
	return "P=" + r.PlayerFog.Encode() + "|B=" + r.BotFog.Encode()
}

func (r TurnRecord) row() []string {
	return []string{strconv.Itoa(r.Turn), r.Player.String(), r.Bot.String(), r.State()}
}

// TurnLog appends turn records to a CSV file.
type TurnLog struct {
	path string
}

func NewTurnLog(path string) *TurnLog { return &TurnLog{path: path} }

// Reset truncates the log to just its header.
func (l *TurnLog) Reset() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(l.path)
	if err != nil {
		return err
	}
	defer f.Close()
	return writeRows(f, turnHeader)
}

// Append adds one record, writing the header first if the file is new or empty.
func (l *TurnLog) Append(rec TurnRecord) error {
	if err := l.ensure(); err != nil {
		return err
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	return writeRows(f, rec.row())
}

func (l *TurnLog) ensure() error {
	if st, err := os.Stat(l.path); err == nil && st.Size() > 0 {
		return nil
	}
	return l.Reset()
}

// ReadTurns returns the data rows of a turn log, header excluded.
func ReadTurns(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cr := csv.NewReader(f)
	cr.FieldsPerRecord = len(turnHeader)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		rows = rows[1:]
	}
	return rows, nil
}

func writeRows(f *os.File, rows ...[]string) error {
	cw := csv.NewWriter(f)
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return f.Close()
}
