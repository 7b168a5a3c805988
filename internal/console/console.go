// Package console runs the text front end: fleet placement and the turn loop.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"battleship/internal/app"
	"battleship/internal/board"
	"battleship/internal/fleet"
	"battleship/internal/game"
)

// ErrQuit is returned when the player asks to leave during placement.
var ErrQuit = errors.New("player quit")

// IsQuit reports whether line is one of the quit words.
func IsQuit(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "q", "quit", "exit":
		return true
	}
	return false
}

type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewScanner(in), out: out}
}

// readLine prints prompt and blocks for the next line. It returns io.EOF
// once input is exhausted.
func (c *Console) readLine(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// PromptFleet asks for each ship of the standard fleet in turn. A ship that
// fails to parse or breaks placement rules is dropped and asked for again.
func (c *Console) PromptFleet() (*fleet.Fleet, error) {
	fmt.Fprintln(c.out, "Place your fleet. Enter ships as xy-xy, single cells as xy.")
	ships := make([]fleet.Ship, 0, len(fleet.Sizes))
	for i, size := range fleet.Sizes {
		for {
			line, err := c.readLine(fmt.Sprintf("Ship #%d (size %d) > ", i+1, size))
			if err != nil {
				return nil, err
			}
			if IsQuit(line) {
				return nil, ErrQuit
			}
			cells, err := fleet.ParseShip(line, size)
			if err != nil {
				fmt.Fprintf(c.out, "Invalid ship: %v\n", err)
				continue
			}
			candidate := append(ships, fleet.NewShip(i+1, cells))
			if err := fleet.Validate(candidate); err != nil {
				fmt.Fprintf(c.out, "Invalid ship: %v\n", err)
				continue
			}
			ships = candidate
			break
		}
		fmt.Fprint(c.out, RenderFleet(ships, nil, "Your fleet"))
	}
	return fleet.New(ships)
}

// Play runs the turn loop until the game ends, the player quits or input
// runs out. Quitting and end of input are not errors.
func (c *Console) Play(s *app.Session) error {
	fmt.Fprintf(c.out, "Bot fleet commitment: %s\n", s.Commitment())
	for s.Outcome() == app.Playing {
		c.draw(s)
		line, err := c.readLine("Your shot (x,y) > ")
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(c.out)
			return s.Quit()
		}
		if err != nil {
			return err
		}
		if IsQuit(line) {
			fmt.Fprintln(c.out, "Bye.")
			return s.Quit()
		}

		shot, err := board.Parse(line)
		if err != nil {
			fmt.Fprintf(c.out, "Bad input: %v\n", err)
			continue
		}
		rep, err := s.Fire(shot)
		if err != nil {
			return err
		}
		if rep.Player.Result == game.Repeat {
			fmt.Fprintf(c.out, "Already fired at %v, try again.\n", shot)
			continue
		}
		fmt.Fprintf(c.out, "Turn %d: you fire at %v: %s\n", rep.Turn, shot, rep.Player.Result)
		if rep.Bot != nil {
			fmt.Fprintf(c.out, "Turn %d: bot fires at %v: %s\n", rep.Turn, rep.Bot.Coord, rep.Bot.Result)
		}
	}

	c.draw(s)
	switch s.Outcome() {
	case app.Won:
		fmt.Fprintf(c.out, "You win! All enemy ships sunk in %d turns.\n", s.Turn())
	case app.Lost:
		fmt.Fprintf(c.out, "You lose. The bot sank your fleet in %d turns.\n", s.Turn())
	}
	log.Debug("console loop done", "game", s.ID, "outcome", s.Outcome())
	return nil
}

func (c *Console) draw(s *app.Session) {
	enemy := s.PlayerFog()
	own := s.BotFog()
	fmt.Fprint(c.out, enemy.Render("Enemy waters"))
	fmt.Fprint(c.out, RenderFleet(s.PlayerFleet().Ships(), &own, "Your fleet"))
}

// RenderFleet draws ships as '#' over the shots in fog, which may be nil.
// Hit ship cells stay 'x'.
func RenderFleet(ships []fleet.Ship, fog *board.Fog, title string) string {
	var view board.Fog
	if fog != nil {
		view = *fog
	}
	lines := strings.Split(view.Render(title), "\n")
	for _, s := range ships {
		for _, cell := range s.Cells {
			if view.At(cell) == board.Hit {
				continue
			}
			row := []byte(lines[cell.Y+2])
			// "%2d" label, then one space and one char per column
			row[2+2*cell.X+1] = '#'
			lines[cell.Y+2] = string(row)
		}
	}
	return strings.Join(lines, "\n")
}
