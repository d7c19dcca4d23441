package player

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"quoridor/game"
)

// Human reads moves from an interactive stream. Commands are
// "m row col" for a pawn move, "h row col" and "v row col" for walls;
// illegal or unparsable input is reprompted.
type Human struct {
	game *game.Game
	in   *bufio.Scanner
	out  io.Writer
}

func NewHuman(g *game.Game, in io.Reader, out io.Writer) *Human {
	return &Human{game: g, in: bufio.NewScanner(in), out: out}
}

func (p *Human) Play(b *game.Board) (int, []float64, error) {
	valids := p.game.ValidActions(b)
	fmt.Fprint(p.out, game.Render(b))
	fmt.Fprintln(p.out, "your move (m|h|v row col):")

	for p.in.Scan() {
		action, err := p.parse(p.in.Text())
		if err != nil {
			fmt.Fprintf(p.out, "%v, try again:\n", err)
			continue
		}
		if !valids[action] {
			fmt.Fprintln(p.out, "illegal move, try again:")
			continue
		}
		return action, nil, nil
	}
	if err := p.in.Err(); err != nil {
		return 0, nil, err
	}
	return 0, nil, io.EOF
}

func (p *Human) parse(line string) (int, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return 0, fmt.Errorf("expected 3 fields, got %d", len(fields))
	}

	var row, col int
	if _, err := fmt.Sscanf(fields[1]+" "+fields[2], "%d %d", &row, &col); err != nil {
		return 0, fmt.Errorf("bad coordinates %q %q", fields[1], fields[2])
	}

	var kind game.ActionKind
	switch fields[0] {
	case "m":
		kind = game.MovePawn
		if row < 0 || row >= p.game.N || col < 0 || col >= p.game.N {
			return 0, fmt.Errorf("cell (%d,%d) out of bounds", row, col)
		}
	case "h", "v":
		kind = game.PlaceHorizontal
		if fields[0] == "v" {
			kind = game.PlaceVertical
		}
		if row < 0 || row >= p.game.N-1 || col < 0 || col >= p.game.N-1 {
			return 0, fmt.Errorf("wall anchor (%d,%d) out of bounds", row, col)
		}
	default:
		return 0, fmt.Errorf("unknown action type %q", fields[0])
	}

	return p.game.EncodeAction(game.Action{Kind: kind, Pos: game.Pos{Row: row, Col: col}}), nil
}
