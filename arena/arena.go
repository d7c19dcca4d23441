// Package arena pits two players against each other and tallies results.
package arena

import (
	"time"

	"github.com/rs/zerolog/log"

	"quoridor/game"
	"quoridor/player"
)

// Arena runs evaluation games between two players on a shared rule set.
type Arena struct {
	game    *game.Game
	player1 player.Player
	player2 player.Player
}

// Result tallies a series from player1's perspective. A game counts as a win
// only when its score clears the winning criteria; turn-limited games near
// zero are draws.
type Result struct {
	Wins1 int
	Wins2 int
	Draws int
}

func New(g *game.Game, player1, player2 player.Player) *Arena {
	return &Arena{game: g, player1: player1, player2: player2}
}

// PlayGame runs a single game and returns its score from player1's
// perspective. With swapped set, player2 moves first and the score is
// negated back.
func (a *Arena) PlayGame(swapped bool) (float64, int, error) {
	first, second := a.player1, a.player2
	if swapped {
		first, second = a.player2, a.player1
	}

	board := a.game.InitBoard()
	curPlayer := 1
	moves := 0

	for {
		if _, ended := a.game.WinStatus(board, curPlayer); ended {
			break
		}

		canonical := board.CanonicalForm(curPlayer)
		mover := first
		if curPlayer == -1 {
			mover = second
		}

		action, _, err := mover.Play(canonical)
		if err != nil {
			return 0, moves, err
		}
		if valids := a.game.ValidActions(canonical); !valids[action] {
			// A player returning an illegal action is a bug in its codec or
			// legality logic, not a losable game.
			log.Panic().Int("action", action).Str("board", canonical.Key()).Msg("player chose an illegal action")
		}

		board, curPlayer = a.game.NextState(board, curPlayer, action)
		moves++
	}

	score, _ := a.game.WinStatus(board, curPlayer)
	result := float64(curPlayer) * score
	if swapped {
		result = -result
	}
	return result, moves, nil
}

// PlaySeries runs num games, half of them seat-swapped, and tallies the
// outcome. When a writer is given every game is recorded.
func (a *Arena) PlaySeries(num int, w *RecordWriter) (Result, error) {
	var tally Result
	records := make([]GameRecord, 0, num)

	for i := 0; i < num; i++ {
		swapped := i >= num/2
		start := time.Now()
		score, moves, err := a.PlayGame(swapped)
		if err != nil {
			return tally, err
		}

		switch {
		case score > a.game.WinningCriteria:
			tally.Wins1++
		case score < -a.game.WinningCriteria:
			tally.Wins2++
		default:
			tally.Draws++
		}

		log.Info().Int("game", i).Bool("swapped", swapped).Float64("score", score).Int("moves", moves).Msg("game over")
		records = append(records, GameRecord{
			Game:     i,
			Swapped:  swapped,
			Score:    score,
			Moves:    moves,
			Duration: time.Since(start),
		})
	}

	if w != nil {
		if err := w.WriteGameRecords(records); err != nil {
			return tally, err
		}
	}
	return tally, nil
}
