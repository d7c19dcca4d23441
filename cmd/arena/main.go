package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"quoridor/arena"
	"quoridor/game"
	"quoridor/player"
	"quoridor/searcher"
)

func main() {
	n := flag.Int("n", 9, "board size")
	games := flag.Int("games", 20, "number of games (half seat-swapped)")
	p1 := flag.String("p1", "greedy-mcts", "first player: random|greedy|greedy-mcts")
	p2 := flag.String("p2", "greedy", "second player: random|greedy|greedy-mcts")
	sims := flag.Int("sims", 50, "simulations per MCTS move")
	out := flag.String("out", "records", "directory for CSV game records")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "rng seed")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	g := game.NewGame(*n)
	a := arena.New(g, buildPlayer(g, *p1, *sims, *seed), buildPlayer(g, *p2, *sims, *seed+1))

	writer, err := arena.NewRecordWriter(*out)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create record writer")
	}

	result, err := a.PlaySeries(*games, writer)
	if err != nil {
		log.Fatal().Err(err).Msg("series failed")
	}

	log.Info().
		Int("wins1", result.Wins1).
		Int("wins2", result.Wins2).
		Int("draws", result.Draws).
		Str("records", writer.Dir()).
		Msg("series over")
}

func buildPlayer(g *game.Game, kind string, sims int, seed uint64) player.Player {
	switch kind {
	case "random":
		return player.NewRandom(g, seed)
	case "greedy":
		return player.NewGreedy(g, seed)
	case "greedy-mcts":
		return player.NewGreedyMCTS(g, 1, seed, searcher.WithSimulations(sims))
	default:
		log.Fatal().Str("player", kind).Msg("unknown player kind")
		return nil
	}
}
