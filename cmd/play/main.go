package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"quoridor/agent"
	"quoridor/game"
	"quoridor/player"
	"quoridor/searcher"
)

func main() {
	n := flag.Int("n", 9, "board size")
	p1 := flag.String("p1", "human", "first player: human|random|greedy|mcts|greedy-mcts")
	p2 := flag.String("p2", "greedy-mcts", "second player: human|random|greedy|mcts|greedy-mcts")
	sims := flag.Int("sims", 100, "simulations per MCTS move")
	cpuct := flag.Float64("cpuct", 1.0, "exploration constant for MCTS players")
	model := flag.String("model", "", "ONNX model path for mcts players")
	server := flag.String("server", "", "evaluator server URL for mcts players (overrides -model)")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "rng seed")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	g := game.NewGame(*n)
	players := map[int]player.Player{
		1:  buildPlayer(g, *p1, *sims, *cpuct, *model, *server, *seed),
		-1: buildPlayer(g, *p2, *sims, *cpuct, *model, *server, *seed+1),
	}

	board := g.InitBoard()
	curPlayer := 1
	for {
		if score, ended := g.WinStatus(board, curPlayer); ended {
			fmt.Print(game.Render(board.CanonicalForm(1)))
			log.Info().Float64("score", float64(curPlayer)*score).Msg("game over (score is from player 1's perspective)")
			return
		}

		canonical := board.CanonicalForm(curPlayer)
		action, _, err := players[curPlayer].Play(canonical)
		if err != nil {
			log.Fatal().Err(err).Msg("player failed")
		}

		act := g.DecodeAction(action)
		log.Info().Int("player", curPlayer).Int("action", action).
			Str("kind", kindName(act.Kind)).
			Str("pos", fmt.Sprintf("(%d,%d)", act.Pos.Row, act.Pos.Col)).
			Msg("move")

		board, curPlayer = g.NextState(board, curPlayer, action)
		fmt.Print(game.Render(board.CanonicalForm(1)))
	}
}

func buildPlayer(g *game.Game, kind string, sims int, cpuct float64, model, server string, seed uint64) player.Player {
	switch strings.ToLower(kind) {
	case "human":
		return player.NewHuman(g, os.Stdin, os.Stdout)
	case "random":
		return player.NewRandom(g, seed)
	case "greedy":
		return player.NewGreedy(g, seed)
	case "greedy-mcts":
		return player.NewGreedyMCTS(g, 1, seed, searcher.WithSimulations(sims))
	case "mcts":
		m := searcher.NewMCTS(g, buildEvaluator(g, model, server),
			searcher.WithSimulations(sims), searcher.WithCpuct(cpuct), searcher.WithSeed(seed))
		return player.NewMCTS(m, 1, seed)
	default:
		log.Fatal().Str("player", kind).Msg("unknown player kind")
		return nil
	}
}

func buildEvaluator(g *game.Game, model, server string) searcher.Evaluator {
	if server != "" {
		return agent.NewRemoteEvaluator(server)
	}
	if model != "" {
		evaluator, err := agent.NewOnnxEvaluator(g, model)
		if err != nil {
			log.Fatal().Err(err).Str("model", model).Msg("failed to load model")
		}
		return evaluator
	}
	log.Warn().Msg("mcts player without -model or -server, using uniform priors")
	return agent.NewUniformEvaluator(g)
}

func kindName(k game.ActionKind) string {
	switch k {
	case game.MovePawn:
		return "move"
	case game.PlaceHorizontal:
		return "h-wall"
	default:
		return "v-wall"
	}
}
