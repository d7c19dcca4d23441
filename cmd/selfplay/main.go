package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"quoridor/agent"
	"quoridor/game"
	"quoridor/searcher"
	"quoridor/selfplay"
)

func main() {
	n := flag.Int("n", 9, "board size")
	episodes := flag.Int("episodes", 100, "self-play episodes to generate")
	sims := flag.Int("sims", 25, "simulations per move")
	cpuct := flag.Float64("cpuct", 1.0, "exploration constant")
	tempThreshold := flag.Int("temp-threshold", 15, "ply after which moves are picked greedily")
	model := flag.String("model", "", "ONNX model path (greedy evaluator when empty)")
	out := flag.String("out", "examples.parquet", "output parquet file")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "rng seed")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	g := game.NewGame(*n)
	evaluator := buildEvaluator(g, *model)

	newSearcher := func() *searcher.MCTS {
		return searcher.NewMCTS(g, evaluator,
			searcher.WithSimulations(*sims), searcher.WithCpuct(*cpuct))
	}
	generator := selfplay.NewGenerator(g, newSearcher, *tempThreshold, *seed)

	var examples []selfplay.Example
	for i := 0; i < *episodes; i++ {
		episode, err := generator.Episode()
		if err != nil {
			log.Fatal().Err(err).Int("episode", i).Msg("episode failed")
		}
		examples = append(examples, episode...)
		log.Info().Int("episode", i).Int("examples", len(episode)).Msg("episode done")
	}

	if err := selfplay.WriteExamples(*out, examples); err != nil {
		log.Fatal().Err(err).Str("out", *out).Msg("failed to write examples")
	}
	log.Info().Int("examples", len(examples)).Str("out", *out).Msg("done")
}

func buildEvaluator(g *game.Game, model string) searcher.Evaluator {
	if model == "" {
		return agent.NewGreedyEvaluator(g)
	}
	evaluator, err := agent.NewOnnxEvaluator(g, model)
	if err != nil {
		log.Fatal().Err(err).Str("model", model).Msg("failed to load model")
	}
	return evaluator
}
