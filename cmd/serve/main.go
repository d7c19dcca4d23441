package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"quoridor/agent"
	"quoridor/game"
	"quoridor/searcher"
)

func main() {
	n := flag.Int("n", 9, "board size")
	port := flag.String("port", "8080", "port to listen on")
	kind := flag.String("evaluator", "greedy", "evaluator to serve: uniform|greedy|onnx")
	model := flag.String("model", "", "ONNX model path for -evaluator onnx")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	g := game.NewGame(*n)

	var evaluator searcher.Evaluator
	switch *kind {
	case "uniform":
		evaluator = agent.NewUniformEvaluator(g)
	case "greedy":
		evaluator = agent.NewGreedyEvaluator(g)
	case "onnx":
		onnx, err := agent.NewOnnxEvaluator(g, *model)
		if err != nil {
			log.Fatal().Err(err).Str("model", *model).Msg("failed to load model")
		}
		defer onnx.Close()
		evaluator = onnx
	default:
		log.Fatal().Str("evaluator", *kind).Msg("unknown evaluator kind")
	}

	if err := agent.ListenAndServe(*port, evaluator); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
