// Package agent provides evaluator implementations for the searcher: pure
// heuristics, an ONNX network session and a JSON-over-HTTP remote pair.
package agent

import (
	"math"

	"quoridor/game"
)

// UniformEvaluator spreads prior mass evenly over every legal action and
// estimates every position at 0. It is the weakest useful baseline.
type UniformEvaluator struct {
	game *game.Game
}

func NewUniformEvaluator(g *game.Game) *UniformEvaluator {
	return &UniformEvaluator{game: g}
}

func (e *UniformEvaluator) Evaluate(b *game.Board) ([]float64, float64, error) {
	valids := e.game.ValidActions(b)
	count := 0
	for _, ok := range valids {
		if ok {
			count++
		}
	}

	policy := make([]float64, len(valids))
	for a, ok := range valids {
		if ok {
			policy[a] = 1 / float64(count)
		}
	}
	return policy, 0, nil
}

// GreedyEvaluator scores every legal action by one-ply lookahead on the
// shortest-path race: an action is better the further ahead of the opponent
// it leaves the mover. The prior is uniform over the best-scoring actions
// and the value is the best score.
type GreedyEvaluator struct {
	game *game.Game
}

func NewGreedyEvaluator(g *game.Game) *GreedyEvaluator {
	return &GreedyEvaluator{game: g}
}

func (e *GreedyEvaluator) Evaluate(b *game.Board) ([]float64, float64, error) {
	valids := e.game.ValidActions(b)
	scores := make([]float64, len(valids))
	best := math.Inf(-1)

	for a, ok := range valids {
		if !ok {
			continue
		}
		next, _ := e.game.NextState(b, 1, a)
		myDist := next.DistanceToGoal(1)
		enemyDist := next.DistanceToGoal(-1)
		scores[a] = -float64(myDist-enemyDist) / float64(e.game.N*e.game.N)
		if scores[a] > best {
			best = scores[a]
		}
	}

	count := 0
	for a, ok := range valids {
		if ok && scores[a] == best {
			count++
		}
	}

	policy := make([]float64, len(valids))
	for a, ok := range valids {
		if ok && scores[a] == best {
			policy[a] = 1 / float64(count)
		}
	}
	return policy, best, nil
}
