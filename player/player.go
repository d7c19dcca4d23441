// Package player implements move-selection strategies on top of the rules
// engine and the searcher.
package player

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"

	"quoridor/agent"
	"quoridor/game"
	"quoridor/searcher"
)

// Player picks an action for the mover of a canonical board. It returns the
// chosen action id and the distribution it was drawn from (nil when the
// strategy has no meaningful distribution).
type Player interface {
	Play(b *game.Board) (action int, pi []float64, err error)
}

// sample draws an action id from a probability distribution.
func sample(rng *rand.Rand, probs []float64) int {
	r := rng.Float64()
	cumulative := 0.0
	last := 0
	for a, p := range probs {
		if p == 0 {
			continue
		}
		cumulative += p
		if r < cumulative {
			return a
		}
		last = a
	}
	return last
}

// Random plays a uniformly random legal action.
type Random struct {
	game *game.Game
	rng  *rand.Rand
}

func NewRandom(g *game.Game, seed uint64) *Random {
	return &Random{game: g, rng: rand.New(rand.NewSource(seed))}
}

func (p *Random) Play(b *game.Board) (int, []float64, error) {
	valids := p.game.ValidActions(b)
	count := 0
	for _, ok := range valids {
		if ok {
			count++
		}
	}
	if count == 0 {
		return 0, nil, errors.New("no legal action to play")
	}

	pi := make([]float64, len(valids))
	for a, ok := range valids {
		if ok {
			pi[a] = 1 / float64(count)
		}
	}
	return sample(p.rng, pi), pi, nil
}

// Greedy plays a uniformly random action among those that maximize the
// one-ply shortest-path advantage.
type Greedy struct {
	evaluator *agent.GreedyEvaluator
	rng       *rand.Rand
}

func NewGreedy(g *game.Game, seed uint64) *Greedy {
	return &Greedy{
		evaluator: agent.NewGreedyEvaluator(g),
		rng:       rand.New(rand.NewSource(seed)),
	}
}

func (p *Greedy) Play(b *game.Board) (int, []float64, error) {
	pi, _, err := p.evaluator.Evaluate(b)
	if err != nil {
		return 0, nil, err
	}
	return sample(p.rng, pi), pi, nil
}

// MCTS plays from the searcher's visit-count distribution at the given
// temperature.
type MCTS struct {
	mcts *searcher.MCTS
	temp float64
	rng  *rand.Rand
}

func NewMCTS(m *searcher.MCTS, temp float64, seed uint64) *MCTS {
	return &MCTS{mcts: m, temp: temp, rng: rand.New(rand.NewSource(seed))}
}

func (p *MCTS) Play(b *game.Board) (int, []float64, error) {
	pi, err := p.mcts.ActionProbs(b, p.temp)
	if err != nil {
		return 0, nil, errors.Wrap(err, "search failed")
	}
	return sample(p.rng, pi), pi, nil
}

// NewGreedyMCTS is an MCTS player whose priors come from the greedy
// evaluator instead of a network.
func NewGreedyMCTS(g *game.Game, temp float64, seed uint64, options ...searcher.Option) *MCTS {
	opts := append([]searcher.Option{searcher.WithCpuct(0.3)}, options...)
	m := searcher.NewMCTS(g, agent.NewGreedyEvaluator(g), opts...)
	return NewMCTS(m, temp, seed)
}
