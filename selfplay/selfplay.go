// Package selfplay generates training examples by having the searcher play
// against itself. Orchestrating many concurrent generators is the caller's
// concern; each episode builds its own engine so no statistics table is ever
// shared.
package selfplay

import (
	"github.com/google/uuid"
	"golang.org/x/exp/rand"

	"quoridor/game"
	"quoridor/searcher"
)

// Example is one training sample: the network input for a canonical board,
// the search policy at that board, and the final outcome from the sample
// owner's perspective.
type Example struct {
	GameID  string    `parquet:"game_id"`
	Planes  []float32 `parquet:"planes"`
	Scalars []float32 `parquet:"scalars"`
	Policy  []float32 `parquet:"policy"`
	Value   float32   `parquet:"value"`
}

// Generator produces self-play episodes.
type Generator struct {
	game *game.Game
	// newSearcher builds a fresh engine per episode; engines own their
	// statistics tables and must not be reused across concurrent episodes.
	newSearcher func() *searcher.MCTS
	// tempThreshold is the ply after which moves are picked greedily
	// (temperature 0) instead of sampled (temperature 1).
	tempThreshold int
	rng           *rand.Rand
}

func NewGenerator(g *game.Game, newSearcher func() *searcher.MCTS, tempThreshold int, seed uint64) *Generator {
	return &Generator{
		game:          g,
		newSearcher:   newSearcher,
		tempThreshold: tempThreshold,
		rng:           rand.New(rand.NewSource(seed)),
	}
}

type pending struct {
	input  game.NetInput
	pi     []float64
	player int
}

// Episode plays one self-play game to the end and returns its examples,
// both symmetries per visited position, each labeled with the final outcome
// from its owner's perspective.
func (g *Generator) Episode() ([]Example, error) {
	id := uuid.NewString()
	mcts := g.newSearcher()
	board := g.game.InitBoard()
	curPlayer := 1
	step := 0

	var buf []pending
	for {
		step++
		canonical := board.CanonicalForm(curPlayer)

		temp := 1.0
		if step >= g.tempThreshold {
			temp = 0
		}
		pi, err := mcts.ActionProbs(canonical, temp)
		if err != nil {
			return nil, err
		}

		for _, sym := range g.game.Symmetries(canonical, pi) {
			buf = append(buf, pending{
				input:  g.game.BoardToInput(sym.Board),
				pi:     sym.Pi,
				player: curPlayer,
			})
		}

		action := sampleAction(g.rng, pi)
		board, curPlayer = g.game.NextState(board, curPlayer, action)

		if r, ended := g.game.WinStatus(board, curPlayer); ended {
			return g.label(id, buf, r, curPlayer), nil
		}
	}
}

// label assigns the final result to every buffered sample, negating it for
// samples owned by the player the result does not belong to.
func (g *Generator) label(id string, buf []pending, result float64, finalPlayer int) []Example {
	out := make([]Example, len(buf))
	for i, p := range buf {
		v := result
		if p.player != finalPlayer {
			v = -result
		}
		out[i] = Example{
			GameID:  id,
			Planes:  p.input.Planes,
			Scalars: p.input.Scalars,
			Policy:  toFloat32(p.pi),
			Value:   float32(v),
		}
	}
	return out
}

func sampleAction(rng *rand.Rand, probs []float64) int {
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

func toFloat32(xs []float64) []float32 {
	out := make([]float32, len(xs))
	for i, x := range xs {
		out[i] = float32(x)
	}
	return out
}
