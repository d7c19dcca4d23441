package agent

import (
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"quoridor/game"
)

func TestUniformEvaluator(t *testing.T) {
	g := game.NewGame(5)
	b := g.InitBoard()

	policy, value, err := NewUniformEvaluator(g).Evaluate(b)

	require.NoError(t, err)
	require.Zero(t, value)
	require.Len(t, policy, g.ActionSize())

	valids := g.ValidActions(b)
	count := 0
	for _, ok := range valids {
		if ok {
			count++
		}
	}
	total := 0.0
	for a, p := range policy {
		if valids[a] {
			require.InDelta(t, 1/float64(count), p, 1e-9)
		} else {
			require.Zero(t, p)
		}
		total += p
	}
	require.InDelta(t, 1.0, total, 1e-9)
}

func TestGreedyEvaluator(t *testing.T) {
	t.Run("prefers the move that wins the shortest-path race", func(t *testing.T) {
		g := game.NewGame(5)
		b := g.InitBoard()
		b.MyWalls = 0 // Only pawn moves remain
		b.EnemyWalls = 0

		policy, value, err := NewGreedyEvaluator(g).Evaluate(b)

		require.NoError(t, err)
		// Stepping forward puts the mover one step ahead of the opponent.
		require.InDelta(t, 1.0/25, value, 1e-9)

		forward := g.EncodeAction(game.Action{Kind: game.MovePawn, Pos: game.Pos{Row: 1, Col: 2}})
		require.Equal(t, 1.0, policy[forward])
		for a, p := range policy {
			if a != forward {
				require.Zero(t, p, "action %d", a)
			}
		}
	})

	t.Run("splits the prior over equally good actions", func(t *testing.T) {
		g := game.NewGame(5)
		b := g.InitBoard()

		policy, value, err := NewGreedyEvaluator(g).Evaluate(b)

		require.NoError(t, err)
		require.InDelta(t, 1.0/25, value, 1e-9)

		total := 0.0
		var mass float64
		for _, p := range policy {
			total += p
			if p > 0 {
				if mass == 0 {
					mass = p
				}
				require.Equal(t, mass, p, "Best actions share the prior equally")
			}
		}
		require.InDelta(t, 1.0, total, 1e-9)
	})
}

// echoEvaluator records the board it saw and replies with fixed numbers.
type echoEvaluator struct {
	game   *game.Game
	seen   string
	policy []float64
	value  float64
	fail   error
}

func (e *echoEvaluator) Evaluate(b *game.Board) ([]float64, float64, error) {
	e.seen = b.Key()
	if e.fail != nil {
		return nil, 0, e.fail
	}
	return e.policy, e.value, nil
}

func TestRemoteEvaluator(t *testing.T) {
	g := game.NewGame(5)

	t.Run("round-trips boards and evaluations over HTTP", func(t *testing.T) {
		backend := &echoEvaluator{
			game:   g,
			policy: []float64{0.25, 0.75},
			value:  -0.5,
		}
		server := httptest.NewServer(Handler(backend))
		defer server.Close()

		b := g.InitBoard()
		b.HWalls[game.Pos{Row: 1, Col: 2}] = true
		b.VWalls[game.Pos{Row: 3, Col: 0}] = true
		b.MyWalls = 2
		b.Turns = 11

		policy, value, err := NewRemoteEvaluator(server.URL).Evaluate(b)

		require.NoError(t, err)
		require.Equal(t, backend.policy, policy)
		require.Equal(t, backend.value, value)
		require.Equal(t, b.Key(), backend.seen, "The server reconstructed the same board")
	})

	t.Run("surfaces server-side evaluation failures", func(t *testing.T) {
		backend := &echoEvaluator{game: g, fail: errors.New("session crashed")}
		server := httptest.NewServer(Handler(backend))
		defer server.Close()

		_, _, err := NewRemoteEvaluator(server.URL).Evaluate(g.InitBoard())

		require.ErrorContains(t, err, "500")
	})

	t.Run("fails cleanly when the server is gone", func(t *testing.T) {
		server := httptest.NewServer(Handler(&echoEvaluator{game: g}))
		server.Close()

		_, _, err := NewRemoteEvaluator(server.URL).Evaluate(g.InitBoard())

		require.Error(t, err)
	})
}
