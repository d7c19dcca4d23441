package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestActionSize(t *testing.T) {
	require.Equal(t, 9*9+2*8*8, NewGame(9).ActionSize())
	require.Equal(t, 5*5+2*4*4, NewGame(5).ActionSize())
}

func TestActionCodec(t *testing.T) {
	t.Run("decode is the exact inverse of encode", func(t *testing.T) {
		for _, n := range []int{5, 9} {
			g := NewGame(n)
			for id := 0; id < g.ActionSize(); id++ {
				require.Equal(t, id, g.EncodeAction(g.DecodeAction(id)), "n=%d id=%d", n, id)
			}
		}
	})

	t.Run("id partitions map to the right kinds", func(t *testing.T) {
		g := NewGame(9)

		require.Equal(t, Action{MovePawn, Pos{2, 3}}, g.DecodeAction(2*9+3))
		require.Equal(t, Action{PlaceHorizontal, Pos{0, 0}}, g.DecodeAction(81))
		require.Equal(t, Action{PlaceVertical, Pos{0, 0}}, g.DecodeAction(81+64))
		require.Equal(t, Action{PlaceVertical, Pos{7, 7}}, g.DecodeAction(g.ActionSize()-1))
	})

	t.Run("malformed ids panic", func(t *testing.T) {
		g := NewGame(9)

		require.Panics(t, func() { g.DecodeAction(-1) })
		require.Panics(t, func() { g.DecodeAction(g.ActionSize()) })
	})
}

func TestNextState(t *testing.T) {
	t.Run("player 1 move leaves orientation alone", func(t *testing.T) {
		g := NewGame(9)
		b := g.InitBoard()

		next, nextPlayer := g.NextState(b, 1, g.EncodeAction(Action{MovePawn, Pos{1, 4}}))

		require.Equal(t, -1, nextPlayer)
		require.Equal(t, Pos{1, 4}, next.MyPos)
		require.Equal(t, 1, next.Turns)
		require.Equal(t, Pos{0, 4}, b.MyPos, "Input board is not mutated")
		require.Equal(t, 0, b.Turns)
	})

	t.Run("player -1 actions are applied in its canonical frame", func(t *testing.T) {
		g := NewGame(9)
		b := g.InitBoard()

		// In player -1's canonical frame its pawn sits at (0,4); moving
		// "forward" to (1,4) means moving to (7,4) on the real board.
		next, nextPlayer := g.NextState(b, -1, g.EncodeAction(Action{MovePawn, Pos{1, 4}}))

		require.Equal(t, 1, nextPlayer)
		require.Equal(t, Pos{7, 4}, next.EnemyPos)
		require.Equal(t, Pos{0, 4}, next.MyPos, "Player 1's pawn did not move")
	})

	t.Run("player -1 wall placement spends its own budget", func(t *testing.T) {
		g := NewGame(9)
		b := g.InitBoard()

		next, _ := g.NextState(b, -1, g.EncodeAction(Action{PlaceHorizontal, Pos{0, 0}}))

		require.Equal(t, 9, next.EnemyWalls)
		require.Equal(t, 10, next.MyWalls)
		require.Contains(t, next.HWalls, Pos{7, 0}, "Anchor row reflects back as n-2-row")
	})
}

func TestValidActions(t *testing.T) {
	t.Run("marks start-position moves and walls", func(t *testing.T) {
		g := NewGame(9)
		b := g.InitBoard()

		valids := g.ValidActions(b)

		count := 0
		for _, ok := range valids {
			if ok {
				count++
			}
		}
		require.Equal(t, 3+2*8*8, count)
		require.True(t, valids[g.EncodeAction(Action{MovePawn, Pos{1, 4}})])
		require.False(t, valids[g.EncodeAction(Action{MovePawn, Pos{0, 4}})], "Own cell is never a move")
	})

	t.Run("no wall actions without budget", func(t *testing.T) {
		g := NewGame(9)
		b := g.InitBoard()
		b.MyWalls = 0

		valids := g.ValidActions(b)

		for id := g.N * g.N; id < g.ActionSize(); id++ {
			require.False(t, valids[id])
		}
	})
}

func TestWinStatus(t *testing.T) {
	g := NewGame(9)

	t.Run("ongoing game has no status", func(t *testing.T) {
		_, ended := g.WinStatus(g.InitBoard(), 1)
		require.False(t, ended)
	})

	t.Run("mover on its goal row wins", func(t *testing.T) {
		b := g.InitBoard()
		b.MyPos = Pos{8, 4}

		score, ended := g.WinStatus(b, 1)
		require.True(t, ended)
		require.Equal(t, 1.0, score)

		score, ended = g.WinStatus(b, -1)
		require.True(t, ended)
		require.Equal(t, -1.0, score, "Same outcome seen from the loser")
	})

	t.Run("opponent on row 0 wins for the opponent", func(t *testing.T) {
		b := g.InitBoard()
		b.EnemyPos = Pos{0, 3}

		score, ended := g.WinStatus(b, 1)
		require.True(t, ended)
		require.Equal(t, -1.0, score)
	})

	t.Run("turn limit yields a bounded shortest-path heuristic", func(t *testing.T) {
		b := g.InitBoard()
		b.MyPos = Pos{6, 4} // 2 from goal, opponent 8 from goal
		b.Turns = g.MaxTurn

		score, ended := g.WinStatus(b, 1)
		require.True(t, ended)
		require.Greater(t, score, 0.0, "Closer pawn scores positively")
		require.Less(t, score, g.WinningCriteria, "Heuristic never reaches the winning criteria")
		require.InDelta(t, 0.8*float64(8-2)/81, score, 1e-9)

		mirror, _ := g.WinStatus(b, -1)
		require.InDelta(t, -score, mirror, 1e-9)
	})
}

func TestCanonicalPi(t *testing.T) {
	g := NewGame(5)

	t.Run("player 1 is the identity", func(t *testing.T) {
		pi := make([]float64, g.ActionSize())
		pi[7] = 1

		require.Equal(t, pi, g.CanonicalPi(pi, 1))
	})

	t.Run("player -1 reflects rows in every partition", func(t *testing.T) {
		pi := make([]float64, g.ActionSize())
		moveID := g.EncodeAction(Action{MovePawn, Pos{1, 2}})
		hID := g.EncodeAction(Action{PlaceHorizontal, Pos{0, 3}})
		vID := g.EncodeAction(Action{PlaceVertical, Pos{2, 1}})
		pi[moveID] = 0.5
		pi[hID] = 0.3
		pi[vID] = 0.2

		mapped := g.CanonicalPi(pi, -1)

		require.Equal(t, 0.5, mapped[g.EncodeAction(Action{MovePawn, Pos{5 - 1 - 1, 2}})])
		require.Equal(t, 0.3, mapped[g.EncodeAction(Action{PlaceHorizontal, Pos{5 - 2 - 0, 3}})])
		require.Equal(t, 0.2, mapped[g.EncodeAction(Action{PlaceVertical, Pos{5 - 2 - 2, 1}})])
		require.InDelta(t, 1.0, sum(mapped), 1e-9, "Mass is only moved, never lost")
	})
}

func TestSymmetries(t *testing.T) {
	g := NewGame(5)
	b := g.InitBoard()
	b.MyPos = Pos{1, 0}
	b.HWalls[Pos{2, 1}] = true

	pi := make([]float64, g.ActionSize())
	moveID := g.EncodeAction(Action{MovePawn, Pos{1, 1}})
	wallID := g.EncodeAction(Action{PlaceHorizontal, Pos{2, 1}})
	pi[moveID] = 0.6
	pi[wallID] = 0.4

	syms := g.Symmetries(b, pi)

	require.Len(t, syms, 2)
	require.Equal(t, b, syms[0].Board, "First symmetry is the identity")
	require.Equal(t, pi, syms[0].Pi)

	flipped := syms[1]
	require.Equal(t, Pos{1, 4}, flipped.Board.MyPos)
	require.Equal(t, 0.6, flipped.Pi[g.EncodeAction(Action{MovePawn, Pos{1, 5 - 1 - 1}})])
	require.Equal(t, 0.4, flipped.Pi[g.EncodeAction(Action{PlaceHorizontal, Pos{2, 5 - 2 - 1}})])
	require.InDelta(t, 1.0, sum(flipped.Pi), 1e-9)
}

func TestBoardToInput(t *testing.T) {
	g := NewGame(5)
	b := g.InitBoard()
	b.VWalls[Pos{2, 3}] = true

	in := g.BoardToInput(b)

	require.Len(t, in.Planes, 5*5*4)
	require.Len(t, in.Scalars, 2)
	at := func(r, c, ch int) float32 { return in.Planes[(r*5+c)*4+ch] }
	require.Equal(t, float32(1), at(0, 2, 0))
	require.Equal(t, float32(1), at(4, 2, 1))
	require.Equal(t, float32(1), at(2, 3, 3))
	require.Equal(t, []float32{3, 3}, in.Scalars)
}

func TestRender(t *testing.T) {
	b := NewBoard(5)
	b.HWalls[Pos{1, 1}] = true

	out := Render(b)

	require.Contains(t, out, "●")
	require.Contains(t, out, "■")
	require.Contains(t, out, "━")
	require.Contains(t, out, "walls ●: 3  ■: 3")
}

func sum(xs []float64) float64 {
	total := 0.0
	for _, x := range xs {
		total += x
	}
	return total
}
