package game

import (
	"github.com/rs/zerolog/log"
)

// ActionKind discriminates the three classes of action id.
type ActionKind int

const (
	MovePawn ActionKind = iota
	PlaceHorizontal
	PlaceVertical
)

// Action is a decoded action id.
type Action struct {
	Kind ActionKind
	Pos  Pos
}

// Game carries the static rules for an n×n board: the action space layout,
// the turn limit and the draw-avoidance scaling constant. It holds no mutable
// state and is safe to share.
type Game struct {
	N               int
	MaxTurn         int
	WinningCriteria float64
}

func NewGame(n int) *Game {
	return &Game{
		N:               n,
		MaxTurn:         2 * n * n,
		WinningCriteria: 0.8,
	}
}

// InitBoard returns a fresh starting position.
func (g *Game) InitBoard() *Board {
	return NewBoard(g.N)
}

// ActionSize is the size of the action space: n² pawn destinations followed
// by (n-1)² horizontal and (n-1)² vertical wall anchors.
func (g *Game) ActionSize() int {
	return g.N*g.N + 2*(g.N-1)*(g.N-1)
}

// EncodeAction maps an action to its integer id. The mapping is a fixed wire
// contract shared with evaluators and persisted training data.
func (g *Game) EncodeAction(a Action) int {
	switch a.Kind {
	case MovePawn:
		return a.Pos.Row*g.N + a.Pos.Col
	case PlaceHorizontal:
		return g.N*g.N + a.Pos.Row*(g.N-1) + a.Pos.Col
	default:
		return g.N*g.N + (g.N-1)*(g.N-1) + a.Pos.Row*(g.N-1) + a.Pos.Col
	}
}

// DecodeAction is the exact inverse of EncodeAction. A malformed id is a
// programmer error and panics with the offending value.
func (g *Game) DecodeAction(id int) Action {
	if id < 0 || id >= g.ActionSize() {
		log.Panic().Int("action", id).Int("actionSize", g.ActionSize()).Msg("action id out of range")
	}

	if id < g.N*g.N {
		return Action{MovePawn, Pos{id / g.N, id % g.N}}
	}

	id -= g.N * g.N
	kind := PlaceHorizontal
	if id >= (g.N-1)*(g.N-1) {
		kind = PlaceVertical
		id -= (g.N - 1) * (g.N - 1)
	}
	return Action{kind, Pos{id / (g.N - 1), id % (g.N - 1)}}
}

// NextState applies the given player's action and returns the resulting board
// together with the next player. The input board is not mutated.
func (g *Game) NextState(b *Board, player int, action int) (*Board, int) {
	board := b.CanonicalForm(player)

	act := g.DecodeAction(action)
	switch act.Kind {
	case MovePawn:
		board.ExecuteMove(act.Pos)
	case PlaceHorizontal:
		board.PlaceWall(act.Pos, Horizontal)
	case PlaceVertical:
		board.PlaceWall(act.Pos, Vertical)
	}

	return board.CanonicalForm(player), -player
}

// ValidActions returns the legality mask over the full action space for the
// board's mover.
func (g *Game) ValidActions(b *Board) []bool {
	valids := make([]bool, g.ActionSize())
	for _, m := range b.LegalMoves() {
		valids[g.EncodeAction(Action{MovePawn, m})] = true
	}
	for _, w := range b.LegalWalls() {
		kind := PlaceHorizontal
		if w.Orientation == Vertical {
			kind = PlaceVertical
		}
		valids[g.EncodeAction(Action{kind, w.Pos})] = true
	}
	return valids
}

// WinStatus reports whether the game is over and, if so, its score from the
// given player's perspective: ±1 for a pawn on its goal row, or the
// shortest-path heuristic once the turn limit is reached.
func (g *Game) WinStatus(b *Board, player int) (float64, bool) {
	if b.Turns >= g.MaxTurn {
		return g.HeuristicScore(b, player), true
	}
	if b.IsWin(player) {
		return 1, true
	}
	if b.IsWin(-player) {
		return -1, true
	}
	return 0, false
}

// HeuristicScore scores an unfinished position as if it ended now: each
// pawn's BFS distance to its goal row decides, scaled to stay strictly
// inside (-WinningCriteria, WinningCriteria) so a truncated game can never
// look like an outright win.
func (g *Game) HeuristicScore(b *Board, player int) float64 {
	myDist := b.DistanceToGoal(1)
	enemyDist := b.DistanceToGoal(-1)
	ratio := float64(enemyDist-myDist) / float64(g.N*g.N)
	return float64(player) * ratio * g.WinningCriteria
}

// CanonicalPi remaps a policy vector computed over a canonical board back to
// the given player's orientation, mirroring the row transform CanonicalForm
// applies to positions and walls. Player 1 is the identity.
func (g *Game) CanonicalPi(pi []float64, player int) []float64 {
	if player == 1 {
		return pi
	}

	n := g.N
	out := make([]float64, len(pi))
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			out[(n-1-row)*n+col] = pi[row*n+col]
		}
	}
	for plane := 0; plane < 2; plane++ {
		base := n*n + plane*(n-1)*(n-1)
		for row := 0; row < n-1; row++ {
			for col := 0; col < n-1; col++ {
				out[base+(n-2-row)*(n-1)+col] = pi[base+row*(n-1)+col]
			}
		}
	}
	return out
}

// Symmetry pairs an equivalent board with its correspondingly remapped
// policy.
type Symmetry struct {
	Board *Board
	Pi    []float64
}

// Symmetries returns the training augmentations of a position: the identity
// and the left-right mirror.
func (g *Game) Symmetries(b *Board, pi []float64) []Symmetry {
	n := g.N
	flipped := make([]float64, len(pi))
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			flipped[row*n+(n-1-col)] = pi[row*n+col]
		}
	}
	for plane := 0; plane < 2; plane++ {
		base := n*n + plane*(n-1)*(n-1)
		for row := 0; row < n-1; row++ {
			for col := 0; col < n-1; col++ {
				flipped[base+row*(n-1)+(n-2-col)] = pi[base+row*(n-1)+col]
			}
		}
	}

	return []Symmetry{
		{b, pi},
		{b.FlippedForm(), flipped},
	}
}

// NetInput is the split network encoding of a position: positional planes
// plus the scalar wall budgets.
type NetInput struct {
	Planes  []float32
	Scalars []float32
}

// BoardToInput builds the evaluator input for a board: four n×n planes
// (mover pawn, opponent pawn, horizontal walls, vertical walls) and the two
// wall-budget scalars. The layout is a wire contract with the training side.
func (g *Game) BoardToInput(b *Board) NetInput {
	planes := make([]float32, g.N*g.N*4)
	at := func(p Pos, ch int) int { return (p.Row*g.N+p.Col)*4 + ch }

	planes[at(b.MyPos, 0)] = 1
	planes[at(b.EnemyPos, 1)] = 1
	for w := range b.HWalls {
		planes[at(w, 2)] = 1
	}
	for w := range b.VWalls {
		planes[at(w, 3)] = 1
	}

	return NetInput{
		Planes:  planes,
		Scalars: []float32{float32(b.MyWalls), float32(b.EnemyWalls)},
	}
}
