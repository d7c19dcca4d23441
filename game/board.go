package game

import (
	"fmt"
	"sort"
	"strings"
)

// Wall orientations.
const (
	Horizontal = 0
	Vertical   = 1
)

// Pos is a cell coordinate, or a wall anchor on the (n-1)×(n-1) anchor grid.
type Pos struct {
	Row int
	Col int
}

// Wall is a placed or candidate wall segment.
type Wall struct {
	Pos         Pos
	Orientation int
}

// Board holds a full Quoridor position from the mover's perspective: once a
// board has been canonicalized, MyPos belongs to the player whose turn it is
// and that player's goal is row n-1.
type Board struct {
	N          int
	MyPos      Pos
	EnemyPos   Pos
	MyWalls    int
	EnemyWalls int
	HWalls     map[Pos]bool
	VWalls     map[Pos]bool
	Turns      int
}

// NewBoard returns the starting position: both pawns centered on their back
// rows with n²/8 walls each.
func NewBoard(n int) *Board {
	return &Board{
		N:          n,
		MyPos:      Pos{0, n / 2},
		EnemyPos:   Pos{n - 1, n / 2},
		MyWalls:    n * n / 8,
		EnemyWalls: n * n / 8,
		HWalls:     make(map[Pos]bool),
		VWalls:     make(map[Pos]bool),
	}
}

// CanonicalForm returns an independent copy of the board oriented so that the
// given player is the mover heading toward increasing row index. Player 1 is
// the identity; player -1 swaps pawn roles and wall budgets and reflects all
// row coordinates. Applying it twice with alternating signs restores the
// original position.
func (b *Board) CanonicalForm(player int) *Board {
	board := NewBoard(b.N)
	board.Turns = b.Turns

	if player == 1 {
		board.MyPos = b.MyPos
		board.EnemyPos = b.EnemyPos
		board.MyWalls = b.MyWalls
		board.EnemyWalls = b.EnemyWalls
		for w := range b.HWalls {
			board.HWalls[w] = true
		}
		for w := range b.VWalls {
			board.VWalls[w] = true
		}
		return board
	}

	board.MyPos = Pos{b.N - 1 - b.EnemyPos.Row, b.EnemyPos.Col}
	board.EnemyPos = Pos{b.N - 1 - b.MyPos.Row, b.MyPos.Col}
	board.MyWalls = b.EnemyWalls
	board.EnemyWalls = b.MyWalls
	for w := range b.HWalls {
		board.HWalls[Pos{b.N - 2 - w.Row, w.Col}] = true
	}
	for w := range b.VWalls {
		board.VWalls[Pos{b.N - 2 - w.Row, w.Col}] = true
	}
	return board
}

// FlippedForm returns an independent left-right mirror of the board. Player
// roles are unchanged; it exists for training-data symmetry augmentation.
func (b *Board) FlippedForm() *Board {
	board := NewBoard(b.N)
	board.MyPos = Pos{b.MyPos.Row, b.N - 1 - b.MyPos.Col}
	board.EnemyPos = Pos{b.EnemyPos.Row, b.N - 1 - b.EnemyPos.Col}
	board.MyWalls = b.MyWalls
	board.EnemyWalls = b.EnemyWalls
	board.Turns = b.Turns
	for w := range b.HWalls {
		board.HWalls[Pos{w.Row, b.N - 2 - w.Col}] = true
	}
	for w := range b.VWalls {
		board.VWalls[Pos{w.Row, b.N - 2 - w.Col}] = true
	}
	return board
}

// Key returns an injective, order-independent serialization of the position.
// Distinct states always produce distinct keys, so key equality is structural
// equality; the search statistics table relies on this.
func (b *Board) Key() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "(%d,%d):(%d,%d):", b.MyPos.Row, b.MyPos.Col, b.EnemyPos.Row, b.EnemyPos.Col)
	sb.WriteString(formatWalls(b.HWalls))
	sb.WriteByte(':')
	sb.WriteString(formatWalls(b.VWalls))
	fmt.Fprintf(&sb, ":%d:%d:%d", b.MyWalls, b.EnemyWalls, b.Turns)
	return sb.String()
}

func formatWalls(walls map[Pos]bool) string {
	sorted := make([]Pos, 0, len(walls))
	for w := range walls {
		sorted = append(sorted, w)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Row != sorted[j].Row {
			return sorted[i].Row < sorted[j].Row
		}
		return sorted[i].Col < sorted[j].Col
	})

	parts := make([]string, len(sorted))
	for i, w := range sorted {
		parts[i] = fmt.Sprintf("(%d,%d)", w.Row, w.Col)
	}
	return strings.Join(parts, ",")
}

// ExecuteMove relocates the mover's pawn. The caller guarantees legality.
func (b *Board) ExecuteMove(pos Pos) {
	b.MyPos = pos
	b.Turns++
}

// PlaceWall adds a wall for the mover and spends one wall from their budget.
// The caller guarantees legality.
func (b *Board) PlaceWall(pos Pos, orientation int) {
	if orientation == Horizontal {
		b.HWalls[pos] = true
	} else {
		b.VWalls[pos] = true
	}
	b.MyWalls--
	b.Turns++
}

// IsWin reports whether the given player's pawn stands on its goal row.
func (b *Board) IsWin(player int) bool {
	if player == 1 {
		return b.MyPos.Row == b.N-1
	}
	return b.EnemyPos.Row == 0
}

// wallBetween reports whether a wall separates two adjacent cells.
func (b *Board) wallBetween(p1, p2 Pos) bool {
	if p1.Row == p2.Row {
		col := min(p1.Col, p2.Col)
		return b.VWalls[Pos{p1.Row - 1, col}] || b.VWalls[Pos{p1.Row, col}]
	}
	if p1.Col == p2.Col {
		row := min(p1.Row, p2.Row)
		return b.HWalls[Pos{row, p1.Col - 1}] || b.HWalls[Pos{row, p1.Col}]
	}
	return false
}

func (b *Board) inBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < b.N && p.Col >= 0 && p.Col < b.N
}

var directions = []Pos{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// LegalMoves returns every cell the mover's pawn may step to: orthogonal
// steps to free cells, a straight jump over an adjacent opponent, or the two
// perpendicular side-steps when that jump is wall-blocked or off the board.
func (b *Board) LegalMoves() []Pos {
	var moves []Pos

	for _, d := range directions {
		next := Pos{b.MyPos.Row + d.Row, b.MyPos.Col + d.Col}
		if b.wallBetween(b.MyPos, next) {
			continue
		}

		if next != b.EnemyPos {
			moves = append(moves, next)
			continue
		}

		jump := Pos{next.Row + d.Row, next.Col + d.Col}
		if !b.wallBetween(next, jump) && b.inBounds(jump) {
			moves = append(moves, jump)
			continue
		}

		// Jump blocked: side-step perpendicular to the approach direction.
		var side []Pos
		if d.Row == 0 {
			side = []Pos{{-1, 0}, {1, 0}}
		} else {
			side = []Pos{{0, -1}, {0, 1}}
		}
		for _, s := range side {
			step := Pos{next.Row + s.Row, next.Col + s.Col}
			if !b.wallBetween(next, step) {
				moves = append(moves, step)
			}
		}
	}

	legal := moves[:0]
	for _, m := range moves {
		if b.inBounds(m) {
			legal = append(legal, m)
		}
	}
	return legal
}

// IsLegalWall reports whether a wall may be placed at the given anchor: the
// anchor must be on the (n-1)×(n-1) grid, must not overlap a parallel wall or
// cross a perpendicular one, and after placement both pawns must still reach
// their goal rows.
func (b *Board) IsLegalWall(pos Pos, orientation int) bool {
	if pos.Row < 0 || pos.Row >= b.N-1 || pos.Col < 0 || pos.Col >= b.N-1 {
		return false
	}

	if orientation == Horizontal {
		if b.HWalls[pos] || b.HWalls[Pos{pos.Row, pos.Col - 1}] || b.HWalls[Pos{pos.Row, pos.Col + 1}] || b.VWalls[pos] {
			return false
		}
	} else {
		if b.VWalls[pos] || b.VWalls[Pos{pos.Row - 1, pos.Col}] || b.VWalls[Pos{pos.Row + 1, pos.Col}] || b.HWalls[pos] {
			return false
		}
	}

	hWalls, vWalls := b.HWalls, b.VWalls
	if orientation == Horizontal {
		hWalls = copyWalls(b.HWalls)
		hWalls[pos] = true
	} else {
		vWalls = copyWalls(b.VWalls)
		vWalls[pos] = true
	}

	return b.distanceToGoal(1, hWalls, vWalls) >= 0 && b.distanceToGoal(-1, hWalls, vWalls) >= 0
}

// LegalWalls enumerates every wall the mover may place. Empty when the
// mover's wall budget is exhausted.
func (b *Board) LegalWalls() []Wall {
	var walls []Wall
	if b.MyWalls <= 0 {
		return walls
	}
	for i := 0; i < b.N-1; i++ {
		for j := 0; j < b.N-1; j++ {
			if b.IsLegalWall(Pos{i, j}, Horizontal) {
				walls = append(walls, Wall{Pos{i, j}, Horizontal})
			}
			if b.IsLegalWall(Pos{i, j}, Vertical) {
				walls = append(walls, Wall{Pos{i, j}, Vertical})
			}
		}
	}
	return walls
}

// DistanceToGoal returns the BFS shortest-path length from the given player's
// pawn to its goal row under the current walls, or -1 if unreachable.
func (b *Board) DistanceToGoal(player int) int {
	return b.distanceToGoal(player, b.HWalls, b.VWalls)
}

type bfsEntry struct {
	pos  Pos
	dist int
}

func (b *Board) distanceToGoal(player int, hWalls, vWalls map[Pos]bool) int {
	goalRow := b.N - 1
	start := b.MyPos
	if player != 1 {
		goalRow = 0
		start = b.EnemyPos
	}

	queue := []bfsEntry{{start, 0}}
	visited := map[Pos]bool{start: true}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur.pos.Row == goalRow {
			return cur.dist
		}

		for _, d := range directions {
			next := Pos{cur.pos.Row + d.Row, cur.pos.Col + d.Col}
			if !b.inBounds(next) || visited[next] {
				continue
			}
			if blockedByWall(cur.pos, d, hWalls, vWalls) {
				continue
			}
			visited[next] = true
			queue = append(queue, bfsEntry{next, cur.dist + 1})
		}
	}
	return -1
}

func blockedByWall(from, d Pos, hWalls, vWalls map[Pos]bool) bool {
	switch {
	case d.Row == -1:
		return hWalls[Pos{from.Row - 1, from.Col - 1}] || hWalls[Pos{from.Row - 1, from.Col}]
	case d.Row == 1:
		return hWalls[Pos{from.Row, from.Col - 1}] || hWalls[Pos{from.Row, from.Col}]
	case d.Col == -1:
		return vWalls[Pos{from.Row - 1, from.Col - 1}] || vWalls[Pos{from.Row, from.Col - 1}]
	default:
		return vWalls[Pos{from.Row - 1, from.Col}] || vWalls[Pos{from.Row, from.Col}]
	}
}

// ToArray returns the dense n×n×6 plane encoding consumed by network
// evaluators: mover pawn, opponent pawn, horizontal walls, vertical walls,
// and two constant planes carrying the wall budgets.
func (b *Board) ToArray() []float32 {
	arr := make([]float32, b.N*b.N*6)
	at := func(p Pos, ch int) int { return (p.Row*b.N+p.Col)*6 + ch }

	arr[at(b.MyPos, 0)] = 1
	arr[at(b.EnemyPos, 1)] = 1
	for w := range b.HWalls {
		arr[at(w, 2)] = 1
	}
	for w := range b.VWalls {
		arr[at(w, 3)] = 1
	}
	for i := 0; i < b.N*b.N; i++ {
		arr[i*6+4] = float32(b.MyWalls)
		arr[i*6+5] = float32(b.EnemyWalls)
	}
	return arr
}

func copyWalls(walls map[Pos]bool) map[Pos]bool {
	out := make(map[Pos]bool, len(walls)+1)
	for w := range walls {
		out[w] = true
	}
	return out
}
