package game

import (
	"fmt"
	"strings"
)

// Render draws a position as text: cells on even rows/columns, wall segments
// on the odd ones. The mover is ● and the opponent ■.
func Render(b *Board) string {
	size := 2*b.N - 1
	grid := make([][]rune, size)
	for i := range grid {
		grid[i] = make([]rune, size)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	for r := 0; r < b.N; r++ {
		for c := 0; c < b.N; c++ {
			grid[r*2][c*2] = '□'
		}
	}
	grid[b.MyPos.Row*2][b.MyPos.Col*2] = '●'
	grid[b.EnemyPos.Row*2][b.EnemyPos.Col*2] = '■'

	for w := range b.HWalls {
		for i := 0; i < 3; i++ {
			grid[w.Row*2+1][w.Col*2+i] = '━'
		}
	}
	for w := range b.VWalls {
		for i := 0; i < 3; i++ {
			grid[w.Row*2+i][w.Col*2+1] = '┃'
		}
	}

	var sb strings.Builder
	sb.WriteString("  ")
	for c := 0; c < size; c++ {
		fmt.Fprintf(&sb, "%d ", c%10)
	}
	sb.WriteByte('\n')
	for r := 0; r < size; r++ {
		fmt.Fprintf(&sb, "%d ", r%10)
		for c := 0; c < size; c++ {
			sb.WriteRune(grid[r][c])
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "walls ●: %d  ■: %d  turn: %d\n", b.MyWalls, b.EnemyWalls, b.Turns)
	return sb.String()
}
