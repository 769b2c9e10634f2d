package domain

// directions as (deltaRow, deltaCol): horizontal, vertical, down-right, down-left
var directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// HasFourInARow scans every cell as the start of a line in each direction
// and reports whether player owns four consecutive in-bounds cells anywhere.
func HasFourInARow(board Board, player Mark) bool {
	for row := 0; row < board.Height(); row++ {
		for col := 0; col < board.Width(); col++ {
			for _, d := range directions {
				if lineFrom(board, row, col, d[0], d[1], player) {
					return true
				}
			}
		}
	}
	return false
}

func lineFrom(board Board, row, col, deltaRow, deltaCol int, player Mark) bool {
	for i := 0; i < ToWin; i++ {
		r, c := row+i*deltaRow, col+i*deltaCol
		if !board.InBounds(r, c) || board[r][c] != player {
			return false
		}
	}
	return true
}

// CheckWin only looks at lines passing through (row, column). During play the
// last placed piece is the only one that can complete a line, so this gives
// the same answer as HasFourInARow after every move.
func CheckWin(board Board, row, column int, player Mark) bool {
	if !board.InBounds(row, column) || board[row][column] != player {
		return false
	}

	for _, d := range directions {
		count := 1 +
			board.CountInDirection(row, column, d[0], d[1], player) +
			board.CountInDirection(row, column, -d[0], -d[1], player)
		if count >= ToWin {
			return true
		}
	}
	return false
}
