package domain

// Board is indexed [row][col]; row 0 is the top and the last row is the
// bottom, so pieces fill from the highest row index down to 0.
type Board [][]Mark

func NewBoard(width, height int) Board {
	board := make(Board, height)
	for i := range board {
		board[i] = make([]Mark, width)
	}
	return board
}

func (b Board) Height() int {
	return len(b)
}

func (b Board) Width() int {
	if len(b) == 0 {
		return 0
	}
	return len(b[0])
}

func (b Board) InBounds(row, column int) bool {
	return row >= 0 && row < b.Height() && column >= 0 && column < b.Width()
}

// DropRow returns the lowest empty row of column without touching the board.
func (b Board) DropRow(column int) (int, error) {
	if column < 0 || column >= b.Width() {
		return -1, ErrInvalidColumn
	}

	for row := b.Height() - 1; row >= 0; row-- {
		if b[row][column] == Empty {
			return row, nil
		}
	}

	return -1, ErrColumnFull
}

// IsFull reports whether every cell is occupied.
func (b Board) IsFull() bool {
	for _, row := range b {
		for _, cell := range row {
			if cell == Empty {
				return false
			}
		}
	}
	return true
}

// Occupied counts the non-empty cells.
func (b Board) Occupied() int {
	count := 0
	for _, row := range b {
		for _, cell := range row {
			if cell != Empty {
				count++
			}
		}
	}
	return count
}

// this creates a deep copy of the board
func (b Board) Copy() Board {
	newBoard := make(Board, len(b))
	for i := range b {
		newBoard[i] = make([]Mark, len(b[i]))
		copy(newBoard[i], b[i])
	}
	return newBoard
}

// ValidMoves lists the columns that still accept a piece, left to right.
func (b Board) ValidMoves() []int {
	validMoves := []int{}
	for col := 0; col < b.Width(); col++ {
		if b[0][col] == Empty {
			validMoves = append(validMoves, col)
		}
	}
	return validMoves
}

// CountInDirection counts consecutive cells held by player starting one step
// away from (row, column) and walking by (deltaRow, deltaCol).
func (b Board) CountInDirection(row, column, deltaRow, deltaCol int, player Mark) int {
	count := 0
	r, c := row+deltaRow, column+deltaCol
	for b.InBounds(r, c) && b[r][c] == player {
		count++
		r += deltaRow
		c += deltaCol
	}
	return count
}
