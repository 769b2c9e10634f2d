package domain

// Game is a single Connect Four game. It is not safe for concurrent use;
// callers serialize access.
type Game struct {
	Board         Board
	CurrentPlayer Mark
	Status        GameStatus
	Winner        Mark
	MoveCount     int
	LastRow       int
	LastColumn    int
}

func NewGame(width, height int) (*Game, error) {
	if width < MinSize || height < MinSize {
		return nil, ErrInvalidDimensions
	}

	return &Game{
		Board:         NewBoard(width, height),
		CurrentPlayer: Player1,
		Status:        StatusInProgress,
		Winner:        Empty,
		MoveCount:     0,
		LastRow:       -1,
		LastColumn:    -1,
	}, nil
}

func (g *Game) Width() int {
	return g.Board.Width()
}

func (g *Game) Height() int {
	return g.Board.Height()
}

// FindDropRow returns the row a piece dropped in column would land on.
func (g *Game) FindDropRow(column int) (int, error) {
	return g.Board.DropRow(column)
}

// Cell returns the mark at (row, column) for rendering.
func (g *Game) Cell(row, column int) (Mark, error) {
	if !g.Board.InBounds(row, column) {
		return Empty, ErrInvalidCell
	}
	return g.Board[row][column], nil
}

// DropPiece plays the current player's mark into column. A rejected move
// leaves the game untouched.
func (g *Game) DropPiece(column int) (MoveResult, error) {
	if g.IsFinished() {
		return MoveResult{}, ErrGameAlreadyOver
	}

	row, err := g.FindDropRow(column)
	if err != nil {
		return MoveResult{}, err
	}

	player := g.CurrentPlayer
	g.Board[row][column] = player
	g.MoveCount++
	g.LastRow, g.LastColumn = row, column

	result := MoveResult{Row: row, Column: column, Player: player}

	if CheckWin(g.Board, row, column, player) {
		g.Status = StatusWon
		g.Winner = player
		result.Outcome = OutcomeWon
		return result, nil
	}

	if g.Board.IsFull() {
		g.Status = StatusTie
		result.Outcome = OutcomeTie
		return result, nil
	}

	g.CurrentPlayer = player.Other()
	result.Outcome = OutcomeContinued
	result.NextPlayer = g.CurrentPlayer
	return result, nil
}

// Reset starts over on an empty board of the same size.
func (g *Game) Reset() {
	fresh, err := NewGame(g.Width(), g.Height())
	if err != nil {
		return
	}
	*g = *fresh
}

func (g *Game) IsFinished() bool {
	return g.Status == StatusWon || g.Status == StatusTie
}
