package domain

// Mark identifies which player occupies a cell. It carries no display
// attribute; colors live in the presentation layer.
type Mark int

const (
	Empty   Mark = 0
	Player1 Mark = 1
	Player2 Mark = 2
)

// Other returns the opponent of m. Empty has no opponent.
func (m Mark) Other() Mark {
	switch m {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return Empty
}

func (m Mark) String() string {
	switch m {
	case Player1:
		return "player1"
	case Player2:
		return "player2"
	}
	return "empty"
}

const (
	// MinSize is the smallest width or height on which four-in-a-row can occur.
	MinSize = 4
	ToWin   = 4

	// MaxSize bounds boards requested from outside the process. NewGame does
	// not enforce it.
	MaxSize = 64

	DefaultColumns = 7
	DefaultRows    = 6
)

// to represent the game status
type GameStatus string

const (
	StatusInProgress GameStatus = "in_progress"
	StatusWon        GameStatus = "won"
	StatusTie        GameStatus = "tie"
)

// Outcome is what a single accepted move led to.
type Outcome string

const (
	OutcomeContinued Outcome = "continued"
	OutcomeWon       Outcome = "won"
	OutcomeTie       Outcome = "tie"
)

// MoveResult describes an accepted move. Row and Column are the landing cell,
// Player is the mark that moved and NextPlayer is who moves next (Empty once
// the game is over).
type MoveResult struct {
	Outcome    Outcome `json:"outcome"`
	Row        int     `json:"row"`
	Column     int     `json:"column"`
	Player     Mark    `json:"player"`
	NextPlayer Mark    `json:"nextPlayer"`
}

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidColumn     Error = "invalid column"
	ErrColumnFull        Error = "column is full"
	ErrGameAlreadyOver   Error = "game is already over"
	ErrInvalidDimensions Error = "board must be at least 4x4"
	ErrInvalidCell       Error = "cell is out of bounds"
	ErrBoardTooLarge     Error = "board must be at most 64x64"
)
