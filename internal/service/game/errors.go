package game

import (
	"errors"

	"github.com/iamasit07/connect4/internal/domain"
)

const (
	KindInvalidColumn     = "invalid_column"
	KindColumnFull        = "column_full"
	KindGameAlreadyOver   = "game_already_over"
	KindInvalidDimensions = "invalid_dimensions"
	KindInvalidCell       = "invalid_cell"
	KindNotFound          = "not_found"
	KindBadRequest        = "bad_request"
)

// ErrorKind classifies err for transports. Anything unknown is a bad request.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidColumn):
		return KindInvalidColumn
	case errors.Is(err, domain.ErrColumnFull):
		return KindColumnFull
	case errors.Is(err, domain.ErrGameAlreadyOver):
		return KindGameAlreadyOver
	case errors.Is(err, domain.ErrInvalidDimensions), errors.Is(err, domain.ErrBoardTooLarge):
		return KindInvalidDimensions
	case errors.Is(err, domain.ErrInvalidCell):
		return KindInvalidCell
	case errors.Is(err, ErrSessionNotFound):
		return KindNotFound
	}
	return KindBadRequest
}
