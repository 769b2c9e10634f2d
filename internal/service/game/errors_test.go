package game

import (
	"errors"
	"fmt"
	"testing"

	"github.com/iamasit07/connect4/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		kind string
	}{
		{domain.ErrInvalidColumn, KindInvalidColumn},
		{domain.ErrColumnFull, KindColumnFull},
		{domain.ErrGameAlreadyOver, KindGameAlreadyOver},
		{domain.ErrInvalidDimensions, KindInvalidDimensions},
		{domain.ErrBoardTooLarge, KindInvalidDimensions},
		{domain.ErrInvalidCell, KindInvalidCell},
		{ErrSessionNotFound, KindNotFound},
		{fmt.Errorf("drop: %w", domain.ErrColumnFull), KindColumnFull},
		{errors.New("something else"), KindBadRequest},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.kind, ErrorKind(tt.err), tt.err.Error())
	}
}
