package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  *EngineError
		kind Kind
	}{
		{ErrMatchNotFound, KindState},
		{ErrNoActiveGame, KindState},
		{ErrMatchCompleted, KindState},
		{ErrMatchAborted, KindState},
		{ErrNotPlayersTurn, KindValidation},
		{ErrCardNotInHand, KindValidation},
		{ErrMustFollowSuit, KindValidation},
		{ErrMustTrump, KindValidation},
		{ErrBadSeat, KindValidation},
		{ErrInvalidDeck, KindIntegrity},
		{ErrHandMismatch, KindIntegrity},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.kind, KindOf(tt.err), tt.err.Message)
	}

	assert.True(t, IsValidation(ErrMustFollowSuit))
	assert.True(t, IsState(ErrMatchCompleted))
	assert.True(t, IsIntegrity(ErrHandMismatch))
	assert.False(t, IsIntegrity(ErrMustFollowSuit))
}

func TestKindOfWrappedError(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("submitting card: %w", ErrNotPlayersTurn)
	assert.Equal(t, KindValidation, KindOf(wrapped))
	assert.True(t, errors.Is(wrapped, ErrNotPlayersTurn))

	assert.Equal(t, Kind(0), KindOf(errors.New("plain")))
	assert.Equal(t, Kind(0), KindOf(nil))
}

func TestErrorCodesAreDistinct(t *testing.T) {
	t.Parallel()

	all := []*EngineError{
		ErrMatchNotFound, ErrNoActiveGame, ErrMatchCompleted, ErrMatchAborted,
		ErrSeatOccupied, ErrNotPlayersTurn, ErrCardNotInHand, ErrMustFollowSuit,
		ErrMustTrump, ErrBadSeat, ErrBadCard, ErrInvalidDeck, ErrHandMismatch,
	}
	codes := make(map[int]bool)
	for _, e := range all {
		assert.False(t, codes[e.Code], "duplicate code %d", e.Code)
		codes[e.Code] = true
		assert.NotEmpty(t, e.Error())
	}
}
