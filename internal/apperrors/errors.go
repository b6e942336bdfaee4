package apperrors

import "errors"

// Kind classifies engine errors by their blast radius.
type Kind int

const (
	// KindValidation: illegal player action. Rejected locally, match state
	// unchanged, surfaced to the acting player only.
	KindValidation Kind = iota + 1
	// KindState: action against a completed or nonexistent match/game.
	KindState
	// KindIntegrity: deck or hand corruption. Fatal to the affected match
	// only; the match is aborted and flagged.
	KindIntegrity
)

// 错误码
const (
	ErrCodeMatchNotFound  = 2001
	ErrCodeNoActiveGame   = 2002
	ErrCodeMatchCompleted = 2003
	ErrCodeMatchAborted   = 2004
	ErrCodeSeatOccupied   = 2005

	ErrCodeNotPlayersTurn = 3001
	ErrCodeCardNotInHand  = 3002
	ErrCodeMustFollowSuit = 3003
	ErrCodeMustTrump      = 3004
	ErrCodeBadSeat        = 3005
	ErrCodeBadCard        = 3006

	ErrCodeInvalidDeck  = 4001
	ErrCodeHandMismatch = 4002
)

// EngineError 游戏错误 shared by the rules engine and the match workers.
type EngineError struct {
	Code    int
	Kind    Kind
	Message string
}

func (e *EngineError) Error() string {
	return e.Message
}

// 预定义错误
var (
	ErrMatchNotFound  = &EngineError{Code: ErrCodeMatchNotFound, Kind: KindState, Message: "match not found"}
	ErrNoActiveGame   = &EngineError{Code: ErrCodeNoActiveGame, Kind: KindState, Message: "no active game"}
	ErrMatchCompleted = &EngineError{Code: ErrCodeMatchCompleted, Kind: KindState, Message: "match already completed"}
	ErrMatchAborted   = &EngineError{Code: ErrCodeMatchAborted, Kind: KindState, Message: "match was aborted"}
	ErrSeatOccupied   = &EngineError{Code: ErrCodeSeatOccupied, Kind: KindState, Message: "seat already occupied"}

	ErrNotPlayersTurn = &EngineError{Code: ErrCodeNotPlayersTurn, Kind: KindValidation, Message: "not your turn"}
	ErrCardNotInHand  = &EngineError{Code: ErrCodeCardNotInHand, Kind: KindValidation, Message: "card not in hand"}
	ErrMustFollowSuit = &EngineError{Code: ErrCodeMustFollowSuit, Kind: KindValidation, Message: "must follow the led suit"}
	ErrMustTrump      = &EngineError{Code: ErrCodeMustTrump, Kind: KindValidation, Message: "must play a trump when void in the led suit"}
	ErrBadSeat        = &EngineError{Code: ErrCodeBadSeat, Kind: KindValidation, Message: "seat out of range"}
	ErrBadCard        = &EngineError{Code: ErrCodeBadCard, Kind: KindValidation, Message: "unknown card"}

	ErrInvalidDeck  = &EngineError{Code: ErrCodeInvalidDeck, Kind: KindIntegrity, Message: "deck is not exactly 36 unique cards"}
	ErrHandMismatch = &EngineError{Code: ErrCodeHandMismatch, Kind: KindIntegrity, Message: "hands inconsistent with the dealt deck"}
)

// KindOf returns the Kind of err, or 0 when err is not an EngineError.
func KindOf(err error) Kind {
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Kind
	}
	return 0
}

// IsValidation reports whether err is a player-action validation error.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsState reports whether err is a match/game lifecycle error.
func IsState(err error) bool { return KindOf(err) == KindState }

// IsIntegrity reports whether err indicates corrupted match state.
func IsIntegrity(err error) bool { return KindOf(err) == KindIntegrity }
