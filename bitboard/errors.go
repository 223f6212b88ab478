package bitboard

import (
	"errors"
	"fmt"
)

// Sentinel errors for rejected external input. Use errors.Is to test for them.
var (
	// ErrInvalidFEN indicates a malformed position record.
	ErrInvalidFEN = errors.New("invalid FEN")

	// ErrMalformedMove indicates move text that is not in long algebraic form.
	ErrMalformedMove = errors.New("malformed move")

	// ErrIllegalMove indicates a well-formed move that is not legal in the position.
	ErrIllegalMove = errors.New("illegal move")
)

func fenError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidFEN, fmt.Sprintf(format, args...))
}

func malformedSquare(s string) error {
	return fmt.Errorf("%w: bad square %q", ErrMalformedMove, s)
}
