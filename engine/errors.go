package engine

import "errors"

// ErrNoLegalMoves is returned when asked to move in a finished game.
var ErrNoLegalMoves = errors.New("engine: no legal moves")
