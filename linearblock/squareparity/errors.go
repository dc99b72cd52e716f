// Package squareparity implements an error detecting block code laid out on a
// square bit matrix. Parity bits sit at the power of two positions, each one
// covering the columns or rows whose index has a given bit set, and position 0
// carries the parity of the whole block. Blocks can be checked for corruption
// but not corrected.
package squareparity

import "errors"

var (
	ErrInvalidGeometry  = errors.New("invalid block geometry")
	ErrInsufficientData = errors.New("insufficient data bits")
	ErrExcessData       = errors.New("too many data bits")
	ErrInvalidBit       = errors.New("bit value must be 0 or 1")
	ErrCorrupted        = errors.New("block failed parity check")
)
