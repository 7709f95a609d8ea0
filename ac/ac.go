// Package ac defines the interfaces the arithmetic coding algorithm requires.
// See its subpackages for particular finite precision realizations of the algorithm.
package ac

import (
	"github.com/pkg/errors"
)

// ErrDecodeInsufficientBits is returned when there are insufficient bits sent to Decode to reconstruct the original data.
var ErrDecodeInsufficientBits = errors.New("insufficient bits sent to decoder")

// A Model is a static probabilistic model on a sequence of symbols,
// as expected by the arithmetic coding algorithm.
type Model interface {
	// Freq returns the cumulative frequency range [low, high) of symbol.
	Freq(symbol int) (low, high uint64)

	// TotalFreq returns the sum of all symbol frequencies.
	TotalFreq() uint64

	// Find returns the symbol whose cumulative frequency range contains cumFreq.
	Find(cumFreq uint64) int
}
