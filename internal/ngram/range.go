package ngram

import (
	"errors"
	"fmt"
)

// ErrInvalidRange is returned for a range with Min < 1 or Min > Max.
var ErrInvalidRange = errors.New("invalid n-gram range")

// Range is an inclusive range of n-gram lengths.
type Range struct {
	Min int
	Max int
}

func (r Range) Validate() error {
	if r.Min < 1 {
		return fmt.Errorf("%w: min %d must be at least 1", ErrInvalidRange, r.Min)
	}
	if r.Min > r.Max {
		return fmt.Errorf("%w: min %d is greater than max %d", ErrInvalidRange, r.Min, r.Max)
	}
	return nil
}

// Sizes lists every n in the range in ascending order.
func (r Range) Sizes() []int {
	if r.Min > r.Max {
		return nil
	}
	sizes := make([]int, 0, r.Max-r.Min+1)
	for n := r.Min; n <= r.Max; n++ {
		sizes = append(sizes, n)
	}
	return sizes
}

func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}
