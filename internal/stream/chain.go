package stream

import (
	"errors"
	"iter"
)

type chainSegment struct {
	guard    drainGuard
	segments []Segment
}

// Chain flattens segments into one segment. The chunks of each segment are
// yielded in full before the next segment is started. A failing segment
// ends the chain; the remaining segments are never started.
func Chain(segments ...Segment) Segment {
	return &chainSegment{segments: segments}
}

func (c *chainSegment) Chunks() iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		if !c.guard.claim() {
			yield(nil, ErrConsumed)
			return
		}

		for _, segment := range c.segments {
			for chunk, err := range segment.Chunks() {
				if !yield(chunk, err) || err != nil {
					return
				}
			}
		}
	}
}

// Close closes every segment of the chain, including the ones that were
// never started, and joins their errors.
func (c *chainSegment) Close() error {
	var errs []error
	for _, segment := range c.segments {
		if err := segment.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
