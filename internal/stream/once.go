package stream

import "iter"

type onceSegment struct {
	guard drainGuard
	data  []byte
}

// Once returns a segment holding a single, fully materialized chunk.
// An empty data slice produces a segment with no chunks.
func Once(data []byte) Segment {
	return &onceSegment{data: data}
}

func (s *onceSegment) Chunks() iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		if !s.guard.claim() {
			yield(nil, ErrConsumed)
			return
		}

		if len(s.data) == 0 {
			return
		}

		yield(s.data, nil)
	}
}

func (s *onceSegment) Close() error {
	return nil
}
