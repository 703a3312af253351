package stream

import (
	"errors"
	"io"
	"iter"
	"sync"
)

type readerSegment struct {
	guard     drainGuard
	r         io.Reader
	chunkSize int

	closeOnce sync.Once
	closeErr  error
}

// FromReader returns a segment that reads r in chunks of at most chunkSize
// bytes, reusing a single buffer. If r is an io.Closer, it is closed once
// the segment is drained, iteration is abandoned or Close is called,
// whichever happens first. A chunkSize <= 0 selects DefaultChunkSize.
func FromReader(r io.Reader, chunkSize int) Segment {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	return &readerSegment{
		r:         r,
		chunkSize: chunkSize,
	}
}

func (s *readerSegment) Chunks() iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		if !s.guard.claim() {
			yield(nil, ErrConsumed)
			return
		}

		defer s.Close()

		buf := make([]byte, s.chunkSize)
		for {
			n, err := s.r.Read(buf)
			if n > 0 {
				if !yield(buf[:n], nil) {
					return
				}
			}

			if errors.Is(err, io.EOF) {
				return
			}

			if err != nil {
				yield(nil, err)
				return
			}
		}
	}
}

func (s *readerSegment) Close() error {
	s.closeOnce.Do(func() {
		if c, ok := s.r.(io.Closer); ok {
			s.closeErr = c.Close()
		}
	})

	return s.closeErr
}
