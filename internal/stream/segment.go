// Package stream models response bodies as ordered sequences of byte chunks.
//
// A Segment is drained at most once. Segments compose with Chain, which
// flattens a sequence of segments into a single segment without buffering
// any of them.
package stream

import (
	"errors"
	"iter"
	"sync/atomic"
)

// DefaultChunkSize is the read size used when no chunk size is configured.
const DefaultChunkSize = 32 * 1024

// ErrConsumed is yielded when a segment is drained a second time.
var ErrConsumed = errors.New("segment already consumed")

// Segment is a lazily produced, ordered sequence of byte chunks.
type Segment interface {
	// Chunks yields the chunks of the segment in order. A chunk is only
	// valid until the next iteration step. Iterating a second time yields
	// ErrConsumed. Iteration stops at the first error.
	Chunks() iter.Seq2[[]byte, error]

	// Close releases resources held by the segment. It is safe to call
	// Close more than once and before, during or after iteration.
	Close() error
}

// drainGuard makes sure a segment is drained at most once.
type drainGuard struct {
	drained atomic.Bool
}

// claim reports whether the caller is the first to drain the segment.
func (g *drainGuard) claim() bool {
	return g.drained.CompareAndSwap(false, true)
}
