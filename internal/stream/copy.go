package stream

import (
	"bytes"
	"io"
)

type flusher interface {
	Flush()
}

// Copy drains s into w and returns the number of bytes written. If w can
// be flushed, it is flushed after every chunk so that chunks reach the peer
// as soon as they are produced. The segment is closed before Copy returns.
func Copy(w io.Writer, s Segment) (written int64, err error) {
	defer func() {
		if closeErr := s.Close(); err == nil {
			err = closeErr
		}
	}()

	f, _ := w.(flusher)

	for chunk, chunkErr := range s.Chunks() {
		if chunkErr != nil {
			return written, chunkErr
		}

		n, writeErr := w.Write(chunk)
		written += int64(n)
		if writeErr != nil {
			return written, writeErr
		}

		if f != nil {
			f.Flush()
		}
	}

	return written, nil
}

// ReadAll drains s into memory.
func ReadAll(s Segment) ([]byte, error) {
	var buf bytes.Buffer
	_, err := Copy(&buf, s)
	return buf.Bytes(), err
}
