package static

import "github.com/lambda-feedback/relay/internal/stream"

type Config struct {
	// Root is the directory files are served from.
	Root string `conf:"root"`

	// Index is the file served for the site index.
	Index string `conf:"index"`

	// Missing names a file that is expected not to exist under Root.
	Missing string `conf:"missing"`

	// ChunkSize is the maximum size of a body chunk read from a file.
	ChunkSize int `conf:"chunk_size"`
}

var DefaultConfig = map[string]any{
	"root":       "html",
	"index":      "index.html",
	"missing":    "this_file_should_not_exist.html",
	"chunk_size": stream.DefaultChunkSize,
}
