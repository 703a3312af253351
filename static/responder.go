package static

import (
	"context"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/lambda-feedback/relay/internal/stream"
	"github.com/lambda-feedback/relay/models"
)

type ResponderParams struct {
	fx.In

	Config Config
	Log    *zap.Logger
}

// Responder streams files from a root directory.
type Responder struct {
	config Config
	log    *zap.Logger
}

func NewResponder(params ResponderParams) *Responder {
	return &Responder{
		config: params.Config,
		log:    params.Log.Named("static"),
	}
}

// Index streams the configured index file.
func (r *Responder) Index(ctx context.Context, _ *http.Request) (models.Response, error) {
	return r.Serve(ctx, r.config.Index), nil
}

// Missing streams the configured missing file, which resolves to the
// canned not found response as long as the file does not exist.
func (r *Responder) Missing(ctx context.Context, _ *http.Request) (models.Response, error) {
	return r.Serve(ctx, r.config.Missing), nil
}

// Serve opens the named file below the root directory and returns a
// response streaming its contents. The file is closed once the body is
// drained or closed. Any failure to open the file, and directories,
// result in the canned not found response.
func (r *Responder) Serve(_ context.Context, name string) models.Response {
	path := filepath.Join(r.config.Root, name)

	log := r.log.With(zap.String("file", path))

	file, err := os.Open(path)
	if err != nil {
		log.Debug("failed to open file", zap.Error(err))
		return models.NotFound()
	}

	info, err := file.Stat()
	if err != nil || info.IsDir() {
		log.Debug("not a regular file", zap.Error(err))
		file.Close()
		return models.NotFound()
	}

	log.Debug("streaming file", zap.String("size", humanize.Bytes(uint64(info.Size()))))

	return models.NewResponse(http.StatusOK, nil, stream.FromReader(file, r.config.ChunkSize))
}
