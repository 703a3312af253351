package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/lambda-feedback/relay/config"
	"github.com/lambda-feedback/relay/internal/stream"
	"github.com/lambda-feedback/relay/util/conf"
)

func TestDefaultConfig(t *testing.T) {
	cfg, err := conf.Parse[config.Config](conf.ParseOptions{
		Defaults: config.DefaultConfig,
		Log:      zaptest.NewLogger(t),
	})
	require.NoError(t, err)

	assert.Equal(t, "html", cfg.Static.Root)
	assert.Equal(t, "index.html", cfg.Static.Index)
	assert.Equal(t, "this_file_should_not_exist.html", cfg.Static.Missing)
	assert.Equal(t, stream.DefaultChunkSize, cfg.Static.ChunkSize)

	assert.Equal(t, "http://127.0.0.1:3000/json_api", cfg.Upstream.URL)
	assert.Equal(t, `{"original": "data"}`, cfg.Upstream.Payload)
	assert.Equal(t, time.Duration(0), cfg.Upstream.Timeout)
}
