package conf_test

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap/zaptest"

	"github.com/lambda-feedback/relay/util/conf"
)

type nested struct {
	Name    string        `conf:"name"`
	Size    int           `conf:"size"`
	Timeout time.Duration `conf:"timeout"`
}

type testConfig struct {
	Level  string `conf:"level"`
	Nested nested `conf:"nested"`
}

var defaults = conf.DefaultConfig{
	"level":          "info",
	"nested.name":    "default",
	"nested.size":    8,
	"nested.timeout": "0s",
}

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := conf.Parse[testConfig](conf.ParseOptions{
		Defaults: defaults,
		Log:      zaptest.NewLogger(t),
	})
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "default", cfg.Nested.Name)
	assert.Equal(t, 8, cfg.Nested.Size)
	assert.Equal(t, time.Duration(0), cfg.Nested.Timeout)
}

func TestParse_Files(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"json", "config.json", `{"nested": {"name": "file", "size": 16, "timeout": "2s"}}`},
		{"yaml", "config.yaml", "nested:\n  name: file\n  size: 16\n  timeout: 2s\n"},
		{"yml", "config.yml", "nested:\n  name: file\n  size: 16\n  timeout: 2s\n"},
		{"dotenv", "config.env", "NESTED__NAME=file\nNESTED__SIZE=16\nNESTED__TIMEOUT=2s\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := conf.Parse[testConfig](conf.ParseOptions{
				Defaults: defaults,
				FileName: writeFile(t, tt.file, tt.content),
				Log:      zaptest.NewLogger(t),
			})
			require.NoError(t, err)

			assert.Equal(t, "info", cfg.Level)
			assert.Equal(t, "file", cfg.Nested.Name)
			assert.Equal(t, 16, cfg.Nested.Size)
			assert.Equal(t, 2*time.Second, cfg.Nested.Timeout)
		})
	}
}

func TestParse_EmptyYAML(t *testing.T) {
	cfg, err := conf.Parse[testConfig](conf.ParseOptions{
		Defaults: defaults,
		FileName: writeFile(t, "config.yaml", ""),
		Log:      zaptest.NewLogger(t),
	})
	require.NoError(t, err)

	assert.Equal(t, "default", cfg.Nested.Name)
}

func TestParse_UnsupportedFormat(t *testing.T) {
	_, err := conf.Parse[testConfig](conf.ParseOptions{
		FileName: writeFile(t, "config.toml", "level = 'debug'"),
		Log:      zaptest.NewLogger(t),
	})

	assert.ErrorIs(t, err, conf.ErrUnsupportedFormat)
}

func TestParse_MissingFile(t *testing.T) {
	_, err := conf.Parse[testConfig](conf.ParseOptions{
		FileName: filepath.Join(t.TempDir(), "config.json"),
		Log:      zaptest.NewLogger(t),
	})

	assert.Error(t, err)
}

func TestParse_Env(t *testing.T) {
	t.Setenv("NESTED__NAME", "env")

	cfg, err := conf.Parse[testConfig](conf.ParseOptions{
		Defaults: defaults,
		Log:      zaptest.NewLogger(t),
	})
	require.NoError(t, err)

	assert.Equal(t, "env", cfg.Nested.Name)
}

func TestParse_CliFlags(t *testing.T) {
	flags := []cli.Flag{
		&cli.StringFlag{Name: "level"},
		&cli.StringFlag{Name: "nested-name"},
		&cli.IntFlag{Name: "nested-size"},
		&cli.DurationFlag{Name: "nested-timeout"},
	}

	app := &cli.App{Flags: flags}

	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range flags {
		require.NoError(t, f.Apply(set))
	}
	require.NoError(t, set.Parse([]string{
		"--level", "debug",
		"--nested-name", "cli",
		"--nested-timeout", "3s",
	}))

	ctx := cli.NewContext(app, set, nil)
	ctx.Context = context.Background()
	ctx.Command = &cli.Command{Flags: flags}

	cfg, err := conf.Parse[testConfig](conf.ParseOptions{
		Cli: ctx,
		CliMap: map[string]string{
			"nested-name":    "nested.name",
			"nested-size":    "nested.size",
			"nested-timeout": "nested.timeout",
		},
		Defaults: defaults,
		Log:      zaptest.NewLogger(t),
	})
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Level)
	assert.Equal(t, "cli", cfg.Nested.Name)
	assert.Equal(t, 3*time.Second, cfg.Nested.Timeout)
	// unset flags keep their defaults
	assert.Equal(t, 8, cfg.Nested.Size)
}

func TestMergeDefaults(t *testing.T) {
	merged := conf.MergeDefaults("ns", map[string]any{"a": 1}, map[string]any{"b": 2})

	assert.Equal(t, map[string]any{"ns.a": 1, "ns.b": 2}, merged)
}

func TestContextWithConfig(t *testing.T) {
	ctx := conf.ContextWithConfig(context.Background(), testConfig{Level: "warn"})

	cfg, err := conf.GetConfigFromContext[testConfig](ctx)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Level)

	_, err = conf.GetConfigFromContext[testConfig](context.Background())
	assert.Error(t, err)
}
