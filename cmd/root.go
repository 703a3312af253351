package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/lambda-feedback/relay/config"
	"github.com/lambda-feedback/relay/internal/shell"
	"github.com/lambda-feedback/relay/util/conf"
	"github.com/lambda-feedback/relay/util/logging"
)

var (
	appName  = "relay"
	appUsage = `A minimal http server answering a fixed route table: static
files, a json echo api and a page composed from an outbound
json request.`

	// cliMap maps component flags to their nested config keys
	cliMap = map[string]string{
		"static-root":       "static.root",
		"static-index":      "static.index",
		"static-missing":    "static.missing",
		"static-chunk-size": "static.chunk_size",
		"upstream-url":      "upstream.url",
		"upstream-payload":  "upstream.payload",
		"upstream-timeout":  "upstream.timeout",
	}

	rootApp = &cli.App{
		Name:            appName,
		Usage:           appUsage,
		HideHelpCommand: true,
		Flags: []cli.Flag{
			// general flags
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "set the log level. Options: debug, info, warn, error, panic, fatal.",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "set the log format. Options: production, development.",
				EnvVars: []string{"LOG_FORMAT"},
			},
			&cli.PathFlag{
				Name:    "config",
				Usage:   "load configuration from a .json, .env, .yaml or .yml file.",
				EnvVars: []string{"CONFIG_FILE"},
			},
			// static flags
			&cli.PathFlag{
				Name:        "static-root",
				Usage:       "the directory static files are served from.",
				DefaultText: "html",
				Category:    "static",
				EnvVars:     []string{"STATIC_ROOT"},
			},
			&cli.StringFlag{
				Name:        "static-index",
				Usage:       "the file served for / and /index.html.",
				DefaultText: "index.html",
				Category:    "static",
				EnvVars:     []string{"STATIC_INDEX"},
			},
			&cli.StringFlag{
				Name:        "static-missing",
				Usage:       "the file served for /no_file.html, expected not to exist.",
				DefaultText: "this_file_should_not_exist.html",
				Category:    "static",
				EnvVars:     []string{"STATIC_MISSING"},
			},
			&cli.IntFlag{
				Name:        "static-chunk-size",
				Usage:       "the maximum size of a chunk read from a file.",
				DefaultText: "32768",
				Category:    "static",
				EnvVars:     []string{"STATIC_CHUNK_SIZE"},
			},
			// upstream flags
			&cli.StringFlag{
				Name:        "upstream-url",
				Usage:       "the url the composed page requests its json from.",
				DefaultText: "http://127.0.0.1:3000/json_api",
				Category:    "upstream",
				EnvVars:     []string{"UPSTREAM_URL"},
			},
			&cli.StringFlag{
				Name:        "upstream-payload",
				Usage:       "the json document posted to the upstream url.",
				DefaultText: `{"original": "data"}`,
				Category:    "upstream",
				EnvVars:     []string{"UPSTREAM_PAYLOAD"},
			},
			&cli.DurationFlag{
				Name:        "upstream-timeout",
				Usage:       "bound the upstream exchange. Zero disables the timeout.",
				DefaultText: "0s",
				Category:    "upstream",
				EnvVars:     []string{"UPSTREAM_TIMEOUT"},
			},
		},
		Before: func(ctx *cli.Context) error {
			// create the logger
			log, err := createLogger(ctx)
			if err != nil {
				return err
			}

			// inject logger into cli context
			ctx.Context = logging.ContextWithLogger(ctx.Context, log)

			// parse config using defaults, file, env and flags
			cfg, err := conf.Parse[config.Config](conf.ParseOptions{
				Cli:      ctx,
				CliMap:   cliMap,
				Defaults: config.DefaultConfig,
				FileName: ctx.Path("config"),
				Log:      log,
			})
			if err != nil {
				return err
			}

			// inject the config into the cli context
			ctx.Context = conf.ContextWithConfig(ctx.Context, cfg)

			return nil
		},
		After: func(ctx *cli.Context) error {
			log, err := logging.LoggerFromContext(ctx.Context)
			if err != nil {
				return err
			}

			log.Sync()

			return nil
		},
	}
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:               "version",
		Usage:              "print the version",
		DisableDefaultText: true,
	}
}

type ExecuteParams struct {
	Version  string
	Compiled time.Time
}

func Execute(params ExecuteParams) {
	rootApp.Version = params.Version
	rootApp.Compiled = params.Compiled

	run(context.Background(), os.Args)
}

func run(ctx context.Context, args []string) {
	os.Exit(exitCode(rootApp.RunContext(ctx, args)))
}

// exitCode maps the error returned by the app to a process exit code.
func exitCode(err error) int {
	// if app exited without error, return
	if err == nil {
		return 0
	}

	// if app exited with ExitError, exit with given exit code
	var exitErr *shell.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.ExitCode != 0 {
			fmt.Printf("exit error: %s\n", err.Error())
		}
		return exitErr.ExitCode
	}

	fmt.Printf("exit error: %s\n", err.Error())

	// otherwise, exit with exit code 1
	return 1
}

func createLogger(ctx *cli.Context) (*zap.Logger, error) {
	level := getLogLevelFromCLI(ctx)
	format := getLogFormatFromCLI(ctx)

	var config zap.Config
	if format == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}

	config.InitialFields = map[string]any{
		"app": appName,
	}

	config.Level = level

	return config.Build()
}

func getLogFormatFromCLI(ctx *cli.Context) string {
	format := ctx.String("log-format")
	if format != "" {
		return format
	}

	return "production"
}

func getLogLevelFromCLI(ctx *cli.Context) zap.AtomicLevel {
	lvl := ctx.String("log-level")

	if atom, err := zap.ParseAtomicLevel(lvl); err == nil {
		return atom
	}

	return zap.NewAtomicLevelAt(zap.InfoLevel)
}
