package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/lambda-feedback/relay/app"
	"github.com/lambda-feedback/relay/app/standalone"
	"github.com/lambda-feedback/relay/internal/server"
)

var (
	serveCmdDescription = `The serve command starts the http server and answers the
	route table until the process is interrupted. Requests
	are handled concurrently, and response bodies are streamed
	to the client as they are produced.

	If a metrics port is given, a second listener exposes the
	request metrics in the prometheus text format on /metrics.`
	serveCmd = &cli.Command{
		Name:        "serve",
		Usage:       "Start the http server and listen for requests.",
		Description: serveCmdDescription,
		Action:      serveAction,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "host",
				Aliases:  []string{"H"},
				Usage:    "The host to listen on.",
				Value:    "127.0.0.1",
				Category: "http",
				EnvVars:  []string{"HTTP_HOST"},
			},
			&cli.IntFlag{
				Name:     "port",
				Aliases:  []string{"P"},
				Usage:    "The port to listen on.",
				Value:    3000,
				Category: "http",
				EnvVars:  []string{"HTTP_PORT"},
			},
			&cli.BoolFlag{
				Name:     "h2c",
				Usage:    "Enable HTTP/2 cleartext upgrade.",
				Value:    false,
				Category: "http",
				EnvVars:  []string{"HTTP_H2C"},
			},
			&cli.IntFlag{
				Name:     "metrics-port",
				Usage:    "The port to expose metrics on. Zero disables the metrics listener.",
				Value:    0,
				Category: "http",
				EnvVars:  []string{"HTTP_METRICS_PORT"},
			},
		},
	}
)

func serveAction(ctx *cli.Context) error {
	app, err := app.New(ctx)
	if err != nil {
		return err
	}

	config := standalone.Config{
		HttpConfig: server.HttpConfig{
			Host:        ctx.String("host"),
			Port:        ctx.Int("port"),
			H2c:         ctx.Bool("h2c"),
			MetricsPort: ctx.Int("metrics-port"),
		},
	}

	return app.Run(ctx.Context, standalone.Module(config))
}

func init() {
	rootApp.Commands = append(rootApp.Commands, serveCmd)
}
