package app

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"github.com/lambda-feedback/relay/config"
	"github.com/lambda-feedback/relay/internal/metrics"
	"github.com/lambda-feedback/relay/internal/shell"
	"github.com/lambda-feedback/relay/jsonapi"
	"github.com/lambda-feedback/relay/proxy"
	"github.com/lambda-feedback/relay/static"
	"github.com/lambda-feedback/relay/upstream"
	"github.com/lambda-feedback/relay/util/conf"
	"github.com/lambda-feedback/relay/util/logging"
)

func New(ctx *cli.Context) (*shell.Shell, error) {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return nil, err
	}

	config, err := conf.GetConfigFromContext[config.Config](ctx.Context)
	if err != nil {
		return nil, err
	}

	return shell.New(log, SharedModule(config)), nil
}

// SharedModule provides the components behind the routes, independent of
// the transport serving them.
func SharedModule(config config.Config) fx.Option {
	return fx.Module(
		"shared",
		// provide global config
		fx.Supply(config),
		// provide component configs
		fx.Supply(config.Static),
		fx.Supply(config.Upstream),
		// provide components
		fx.Provide(static.NewResponder),
		fx.Provide(fx.Annotate(upstream.NewClient, fx.As(new(proxy.Client)))),
		fx.Provide(proxy.NewComposer),
		fx.Provide(jsonapi.NewMutator),
		fx.Provide(metrics.New),
	)
}
