package handler

import (
	"net/http"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("handler",
		fx.Provide(NewIndexRoute),
		fx.Provide(NewProxyRoute),
		fx.Provide(NewJSONEchoRoute),
		fx.Provide(NewJSONListRoute),
		fx.Provide(NewMissingFileRoute),
		// expose the dispatcher to the transports
		fx.Provide(fx.Annotate(NewDispatcher, fx.As(new(http.Handler)))),
	)
}
