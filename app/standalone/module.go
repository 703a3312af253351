package standalone

import (
	"go.uber.org/fx"

	"github.com/lambda-feedback/relay/handler"
	"github.com/lambda-feedback/relay/internal/server"
	"github.com/lambda-feedback/relay/util/logging"
)

func Module(config Config) fx.Option {
	return fx.Module(
		"serve",
		// rename logger for module
		logging.DecorateLogger("serve"),
		// provide routes and dispatcher
		handler.Module(),
		// provide server
		server.Module(config.HttpConfig),
	)
}
