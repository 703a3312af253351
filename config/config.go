package config

import (
	"maps"

	"github.com/lambda-feedback/relay/static"
	"github.com/lambda-feedback/relay/upstream"
	"github.com/lambda-feedback/relay/util/conf"
)

type Config struct {
	// LogLevel is the log level for the application
	LogLevel string `conf:"log_level"`

	// LogFormat is the log format for the application
	LogFormat string `conf:"log_format"`

	// Static is the configuration of the file responder
	Static static.Config `conf:"static"`

	// Upstream is the configuration of the outbound json client
	Upstream upstream.Config `conf:"upstream"`
}

var DefaultConfig = func() conf.DefaultConfig {
	defaults := conf.DefaultConfig{
		"log_level":  "info",
		"log_format": "production",
	}

	maps.Copy(defaults, conf.MergeDefaults("static", static.DefaultConfig))
	maps.Copy(defaults, conf.MergeDefaults("upstream", upstream.DefaultConfig))

	return defaults
}()
