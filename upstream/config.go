package upstream

import "time"

type Config struct {
	// URL is the target of the outbound request.
	URL string `conf:"url"`

	// Payload is the json document sent as the request body.
	Payload string `conf:"payload"`

	// Timeout bounds the whole exchange, including reading the response
	// body. Zero means no timeout.
	Timeout time.Duration `conf:"timeout"`
}

var DefaultConfig = map[string]any{
	"url":     "http://127.0.0.1:3000/json_api",
	"payload": `{"original": "data"}`,
	"timeout": "0s",
}
