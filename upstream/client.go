package upstream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ErrUpstreamFailure is returned when the outbound request fails at the
// transport level. Non-2xx responses are not failures.
var ErrUpstreamFailure = errors.New("upstream request failed")

type ClientParams struct {
	fx.In

	Config Config
	Log    *zap.Logger
}

// Client posts the configured json payload to the configured url.
type Client struct {
	config Config
	http   *http.Client
	log    *zap.Logger
}

func NewClient(params ClientParams) *Client {
	return &Client{
		config: params.Config,
		http:   &http.Client{Timeout: params.Config.Timeout},
		log:    params.Log.Named("upstream"),
	}
}

// Payload returns the request body sent upstream.
func (c *Client) Payload() []byte {
	return []byte(c.config.Payload)
}

// Do issues a single POST request. The caller owns the returned response
// and must close its body.
func (c *Client) Do(ctx context.Context) (*http.Response, error) {
	log := c.log.With(zap.String("url", c.config.URL))

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.config.URL,
		bytes.NewReader(c.Payload()),
	)
	if err != nil {
		log.Debug("failed to create request", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrUpstreamFailure, err)
	}

	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		log.Debug("request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrUpstreamFailure, err)
	}

	log.Debug("received response", zap.Int("status", res.StatusCode))

	return res, nil
}
