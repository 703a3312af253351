package proxy

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/lambda-feedback/relay/internal/stream"
	"github.com/lambda-feedback/relay/models"
)

const leadInFormat = "<p><b>POST request body</b>:</p>%s<br/><br/><p><b>Response</b>:</p>"

// Client issues the outbound request whose response body is relayed.
type Client interface {
	// Payload returns the request body sent upstream.
	Payload() []byte

	// Do sends the request. The caller closes the response body.
	Do(ctx context.Context) (*http.Response, error)
}

type ComposerParams struct {
	fx.In

	Client Client
	Log    *zap.Logger
}

// Composer relays the upstream response body behind a rendered lead-in.
type Composer struct {
	client Client
	log    *zap.Logger
}

func NewComposer(params ComposerParams) *Composer {
	return &Composer{
		client: params.Client,
		log:    params.Log.Named("proxy"),
	}
}

// Compose calls upstream and returns a response whose body is the lead-in
// followed by the upstream body, forwarded chunk by chunk as it arrives.
// The request is not consulted. Upstream failures are returned as errors.
func (c *Composer) Compose(ctx context.Context, _ *http.Request) (models.Response, error) {
	res, err := c.client.Do(ctx)
	if err != nil {
		return models.Response{}, err
	}

	c.log.Debug("relaying upstream body",
		zap.Int("upstream_status", res.StatusCode),
		zap.Int64("upstream_length", res.ContentLength),
	)

	leadIn := fmt.Appendf(nil, leadInFormat, c.client.Payload())

	body := stream.Chain(
		stream.Once(leadIn),
		stream.FromReader(res.Body, stream.DefaultChunkSize),
	)

	return models.NewResponse(http.StatusOK, nil, body), nil
}
