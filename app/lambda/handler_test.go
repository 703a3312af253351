package lambda

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestHandler(t *testing.T, source ProxySource) *LambdaHandler {
	return NewLambdaHandler(LambdaHandlerParams{
		Config: Config{ProxySource: source},
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/json_api" {
				http.Error(w, "Not Found", http.StatusNotFound)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `["foo","bar"]`)
		}),
		Context: context.Background(),
		Logger:  zaptest.NewLogger(t),
	})
}

func TestLambdaHandler_ProxySources(t *testing.T) {
	for _, source := range []ProxySource{
		ProxySourceApiGatewayV1,
		ProxySourceApiGatewayV2,
		ProxySourceAlb,
	} {
		t.Run(source.String(), func(t *testing.T) {
			fn, err := newTestHandler(t, source).getProxyFunction()
			require.NoError(t, err)
			assert.NotNil(t, fn)
		})
	}
}

func TestLambdaHandler_InvalidProxySource(t *testing.T) {
	h := newTestHandler(t, ProxySource("SQS"))

	_, err := h.getProxyFunction()
	assert.Error(t, err)

	assert.Error(t, h.Start())
}

func TestLambdaHandler_ProxyApiGatewayV2(t *testing.T) {
	fn, err := newTestHandler(t, ProxySourceApiGatewayV2).getProxyFunction()
	require.NoError(t, err)

	proxy, ok := fn.(func(context.Context, events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error))
	require.True(t, ok)

	req := events.APIGatewayV2HTTPRequest{
		RawPath: "/json_api",
		Headers: map[string]string{},
	}
	req.RequestContext.HTTP.Method = http.MethodGet
	req.RequestContext.HTTP.Path = "/json_api"

	res, err := proxy(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, `["foo","bar"]`, res.Body)
}

func TestLambdaHandler_AbortSurfacesAsInvokeFailure(t *testing.T) {
	h := NewLambdaHandler(LambdaHandlerParams{
		Config: Config{ProxySource: ProxySourceApiGatewayV2},
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, "partial")
			panic(http.ErrAbortHandler)
		}),
		Context: context.Background(),
		Logger:  zaptest.NewLogger(t),
	})

	fn, err := h.getProxyFunction()
	require.NoError(t, err)

	proxy, ok := fn.(func(context.Context, events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error))
	require.True(t, ok)

	req := events.APIGatewayV2HTTPRequest{
		RawPath: "/test.html",
		Headers: map[string]string{},
	}
	req.RequestContext.HTTP.Method = http.MethodGet
	req.RequestContext.HTTP.Path = "/test.html"

	// the runtime client recovers the panic and reports a failed invocation
	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		proxy(context.Background(), req)
	})
}
