package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/dchest/uniuri"
	"github.com/dustin/go-humanize"
	"github.com/getsentry/sentry-go"
	"github.com/gorilla/mux"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/lambda-feedback/relay/internal/metrics"
	"github.com/lambda-feedback/relay/internal/stream"
	"github.com/lambda-feedback/relay/models"
)

// notFoundRoute labels requests that matched no route.
const notFoundRoute = "not_found"

// Endpoint produces the response for a dispatched request. A returned
// error is answered with a generic server error.
type Endpoint func(ctx context.Context, r *http.Request) (models.Response, error)

// Route binds an endpoint to a method and one or more exact paths.
type Route struct {
	Name     string
	Method   string
	Paths    []string
	Endpoint Endpoint
}

type RouteResult struct {
	fx.Out

	Route *Route `group:"routes"`
}

func AsRoute(name, method string, endpoint Endpoint, paths ...string) RouteResult {
	return RouteResult{
		Route: &Route{
			Name:     name,
			Method:   method,
			Paths:    paths,
			Endpoint: endpoint,
		},
	}
}

type DispatcherParams struct {
	fx.In

	Routes  []*Route `group:"routes"`
	Metrics *metrics.Metrics
	Log     *zap.Logger
}

// Dispatcher routes requests by exact method and path. Requests matching
// no route, including a known path with another method, receive the
// canned not found response.
type Dispatcher struct {
	router  *mux.Router
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewDispatcher(params DispatcherParams) *Dispatcher {
	d := &Dispatcher{
		metrics: params.Metrics,
		log:     params.Log.Named("dispatcher"),
	}

	// match the raw path as received: no cleaning, no decoding
	router := mux.NewRouter().SkipClean(true).UseEncodedPath()

	for _, route := range params.Routes {
		for _, path := range route.Paths {
			router.Handle(path, d.handle(route.Name, route.Endpoint)).Methods(route.Method)
		}
	}

	notFound := d.handle(notFoundRoute, func(context.Context, *http.Request) (models.Response, error) {
		return models.NotFound(), nil
	})

	router.NotFoundHandler = notFound
	router.MethodNotAllowedHandler = notFound

	d.router = router

	return d
}

func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.router.ServeHTTP(w, r)
}

func (d *Dispatcher) handle(route string, endpoint Endpoint) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		log := d.log.With(
			zap.String("request_id", uniuri.NewLen(16)),
			zap.String("route", route),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)

		res, err := endpoint(r.Context(), r)
		if err != nil {
			log.Error("failed to handle request", zap.Error(err))
			sentry.CaptureException(err)
			res = models.InternalServerError()
		}

		written, err := writeResponse(w, res)

		elapsed := time.Since(start)
		d.metrics.Observe(route, r.Method, res.StatusCode, elapsed, written)

		if err != nil {
			// the status line is already sent, so the only honest way
			// to report the failure is to abort the connection
			log.Warn("failed to write response body",
				zap.Int("status", res.StatusCode),
				zap.Int64("written", written),
				zap.Error(err),
			)
			panic(http.ErrAbortHandler)
		}

		log.Debug("request handled",
			zap.Int("status", res.StatusCode),
			zap.Duration("duration", elapsed),
			zap.String("size", humanize.Bytes(uint64(written))),
		)
	})
}

// writeResponse writes the status and headers of res and streams its body
// to w. The body is closed in any case.
func writeResponse(w http.ResponseWriter, res models.Response) (int64, error) {
	body := res.Body
	if body == nil {
		body = stream.Once(nil)
	}

	header := w.Header()
	for k, v := range res.Header {
		for _, vv := range v {
			header.Add(k, vv)
		}
	}

	w.WriteHeader(res.StatusCode)

	return stream.Copy(w, body)
}
