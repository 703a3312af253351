package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/lambda-feedback/relay/internal/metrics"
)

type HttpServerParams struct {
	fx.In

	Context context.Context

	Config HttpConfig

	Handler http.Handler
	Metrics *metrics.Metrics
	Logger  *zap.Logger
}

type HttpServer struct {
	ctx      context.Context
	addr     string
	server   *http.Server
	listener net.Listener
	log      *zap.Logger
}

func NewHttpServer(params HttpServerParams) *HttpServer {
	handler := params.Handler
	if params.Config.H2c {
		handler = h2c.NewHandler(handler, &http2.Server{})
	}

	return newServer(
		params.Context,
		fmt.Sprintf("%s:%d", params.Config.Host, params.Config.Port),
		handler,
		params.Logger,
	)
}

// NewMetricsServer creates the listener exposing the metrics registry. It
// returns nil if no metrics port is configured.
func NewMetricsServer(params HttpServerParams) *HttpServer {
	if params.Config.MetricsPort <= 0 {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", params.Metrics.Handler())

	return newServer(
		params.Context,
		fmt.Sprintf("%s:%d", params.Config.Host, params.Config.MetricsPort),
		mux,
		params.Logger.Named("metrics"),
	)
}

func newServer(ctx context.Context, addr string, handler http.Handler, log *zap.Logger) *HttpServer {
	return &HttpServer{
		ctx:  ctx,
		addr: addr,
		server: &http.Server{
			Addr:    addr,
			Handler: handler,
		},
		log: log,
	}
}

func NewLifecycleServer(params HttpServerParams, lc fx.Lifecycle) *HttpServer {
	servers := []*HttpServer{NewHttpServer(params)}
	if metricsServer := NewMetricsServer(params); metricsServer != nil {
		servers = append(servers, metricsServer)
	}

	for _, server := range servers {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				if err := server.Listen(ctx); err != nil {
					return err
				}
				go server.Serve()
				return nil
			},
			OnStop: func(ctx context.Context) error {
				return server.Shutdown(ctx)
			},
		})
	}

	return servers[0]
}

// Listen binds the server address. A failure to bind is returned, so the
// application does not start.
func (s *HttpServer) Listen(ctx context.Context) error {
	cfg := net.ListenConfig{}

	listener, err := cfg.Listen(ctx, "tcp", s.addr)
	if err != nil {
		s.log.With(zap.Error(err), zap.String("address", s.addr)).Error("failed to listen")
		return err
	}

	s.listener = listener

	s.log.With(zap.String("address", listener.Addr().String())).Info("listening")

	return nil
}

// Addr returns the bound address, or nil before Listen succeeded.
func (s *HttpServer) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}

	return s.listener.Addr()
}

func (s *HttpServer) Serve() error {
	if s.listener == nil {
		return errors.New("server is not listening")
	}

	s.server.BaseContext = func(net.Listener) context.Context {
		return s.ctx
	}

	if err := s.server.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.log.With(zap.Error(err)).Error("failed to serve")
		return err
	}

	return nil
}

func (s *HttpServer) Shutdown(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		s.log.With(zap.Error(err)).Error("failed to shutdown")
		return err
	}

	return nil
}
