package handler

import (
	"net/http"

	"github.com/lambda-feedback/relay/jsonapi"
	"github.com/lambda-feedback/relay/proxy"
	"github.com/lambda-feedback/relay/static"
)

func NewIndexRoute(files *static.Responder) RouteResult {
	return AsRoute("index", http.MethodGet, files.Index, "/", "/index.html")
}

func NewProxyRoute(composer *proxy.Composer) RouteResult {
	return AsRoute("proxy", http.MethodGet, composer.Compose, "/test.html")
}

func NewJSONEchoRoute(mutator *jsonapi.Mutator) RouteResult {
	return AsRoute("json_echo", http.MethodPost, mutator.Echo, "/json_api")
}

func NewJSONListRoute(mutator *jsonapi.Mutator) RouteResult {
	return AsRoute("json_list", http.MethodGet, mutator.List, "/json_api")
}

func NewMissingFileRoute(files *static.Responder) RouteResult {
	return AsRoute("missing_file", http.MethodGet, files.Missing, "/no_file.html")
}
