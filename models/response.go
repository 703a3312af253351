package models

import (
	"net/http"

	"github.com/lambda-feedback/relay/internal/stream"
)

var (
	notFoundBody            = []byte("Not Found")
	internalServerErrorBody = []byte("Internal Server Error")
)

// Response represents an outgoing response. Its body is either a single
// materialized chunk or a lazily produced stream.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       stream.Segment
}

// NewResponse creates a new response. A nil header is replaced by an
// empty one and a nil body by an empty segment.
func NewResponse(status int, header http.Header, body stream.Segment) Response {
	if header == nil {
		header = make(http.Header)
	}

	if body == nil {
		body = stream.Once(nil)
	}

	return Response{
		StatusCode: status,
		Header:     header,
		Body:       body,
	}
}

// NewJSONResponse creates a response with a buffered json body.
func NewJSONResponse(status int, body []byte) Response {
	header := make(http.Header)
	header.Set("Content-Type", "application/json")

	return NewResponse(status, header, stream.Once(body))
}

// NotFound returns the canned 404 response.
func NotFound() Response {
	return NewResponse(http.StatusNotFound, nil, stream.Once(notFoundBody))
}

// InternalServerError returns the canned 500 response.
func InternalServerError() Response {
	return NewResponse(http.StatusInternalServerError, nil, stream.Once(internalServerErrorBody))
}
