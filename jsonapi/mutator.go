package jsonapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/lambda-feedback/relay/models"
)

const (
	// InjectedKey is the key set on every echoed document.
	InjectedKey = "test"

	// InjectedValue is the value stored under InjectedKey.
	InjectedValue = "test_value"
)

// ErrMalformedInput is returned when the request body is not a json
// document that can take the injected key.
var ErrMalformedInput = errors.New("malformed input")

// cannedList is returned for read-only requests.
var cannedList = []string{"foo", "bar"}

// codec keeps number literals verbatim and emits object keys sorted.
var codec = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	UseNumber:              true,
	ValidateJsonRawMessage: true,
}.Froze()

type MutatorParams struct {
	fx.In

	Log *zap.Logger
}

type Mutator struct {
	log *zap.Logger
}

func NewMutator(params MutatorParams) *Mutator {
	return &Mutator{
		log: params.Log.Named("jsonapi"),
	}
}

// Echo reads the complete request body, sets InjectedKey on the decoded
// document and returns the re-encoded document.
func (m *Mutator) Echo(_ context.Context, r *http.Request) (models.Response, error) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return models.Response{}, fmt.Errorf("%w: failed to read body: %w", ErrMalformedInput, err)
	}

	body, err := Mutate(data)
	if err != nil {
		m.log.Debug("failed to mutate document", zap.Error(err))
		return models.Response{}, err
	}

	return models.NewJSONResponse(http.StatusOK, body), nil
}

// List returns the canned json list. It ignores the request entirely.
func (m *Mutator) List(context.Context, *http.Request) (models.Response, error) {
	body, err := codec.Marshal(cannedList)
	if err != nil {
		m.log.Error("failed to encode list", zap.Error(err))
		return models.InternalServerError(), nil
	}

	return models.NewJSONResponse(http.StatusOK, body), nil
}

// Mutate decodes data, inserts or overwrites InjectedKey and encodes the
// result. Every other key is preserved. A null document becomes an object
// holding only InjectedKey; any other non-object document is rejected.
func Mutate(data []byte) ([]byte, error) {
	// number literals are decoded verbatim, so they must be checked up front
	if !codec.Valid(data) {
		return nil, fmt.Errorf("%w: invalid json", ErrMalformedInput)
	}

	var doc any
	if err := codec.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}

	var obj map[string]any
	switch v := doc.(type) {
	case map[string]any:
		obj = v
	case nil:
		obj = make(map[string]any, 1)
	default:
		return nil, fmt.Errorf("%w: cannot set key %q on %s", ErrMalformedInput, InjectedKey, kindOf(v))
	}

	obj[InjectedKey] = InjectedValue

	return codec.Marshal(obj)
}

func kindOf(v any) string {
	switch v.(type) {
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	default:
		return "number"
	}
}
