// Package gateway is the single chokepoint for the client's network I/O.
// Every call goes out through Request, which injects the bearer token,
// normalizes failures into the uniform envelope and notifies the user about
// them. Nothing escapes this boundary as a panic or an unchecked error.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/avolkovx/userdesk/internal/common"
	"github.com/avolkovx/userdesk/internal/logging"
	"github.com/avolkovx/userdesk/internal/notify"
)

// genericMessage is the fallback when a failed response carries no usable
// error field.
const genericMessage = "Something went wrong"

// Envelope is the uniform result of every gateway call. Exactly one of Data
// and Error is meaningful: Error == "" means success. Status carries the HTTP
// status for callers that need to distinguish 401-class failures; it is 0 on
// transport-level errors.
type Envelope struct {
	Data   json.RawMessage
	Error  string
	Status int
}

// Err maps the envelope to a sentinel-wrapped error, nil on success.
func (e Envelope) Err() error {
	if e.Error == "" {
		return nil
	}
	switch {
	case e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden:
		return fmt.Errorf("%s: %w", e.Error, common.ErrUnauthorized)
	case e.Status == 0:
		return fmt.Errorf("%s: %w", e.Error, common.ErrUnavailable)
	default:
		return errors.New(e.Error)
	}
}

// Options configures a single call.
type Options struct {
	Method  string            // defaults to GET
	Body    any               // JSON-encoded when non-nil
	NoAuth  bool              // skip the Authorization header (login)
	Headers map[string]string // per-call overrides, applied last
}

// Gateway performs all outbound HTTP calls against one configured base URL.
type Gateway struct {
	baseURL  string
	client   *http.Client
	notifier notify.Notifier
	log      logging.Logger
}

// New builds a Gateway. The underlying http.Client carries no timeout:
// a stalled request stays pending until the transport gives up or the
// caller's context is cancelled.
func New(baseURL string, notifier notify.Notifier, log logging.Logger) *Gateway {
	return &Gateway{
		baseURL:  baseURL,
		client:   &http.Client{},
		notifier: notifier,
		log:      log,
	}
}

// Request performs one call and returns the uniform envelope. A failed call
// emits exactly one user-visible notification; success emits none (success
// feedback belongs to the caller).
func (g *Gateway) Request(ctx context.Context, endpoint string, opts Options, token string) Envelope {
	env := g.do(ctx, endpoint, opts, token)
	if env.Error != "" {
		g.notifier.Error(env.Error)
	}
	return env
}

func (g *Gateway) do(ctx context.Context, endpoint string, opts Options, token string) Envelope {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if opts.Body != nil {
		data, err := json.Marshal(opts.Body)
		if err != nil {
			return Envelope{Error: genericMessage}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+endpoint, body)
	if err != nil {
		return Envelope{Error: genericMessage}
	}

	req.Header.Set("Content-Type", "application/json")
	if !opts.NoAuth && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.log.Debug(ctx, "request failed", "method", method, "endpoint", endpoint, "error", err)
		return Envelope{Error: common.ErrUnavailable.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Envelope{Error: genericMessage, Status: resp.StatusCode}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Envelope{Error: errorMessage(data), Status: resp.StatusCode}
	}

	// Some calls (DELETE) legitimately return an empty body.
	if len(bytes.TrimSpace(data)) == 0 {
		return Envelope{Status: resp.StatusCode}
	}
	if !json.Valid(data) {
		return Envelope{Error: genericMessage, Status: resp.StatusCode}
	}
	return Envelope{Data: data, Status: resp.StatusCode}
}

// errorMessage extracts the "error" field of a failed response body, falling
// back to the generic message.
func errorMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return genericMessage
}

// Decode unwraps a successful envelope into T. A failed envelope yields the
// mapped error; callers must not touch the result in that case.
func Decode[T any](env Envelope) (*T, error) {
	if err := env.Err(); err != nil {
		return nil, err
	}
	var v T
	if len(env.Data) == 0 {
		return &v, nil
	}
	if err := json.Unmarshal(env.Data, &v); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &v, nil
}
