// Package client is a typed request/response wrapper over the fleet API. It
// normalizes transport and application errors into a single error kind and has
// no side effects beyond the network call itself.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/DVA506/SmartMove/internal/pkg/metrics"
	"github.com/DVA506/SmartMove/pkg/log"
	"github.com/DVA506/SmartMove/pkg/options"
)

// APIError is the single failure kind raised by the client. Status is zero for
// transport-level failures (unreachable, timeout); otherwise it carries the
// HTTP status and the server-provided message when one was present.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// AsAPIError unwraps err into an *APIError when it is one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// Client talks to one fleet-management service origin, fixed for the process
// lifetime.
type Client struct {
	baseURL string
	hc      *http.Client
	log     log.Logger
}

// New creates a Client for the configured fleet API origin.
func New(opts *options.ApiOptions) *Client {
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		hc:      &http.Client{Timeout: opts.Timeout},
		log:     log.WithName("client"),
	}
}

// BaseURL returns the configured origin, for read-only display.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchJSON performs a GET against path and decodes the response body into out.
func (c *Client) FetchJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &APIError{Message: err.Error()}
	}
	return c.do(req, out)
}

// SubmitJSON performs a POST of body against path and decodes the response
// body into out. A nil out discards the response payload.
func (c *Client) SubmitJSON(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &APIError{Message: fmt.Sprintf("encode request: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return &APIError{Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

// HealthCheck probes the service and reports reachability as a boolean rather
// than an error, so callers can gate other operations on it.
func (c *Client) HealthCheck(ctx context.Context) bool {
	err := c.FetchJSON(ctx, "/health", nil)
	ok := err == nil
	if ok {
		metrics.ApiConnectivityStatus.Set(1)
	} else {
		metrics.ApiConnectivityStatus.Set(0)
		c.log.Debug("health check failed", "err", err)
	}
	return ok
}

// errorBody is the error convention of the fleet service: any non-2xx response
// may carry {"error": "..."}.
type errorBody struct {
	Error string `json:"error"`
}

func (c *Client) do(req *http.Request, out any) error {
	path := req.URL.Path

	res, err := c.hc.Do(req)
	if err != nil {
		metrics.ApiRequestsTotal.WithLabelValues(path, "error").Inc()
		return &APIError{Message: err.Error()}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		metrics.ApiRequestsTotal.WithLabelValues(path, "error").Inc()
		return &APIError{Message: err.Error()}
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		metrics.ApiRequestsTotal.WithLabelValues(path, "error").Inc()

		// A malformed error body degrades to the generic message.
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		msg := eb.Error
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d", res.StatusCode)
		}
		return &APIError{Status: res.StatusCode, Message: msg}
	}

	metrics.ApiRequestsTotal.WithLabelValues(path, "success").Inc()

	if out != nil {
		// Failure to parse a success body yields an empty structure, not an
		// error; the fleet service may answer 2xx with no JSON payload.
		if err := json.Unmarshal(raw, out); err != nil {
			c.log.Debug("unparseable success body, keeping empty result", "path", path, "err", err)
		}
	}
	return nil
}
