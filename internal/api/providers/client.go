// Package providers implements the external data collaborators: geocoding,
// weather, places, encyclopedia summaries and web search. Every call returns
// a *types.FetchError on failure and leaves the fallback choice to the caller.
package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

const DefaultTimeout = 10 * time.Second

// httpClient is shared by every provider. Each call gets its own timeout.
type httpClient struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	logger    *slog.Logger
}

func newHTTPClient(client *http.Client, timeout time.Duration, userAgent string, logger *slog.Logger) *httpClient {
	if client == nil {
		client = &http.Client{}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &httpClient{client: client, timeout: timeout, userAgent: userAgent, logger: logger}
}

type request struct {
	provider string
	method   string
	url      string
	headers  map[string]string
	body     any
}

// do sends req and decodes a JSON answer into dst. 404 maps to ErrNotFound,
// every other failure to ErrUnavailable.
func (c *httpClient) do(ctx context.Context, req request, dst any) error {
	ctx, span := otel.Tracer("Providers").Start(ctx, req.provider, trace.WithAttributes(
		attribute.String("http.method", req.method),
		attribute.String("provider", req.provider),
	))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	err := c.send(ctx, req, dst)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.WarnContext(ctx, "Provider call failed",
			slog.String("provider", req.provider), slog.Any("error", err))
		return err
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

func (c *httpClient) send(ctx context.Context, req request, dst any) error {
	var body io.Reader
	if req.body != nil {
		raw, err := json.Marshal(req.body)
		if err != nil {
			return types.NewFetchError(req.provider, fmt.Errorf("%w: encode request: %v", types.ErrUnavailable, err))
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, req.url, body)
	if err != nil {
		return types.NewFetchError(req.provider, fmt.Errorf("%w: build request: %v", types.ErrUnavailable, err))
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}
	for k, v := range req.headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return types.NewFetchError(req.provider, fmt.Errorf("%w: %v", types.ErrUnavailable, err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return types.NewFetchError(req.provider, types.ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return types.NewFetchError(req.provider, fmt.Errorf("%w: status %d", types.ErrUnavailable, resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return types.NewFetchError(req.provider, fmt.Errorf("%w: decode response: %v", types.ErrUnavailable, err))
	}
	return nil
}

func notConfigured(provider string) error {
	return types.NewFetchError(provider, types.ErrNotConfigured)
}
