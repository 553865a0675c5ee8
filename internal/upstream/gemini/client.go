package gemini

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"runtime"
	"strings"

	"gemini-research-go/internal/apierrors"
	"gemini-research-go/internal/config"
	"gemini-research-go/internal/constants"
	"gemini-research-go/internal/monitoring/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Client talks to the generative language REST API with one caller-supplied
// API key. A client is built per operation and holds no state beyond the key
// and the shared transport configuration; it is never cached across requests.
type Client struct {
	cfg    *config.Config
	cli    *http.Client
	apiKey string
}

// New constructs a client from the caller's credential. A blank credential is
// rejected here, before any network use, because no call can work without
// one; this is the only local validation the credential receives.
func New(cfg *config.Config, apiKey string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, apierrors.NewClientConstruction("API key is empty")
	}
	dialTO := config.DurationOrDefault(cfg.Upstream.DialTimeoutSec, constants.DefaultDialTimeout)
	tlsTO := config.DurationOrDefault(cfg.Upstream.TLSHandshakeTimeoutSec, constants.DefaultTLSHandshakeTimeout)
	hdrTO := config.DurationOrDefault(cfg.Upstream.ResponseHeaderTimeoutSec, constants.DefaultResponseHeaderTimeout)
	expTO := config.DurationOrDefault(cfg.Upstream.ExpectContinueTimeoutSec, constants.DefaultExpectContinueTimeout)

	tr := &http.Transport{
		Proxy: getProxyFunc(cfg.Upstream.ProxyURL),
		DialContext: (&net.Dialer{
			Timeout:   dialTO,
			KeepAlive: constants.DefaultKeepAlive,
		}).DialContext,
		TLSHandshakeTimeout:   tlsTO,
		ResponseHeaderTimeout: hdrTO,
		ExpectContinueTimeout: expTO,
		MaxIdleConns:          constants.MaxIdleConns,
		MaxIdleConnsPerHost:   constants.MaxIdleConnsPerHost,
		IdleConnTimeout:       constants.DefaultIdleConnTimeout,
	}
	return &Client{
		cfg:    cfg,
		cli:    &http.Client{Transport: tr, Timeout: 0},
		apiKey: strings.TrimSpace(apiKey),
	}, nil
}

// getProxyFunc returns the proxy function for the configured proxy URL,
// falling back to the environment proxy.
func getProxyFunc(proxyURL string) func(*http.Request) (*url.URL, error) {
	if proxyURL != "" {
		if parsedURL, err := url.Parse(proxyURL); err == nil {
			return http.ProxyURL(parsedURL)
		}
	}
	return http.ProxyFromEnvironment
}

// BaseURL exposes the configured upstream endpoint.
func (c *Client) BaseURL() string { return c.cfg.Upstream.BaseURL }

// OpenAICompatEnabled reports whether the OpenAI-compatible surface of the
// upstream is advertised for this client.
func (c *Client) OpenAICompatEnabled() bool { return c.cfg.OpenAICompatEnabled() }

func (c *Client) applyDefaultHeaders(req *http.Request) {
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("User-Agent", userAgent())
}

func userAgent() string {
	return fmt.Sprintf("gemini-research/1.0.0 (%s; %s) %s", runtime.GOOS, runtime.GOARCH, runtime.Version())
}

// GetJSON issues a GET against path (relative to the base URL) and returns
// the raw body. Statuses >= 400 become errors carrying the status line and a
// body excerpt.
func (c *Client) GetJSON(ctx context.Context, path string) ([]byte, error) {
	spanCtx, span := tracing.StartSpan(ctx, "upstream/gemini", "Gemini.GetJSON",
		trace.WithAttributes(
			attribute.String("http.method", http.MethodGet),
			attribute.String("http.url", c.cfg.Upstream.BaseURL+path),
		))
	defer span.End()

	req, err := http.NewRequestWithContext(spanCtx, http.MethodGet, c.cfg.Upstream.BaseURL+path, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	c.applyDefaultHeaders(req)
	return c.do(req, span)
}

// PostJSON issues a POST with a JSON body against path and returns the raw
// response body with the same error semantics as GetJSON.
func (c *Client) PostJSON(ctx context.Context, path string, body []byte) ([]byte, error) {
	spanCtx, span := tracing.StartSpan(ctx, "upstream/gemini", "Gemini.PostJSON",
		trace.WithAttributes(
			attribute.String("http.method", http.MethodPost),
			attribute.String("http.url", c.cfg.Upstream.BaseURL+path),
		))
	defer span.End()

	req, err := http.NewRequestWithContext(spanCtx, http.MethodPost, c.cfg.Upstream.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	c.applyDefaultHeaders(req)
	return c.do(req, span)
}

func (c *Client) do(req *http.Request, span trace.Span) ([]byte, error) {
	resp, err := c.cli.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	data, readErr := io.ReadAll(io.LimitReader(resp.Body, constants.MaxResponseBodyBytes))
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if readErr != nil {
		span.RecordError(readErr)
		span.SetStatus(codes.Error, readErr.Error())
		return nil, readErr
	}
	if resp.StatusCode >= 400 {
		span.SetStatus(codes.Error, resp.Status)
		return nil, &StatusError{Status: resp.StatusCode, StatusLine: resp.Status, Body: data}
	}
	span.SetStatus(codes.Ok, "")
	return data, nil
}

// StatusError is an upstream HTTP failure with the body preserved, so callers
// can classify on the upstream's own wording and build diagnostic traces.
type StatusError struct {
	Status     int
	StatusLine string
	Body       []byte
}

func (e *StatusError) Error() string {
	msg := upstreamMessage(e.Body)
	if msg == "" {
		return e.StatusLine
	}
	return fmt.Sprintf("%s: %s", e.StatusLine, msg)
}

// Excerpt returns a bounded slice of the upstream body for diagnostics.
func (e *StatusError) Excerpt() string {
	body := strings.TrimSpace(string(e.Body))
	if len(body) > constants.DiagnosticExcerptBytes {
		return body[:constants.DiagnosticExcerptBytes] + "..."
	}
	return body
}
