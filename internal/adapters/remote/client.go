package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/tenantctl/internal/domain"
	"github.com/bnema/tenantctl/internal/ports"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	maxResponseBytes = 1 << 20

	RequestIDHeader = "X-Request-Id"
)

// Client issues authorized JSON calls against a self-hosted instance. The
// bearer token is read from Tokens on every call.
type Client struct {
	Tokens         ports.TokenSource
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	Log            *zap.Logger
}

var _ ports.RemoteCaller = (*Client)(nil)

func New(tokens ports.TokenSource, httpClient *http.Client, requestTimeout time.Duration, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		Tokens:         tokens,
		HTTPClient:     httpClient,
		RequestTimeout: requestTimeout,
		Log:            log,
	}
}

// BuildURL joins baseURL and path. Exactly one trailing slash is stripped from
// baseURL; path must start with "/" and is appended untouched.
func BuildURL(baseURL string, path string) (string, error) {
	if strings.TrimSpace(baseURL) == "" {
		return "", &domain.ValidationError{Field: "base url", Reason: "base url is required"}
	}
	if !strings.HasPrefix(path, "/") {
		return "", &domain.ValidationError{Field: "path", Reason: fmt.Sprintf("path %q must begin with /", path)}
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", &domain.ValidationError{Field: "base url", Reason: err.Error(), Err: err}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", &domain.ValidationError{Field: "base url", Reason: "must use http or https"}
	}
	if parsed.Host == "" {
		return "", &domain.ValidationError{Field: "base url", Reason: "host is required"}
	}

	return strings.TrimSuffix(baseURL, "/") + path, nil
}

func (c *Client) Call(ctx context.Context, req ports.RemoteRequest) (ports.RemoteResponse, error) {
	token := ""
	if c.Tokens != nil {
		token = c.Tokens.Token()
	}
	if token == "" {
		return ports.RemoteResponse{}, &domain.AuthError{Reason: "no session token", Err: domain.ErrNotAuthenticated}
	}

	endpoint, err := BuildURL(req.BaseURL, req.Path)
	if err != nil {
		return ports.RemoteResponse{}, err
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return ports.RemoteResponse{}, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()
	httpReq, err := http.NewRequestWithContext(requestCtx, method, endpoint, body)
	if err != nil {
		return ports.RemoteResponse{}, fmt.Errorf("create remote request: %w", err)
	}

	requestID := uuid.NewString()
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(RequestIDHeader, requestID)

	log := c.log().With(
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("url", endpoint),
	)
	start := time.Now()
	defer func() {
		log.Debug("remote call finished", zap.Duration("took", time.Since(start)))
	}()

	resp, err := c.httpClient().Do(httpReq)
	if err != nil {
		return ports.RemoteResponse{}, &domain.TransportError{Op: method, URL: endpoint, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return ports.RemoteResponse{}, &domain.TransportError{Op: method, URL: endpoint, Err: fmt.Errorf("read response: %w", err)}
	}

	log = log.With(zap.Int("status", resp.StatusCode))
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return ports.RemoteResponse{StatusCode: resp.StatusCode, Body: payload}, &domain.RemoteError{
			StatusCode: resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
			Detail:     ErrorDetail(payload),
		}
	}

	return ports.RemoteResponse{StatusCode: resp.StatusCode, Body: payload}, nil
}

// ErrorDetail extracts a human-readable failure message from a response body.
// JSON bodies contribute their message or error field; anything else is
// returned trimmed but otherwise verbatim.
func ErrorDetail(payload []byte) string {
	if gjson.ValidBytes(payload) {
		for _, path := range []string{"message", "error.message", "error", "detail"} {
			if value := gjson.GetBytes(payload, path); value.Type == gjson.String && value.String() != "" {
				return value.String()
			}
		}
	}

	return strings.TrimSpace(string(payload))
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) log() *zap.Logger {
	if c.Log != nil {
		return c.Log
	}
	return zap.NewNop()
}

func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := c.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}

	return context.WithTimeout(ctx, requestTimeout)
}
