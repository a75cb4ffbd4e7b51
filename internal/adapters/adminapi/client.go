package adminapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bnema/tenantctl/internal/adapters/remote"
	"github.com/bnema/tenantctl/internal/domain"
	"github.com/bnema/tenantctl/internal/ports"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

const maxAPIResponseBytes = 1 << 20

const (
	DefaultLoginPath  = "/api/admin/login"
	DefaultLogoutPath = "/api/admin/logout"
)

type API struct {
	BaseURL    string
	LoginPath  string
	LogoutPath string
}

// Client talks to the operator's own admin backend.
type Client struct {
	API            API
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

var _ ports.AdminAuthenticator = Client{}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c Client) Login(ctx context.Context, email string, password string) (string, error) {
	if email == "" || password == "" {
		return "", &domain.AuthError{Reason: "email and password are required"}
	}

	endpoint, err := remote.BuildURL(c.API.BaseURL, pathOrDefault(c.API.LoginPath, DefaultLoginPath))
	if err != nil {
		return "", err
	}

	encoded, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return "", fmt.Errorf("encode login request: %w", err)
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(requestCtx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(remote.RequestIDHeader, uuid.NewString())

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", &domain.TransportError{Op: http.MethodPost, URL: endpoint, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxAPIResponseBytes))
	if err != nil {
		return "", &domain.TransportError{Op: http.MethodPost, URL: endpoint, Err: fmt.Errorf("read login response: %w", err)}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", &domain.AuthError{
			Reason: "login rejected",
			Err: &domain.RemoteError{
				StatusCode: resp.StatusCode,
				StatusText: http.StatusText(resp.StatusCode),
				Detail:     remote.ErrorDetail(payload),
			},
		}
	}

	token := gjson.GetBytes(payload, "token")
	if token.Type != gjson.String {
		token = gjson.GetBytes(payload, "data.token")
	}
	if token.Type != gjson.String || token.String() == "" {
		return "", &domain.AuthError{Reason: "login response did not include a token"}
	}

	return token.String(), nil
}

// Logout asks the backend to invalidate token.
func (c Client) Logout(ctx context.Context, token string) error {
	if token == "" {
		return errors.New("token is required")
	}

	endpoint, err := remote.BuildURL(c.API.BaseURL, pathOrDefault(c.API.LogoutPath, DefaultLogoutPath))
	if err != nil {
		return err
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(requestCtx, http.MethodPost, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create logout request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(remote.RequestIDHeader, uuid.NewString())

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return &domain.TransportError{Op: http.MethodPost, URL: endpoint, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, maxAPIResponseBytes))
		return &domain.RemoteError{
			StatusCode: resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
			Detail:     remote.ErrorDetail(payload),
		}
	}
	return nil
}

func (c Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := c.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}

	return context.WithTimeout(ctx, requestTimeout)
}

func pathOrDefault(path string, fallback string) string {
	if path == "" {
		return fallback
	}
	return path
}
