package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/tenantctl/internal/domain"
	"github.com/bnema/tenantctl/internal/ports"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// tokenClaims is the payload shape issued by the admin API.
type tokenClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// GuardResult is the outcome of evaluating one token.
type GuardResult struct {
	State  domain.SessionState
	Token  string
	Claims domain.Claims
	// Err explains an Invalid result. It is never surfaced to callers as a failure.
	Err error
}

// SessionGuard decides from the token alone whether the session is usable.
//
// Trust boundary: the signature segment is never verified here. Decoding only
// tells the CLI who it believes it is logged in as and when to stop sending
// the token. Every remote API re-verifies the token on every call, and that
// check is the only one that grants access.
type SessionGuard struct {
	tokens *TokenStore
	clock  ports.Clock
	parser *jwt.Parser
	log    *zap.Logger
}

func NewSessionGuard(tokens *TokenStore, clock ports.Clock, log *zap.Logger) *SessionGuard {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &SessionGuard{
		tokens: tokens,
		clock:  clock,
		parser: jwt.NewParser(),
		log:    log,
	}
}

// Decode reads the claims segment of token without checking its signature.
func (g *SessionGuard) Decode(token string) (domain.Claims, error) {
	var claims tokenClaims
	if _, _, err := g.parser.ParseUnverified(token, &claims); err != nil {
		return domain.Claims{}, &domain.DecodeError{Err: err}
	}
	if claims.ExpiresAt == nil {
		return domain.Claims{}, &domain.DecodeError{Err: errors.New("token has no exp claim")}
	}
	if claims.Subject == "" && claims.Email == "" {
		return domain.Claims{}, &domain.DecodeError{Err: errors.New("token has no subject")}
	}

	decoded := domain.Claims{
		Subject:   claims.Subject,
		Email:     claims.Email,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		decoded.IssuedAt = claims.IssuedAt.Time
	}
	return decoded, nil
}

// IsExpired reports whether the expiry is at or before now, at millisecond
// resolution.
func (g *SessionGuard) IsExpired(claims domain.Claims, now time.Time) bool {
	return claims.ExpiresAt.UnixMilli() <= now.UnixMilli()
}

// Evaluate classifies token at now without touching storage.
func (g *SessionGuard) Evaluate(token string, now time.Time) GuardResult {
	if token == "" {
		return GuardResult{State: domain.SessionAbsent}
	}

	claims, err := g.Decode(token)
	if err != nil {
		return GuardResult{State: domain.SessionInvalid, Err: err}
	}
	if g.IsExpired(claims, now) {
		return GuardResult{State: domain.SessionInvalid, Claims: claims, Err: domain.ErrTokenExpired}
	}

	return GuardResult{State: domain.SessionValid, Token: token, Claims: claims}
}

// Check evaluates the stored token and clears it when it is unusable. The
// returned error only reports storage failures.
func (g *SessionGuard) Check(ctx context.Context) (GuardResult, error) {
	token, ok, err := g.tokens.Read(ctx)
	if err != nil {
		return GuardResult{State: domain.SessionInvalid, Err: err}, err
	}
	if !ok {
		return GuardResult{State: domain.SessionAbsent}, nil
	}

	result := g.Evaluate(token, g.clock.Now())
	if result.State != domain.SessionInvalid {
		return result, nil
	}

	g.log.Debug("discarding stored session token", zap.Error(result.Err))
	if err := g.tokens.Clear(ctx); err != nil {
		return result, fmt.Errorf("discard invalid session token: %w", err)
	}
	return result, nil
}
