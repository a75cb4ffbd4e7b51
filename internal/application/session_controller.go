package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bnema/tenantctl/internal/domain"
	"github.com/bnema/tenantctl/internal/ports"
	"go.uber.org/zap"
)

const defaultLogoutTimeout = 10 * time.Second

// SessionReader is the read-only view of the session handed to everything
// other than SessionController.
type SessionReader interface {
	Snapshot() domain.Session
	Token() string
}

// SessionController owns the operator session. It is the only writer of
// session state.
type SessionController struct {
	tokens *TokenStore
	guard  *SessionGuard
	auth   ports.AdminAuthenticator
	clock  ports.Clock
	log    *zap.Logger

	logoutTimeout time.Duration

	mu       sync.RWMutex
	session  domain.Session
	epoch    uint64
	inFlight atomic.Bool
	pending  sync.WaitGroup
}

var (
	_ SessionReader     = (*SessionController)(nil)
	_ ports.TokenSource = (*SessionController)(nil)
)

func NewSessionController(tokens *TokenStore, guard *SessionGuard, auth ports.AdminAuthenticator, clock ports.Clock, log *zap.Logger) *SessionController {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &SessionController{
		tokens:        tokens,
		guard:         guard,
		auth:          auth,
		clock:         clock,
		log:           log,
		logoutTimeout: defaultLogoutTimeout,
		session:       domain.Session{State: domain.SessionUnknown},
	}
}

// SetLogoutTimeout bounds the background server-side logout notification.
func (c *SessionController) SetLogoutTimeout(timeout time.Duration) {
	if timeout > 0 {
		c.logoutTimeout = timeout
	}
}

func (c *SessionController) Snapshot() domain.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// Token returns the bearer token for outbound calls, or "" once the session is
// not valid. Expiry is re-checked on every read.
func (c *SessionController) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.session.State != domain.SessionValid || c.session.Token == "" {
		return ""
	}
	if c.guard.IsExpired(c.session.Claims, c.clock.Now()) {
		return ""
	}
	return c.session.Token
}

func (c *SessionController) RequireAuthenticated() error {
	if c.Token() == "" {
		return &domain.AuthError{Reason: "login required", Err: domain.ErrNotAuthenticated}
	}
	return nil
}

// Restore publishes the state of the stored token without any network call.
func (c *SessionController) Restore(ctx context.Context) error {
	c.publish(func(s *domain.Session) {
		s.State = domain.SessionChecking
	})

	result, err := c.guard.Check(ctx)
	c.publishResult(result)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	c.log.Debug("session restored", zap.String("state", string(result.State)))
	return nil
}

// Login exchanges credentials for a token. Only one login may run at a time.
// On failure the stored token is left untouched.
func (c *SessionController) Login(ctx context.Context, email string, password string) error {
	if !c.inFlight.CompareAndSwap(false, true) {
		return domain.ErrLoginInProgress
	}
	defer c.inFlight.Store(false)

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return c.failLogin(&domain.AuthError{Reason: "email and password are required"})
	}

	var epoch uint64
	c.publish(func(s *domain.Session) {
		s.IsLoading = true
		s.LastError = ""
		epoch = c.epoch
	})

	token, err := c.auth.Login(ctx, email, password)
	if err != nil {
		return c.failLogin(err)
	}
	if token == "" {
		return c.failLogin(&domain.AuthError{Reason: "login response did not include a token"})
	}

	result := c.guard.Evaluate(token, c.clock.Now())
	if result.State != domain.SessionValid {
		return c.failLogin(&domain.AuthError{Reason: "login returned an unusable token", Err: result.Err})
	}

	if err := c.commitLogin(ctx, epoch, result); err != nil {
		return c.failLogin(err)
	}

	c.log.Info("logged in", zap.String("identity", result.Claims.Identity()), zap.Time("expires_at", result.Claims.ExpiresAt))
	return nil
}

// commitLogin stores the token and publishes the session unless a logout ran
// since the login started.
func (c *SessionController) commitLogin(ctx context.Context, epoch uint64, result GuardResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.epoch != epoch {
		return &domain.AuthError{Reason: "logged out during login"}
	}
	if err := c.tokens.Save(ctx, result.Token); err != nil {
		return err
	}

	c.session = sessionFromResult(result)
	c.session.CheckedAt = c.clock.Now()
	return nil
}

// Logout clears the local session unconditionally. The server is notified in
// the background; Wait blocks until that notification finishes.
func (c *SessionController) Logout(ctx context.Context) error {
	c.mu.Lock()
	token := c.session.Token
	c.epoch++
	c.session = domain.Session{State: domain.SessionAbsent, CheckedAt: c.clock.Now()}
	c.mu.Unlock()

	clearErr := c.tokens.Clear(ctx)

	if token != "" && c.auth != nil {
		c.pending.Add(1)
		go c.notifyLogout(context.WithoutCancel(ctx), token)
	}

	if clearErr != nil {
		return fmt.Errorf("logout: %w", clearErr)
	}
	return nil
}

func (c *SessionController) Wait() {
	c.pending.Wait()
}

func (c *SessionController) notifyLogout(ctx context.Context, token string) {
	defer c.pending.Done()

	ctx, cancel := context.WithTimeout(ctx, c.logoutTimeout)
	defer cancel()

	start := time.Now()
	if err := c.auth.Logout(ctx, token); err != nil {
		c.log.Warn("server-side logout failed", zap.Error(err), zap.Duration("took", time.Since(start)))
		return
	}
	c.log.Debug("server-side logout done", zap.Duration("took", time.Since(start)))
}

func (c *SessionController) failLogin(err error) error {
	c.publish(func(s *domain.Session) {
		s.IsLoading = false
		s.LastError = err.Error()
	})

	var authErr *domain.AuthError
	if errors.As(err, &authErr) {
		c.log.Debug("login rejected", zap.Error(err))
	} else {
		c.log.Warn("login failed", zap.Error(err))
	}
	return err
}

func (c *SessionController) publishResult(result GuardResult) {
	c.publish(func(s *domain.Session) {
		*s = sessionFromResult(result)
	})
}

func sessionFromResult(result GuardResult) domain.Session {
	s := domain.Session{
		Token:           result.Token,
		Claims:          result.Claims,
		State:           result.State,
		IsAuthenticated: result.State.Authenticated(),
	}
	if result.Err != nil {
		s.LastError = result.Err.Error()
	}
	return s
}

func (c *SessionController) publish(update func(*domain.Session)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	update(&c.session)
	c.session.CheckedAt = c.clock.Now()
}
