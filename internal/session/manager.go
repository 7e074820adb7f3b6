// Package session owns the bearer-token lifecycle. The token lives here
// and nowhere else; the gateway reads it through a provider hook and the
// persisted copy is a mirror for surviving restarts.
package session

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/in1011558-byte/book-order-system/internal/api"
	"github.com/in1011558-byte/book-order-system/internal/store"
	"github.com/in1011558-byte/book-order-system/pkg/domain"
)

// AuthAPI is the slice of the gateway the manager needs.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (api.AuthResult, error)
	Register(ctx context.Context, req api.RegisterRequest) (api.AuthResult, error)
	AdminLogin(ctx context.Context, username, password string) (api.AuthResult, error)
}

// Manager transitions between Anonymous and Authenticated. There are no
// intermediate states; any authorization-denied gateway response drops the
// manager back to Anonymous via HandleAuthDenied.
type Manager struct {
	mu          sync.RWMutex
	kv          store.KV
	auth        AuthAPI
	session     *domain.AuthSession
	logoutHooks []func()
}

// NewManager builds an anonymous manager persisting tokens to kv.
func NewManager(kv store.KV) *Manager {
	return &Manager{kv: kv}
}

// BindGateway attaches the gateway once it has been constructed with this
// manager's token provider.
func (m *Manager) BindGateway(auth AuthAPI) {
	m.auth = auth
}

// AddLogoutHook registers a callback run on every transition to Anonymous.
// Engines use it to discard cached server-owned collections.
func (m *Manager) AddLogoutHook(h func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logoutHooks = append(m.logoutHooks, h)
}

// Restore loads a previously persisted token. The user profile is not
// persisted; a restored session carries the token only, and a stale token
// is corrected by the first authorization-denied response.
func (m *Manager) Restore(ctx context.Context) {
	data, found, err := m.kv.Get(ctx, store.KeySessionToken)
	if err != nil {
		slog.Warn("session restore failed", "err", err)
		return
	}
	if !found {
		return
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return
	}
	m.mu.Lock()
	m.session = &domain.AuthSession{Token: token, ExpiresAt: tokenExpiry(token)}
	m.mu.Unlock()
}

// Login authenticates a user account. On failure the manager stays
// Anonymous and the server-reported error is returned verbatim.
func (m *Manager) Login(ctx context.Context, username, password string) (domain.AuthSession, error) {
	res, err := m.auth.Login(ctx, username, password)
	if err != nil {
		return domain.AuthSession{}, err
	}
	return m.establish(ctx, res), nil
}

// AdminLogin authenticates an administrator account.
func (m *Manager) AdminLogin(ctx context.Context, username, password string) (domain.AuthSession, error) {
	res, err := m.auth.AdminLogin(ctx, username, password)
	if err != nil {
		return domain.AuthSession{}, err
	}
	return m.establish(ctx, res), nil
}

// Register creates an account and opens its first session. Required fields
// are checked before any network call.
func (m *Manager) Register(ctx context.Context, req api.RegisterRequest) (domain.AuthSession, error) {
	if err := validateRegistration(req); err != nil {
		return domain.AuthSession{}, err
	}
	res, err := m.auth.Register(ctx, req)
	if err != nil {
		return domain.AuthSession{}, err
	}
	return m.establish(ctx, res), nil
}

func (m *Manager) establish(ctx context.Context, res api.AuthResult) domain.AuthSession {
	sess := domain.AuthSession{
		Token:     res.Token,
		User:      res.User,
		ExpiresAt: tokenExpiry(res.Token),
	}
	m.mu.Lock()
	m.session = &sess
	m.mu.Unlock()
	if err := m.kv.Set(ctx, store.KeySessionToken, []byte(res.Token)); err != nil {
		slog.Warn("persist session token failed", "err", err)
	}
	return sess
}

// Logout drops to Anonymous: the in-memory session is discarded, the
// persisted token removed and cached server-owned collections flushed
// through the logout hooks. Idempotent.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	wasAuthenticated := m.session != nil
	m.session = nil
	hooks := make([]func(), len(m.logoutHooks))
	copy(hooks, m.logoutHooks)
	m.mu.Unlock()

	if err := m.kv.Delete(ctx, store.KeySessionToken); err != nil {
		slog.Warn("clear persisted token failed", "err", err)
	}
	if !wasAuthenticated {
		return
	}
	for _, h := range hooks {
		h()
	}
}

// HandleAuthDenied is wired as the gateway's auth-denied handler so the UI
// can never keep presenting stale authenticated state.
func (m *Manager) HandleAuthDenied() {
	m.Logout(context.Background())
}

// CurrentToken returns the bearer token or the empty string when
// Anonymous. This is the gateway's token provider.
func (m *Manager) CurrentToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil {
		return ""
	}
	return m.session.Token
}

// IsAuthenticated reports whether a session is active.
func (m *Manager) IsAuthenticated() bool {
	return m.CurrentToken() != ""
}

// Current returns the active session, if any.
func (m *Manager) Current() (domain.AuthSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil {
		return domain.AuthSession{}, false
	}
	return *m.session, true
}

func validateRegistration(req api.RegisterRequest) error {
	required := []struct {
		field, value string
	}{
		{"username", req.Username},
		{"email", req.Email},
		{"password", req.Password},
		{"full_name", req.FullName},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &api.ValidationError{Field: r.field, Reason: "must not be empty"}
		}
	}
	return nil
}

// tokenExpiry decodes the expiry claim off JWT-shaped tokens for display
// purposes. The signature is not verified here; the server remains the
// authority. Opaque tokens yield a zero time.
func tokenExpiry(token string) time.Time {
	parser := jwt.NewParser()
	parsed, _, err := parser.ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
