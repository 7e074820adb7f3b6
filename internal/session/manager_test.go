package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/in1011558-byte/book-order-system/internal/api"
	"github.com/in1011558-byte/book-order-system/internal/store"
	"github.com/in1011558-byte/book-order-system/pkg/domain"
)

// newTestManager wires a manager and gateway the way the app does: the
// manager provides the token, the gateway reports auth denials back.
func newTestManager(t *testing.T, handler http.Handler) (*Manager, *api.Client, store.KV) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	kv, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	mgr := NewManager(kv)
	client := api.NewClient(srv.URL, mgr.CurrentToken, 0)
	client.SetAuthDeniedHandler(mgr.HandleAuthDenied)
	mgr.BindGateway(client)
	return mgr, client, kv
}

func authOKHandler(token string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(api.AuthResult{
			Token: token,
			User:  domain.User{ID: 1, Username: "tanaka", FullName: "Tanaka Hanako"},
		})
	})
}

func persistedToken(t *testing.T, kv store.KV) (string, bool) {
	t.Helper()
	data, found, err := kv.Get(context.Background(), store.KeySessionToken)
	if err != nil {
		t.Fatalf("read persisted token: %v", err)
	}
	return string(data), found
}

func TestLoginSuccessPersistsToken(t *testing.T) {
	mgr, _, kv := newTestManager(t, authOKHandler("tok-1"))

	sess, err := mgr.Login(context.Background(), "tanaka", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess.User.Username != "tanaka" {
		t.Fatalf("unexpected user: %+v", sess.User)
	}
	if !mgr.IsAuthenticated() || mgr.CurrentToken() != "tok-1" {
		t.Fatalf("expected authenticated session")
	}
	if tok, found := persistedToken(t, kv); !found || tok != "tok-1" {
		t.Fatalf("expected persisted token, got %q found=%v", tok, found)
	}
}

func TestLoginFailureStaysAnonymous(t *testing.T) {
	mgr, _, kv := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
	}))

	_, err := mgr.Login(context.Background(), "bad", "creds")
	var httpErr *api.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Status != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
	if httpErr.Message != "invalid credentials" {
		t.Fatalf("server message must be passed through verbatim, got %q", httpErr.Message)
	}
	if mgr.IsAuthenticated() {
		t.Fatalf("session must remain anonymous after failed login")
	}
	if _, found := persistedToken(t, kv); found {
		t.Fatalf("no token must be persisted after failed login")
	}
}

func TestRegisterValidatesBeforeNetwork(t *testing.T) {
	var hits int32
	mgr, _, _ := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))

	_, err := mgr.Register(context.Background(), api.RegisterRequest{
		Username: "tanaka",
		Email:    "tanaka@example.com",
		Password: "secret",
		FullName: "   ",
	})
	var valErr *api.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if valErr.Field != "full_name" {
		t.Fatalf("unexpected field: %q", valErr.Field)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Fatalf("validation must fail before any network call")
	}
}

func TestRegisterSuccessOpensSession(t *testing.T) {
	mgr, _, _ := newTestManager(t, authOKHandler("tok-reg"))

	sess, err := mgr.Register(context.Background(), api.RegisterRequest{
		Username: "tanaka",
		Email:    "tanaka@example.com",
		Password: "secret",
		FullName: "Tanaka Hanako",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if sess.Token != "tok-reg" || !mgr.IsAuthenticated() {
		t.Fatalf("expected authenticated session after registration")
	}
}

func TestAuthDeniedResponseTearsDownSession(t *testing.T) {
	mgr, client, kv := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/admin/login" {
			_ = json.NewEncoder(w).Encode(api.AuthResult{Token: "tok-stale"})
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "token expired"})
	}))

	hookRuns := 0
	mgr.AddLogoutHook(func() { hookRuns++ })

	if _, err := mgr.AdminLogin(context.Background(), "admin", "pw"); err != nil {
		t.Fatalf("admin login: %v", err)
	}
	if _, err := client.AdminOrders(context.Background()); err == nil {
		t.Fatalf("expected error from denied call")
	}

	if mgr.IsAuthenticated() {
		t.Fatalf("manager must be anonymous after authorization denial")
	}
	if _, found := persistedToken(t, kv); found {
		t.Fatalf("persisted token must be cleared after authorization denial")
	}
	if hookRuns != 1 {
		t.Fatalf("expected cached collections to be flushed once, got %d", hookRuns)
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	mgr, _, _ := newTestManager(t, authOKHandler("tok-1"))
	hookRuns := 0
	mgr.AddLogoutHook(func() { hookRuns++ })

	if _, err := mgr.Login(context.Background(), "tanaka", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	mgr.Logout(context.Background())
	mgr.Logout(context.Background())

	if mgr.IsAuthenticated() {
		t.Fatalf("expected anonymous after logout")
	}
	if hookRuns != 1 {
		t.Fatalf("hooks must only run on the authenticated->anonymous edge, got %d", hookRuns)
	}
}

func TestRestoreLoadsPersistedToken(t *testing.T) {
	kv, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	ctx := context.Background()
	if err := kv.Set(ctx, store.KeySessionToken, []byte("tok-saved")); err != nil {
		t.Fatalf("seed token: %v", err)
	}

	mgr := NewManager(kv)
	mgr.Restore(ctx)

	if mgr.CurrentToken() != "tok-saved" {
		t.Fatalf("expected restored token, got %q", mgr.CurrentToken())
	}
}

func TestJWTExpiryDecodedForDisplay(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "tanaka",
		"exp": exp.Unix(),
	}).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	mgr, _, _ := newTestManager(t, authOKHandler(token))
	sess, err := mgr.Login(context.Background(), "tanaka", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !sess.ExpiresAt.Equal(exp) {
		t.Fatalf("expected expiry %v, got %v", exp, sess.ExpiresAt)
	}
}

func TestOpaqueTokenHasZeroExpiry(t *testing.T) {
	mgr, _, _ := newTestManager(t, authOKHandler("not-a-jwt"))
	sess, err := mgr.Login(context.Background(), "tanaka", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !sess.ExpiresAt.IsZero() {
		t.Fatalf("opaque token must not report an expiry")
	}
}
