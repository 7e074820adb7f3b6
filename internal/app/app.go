// Package app wires the client together: config, local store, session
// manager, gateway and the reconciliation engines.
package app

import (
	"context"
	"fmt"

	"github.com/in1011558-byte/book-order-system/internal/admin"
	"github.com/in1011558-byte/book-order-system/internal/api"
	"github.com/in1011558-byte/book-order-system/internal/cart"
	"github.com/in1011558-byte/book-order-system/internal/config"
	"github.com/in1011558-byte/book-order-system/internal/lists"
	"github.com/in1011558-byte/book-order-system/internal/session"
	"github.com/in1011558-byte/book-order-system/internal/store"
)

// App is the composed client. The session manager is the only writer of
// the token; the gateway reads it through the provider hook and reports
// authorization denials back so stale sessions are torn down.
type App struct {
	Config  config.FileConfig
	KV      store.KV
	Session *session.Manager
	Gateway *api.Client
	Cart    *cart.Engine
	Lists   *lists.Engine
	Admin   *admin.Loader
}

// New builds the client and restores persisted state (token, cart).
func New(ctx context.Context, cfg config.FileConfig) (*App, error) {
	timeout, err := config.ParseHTTPTimeout(cfg.HTTPTimeout)
	if err != nil {
		return nil, err
	}

	var kv store.KV
	switch cfg.Storage {
	case config.StorageRedis:
		kv = store.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword)
	default:
		kv, err = store.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("init local store: %w", err)
		}
	}

	mgr := session.NewManager(kv)
	gateway := api.NewClient(cfg.APIBaseURL, mgr.CurrentToken, timeout)
	gateway.SetAuthDeniedHandler(mgr.HandleAuthDenied)
	mgr.BindGateway(gateway)

	cartEngine := cart.NewEngine(kv)
	listEngine := lists.NewEngine(gateway)
	adminLoader := admin.NewLoader(gateway)
	mgr.AddLogoutHook(listEngine.DropCache)
	mgr.AddLogoutHook(adminLoader.DropCache)

	mgr.Restore(ctx)
	cartEngine.Restore(ctx)

	return &App{
		Config:  cfg,
		KV:      kv,
		Session: mgr,
		Gateway: gateway,
		Cart:    cartEngine,
		Lists:   listEngine,
		Admin:   adminLoader,
	}, nil
}
