// Package admin caches the administrator's view of orders and customers.
// Like the selection-list cache, it holds exactly what the server last
// returned and nothing derived.
package admin

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/in1011558-byte/book-order-system/internal/api"
	"github.com/in1011558-byte/book-order-system/pkg/domain"
)

// AdminAPI is the slice of the gateway the loader needs.
type AdminAPI interface {
	AdminOrders(ctx context.Context) ([]domain.Order, error)
	AdminCustomers(ctx context.Context) ([]domain.Customer, error)
	AdminCustomerOrders(ctx context.Context, customerID int) (api.CustomerOrders, error)
}

// Loader fetches and caches admin collections.
type Loader struct {
	mu        sync.RWMutex
	gw        AdminAPI
	orders    []domain.Order
	customers []domain.Customer
}

// NewLoader builds a loader with an empty cache.
func NewLoader(gw AdminAPI) *Loader {
	return &Loader{gw: gw}
}

// Load fetches orders and customers concurrently. Both collections are
// applied together or not at all; the first error wins and the previous
// cache stays in place.
func (l *Loader) Load(ctx context.Context) error {
	var (
		orders    []domain.Order
		customers []domain.Customer
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = l.gw.AdminOrders(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		customers, err = l.gw.AdminCustomers(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	l.mu.Lock()
	l.orders = orders
	l.customers = customers
	l.mu.Unlock()
	return nil
}

// CustomerOrders fetches one customer's history. Not cached: the detail
// view always shows a fresh copy.
func (l *Loader) CustomerOrders(ctx context.Context, customerID int) (api.CustomerOrders, error) {
	return l.gw.AdminCustomerOrders(ctx, customerID)
}

// Orders returns the cached order collection.
func (l *Loader) Orders() []domain.Order {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domain.Order, len(l.orders))
	copy(out, l.orders)
	return out
}

// Customers returns the cached customer roster.
func (l *Loader) Customers() []domain.Customer {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domain.Customer, len(l.customers))
	copy(out, l.customers)
	return out
}

// DropCache discards cached admin data on logout.
func (l *Loader) DropCache() {
	l.mu.Lock()
	l.orders = nil
	l.customers = nil
	l.mu.Unlock()
}
