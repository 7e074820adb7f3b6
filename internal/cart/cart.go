// Package cart holds the client-owned cart. Mutations are optimistic and
// need no server round trip; the in-memory cart is the authority and the
// persisted copy written after each mutation is only a mirror.
package cart

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"github.com/in1011558-byte/book-order-system/internal/api"
	"github.com/in1011558-byte/book-order-system/internal/store"
	"github.com/in1011558-byte/book-order-system/pkg/domain"
)

// OrderAPI is the slice of the gateway checkout needs.
type OrderAPI interface {
	CreateOrder(ctx context.Context, order api.OrderRequest) (domain.Order, error)
}

// Engine applies the cart's single normalization rule: at most one entry
// per ISBN, quantity always >= 1.
type Engine struct {
	mu    sync.RWMutex
	kv    store.KV
	items []domain.CartItem
}

// NewEngine builds an empty cart mirrored to kv.
func NewEngine(kv store.KV) *Engine {
	return &Engine{kv: kv}
}

// Restore loads the last persisted cart. Malformed stored data is logged
// and replaced with an empty cart; it never propagates to the caller.
func (e *Engine) Restore(ctx context.Context) {
	data, found, err := e.kv.Get(ctx, store.KeyCart)
	if err != nil {
		slog.Warn("cart restore failed", "err", err)
		return
	}
	if !found {
		return
	}
	var items []domain.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		slog.Warn("persisted cart is corrupt, starting empty", "err", err)
		return
	}
	e.mu.Lock()
	e.items = normalize(items)
	e.mu.Unlock()
}

// Add merges a book into the cart. An existing entry with the same ISBN
// has its quantity incremented; otherwise a new entry is appended. A
// non-positive qty counts as 1.
func (e *Engine) Add(ctx context.Context, book domain.Book, qty int) {
	if qty < 1 {
		qty = 1
	}
	e.mu.Lock()
	merged := false
	for i := range e.items {
		if e.items[i].ISBN == book.ISBN {
			e.items[i].Quantity += qty
			merged = true
			break
		}
	}
	if !merged {
		e.items = append(e.items, domain.CartItem{
			ISBN:      book.ISBN,
			Title:     book.Title,
			Author:    book.Author,
			Publisher: book.Publisher,
			Thumbnail: book.Thumbnail,
			Price:     book.Price,
			Quantity:  qty,
		})
	}
	e.mu.Unlock()
	e.persist(ctx)
}

// SetQuantity sets an item's quantity. Anything below 1 removes the item;
// the cart never holds a zero or negative quantity.
func (e *Engine) SetQuantity(ctx context.Context, isbn string, n int) {
	if n < 1 {
		e.Remove(ctx, isbn)
		return
	}
	e.mu.Lock()
	for i := range e.items {
		if e.items[i].ISBN == isbn {
			e.items[i].Quantity = n
			break
		}
	}
	e.mu.Unlock()
	e.persist(ctx)
}

// Remove drops an entry. No-op when the ISBN is absent.
func (e *Engine) Remove(ctx context.Context, isbn string) {
	e.mu.Lock()
	filtered := e.items[:0]
	for _, item := range e.items {
		if item.ISBN != isbn {
			filtered = append(filtered, item)
		}
	}
	e.items = filtered
	e.mu.Unlock()
	e.persist(ctx)
}

// Clear empties the cart. Callers are expected to confirm with the user
// first; this cannot be undone within the session.
func (e *Engine) Clear(ctx context.Context) {
	e.mu.Lock()
	e.items = nil
	e.mu.Unlock()
	e.persist(ctx)
}

// Items returns a copy of the cart in insertion order.
func (e *Engine) Items() []domain.CartItem {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]domain.CartItem, len(e.items))
	copy(out, e.items)
	return out
}

// TotalQuantity sums the quantities of the client-owned cart. Unlike the
// server-owned list totals, this derives from data the client authors.
func (e *Engine) TotalQuantity() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	total := 0
	for _, item := range e.items {
		total += item.Quantity
	}
	return total
}

// Checkout validates preconditions, submits the order and empties the cart
// on success. Gateway failure leaves the cart untouched.
func (e *Engine) Checkout(ctx context.Context, gw OrderAPI, customer domain.Customer, notes string) (domain.Order, error) {
	if strings.TrimSpace(customer.Name) == "" {
		return domain.Order{}, &api.ValidationError{Field: "customer.name", Reason: "must not be empty"}
	}
	items := e.Items()
	if len(items) == 0 {
		return domain.Order{}, &api.ValidationError{Field: "cart", Reason: "must not be empty"}
	}
	orderItems := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, domain.OrderItem{
			ISBN:      item.ISBN,
			Title:     item.Title,
			Author:    item.Author,
			Publisher: item.Publisher,
			Thumbnail: item.Thumbnail,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	order, err := gw.CreateOrder(ctx, api.OrderRequest{
		Customer: customer,
		Items:    orderItems,
		Notes:    notes,
	})
	if err != nil {
		return domain.Order{}, err
	}
	e.Clear(ctx)
	return order, nil
}

// persist mirrors the cart. Failures are logged and swallowed: the
// in-memory mutation already succeeded and stays authoritative.
func (e *Engine) persist(ctx context.Context) {
	data, err := json.Marshal(e.Items())
	if err != nil {
		slog.Warn("encode cart failed", "err", err)
		return
	}
	if err := e.kv.Set(ctx, store.KeyCart, data); err != nil {
		slog.Warn("persist cart failed", "err", err)
	}
}

// normalize re-applies the uniqueness invariant to restored data, merging
// duplicate ISBNs and dropping non-positive quantities.
func normalize(items []domain.CartItem) []domain.CartItem {
	out := make([]domain.CartItem, 0, len(items))
	index := make(map[string]int, len(items))
	for _, item := range items {
		if item.Quantity < 1 {
			continue
		}
		if i, seen := index[item.ISBN]; seen {
			out[i].Quantity += item.Quantity
			continue
		}
		index[item.ISBN] = len(out)
		out = append(out, item)
	}
	return out
}
