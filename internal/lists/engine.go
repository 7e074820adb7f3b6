// Package lists caches server-owned selection lists. The cache is only
// ever replaced wholesale with what the server just returned: after every
// mutation the affected list (or the collection) is refetched, so totals
// like total_amount are never computed on the client and cannot drift from
// server-side pricing or rounding.
package lists

import (
	"context"
	"sort"
	"sync"

	"github.com/in1011558-byte/book-order-system/internal/api"
	"github.com/in1011558-byte/book-order-system/pkg/domain"
)

// ListAPI is the slice of the gateway the engine needs.
type ListAPI interface {
	CreateList(ctx context.Context, req api.ListRequest) (domain.SelectionList, error)
	GetLists(ctx context.Context) ([]domain.SelectionList, error)
	GetList(ctx context.Context, listID int) (domain.SelectionList, error)
	UpdateList(ctx context.Context, listID int, req api.ListRequest) (domain.SelectionList, error)
	DeleteList(ctx context.Context, listID int) error
	AddListItem(ctx context.Context, listID int, req api.ListItemRequest) (domain.ListItem, error)
	UpdateListItem(ctx context.Context, listID, itemID, quantity int) (domain.ListItem, error)
	RemoveListItem(ctx context.Context, listID, itemID int) error
}

// Engine holds the cached copy of the user's selection lists.
type Engine struct {
	mu    sync.RWMutex
	gw    ListAPI
	cache map[int]domain.SelectionList
}

// NewEngine builds an engine with an empty cache.
func NewEngine(gw ListAPI) *Engine {
	return &Engine{gw: gw, cache: make(map[int]domain.SelectionList)}
}

// RefreshAll replaces the whole cache with the server's collection.
func (e *Engine) RefreshAll(ctx context.Context) ([]domain.SelectionList, error) {
	fetched, err := e.gw.GetLists(ctx)
	if err != nil {
		return nil, err
	}
	next := make(map[int]domain.SelectionList, len(fetched))
	for _, list := range fetched {
		next[list.ID] = list
	}
	e.mu.Lock()
	e.cache = next
	e.mu.Unlock()
	return fetched, nil
}

// Refresh replaces one cached list with the server's copy.
func (e *Engine) Refresh(ctx context.Context, listID int) (domain.SelectionList, error) {
	fetched, err := e.gw.GetList(ctx, listID)
	if err != nil {
		return domain.SelectionList{}, err
	}
	e.mu.Lock()
	e.cache[fetched.ID] = fetched
	e.mu.Unlock()
	return fetched, nil
}

// Create makes a new list and refetches the collection.
func (e *Engine) Create(ctx context.Context, req api.ListRequest) (domain.SelectionList, error) {
	created, err := e.gw.CreateList(ctx, req)
	if err != nil {
		return domain.SelectionList{}, err
	}
	if _, err := e.RefreshAll(ctx); err != nil {
		return domain.SelectionList{}, err
	}
	list, _ := e.Cached(created.ID)
	return list, nil
}

// Update renames or re-describes a list, then refetches it.
func (e *Engine) Update(ctx context.Context, listID int, req api.ListRequest) (domain.SelectionList, error) {
	if _, err := e.gw.UpdateList(ctx, listID, req); err != nil {
		return domain.SelectionList{}, err
	}
	return e.Refresh(ctx, listID)
}

// Delete removes a list and refetches the collection.
func (e *Engine) Delete(ctx context.Context, listID int) error {
	if err := e.gw.DeleteList(ctx, listID); err != nil {
		return err
	}
	_, err := e.RefreshAll(ctx)
	return err
}

// AddBook adds a book to a list, then refetches the list. The mutation's
// own response payload is discarded; only the refetched copy is cached.
func (e *Engine) AddBook(ctx context.Context, listID int, req api.ListItemRequest) (domain.SelectionList, error) {
	if _, err := e.gw.AddListItem(ctx, listID, req); err != nil {
		return domain.SelectionList{}, err
	}
	return e.Refresh(ctx, listID)
}

// UpdateBook changes an item's quantity, then refetches the list.
func (e *Engine) UpdateBook(ctx context.Context, listID, itemID, quantity int) (domain.SelectionList, error) {
	if _, err := e.gw.UpdateListItem(ctx, listID, itemID, quantity); err != nil {
		return domain.SelectionList{}, err
	}
	return e.Refresh(ctx, listID)
}

// RemoveBook deletes an item, then refetches the list.
func (e *Engine) RemoveBook(ctx context.Context, listID, itemID int) (domain.SelectionList, error) {
	if err := e.gw.RemoveListItem(ctx, listID, itemID); err != nil {
		return domain.SelectionList{}, err
	}
	return e.Refresh(ctx, listID)
}

// Cached returns the cached copy of one list.
func (e *Engine) Cached(listID int) (domain.SelectionList, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	list, ok := e.cache[listID]
	return list, ok
}

// CachedLists returns the cached collection ordered by ID.
func (e *Engine) CachedLists() []domain.SelectionList {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]domain.SelectionList, 0, len(e.cache))
	for _, list := range e.cache {
		out = append(out, list)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// DropCache discards every cached list. Wired as a logout hook so a new
// session never sees another user's lists.
func (e *Engine) DropCache() {
	e.mu.Lock()
	e.cache = make(map[int]domain.SelectionList)
	e.mu.Unlock()
}
