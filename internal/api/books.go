package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/in1011558-byte/book-order-system/pkg/domain"
)

// SearchBooks queries the catalog. The query is passed opaquely: either
// text+mode or structured filters, never both.
func (c *Client) SearchBooks(ctx context.Context, q domain.SearchQuery) ([]domain.Book, error) {
	payload := map[string]any{}
	if q.Filters != nil {
		payload["filters"] = q.Filters
	} else {
		mode := q.Mode
		if mode == "" {
			mode = domain.SearchByTitle
		}
		payload["query"] = q.Text
		payload["type"] = mode
	}
	var resp struct {
		Books []domain.Book `json:"books"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/books/search", "", payload, &resp); err != nil {
		return nil, err
	}
	return resp.Books, nil
}

// GetBookDetail fetches one catalog entry by ISBN.
func (c *Client) GetBookDetail(ctx context.Context, isbn string) (domain.Book, error) {
	var book domain.Book
	path := fmt.Sprintf("/books/%s", url.PathEscape(isbn))
	if err := c.doJSON(ctx, http.MethodGet, path, "", nil, &book); err != nil {
		return domain.Book{}, err
	}
	return book, nil
}

// OrderRequest is the payload for order submission.
type OrderRequest struct {
	Customer domain.Customer    `json:"customer"`
	Items    []domain.OrderItem `json:"items"`
	Notes    string             `json:"notes,omitempty"`
}

// CreateOrder submits an order. The endpoint is anonymous; the customer
// identifies themselves in the payload.
func (c *Client) CreateOrder(ctx context.Context, order OrderRequest) (domain.Order, error) {
	var resp struct {
		Order domain.Order `json:"order"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/orders", "", order, &resp); err != nil {
		return domain.Order{}, err
	}
	return resp.Order, nil
}

// GetOrders returns the order history.
func (c *Client) GetOrders(ctx context.Context) ([]domain.Order, error) {
	var resp struct {
		Orders []domain.Order `json:"orders"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/orders", "", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

// GetOrderDetail fetches one order by ID.
func (c *Client) GetOrderDetail(ctx context.Context, orderID int) (domain.Order, error) {
	var order domain.Order
	path := fmt.Sprintf("/orders/%d", orderID)
	if err := c.doJSON(ctx, http.MethodGet, path, "", nil, &order); err != nil {
		return domain.Order{}, err
	}
	return order, nil
}
