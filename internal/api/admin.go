package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/in1011558-byte/book-order-system/pkg/domain"
)

// Export formats accepted by the binary endpoints.
const (
	ExportCSV   = "csv"
	ExportExcel = "excel"
	ExportPDF   = "pdf"
)

// AdminOrders returns every order in the system.
func (c *Client) AdminOrders(ctx context.Context) ([]domain.Order, error) {
	token, err := c.currentToken()
	if err != nil {
		return nil, err
	}
	var resp struct {
		Orders []domain.Order `json:"orders"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/admin/orders", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

// AdminCustomers returns the customer roster.
func (c *Client) AdminCustomers(ctx context.Context) ([]domain.Customer, error) {
	token, err := c.currentToken()
	if err != nil {
		return nil, err
	}
	var resp struct {
		Customers []domain.Customer `json:"customers"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/admin/customers", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Customers, nil
}

// CustomerOrders pairs a customer with their order history.
type CustomerOrders struct {
	Customer domain.Customer `json:"customer"`
	Orders   []domain.Order  `json:"orders"`
}

// AdminCustomerOrders returns one customer's order history.
func (c *Client) AdminCustomerOrders(ctx context.Context, customerID int) (CustomerOrders, error) {
	token, err := c.currentToken()
	if err != nil {
		return CustomerOrders{}, err
	}
	var resp CustomerOrders
	path := fmt.Sprintf("/admin/customer/%d/orders", customerID)
	if err := c.doJSON(ctx, http.MethodGet, path, token, nil, &resp); err != nil {
		return CustomerOrders{}, err
	}
	return resp, nil
}

// ExportOrders fetches the order ledger as an opaque blob in the given
// format (csv or excel). The token travels in the Authorization header,
// never as a query parameter.
func (c *Client) ExportOrders(ctx context.Context, format string) ([]byte, error) {
	token, err := c.currentToken()
	if err != nil {
		return nil, err
	}
	path := fmt.Sprintf("/admin/export/%s", format)
	return c.doBlob(ctx, path, token)
}
