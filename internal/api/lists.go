package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/in1011558-byte/book-order-system/pkg/domain"
)

// ListRequest carries the creatable/updatable fields of a selection list.
type ListRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ListItemRequest carries the creatable fields of a selection-list item.
type ListItemRequest struct {
	ISBN        string  `json:"isbn"`
	Title       string  `json:"title"`
	Author      string  `json:"author,omitempty"`
	Publisher   string  `json:"publisher,omitempty"`
	Thumbnail   string  `json:"thumbnail,omitempty"`
	Price       float64 `json:"price,omitempty"`
	VolumeCount int     `json:"volume_count,omitempty"`
	IsSetOnly   bool    `json:"is_set_only,omitempty"`
	Quantity    int     `json:"quantity"`
}

// CreateList creates a named selection list.
func (c *Client) CreateList(ctx context.Context, req ListRequest) (domain.SelectionList, error) {
	token, err := c.currentToken()
	if err != nil {
		return domain.SelectionList{}, err
	}
	var list domain.SelectionList
	if err := c.doJSON(ctx, http.MethodPost, "/selection-lists", token, req, &list); err != nil {
		return domain.SelectionList{}, err
	}
	return list, nil
}

// GetLists returns all selection lists owned by the current user.
func (c *Client) GetLists(ctx context.Context) ([]domain.SelectionList, error) {
	token, err := c.currentToken()
	if err != nil {
		return nil, err
	}
	var resp struct {
		Lists []domain.SelectionList `json:"lists"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/selection-lists", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Lists, nil
}

// GetList fetches one selection list with its items and server-computed
// totals.
func (c *Client) GetList(ctx context.Context, listID int) (domain.SelectionList, error) {
	token, err := c.currentToken()
	if err != nil {
		return domain.SelectionList{}, err
	}
	var list domain.SelectionList
	path := fmt.Sprintf("/selection-lists/%d", listID)
	if err := c.doJSON(ctx, http.MethodGet, path, token, nil, &list); err != nil {
		return domain.SelectionList{}, err
	}
	return list, nil
}

// UpdateList renames or re-describes a selection list.
func (c *Client) UpdateList(ctx context.Context, listID int, req ListRequest) (domain.SelectionList, error) {
	token, err := c.currentToken()
	if err != nil {
		return domain.SelectionList{}, err
	}
	var list domain.SelectionList
	path := fmt.Sprintf("/selection-lists/%d", listID)
	if err := c.doJSON(ctx, http.MethodPut, path, token, req, &list); err != nil {
		return domain.SelectionList{}, err
	}
	return list, nil
}

// DeleteList removes a selection list and all its items.
func (c *Client) DeleteList(ctx context.Context, listID int) error {
	token, err := c.currentToken()
	if err != nil {
		return err
	}
	path := fmt.Sprintf("/selection-lists/%d", listID)
	return c.doJSON(ctx, http.MethodDelete, path, token, nil, nil)
}

// AddListItem adds a book to a selection list.
func (c *Client) AddListItem(ctx context.Context, listID int, req ListItemRequest) (domain.ListItem, error) {
	token, err := c.currentToken()
	if err != nil {
		return domain.ListItem{}, err
	}
	var item domain.ListItem
	path := fmt.Sprintf("/selection-lists/%d/items", listID)
	if err := c.doJSON(ctx, http.MethodPost, path, token, req, &item); err != nil {
		return domain.ListItem{}, err
	}
	return item, nil
}

// UpdateListItem changes the quantity of one list item.
func (c *Client) UpdateListItem(ctx context.Context, listID, itemID, quantity int) (domain.ListItem, error) {
	token, err := c.currentToken()
	if err != nil {
		return domain.ListItem{}, err
	}
	payload := map[string]int{"quantity": quantity}
	var item domain.ListItem
	path := fmt.Sprintf("/selection-lists/%d/items/%d", listID, itemID)
	if err := c.doJSON(ctx, http.MethodPut, path, token, payload, &item); err != nil {
		return domain.ListItem{}, err
	}
	return item, nil
}

// RemoveListItem deletes one item from a selection list.
func (c *Client) RemoveListItem(ctx context.Context, listID, itemID int) error {
	token, err := c.currentToken()
	if err != nil {
		return err
	}
	path := fmt.Sprintf("/selection-lists/%d/items/%d", listID, itemID)
	return c.doJSON(ctx, http.MethodDelete, path, token, nil, nil)
}

// ExportList fetches one list as an opaque blob in the given format (csv
// or pdf).
func (c *Client) ExportList(ctx context.Context, listID int, format string) ([]byte, error) {
	token, err := c.currentToken()
	if err != nil {
		return nil, err
	}
	path := fmt.Sprintf("/selection-lists/%d/export/%s", listID, format)
	return c.doBlob(ctx, path, token)
}
