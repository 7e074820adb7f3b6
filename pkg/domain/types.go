package domain

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipped   OrderStatus = "shipped"
	OrderCancelled OrderStatus = "cancelled"
)

type SearchMode string

const (
	SearchByTitle SearchMode = "title"
	SearchByISBN  SearchMode = "isbn"
)

// Book is a catalog entry as returned by the search backend.
type Book struct {
	ISBN           string  `json:"isbn"`
	Title          string  `json:"title"`
	Author         string  `json:"author,omitempty"`
	Publisher      string  `json:"publisher,omitempty"`
	PublishedDate  string  `json:"published_date,omitempty"`
	Thumbnail      string  `json:"thumbnail,omitempty"`
	Description    string  `json:"description,omitempty"`
	TargetAudience string  `json:"target_audience,omitempty"`
	Genre          string  `json:"genre,omitempty"`
	Price          float64 `json:"price,omitempty"`
	VolumeCount    int     `json:"volume_count,omitempty"`
	IsSetOnly      bool    `json:"is_set_only,omitempty"`
}

// CartItem is one line of the client-owned cart. ISBN is the identity key;
// the cart never holds two entries with the same ISBN.
type CartItem struct {
	ISBN      string  `json:"isbn"`
	Title     string  `json:"title"`
	Author    string  `json:"author,omitempty"`
	Publisher string  `json:"publisher,omitempty"`
	Thumbnail string  `json:"thumbnail,omitempty"`
	Price     float64 `json:"price,omitempty"`
	Quantity  int     `json:"quantity"`
}

// ListItem is a selection-list line. ID is server-assigned and keys the item
// mutation endpoints. Subtotal is computed by the server, never locally.
type ListItem struct {
	ID          int     `json:"id"`
	ListID      int     `json:"list_id"`
	ISBN        string  `json:"isbn"`
	Title       string  `json:"title"`
	Author      string  `json:"author,omitempty"`
	Publisher   string  `json:"publisher,omitempty"`
	Thumbnail   string  `json:"thumbnail,omitempty"`
	Price       float64 `json:"price,omitempty"`
	VolumeCount int     `json:"volume_count,omitempty"`
	IsSetOnly   bool    `json:"is_set_only,omitempty"`
	Quantity    int     `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
	AddedAt     string  `json:"added_at,omitempty"`
}

// SelectionList is a server-owned named list. ItemsCount, TotalQuantity and
// TotalAmount are server-computed derived fields; the client treats them as
// read-only and never recomputes them.
type SelectionList struct {
	ID            int        `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	Items         []ListItem `json:"items"`
	ItemsCount    int        `json:"items_count"`
	TotalQuantity int        `json:"total_quantity"`
	TotalAmount   float64    `json:"total_amount"`
	CreatedAt     string     `json:"created_at,omitempty"`
	UpdatedAt     string     `json:"updated_at,omitempty"`
}

// Customer identifies the party placing an order.
type Customer struct {
	ID           int    `json:"id,omitempty"`
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Organization string `json:"organization,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// OrderItem is one line of a submitted order.
type OrderItem struct {
	ID        int     `json:"id,omitempty"`
	OrderID   int     `json:"order_id,omitempty"`
	ISBN      string  `json:"isbn"`
	Title     string  `json:"title"`
	Author    string  `json:"author,omitempty"`
	Publisher string  `json:"publisher,omitempty"`
	Thumbnail string  `json:"thumbnail,omitempty"`
	Price     float64 `json:"price,omitempty"`
	Quantity  int     `json:"quantity"`
}

// Order is the server's record of a submitted order.
type Order struct {
	ID           int         `json:"id"`
	CustomerID   int         `json:"customer_id"`
	CustomerName string      `json:"customer_name,omitempty"`
	OrderDate    string      `json:"order_date,omitempty"`
	Status       OrderStatus `json:"status"`
	TotalItems   int         `json:"total_items"`
	Notes        string      `json:"notes,omitempty"`
	Items        []OrderItem `json:"items"`
}

// User is an authenticated account as reported by the backend.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email,omitempty"`
	FullName     string `json:"full_name,omitempty"`
	Organization string `json:"organization,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

// SearchFilters narrows a catalog search. Zero-valued fields are omitted
// from the request.
type SearchFilters struct {
	TargetAudience string  `json:"target_audience,omitempty"`
	Genre          string  `json:"genre,omitempty"`
	PriceMax       float64 `json:"price_max,omitempty"`
}

// SearchQuery is passed opaquely to the backend. Either Text+Mode or
// Filters is populated; the client does not interpret match semantics.
type SearchQuery struct {
	Text    string
	Mode    SearchMode
	Filters *SearchFilters
}

// AuthSession pairs a bearer token with the authenticated user. ExpiresAt
// is decoded from JWT-shaped tokens for display only and may be zero for
// opaque tokens.
type AuthSession struct {
	Token     string
	User      User
	ExpiresAt time.Time
}
