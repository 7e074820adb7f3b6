package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/in1011558-byte/book-order-system/pkg/domain"
)

func staticToken(token string) TokenProvider {
	return func() string { return token }
}

func TestSearchBooksSendsQueryAndDecodes(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/books/search" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"books": []domain.Book{{ISBN: "978-4-00-310101-8", Title: "Kokoro"}},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil, 0)
	books, err := c.SearchBooks(context.Background(), domain.SearchQuery{Text: "kokoro", Mode: domain.SearchByTitle})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(books) != 1 || books[0].Title != "Kokoro" {
		t.Fatalf("unexpected books: %+v", books)
	}
	if gotBody["query"] != "kokoro" || gotBody["type"] != "title" {
		t.Fatalf("unexpected payload: %v", gotBody)
	}
}

func TestSearchBooksSendsFiltersInsteadOfQuery(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]any{"books": []domain.Book{}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil, 0)
	_, err := c.SearchBooks(context.Background(), domain.SearchQuery{
		Filters: &domain.SearchFilters{Genre: "社会科", PriceMax: 3000},
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if _, hasQuery := gotBody["query"]; hasQuery {
		t.Fatalf("filter search must not carry a text query: %v", gotBody)
	}
	filters, ok := gotBody["filters"].(map[string]any)
	if !ok || filters["genre"] != "社会科" {
		t.Fatalf("unexpected filters: %v", gotBody)
	}
}

func TestAuthenticatedEndpointAttachesBearer(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]any{"orders": []domain.Order{}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticToken("tok-1"), 0)
	if _, err := c.AdminOrders(context.Background()); err != nil {
		t.Fatalf("admin orders: %v", err)
	}
	if gotAuth != "Bearer tok-1" {
		t.Fatalf("unexpected auth header: %q", gotAuth)
	}
}

func TestAnonymousEndpointOmitsBearer(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]any{"books": []domain.Book{}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticToken("tok-1"), 0)
	if _, err := c.SearchBooks(context.Background(), domain.SearchQuery{Text: "x"}); err != nil {
		t.Fatalf("search: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("anonymous endpoint must not carry a token, got %q", gotAuth)
	}
}

func TestAuthRequiredFailsFastWithoutRoundTrip(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticToken(""), 0)
	_, err := c.GetLists(context.Background())
	if !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Fatalf("expected no network round trip, got %d", hits)
	}
}

func TestHTTPErrorCarriesStatusAndServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "bad credentials"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil, 0)
	_, err := c.Login(context.Background(), "bad", "creds")
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.Status != http.StatusUnauthorized || httpErr.Message != "bad credentials" {
		t.Fatalf("unexpected error: %+v", httpErr)
	}
	if !IsAuthDenied(err) {
		t.Fatalf("401 must count as auth denied")
	}
}

func TestNetworkErrorDistinguishedFromHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL, nil, 0)
	_, err := c.SearchBooks(context.Background(), domain.SearchQuery{Text: "x"})
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		t.Fatalf("a connection failure must not be reported as a server error")
	}
}

func TestAuthDeniedHandlerInvokedOn403(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticToken("stale"), 0)
	denied := false
	c.SetAuthDeniedHandler(func() { denied = true })

	if _, err := c.AdminCustomers(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if !denied {
		t.Fatalf("auth-denied handler was not invoked")
	}
}

func TestExportOrdersReturnsOpaqueBlob(t *testing.T) {
	payload := []byte{0x50, 0x4b, 0x03, 0x04, 0x00, 0xff} // not valid JSON
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/export/excel" {
			http.NotFound(w, r)
			return
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.RawQuery != "" {
			t.Errorf("token must never travel as a query parameter: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/vnd.ms-excel")
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticToken("tok-1"), 0)
	data, err := c.ExportOrders(context.Background(), ExportExcel)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !bytes.Equal(data, payload) {
		t.Fatalf("blob must pass through unparsed")
	}
}
