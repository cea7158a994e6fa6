package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/orderdesk/internal/config"
	"github.com/five82/orderdesk/internal/orders"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL+"/api/", StaticToken(token), nil)
	require.NoError(t, err)
	return c
}

func TestClient_ListOrdersSendsHeaders(t *testing.T) {
	var got *http.Request
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(orders.SeedOrders(testNow))
	}, "tok-123")

	list, err := c.Orders().List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "ORD-001", list[0].OrderNumber)

	require.NotNil(t, got)
	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "/api/orders", got.URL.Path)
	assert.Equal(t, "application/json", got.Header.Get("Accept"))
	assert.Equal(t, "Bearer tok-123", got.Header.Get("Authorization"))
	assert.Empty(t, got.Header.Get("Content-Type"), "GET has no body")
	_, err = uuid.Parse(got.Header.Get("X-Request-ID"))
	assert.NoError(t, err, "X-Request-ID should be a uuid")
}

func TestClient_NoTokenNoAuthorization(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, "[]")
	}, "   ")

	_, err := c.Products().List(context.Background())
	require.NoError(t, err)
}

func TestClient_CreateOrderPostsTrimmedPayload(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/orders", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_ = json.NewEncoder(w).Encode(orders.Order{ID: "42", OrderNumber: "ORD-042", ProductCount: 1, FinalPrice: 20})
	}, "")

	created, err := c.Orders().Create(context.Background(), orders.OrderInput{
		OrderNumber: "ORD-042",
		Status:      orders.StatusPending,
		Products:    []orders.LineRef{{ID: "1", Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, "42", created.ID)

	assert.Equal(t, "ORD-042", body["orderNumber"])
	assert.NotContains(t, body, "id", "create omits the id")
	lines, ok := body["products"].([]any)
	require.True(t, ok)
	require.Len(t, lines, 1)
	assert.Equal(t, map[string]any{"id": "1", "quantity": float64(2)}, lines[0])
}

func TestClient_UpdateAndDeleteUseItemPath(t *testing.T) {
	var paths []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.EscapedPath())
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_, _ = io.WriteString(w, `{"id":"a b","name":"Soda","unitPrice":3}`)
	}, "")

	_, err := c.Products().Update(context.Background(), "a b", orders.Product{Name: "Soda", UnitPrice: 3})
	require.NoError(t, err)
	require.NoError(t, c.Products().Delete(context.Background(), "7"))

	assert.Equal(t, []string{"PUT /api/products/a%20b", "DELETE /api/products/7"}, paths)
}

func TestClient_EmptyIDIsClientError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no request expected, got %s %s", r.Method, r.URL.Path)
	}, "")

	err := c.Orders().Delete(context.Background(), "  ")
	require.Error(t, err)
	assert.Equal(t, KindClient, KindOf(err))
}

func TestClient_ServerErrorKinds(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		notFound bool
	}{
		{name: "not found", status: http.StatusNotFound, body: "no such order", notFound: true},
		{name: "server error", status: http.StatusInternalServerError, body: "boom"},
		{name: "bad request", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, tt.body, tt.status)
			}, "")

			_, err := c.Orders().Get(context.Background(), "9")
			require.Error(t, err)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, KindServer, apiErr.Kind)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.notFound, errors.Is(err, ErrNotFound))
			assert.False(t, IsNetwork(err))
			if tt.body != "" {
				assert.Contains(t, err.Error(), tt.body)
			}
		})
	}
}

func TestClient_UndecodableBodyIsServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "<html>")
	}, "")

	_, err := c.Orders().List(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindServer, KindOf(err))
}

func TestClient_UnreachableIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewClient(url, nil, nil)
	require.NoError(t, err)

	_, err = c.Products().List(context.Background())
	require.Error(t, err)
	assert.True(t, IsNetwork(err))
	assert.Equal(t, KindNetwork, KindOf(err))
}

func TestParseBaseURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: "http://127.0.0.1:5001/api"},
		{in: "localhost:8080", want: "http://localhost:8080/"},
		{in: "https://orders.example.com/v1/", want: "https://orders.example.com/v1"},
		{in: "http://host/api?x=1#frag", want: "http://host/api"},
	}
	for _, tt := range tests {
		got, err := parseBaseURL(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got.String(), tt.in)
	}

	_, err := parseBaseURL("http://")
	assert.Error(t, err)
}

func TestNew_SelectsVariantFromConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.UseMockData = true
	access, err := New(cfg, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, ModeMock, access.Mode)
	assert.IsType(t, &MockOrders{}, access.Orders)

	cfg.UseMockData = false
	cfg.APIURL = "http://127.0.0.1:9/api"
	access, err = New(cfg, StaticToken(""), nil)
	require.NoError(t, err)
	assert.Equal(t, ModeRemote, access.Mode)
	assert.IsType(t, &RemoteOrders{}, access.Orders)
	assert.IsType(t, &RemoteProducts{}, access.Products)
}
