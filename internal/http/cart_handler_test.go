package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fjod/go_supply/internal/cart"
	"github.com/fjod/go_supply/internal/catalog"
	"github.com/fjod/go_supply/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cartServiceMock struct {
	cart *domain.Cart
	err  error

	gotSessionID string
	gotProductID string
	gotQuantity  float64
}

func (m *cartServiceMock) GetCart(_ context.Context, sessionID string) (*domain.Cart, error) {
	m.gotSessionID = sessionID
	return m.cart, m.err
}

func (m *cartServiceMock) AddItem(_ context.Context, sessionID, productID string, quantity float64) (*domain.Cart, error) {
	m.gotSessionID = sessionID
	m.gotProductID = productID
	m.gotQuantity = quantity
	return m.cart, m.err
}

func (m *cartServiceMock) UpdateItem(_ context.Context, sessionID, productID string, quantity float64) (*domain.Cart, error) {
	m.gotSessionID = sessionID
	m.gotProductID = productID
	m.gotQuantity = quantity
	return m.cart, m.err
}

func (m *cartServiceMock) RemoveItem(_ context.Context, sessionID, productID string) (*domain.Cart, error) {
	m.gotSessionID = sessionID
	m.gotProductID = productID
	return m.cart, m.err
}

func (m *cartServiceMock) ClearCart(_ context.Context, sessionID string) error {
	m.gotSessionID = sessionID
	return m.err
}

func newCartRouter(mock *cartServiceMock) *chi.Mux {
	handler := NewCartHandler(mock, time.Second)
	r := chi.NewRouter()
	r.Route("/api/v1/cart/{session_id}", func(r chi.Router) {
		r.Get("/", handler.GetCart)
		r.Post("/items", handler.AddItem)
		r.Put("/items/{product_id}", handler.UpdateItem)
		r.Delete("/items/{product_id}", handler.RemoveItem)
		r.Delete("/", handler.ClearCart)
	})
	return r
}

func sampleCart() *domain.Cart {
	return &domain.Cart{
		SessionID: "s1",
		Items: []domain.CartItem{
			{ProductID: "p1", Quantity: 2, TotalPrice: 20},
		},
		TotalAmount: 20,
		TotalItems:  2,
	}
}

func TestGetCartHandler(t *testing.T) {
	mock := &cartServiceMock{cart: sampleCart()}
	router := newCartRouter(mock)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart/s1/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "s1", mock.gotSessionID)

	var got domain.Cart
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 20.0, got.TotalAmount)
	assert.Len(t, got.Items, 1)
}

func TestAddItemHandler(t *testing.T) {
	mock := &cartServiceMock{cart: sampleCart()}
	router := newCartRouter(mock)

	body, _ := json.Marshal(AddItemRequestDTO{ProductID: "p1", Quantity: 2.5})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/s1/items", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "s1", mock.gotSessionID)
	assert.Equal(t, "p1", mock.gotProductID)
	assert.Equal(t, 2.5, mock.gotQuantity)
}

func TestAddItemHandler_InvalidBody(t *testing.T) {
	router := newCartRouter(&cartServiceMock{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/s1/items", bytes.NewReader([]byte("{bad")))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddItemHandler_ValidationRejectsBeforeService(t *testing.T) {
	tests := []struct {
		name string
		dto  AddItemRequestDTO
		code string
	}{
		{"missing product", AddItemRequestDTO{Quantity: 1}, "invalid_product_id"},
		{"zero quantity", AddItemRequestDTO{ProductID: "p1"}, "invalid_quantity"},
		{"negative quantity", AddItemRequestDTO{ProductID: "p1", Quantity: -1}, "invalid_quantity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &cartServiceMock{}
			router := newCartRouter(mock)

			body, _ := json.Marshal(tt.dto)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/s1/items", bytes.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Code)
			assert.Empty(t, mock.gotSessionID) // service was never called
		})
	}
}

func TestAddItemHandler_ProductNotFound(t *testing.T) {
	mock := &cartServiceMock{err: catalog.ErrProductNotFound}
	router := newCartRouter(mock)

	body, _ := json.Marshal(AddItemRequestDTO{ProductID: "missing", Quantity: 1})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/s1/items", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "product_not_found", resp.Code)
}

func TestUpdateItemHandler(t *testing.T) {
	mock := &cartServiceMock{cart: sampleCart()}
	router := newCartRouter(mock)

	body, _ := json.Marshal(UpdateQuantityRequestDTO{Quantity: 1})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/cart/s1/items/p1", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "p1", mock.gotProductID)
	assert.Equal(t, 1.0, mock.gotQuantity)
}

func TestUpdateItemHandler_ItemNotFound(t *testing.T) {
	mock := &cartServiceMock{err: cart.ErrItemNotFound}
	router := newCartRouter(mock)

	body, _ := json.Marshal(UpdateQuantityRequestDTO{Quantity: 1})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/cart/s1/items/p9", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "item_not_found", resp.Code)
}

func TestRemoveItemHandler(t *testing.T) {
	mock := &cartServiceMock{cart: sampleCart()}
	router := newCartRouter(mock)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart/s1/items/p1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "p1", mock.gotProductID)
}

func TestClearCartHandler(t *testing.T) {
	mock := &cartServiceMock{}
	router := newCartRouter(mock)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart/s1/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "s1", mock.gotSessionID)
}
