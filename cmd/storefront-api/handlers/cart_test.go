package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asb-digital/storefront-engine/cmd/storefront-api/middleware"
	"github.com/asb-digital/storefront-engine/internal/cart"
	"github.com/asb-digital/storefront-engine/internal/kvstore"
	"github.com/asb-digital/storefront-engine/internal/observability"
)

func cartRouter(src *stubSource) http.Handler {
	carts := cart.NewManager(kvstore.NewMemoryClient(), observability.Nop(), "")
	h := NewCartHandler(observability.Nop(), carts, src)

	r := chi.NewRouter()
	r.Use(middleware.Session())
	r.Get("/cart", h.Get)
	r.Delete("/cart", h.Clear)
	r.Post("/cart/items", h.AddItem)
	r.Put("/cart/items/{lineId}", h.UpdateItem)
	r.Delete("/cart/items/{lineId}", h.RemoveItem)
	return r
}

func doCart(t *testing.T, router http.Handler, method, path, body, session string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if session != "" {
		req.Header.Set(middleware.SessionHeader, session)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func cartView(t *testing.T, rec *httptest.ResponseRecorder) CartView {
	t.Helper()
	env := decodeEnvelope(t, rec)
	data, err := json.Marshal(env.Data)
	require.NoError(t, err)
	var view CartView
	require.NoError(t, json.Unmarshal(data, &view))
	return view
}

func TestCartHandler_EmptyCart(t *testing.T) {
	router := cartRouter(fixtureSource())

	rec := doCart(t, router, http.MethodGet, "/cart", "", "s1")
	require.Equal(t, http.StatusOK, rec.Code)
	view := cartView(t, rec)
	assert.Empty(t, view.Lines)
	assert.Equal(t, 0, view.Count)
}

func TestCartHandler_AddItem(t *testing.T) {
	router := cartRouter(fixtureSource())

	rec := doCart(t, router, http.MethodPost, "/cart/items", `{"catalogueId":"cat-1","combinationId":"v1"}`, "s1")
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	data, err := json.Marshal(env.Data)
	require.NoError(t, err)
	var line cart.Line
	require.NoError(t, json.Unmarshal(data, &line))
	assert.Equal(t, "cat-1-v1", line.ID)
	assert.Equal(t, 1, line.Quantity)
	require.NotNil(t, line.Variant)
	assert.Equal(t, "v1", line.Variant.CombinationID)
}

func TestCartHandler_AddItemWithoutVariant(t *testing.T) {
	router := cartRouter(fixtureSource())

	rec := doCart(t, router, http.MethodPost, "/cart/items", `{"catalogueId":"cat-2"}`, "s1")
	require.Equal(t, http.StatusOK, rec.Code)

	view := cartView(t, doCart(t, router, http.MethodGet, "/cart", "", "s1"))
	require.Len(t, view.Lines, 1)
	assert.Equal(t, "catalogue-cat-2", view.Lines[0].ID)
	assert.Nil(t, view.Lines[0].Variant)
}

func TestCartHandler_AddItemTwiceIncrements(t *testing.T) {
	router := cartRouter(fixtureSource())

	body := `{"catalogueId":"cat-1","combinationId":"v1"}`
	doCart(t, router, http.MethodPost, "/cart/items", body, "s1")
	doCart(t, router, http.MethodPost, "/cart/items", body, "s1")

	view := cartView(t, doCart(t, router, http.MethodGet, "/cart", "", "s1"))
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 2, view.Count)
}

func TestCartHandler_AddItemValidation(t *testing.T) {
	router := cartRouter(fixtureSource())

	assert.Equal(t, http.StatusBadRequest, doCart(t, router, http.MethodPost, "/cart/items", "{", "s1").Code)
	assert.Equal(t, http.StatusBadRequest, doCart(t, router, http.MethodPost, "/cart/items", `{}`, "s1").Code)
	assert.Equal(t, http.StatusNotFound, doCart(t, router, http.MethodPost, "/cart/items", `{"catalogueId":"nope"}`, "s1").Code)
	assert.Equal(t, http.StatusNotFound, doCart(t, router, http.MethodPost, "/cart/items", `{"catalogueId":"cat-1","combinationId":"nope"}`, "s1").Code)
}

func TestCartHandler_UpdateQuantity(t *testing.T) {
	router := cartRouter(fixtureSource())
	doCart(t, router, http.MethodPost, "/cart/items", `{"catalogueId":"cat-1","combinationId":"v1"}`, "s1")

	rec := doCart(t, router, http.MethodPut, "/cart/items/cat-1-v1", `{"quantity":5}`, "s1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, cartView(t, rec).Count)
}

func TestCartHandler_UpdateQuantityToZeroRemoves(t *testing.T) {
	router := cartRouter(fixtureSource())
	doCart(t, router, http.MethodPost, "/cart/items", `{"catalogueId":"cat-1","combinationId":"v1"}`, "s1")

	rec := doCart(t, router, http.MethodPut, "/cart/items/cat-1-v1", `{"quantity":0}`, "s1")
	require.Equal(t, http.StatusOK, rec.Code)
	view := cartView(t, rec)
	assert.Empty(t, view.Lines)
	assert.Equal(t, 0, view.Count)
}

func TestCartHandler_RemoveItem(t *testing.T) {
	router := cartRouter(fixtureSource())
	doCart(t, router, http.MethodPost, "/cart/items", `{"catalogueId":"cat-1","combinationId":"v1"}`, "s1")

	rec := doCart(t, router, http.MethodDelete, "/cart/items/cat-1-v1", "", "s1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, cartView(t, rec).Lines)

	// Removing again still succeeds.
	rec = doCart(t, router, http.MethodDelete, "/cart/items/cat-1-v1", "", "s1")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCartHandler_Clear(t *testing.T) {
	router := cartRouter(fixtureSource())
	doCart(t, router, http.MethodPost, "/cart/items", `{"catalogueId":"cat-1","combinationId":"v1"}`, "s1")
	doCart(t, router, http.MethodPost, "/cart/items", `{"catalogueId":"cat-2"}`, "s1")

	rec := doCart(t, router, http.MethodDelete, "/cart", "", "s1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, cartView(t, rec).Count)
}

func TestCartHandler_SessionsAreIsolated(t *testing.T) {
	router := cartRouter(fixtureSource())
	doCart(t, router, http.MethodPost, "/cart/items", `{"catalogueId":"cat-1","combinationId":"v1"}`, "alpha")

	assert.Equal(t, 1, cartView(t, doCart(t, router, http.MethodGet, "/cart", "", "alpha")).Count)
	assert.Equal(t, 0, cartView(t, doCart(t, router, http.MethodGet, "/cart", "", "beta")).Count)
}
