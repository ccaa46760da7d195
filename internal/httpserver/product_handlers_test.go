package httpserver

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRoutes_RequireAuth(t *testing.T) {
	env := newTestEnv(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/products"},
		{http.MethodGet, "/api/products/1"},
		{http.MethodGet, "/api/stock?sku=X1"},
	} {
		rec := env.do(route.method, route.path, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", route.method, route.path)
	}
}

func TestProductWriteRoutes_RequireAdmin(t *testing.T) {
	env := newTestEnv(t)
	_, userToken := env.createUser(t, "alice")

	for _, route := range []struct{ method, path, body string }{
		{http.MethodPost, "/api/products", `{"sku":"X1","name":"Widget","stock":5}`},
		{http.MethodPut, "/api/products/1", `{"sku":"X1","name":"Widget","stock":5}`},
		{http.MethodPut, "/api/products/1/stock", `{"stock":5}`},
		{http.MethodPatch, "/api/products/1/stock", `{"delta":-1}`},
		{http.MethodDelete, "/api/products/1", ""},
	} {
		rec := env.do(route.method, route.path, userToken, route.body)
		assert.Equal(t, http.StatusForbidden, rec.Code, "%s %s", route.method, route.path)
	}
}

func TestCreateProductEndpoint(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.createAdmin(t)

	rec := env.do(http.MethodPost, "/api/products", adminToken, `{"sku":"X1","name":"Widget","stock":5}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "X1", body["sku"])
	assert.EqualValues(t, 5, body["stock"])

	// Duplicate sku answers 400, not 409.
	rec = env.do(http.MethodPost, "/api/products", adminToken, `{"sku":"X1","name":"Other","stock":1}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "sku already exists", decodeBody(t, rec)["message"])
}

func TestCreateProductEndpoint_Validation(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.createAdmin(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "missing stock", body: `{"sku":"X1","name":"Widget"}`},
		{name: "negative stock", body: `{"sku":"X1","name":"Widget","stock":-1}`},
		{name: "empty sku", body: `{"sku":"","name":"Widget","stock":1}`},
		{name: "stock not a number", body: `{"sku":"X1","name":"Widget","stock":"five"}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(http.MethodPost, "/api/products", adminToken, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestStockLifecycle(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.createAdmin(t)

	rec := env.do(http.MethodPost, "/api/products", adminToken, `{"sku":"X1","name":"Widget","stock":5}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := fmt.Sprintf("%.0f", decodeBody(t, rec)["id"].(float64))

	// Delta -3 lands on 2.
	rec = env.do(http.MethodPatch, "/api/products/"+id+"/stock", adminToken, `{"delta":-3}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, decodeBody(t, rec)["stock"])

	// Another -3 would go below zero and is refused.
	rec = env.do(http.MethodPatch, "/api/products/"+id+"/stock", adminToken, `{"delta":-3}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "insufficient stock", decodeBody(t, rec)["message"])

	// Stock stays at 2 after the failed delta.
	rec = env.do(http.MethodGet, "/api/stock?sku=X1", adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, decodeBody(t, rec)["stock"])

	// Absolute write.
	rec = env.do(http.MethodPut, "/api/products/"+id+"/stock", adminToken, `{"stock":0}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, decodeBody(t, rec)["stock"])

	rec = env.do(http.MethodPut, "/api/products/"+id+"/stock", adminToken, `{"stock":-1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetProductEndpoint(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.createAdmin(t)

	rec := env.do(http.MethodPost, "/api/products", adminToken, `{"sku":"X1","name":"Widget","stock":5}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := fmt.Sprintf("%.0f", decodeBody(t, rec)["id"].(float64))

	rec = env.do(http.MethodGet, "/api/products/"+id, adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Widget", decodeBody(t, rec)["name"])

	rec = env.do(http.MethodGet, "/api/products/999", adminToken, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "product not found", decodeBody(t, rec)["message"])

	rec = env.do(http.MethodGet, "/api/products/abc", adminToken, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReplaceProductEndpoint(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.createAdmin(t)

	rec := env.do(http.MethodPost, "/api/products", adminToken, `{"sku":"X1","name":"Widget","stock":5}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := fmt.Sprintf("%.0f", decodeBody(t, rec)["id"].(float64))

	rec = env.do(http.MethodPut, "/api/products/"+id, adminToken, `{"sku":"X1-NEW","name":"Widget v2","stock":7}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "X1-NEW", body["sku"])
	assert.EqualValues(t, 7, body["stock"])

	rec = env.do(http.MethodPut, "/api/products/999", adminToken, `{"sku":"Y1","name":"Ghost","stock":0}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStockLookupEndpoint(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.createAdmin(t)

	rec := env.do(http.MethodPost, "/api/products", adminToken, `{"sku":"X1","name":"Widget","stock":5}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	firstID := fmt.Sprintf("%.0f", decodeBody(t, rec)["id"].(float64))

	rec = env.do(http.MethodPost, "/api/products", adminToken, `{"sku":"X2","name":"Gadget","stock":3}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	secondID := fmt.Sprintf("%.0f", decodeBody(t, rec)["id"].(float64))

	rec = env.do(http.MethodGet, "/api/stock?sku=X2", adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 3, decodeBody(t, rec)["stock"])

	rec = env.do(http.MethodGet, "/api/stock?id="+firstID, adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "X1", decodeBody(t, rec)["sku"])

	// sku wins when both parameters are present.
	rec = env.do(http.MethodGet, "/api/stock?sku=X1&id="+secondID, adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "X1", decodeBody(t, rec)["sku"])

	rec = env.do(http.MethodGet, "/api/stock", adminToken, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodGet, "/api/stock?sku=NOPE", adminToken, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListProductsEndpoint_HTML(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.createAdmin(t)

	rec := env.do(http.MethodPost, "/api/products", adminToken, `{"sku":"X1","name":"Widget","stock":5}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	req := env.newAcceptHTMLRequest(adminToken)
	require.Equal(t, http.StatusOK, req.Code)
	assert.Contains(t, req.Header().Get(echo.HeaderContentType), echo.MIMETextHTML)
	assert.Contains(t, req.Body.String(), "X1")
}

func TestDeleteProductEndpoint(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.createAdmin(t)

	rec := env.do(http.MethodPost, "/api/products", adminToken, `{"sku":"X1","name":"Widget","stock":5}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := fmt.Sprintf("%.0f", decodeBody(t, rec)["id"].(float64))

	rec = env.do(http.MethodDelete, "/api/products/"+id, adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "product deleted", decodeBody(t, rec)["message"])

	rec = env.do(http.MethodDelete, "/api/products/"+id, adminToken, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearchProductsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	_, userToken := env.createUser(t, "alice")

	rec := env.do(http.MethodGet, "/api/products/search", userToken, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// The test server runs without an elasticsearch backend.
	rec = env.do(http.MethodGet, "/api/products/search?q=widget", userToken, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
