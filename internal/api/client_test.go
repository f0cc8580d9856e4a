package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/foodordering/storefront/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

type recordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     string
}

func newStubServer(t *testing.T, status int, body string) (*httptest.Server, <-chan recordedRequest) {
	t.Helper()
	ch := make(chan recordedRequest, 10)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		ch <- recordedRequest{
			Method:   r.Method,
			Path:     r.URL.Path,
			RawQuery: r.URL.RawQuery,
			Header:   r.Header.Clone(),
			Body:     string(raw),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, ch
}

func testHTTP() *http.Client { return &http.Client{Timeout: 5 * time.Second} }

func TestClient_AttachesBearerAndCorrelation(t *testing.T) {
	srv, ch := newStubServer(t, http.StatusOK, `{}`)
	c := NewClient(srv.URL, testHTTP(), staticToken("tok-123"))

	require.NoError(t, c.Get(context.Background(), "/order/menu", "", nil))

	rec := <-ch
	assert.Equal(t, "Bearer tok-123", rec.Header.Get("Authorization"))
	assert.NotEmpty(t, rec.Header.Get(HeaderCorrelationID))
	assert.Equal(t, "application/json", rec.Header.Get("Content-Type"))
}

func TestClient_NoAuthHeaderWithoutToken(t *testing.T) {
	srv, ch := newStubServer(t, http.StatusOK, `{}`)
	c := NewClient(srv.URL, testHTTP(), staticToken(""))

	require.NoError(t, c.Get(context.Background(), "/order/menu", "", nil))

	rec := <-ch
	assert.Empty(t, rec.Header.Get("Authorization"))
}

func TestClient_EncodesBodyAndDecodesResponse(t *testing.T) {
	srv, ch := newStubServer(t, http.StatusOK, `{"order_id":42}`)
	c := NewClient(srv.URL, testHTTP(), nil)

	var out struct {
		OrderID int `json:"order_id"`
	}
	in := map[string]string{"payment_method": "cash"}
	require.NoError(t, c.Post(context.Background(), "/order/place", in, &out))

	rec := <-ch
	assert.Equal(t, http.MethodPost, rec.Method)
	assert.JSONEq(t, `{"payment_method":"cash"}`, rec.Body)
	assert.Equal(t, 42, out.OrderID)
}

func TestClient_NonOKBecomesAPIError(t *testing.T) {
	srv, _ := newStubServer(t, http.StatusBadRequest, `{"error":"cart is empty"}`)
	c := NewClient(srv.URL, testHTTP(), nil)

	err := c.Get(context.Background(), "/order/my-orders", "", nil)
	require.Error(t, err)

	assert.False(t, IsNetwork(err))
	assert.Equal(t, "cart is empty", UserMessage(err))
}

func TestClient_UnreachableServerIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := NewClient(srv.URL, testHTTP(), nil)

	err := c.Get(context.Background(), "/order/my-orders", "", nil)
	require.Error(t, err)
	assert.True(t, IsNetwork(err))
	assert.Contains(t, UserMessage(err), "Cannot connect")
}

func TestIsUnauthorized(t *testing.T) {
	assert.True(t, IsUnauthorized(&Error{Status: http.StatusUnauthorized}))
	assert.True(t, IsUnauthorized(&Error{Status: http.StatusForbidden}))
	assert.False(t, IsUnauthorized(&Error{Status: http.StatusInternalServerError}))
	assert.False(t, IsUnauthorized(nil))
}

func TestPrice_DecodesNumberAndString(t *testing.T) {
	var out struct {
		A Price `json:"a"`
		B Price `json:"b"`
		C Price `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 9.5, "b": "3.25", "c": null}`), &out))
	assert.InDelta(t, 9.5, float64(out.A), 1e-9)
	assert.InDelta(t, 3.25, float64(out.B), 1e-9)
	assert.Zero(t, float64(out.C))

	assert.Error(t, json.Unmarshal([]byte(`{"a":"not-a-price"}`), &out))
}

func TestID_DecodesNumberAndString(t *testing.T) {
	var out struct {
		A ID `json:"a"`
		B ID `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 7, "b": "abc"}`), &out))
	assert.Equal(t, ID("7"), out.A)
	assert.Equal(t, ID("abc"), out.B)
}

func TestCatalogClient_MenuQuery(t *testing.T) {
	srv, ch := newStubServer(t, http.StatusOK, `{"menu_items":[{"id":1,"name":"Pad Thai","price":"9.50"}]}`)
	cc := NewCatalogClient(NewClient(srv.URL, testHTTP(), nil), config.DefaultEndpoints())

	items, err := cc.Menu(context.Background(), 3)
	require.NoError(t, err)

	rec := <-ch
	assert.Equal(t, "/order/menu", rec.Path)
	assert.Equal(t, "category_id=3", rec.RawQuery)
	require.Len(t, items, 1)
	assert.InDelta(t, 9.50, float64(items[0].Price), 1e-9)
}

func TestOrdersClient_DetailsExpandsID(t *testing.T) {
	srv, ch := newStubServer(t, http.StatusOK, `{"order":{"id":9,"order_number":"A-9"},"items":[]}`)
	oc := NewOrdersClient(NewClient(srv.URL, testHTTP(), nil), config.DefaultEndpoints())

	details, err := oc.Details(context.Background(), 9)
	require.NoError(t, err)

	rec := <-ch
	assert.Equal(t, "/order/order/9", rec.Path)
	assert.Equal(t, "A-9", details.Order.OrderNumber)
}

func TestOrdersClient_UpdateStatus(t *testing.T) {
	srv, ch := newStubServer(t, http.StatusOK, `{}`)
	oc := NewOrdersClient(NewClient(srv.URL, testHTTP(), nil), config.DefaultEndpoints())

	require.NoError(t, oc.UpdateStatus(context.Background(), 12, StatusCancelled))

	rec := <-ch
	assert.Equal(t, http.MethodPut, rec.Method)
	assert.Equal(t, "/order/12/status", rec.Path)
	assert.JSONEq(t, `{"status":"cancelled"}`, rec.Body)
}

func TestAdminMenuClient_CRUDPaths(t *testing.T) {
	srv, ch := newStubServer(t, http.StatusOK, `{"categories":[],"menu_items":[]}`)
	mc := NewAdminMenuClient(NewClient(srv.URL, testHTTP(), nil), config.DefaultEndpoints())
	ctx := context.Background()

	require.NoError(t, mc.CreateCategory(ctx, CategoryRequest{Name: "Drinks"}))
	rec := <-ch
	assert.Equal(t, http.MethodPost, rec.Method)
	assert.Equal(t, "/admin/menu/categories", rec.Path)

	require.NoError(t, mc.DeleteMenuItem(ctx, 5))
	rec = <-ch
	assert.Equal(t, http.MethodDelete, rec.Method)
	assert.Equal(t, "/admin/menu/items/5", rec.Path)
}

func TestClient_BaseURLWithPathPrefix(t *testing.T) {
	srv, ch := newStubServer(t, http.StatusOK, `{"categories":[]}`)
	cc := NewCatalogClient(NewClient(srv.URL+"/api", testHTTP(), nil), config.DefaultEndpoints())

	_, err := cc.Categories(context.Background())
	require.NoError(t, err)

	rec := <-ch
	assert.Equal(t, "/api/order/categories", rec.Path)
}
