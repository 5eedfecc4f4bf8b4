package libs

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/models"
	"storefront/utils"
)

type staticToken string

func (s staticToken) CurrentToken() (string, bool) {
	return string(s), s != ""
}

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL+"/", staticToken(token), WithHTTPClient(srv.Client()))
}

func TestHTTPClient_HeadersAndBody(t *testing.T) {
	var got *http.Request
	var body map[string]any

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[],"total_items":0,"total_price":0}`))
	}, "tok-123")

	snap, err := Do[models.CartSnapshot](context.Background(), client, Request{
		Method:       http.MethodPost,
		Path:         "/cart/add",
		Body:         models.AddToCartRequest{ProductID: "7", ProductName: "Widget", Price: 9.99, Quantity: 1},
		RequiresAuth: true,
	})
	require.NoError(t, err)
	assert.True(t, snap.Empty())

	require.NotNil(t, got)
	assert.Equal(t, "/cart/add", got.URL.Path)
	assert.Equal(t, "application/json", got.Header.Get("Accept"))
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.Equal(t, "Bearer tok-123", got.Header.Get("Authorization"))
	_, err = uuid.Parse(got.Header.Get(RequestIDHeader))
	assert.NoError(t, err)
	assert.Equal(t, "Widget", body["product_name"])
	assert.Equal(t, 9.99, body["price"])
}

func TestHTTPClient_NoAuthHeaderUnlessRequired(t *testing.T) {
	var auth, contentType string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		contentType = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte(`[]`))
	}, "tok-123")

	_, err := client.Request(context.Background(), Request{Path: "/products"})
	require.NoError(t, err)
	assert.Empty(t, auth)
	assert.Empty(t, contentType)
}

func TestHTTPClient_AuthRequiredWithoutTokenStillSends(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Authorization header missing"}`))
	}, "")

	_, err := client.Request(context.Background(), Request{Path: "/cart", RequiresAuth: true})
	assert.Equal(t, 1, calls)
	assert.True(t, utils.IsKind(err, utils.HTTPFailure))
	assert.Equal(t, http.StatusUnauthorized, utils.StatusCode(err))
	assert.Equal(t, "Authorization header missing", utils.UserMessage(err))
}

func TestHTTPClient_QueryEncoding(t *testing.T) {
	var query url.Values
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		_, _ = w.Write([]byte(`[]`))
	}, "")

	_, err := client.Request(context.Background(), Request{
		Path:  "/cart/update/a%2Fb",
		Query: url.Values{"quantity": {"3"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "3", query.Get("quantity"))
}

func TestHTTPClient_ErrorMessages(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"detail", http.StatusNotFound, `{"detail":"Product not found"}`, "Product not found"},
		{"message", http.StatusBadRequest, `{"success":false,"message":"bad input"}`, "bad input"},
		{"structured detail", http.StatusUnprocessableEntity, `{"detail":[{"msg":"field required"}]}`, "request failed with status 422"},
		{"not json", http.StatusBadGateway, `<html>oops</html>`, "request failed with status 502"},
		{"empty", http.StatusInternalServerError, ``, "request failed with status 500"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}, "")

			_, err := client.Request(context.Background(), Request{Path: "/x"})
			apiErr, ok := utils.AsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, utils.HTTPFailure, apiErr.Kind)
			assert.Equal(t, tc.status, apiErr.StatusCode)
			assert.Equal(t, tc.want, apiErr.Message)
		})
	}
}

func TestHTTPClient_ParseFailures(t *testing.T) {
	cases := map[string]string{
		"malformed":    `{"items": [`,
		"empty":        ``,
		"wrong shape":  `"hello"`,
		"schema":       `{"total_items": 1}`,
		"bad quantity": `{"items":[{"product_id":"7","quantity":0}],"total_items":0,"total_price":0}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}, "")

			_, err := Do[models.CartSnapshot](context.Background(), client, Request{Path: "/cart"})
			assert.True(t, utils.IsKind(err, utils.ParseFailure), "got %v", err)
		})
	}
}

func TestHTTPClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	client := NewHTTPClient(base, nil)
	_, err := client.Request(context.Background(), Request{Path: "/products"})

	apiErr, ok := utils.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, utils.TransportFailure, apiErr.Kind)
	assert.Zero(t, apiErr.StatusCode)
	assert.NotNil(t, apiErr.Unwrap())
}

func TestHTTPClient_ContextCancel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}, "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Request(ctx, Request{Path: "/products"})
	assert.True(t, utils.IsKind(err, utils.TransportFailure))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewHTTPClient_DefaultsHaveNoTimeout(t *testing.T) {
	client := NewHTTPClient("http://localhost:8080/", nil)

	assert.Equal(t, "http://localhost:8080", client.BaseURL())
	assert.Zero(t, client.http.Timeout)
	assert.NotNil(t, client.http.Transport)
}
