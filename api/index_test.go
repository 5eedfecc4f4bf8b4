package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/config"
	"storefront/libs"
	"storefront/models"
	"storefront/repositories"
	"storefront/services"
	"storefront/utils"
)

func newGateway(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h, err := NewHandler(&config.Config{JWTSecret: "test-secret", JWTExpiry: time.Hour}, nil)
	require.NoError(t, err)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, token, body string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &out)
	return resp.StatusCode, out
}

func login(t *testing.T, base string) string {
	t.Helper()
	status, body := doJSON(t, http.MethodPost, base+"/auth/login", "", `{"email":"demo@example.com","password":"demo123"}`)
	require.Equal(t, http.StatusOK, status)
	return body["access_token"].(string)
}

func TestNewHandler_RequiresSecret(t *testing.T) {
	_, err := NewHandler(&config.Config{}, nil)
	assert.Error(t, err)
}

func TestGateway_Login(t *testing.T) {
	srv := newGateway(t)

	status, body := doJSON(t, http.MethodPost, srv.URL+"/auth/login", "", `{"email":"demo@example.com","password":"demo123"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "bearer", body["token_type"])
	assert.Equal(t, "user_001", body["user_id"])
	assert.Equal(t, "Demo User", body["name"])
	assert.NotEmpty(t, body["access_token"])

	status, body = doJSON(t, http.MethodPost, srv.URL+"/auth/login", "", `{"email":"demo@example.com","password":"wrong-one"}`)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid email or password", body["detail"])

	status, _ = doJSON(t, http.MethodPost, srv.URL+"/auth/login", "", `{"email":"not-an-email"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestGateway_DemoUsersHidePasswords(t *testing.T) {
	srv := newGateway(t)

	status, body := doJSON(t, http.MethodGet, srv.URL+"/auth/users", "", "")
	require.Equal(t, http.StatusOK, status)

	users := body["demo_users"].([]any)
	require.Len(t, users, 3)
	for _, u := range users {
		assert.Equal(t, "***", u.(map[string]any)["password"])
	}
}

func TestGateway_Verify(t *testing.T) {
	srv := newGateway(t)
	token := login(t, srv.URL)

	status, body := doJSON(t, http.MethodPost, srv.URL+"/auth/verify", "", `{"token":"`+token+`"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["valid"])
	assert.Equal(t, "user_001", body["user_id"])

	status, body = doJSON(t, http.MethodPost, srv.URL+"/auth/verify", "", `{"token":"garbage"}`)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid token", body["detail"])
}

func TestGateway_CartRequiresToken(t *testing.T) {
	srv := newGateway(t)

	status, body := doJSON(t, http.MethodGet, srv.URL+"/cart", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Authorization header missing", body["detail"])

	status, body = doJSON(t, http.MethodGet, srv.URL+"/cart", "nope", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid token", body["detail"])

	expired, err := utils.NewTokenIssuer("test-secret", time.Nanosecond).GenerateToken("user_001", "demo@example.com", "Demo User")
	require.NoError(t, err)
	time.Sleep(time.Second)
	status, body = doJSON(t, http.MethodGet, srv.URL+"/cart", expired, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Token has expired", body["detail"])
}

func TestGateway_CartFlow(t *testing.T) {
	srv := newGateway(t)
	token := login(t, srv.URL)

	status, body := doJSON(t, http.MethodPost, srv.URL+"/cart/add", token,
		`{"product_id":"prod_007","product_name":"Wireless Mouse","price":49.99,"quantity":2}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), body["total_items"])
	assert.Equal(t, 99.98, body["total_price"])

	status, body = doJSON(t, http.MethodPut, srv.URL+"/cart/update/prod_007?quantity=5", token, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(5), body["total_items"])

	status, body = doJSON(t, http.MethodPut, srv.URL+"/cart/update/prod_999?quantity=1", token, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Product prod_999 not found in cart", body["detail"])

	status, body = doJSON(t, http.MethodGet, srv.URL+"/cart/count", token, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(5), body["count"])

	status, body = doJSON(t, http.MethodDelete, srv.URL+"/cart/remove/prod_007", token, "")
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["items"])

	status, _ = doJSON(t, http.MethodDelete, srv.URL+"/cart/clear", token, "")
	assert.Equal(t, http.StatusOK, status)
}

func TestGateway_Products(t *testing.T) {
	srv := newGateway(t)

	resp, err := http.Get(srv.URL + "/products?sort_by=price&max_price=60")
	require.NoError(t, err)
	defer resp.Body.Close()
	var products []models.Product
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&products))
	require.NotEmpty(t, products)
	assert.Equal(t, "prod_014", products[0].ID)

	status, body := doJSON(t, http.MethodGet, srv.URL+"/products/prod_404", "", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Product not found", body["detail"])

	status, _ = doJSON(t, http.MethodGet, srv.URL+"/products?min_price=cheap", "", "")
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestGateway_Ambient(t *testing.T) {
	srv := newGateway(t)

	status, body := doJSON(t, http.MethodGet, srv.URL+"/health", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])

	status, body = doJSON(t, http.MethodGet, srv.URL+"/", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "running", body["status"])

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "storefront_gateway_requests_total")
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

// The client stack against the real gateway.
func TestClientAgainstGateway(t *testing.T) {
	srv := newGateway(t)
	ctx := context.Background()

	sessions := services.NewSessionStore(repositories.NewFileSessionRepository(t.TempDir()+"/session.json"), nil)
	client := libs.NewHTTPClient(srv.URL, sessions)
	auth := services.NewAuthService(client, sessions, nil)
	cart := services.NewCartService(client)
	products := services.NewProductService(client)

	_, err := cart.Get(ctx)
	assert.Equal(t, http.StatusUnauthorized, utils.StatusCode(err))

	session, err := auth.Login(ctx, "demo@example.com", "demo123")
	require.NoError(t, err)
	assert.Equal(t, "user_001", session.UserID)
	assert.True(t, sessions.IsActive(ctx))

	_, err = cart.Add(ctx, "7", "Widget", 9.99, 1)
	require.NoError(t, err)

	snap, err := cart.Get(ctx)
	require.NoError(t, err)
	item, ok := snap.Item("7")
	require.True(t, ok)
	assert.Equal(t, 1, item.Quantity)
	assert.Equal(t, 9.99, snap.TotalPrice)

	ranked, err := products.List(ctx, models.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, ranked, 15)

	v, err := auth.Verify(ctx)
	require.NoError(t, err)
	assert.True(t, v.Valid)

	require.NoError(t, auth.Logout(ctx))
	assert.Equal(t, services.StateAnonymous, auth.State(ctx))
}
