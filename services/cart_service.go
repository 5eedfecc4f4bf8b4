package services

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"storefront/libs"
	"storefront/models"
	"storefront/utils"
)

// CartService drives the signed-in user's cart. Every call is authenticated
// and every mutation returns the gateway's snapshot as-is.
type CartService struct {
	client *libs.HTTPClient
}

func NewCartService(client *libs.HTTPClient) *CartService {
	return &CartService{client: client}
}

func (s *CartService) Get(ctx context.Context) (*models.CartSnapshot, error) {
	return s.snapshot(ctx, http.MethodGet, "/cart", nil, nil)
}

func (s *CartService) Add(ctx context.Context, productID, productName string, unitPrice float64, quantity int) (*models.CartSnapshot, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, utils.NewValidationError("product id is required")
	}
	if quantity < 1 {
		return nil, utils.NewValidationError("quantity must be at least 1")
	}
	body := models.AddToCartRequest{
		ProductID:   productID,
		ProductName: productName,
		Price:       unitPrice,
		Quantity:    quantity,
	}
	return s.snapshot(ctx, http.MethodPost, "/cart/add", nil, body)
}

// UpdateQuantity sets a line's quantity. Removing a line goes through Remove;
// a quantity below 1 is rejected before any request is made.
func (s *CartService) UpdateQuantity(ctx context.Context, productID string, quantity int) (*models.CartSnapshot, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, utils.NewValidationError("product id is required")
	}
	if quantity < 1 {
		return nil, utils.NewValidationError("quantity must be at least 1")
	}
	query := url.Values{"quantity": {strconv.Itoa(quantity)}}
	return s.snapshot(ctx, http.MethodPut, "/cart/update/"+url.PathEscape(productID), query, nil)
}

func (s *CartService) Remove(ctx context.Context, productID string) (*models.CartSnapshot, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, utils.NewValidationError("product id is required")
	}
	return s.snapshot(ctx, http.MethodDelete, "/cart/remove/"+url.PathEscape(productID), nil, nil)
}

func (s *CartService) Clear(ctx context.Context) (*models.CartSnapshot, error) {
	return s.snapshot(ctx, http.MethodDelete, "/cart/clear", nil, nil)
}

// Count is the total quantity across lines.
func (s *CartService) Count(ctx context.Context) (int, error) {
	resp, err := libs.Do[models.CartCount](ctx, s.client, libs.Request{
		Path:         "/cart/count",
		RequiresAuth: true,
	})
	if err != nil {
		return 0, err
	}
	return *resp.Count, nil
}

func (s *CartService) snapshot(ctx context.Context, method, path string, query url.Values, body any) (*models.CartSnapshot, error) {
	snap, err := libs.Do[models.CartSnapshot](ctx, s.client, libs.Request{
		Method:       method,
		Path:         path,
		Query:        query,
		Body:         body,
		RequiresAuth: true,
	})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}
