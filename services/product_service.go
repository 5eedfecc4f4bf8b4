package services

import (
	"context"
	"net/url"
	"strings"

	"storefront/libs"
	"storefront/models"
	"storefront/utils"
)

// ProductService reads the catalog. Ranking is the gateway's business.
type ProductService struct {
	client *libs.HTTPClient
}

func NewProductService(client *libs.HTTPClient) *ProductService {
	return &ProductService{client: client}
}

func (s *ProductService) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	if err := filter.Validate(); err != nil {
		return nil, utils.NewValidationError(err.Error())
	}
	products, err := libs.Do[models.ProductList](ctx, s.client, libs.Request{
		Path:  "/products",
		Query: filter.Query(),
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (s *ProductService) GetByID(ctx context.Context, id string) (*models.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, utils.NewValidationError("product id is required")
	}
	product, err := libs.Do[models.Product](ctx, s.client, libs.Request{
		Path: "/products/" + url.PathEscape(id),
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *ProductService) Search(ctx context.Context, term string) ([]models.Product, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, utils.NewValidationError("search term is required")
	}
	products, err := libs.Do[models.ProductList](ctx, s.client, libs.Request{
		Path: "/products/search/" + url.PathEscape(term),
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}
