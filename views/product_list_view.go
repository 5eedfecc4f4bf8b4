package views

import (
	"context"
	"sync"

	"storefront/models"
	"storefront/services"
)

// ProductListView keeps the current filter and the last list shown.
type ProductListView struct {
	products *services.ProductService

	mu       sync.Mutex
	filter   models.ProductFilter
	items    []models.Product
	selected *models.Product
	err      error
	closed   bool
}

func NewProductListView(products *services.ProductService) *ProductListView {
	return &ProductListView{products: products}
}

func (v *ProductListView) SetFilter(filter models.ProductFilter) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filter = filter
}

func (v *ProductListView) Filter() models.ProductFilter {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filter
}

// Load lists products with the current filter.
func (v *ProductListView) Load(ctx context.Context) error {
	items, err := v.products.List(ctx, v.Filter())
	return v.apply(items, err)
}

func (v *ProductListView) Search(ctx context.Context, term string) error {
	items, err := v.products.Search(ctx, term)
	return v.apply(items, err)
}

// Select fetches one product's detail.
func (v *ProductListView) Select(ctx context.Context, id string) (*models.Product, error) {
	product, err := v.products.GetByID(ctx, id)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return product, err
	}
	v.err = err
	if err == nil {
		v.selected = product
	}
	return product, err
}

func (v *ProductListView) Products() []models.Product {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.items
}

func (v *ProductListView) Selected() *models.Product {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selected
}

func (v *ProductListView) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

func (v *ProductListView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
}

func (v *ProductListView) apply(items []models.Product, err error) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return err
	}
	v.err = err
	if err == nil {
		v.items = items
	}
	return err
}
