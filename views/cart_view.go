package views

import (
	"context"
	"sync"

	"storefront/models"
	"storefront/services"
)

// CartView holds what a cart screen shows. Every mutation is followed by a
// fresh read so the screen only ever displays a server snapshot. Responses
// are applied in arrival order; anything arriving after Close is dropped.
type CartView struct {
	cart *services.CartService

	mu       sync.Mutex
	snapshot *models.CartSnapshot
	err      error
	closed   bool
}

func NewCartView(cart *services.CartService) *CartView {
	return &CartView{cart: cart}
}

func (v *CartView) Load(ctx context.Context) error {
	snap, err := v.cart.Get(ctx)
	return v.apply(snap, err)
}

func (v *CartView) Add(ctx context.Context, productID, productName string, unitPrice float64, quantity int) error {
	_, err := v.cart.Add(ctx, productID, productName, unitPrice, quantity)
	return v.refresh(ctx, err)
}

func (v *CartView) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	_, err := v.cart.UpdateQuantity(ctx, productID, quantity)
	return v.refresh(ctx, err)
}

func (v *CartView) Remove(ctx context.Context, productID string) error {
	_, err := v.cart.Remove(ctx, productID)
	return v.refresh(ctx, err)
}

func (v *CartView) Clear(ctx context.Context) error {
	_, err := v.cart.Clear(ctx)
	return v.refresh(ctx, err)
}

// Snapshot is the last snapshot received, or nil before the first load.
func (v *CartView) Snapshot() *models.CartSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshot
}

// Err is the error from the most recent operation, if it failed.
func (v *CartView) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

func (v *CartView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
}

func (v *CartView) refresh(ctx context.Context, mutateErr error) error {
	if mutateErr != nil {
		return v.apply(nil, mutateErr)
	}
	return v.Load(ctx)
}

func (v *CartView) apply(snap *models.CartSnapshot, err error) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return err
	}
	v.err = err
	if err == nil {
		v.snapshot = snap
	}
	return err
}
