package repositories

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"storefront/models"
)

var (
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrCartItemNotFound = errors.New("item not found in cart")
)

// CartItemNotFoundError is returned when a mutation names a product that is
// not in the user's cart.
type CartItemNotFoundError struct {
	ProductID string
}

func (e *CartItemNotFoundError) Error() string {
	return fmt.Sprintf("Product %s not found in cart", e.ProductID)
}

func (e *CartItemNotFoundError) Unwrap() error {
	return ErrCartItemNotFound
}

type cart struct {
	items map[string]*models.CartItem
	order []string
}

// CartRepository keeps one in-memory cart per user. Lines keep the order in
// which they were first added.
type CartRepository struct {
	mu    sync.Mutex
	carts map[string]*cart
}

func NewCartRepository() *CartRepository {
	return &CartRepository{carts: make(map[string]*cart)}
}

func (r *CartRepository) cartFor(userID string) *cart {
	c, ok := r.carts[userID]
	if !ok {
		c = &cart{items: make(map[string]*models.CartItem)}
		r.carts[userID] = c
	}
	return c
}

func (r *CartRepository) Snapshot(userID string) models.CartSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot(userID)
}

// AddItem merges into an existing line by summing quantities. Name and price
// keep the values from the first add.
func (r *CartRepository) AddItem(userID string, item models.CartItem) (models.CartSnapshot, error) {
	if item.Quantity < 1 {
		return models.CartSnapshot{}, ErrInvalidQuantity
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.cartFor(userID)
	if existing, ok := c.items[item.ProductID]; ok {
		existing.Quantity += item.Quantity
	} else {
		line := item
		c.items[item.ProductID] = &line
		c.order = append(c.order, item.ProductID)
	}
	return r.snapshot(userID), nil
}

// UpdateQuantity sets a line's quantity. Zero removes the line.
func (r *CartRepository) UpdateQuantity(userID, productID string, quantity int) (models.CartSnapshot, error) {
	if quantity < 0 {
		return models.CartSnapshot{}, ErrInvalidQuantity
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.cartFor(userID)
	line, ok := c.items[productID]
	if !ok {
		return models.CartSnapshot{}, &CartItemNotFoundError{ProductID: productID}
	}
	if quantity == 0 {
		c.remove(productID)
	} else {
		line.Quantity = quantity
	}
	return r.snapshot(userID), nil
}

func (r *CartRepository) RemoveItem(userID, productID string) (models.CartSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.cartFor(userID)
	if _, ok := c.items[productID]; !ok {
		return models.CartSnapshot{}, &CartItemNotFoundError{ProductID: productID}
	}
	c.remove(productID)
	return r.snapshot(userID), nil
}

func (r *CartRepository) Clear(userID string) models.CartSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, userID)
	return r.snapshot(userID)
}

// Count is the sum of quantities, not the number of lines.
func (r *CartRepository) Count(userID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := 0
	if c, ok := r.carts[userID]; ok {
		for _, item := range c.items {
			total += item.Quantity
		}
	}
	return total
}

func (r *CartRepository) snapshot(userID string) models.CartSnapshot {
	snap := models.CartSnapshot{UserID: userID, Items: []models.CartItem{}}
	c, ok := r.carts[userID]
	if !ok {
		return snap
	}

	var total float64
	for _, id := range c.order {
		item := *c.items[id]
		snap.Items = append(snap.Items, item)
		snap.TotalItems += item.Quantity
		total += item.UnitPrice * float64(item.Quantity)
	}
	snap.TotalPrice = math.Round(total*100) / 100
	return snap
}

func (c *cart) remove(productID string) {
	delete(c.items, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
