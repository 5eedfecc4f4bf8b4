package models

import (
	"errors"
	"fmt"
)

type CartItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// CartSnapshot is a server-authoritative read of a cart. Totals are displayed
// as received and never recomputed on the client.
type CartSnapshot struct {
	UserID     string     `json:"user_id,omitempty"`
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"total_items"`
	TotalPrice float64    `json:"total_price"`
}

func (c CartSnapshot) Validate() error {
	if c.Items == nil {
		return errors.New("cart has no items field")
	}
	for _, item := range c.Items {
		if item.ProductID == "" {
			return errors.New("cart item has no product_id")
		}
		if item.Quantity < 1 {
			return fmt.Errorf("cart item %s has quantity %d", item.ProductID, item.Quantity)
		}
	}
	return nil
}

// Item returns the line for productID, if present.
func (c CartSnapshot) Item(productID string) (CartItem, bool) {
	for _, item := range c.Items {
		if item.ProductID == productID {
			return item, true
		}
	}
	return CartItem{}, false
}

func (c CartSnapshot) Empty() bool {
	return len(c.Items) == 0
}

type CartCount struct {
	Count *int `json:"count"`
}

func (c CartCount) Validate() error {
	if c.Count == nil {
		return errors.New("count is missing")
	}
	return nil
}
