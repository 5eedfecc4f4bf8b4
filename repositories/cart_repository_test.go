package repositories

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/models"
)

func TestCartRepository_AddMergesQuantities(t *testing.T) {
	r := NewCartRepository()

	_, err := r.AddItem("u1", models.CartItem{ProductID: "7", ProductName: "Widget", UnitPrice: 9.99, Quantity: 1})
	require.NoError(t, err)
	snap, err := r.AddItem("u1", models.CartItem{ProductID: "7", ProductName: "Widget", UnitPrice: 9.99, Quantity: 2})
	require.NoError(t, err)

	require.Len(t, snap.Items, 1)
	assert.Equal(t, 3, snap.Items[0].Quantity)
	assert.Equal(t, 3, snap.TotalItems)
	assert.Equal(t, 29.97, snap.TotalPrice)

	_, err = r.AddItem("u1", models.CartItem{ProductID: "8", Quantity: 0})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCartRepository_UpdateAndRemove(t *testing.T) {
	r := NewCartRepository()
	_, _ = r.AddItem("u1", models.CartItem{ProductID: "a", UnitPrice: 1.10, Quantity: 1})
	_, _ = r.AddItem("u1", models.CartItem{ProductID: "b", UnitPrice: 2.20, Quantity: 1})

	snap, err := r.UpdateQuantity("u1", "a", 4)
	require.NoError(t, err)
	assert.Equal(t, 5, snap.TotalItems)
	assert.Equal(t, 6.6, snap.TotalPrice)
	assert.Equal(t, "a", snap.Items[0].ProductID, "order is preserved")

	snap, err = r.UpdateQuantity("u1", "a", 0)
	require.NoError(t, err)
	require.Len(t, snap.Items, 1)

	_, err = r.UpdateQuantity("u1", "missing", 2)
	var notFound *CartItemNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Product missing not found in cart", err.Error())

	snap, err = r.RemoveItem("u1", "b")
	require.NoError(t, err)
	assert.True(t, snap.Empty())
	assert.NotNil(t, snap.Items)

	_, err = r.RemoveItem("u1", "b")
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCartRepository_PerUserAndClear(t *testing.T) {
	r := NewCartRepository()
	_, _ = r.AddItem("u1", models.CartItem{ProductID: "a", UnitPrice: 5, Quantity: 2})
	_, _ = r.AddItem("u2", models.CartItem{ProductID: "a", UnitPrice: 5, Quantity: 1})

	assert.Equal(t, 2, r.Count("u1"))
	assert.Equal(t, 1, r.Count("u2"))

	snap := r.Clear("u1")
	assert.True(t, snap.Empty())
	assert.Equal(t, 0, r.Count("u1"))
	assert.Equal(t, 1, r.Count("u2"))
	assert.Equal(t, 0, r.Count("nobody"))
}

func TestCartRepository_ConcurrentAdds(t *testing.T) {
	r := NewCartRepository()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = r.AddItem("u1", models.CartItem{ProductID: "a", UnitPrice: 1, Quantity: 1})
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, r.Count("u1"))
}
