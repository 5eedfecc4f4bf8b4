package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/models"
)

func fixedCatalog(t *testing.T, products ...models.Product) *ProductRepository {
	t.Helper()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	r := NewProductRepository(func() time.Time { return now })
	for _, p := range products {
		r.Add(p, now)
	}
	return r
}

func float(v float64) *float64 { return &v }

func TestProductRepository_Score(t *testing.T) {
	base := models.Product{ID: "p1", Name: "Lamp", Price: 500, Popularity: 80, Rating: 5, SalesCount: 9999, Stock: 10}
	soldOut := base
	soldOut.ID, soldOut.Stock = "p2", 0
	low := base
	low.ID, low.Stock = "p3", 3

	r := fixedCatalog(t, base, soldOut, low)

	for id, want := range map[string]float64{"p1": 84, "p2": 42, "p3": 67.2} {
		p, err := r.FindByID(id)
		require.NoError(t, err)
		require.NotNil(t, p.RankingScore)
		assert.InDelta(t, want, *p.RankingScore, 0.01, id)
	}
}

func TestProductRepository_ListByRanking(t *testing.T) {
	r := NewDemoProductRepository()

	products := r.List(models.ProductFilter{})
	require.Len(t, products, 15)

	for i, p := range products {
		require.NotNil(t, p.Rank)
		require.NotNil(t, p.RankingScore)
		assert.Equal(t, i+1, *p.Rank)
		if i > 0 {
			assert.LessOrEqual(t, *p.RankingScore, *products[i-1].RankingScore)
		}
	}
	assert.Equal(t, "prod_015", products[len(products)-1].ID, "sold out item sinks")
}

func TestProductRepository_ListSortedAndFiltered(t *testing.T) {
	r := NewDemoProductRepository()

	byPrice := r.List(models.ProductFilter{SortBy: models.SortByPrice, MinPrice: float(50), MaxPrice: float(100)})
	require.NotEmpty(t, byPrice)
	for i, p := range byPrice {
		assert.GreaterOrEqual(t, p.Price, 50.0)
		assert.LessOrEqual(t, p.Price, 100.0)
		assert.Nil(t, p.RankingScore)
		if i > 0 {
			assert.GreaterOrEqual(t, p.Price, byPrice[i-1].Price)
		}
	}

	byRating := r.List(models.ProductFilter{SortBy: models.SortByRating, MinRating: float(4.6)})
	require.NotEmpty(t, byRating)
	assert.Equal(t, "prod_004", byRating[0].ID)
	for _, p := range byRating {
		assert.GreaterOrEqual(t, p.Rating, 4.6)
	}

	assert.Empty(t, r.List(models.ProductFilter{MinPrice: float(10000)}))
}

func TestProductRepository_UnknownSortFallsBackToRanking(t *testing.T) {
	r := NewDemoProductRepository()

	products := r.List(models.ProductFilter{SortBy: "newest"})
	require.NotEmpty(t, products)
	assert.NotNil(t, products[0].RankingScore)
}

func TestProductRepository_FindByID(t *testing.T) {
	r := NewDemoProductRepository()

	p, err := r.FindByID("prod_007")
	require.NoError(t, err)
	assert.Equal(t, "Wireless Mouse", p.Name)
	assert.Nil(t, p.Rank)

	_, err = r.FindByID("prod_999")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductRepository_Search(t *testing.T) {
	r := NewDemoProductRepository()

	matches := r.Search("WEBCAM")
	ids := make([]string, 0, len(matches))
	for _, p := range matches {
		ids = append(ids, p.ID)
		assert.NotNil(t, p.RankingScore)
	}
	assert.ElementsMatch(t, []string{"prod_003", "prod_015"}, ids)

	byDescription := r.Search("lumbar")
	require.Len(t, byDescription, 1)
	assert.Equal(t, "prod_002", byDescription[0].ID)

	assert.Empty(t, r.Search("teapot"))
}
