package repositories

import (
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"storefront/models"
)

var ErrProductNotFound = errors.New("Product not found")

type catalogEntry struct {
	product   models.Product
	createdAt time.Time
}

// ProductRepository is the demo gateway's read-only catalog.
type ProductRepository struct {
	entries []catalogEntry
	now     func() time.Time
}

func NewProductRepository(now func() time.Time) *ProductRepository {
	if now == nil {
		now = time.Now
	}
	return &ProductRepository{now: now}
}

// NewDemoProductRepository returns the fifteen-product demo catalog.
func NewDemoProductRepository() *ProductRepository {
	r := NewProductRepository(nil)
	for _, seed := range demoCatalog {
		r.Add(seed.product, r.now().AddDate(0, 0, -seed.ageDays))
	}
	return r
}

func (r *ProductRepository) Add(p models.Product, createdAt time.Time) {
	p.Rank = nil
	p.RankingScore = nil
	r.entries = append(r.entries, catalogEntry{product: p, createdAt: createdAt})
}

// List applies the price/rating filters, then orders by filter.SortBy.
// Unknown or empty orders fall back to ranking; only ranking fills RankingScore.
func (r *ProductRepository) List(filter models.ProductFilter) []models.Product {
	selected := make([]catalogEntry, 0, len(r.entries))
	for _, e := range r.entries {
		p := e.product
		if filter.MinPrice != nil && p.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && p.Price > *filter.MaxPrice {
			continue
		}
		if filter.MinRating != nil && p.Rating < *filter.MinRating {
			continue
		}
		selected = append(selected, e)
	}

	sortBy := filter.SortBy
	if !sortBy.Valid() {
		sortBy = models.SortByRanking
	}

	switch sortBy {
	case models.SortByPrice:
		sort.SliceStable(selected, func(i, j int) bool {
			return selected[i].product.Price < selected[j].product.Price
		})
	case models.SortByPopularity:
		sort.SliceStable(selected, func(i, j int) bool {
			return selected[i].product.Popularity > selected[j].product.Popularity
		})
	case models.SortByRating:
		sort.SliceStable(selected, func(i, j int) bool {
			return selected[i].product.Rating > selected[j].product.Rating
		})
	default:
		r.rank(selected)
	}

	return r.present(selected, sortBy == models.SortByRanking)
}

func (r *ProductRepository) FindByID(id string) (*models.Product, error) {
	for _, e := range r.entries {
		if e.product.ID == id {
			p := e.product
			score := r.score(e)
			p.RankingScore = &score
			return &p, nil
		}
	}
	return nil, ErrProductNotFound
}

// Search matches term case-insensitively against name and description.
func (r *ProductRepository) Search(term string) []models.Product {
	needle := strings.ToLower(term)
	var matches []catalogEntry
	for _, e := range r.entries {
		if strings.Contains(strings.ToLower(e.product.Name), needle) ||
			strings.Contains(strings.ToLower(e.product.Description), needle) {
			matches = append(matches, e)
		}
	}
	r.rank(matches)
	return r.present(matches, true)
}

func (r *ProductRepository) rank(entries []catalogEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return r.score(entries[i]) > r.score(entries[j])
	})
}

func (r *ProductRepository) present(entries []catalogEntry, withScore bool) []models.Product {
	out := make([]models.Product, 0, len(entries))
	for i, e := range entries {
		p := e.product
		rank := i + 1
		p.Rank = &rank
		if withScore {
			score := r.score(e)
			p.RankingScore = &score
		}
		out = append(out, p)
	}
	return out
}

const (
	weightPopularity = 0.30
	weightPrice      = 0.20
	weightRating     = 0.25
	weightSales      = 0.15
	weightRecency    = 0.10

	referencePrice    = 500.0
	recencyWindowDays = 30
)

// score is a 0-100 blend of popularity, value for money, rating, sales volume
// and recency, halved when out of stock and cut by a fifth when stock < 5.
func (r *ProductRepository) score(e catalogEntry) float64 {
	p := e.product
	total := float64(p.Popularity)*weightPopularity +
		priceScore(p.Price)*weightPrice +
		(p.Rating/5.0)*100*weightRating +
		salesScore(p.SalesCount)*weightSales +
		recencyScore(r.now().Sub(e.createdAt))*weightRecency

	switch {
	case p.Stock == 0:
		total *= 0.5
	case p.Stock < 5:
		total *= 0.8
	}
	return math.Round(total*100) / 100
}

func priceScore(price float64) float64 {
	if price <= 0 {
		return 0
	}
	ratio := referencePrice / price
	var s float64
	if ratio >= 1 {
		s = 50 + 50*(1-math.Exp(-ratio+1))
	} else {
		s = 50 * math.Exp(-1/ratio+1)
	}
	return clamp(s)
}

func salesScore(sales int) float64 {
	if sales <= 0 {
		return 0
	}
	return clamp(math.Log10(float64(sales)+1) / 4 * 100)
}

func recencyScore(age time.Duration) float64 {
	days := int(age.Hours() / 24)
	if age < 0 {
		return 0
	}
	if days >= recencyWindowDays {
		return 50
	}
	return math.Max(50, 100-(float64(days)/recencyWindowDays)*50)
}

func clamp(v float64) float64 {
	return math.Min(100, math.Max(0, v))
}

type catalogSeed struct {
	product models.Product
	ageDays int
}

var demoCatalog = []catalogSeed{
	{models.Product{ID: "prod_001", Name: "Wireless Noise-Cancelling Headphones", Description: "Premium over-ear headphones with active noise cancellation and 30-hour battery life", Price: 299.99, Popularity: 92, Rating: 4.7, SalesCount: 2450, Stock: 34, Category: "Electronics"}, 45},
	{models.Product{ID: "prod_002", Name: "Ergonomic Office Chair", Description: "Adjustable lumbar support, breathable mesh back, 360-degree swivel", Price: 349.99, Popularity: 78, Rating: 4.5, SalesCount: 890, Stock: 12, Category: "Furniture"}, 120},
	{models.Product{ID: "prod_003", Name: "4K Ultra HD Webcam", Description: "Professional webcam with auto-focus, dual microphones, and LED ring light", Price: 129.99, Popularity: 85, Rating: 4.3, SalesCount: 1560, Stock: 67, Category: "Electronics"}, 15},
	{models.Product{ID: "prod_004", Name: "Mechanical Gaming Keyboard", Description: "RGB backlit, Cherry MX switches, programmable macro keys", Price: 159.99, Popularity: 88, Rating: 4.8, SalesCount: 3200, Stock: 89, Category: "Electronics"}, 200},
	{models.Product{ID: "prod_005", Name: "Smart Watch Series X", Description: "Fitness tracking, heart rate monitor, GPS, 7-day battery, waterproof", Price: 399.99, Popularity: 95, Rating: 4.6, SalesCount: 5600, Stock: 23, Category: "Wearables"}, 8},
	{models.Product{ID: "prod_006", Name: "Portable SSD 2TB", Description: "High-speed external storage, USB-C 3.2, compact design", Price: 189.99, Popularity: 72, Rating: 4.4, SalesCount: 980, Stock: 156, Category: "Electronics"}, 90},
	{models.Product{ID: "prod_007", Name: "Wireless Mouse", Description: "Ergonomic design, 6 programmable buttons, 18-month battery life", Price: 49.99, Popularity: 81, Rating: 4.2, SalesCount: 4500, Stock: 234, Category: "Electronics"}, 300},
	{models.Product{ID: "prod_008", Name: "USB-C Docking Station", Description: "11-in-1 hub with 4K HDMI, SD card readers, 100W power delivery", Price: 89.99, Popularity: 76, Rating: 4.1, SalesCount: 720, Stock: 45, Category: "Electronics"}, 60},
	{models.Product{ID: "prod_009", Name: "Standing Desk Converter", Description: "Height-adjustable, fits dual monitors, easy gas spring lift", Price: 279.99, Popularity: 69, Rating: 4.3, SalesCount: 450, Stock: 8, Category: "Furniture"}, 180},
	{models.Product{ID: "prod_010", Name: "Laptop Backpack", Description: "Water-resistant, TSA-friendly, fits up to 17-inch laptops", Price: 59.99, Popularity: 83, Rating: 4.5, SalesCount: 2100, Stock: 178, Category: "Accessories"}, 40},
	{models.Product{ID: "prod_011", Name: "Monitor Light Bar", Description: "Space-saving desk lamp, auto-dimming, reduces screen glare", Price: 99.99, Popularity: 74, Rating: 4.6, SalesCount: 890, Stock: 67, Category: "Electronics"}, 25},
	{models.Product{ID: "prod_012", Name: "Bluetooth Speaker", Description: "360-degree sound, waterproof IPX7, 20-hour playtime", Price: 79.99, Popularity: 87, Rating: 4.4, SalesCount: 3400, Stock: 123, Category: "Electronics"}, 150},
	{models.Product{ID: "prod_013", Name: "Premium Coffee Maker", Description: "Programmable, thermal carafe, auto-shutoff, 12-cup capacity", Price: 149.99, Popularity: 70, Rating: 4.2, SalesCount: 670, Stock: 34, Category: "Appliances"}, 220},
	{models.Product{ID: "prod_014", Name: "Wireless Charging Pad", Description: "Fast 15W charging, compatible with all Qi devices, LED indicator", Price: 34.99, Popularity: 79, Rating: 4.0, SalesCount: 1890, Stock: 267, Category: "Electronics"}, 100},
	{models.Product{ID: "prod_015", Name: "HD Webcam with Tripod", Description: "1080p 60fps, wide-angle lens, built-in mic, plug-and-play", Price: 69.99, Popularity: 82, Rating: 4.3, SalesCount: 1240, Stock: 0, Category: "Electronics"}, 75},
}
