package models

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
)

type Product struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Price        float64  `json:"price"`
	Popularity   int      `json:"popularity"`
	Rating       float64  `json:"rating"`
	SalesCount   int      `json:"sales_count"`
	Stock        int      `json:"stock"`
	Category     string   `json:"category"`
	ImageURL     string   `json:"image_url,omitempty"`
	Rank         *int     `json:"rank,omitempty"`
	RankingScore *float64 `json:"ranking_score,omitempty"`
}

func (p Product) Validate() error {
	if p.ID == "" {
		return errors.New("product has no id")
	}
	if p.Name == "" {
		return fmt.Errorf("product %s has no name", p.ID)
	}
	return nil
}

// ProductList is the body of GET /products and GET /products/search/{term}.
type ProductList []Product

func (l ProductList) Validate() error {
	if l == nil {
		return errors.New("product list is missing")
	}
	for _, p := range l {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type SortBy string

const (
	SortByRanking    SortBy = "ranking"
	SortByPrice      SortBy = "price"
	SortByPopularity SortBy = "popularity"
	SortByRating     SortBy = "rating"
)

func (s SortBy) Valid() bool {
	switch s {
	case SortByRanking, SortByPrice, SortByPopularity, SortByRating:
		return true
	}
	return false
}

// ProductFilter holds the optional listing options. Zero values mean "unset"
// and are left out of the outbound query.
type ProductFilter struct {
	SortBy    SortBy
	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64
}

func (f ProductFilter) Validate() error {
	if f.SortBy != "" && !f.SortBy.Valid() {
		return fmt.Errorf("unknown sort order %q", f.SortBy)
	}
	for _, opt := range []struct {
		name  string
		value *float64
	}{{"min_price", f.MinPrice}, {"max_price", f.MaxPrice}, {"min_rating", f.MinRating}} {
		if opt.value != nil && (math.IsNaN(*opt.value) || math.IsInf(*opt.value, 0)) {
			return fmt.Errorf("%s must be a finite number", opt.name)
		}
	}
	return nil
}

func (f ProductFilter) Query() url.Values {
	q := url.Values{}
	if f.SortBy != "" {
		q.Set("sort_by", string(f.SortBy))
	}
	if f.MinPrice != nil {
		q.Set("min_price", formatFloat(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		q.Set("max_price", formatFloat(*f.MaxPrice))
	}
	if f.MinRating != nil {
		q.Set("min_rating", formatFloat(*f.MinRating))
	}
	return q
}

// ParseProductFilter is the inverse of ProductFilter.Query.
func ParseProductFilter(q url.Values) (ProductFilter, error) {
	var f ProductFilter
	if v := q.Get("sort_by"); v != "" {
		f.SortBy = SortBy(v)
	}

	var err error
	if f.MinPrice, err = parseOptionalFloat(q, "min_price"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = parseOptionalFloat(q, "max_price"); err != nil {
		return f, err
	}
	if f.MinRating, err = parseOptionalFloat(q, "min_rating"); err != nil {
		return f, err
	}
	return f, nil
}

func parseOptionalFloat(q url.Values, key string) (*float64, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%s must be a number", key)
	}
	return &v, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
