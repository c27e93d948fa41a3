// Package server implements the storefront API service: the product catalog
// repository, lexical relevance search, the heuristic shopping assistant, the
// external-feed importer, and the fiber HTTP surface in front of them.
package server

import (
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"shopfront/internal/catalog"
)

// Repository is the in-memory product catalog. Single instance per service;
// reads and writes are serialized behind the mutex.
type Repository struct {
	mu       sync.RWMutex
	products []catalog.Product
}

// NewRepository creates a repository seeded with the given products.
func NewRepository(products []catalog.Product) *Repository {
	r := &Repository{}
	r.Replace(products)
	return r
}

// List returns all products in catalog order.
func (r *Repository) List() []catalog.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]catalog.Product, len(r.products))
	copy(out, r.products)
	return out
}

// Get returns the product with the given ID, or nil.
func (r *Repository) Get(id int) *catalog.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.products {
		if r.products[i].ID == id {
			p := r.products[i]
			return &p
		}
	}
	return nil
}

// Len returns the number of products.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.products)
}

// Replace swaps the whole catalog.
func (r *Repository) Replace(products []catalog.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = make([]catalog.Product, len(products))
	copy(r.products, products)
}

// Merge adds products whose IDs are not already present.
func (r *Repository) Merge(products []catalog.Product) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[int]bool, len(r.products))
	for _, p := range r.products {
		seen[p.ID] = true
	}
	added := 0
	for _, p := range products {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		r.products = append(r.products, p)
		added++
	}
	return added
}

// Categories returns the sorted set of product categories.
func (r *Repository) Categories() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set := map[string]bool{}
	for _, p := range r.products {
		set[p.Category] = true
	}
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Brands returns the sorted set of product brands.
func (r *Repository) Brands() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set := map[string]bool{}
	for _, p := range r.products {
		set[p.Brand] = true
	}
	out := make([]string, 0, len(set))
	for b := range set {
		out = append(out, b)
	}
	sort.Strings(out)
	return out
}

// Stats summarizes the catalog for the /api/stats endpoint.
type Stats struct {
	TotalProducts int             `json:"total_products"`
	AveragePrice  decimal.Decimal `json:"average_price"`
	PriceRange    PriceRange      `json:"price_range"`
	Categories    map[string]int  `json:"categories"`
	TopBrands     map[string]int  `json:"top_brands"`
}

// PriceRange is the min/max product price.
type PriceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// Stats computes catalog statistics.
func (r *Repository) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := Stats{
		TotalProducts: len(r.products),
		AveragePrice:  decimal.Zero,
		Categories:    map[string]int{},
		TopBrands:     map[string]int{},
	}
	if len(r.products) == 0 {
		return s
	}

	sum := decimal.Zero
	min := r.products[0].Price
	max := r.products[0].Price
	brandCounts := map[string]int{}
	for _, p := range r.products {
		sum = sum.Add(p.Price)
		if p.Price.LessThan(min) {
			min = p.Price
		}
		if p.Price.GreaterThan(max) {
			max = p.Price
		}
		s.Categories[p.Category]++
		brandCounts[p.Brand]++
	}
	s.AveragePrice = sum.Div(decimal.NewFromInt(int64(len(r.products)))).Round(2)
	s.PriceRange = PriceRange{Min: min, Max: max}

	// Top 10 brands by product count.
	type bc struct {
		brand string
		count int
	}
	ranked := make([]bc, 0, len(brandCounts))
	for b, n := range brandCounts {
		ranked = append(ranked, bc{b, n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].brand < ranked[j].brand
	})
	if len(ranked) > 10 {
		ranked = ranked[:10]
	}
	for _, b := range ranked {
		s.TopBrands[b.brand] = b.count
	}
	return s
}

// FilterOptions are the optional post-filters for Search.
type FilterOptions struct {
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

func (f FilterOptions) match(p catalog.Product) bool {
	if f.Category != "" && !strings.EqualFold(f.Category, p.Category) {
		return false
	}
	if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	return true
}

// Search runs the lexical relevance scorer over the catalog and applies the
// filters. Results are ordered by descending similarity; ties break on lower
// product ID so ranking is deterministic.
func (r *Repository) Search(query string, limit int, filters FilterOptions) []catalog.Product {
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	// A blank query browses the catalog instead of scoring it.
	if strings.TrimSpace(query) == "" {
		var out []catalog.Product
		for _, p := range r.products {
			if !filters.match(p) {
				continue
			}
			out = append(out, p)
			if len(out) == limit {
				break
			}
		}
		return out
	}

	type scored struct {
		product catalog.Product
		score   float64
	}
	var results []scored
	for _, p := range r.products {
		score := relevance(query, p)
		if score < minRelevance {
			continue
		}
		if !filters.match(p) {
			continue
		}
		results = append(results, scored{p, score})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		return results[i].product.ID < results[j].product.ID
	})
	if len(results) > limit {
		results = results[:limit]
	}

	out := make([]catalog.Product, len(results))
	for i, s := range results {
		p := s.product
		score := s.score
		p.SimilarityScore = &score
		out[i] = p
	}
	return out
}
