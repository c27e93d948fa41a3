// Package catalog defines the product model shared by the storefront client
// and the API service, plus the HTTP client for the catalog endpoints.
package catalog

import (
	"github.com/shopspring/decimal"
)

func init() {
	// The storefront wire format carries prices as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is a catalog item. The client treats products as read-only values;
// only the API service ever constructs or mutates them.
type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Category    string          `json:"category"`
	Brand       string          `json:"brand"`
	ImageURL    string          `json:"image_url"`
	Rating      float64         `json:"rating"`
	ReviewCount int             `json:"review_count"`
	Tags        []string        `json:"tags"`

	// SimilarityScore is set only on search results, in [0,1].
	SimilarityScore *float64 `json:"similarity_score,omitempty"`
}

// SearchRequest carries a search query plus optional post-filters.
type SearchRequest struct {
	Query    string
	Limit    int
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// SearchResponse is the wire shape of a search result set. Products arrive
// ordered by relevance; consumers must preserve that order.
type SearchResponse struct {
	Query        string    `json:"query"`
	TotalResults int       `json:"total_results"`
	Products     []Product `json:"products"`
}

// RefreshResult reports the outcome of a catalog refresh from external feeds.
type RefreshResult struct {
	Message       string `json:"message"`
	TotalProducts int    `json:"total_products"`
	Status        string `json:"status"`
}
