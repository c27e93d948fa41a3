package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_List(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":1,"name":"Nike Air Max 270 Running Shoes","price":89.99,"currency":"USD",
			 "category":"Footwear","brand":"Nike","rating":4.5,"review_count":1250,
			 "tags":["running","comfortable"]}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithHTTPClient(srv.Client()))
	products, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)

	p := products[0]
	assert.Equal(t, 1, p.ID)
	assert.Equal(t, "Nike Air Max 270 Running Shoes", p.Name)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("89.99")))
	assert.Equal(t, []string{"running", "comfortable"}, p.Tags)
	assert.Nil(t, p.SimilarityScore)
}

func TestClient_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/products/7", r.URL.Path)
		w.Write([]byte(`{"id":7,"name":"ASUS ZenBook 14 Laptop","price":649.99}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithHTTPClient(srv.Client()))
	p, err := c.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, p.ID)
	assert.Equal(t, "ASUS ZenBook 14 Laptop", p.Name)
}

func TestClient_SearchEncodesFilters(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/search", r.URL.Path)
		q := r.URL.Query()
		got = map[string]string{
			"q":         q.Get("q"),
			"limit":     q.Get("limit"),
			"category":  q.Get("category"),
			"min_price": q.Get("min_price"),
			"max_price": q.Get("max_price"),
		}
		json.NewEncoder(w).Encode(SearchResponse{
			Query:        q.Get("q"),
			TotalResults: 1,
			Products:     []Product{{ID: 3, Name: "Sony WH-1000XM5 Wireless Headphones"}},
		})
	}))
	defer srv.Close()

	minP := decimal.RequireFromString("50")
	maxP := decimal.RequireFromString("300")
	c := NewClient(srv.URL, WithHTTPClient(srv.Client()))
	resp, err := c.Search(context.Background(), SearchRequest{
		Query:    "wireless headphones",
		Limit:    4,
		Category: "Electronics",
		MinPrice: &minP,
		MaxPrice: &maxP,
	})
	require.NoError(t, err)

	assert.Equal(t, "wireless headphones", got["q"])
	assert.Equal(t, "4", got["limit"])
	assert.Equal(t, "Electronics", got["category"])
	assert.Equal(t, "50", got["min_price"])
	assert.Equal(t, "300", got["max_price"])

	assert.Equal(t, "wireless headphones", resp.Query)
	assert.Equal(t, 1, resp.TotalResults)
	require.Len(t, resp.Products, 1)
}

func TestClient_SearchPreservesServiceOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"query":"shoes","total_results":3,"products":[
			{"id":6,"similarity_score":0.91},
			{"id":1,"similarity_score":0.87},
			{"id":14,"similarity_score":0.42}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithHTTPClient(srv.Client()))
	resp, err := c.Search(context.Background(), SearchRequest{Query: "shoes"})
	require.NoError(t, err)

	ids := []int{}
	for _, p := range resp.Products {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int{6, 1, 14}, ids)
	require.NotNil(t, resp.Products[0].SimilarityScore)
	assert.InDelta(t, 0.91, *resp.Products[0].SimilarityScore, 1e-9)
}

func TestClient_NonOKStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithHTTPClient(srv.Client()))
	_, err := c.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestClient_ContextCancellation(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.URL, WithHTTPClient(srv.Client()))
	_, err := c.List(ctx)
	require.Error(t, err)
}
