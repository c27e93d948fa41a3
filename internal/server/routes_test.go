package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopfront/internal/catalog"
)

func testApp(t *testing.T) *App {
	t.Helper()
	return NewApp(testRepo(t), nil, nil)
}

func doJSON(t *testing.T, app *App, method, target, body string, out any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Router().Test(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	if out != nil {
		data, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, out), "body: %s", data)
	}
	return resp
}

func TestRootAndHealth(t *testing.T) {
	app := testApp(t)

	var root map[string]any
	resp := doJSON(t, app, http.MethodGet, "/", "", &root)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, apiVersion, root["version"])

	var health map[string]any
	resp = doJSON(t, app, http.MethodGet, "/health", "", &health)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", health["status"])
	assert.EqualValues(t, len(SeedProducts()), health["total_products"])
}

func TestGetProducts(t *testing.T) {
	app := testApp(t)

	var products []catalog.Product
	resp := doJSON(t, app, http.MethodGet, "/api/products", "", &products)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, products, len(SeedProducts()))
	assert.Equal(t, "Nike Air Max 270 Running Shoes", products[0].Name)
}

func TestGetProduct(t *testing.T) {
	app := testApp(t)

	var product catalog.Product
	resp := doJSON(t, app, http.MethodGet, "/api/products/2", "", &product)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Apple MacBook Air M2", product.Name)
	assert.Equal(t, "1199", product.Price.String())
}

func TestGetProduct_NotFound(t *testing.T) {
	app := testApp(t)

	var body map[string]any
	resp := doJSON(t, app, http.MethodGet, "/api/products/9999", "", &body)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Product not found", body["error"])
}

func TestGetProduct_BadID(t *testing.T) {
	app := testApp(t)
	resp := doJSON(t, app, http.MethodGet, "/api/products/banana", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSearchEndpoint(t *testing.T) {
	app := testApp(t)

	var body catalog.SearchResponse
	resp := doJSON(t, app, http.MethodGet, "/api/search?q=running+shoes&limit=3", "", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "running shoes", body.Query)
	assert.Equal(t, len(body.Products), body.TotalResults)
	assert.LessOrEqual(t, len(body.Products), 3)
	require.NotEmpty(t, body.Products)
	require.NotNil(t, body.Products[0].SimilarityScore)
}

func TestSearchEndpoint_Filters(t *testing.T) {
	app := testApp(t)

	var body catalog.SearchResponse
	resp := doJSON(t, app, http.MethodGet,
		"/api/search?q=comfortable&category=Footwear&max_price=50", "", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, body.Products)
	for _, p := range body.Products {
		assert.Equal(t, "Footwear", p.Category)
		assert.True(t, p.Price.LessThanOrEqual(decimalMustParse("50")))
	}
}

func TestSearchEndpoint_MissingQuery(t *testing.T) {
	app := testApp(t)
	resp := doJSON(t, app, http.MethodGet, "/api/search", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSearchEndpoint_BadPrice(t *testing.T) {
	app := testApp(t)
	resp := doJSON(t, app, http.MethodGet, "/api/search?q=shoes&min_price=cheap", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSearchEndpoint_ZeroResultsStillOK(t *testing.T) {
	app := testApp(t)

	var body catalog.SearchResponse
	resp := doJSON(t, app, http.MethodGet, "/api/search?q=zzzz+nonexistent", "", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Zero(t, body.TotalResults)
	assert.NotNil(t, body.Products)
	assert.Empty(t, body.Products)
}

func TestChatEndpoint(t *testing.T) {
	app := testApp(t)

	var reply ChatReply
	resp := doJSON(t, app, http.MethodPost, "/api/chat",
		`{"message":"recommend a good laptop for students","user_id":"u-1"}`, &reply)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "recommendation", reply.Intent)
	assert.NotEmpty(t, reply.Products)
}

func TestChatEndpoint_BlankMessage(t *testing.T) {
	app := testApp(t)

	var body map[string]any
	resp := doJSON(t, app, http.MethodPost, "/api/chat", `{"message":"   "}`, &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "error", body["intent"])
	assert.Equal(t, "Message cannot be empty", body["error"])
}

func TestChatEndpoint_BadBody(t *testing.T) {
	app := testApp(t)
	resp := doJSON(t, app, http.MethodPost, "/api/chat", `{not json`, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCategoriesAndBrandsEndpoints(t *testing.T) {
	app := testApp(t)

	var categories struct {
		Categories []string `json:"categories"`
		Total      int      `json:"total_categories"`
	}
	resp := doJSON(t, app, http.MethodGet, "/api/categories", "", &categories)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, len(categories.Categories), categories.Total)
	assert.Contains(t, categories.Categories, "Electronics")

	var brands struct {
		Brands []string `json:"brands"`
		Total  int      `json:"total_brands"`
	}
	resp = doJSON(t, app, http.MethodGet, "/api/brands", "", &brands)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, len(brands.Brands), brands.Total)
}

func TestStatsEndpoint(t *testing.T) {
	app := testApp(t)

	var stats Stats
	resp := doJSON(t, app, http.MethodGet, "/api/stats", "", &stats)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, len(SeedProducts()), stats.TotalProducts)
	assert.False(t, stats.AveragePrice.IsZero())
}

func TestRefreshEndpoint(t *testing.T) {
	feed := httptest.NewServer(jsonHandler(fakeStoreFeed))
	defer feed.Close()

	repo := testRepo(t)
	im := NewImporter(feed.Client(), nil)
	im.fakeStoreURL = feed.URL
	im.dummyJSONURL = feed.URL + "/missing" // 404s, tolerated
	app := NewApp(repo, im, nil)

	before := repo.Len()

	var result catalog.RefreshResult
	resp := doJSON(t, app, http.MethodGet, "/api/refresh-products", "", &result)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "success", result.Status)
	assert.Equal(t, before+2, result.TotalProducts)
}

func TestRefreshEndpoint_NoImporter(t *testing.T) {
	app := testApp(t)
	resp := doJSON(t, app, http.MethodGet, "/api/refresh-products", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestDealOfTheDay(t *testing.T) {
	app := testApp(t)

	var body struct {
		Product catalog.Product `json:"product"`
	}
	resp := doJSON(t, app, http.MethodGet, "/api/deal-of-the-day", "", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.GreaterOrEqual(t, body.Product.Rating, 4.0)

	// Cheapest well-rated seed product.
	assert.Equal(t, "Hydro Flask Water Bottle", body.Product.Name)
}

func TestSurprise(t *testing.T) {
	app := testApp(t)

	var body struct {
		Product catalog.Product `json:"product"`
	}
	resp := doJSON(t, app, http.MethodGet, "/api/surprise", "", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotZero(t, body.Product.ID)
}

func decimalMustParse(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
