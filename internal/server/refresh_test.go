package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fakeStoreFeed = `[
  {
    "id": 1,
    "title": "Fjallraven Foldsack Backpack",
    "price": 109.95,
    "description": "Your perfect pack for everyday use and walks in the forest",
    "category": "men's clothing",
    "image": "https://fakestoreapi.com/img/81fPKd-2AYL.jpg",
    "rating": {"rate": 3.9, "count": 120}
  },
  {
    "id": 2,
    "title": "Samsung 49-Inch Gaming Monitor",
    "price": 999.99,
    "description": "Super ultrawide curved gaming monitor",
    "category": "electronics",
    "image": "https://fakestoreapi.com/img/monitor.jpg",
    "rating": {"rate": 4.2, "count": 340}
  }
]`

const dummyJSONFeed = `{
  "products": [
    {
      "id": 1,
      "title": "Essence Mascara Lash Princess",
      "description": "Popular mascara known for its volumizing effects",
      "price": 9.99,
      "rating": 4.94,
      "brand": "Essence",
      "category": "beauty",
      "thumbnail": "https://dummyjson.com/image/mascara.png"
    },
    {
      "id": 2,
      "title": "Samsung 49-Inch Gaming Monitor",
      "description": "Duplicate entry from another feed",
      "price": 989.00,
      "rating": 4.1,
      "category": "electronics",
      "thumbnail": "https://dummyjson.com/image/monitor.png"
    }
  ]
}`

func testImporter(t *testing.T, fakeStore, dummy http.HandlerFunc) *Importer {
	t.Helper()
	fs := httptest.NewServer(fakeStore)
	t.Cleanup(fs.Close)
	dj := httptest.NewServer(dummy)
	t.Cleanup(dj.Close)

	im := NewImporter(fs.Client(), nil)
	im.fakeStoreURL = fs.URL
	im.dummyJSONURL = dj.URL
	return im
}

func jsonHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}
}

func TestFetchAll_NormalizesAndOffsetsIDs(t *testing.T) {
	im := testImporter(t, jsonHandler(fakeStoreFeed), jsonHandler(dummyJSONFeed))

	products, err := im.FetchAll(context.Background())
	require.NoError(t, err)

	byID := make(map[int]int)
	for i, p := range products {
		byID[p.ID] = i
	}

	// Fake store IDs shift by 100, dummyjson by 200.
	require.Contains(t, byID, 101)
	require.Contains(t, byID, 102)
	require.Contains(t, byID, 201)

	backpack := products[byID[101]]
	assert.Equal(t, "Fjallraven Foldsack Backpack", backpack.Name)
	assert.Equal(t, "Clothing", backpack.Category)
	assert.Equal(t, "Fjallraven", backpack.Brand)
	assert.Equal(t, "109.95", backpack.Price.String())
	assert.Equal(t, 120, backpack.ReviewCount)

	monitor := products[byID[102]]
	assert.Equal(t, "Samsung", monitor.Brand)
	assert.Equal(t, "Electronics", monitor.Category)

	mascara := products[byID[201]]
	assert.Equal(t, "Essence", mascara.Brand)
	assert.Positive(t, mascara.ReviewCount)
}

func TestFetchAll_DropsDuplicateNames(t *testing.T) {
	im := testImporter(t, jsonHandler(fakeStoreFeed), jsonHandler(dummyJSONFeed))

	products, err := im.FetchAll(context.Background())
	require.NoError(t, err)

	// The Samsung monitor appears in both feeds; the fake store copy wins.
	require.Len(t, products, 3)
	for _, p := range products {
		assert.NotEqual(t, 202, p.ID)
	}
}

func TestFetchAll_ToleratesOneFeedFailure(t *testing.T) {
	im := testImporter(t,
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		jsonHandler(dummyJSONFeed))

	products, err := im.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, 201, products[0].ID)
}

func TestFetchAll_AllFeedsFailing(t *testing.T) {
	fail := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}
	im := testImporter(t, fail, fail)

	_, err := im.FetchAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all product feeds failed")
}

func TestFormatCategory(t *testing.T) {
	assert.Equal(t, "Clothing", formatCategory("men's clothing"))
	assert.Equal(t, "Jewelry", formatCategory("jewelery"))
	assert.Equal(t, "Electronics", formatCategory("smartphones"))
	assert.Equal(t, "Footwear", formatCategory("SHOES"))
	assert.Equal(t, "General", formatCategory(""))
	assert.Equal(t, "Garden Tools", formatCategory("garden tools"))
}

func TestExtractBrand(t *testing.T) {
	assert.Equal(t, "Sony", extractBrand("SONY Bravia 55-inch TV"))
	assert.Equal(t, "Apple", extractBrand("Shiny apple iphone case"))
	assert.Equal(t, "Mystery", extractBrand("mystery box deluxe"))
	assert.Equal(t, "Generic", extractBrand(""))
}

func TestGenerateTags(t *testing.T) {
	tags := generateTags(
		"Wireless Gaming Headset",
		"lightweight bluetooth headset with fast charging",
		"Electronics")

	assert.Contains(t, tags, "wireless")
	assert.Contains(t, tags, "gaming")
	assert.Contains(t, tags, "portable")
	assert.Contains(t, tags, "electronics")
	assert.LessOrEqual(t, len(tags), 5)
}

func TestSyntheticReviewCount_Stable(t *testing.T) {
	assert.Equal(t, syntheticReviewCount(7), syntheticReviewCount(7))
	assert.GreaterOrEqual(t, syntheticReviewCount(1), 50)
}
