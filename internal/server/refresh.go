package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"shopfront/internal/catalog"
)

const (
	fakeStoreURL = "https://fakestoreapi.com/products"
	dummyJSONURL = "https://dummyjson.com/products?limit=30"

	// ID offsets keep feed products clear of the seed catalog and of
	// each other.
	fakeStoreIDOffset = 100
	dummyJSONIDOffset = 200

	maxFeedBody = 8 << 20
)

// Importer pulls product feeds from public APIs and normalizes them
// into the catalog schema.
type Importer struct {
	client       *http.Client
	log          *zap.Logger
	fakeStoreURL string
	dummyJSONURL string
}

func NewImporter(client *http.Client, log *zap.Logger) *Importer {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Importer{
		client:       client,
		log:          log,
		fakeStoreURL: fakeStoreURL,
		dummyJSONURL: dummyJSONURL,
	}
}

// FetchAll pulls every feed concurrently, normalizes the results, and
// drops duplicates by name. Feed failures are logged and skipped; an
// error is returned only when every feed fails.
func (im *Importer) FetchAll(ctx context.Context) ([]catalog.Product, error) {
	var fakeStore, dummy []catalog.Product

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		products, err := im.fetchFakeStore(ctx)
		if err != nil {
			im.log.Warn("fake store feed failed", zap.Error(err))
			return nil
		}
		fakeStore = products
		return nil
	})
	g.Go(func() error {
		products, err := im.fetchDummyJSON(ctx)
		if err != nil {
			im.log.Warn("dummyjson feed failed", zap.Error(err))
			return nil
		}
		dummy = products
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	combined := append(fakeStore, dummy...)
	if len(combined) == 0 {
		return nil, fmt.Errorf("all product feeds failed")
	}

	unique := dedupeByName(combined)
	im.log.Info("product feeds fetched",
		zap.Int("fake_store", len(fakeStore)),
		zap.Int("dummyjson", len(dummy)),
		zap.Int("unique", len(unique)))
	return unique, nil
}

type fakeStoreProduct struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Rating      struct {
		Rate  float64 `json:"rate"`
		Count int     `json:"count"`
	} `json:"rating"`
}

func (im *Importer) fetchFakeStore(ctx context.Context) ([]catalog.Product, error) {
	var raw []fakeStoreProduct
	if err := im.getJSON(ctx, im.fakeStoreURL, &raw); err != nil {
		return nil, err
	}

	products := make([]catalog.Product, 0, len(raw))
	for _, p := range raw {
		products = append(products, catalog.Product{
			ID:          p.ID + fakeStoreIDOffset,
			Name:        p.Title,
			Description: p.Description,
			Price:       p.Price,
			Currency:    "USD",
			Category:    formatCategory(p.Category),
			Brand:       extractBrand(p.Title),
			ImageURL:    p.Image,
			Rating:      p.Rating.Rate,
			ReviewCount: p.Rating.Count,
			Tags:        generateTags(p.Title, p.Description, p.Category),
		})
	}
	return products, nil
}

type dummyJSONProduct struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Brand       string          `json:"brand"`
	Thumbnail   string          `json:"thumbnail"`
	Rating      float64         `json:"rating"`
}

func (im *Importer) fetchDummyJSON(ctx context.Context) ([]catalog.Product, error) {
	var raw struct {
		Products []dummyJSONProduct `json:"products"`
	}
	if err := im.getJSON(ctx, im.dummyJSONURL, &raw); err != nil {
		return nil, err
	}

	products := make([]catalog.Product, 0, len(raw.Products))
	for _, p := range raw.Products {
		brand := p.Brand
		if brand == "" {
			brand = extractBrand(p.Title)
		}
		products = append(products, catalog.Product{
			ID:          p.ID + dummyJSONIDOffset,
			Name:        p.Title,
			Description: p.Description,
			Price:       p.Price,
			Currency:    "USD",
			Category:    formatCategory(p.Category),
			Brand:       brand,
			ImageURL:    p.Thumbnail,
			Rating:      p.Rating,
			ReviewCount: syntheticReviewCount(p.ID),
			Tags:        generateTags(p.Title, p.Description, p.Category),
		})
	}
	return products, nil
}

func (im *Importer) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := im.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: HTTP %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBody))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

// syntheticReviewCount fills in review counts for feeds that omit
// them. Derived from the ID so refreshes are stable.
func syntheticReviewCount(id int) int {
	return 50 + (id*37)%4951
}

var categoryAliases = map[string]string{
	"men's clothing":   "Clothing",
	"women's clothing": "Clothing",
	"jewelery":         "Jewelry",
	"electronics":      "Electronics",
	"smartphones":      "Electronics",
	"laptops":          "Electronics",
	"home-decoration":  "Home & Garden",
	"furniture":        "Furniture",
	"clothes":          "Clothing",
	"shoes":            "Footwear",
	"miscellaneous":    "General",
}

func formatCategory(category string) string {
	if category == "" {
		return "General"
	}
	if mapped, ok := categoryAliases[strings.ToLower(category)]; ok {
		return mapped
	}
	return titleWords(category)
}

func titleWords(s string) string {
	fields := strings.Fields(strings.ToLower(s))
	for i, f := range fields {
		fields[i] = strings.ToUpper(f[:1]) + f[1:]
	}
	return strings.Join(fields, " ")
}

var knownBrands = map[string]string{
	"apple": "Apple", "samsung": "Samsung", "nike": "Nike", "adidas": "Adidas",
	"sony": "Sony", "hp": "HP", "dell": "Dell", "lenovo": "Lenovo",
	"asus": "ASUS", "acer": "Acer", "canon": "Canon", "nikon": "Nikon",
	"bose": "Bose", "jbl": "JBL", "beats": "Beats", "sennheiser": "Sennheiser",
}

func extractBrand(title string) string {
	lower := strings.ToLower(title)
	for key, name := range knownBrands {
		if strings.Contains(lower, key) {
			return name
		}
	}
	fields := strings.Fields(title)
	if len(fields) == 0 {
		return "Generic"
	}
	return titleWords(fields[0])
}

var tagKeywords = []struct {
	tag      string
	keywords []string
}{
	{"wireless", []string{"wireless", "bluetooth", "cordless"}},
	{"portable", []string{"portable", "compact", "travel", "lightweight"}},
	{"premium", []string{"premium", "luxury", "high-end", "professional"}},
	{"budget", []string{"cheap", "affordable", "budget", "value"}},
	{"gaming", []string{"gaming", "gamer", "esports", "rgb"}},
	{"fitness", []string{"fitness", "sport", "workout", "exercise", "running"}},
	{"smart", []string{"smart", "ai", "intelligent", "connected"}},
	{"waterproof", []string{"waterproof", "water-resistant", "splash"}},
	{"fast", []string{"fast", "quick", "speed", "rapid"}},
	{"comfortable", []string{"comfortable", "soft", "cozy", "ergonomic"}},
}

func generateTags(title, description, category string) []string {
	text := strings.ToLower(title + " " + description + " " + category)

	var tags []string
	for _, tk := range tagKeywords {
		for _, kw := range tk.keywords {
			if strings.Contains(text, kw) {
				tags = append(tags, tk.tag)
				break
			}
		}
	}

	if category != "" {
		slug := strings.ToLower(category)
		slug = strings.ReplaceAll(slug, " & ", "-")
		slug = strings.ReplaceAll(slug, " ", "-")
		found := false
		for _, t := range tags {
			if t == slug {
				found = true
				break
			}
		}
		if !found {
			tags = append(tags, slug)
		}
	}

	if len(tags) > 5 {
		tags = tags[:5]
	}
	return tags
}

var nameNormalizer = regexp.MustCompile(`[^a-zA-Z0-9\s]`)

// dedupeByName keeps the first product seen for each normalized name.
func dedupeByName(products []catalog.Product) []catalog.Product {
	seen := make(map[string]struct{}, len(products))
	unique := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		key := nameNormalizer.ReplaceAllString(strings.ToLower(p.Name), "")
		key = strings.Join(strings.Fields(key), " ")
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, p)
	}
	return unique
}
