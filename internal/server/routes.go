package server

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"shopfront/internal/catalog"
)

const apiVersion = "2.0.0"

// App is the storefront API service.
type App struct {
	fiber     *fiber.App
	repo      *Repository
	responder *Responder
	importer  *Importer
	log       *zap.Logger
}

// NewApp wires the fiber app, routes, and middleware around the given
// repository.
func NewApp(repo *Repository, importer *Importer, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	f := fiber.New(fiber.Config{
		AppName:               "shopfront " + apiVersion,
		DisableStartupMessage: true,
	})
	f.Use(recover.New())
	f.Use(cors.New())

	a := &App{
		fiber:     f,
		repo:      repo,
		responder: NewResponder(repo, log),
		importer:  importer,
		log:       log,
	}
	a.registerRoutes()
	return a
}

// Router exposes the underlying fiber app, used by tests and by the
// serve command.
func (a *App) Router() *fiber.App { return a.fiber }

func (a *App) Listen(addr string) error { return a.fiber.Listen(addr) }

func (a *App) Shutdown() error { return a.fiber.Shutdown() }

func (a *App) registerRoutes() {
	a.fiber.Get("/", a.handleRoot)
	a.fiber.Get("/health", a.handleHealth)

	api := a.fiber.Group("/api")
	api.Get("/products", a.handleProducts)
	api.Get("/products/:id", a.handleProduct)
	api.Get("/search", a.handleSearch)
	api.Post("/chat", a.handleChat)
	api.Get("/categories", a.handleCategories)
	api.Get("/brands", a.handleBrands)
	api.Get("/stats", a.handleStats)
	api.Get("/refresh-products", a.handleRefresh)
	api.Get("/surprise", a.handleSurprise)
	api.Get("/deal-of-the-day", a.handleDeal)
}

func (a *App) handleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "AI Shopping Assistant API is running!",
		"version": apiVersion,
		"features": []string{
			"Product search with relevance ranking",
			"Real product data from multiple sources",
			"Intelligent chat assistant",
			"Product recommendations",
			"Cart management",
		},
	})
}

func (a *App) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":         "healthy",
		"total_products": a.repo.Len(),
		"chat_enabled":   true,
	})
}

func (a *App) handleProducts(c *fiber.Ctx) error {
	return c.JSON(a.repo.List())
}

func (a *App) handleProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid product ID",
		})
	}
	product := a.repo.Get(id)
	if product == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}
	return c.JSON(product)
}

func (a *App) handleSearch(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Query parameter 'q' is required",
		})
	}
	limit := c.QueryInt("limit", defaultSearchLimit)

	filters := FilterOptions{Category: c.Query("category")}
	var badPrice bool
	filters.MinPrice, badPrice = parsePriceParam(c.Query("min_price"))
	if badPrice {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid min_price",
		})
	}
	filters.MaxPrice, badPrice = parsePriceParam(c.Query("max_price"))
	if badPrice {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid max_price",
		})
	}

	products := a.repo.Search(query, limit, filters)
	if products == nil {
		products = []catalog.Product{}
	}
	return c.JSON(catalog.SearchResponse{
		Query:        query,
		TotalResults: len(products),
		Products:     products,
	})
}

func (a *App) handleChat(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	if strings.TrimSpace(req.Message) == "" {
		return c.JSON(fiber.Map{
			"error":    "Message cannot be empty",
			"message":  "Please enter a message to chat with me!",
			"products": []catalog.Product{},
			"intent":   "error",
		})
	}
	return c.JSON(a.responder.Respond(req))
}

func (a *App) handleCategories(c *fiber.Ctx) error {
	categories := a.repo.Categories()
	return c.JSON(fiber.Map{
		"categories":       categories,
		"total_categories": len(categories),
	})
}

func (a *App) handleBrands(c *fiber.Ctx) error {
	brands := a.repo.Brands()
	return c.JSON(fiber.Map{
		"brands":       brands,
		"total_brands": len(brands),
	})
}

func (a *App) handleStats(c *fiber.Ctx) error {
	return c.JSON(a.repo.Stats())
}

func (a *App) handleRefresh(c *fiber.Ctx) error {
	if a.importer == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error":  "Product feeds are not configured",
			"status": "error",
		})
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), 30*time.Second)
	defer cancel()

	feed, err := a.importer.FetchAll(ctx)
	if err != nil {
		a.log.Error("product refresh failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":  "Failed to refresh products: " + err.Error(),
			"status": "error",
		})
	}

	added := a.repo.Merge(feed)
	a.log.Info("products refreshed", zap.Int("added", added))
	return c.JSON(catalog.RefreshResult{
		Message:       "Products refreshed successfully",
		TotalProducts: a.repo.Len(),
		Status:        "success",
	})
}

func (a *App) handleSurprise(c *fiber.Ctx) error {
	products := a.repo.List()
	if len(products) == 0 {
		return c.JSON(fiber.Map{"message": "No products available for surprises!"})
	}
	pick := products[rand.IntN(len(products))]
	return c.JSON(fiber.Map{
		"message": "🎉 Surprise! Here's a random product you might like:",
		"product": pick,
		"why":     "Sometimes the best discoveries are unexpected! ✨",
	})
}

func (a *App) handleDeal(c *fiber.Ctx) error {
	var deal *catalog.Product
	for _, p := range a.repo.List() {
		if p.Rating < 4.0 {
			continue
		}
		if deal == nil || p.Price.LessThan(deal.Price) {
			deal = &p
		}
	}
	if deal == nil {
		return c.JSON(fiber.Map{"message": "No deals available today"})
	}
	return c.JSON(fiber.Map{
		"message":     "💎 Today's Best Deal - Great Quality, Great Price!",
		"product":     deal,
		"deal_score":  fmt.Sprintf("%.1f/5 stars at just $%s", deal.Rating, deal.Price.StringFixed(2)),
		"savings_tip": "High-rated product at an amazing price! 🔥",
	})
}

func parsePriceParam(raw string) (*decimal.Decimal, bool) {
	if raw == "" {
		return nil, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, true
	}
	return &d, false
}
