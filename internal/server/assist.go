package server

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"shopfront/internal/catalog"
)

// ChatRequest is the body of a chat turn from a client.
type ChatRequest struct {
	Message string `json:"message"`
	UserID  string `json:"user_id,omitempty"`
}

// ChatReply is the assistant's answer to one chat turn.
type ChatReply struct {
	Message  string            `json:"message"`
	Products []catalog.Product `json:"products"`
	Intent   string            `json:"intent"`
}

// Responder turns chat messages into replies backed by catalog search.
type Responder struct {
	repo *Repository
	log  *zap.Logger
}

func NewResponder(repo *Repository, log *zap.Logger) *Responder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Responder{repo: repo, log: log}
}

// Respond classifies the message and builds a reply for its intent
// family. Every reply carries the products it mentions so clients can
// render cards inline.
func (r *Responder) Respond(req ChatRequest) ChatReply {
	intent := classifyIntent(req.Message)
	r.log.Debug("chat turn",
		zap.String("intent", string(intent)),
		zap.String("user", req.UserID))

	switch intent {
	case intentProductSearch:
		return r.respondSearch(req.Message)
	case intentComparison:
		return r.respondComparison(req.Message)
	case intentRecommendation:
		return r.respondRecommendation(req.Message)
	case intentQuestion:
		return r.respondQuestion(req.Message)
	default:
		return r.respondGeneral(req.Message)
	}
}

func (r *Responder) respondSearch(message string) ChatReply {
	query := extractSearchTerms(message)
	budget := extractBudget(message)

	products := r.repo.Search(query, 6, FilterOptions{})
	products = filterByBudget(products, budget)

	if len(products) == 0 {
		return ChatReply{
			Message: fmt.Sprintf("I couldn't find any products matching '%s'. "+
				"Try a different search term or check out our popular items!", query),
			Products: []catalog.Product{},
			Intent:   string(intentProductSearch),
		}
	}

	var b strings.Builder
	top := products[0]
	fmt.Fprintf(&b, "Great! I found some excellent options for '%s':\n\n", query)
	fmt.Fprintf(&b, "🥇 **Top match**: %s\n", top.Name)
	fmt.Fprintf(&b, "💰 $%s | ⭐ %.1f/5\n", top.Price.StringFixed(2), top.Rating)
	if top.SimilarityScore != nil {
		fmt.Fprintf(&b, "🎯 %d%% match to your search\n\n", int(*top.SimilarityScore*100))
	}
	if budget != nil {
		fmt.Fprintf(&b, "💡 Within your $%s budget: %d options found!\n\n",
			budget.StringFixed(0), len(products))
	}
	if len(products) > 1 {
		b.WriteString("Here are more great options below. Want me to compare any of these " +
			"or help you narrow down your choice? 🤔")
	}

	return ChatReply{
		Message:  b.String(),
		Products: capProducts(products, 4),
		Intent:   string(intentProductSearch),
	}
}

func (r *Responder) respondComparison(message string) ChatReply {
	products := r.repo.Search(extractSearchTerms(message), 4, FilterOptions{})

	if len(products) < 2 {
		return ChatReply{
			Message: "I need more specific product names to make a good comparison. " +
				"What products are you thinking about?",
			Products: capProducts(products, 3),
			Intent:   string(intentComparison),
		}
	}

	var b strings.Builder
	b.WriteString("Here are some great options to compare:\n\n")
	for i, p := range capProducts(products, 3) {
		fmt.Fprintf(&b, "%d. **%s** - $%s\n", i+1, p.Name, p.Price.StringFixed(2))
		fmt.Fprintf(&b, "   Rating: %.1f/5 ⭐ | %s\n\n", p.Rating, p.Brand)
	}
	b.WriteString("Would you like me to highlight the key differences between any of these?")

	return ChatReply{
		Message:  b.String(),
		Products: capProducts(products, 3),
		Intent:   string(intentComparison),
	}
}

func (r *Responder) respondRecommendation(message string) ChatReply {
	products := r.repo.Search(extractSearchTerms(message), 5, FilterOptions{})
	products = filterByBudget(products, extractBudget(message))

	if len(products) == 0 {
		return ChatReply{
			Message: "I'd love to help with recommendations! Could you tell me more " +
				"about what you're looking for and your budget?",
			Products: []catalog.Product{},
			Intent:   string(intentRecommendation),
		}
	}

	best := products[0]
	var b strings.Builder
	fmt.Fprintf(&b, "Based on your needs, I'd recommend the **%s** by %s.\n\n", best.Name, best.Brand)
	fmt.Fprintf(&b, "💰 Price: $%s\n", best.Price.StringFixed(2))
	fmt.Fprintf(&b, "⭐ Rating: %.1f/5 (%d reviews)\n\n", best.Rating, best.ReviewCount)
	fmt.Fprintf(&b, "Why it's great: %s...\n\n", truncate(best.Description, 100))
	b.WriteString("Here are a few other excellent options:")

	return ChatReply{
		Message:  b.String(),
		Products: capProducts(products, 4),
		Intent:   string(intentRecommendation),
	}
}

func (r *Responder) respondQuestion(message string) ChatReply {
	products := r.repo.Search(extractSearchTerms(message), 3, FilterOptions{})

	if len(products) == 0 {
		return ChatReply{
			Message: "I'd be happy to answer questions about our products! " +
				"What specifically would you like to know?",
			Products: []catalog.Product{},
			Intent:   string(intentQuestion),
		}
	}

	p := products[0]
	var b strings.Builder
	fmt.Fprintf(&b, "About the **%s**:\n\n", p.Name)
	fmt.Fprintf(&b, "💰 Price: $%s\n", p.Price.StringFixed(2))
	fmt.Fprintf(&b, "⭐ Customer rating: %.1f/5\n", p.Rating)
	fmt.Fprintf(&b, "📦 Category: %s\n", p.Category)
	fmt.Fprintf(&b, "🏷️ Brand: %s\n\n", p.Brand)
	b.WriteString(p.Description)

	return ChatReply{
		Message:  b.String(),
		Products: capProducts(products, 2),
		Intent:   string(intentQuestion),
	}
}

func (r *Responder) respondGeneral(message string) ChatReply {
	lower := strings.ToLower(message)

	var text string
	switch {
	case containsAny(lower, "hello", "hi", "hey", "good morning", "good afternoon"):
		text = "Hello! 👋 I'm your AI shopping assistant. I can help you:\n\n" +
			"🔍 Find products: 'Find wireless headphones under $200'\n" +
			"💡 Get recommendations: 'Recommend a good laptop for students'\n" +
			"⚖️ Compare products: 'Compare iPhone vs Samsung phones'\n" +
			"❓ Answer questions: 'How good is the Sony WH-1000XM5?'\n\n" +
			"What can I help you find today?"
	case containsAny(lower, "help", "assist", "support"):
		text = "I'm here to help! You can ask me to:\n\n" +
			"• Find specific products\n" +
			"• Recommend items within your budget\n" +
			"• Compare different options\n" +
			"• Answer questions about products\n\n" +
			"Just tell me what you're looking for!"
	default:
		text = "I'm your AI shopping assistant! I specialize in helping you find " +
			"and compare products. What are you shopping for today? 🛍️"
	}

	return ChatReply{
		Message:  text,
		Products: []catalog.Product{},
		Intent:   string(intentGeneral),
	}
}

func filterByBudget(products []catalog.Product, budget *decimal.Decimal) []catalog.Product {
	if budget == nil {
		return products
	}
	kept := products[:0:0]
	for _, p := range products {
		if p.Price.LessThanOrEqual(*budget) {
			kept = append(kept, p)
		}
	}
	return kept
}

func capProducts(products []catalog.Product, n int) []catalog.Product {
	if len(products) > n {
		return products[:n]
	}
	return products
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
