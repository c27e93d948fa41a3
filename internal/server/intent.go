package server

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

type intentKind string

const (
	intentProductSearch  intentKind = "product_search"
	intentComparison     intentKind = "comparison"
	intentRecommendation intentKind = "recommendation"
	intentQuestion       intentKind = "question"
	intentGeneral        intentKind = "general"
)

var (
	searchPatterns = []*regexp.Regexp{
		regexp.MustCompile(`find.*(?:headphones?|earbuds?|speakers?)`),
		regexp.MustCompile(`(?:show|find|search).*(?:laptop|computer|phone)`),
		regexp.MustCompile(`(?:looking for|need|want).*(?:shoes?|sneakers?|boots?)`),
		regexp.MustCompile(`(?:find|show).*(?:under|below|less than).*\$?\d+`),
		regexp.MustCompile(`(?:budget|cheap|affordable).*(?:laptop|phone|headphones?)`),
	}
	comparisonPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:compare|vs|versus|better|difference)`),
		regexp.MustCompile(`(?:which is better|what.*difference)`),
		regexp.MustCompile(`(?:should i get|choose between)`),
	}
	recommendationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:recommend|suggest|advice)`),
		regexp.MustCompile(`(?:what should i|help me choose)`),
		regexp.MustCompile(`(?:best.*for|good.*for)`),
	}
	questionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:how much|what.*price|cost)`),
		regexp.MustCompile(`(?:is.*good|worth it|reliable)`),
		regexp.MustCompile(`(?:what.*features|specs|specifications)`),
	}

	budgetPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\$(\d+(?:\.\d{2})?)`),
		regexp.MustCompile(`under (\d+)`),
		regexp.MustCompile(`below (\d+)`),
		regexp.MustCompile(`less than (\d+)`),
		regexp.MustCompile(`budget (\d+)`),
	}

	wordPattern = regexp.MustCompile(`[\pL\pN_]+`)
)

// classifyIntent buckets a chat message into one of the intent families.
// First matching family wins; search outranks comparison outranks
// recommendation outranks question.
func classifyIntent(message string) intentKind {
	lower := strings.ToLower(message)
	for _, p := range searchPatterns {
		if p.MatchString(lower) {
			return intentProductSearch
		}
	}
	for _, p := range comparisonPatterns {
		if p.MatchString(lower) {
			return intentComparison
		}
	}
	for _, p := range recommendationPatterns {
		if p.MatchString(lower) {
			return intentRecommendation
		}
	}
	for _, p := range questionPatterns {
		if p.MatchString(lower) {
			return intentQuestion
		}
	}
	return intentGeneral
}

// extractSearchTerms strips filler words and keeps the first few
// content words as the search query.
func extractSearchTerms(message string) string {
	words := wordPattern.FindAllString(strings.ToLower(message), -1)
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if stopWords[w] {
			continue
		}
		kept = append(kept, w)
		if len(kept) == 6 {
			break
		}
	}
	return strings.Join(kept, " ")
}

// extractBudget pulls a price ceiling out of phrasings like
// "under $200" or "budget 500". Nil when no budget is mentioned.
func extractBudget(message string) *decimal.Decimal {
	lower := strings.ToLower(message)
	for _, p := range budgetPatterns {
		m := p.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		d, err := decimal.NewFromString(m[1])
		if err != nil {
			continue
		}
		return &d
	}
	return nil
}
