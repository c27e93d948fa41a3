package server

import (
	"strings"
	"unicode"

	"shopfront/internal/catalog"
)

const (
	defaultSearchLimit = 8

	// minRelevance drops products with only incidental term overlap.
	minRelevance = 0.1
)

// Field weights for the lexical scorer. Name matches dominate, tag matches
// signal curated relevance, description matches are weakest.
const (
	weightName        = 3.0
	weightTag         = 2.0
	weightBrand       = 2.0
	weightCategory    = 2.0
	weightDescription = 1.0
)

// relevance scores a product against a query in [0,1]. Each query token
// earns the best single field weight it matches, and the sum is normalized
// by the maximum attainable weight, so a query whose every token hits the
// product name scores 1.0.
func relevance(query string, p catalog.Product) float64 {
	tokens := tokenize(query)
	if len(tokens) == 0 {
		return 0
	}

	name := strings.ToLower(p.Name)
	desc := strings.ToLower(p.Description)
	brand := strings.ToLower(p.Brand)
	category := strings.ToLower(p.Category)
	tags := make(map[string]bool, len(p.Tags))
	for _, t := range p.Tags {
		tags[strings.ToLower(t)] = true
	}

	total := 0.0
	for _, tok := range tokens {
		best := 0.0
		for _, form := range tokenForms(tok) {
			w := 0.0
			if strings.Contains(name, form) {
				w = weightName
			} else if tags[form] || containsTagToken(tags, form) {
				w = weightTag
			} else if strings.Contains(brand, form) {
				w = weightBrand
			} else if strings.Contains(category, form) {
				w = weightCategory
			} else if strings.Contains(desc, form) {
				w = weightDescription
			}
			if w > best {
				best = w
			}
		}
		total += best
	}
	return total / (weightName * float64(len(tokens)))
}

// tokenForms returns the token plus a naive singular so "laptops"
// still hits "laptop".
func tokenForms(tok string) []string {
	if len(tok) > 3 && strings.HasSuffix(tok, "s") && !strings.HasSuffix(tok, "ss") {
		return []string{tok, strings.TrimSuffix(tok, "s")}
	}
	return []string{tok}
}

// containsTagToken matches a token against multi-word or hyphenated tags.
func containsTagToken(tags map[string]bool, tok string) bool {
	for t := range tags {
		if strings.Contains(t, tok) {
			return true
		}
	}
	return false
}

// tokenize lowercases and splits on non-alphanumeric runs, dropping filler
// words that carry no product signal.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if stopWords[f] {
			continue
		}
		out = append(out, f)
	}
	return out
}

var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "for": true, "with": true,
	"under": true, "below": true, "above": true, "over": true,
	"find": true, "show": true, "get": true, "me": true,
}
