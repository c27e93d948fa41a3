package server

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResponder(t *testing.T) *Responder {
	t.Helper()
	return NewResponder(testRepo(t), nil)
}

func TestRespond_ProductSearch(t *testing.T) {
	r := testResponder(t)

	reply := r.Respond(ChatRequest{Message: "Find wireless headphones under $300"})

	assert.Equal(t, "product_search", reply.Intent)
	require.NotEmpty(t, reply.Products)
	assert.LessOrEqual(t, len(reply.Products), 4)
	assert.Contains(t, reply.Message, "Top match")
	for _, p := range reply.Products {
		assert.True(t, p.Price.LessThanOrEqual(decimal.NewFromInt(300)),
			"%s exceeds budget", p.Name)
	}
}

func TestRespond_ProductSearchNoResults(t *testing.T) {
	r := testResponder(t)

	reply := r.Respond(ChatRequest{Message: "find me some zeppelin headphones under $1"})

	assert.Equal(t, "product_search", reply.Intent)
	assert.Empty(t, reply.Products)
	assert.Contains(t, reply.Message, "couldn't find")
}

func TestRespond_Comparison(t *testing.T) {
	r := testResponder(t)

	reply := r.Respond(ChatRequest{Message: "compare laptops for students"})

	assert.Equal(t, "comparison", reply.Intent)
	require.GreaterOrEqual(t, len(reply.Products), 2)
	assert.LessOrEqual(t, len(reply.Products), 3)
	assert.Contains(t, reply.Message, "options to compare")
}

func TestRespond_Recommendation(t *testing.T) {
	r := testResponder(t)

	reply := r.Respond(ChatRequest{Message: "recommend a good laptop for students"})

	assert.Equal(t, "recommendation", reply.Intent)
	require.NotEmpty(t, reply.Products)
	assert.Contains(t, reply.Message, "I'd recommend the **"+reply.Products[0].Name+"**")
}

func TestRespond_Question(t *testing.T) {
	r := testResponder(t)

	reply := r.Respond(ChatRequest{Message: "how much do the sony headphones cost?"})

	assert.Equal(t, "question", reply.Intent)
	require.NotEmpty(t, reply.Products)
	assert.LessOrEqual(t, len(reply.Products), 2)
	assert.True(t, strings.HasPrefix(reply.Message, "About the **"), reply.Message)
}

func TestRespond_GeneralGreeting(t *testing.T) {
	r := testResponder(t)

	reply := r.Respond(ChatRequest{Message: "hello!"})

	assert.Equal(t, "general", reply.Intent)
	assert.Empty(t, reply.Products)
	assert.Contains(t, reply.Message, "shopping assistant")
}

func TestRespond_GeneralHelp(t *testing.T) {
	r := testResponder(t)

	reply := r.Respond(ChatRequest{Message: "I need some help please"})

	assert.Equal(t, "general", reply.Intent)
	assert.Contains(t, reply.Message, "I'm here to help")
}
