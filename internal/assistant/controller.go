package assistant

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shopfront/internal/catalog"
)

const (
	greetingBody = "Hi! 👋 I'm your AI shopping assistant. I can help you find products, compare options, and answer questions. What are you looking for today?"
	errorBody    = "Sorry, I'm having trouble right now. Please try again!"

	defaultSearchLimit    = 8
	defaultRequestTimeout = 30 * time.Second
)

// SearchResults is the most recent search outcome. It is replaced wholesale
// by each completed search; a search in flight leaves the previous value
// visible. A failed search yields an empty product list, indistinguishable
// from a genuine zero-result search.
type SearchResults struct {
	Query    string
	Total    int
	Products []catalog.Product

	// Performed is false until the first search completes, so the
	// presentation layer can tell "never searched" from "no results".
	Performed bool
}

// Controller sequences user intents, outstanding requests, and incremental
// state for one session. Every method returns immediately; network work runs
// on goroutines whose continuations re-enter under the controller lock.
//
// Channel policies:
//   - chat: at most one outstanding request; sends while pending are no-ops.
//   - search: concurrent submissions are allowed, but each carries a
//     generation number and only the latest issued generation may fold its
//     response in. Older responses are discarded even if they resolve later.
type Controller struct {
	catalogSvc catalog.Service
	chatSvc    Service
	log        *zap.Logger

	timeout     time.Duration
	searchLimit int

	mu            sync.Mutex
	sessionID     string
	conversation  []Message
	results       SearchResults
	chatPending   bool
	searchPending bool
	searchGen     uint64
	convEpoch     uint64
	seq           uint64
	closed        bool

	updates chan struct{}
	wg      sync.WaitGroup
}

// Option customizes a Controller.
type Option func(*Controller)

// WithLogger attaches a logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) { c.log = log }
}

// WithTimeout bounds each outgoing request.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) { c.timeout = d }
}

// WithSearchLimit caps the number of products requested per search.
func WithSearchLimit(n int) Option {
	return func(c *Controller) { c.searchLimit = n }
}

// New creates a Controller seeded with the assistant greeting, so the UI
// never renders an empty conversation.
func New(catalogSvc catalog.Service, chatSvc Service, opts ...Option) *Controller {
	c := &Controller{
		catalogSvc:  catalogSvc,
		chatSvc:     chatSvc,
		log:         zap.NewNop(),
		timeout:     defaultRequestTimeout,
		searchLimit: defaultSearchLimit,
		sessionID:   uuid.NewString(),
		updates:     make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.conversation = []Message{c.newMessage(RoleAssistant, greetingBody, nil, IntentGreeting)}
	return c
}

// SessionID returns the identifier sent with every chat request.
func (c *Controller) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// SubmitSearch issues a relevance search. Blank queries are ignored. A
// search already in flight does not block a new one; the newer submission
// supersedes it.
func (c *Controller) SubmitSearch(query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.searchGen++
	gen := c.searchGen
	c.searchPending = true
	c.notifyLocked()
	c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()
		resp, err := c.catalogSvc.Search(ctx, catalog.SearchRequest{Query: query, Limit: c.searchLimit})

		c.mu.Lock()
		defer c.mu.Unlock()
		if gen != c.searchGen {
			// A newer search was issued while this one was in flight.
			c.log.Debug("discarding stale search response",
				zap.String("query", query),
				zap.Uint64("generation", gen),
				zap.Uint64("latest", c.searchGen))
			return
		}
		c.searchPending = false
		if err != nil {
			// Failures render as zero results, not as an error state.
			c.log.Warn("search failed", zap.String("query", query), zap.Error(err))
			c.results = SearchResults{Query: query, Products: []catalog.Product{}, Performed: true}
		} else {
			c.results = SearchResults{
				Query:     resp.Query,
				Total:     resp.TotalResults,
				Products:  resp.Products,
				Performed: true,
			}
		}
		c.notifyLocked()
	}()
}

// SendMessage appends the user's message optimistically and issues it to the
// assistant service. Blank messages and sends while a chat request is
// pending are no-ops. Failures surface as an apologetic assistant message
// with the "error" intent; nothing is ever raised to the caller.
func (c *Controller) SendMessage(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	c.mu.Lock()
	if c.closed || c.chatPending {
		c.mu.Unlock()
		return
	}
	c.conversation = append(c.conversation, c.newMessage(RoleUser, text, nil, ""))
	c.chatPending = true
	epoch := c.convEpoch
	sessionID := c.sessionID
	c.notifyLocked()
	c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()
		reply, err := c.chatSvc.Send(ctx, text, sessionID)

		c.mu.Lock()
		defer c.mu.Unlock()
		if epoch != c.convEpoch {
			// The conversation was restarted while the request was in
			// flight; its reply no longer has a timeline to land in.
			return
		}
		c.chatPending = false
		if err != nil {
			c.log.Warn("chat request failed", zap.Error(err))
			c.conversation = append(c.conversation, c.newMessage(RoleAssistant, errorBody, nil, IntentError))
		} else {
			c.conversation = append(c.conversation, c.newMessage(RoleAssistant, reply.Message, reply.Products, reply.Intent))
		}
		c.notifyLocked()
	}()
}

// Restart replaces the conversation wholesale with a fresh greeting. Any
// in-flight chat reply is discarded when it resolves.
func (c *Controller) Restart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.convEpoch++
	c.chatPending = false
	c.conversation = []Message{c.newMessage(RoleAssistant, greetingBody, nil, IntentGreeting)}
	c.notifyLocked()
}

// Conversation returns a copy of the message timeline in arrival order.
func (c *Controller) Conversation() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.conversation))
	copy(out, c.conversation)
	return out
}

// Results returns a copy of the most recent search outcome.
func (c *Controller) Results() SearchResults {
	c.mu.Lock()
	defer c.mu.Unlock()
	r := c.results
	r.Products = make([]catalog.Product, len(c.results.Products))
	copy(r.Products, c.results.Products)
	return r
}

// ChatPending reports whether a chat request is outstanding.
func (c *Controller) ChatPending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.chatPending
}

// SearchPending reports whether a search request is outstanding.
func (c *Controller) SearchPending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.searchPending
}

// Updates delivers a coalesced signal whenever controller state changes.
// The presentation layer re-reads the snapshots after each signal.
func (c *Controller) Updates() <-chan struct{} {
	return c.updates
}

// Close stops accepting new work and waits for in-flight continuations.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()
	c.wg.Wait()
}

// newMessage builds a Message; callers must hold the lock (or be the
// constructor, which runs before the controller is shared).
func (c *Controller) newMessage(role Role, body string, products []catalog.Product, intent string) Message {
	now := time.Now()
	c.seq++
	return Message{
		ID:       messageID(now, c.seq),
		Role:     role,
		Body:     body,
		Time:     now,
		Products: products,
		Intent:   intent,
	}
}

func (c *Controller) notifyLocked() {
	select {
	case c.updates <- struct{}{}:
	default:
	}
}
