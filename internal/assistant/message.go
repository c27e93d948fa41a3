// Package assistant owns the conversational and search orchestration state
// for one storefront session: the ordered message timeline, the most recent
// search result set, and the per-channel pending state machines that gate
// outstanding requests.
package assistant

import (
	"fmt"
	"time"

	"shopfront/internal/catalog"
)

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Well-known intent labels the controller itself produces. Everything else
// is a free-form classification supplied by the assistant service.
const (
	IntentGreeting = "greeting"
	IntentError    = "error"
)

// Message is one entry in the conversation timeline. IDs order by creation
// time; the per-session sequence number breaks same-instant ties.
type Message struct {
	ID       string
	Role     Role
	Body     string
	Time     time.Time
	Products []catalog.Product // assistant messages only
	Intent   string            // assistant messages only
}

func messageID(t time.Time, seq uint64) string {
	return fmt.Sprintf("%d-%06d", t.UnixNano(), seq)
}
