package assistant

import (
	"context"

	"shopfront/internal/catalog"
)

// Reply is one assistant turn as returned by the service.
type Reply struct {
	Message  string            `json:"message"`
	Products []catalog.Product `json:"products,omitempty"`
	Intent   string            `json:"intent,omitempty"`
}

// Service is the assistant contract the controller depends on. The
// production implementation is the HTTP Client; tests substitute fakes.
type Service interface {
	Send(ctx context.Context, text, sessionID string) (*Reply, error)
}
