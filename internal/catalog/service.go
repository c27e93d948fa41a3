package catalog

import "context"

// Service is the catalog contract the storefront client depends on.
// The production implementation is the HTTP Client below; tests substitute
// in-process fakes.
type Service interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int) (*Product, error)
	Search(ctx context.Context, req SearchRequest) (*SearchResponse, error)
}
