package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Resolve(ctx context.Context, in ResolveInput) (ResolveResult, error)
}
