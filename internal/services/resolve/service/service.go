// Package service contains the icon resolution workflow
package service

import (
	"context"

	"iconseek/internal/core/favicon"
	"iconseek/internal/platform/logger"
	pnet "iconseek/internal/platform/net"
	ptime "iconseek/internal/platform/time"
	"iconseek/internal/services/resolve/domain"

	"github.com/google/uuid"
)

// Service defines the resolve service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the resolve service
type Svc struct {
	res *favicon.Resolver
}

// New constructs a resolve service around a favicon resolver
func New(cfg favicon.Config, opts ...favicon.Option) *Svc {
	return &Svc{
		res: favicon.New(cfg, opts...),
	}
}

// Resolve runs the pipeline for one input URL
// The result always carries an icon URL; the error is reserved for future
// refusal cases and is nil today
func (s *Svc) Resolve(ctx context.Context, in domain.ResolveInput) (domain.ResolveResult, error) {
	id := pnet.ResolutionID(ctx)
	if id == "" {
		id = uuid.NewString()
		ctx = pnet.WithRequest(ctx, "", id)
	}
	ctx = logger.WithRequest(ctx, pnet.RequestID(ctx), id)

	rep := s.res.ResolveReport(ctx, in.URL)

	logger.C(ctx).Info().
		Str("input", rep.Input).
		Str("icon_url", rep.IconURL).
		Str("source", string(rep.Phase)).
		Int("probes", rep.Probes).
		Int64("elapsed_ms", ptime.Ms(rep.Elapsed)).
		Msg("icon resolved")

	return domain.ResolveResult{
		ResolutionID: id,
		URL:          in.URL,
		IconURL:      rep.IconURL,
		Source:       string(rep.Phase),
		Probes:       rep.Probes,
		ElapsedMs:    ptime.Ms(rep.Elapsed),
	}, nil
}
