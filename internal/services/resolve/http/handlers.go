// Package http provides http transport for icon resolution
package http

import (
	stdhttp "net/http"
	"strings"

	"iconseek/internal/modkit/httpkit"
	perr "iconseek/internal/platform/errors"
	"iconseek/internal/services/resolve/domain"
	svc "iconseek/internal/services/resolve/service"
)

// Register mounts resolve endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// quick form: /icons/resolve?url=...
	httpkit.Get(r, "/resolve", h.resolveQuery)

	// full form with a JSON body
	httpkit.PostJSON[domain.ResolveInput](r, "/resolve", h.resolve)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /icons/resolve Icons iconsResolveQuery
// @Summary Resolve the best icon for a site URL
// @Tags Icons
// @Produce json
// @Param url query string true "Site URL"
// @Success 200 {object} domain.ResolveResult "ok"
// @Failure 400 {object} errors.Wire "missing url"
// @Router /icons/resolve [get]
func (h *handlers) resolveQuery(r *stdhttp.Request) (any, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("url"))
	if raw == "" {
		return nil, perr.Newf(perr.ErrorCodeValidation, "url query parameter is required")
	}
	return h.svc.Resolve(r.Context(), domain.ResolveInput{URL: raw})
}

// swagger:route POST /icons/resolve Icons iconsResolve
// @Summary Resolve the best icon for a site URL
// @Tags Icons
// @Accept json
// @Produce json
// @Param payload body domain.ResolveInput true "Site URL"
// @Success 200 {object} domain.ResolveResult "ok"
// @Router /icons/resolve [post]
func (h *handlers) resolve(r *stdhttp.Request, in domain.ResolveInput) (any, error) {
	return h.svc.Resolve(r.Context(), in)
}
