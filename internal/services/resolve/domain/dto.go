// Package domain holds DTOs for resolve http and service contracts
package domain

// ResolveInput asks for the best icon of a site
type ResolveInput struct {
	URL string `json:"url" validate:"required,max=2048" example:"https://github.com/golang/go"`
}

// ResolveResult is one finished resolution
type ResolveResult struct {
	ResolutionID string `json:"resolution_id" example:"9f2b6c1e-3c1d-4f7a-9f6e-0a1b2c3d4e5f"`
	URL          string `json:"url" example:"https://github.com/golang/go"`
	IconURL      string `json:"icon_url" example:"https://github.com/favicon.ico"`
	Source       string `json:"source" example:"direct"` // direct html service default
	Probes       int    `json:"probes" example:"1"`
	ElapsedMs    int64  `json:"elapsed_ms" example:"142"`
}
