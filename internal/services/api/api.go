// Package api provides the HTTP API for the application
package api

import (
	"iconseek/internal/platform/config"
	"iconseek/internal/platform/logger"
	phttp "iconseek/internal/platform/net/http"

	"iconseek/internal/modkit"
	"iconseek/internal/modkit/httpkit"
	"iconseek/internal/modkit/module"
	"iconseek/internal/modkit/swaggerkit"

	metamod "iconseek/internal/services/api/meta/module"
	resolvemod "iconseek/internal/services/resolve/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
	}

	// Construct the resolve module first and extract its service port
	resolve := resolvemod.New(deps)
	resolver := module.MustPortsOf[resolvemod.Ports](resolve).Resolver

	// meta reports readiness against the wired resolver
	meta := metamod.New(deps, modkit.WithPorts(resolver))

	mods := []module.Module{
		meta,
		resolve,
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
