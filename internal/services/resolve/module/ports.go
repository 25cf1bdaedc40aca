package module

import (
	"iconseek/internal/services/resolve/domain"
)

// Ports exposes the resolve module's service to other modules
type Ports struct {
	Resolver domain.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
