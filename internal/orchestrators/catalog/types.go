package catalog

import (
	"github.com/KirkDiggler/pokedex-api/internal/entities"
)

// LoadCatalogInput defines the request for a synchronous load. The load
// takes no parameters; the struct exists so the call can grow options.
type LoadCatalogInput struct{}

// LoadCatalogOutput holds the completed session
type LoadCatalogOutput struct {
	Session *entities.CatalogSession
}

// StartSessionInput defines the request for a background load
type StartSessionInput struct{}

// StartSessionOutput holds the PENDING session that was started
type StartSessionOutput struct {
	Session *entities.CatalogSession
}

// GetCatalogInput defines the request for reading a session
type GetCatalogInput struct {
	SessionID string
}

// GetCatalogOutput holds the session in its current state
type GetCatalogOutput struct {
	Session *entities.CatalogSession
}
