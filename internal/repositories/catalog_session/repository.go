// Package catalogsession provides storage for catalog display sessions
package catalogsession

import (
	"context"
	"time"

	"github.com/KirkDiggler/pokedex-api/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=catalogsessionmock github.com/KirkDiggler/pokedex-api/internal/repositories/catalog_session Repository

// CreateInput contains parameters for creating a pending session
type CreateInput struct {
	SessionID string
	TTL       time.Duration // How long the display session lives
}

// CreateOutput contains the created session
type CreateOutput struct {
	Session *entities.CatalogSession
}

// GetInput contains parameters for retrieving a session
type GetInput struct {
	SessionID string
}

// GetOutput contains the retrieved session
type GetOutput struct {
	Session *entities.CatalogSession
}

// CompleteInput records the terminal outcome of a session
type CompleteInput struct {
	SessionID string
	Result    *entities.AggregationResult
}

// CompleteOutput contains the updated session
type CompleteOutput struct {
	Session *entities.CatalogSession
}

// Repository defines the interface for catalog session storage operations
type Repository interface {
	// Create stores a new PENDING session with the specified TTL
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a session by ID
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Complete writes the result of a PENDING session. A session that already
	// has a result is never overwritten.
	Complete(ctx context.Context, input CompleteInput) (*CompleteOutput, error)
}
