// Package v1alpha1 handles the pokedex catalog grpc service interface
package v1alpha1

import (
	"context"

	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/KirkDiggler/pokedex-api/internal/errors"
	"github.com/KirkDiggler/pokedex-api/internal/orchestrators/catalog"
)

// CatalogHandlerConfig holds dependencies for the catalog handler
type CatalogHandlerConfig struct {
	CatalogService catalog.Service
}

// Validate ensures all required dependencies are present
func (c *CatalogHandlerConfig) Validate() error {
	if c == nil || c.CatalogService == nil {
		return errors.InvalidArgument("catalog service is required")
	}
	return nil
}

// CatalogHandler implements the catalog gRPC service
type CatalogHandler struct {
	UnimplementedCatalogServiceServer
	catalogService catalog.Service
}

// NewCatalogHandler creates a new catalog handler with the given configuration
func NewCatalogHandler(cfg *CatalogHandlerConfig) (*CatalogHandler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &CatalogHandler{
		catalogService: cfg.CatalogService,
	}, nil
}

// LoadCatalog loads the roster and every detail record, then returns the
// finished session. A failed load is a FAILED session, not an RPC error.
func (h *CatalogHandler) LoadCatalog(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	out, err := h.catalogService.LoadCatalog(ctx, &catalog.LoadCatalogInput{})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return toSessionStruct(out.Session)
}

// StartSession begins a background load and returns the PENDING session
func (h *CatalogHandler) StartSession(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	out, err := h.catalogService.StartSession(ctx, &catalog.StartSessionInput{})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return toSessionStruct(out.Session)
}

// GetCatalog returns a session in its current state
func (h *CatalogHandler) GetCatalog(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	if req.GetValue() == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("session_id is required"))
	}

	out, err := h.catalogService.GetCatalog(ctx, &catalog.GetCatalogInput{SessionID: req.GetValue()})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return toSessionStruct(out.Session)
}
