// Package catalog implements the catalog orchestrator: it fetches the first
// generation roster, aggregates every detail record and records the outcome
// on a display session
package catalog

//go:generate mockgen -destination=mock/mock_service.go -package=catalogmock github.com/KirkDiggler/pokedex-api/internal/orchestrators/catalog Service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/pokedex-api/internal/clients/pokeapi"
	"github.com/KirkDiggler/pokedex-api/internal/entities"
	"github.com/KirkDiggler/pokedex-api/internal/errors"
	"github.com/KirkDiggler/pokedex-api/internal/metrics"
	"github.com/KirkDiggler/pokedex-api/internal/pkg/idgen"
	catalogsession "github.com/KirkDiggler/pokedex-api/internal/repositories/catalog_session"
)

const (
	// FirstGenerationLimit is the size of the first generation roster
	FirstGenerationLimit = 151

	// DefaultSessionTTL bounds a display session
	DefaultSessionTTL = time.Hour

	// DefaultLoadTimeout bounds a background load
	DefaultLoadTimeout = 2 * time.Minute

	storeTimeout = 5 * time.Second
)

// Service defines the catalog operations offered to the presentation layer
type Service interface {
	// LoadCatalog creates a session, runs the whole load and returns the
	// session in its terminal state
	LoadCatalog(ctx context.Context, input *LoadCatalogInput) (*LoadCatalogOutput, error)

	// StartSession creates a PENDING session and runs the load in the
	// background
	StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error)

	// GetCatalog returns a session in its current state
	GetCatalog(ctx context.Context, input *GetCatalogInput) (*GetCatalogOutput, error)

	// Shutdown stops accepting background loads, cancels the ones running and
	// waits until each has recorded its outcome or ctx is done
	Shutdown(ctx context.Context) error
}

// Config holds the dependencies for the catalog orchestrator
type Config struct {
	Client      pokeapi.Client
	SessionRepo catalogsession.Repository
	IDGenerator idgen.Generator

	// EventBus receives catalog.ready / catalog.failed (optional)
	EventBus events.EventBus
	// Metrics records request and aggregation outcomes (optional)
	Metrics *metrics.Recorder

	SessionTTL  time.Duration
	LoadTimeout time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.SessionRepo == nil {
		vb.RequiredField("SessionRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.SessionTTL < 0 {
		vb.Field("SessionTTL", "must not be negative")
	}
	if c.LoadTimeout < 0 {
		vb.Field("LoadTimeout", "must not be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	client      pokeapi.Client
	aggregator  *Aggregator
	sessionRepo catalogsession.Repository
	idGen       idgen.Generator
	eventBus    events.EventBus
	metrics     *metrics.Recorder
	sessionTTL  time.Duration
	loadTimeout time.Duration

	// Background loads
	mu       sync.Mutex
	closed   bool
	loads    sync.WaitGroup
	stopCtx  context.Context
	stopLoad context.CancelFunc
}

// NewOrchestrator creates a new catalog orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	sessionTTL := cfg.SessionTTL
	if sessionTTL == 0 {
		sessionTTL = DefaultSessionTTL
	}
	loadTimeout := cfg.LoadTimeout
	if loadTimeout == 0 {
		loadTimeout = DefaultLoadTimeout
	}

	stopCtx, stopLoad := context.WithCancel(context.Background())

	return &orchestrator{
		stopCtx:     stopCtx,
		stopLoad:    stopLoad,
		client:      cfg.Client,
		aggregator:  NewAggregator(cfg.Client, cfg.Metrics),
		sessionRepo: cfg.SessionRepo,
		idGen:       cfg.IDGenerator,
		eventBus:    cfg.EventBus,
		metrics:     cfg.Metrics,
		sessionTTL:  sessionTTL,
		loadTimeout: loadTimeout,
	}, nil
}

func (o *orchestrator) LoadCatalog(ctx context.Context, _ *LoadCatalogInput) (*LoadCatalogOutput, error) {
	session, err := o.createSession(ctx)
	if err != nil {
		return nil, err
	}

	completed, err := o.run(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	return &LoadCatalogOutput{Session: completed}, nil
}

func (o *orchestrator) StartSession(ctx context.Context, _ *StartSessionInput) (*StartSessionOutput, error) {
	if !o.acquireLoad() {
		return nil, errors.FailedPrecondition("catalog service is shutting down")
	}

	session, err := o.createSession(ctx)
	if err != nil {
		o.loads.Done()
		return nil, err
	}

	// The load outlives the triggering request but not the service
	loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), o.loadTimeout)
	stopOnShutdown := context.AfterFunc(o.stopCtx, cancel)
	go func() {
		defer o.loads.Done()
		defer stopOnShutdown()
		defer cancel()
		if _, err := o.run(loadCtx, session.ID); err != nil {
			slog.Error("Background catalog load could not be recorded", "session_id", session.ID, "error", err)
		}
	}()

	return &StartSessionOutput{Session: session}, nil
}

func (o *orchestrator) Shutdown(ctx context.Context) error {
	o.mu.Lock()
	o.closed = true
	o.mu.Unlock()

	o.stopLoad()

	done := make(chan struct{})
	go func() {
		o.loads.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errors.WrapWithCode(ctx.Err(), errors.CodeDeadlineExceeded, "background catalog loads still running")
	}
}

// acquireLoad registers a background load unless the service is shutting down
func (o *orchestrator) acquireLoad() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return false
	}
	o.loads.Add(1)
	return true
}

func (o *orchestrator) GetCatalog(ctx context.Context, input *GetCatalogInput) (*GetCatalogOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	out, err := o.sessionRepo.Get(ctx, catalogsession.GetInput{SessionID: input.SessionID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get catalog session %s", input.SessionID)
	}

	return &GetCatalogOutput{Session: out.Session}, nil
}

func (o *orchestrator) createSession(ctx context.Context) (*entities.CatalogSession, error) {
	out, err := o.sessionRepo.Create(ctx, catalogsession.CreateInput{
		SessionID: o.idGen.Generate(),
		TTL:       o.sessionTTL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create catalog session")
	}

	slog.Info("Catalog session started", "session_id", out.Session.ID)
	return out.Session, nil
}

// run loads the catalog and records the outcome on the session. The returned
// error covers recording only; a failed load is a FAILED session.
func (o *orchestrator) run(ctx context.Context, sessionID string) (*entities.CatalogSession, error) {
	start := time.Now()
	result := o.load(ctx)
	o.metrics.ObserveAggregation(result)

	if result.IsReady() {
		slog.Info("Catalog ready", "session_id", sessionID, "count", len(result.Pokemon), "elapsed", time.Since(start))
	} else {
		slog.Error("Catalog load failed", "session_id", sessionID, "error_code", result.ErrorCode, "reason", result.Reason)
	}

	// Record even when the load context is already done
	storeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), storeTimeout)
	defer cancel()

	out, err := o.sessionRepo.Complete(storeCtx, catalogsession.CompleteInput{
		SessionID: sessionID,
		Result:    result,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to record catalog result")
	}

	o.publishOutcome(storeCtx, out.Session)
	return out.Session, nil
}

// load runs the roster fetch and the aggregation in dependency order
func (o *orchestrator) load(ctx context.Context) *entities.AggregationResult {
	roster, err := o.client.ListPokemon(ctx, FirstGenerationLimit)
	if err != nil {
		return entities.Failed(errors.Wrap(err, "failed to fetch roster"))
	}

	return o.aggregator.Aggregate(ctx, roster)
}
