package catalogsession

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/pokedex-api/internal/entities"
	"github.com/KirkDiggler/pokedex-api/internal/errors"
	"github.com/KirkDiggler/pokedex-api/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/pokedex-api/internal/redis"
)

const (
	// Key pattern: catalog_session:{session_id}
	sessionKeyPrefix = "catalog_session:"
	defaultTTL       = time.Hour

	errSessionIDEmpty = "session ID cannot be empty"
	errResultNil      = "result cannot be nil"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
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
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis repository for catalog sessions
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	now := r.clock.Now()
	ttl := input.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	session := &entities.CatalogSession{
		ID:        input.SessionID,
		Status:    entities.SessionPending,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal session")
	}

	created, err := r.client.SetNX(ctx, buildKey(input.SessionID), data, ttl).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to store session in Redis")
	}
	if !created {
		return nil, errors.FailedPrecondition("catalog session already exists").
			WithMeta("session_id", input.SessionID)
	}

	return &CreateOutput{Session: session}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	session, err := r.load(ctx, r.client, input.SessionID)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Session: session}, nil
}

func (r *redisRepository) Complete(ctx context.Context, input CompleteInput) (*CompleteOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}
	if input.Result == nil {
		return nil, errors.InvalidArgument(errResultNil)
	}

	key := buildKey(input.SessionID)
	var session *entities.CatalogSession

	// Optimistic lock so two writers can never both complete the session
	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := r.load(ctx, tx, input.SessionID)
		if err != nil {
			return err
		}
		if current.IsTerminal() {
			return errors.FailedPrecondition("catalog session already completed").
				WithMeta("session_id", input.SessionID)
		}

		now := r.clock.Now()
		remainingTTL := current.ExpiresAt.Sub(now)
		if remainingTTL <= 0 {
			return errors.NotFound("catalog session has expired")
		}

		current.Complete(input.Result, now)
		data, err := json.Marshal(current)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal session")
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, remainingTTL)
			return nil
		})
		if err != nil {
			return errors.Wrapf(err, "failed to update session in Redis")
		}

		session = current
		return nil
	}, key)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to complete session %s", input.SessionID)
	}

	return &CompleteOutput{Session: session}, nil
}

// getter is satisfied by both the client and a WATCH transaction
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// load reads and decodes a session with either the client or a transaction
func (r *redisRepository) load(ctx context.Context, cmd getter, sessionID string) (*entities.CatalogSession, error) {
	data, err := cmd.Get(ctx, buildKey(sessionID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFound("catalog session not found").WithMeta("session_id", sessionID)
		}
		return nil, errors.Wrapf(err, "failed to get session from Redis")
	}

	var session entities.CatalogSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal session")
	}

	if r.clock.Now().After(session.ExpiresAt) {
		return nil, errors.NotFound("catalog session has expired").WithMeta("session_id", sessionID)
	}

	return &session, nil
}

// buildKey creates the Redis key for a catalog session
func buildKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}
