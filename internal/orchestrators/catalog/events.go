package catalog

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/pokedex-api/internal/entities"
)

// Events published when a session reaches its terminal state
const (
	EventCatalogReady  = "catalog.ready"
	EventCatalogFailed = "catalog.failed"

	EventKeySessionID = "session_id"
	EventKeyCount     = "count"
	EventKeyErrorCode = "error_code"
	EventKeyReason    = "reason"

	sessionEntityType = "catalog_session"
)

// sessionEntity is the event source for a catalog session
type sessionEntity struct {
	id string
}

func (e *sessionEntity) GetID() string {
	return e.id
}

func (e *sessionEntity) GetType() string {
	return sessionEntityType
}

var _ core.Entity = (*sessionEntity)(nil)

// publishOutcome tells subscribers a session finished. Delivery failures are
// logged and never change the stored outcome.
func (o *orchestrator) publishOutcome(ctx context.Context, session *entities.CatalogSession) {
	if o.eventBus == nil || session == nil || session.Result == nil {
		return
	}

	eventType := EventCatalogReady
	if !session.Result.IsReady() {
		eventType = EventCatalogFailed
	}

	event := events.NewGameEvent(eventType, &sessionEntity{id: session.ID}, nil)
	event.Context().Set(EventKeySessionID, session.ID)
	if session.Result.IsReady() {
		event.Context().Set(EventKeyCount, len(session.Result.Pokemon))
	} else {
		event.Context().Set(EventKeyErrorCode, session.Result.ErrorCode.String())
		event.Context().Set(EventKeyReason, session.Result.Reason)
	}

	if err := o.eventBus.Publish(ctx, event); err != nil {
		slog.Warn("Failed to publish catalog event", "event", eventType, "session_id", session.ID, "error", err)
	}
}
