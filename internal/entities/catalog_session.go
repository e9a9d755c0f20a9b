package entities

import "time"

// SessionStatus tracks a display session from trigger to terminal outcome
type SessionStatus string

const (
	// SessionPending means the load is still running; the presentation layer
	// shows its loading indicator
	SessionPending SessionStatus = "PENDING"
	SessionReady   SessionStatus = "READY"
	SessionFailed  SessionStatus = "FAILED"
)

// CatalogSession is one display session. Result is nil while PENDING and is
// written exactly once.
type CatalogSession struct {
	ID        string             `json:"id"`
	Status    SessionStatus      `json:"status"`
	Result    *AggregationResult `json:"result,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	ExpiresAt time.Time          `json:"expires_at"`
}

// IsTerminal reports whether the session has its final result
func (s *CatalogSession) IsTerminal() bool {
	return s.Status == SessionReady || s.Status == SessionFailed
}

// Complete records the aggregation outcome on the session
func (s *CatalogSession) Complete(result *AggregationResult, at time.Time) {
	s.Result = result
	s.UpdatedAt = at
	if result.IsReady() {
		s.Status = SessionReady
		return
	}
	s.Status = SessionFailed
}
