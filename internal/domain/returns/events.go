package returns

// Event types published to realtime subscribers.
const (
	EventScoringCompleted   = "scoring.completed"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderVerified      = "order.verified"
)

// StatusChangedEvent is published after a manual or verification-driven status change.
type StatusChangedEvent struct {
	OrderID        string `json:"order_id"`
	PreviousStatus Status `json:"previous_status"`
	Status         Status `json:"status"`
	IsLocked       bool   `json:"is_locked"`
	Source         string `json:"source"`
}

// VerifiedEvent is published after a field verification is stored.
type VerifiedEvent struct {
	OrderID string             `json:"order_id"`
	Result  VerificationResult `json:"verification_result"`
	Status  Status             `json:"status"`
	Agent   string             `json:"agent_name"`
}

// ScoringCompletedEvent summarizes a persisted scoring run.
type ScoringCompletedEvent struct {
	Total   int `json:"total"`
	Added   int `json:"added"`
	Flagged int `json:"flagged"`
}
