package domain

import "time"

// ActivityType names an auditable authentication or account event.
type ActivityType string

const (
	ActivityLoginSucceeded ActivityType = "login_succeeded"
	ActivityLoginFailed    ActivityType = "login_failed"
	ActivityRegistered     ActivityType = "registered"
	ActivityRoleChanged    ActivityType = "role_changed"
	ActivityStatusChanged  ActivityType = "status_changed"
)

// Activity is a single audit record. It never carries passwords, hashes or
// tokens.
type Activity struct {
	Type       ActivityType
	UserID     string // subject of the event; empty when unknown (failed login)
	ActorID    string // who performed it; equals UserID for self-service events
	Identifier string // login identifier (email) for login events
	Detail     map[string]string
	OccurredAt time.Time
}
