// Package types provides common types used across Coinage.
package types

import "time"

// Entity is the base type for all Coinage entities with timestamps.
// Embed this in your domain types to get automatic timestamp handling.
type Entity struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewEntity creates a new Entity with current timestamps.
func NewEntity() Entity {
	now := time.Now().UTC()
	return Entity{
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// EntityAt creates an Entity stamped with the given time. The engine
// uses this with its injected clock so that replayed operations produce
// identical records.
func EntityAt(t time.Time) Entity {
	return Entity{CreatedAt: t, UpdatedAt: t}
}

// Touch updates the UpdatedAt timestamp to now.
func (e *Entity) Touch() {
	e.UpdatedAt = time.Now().UTC()
}

// TouchAt updates the UpdatedAt timestamp to the given time.
func (e *Entity) TouchAt(t time.Time) {
	e.UpdatedAt = t
}

// Age returns how long ago the entity was created.
func (e Entity) Age() time.Duration {
	return time.Since(e.CreatedAt)
}
