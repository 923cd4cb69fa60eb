package domain

import (
	"time"

	"github.com/google/uuid"
)

// SavedWordEntry is a per-user bookmark pointing at a dictionary entry.
// At most one row exists per (UserID, WordID) pair; removal is a hard delete.
type SavedWordEntry struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	WordID    uuid.UUID
	Status    SavedStatus
	CreatedAt time.Time
}

// SavedWordView is a saved entry hydrated with its dictionary record and tag
// names, as returned by list queries. Ordering is insertion order (oldest
// first) at the storage layer.
type SavedWordView struct {
	SavedID   uuid.UUID
	WordID    uuid.UUID
	CreatedAt time.Time

	Word WordRecord
	Tags []string
}

// Tag is a global vocabulary entry, created lazily the first time a name is
// used and never deleted by this layer.
type Tag struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}
