package model

import (
	"encoding/json"
	"time"
)

// SyncStatus describes a deck's relationship to the remote server's copy.
// The deck is the unit of sync: cards and tags inherit consistency from
// their deck.
type SyncStatus string

const (
	// SyncLocalOnly marks an entity created offline that has never touched
	// a server.
	SyncLocalOnly SyncStatus = "local_only"
	// SyncSynced marks an entity whose local state mirrors the server as of
	// LastSyncedAt.
	SyncSynced SyncStatus = "synced"
	// SyncPendingSync marks an entity that was synced and then mutated
	// locally before the mutation could be pushed.
	SyncPendingSync SyncStatus = "pending_sync"
	// SyncConflict is reserved for future bidirectional merge support.
	// No transition currently produces it.
	SyncConflict SyncStatus = "conflict"
)

// Entity types and operations recorded in the sync queue.
const (
	EntityDeck = "deck"
	EntityCard = "card"

	OpCreate = "create"
)

// SyncQueueItem is one append-only log entry recording an offline mutation
// awaiting transmission. Entries are deleted once successfully replayed.
type SyncQueueItem struct {
	ID         uint            `gorm:"primarykey" json:"id"`
	EntityType string          `json:"entity_type" gorm:"not null;index"`
	EntityID   string          `json:"entity_id" gorm:"not null"`
	Operation  string          `json:"operation" gorm:"not null"`
	Payload    json.RawMessage `json:"payload" gorm:"type:text"`
	CreatedAt  time.Time       `json:"created_at"`
}

func (SyncQueueItem) TableName() string {
	return "sync_queue"
}
