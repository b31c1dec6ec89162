package model

import "time"

type Deck struct {
	ID              string     `gorm:"primarykey" json:"id"`
	UserID          string     `json:"user_id" gorm:"not null;index"`
	Name            string     `json:"name" gorm:"not null"`
	Description     *string    `json:"description,omitempty"`
	ShuffleCards    bool       `json:"shuffle_cards" gorm:"not null;default:false"`
	RemoteID        *int64     `json:"remote_id,omitempty"`
	SyncStatus      SyncStatus `json:"sync_status" gorm:"not null;default:'local_only'"`
	LastSyncedAt    *time.Time `json:"last_synced_at,omitempty"`
	RemoteUpdatedAt *time.Time `json:"remote_updated_at,omitempty"`
	Cards           []Card     `json:"cards,omitempty" gorm:"foreignKey:DeckID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Tags            []Tag      `json:"-" gorm:"foreignKey:DeckID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CardCount       *int       `json:"card_count,omitempty" gorm:"-"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
