package model

// Tag is scoped to exactly one deck; name uniqueness is per-deck, not
// global. Card association goes through the card_tags junction.
type Tag struct {
	ID       string `gorm:"primarykey" json:"id"`
	DeckID   string `json:"deck_id" gorm:"not null;index;uniqueIndex:idx_tags_deck_name"`
	Name     string `json:"name" gorm:"not null;uniqueIndex:idx_tags_deck_name"`
	RemoteID *int64 `json:"remote_id,omitempty"`
}
