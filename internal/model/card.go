package model

import "time"

type Card struct {
	ID            string    `gorm:"primarykey" json:"id"`
	DeckID        string    `json:"deck_id" gorm:"not null;index"`
	Front         string    `json:"front" gorm:"type:text;not null"`
	FrontType     string    `json:"front_type" gorm:"not null;default:'TEXT'"`
	FrontLanguage *string   `json:"front_language,omitempty"`
	Back          string    `json:"back" gorm:"type:text;not null"`
	BackType      string    `json:"back_type" gorm:"not null;default:'TEXT'"`
	BackLanguage  *string   `json:"back_language,omitempty"`
	Notes         *string   `json:"notes,omitempty" gorm:"type:text"`
	RemoteID      *int64    `json:"remote_id,omitempty"`
	Tags          []Tag     `json:"tags" gorm:"many2many:card_tags;constraint:OnDelete:CASCADE;"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
