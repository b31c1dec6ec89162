package model

import "time"

// StudySession is one flashcard-review session against a deck.
type StudySession struct {
	ID              string     `gorm:"primarykey" json:"id"`
	DeckID          string     `json:"deck_id" gorm:"not null;index"`
	StartedAt       time.Time  `json:"started_at" gorm:"not null"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
	DurationSeconds *int       `json:"duration_seconds,omitempty"`
	CardsStudied    int        `json:"cards_studied" gorm:"not null;default:0"`
}
