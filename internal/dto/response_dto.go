package dto

import "time"

type ErrorResponse struct {
	Error string `json:"error"`
}

// SyncResult reports the outcome of one sync-queue drain pass.
type SyncResult struct {
	Synced int `json:"synced"`
}

type PendingCountResponse struct {
	PendingCount int `json:"pending_count"`
}

type ConnectionResponse struct {
	Connected bool `json:"connected"`
}

// QuizStats aggregates completed attempts for a quiz. All values are
// recomputed on demand from the full attempt history.
type QuizStats struct {
	QuizID                 string     `json:"quiz_id"`
	TotalAttempts          int        `json:"total_attempts"`
	AverageScore           float64    `json:"average_score"`
	BestScore              int        `json:"best_score"`
	AverageDurationSeconds *int       `json:"average_duration_seconds,omitempty"`
	LastAttemptAt          *time.Time `json:"last_attempt_at,omitempty"`
	RecentScores           []int      `json:"recent_scores"`
}

// DeckStudyStats aggregates ended study sessions for a deck.
type DeckStudyStats struct {
	DeckID                string     `json:"deck_id"`
	TotalSessions         int        `json:"total_sessions"`
	TotalStudyTimeSeconds int        `json:"total_study_time_seconds"`
	TotalCardsStudied     int        `json:"total_cards_studied"`
	LastStudiedAt         *time.Time `json:"last_studied_at,omitempty"`
}
