package model

import "time"

// QuizAttempt records one run through a quiz. Once CompletedAt is set the
// attempt is terminal and cannot be resubmitted.
type QuizAttempt struct {
	ID              string           `gorm:"primarykey" json:"id"`
	QuizID          string           `json:"quiz_id" gorm:"not null;index"`
	StartedAt       time.Time        `json:"started_at" gorm:"not null"`
	CompletedAt     *time.Time       `json:"completed_at,omitempty"`
	DurationSeconds *int             `json:"duration_seconds,omitempty"`
	TotalQuestions  int              `json:"total_questions" gorm:"not null"`
	CorrectAnswers  int              `json:"correct_answers" gorm:"not null;default:0"`
	ScorePercentage int              `json:"score_percentage" gorm:"not null;default:0"`
	QuestionResults []QuestionResult `json:"question_results" gorm:"foreignKey:AttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

type QuestionResult struct {
	ID         string  `gorm:"primarykey" json:"id"`
	AttemptID  string  `json:"attempt_id" gorm:"not null;index"`
	QuestionID string  `json:"question_id" gorm:"not null"`
	UserAnswer *string `json:"user_answer,omitempty" gorm:"type:text"`
	IsCorrect  bool    `json:"is_correct" gorm:"not null"`
}
