package model

import "time"

type Quiz struct {
	ID               string     `gorm:"primarykey" json:"id"`
	UserID           string     `json:"user_id" gorm:"not null;index"`
	Name             string     `json:"name" gorm:"not null"`
	Description      *string    `json:"description,omitempty"`
	ShuffleQuestions bool       `json:"shuffle_questions" gorm:"not null;default:false"`
	Questions        []Question `json:"questions,omitempty" gorm:"foreignKey:QuizID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Tags             []QuizTag  `json:"-" gorm:"foreignKey:QuizID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	QuestionCount    *int       `json:"question_count,omitempty" gorm:"-"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// QuizTag is a per-quiz tag namespace; question association goes through
// the question_tags junction.
type QuizTag struct {
	ID     string `gorm:"primarykey" json:"id"`
	QuizID string `json:"quiz_id" gorm:"not null;index;uniqueIndex:idx_quiz_tags_quiz_name"`
	Name   string `json:"name" gorm:"not null;uniqueIndex:idx_quiz_tags_quiz_name"`
}
