package model

import "time"

// QuestionType discriminates which correctness criteria govern grading:
// the question's Choices for multiple choice, or CorrectAnswer for
// fill-in-blank.
type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	FillInBlank    QuestionType = "fill_in_blank"
)

// ParseQuestionType maps a stored string onto a QuestionType, defaulting to
// MultipleChoice for anything unrecognized.
func ParseQuestionType(s string) QuestionType {
	if QuestionType(s) == FillInBlank {
		return FillInBlank
	}
	return MultipleChoice
}

type Question struct {
	ID              string       `gorm:"primarykey" json:"id"`
	QuizID          string       `json:"quiz_id" gorm:"not null;index"`
	QuestionType    QuestionType `json:"question_type" gorm:"not null"`
	Content         string       `json:"content" gorm:"type:text;not null"`
	ContentType     string       `json:"content_type" gorm:"not null;default:'TEXT'"`
	ContentLanguage *string      `json:"content_language,omitempty"`
	CorrectAnswer   *string      `json:"correct_answer,omitempty"`
	MultipleAnswers bool         `json:"multiple_answers" gorm:"not null;default:false"`
	Explanation     *string      `json:"explanation,omitempty" gorm:"type:text"`
	Position        int          `json:"position" gorm:"not null"`
	Choices         []Choice     `json:"choices" gorm:"foreignKey:QuestionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Tags            []QuizTag    `json:"tags" gorm:"many2many:question_tags;constraint:OnDelete:CASCADE;"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

type Choice struct {
	ID         string `gorm:"primarykey" json:"id"`
	QuestionID string `json:"question_id" gorm:"not null;index"`
	Text       string `json:"text" gorm:"type:text;not null"`
	IsCorrect  bool   `json:"is_correct" gorm:"not null;default:false"`
	Position   int    `json:"position" gorm:"not null"`
}
