package service

import (
	"testing"

	"github.com/lshigami/kioku/internal/model"
)

func fillInBlank(answer string) *model.Question {
	return &model.Question{
		QuestionType:  model.FillInBlank,
		CorrectAnswer: &answer,
	}
}

func multipleChoice(correctIDs ...string) *model.Question {
	q := &model.Question{QuestionType: model.MultipleChoice}
	for i, id := range correctIDs {
		q.Choices = append(q.Choices, model.Choice{ID: id, IsCorrect: true, Position: i})
	}
	q.Choices = append(q.Choices, model.Choice{ID: "wrong-1", IsCorrect: false})
	return q
}

func TestGradeAnswerFillInBlank(t *testing.T) {
	tests := []struct {
		name      string
		correct   string
		submitted string
		want      bool
	}{
		{"exact match", "Paris", "Paris", true},
		{"case differs", "Paris", "paris", false},
		{"leading space", "Paris", " Paris", false},
		{"empty submission", "Paris", "", false},
		{"empty both", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GradeAnswer(fillInBlank(tt.correct), tt.submitted); got != tt.want {
				t.Errorf("GradeAnswer(%q, %q) = %v, want %v", tt.correct, tt.submitted, got, tt.want)
			}
		})
	}
}

func TestGradeAnswerFillInBlankNoCorrectAnswer(t *testing.T) {
	q := &model.Question{QuestionType: model.FillInBlank}
	if GradeAnswer(q, "anything") {
		t.Error("question without a correct answer graded as correct")
	}
}

func TestGradeAnswerMultipleChoice(t *testing.T) {
	tests := []struct {
		name      string
		correct   []string
		submitted string
		want      bool
	}{
		{"single correct", []string{"c1"}, "c1", true},
		{"single wrong", []string{"c1"}, "wrong-1", false},
		{"both selected any order", []string{"c1", "c3"}, "c3,c1", true},
		{"whitespace tolerated", []string{"c1", "c3"}, " c1 , c3 ", true},
		{"subset is wrong", []string{"c1", "c3"}, "c1", false},
		{"superset is wrong", []string{"c1"}, "c1,wrong-1", false},
		{"duplicate token is wrong", []string{"c1", "c3"}, "c1,c1", false},
		{"empty submission", []string{"c1"}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := multipleChoice(tt.correct...)
			if got := GradeAnswer(q, tt.submitted); got != tt.want {
				t.Errorf("GradeAnswer(correct=%v, %q) = %v, want %v", tt.correct, tt.submitted, got, tt.want)
			}
		})
	}
}

func TestScorePercentage(t *testing.T) {
	tests := []struct {
		correct, total, want int
	}{
		{0, 0, 0},
		{0, 10, 0},
		{10, 10, 100},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},
	}
	for _, tt := range tests {
		if got := scorePercentage(tt.correct, tt.total); got != tt.want {
			t.Errorf("scorePercentage(%d, %d) = %d, want %d", tt.correct, tt.total, got, tt.want)
		}
	}
}
