package service

import (
	"sort"
	"strings"

	"github.com/lshigami/kioku/internal/model"
)

// GradeAnswer compares a submitted answer against a question's correctness
// criteria.
//
// Fill-in-blank is an exact byte match against CorrectAnswer: no trimming,
// no case folding. Multiple choice takes the submission as a comma-separated
// list of choice ids (whitespace around each id trimmed) and requires it to
// equal the set of correct choice ids exactly; subsets, supersets, and
// duplicated ids all grade as incorrect.
func GradeAnswer(question *model.Question, submitted string) bool {
	switch question.QuestionType {
	case model.FillInBlank:
		return question.CorrectAnswer != nil && *question.CorrectAnswer == submitted
	case model.MultipleChoice:
		correct := make([]string, 0, len(question.Choices))
		for _, choice := range question.Choices {
			if choice.IsCorrect {
				correct = append(correct, choice.ID)
			}
		}
		picked := strings.Split(submitted, ",")
		for i := range picked {
			picked[i] = strings.TrimSpace(picked[i])
		}
		sort.Strings(picked)
		sort.Strings(correct)
		if len(picked) != len(correct) {
			return false
		}
		for i := range correct {
			if picked[i] != correct[i] {
				return false
			}
		}
		return true
	default:
		return false
	}
}
