package service

import (
	"errors"
	"testing"

	"github.com/lshigami/kioku/internal/apperr"
	"github.com/lshigami/kioku/internal/dto"
	"github.com/lshigami/kioku/internal/model"
	"github.com/lshigami/kioku/internal/repository"
	"gorm.io/gorm"
)

type quizFixture struct {
	quizSvc     QuizService
	questionSvc QuestionService
	attemptSvc  AttemptService
	quiz        *model.Quiz
}

func newQuizFixture(t *testing.T, db *gorm.DB) *quizFixture {
	t.Helper()

	quizRepo := repository.NewQuizRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)

	f := &quizFixture{
		quizSvc:     NewQuizService(quizRepo, questionRepo),
		questionSvc: NewQuestionService(questionRepo, quizRepo),
		attemptSvc:  NewAttemptService(attemptRepo, quizRepo, questionRepo),
	}

	quiz, err := f.quizSvc.Create("user-1", dto.CreateQuizRequest{Name: "Geography"})
	if err != nil {
		t.Fatalf("creating quiz: %v", err)
	}
	f.quiz = quiz
	return f
}

func (f *quizFixture) addFillInBlank(t *testing.T, content, answer string) *model.Question {
	t.Helper()
	q, err := f.questionSvc.Create(f.quiz.ID, dto.CreateQuestionRequest{
		QuestionType:  string(model.FillInBlank),
		Content:       content,
		CorrectAnswer: &answer,
	})
	if err != nil {
		t.Fatalf("creating fill-in-blank question: %v", err)
	}
	return q
}

func (f *quizFixture) addMultipleChoice(t *testing.T, content string, choices []dto.CreateChoiceRequest) *model.Question {
	t.Helper()
	q, err := f.questionSvc.Create(f.quiz.ID, dto.CreateQuestionRequest{
		QuestionType: string(model.MultipleChoice),
		Content:      content,
		Choices:      choices,
	})
	if err != nil {
		t.Fatalf("creating multiple choice question: %v", err)
	}
	return q
}

func TestSubmitAttemptGradesAndScores(t *testing.T) {
	db := newTestDB(t)
	f := newQuizFixture(t, db)

	q1 := f.addFillInBlank(t, "Capital of France?", "Paris")
	q2 := f.addMultipleChoice(t, "Even numbers?", []dto.CreateChoiceRequest{
		{Text: "2", IsCorrect: true},
		{Text: "3", IsCorrect: false},
		{Text: "4", IsCorrect: true},
	})

	attempt, err := f.attemptSvc.Start(f.quiz.ID)
	if err != nil {
		t.Fatalf("starting attempt: %v", err)
	}
	if attempt.TotalQuestions != 2 {
		t.Fatalf("TotalQuestions = %d, want 2", attempt.TotalQuestions)
	}

	var correctIDs []string
	for _, c := range q2.Choices {
		if c.IsCorrect {
			correctIDs = append(correctIDs, c.ID)
		}
	}
	// Reversed order must still grade as correct.
	answer := correctIDs[1] + "," + correctIDs[0]

	done, err := f.attemptSvc.Submit(attempt.ID, dto.SubmitQuizRequest{Answers: []dto.QuestionAnswer{
		{QuestionID: q1.ID, Answer: "Paris"},
		{QuestionID: q2.ID, Answer: answer},
	}})
	if err != nil {
		t.Fatalf("submitting attempt: %v", err)
	}

	if done.CorrectAnswers != 2 {
		t.Errorf("CorrectAnswers = %d, want 2", done.CorrectAnswers)
	}
	if done.ScorePercentage != 100 {
		t.Errorf("ScorePercentage = %d, want 100", done.ScorePercentage)
	}
	if done.CompletedAt == nil {
		t.Error("CompletedAt not set")
	}
	if done.DurationSeconds == nil || *done.DurationSeconds < 0 {
		t.Error("DurationSeconds not set or negative")
	}
	if len(done.QuestionResults) != 2 {
		t.Fatalf("QuestionResults = %d, want 2", len(done.QuestionResults))
	}
}

func TestSubmitAttemptCaseSensitive(t *testing.T) {
	db := newTestDB(t)
	f := newQuizFixture(t, db)
	q := f.addFillInBlank(t, "Capital of France?", "Paris")

	attempt, err := f.attemptSvc.Start(f.quiz.ID)
	if err != nil {
		t.Fatalf("starting attempt: %v", err)
	}
	done, err := f.attemptSvc.Submit(attempt.ID, dto.SubmitQuizRequest{Answers: []dto.QuestionAnswer{
		{QuestionID: q.ID, Answer: "paris"},
	}})
	if err != nil {
		t.Fatalf("submitting attempt: %v", err)
	}
	if done.CorrectAnswers != 0 {
		t.Errorf("CorrectAnswers = %d, want 0 for case mismatch", done.CorrectAnswers)
	}
	if done.ScorePercentage != 0 {
		t.Errorf("ScorePercentage = %d, want 0", done.ScorePercentage)
	}
}

func TestSubmitAttemptUnansweredCountsIncorrect(t *testing.T) {
	db := newTestDB(t)
	f := newQuizFixture(t, db)
	q1 := f.addFillInBlank(t, "Capital of France?", "Paris")
	f.addFillInBlank(t, "Capital of Japan?", "Tokyo")

	attempt, err := f.attemptSvc.Start(f.quiz.ID)
	if err != nil {
		t.Fatalf("starting attempt: %v", err)
	}
	done, err := f.attemptSvc.Submit(attempt.ID, dto.SubmitQuizRequest{Answers: []dto.QuestionAnswer{
		{QuestionID: q1.ID, Answer: "Paris"},
	}})
	if err != nil {
		t.Fatalf("submitting attempt: %v", err)
	}

	if done.ScorePercentage != 50 {
		t.Errorf("ScorePercentage = %d, want 50", done.ScorePercentage)
	}
	if len(done.QuestionResults) != 1 {
		t.Fatalf("QuestionResults = %d, want 1 (only submitted answers are recorded)", len(done.QuestionResults))
	}
	if done.QuestionResults[0].QuestionID != q1.ID {
		t.Errorf("result recorded for question %s, want %s", done.QuestionResults[0].QuestionID, q1.ID)
	}
}

func TestSubmitAttemptScoresAgainstStartSnapshot(t *testing.T) {
	db := newTestDB(t)
	f := newQuizFixture(t, db)
	q1 := f.addFillInBlank(t, "Capital of France?", "Paris")

	attempt, err := f.attemptSvc.Start(f.quiz.ID)
	if err != nil {
		t.Fatalf("starting attempt: %v", err)
	}
	if attempt.TotalQuestions != 1 {
		t.Fatalf("TotalQuestions = %d, want 1", attempt.TotalQuestions)
	}

	// A question added after the attempt started must not change the basis
	// the score is computed against.
	f.addFillInBlank(t, "Capital of Japan?", "Tokyo")

	done, err := f.attemptSvc.Submit(attempt.ID, dto.SubmitQuizRequest{Answers: []dto.QuestionAnswer{
		{QuestionID: q1.ID, Answer: "Paris"},
	}})
	if err != nil {
		t.Fatalf("submitting attempt: %v", err)
	}
	if done.TotalQuestions != 1 {
		t.Errorf("TotalQuestions = %d, want the count from Start", done.TotalQuestions)
	}
	if done.ScorePercentage != 100 {
		t.Errorf("ScorePercentage = %d, want 100", done.ScorePercentage)
	}
}

func TestSubmitAttemptRejectsResubmission(t *testing.T) {
	db := newTestDB(t)
	f := newQuizFixture(t, db)
	q := f.addFillInBlank(t, "Capital of France?", "Paris")

	attempt, err := f.attemptSvc.Start(f.quiz.ID)
	if err != nil {
		t.Fatalf("starting attempt: %v", err)
	}
	req := dto.SubmitQuizRequest{Answers: []dto.QuestionAnswer{{QuestionID: q.ID, Answer: "Paris"}}}
	if _, err := f.attemptSvc.Submit(attempt.ID, req); err != nil {
		t.Fatalf("first submission: %v", err)
	}
	_, err = f.attemptSvc.Submit(attempt.ID, req)
	if !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("resubmission error = %v, want ErrValidation", err)
	}
}

func TestSubmitAttemptRejectsForeignQuestion(t *testing.T) {
	db := newTestDB(t)
	f := newQuizFixture(t, db)
	f.addFillInBlank(t, "Capital of France?", "Paris")

	attempt, err := f.attemptSvc.Start(f.quiz.ID)
	if err != nil {
		t.Fatalf("starting attempt: %v", err)
	}
	_, err = f.attemptSvc.Submit(attempt.ID, dto.SubmitQuizRequest{Answers: []dto.QuestionAnswer{
		{QuestionID: "not-a-question", Answer: "x"},
	}})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("foreign question error = %v, want ErrValidation", err)
	}
}

func TestStartAttemptEmptyQuiz(t *testing.T) {
	db := newTestDB(t)
	f := newQuizFixture(t, db)

	_, err := f.attemptSvc.Start(f.quiz.ID)
	if !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("empty quiz start error = %v, want ErrValidation", err)
	}
}

func TestStartAttemptUnknownQuiz(t *testing.T) {
	db := newTestDB(t)
	f := newQuizFixture(t, db)

	_, err := f.attemptSvc.Start("no-such-quiz")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("unknown quiz error = %v, want ErrNotFound", err)
	}
}
