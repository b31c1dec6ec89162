package service

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/kioku/internal/apperr"
	"github.com/lshigami/kioku/internal/dto"
	"github.com/lshigami/kioku/internal/model"
	"github.com/lshigami/kioku/internal/repository"
	"github.com/rs/zerolog/log"
)

type AttemptService interface {
	Start(quizID string) (*model.QuizAttempt, error)
	Submit(attemptID string, req dto.SubmitQuizRequest) (*model.QuizAttempt, error)
	Get(id string) (*model.QuizAttempt, error)
	GetForQuiz(quizID string) ([]model.QuizAttempt, error)
}

type attemptService struct {
	attemptRepo  repository.AttemptRepository
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
}

func NewAttemptService(
	attemptRepo repository.AttemptRepository,
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
) AttemptService {
	return &attemptService{attemptRepo: attemptRepo, quizRepo: quizRepo, questionRepo: questionRepo}
}

func (s *attemptService) Start(quizID string) (*model.QuizAttempt, error) {
	if _, err := s.quizRepo.FindByID(quizID); err != nil {
		return nil, storeErr(err, fmt.Sprintf("quiz %s", quizID))
	}
	count, err := s.questionRepo.CountByQuiz(quizID)
	if err != nil {
		return nil, storeErr(err, "failed to count questions")
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: quiz has no questions", apperr.ErrValidation)
	}

	attempt := &model.QuizAttempt{
		ID:             uuid.NewString(),
		QuizID:         quizID,
		StartedAt:      time.Now().UTC(),
		TotalQuestions: count,
	}
	if err := s.attemptRepo.Create(attempt); err != nil {
		return nil, storeErr(err, "failed to create attempt")
	}
	return attempt, nil
}

func (s *attemptService) Submit(attemptID string, req dto.SubmitQuizRequest) (*model.QuizAttempt, error) {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		return nil, storeErr(err, fmt.Sprintf("attempt %s", attemptID))
	}
	if attempt.CompletedAt != nil {
		return nil, fmt.Errorf("%w: attempt already completed", apperr.ErrValidation)
	}

	questions, err := s.questionRepo.FindByQuiz(attempt.QuizID)
	if err != nil {
		return nil, storeErr(err, "failed to load questions")
	}
	byID := make(map[string]*model.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	answered := make(map[string]string, len(req.Answers))
	for _, ans := range req.Answers {
		if _, ok := byID[ans.QuestionID]; !ok {
			return nil, fmt.Errorf("%w: question %s does not belong to this quiz",
				apperr.ErrValidation, ans.QuestionID)
		}
		answered[ans.QuestionID] = ans.Answer
	}

	// Only submitted answers produce result rows. The score divides by the
	// question count snapshotted when the attempt started, so questions left
	// unanswered or added mid-attempt count against the taker.
	results := make([]model.QuestionResult, 0, len(answered))
	correct := 0
	for i := range questions {
		q := &questions[i]
		answer, ok := answered[q.ID]
		if !ok {
			continue
		}
		result := model.QuestionResult{
			ID:         uuid.NewString(),
			AttemptID:  attempt.ID,
			QuestionID: q.ID,
			UserAnswer: &answer,
			IsCorrect:  GradeAnswer(q, answer),
		}
		if result.IsCorrect {
			correct++
		}
		results = append(results, result)
	}

	now := time.Now().UTC()
	duration := int(now.Sub(attempt.StartedAt).Seconds())
	if duration < 0 {
		return nil, fmt.Errorf("%w: completion time precedes start time", apperr.ErrValidation)
	}

	attempt.CompletedAt = &now
	attempt.DurationSeconds = &duration
	attempt.CorrectAnswers = correct
	attempt.ScorePercentage = scorePercentage(correct, attempt.TotalQuestions)

	if err := s.attemptRepo.Update(attempt); err != nil {
		return nil, storeErr(err, "failed to save attempt")
	}
	if err := s.attemptRepo.CreateResults(results); err != nil {
		return nil, storeErr(err, "failed to save question results")
	}
	attempt.QuestionResults = results

	log.Info().
		Str("attemptID", attempt.ID).
		Int("score", attempt.ScorePercentage).
		Msg("Quiz attempt submitted")
	return attempt, nil
}

func (s *attemptService) Get(id string) (*model.QuizAttempt, error) {
	attempt, err := s.attemptRepo.FindByID(id)
	if err != nil {
		return nil, storeErr(err, fmt.Sprintf("attempt %s", id))
	}
	return attempt, nil
}

func (s *attemptService) GetForQuiz(quizID string) ([]model.QuizAttempt, error) {
	attempts, err := s.attemptRepo.FindByQuiz(quizID)
	if err != nil {
		return nil, storeErr(err, "failed to list attempts")
	}
	return attempts, nil
}

// scorePercentage rounds correct/total to the nearest whole percent. An
// empty quiz scores zero.
func scorePercentage(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}
