package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lshigami/kioku/internal/apperr"
	"github.com/lshigami/kioku/internal/dto"
	"github.com/lshigami/kioku/internal/model"
	"github.com/lshigami/kioku/internal/repository"
)

type QuestionService interface {
	Create(quizID string, req dto.CreateQuestionRequest) (*model.Question, error)
	Get(id string) (*model.Question, error)
	GetForQuiz(quizID string) ([]model.Question, error)
	Update(id string, req dto.UpdateQuestionRequest) (*model.Question, error)
	Delete(id string) error
	Reorder(quizID string, req dto.ReorderQuestionsRequest) error
	ReplaceChoices(questionID string, req dto.ReplaceChoicesRequest) (*model.Question, error)
}

type questionService struct {
	questionRepo repository.QuestionRepository
	quizRepo     repository.QuizRepository
}

func NewQuestionService(questionRepo repository.QuestionRepository, quizRepo repository.QuizRepository) QuestionService {
	return &questionService{questionRepo: questionRepo, quizRepo: quizRepo}
}

func (s *questionService) Create(quizID string, req dto.CreateQuestionRequest) (*model.Question, error) {
	if _, err := s.quizRepo.FindByID(quizID); err != nil {
		return nil, storeErr(err, fmt.Sprintf("quiz %s", quizID))
	}

	qt := model.ParseQuestionType(req.QuestionType)
	if err := validateQuestion(qt, req.CorrectAnswer, len(req.Choices)); err != nil {
		return nil, err
	}

	position, err := s.questionRepo.NextPosition(quizID)
	if err != nil {
		return nil, storeErr(err, "failed to compute question position")
	}

	question := &model.Question{
		ID:              uuid.NewString(),
		QuizID:          quizID,
		QuestionType:    qt,
		Content:         req.Content,
		ContentType:     contentTypeOrDefault(req.ContentType),
		ContentLanguage: req.ContentLanguage,
		CorrectAnswer:   req.CorrectAnswer,
		MultipleAnswers: req.MultipleAnswers != nil && *req.MultipleAnswers,
		Explanation:     req.Explanation,
		Position:        position,
		Choices:         buildChoices(req.Choices),
	}
	if err := s.questionRepo.Create(question); err != nil {
		return nil, storeErr(err, "failed to create question")
	}
	return question, nil
}

func (s *questionService) Get(id string) (*model.Question, error) {
	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		return nil, storeErr(err, fmt.Sprintf("question %s", id))
	}
	return question, nil
}

func (s *questionService) GetForQuiz(quizID string) ([]model.Question, error) {
	questions, err := s.questionRepo.FindByQuiz(quizID)
	if err != nil {
		return nil, storeErr(err, "failed to list questions")
	}
	return questions, nil
}

func (s *questionService) Update(id string, req dto.UpdateQuestionRequest) (*model.Question, error) {
	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		return nil, storeErr(err, fmt.Sprintf("question %s", id))
	}

	qt := model.ParseQuestionType(req.QuestionType)
	if err := validateQuestion(qt, req.CorrectAnswer, len(question.Choices)); err != nil {
		return nil, err
	}

	question.QuestionType = qt
	question.Content = req.Content
	question.ContentType = contentTypeOrDefault(req.ContentType)
	question.ContentLanguage = req.ContentLanguage
	question.CorrectAnswer = req.CorrectAnswer
	question.MultipleAnswers = req.MultipleAnswers != nil && *req.MultipleAnswers
	question.Explanation = req.Explanation

	if err := s.questionRepo.Update(question); err != nil {
		return nil, storeErr(err, "failed to update question")
	}
	return question, nil
}

func (s *questionService) Delete(id string) error {
	if _, err := s.questionRepo.FindByID(id); err != nil {
		return storeErr(err, fmt.Sprintf("question %s", id))
	}
	if err := s.questionRepo.Delete(id); err != nil {
		return storeErr(err, "failed to delete question")
	}
	return nil
}

func (s *questionService) Reorder(quizID string, req dto.ReorderQuestionsRequest) error {
	count, err := s.questionRepo.CountByQuiz(quizID)
	if err != nil {
		return storeErr(err, "failed to count questions")
	}
	if len(req.QuestionIDs) != count {
		return fmt.Errorf("%w: reorder must list all %d questions, got %d",
			apperr.ErrValidation, count, len(req.QuestionIDs))
	}
	if err := s.questionRepo.Reorder(quizID, req.QuestionIDs); err != nil {
		return storeErr(err, "failed to reorder questions")
	}
	return nil
}

func (s *questionService) ReplaceChoices(questionID string, req dto.ReplaceChoicesRequest) (*model.Question, error) {
	question, err := s.questionRepo.FindByID(questionID)
	if err != nil {
		return nil, storeErr(err, fmt.Sprintf("question %s", questionID))
	}
	if question.QuestionType != model.MultipleChoice {
		return nil, fmt.Errorf("%w: choices only apply to multiple choice questions", apperr.ErrValidation)
	}
	choices := buildChoices(req.Choices)
	for i := range choices {
		choices[i].QuestionID = questionID
	}
	if err := s.questionRepo.ReplaceChoices(questionID, choices); err != nil {
		return nil, storeErr(err, "failed to replace choices")
	}
	return s.questionRepo.FindByID(questionID)
}

func buildChoices(reqs []dto.CreateChoiceRequest) []model.Choice {
	choices := make([]model.Choice, 0, len(reqs))
	for i, c := range reqs {
		choices = append(choices, model.Choice{
			ID:        uuid.NewString(),
			Text:      c.Text,
			IsCorrect: c.IsCorrect,
			Position:  i,
		})
	}
	return choices
}

// validateQuestion enforces the per-type shape: fill-in-blank needs a
// correct answer, multiple choice needs at least one choice.
func validateQuestion(qt model.QuestionType, correctAnswer *string, choiceCount int) error {
	switch qt {
	case model.FillInBlank:
		if correctAnswer == nil || *correctAnswer == "" {
			return fmt.Errorf("%w: fill in blank questions require a correct answer", apperr.ErrValidation)
		}
	case model.MultipleChoice:
		if choiceCount == 0 {
			return fmt.Errorf("%w: multiple choice questions require at least one choice", apperr.ErrValidation)
		}
	}
	return nil
}
