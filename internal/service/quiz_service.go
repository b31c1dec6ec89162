package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/kioku/internal/dto"
	"github.com/lshigami/kioku/internal/model"
	"github.com/lshigami/kioku/internal/repository"
)

type QuizService interface {
	Create(userID string, req dto.CreateQuizRequest) (*model.Quiz, error)
	GetAll(userID string) ([]model.Quiz, error)
	Get(id string) (*model.Quiz, error)
	GetWithQuestions(id string) (*model.Quiz, error)
	Update(id string, req dto.UpdateQuizRequest) (*model.Quiz, error)
	Delete(id string) error
}

type quizService struct {
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
}

func NewQuizService(quizRepo repository.QuizRepository, questionRepo repository.QuestionRepository) QuizService {
	return &quizService{quizRepo: quizRepo, questionRepo: questionRepo}
}

func (s *quizService) Create(userID string, req dto.CreateQuizRequest) (*model.Quiz, error) {
	quiz := &model.Quiz{
		ID:               uuid.NewString(),
		UserID:           userID,
		Name:             req.Name,
		Description:      req.Description,
		ShuffleQuestions: req.ShuffleQuestions != nil && *req.ShuffleQuestions,
	}
	if err := s.quizRepo.Create(quiz); err != nil {
		return nil, storeErr(err, "failed to create quiz")
	}
	return quiz, nil
}

func (s *quizService) GetAll(userID string) ([]model.Quiz, error) {
	rows, err := s.quizRepo.FindAllByUser(userID)
	if err != nil {
		return nil, storeErr(err, "failed to list quizzes")
	}
	quizzes := make([]model.Quiz, 0, len(rows))
	for _, row := range rows {
		quiz := row.Quiz
		count := row.QuestionCount
		quiz.QuestionCount = &count
		quizzes = append(quizzes, quiz)
	}
	return quizzes, nil
}

func (s *quizService) Get(id string) (*model.Quiz, error) {
	quiz, err := s.quizRepo.FindByID(id)
	if err != nil {
		return nil, storeErr(err, fmt.Sprintf("quiz %s", id))
	}
	count, err := s.questionRepo.CountByQuiz(id)
	if err != nil {
		return nil, storeErr(err, "failed to count questions")
	}
	quiz.QuestionCount = &count
	return quiz, nil
}

func (s *quizService) GetWithQuestions(id string) (*model.Quiz, error) {
	quiz, err := s.quizRepo.FindByIDWithQuestions(id)
	if err != nil {
		return nil, storeErr(err, fmt.Sprintf("quiz %s", id))
	}
	count := len(quiz.Questions)
	quiz.QuestionCount = &count
	return quiz, nil
}

func (s *quizService) Update(id string, req dto.UpdateQuizRequest) (*model.Quiz, error) {
	quiz, err := s.quizRepo.FindByID(id)
	if err != nil {
		return nil, storeErr(err, fmt.Sprintf("quiz %s", id))
	}
	quiz.Name = req.Name
	quiz.Description = req.Description
	quiz.ShuffleQuestions = req.ShuffleQuestions != nil && *req.ShuffleQuestions
	quiz.UpdatedAt = time.Now().UTC()
	if err := s.quizRepo.Update(quiz); err != nil {
		return nil, storeErr(err, "failed to update quiz")
	}
	return quiz, nil
}

func (s *quizService) Delete(id string) error {
	if _, err := s.quizRepo.FindByID(id); err != nil {
		return storeErr(err, fmt.Sprintf("quiz %s", id))
	}
	if err := s.quizRepo.Delete(id); err != nil {
		return storeErr(err, "failed to delete quiz")
	}
	return nil
}
