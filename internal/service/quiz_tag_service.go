package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lshigami/kioku/internal/model"
	"github.com/lshigami/kioku/internal/repository"
)

type QuizTagService interface {
	Create(quizID, name string) (*model.QuizTag, error)
	GetForQuiz(quizID string) ([]model.QuizTag, error)
	GetByName(quizID, name string) (*model.QuizTag, error)
	Delete(id, quizID string) error
	AddToQuestion(questionID, tagID string) error
	RemoveFromQuestion(questionID, tagID string) error
	GetForQuestion(questionID string) ([]model.QuizTag, error)
}

type quizTagService struct {
	quizTagRepo repository.QuizTagRepository
	quizRepo    repository.QuizRepository
}

func NewQuizTagService(quizTagRepo repository.QuizTagRepository, quizRepo repository.QuizRepository) QuizTagService {
	return &quizTagService{quizTagRepo: quizTagRepo, quizRepo: quizRepo}
}

func (s *quizTagService) Create(quizID, name string) (*model.QuizTag, error) {
	if _, err := s.quizRepo.FindByID(quizID); err != nil {
		return nil, storeErr(err, fmt.Sprintf("quiz %s", quizID))
	}
	tag := &model.QuizTag{
		ID:     uuid.NewString(),
		QuizID: quizID,
		Name:   name,
	}
	if err := s.quizTagRepo.Create(tag); err != nil {
		return nil, storeErr(err, "failed to create quiz tag")
	}
	return tag, nil
}

func (s *quizTagService) GetForQuiz(quizID string) ([]model.QuizTag, error) {
	tags, err := s.quizTagRepo.FindByQuiz(quizID)
	if err != nil {
		return nil, storeErr(err, "failed to list quiz tags")
	}
	return tags, nil
}

func (s *quizTagService) GetByName(quizID, name string) (*model.QuizTag, error) {
	tag, err := s.quizTagRepo.FindByName(quizID, name)
	if err != nil {
		return nil, storeErr(err, fmt.Sprintf("quiz tag %q", name))
	}
	return tag, nil
}

func (s *quizTagService) Delete(id, quizID string) error {
	if err := s.quizTagRepo.Delete(id, quizID); err != nil {
		return storeErr(err, "failed to delete quiz tag")
	}
	return nil
}

func (s *quizTagService) AddToQuestion(questionID, tagID string) error {
	if err := s.quizTagRepo.AddToQuestion(questionID, tagID); err != nil {
		return storeErr(err, "failed to tag question")
	}
	return nil
}

func (s *quizTagService) RemoveFromQuestion(questionID, tagID string) error {
	if err := s.quizTagRepo.RemoveFromQuestion(questionID, tagID); err != nil {
		return storeErr(err, "failed to untag question")
	}
	return nil
}

func (s *quizTagService) GetForQuestion(questionID string) ([]model.QuizTag, error) {
	tags, err := s.quizTagRepo.FindForQuestion(questionID)
	if err != nil {
		return nil, storeErr(err, "failed to list question tags")
	}
	return tags, nil
}
