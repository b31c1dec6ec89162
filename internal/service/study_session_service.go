package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/kioku/internal/apperr"
	"github.com/lshigami/kioku/internal/dto"
	"github.com/lshigami/kioku/internal/model"
	"github.com/lshigami/kioku/internal/repository"
)

type StudySessionService interface {
	Start(deckID string) (*model.StudySession, error)
	End(sessionID string, req dto.EndStudySessionRequest) (*model.StudySession, error)
	Get(id string) (*model.StudySession, error)
}

type studySessionService struct {
	sessionRepo repository.StudySessionRepository
	deckRepo    repository.DeckRepository
}

func NewStudySessionService(sessionRepo repository.StudySessionRepository, deckRepo repository.DeckRepository) StudySessionService {
	return &studySessionService{sessionRepo: sessionRepo, deckRepo: deckRepo}
}

func (s *studySessionService) Start(deckID string) (*model.StudySession, error) {
	if _, err := s.deckRepo.FindByID(deckID); err != nil {
		return nil, storeErr(err, fmt.Sprintf("deck %s", deckID))
	}
	session := &model.StudySession{
		ID:        uuid.NewString(),
		DeckID:    deckID,
		StartedAt: time.Now().UTC(),
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, storeErr(err, "failed to create study session")
	}
	return session, nil
}

func (s *studySessionService) End(sessionID string, req dto.EndStudySessionRequest) (*model.StudySession, error) {
	session, err := s.sessionRepo.FindByID(sessionID)
	if err != nil {
		return nil, storeErr(err, fmt.Sprintf("study session %s", sessionID))
	}
	if session.EndedAt != nil {
		return nil, fmt.Errorf("%w: study session already ended", apperr.ErrValidation)
	}

	now := time.Now().UTC()
	duration := int(now.Sub(session.StartedAt).Seconds())
	if duration < 0 {
		duration = 0
	}
	session.EndedAt = &now
	session.DurationSeconds = &duration
	session.CardsStudied = req.CardsStudied

	if err := s.sessionRepo.Update(session); err != nil {
		return nil, storeErr(err, "failed to end study session")
	}
	return session, nil
}

func (s *studySessionService) Get(id string) (*model.StudySession, error) {
	session, err := s.sessionRepo.FindByID(id)
	if err != nil {
		return nil, storeErr(err, fmt.Sprintf("study session %s", id))
	}
	return session, nil
}
