package service

import (
	"fmt"
	"math"

	"github.com/lshigami/kioku/internal/dto"
	"github.com/lshigami/kioku/internal/repository"
)

const recentScoreWindow = 5

type StatsService interface {
	QuizStats(quizID string) (*dto.QuizStats, error)
	DeckStudyStats(deckID string) (*dto.DeckStudyStats, error)
}

type statsService struct {
	attemptRepo repository.AttemptRepository
	quizRepo    repository.QuizRepository
	sessionRepo repository.StudySessionRepository
	deckRepo    repository.DeckRepository
}

func NewStatsService(
	attemptRepo repository.AttemptRepository,
	quizRepo repository.QuizRepository,
	sessionRepo repository.StudySessionRepository,
	deckRepo repository.DeckRepository,
) StatsService {
	return &statsService{
		attemptRepo: attemptRepo,
		quizRepo:    quizRepo,
		sessionRepo: sessionRepo,
		deckRepo:    deckRepo,
	}
}

func (s *statsService) QuizStats(quizID string) (*dto.QuizStats, error) {
	if _, err := s.quizRepo.FindByID(quizID); err != nil {
		return nil, storeErr(err, fmt.Sprintf("quiz %s", quizID))
	}

	agg, err := s.attemptRepo.Aggregate(quizID)
	if err != nil {
		return nil, storeErr(err, "failed to aggregate attempts")
	}
	scores, err := s.attemptRepo.RecentScores(quizID, recentScoreWindow)
	if err != nil {
		return nil, storeErr(err, "failed to load recent scores")
	}

	stats := &dto.QuizStats{
		QuizID:        quizID,
		TotalAttempts: agg.TotalAttempts,
		AverageScore:  agg.AverageScore,
		BestScore:     agg.BestScore,
		LastAttemptAt: agg.LastAttemptAt,
		RecentScores:  scores,
	}
	if agg.AverageDuration != nil {
		avg := int(math.Round(*agg.AverageDuration))
		stats.AverageDurationSeconds = &avg
	}
	return stats, nil
}

func (s *statsService) DeckStudyStats(deckID string) (*dto.DeckStudyStats, error) {
	if _, err := s.deckRepo.FindByID(deckID); err != nil {
		return nil, storeErr(err, fmt.Sprintf("deck %s", deckID))
	}

	agg, err := s.sessionRepo.Aggregate(deckID)
	if err != nil {
		return nil, storeErr(err, "failed to aggregate study sessions")
	}
	return &dto.DeckStudyStats{
		DeckID:                deckID,
		TotalSessions:         agg.TotalSessions,
		TotalStudyTimeSeconds: agg.TotalStudyTime,
		TotalCardsStudied:     agg.TotalCardsStudied,
		LastStudiedAt:         agg.LastStudiedAt,
	}, nil
}
