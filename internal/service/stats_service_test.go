package service

import (
	"testing"
	"time"

	"github.com/lshigami/kioku/internal/dto"
	"github.com/lshigami/kioku/internal/model"
	"github.com/lshigami/kioku/internal/repository"
	"gorm.io/gorm"
)

func newStatsFixture(t *testing.T) (*gorm.DB, StatsService, *quizFixture, StudySessionService, DeckService) {
	t.Helper()
	db := newTestDB(t)

	deckRepo := repository.NewDeckRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	sessionRepo := repository.NewStudySessionRepository(db)
	queueRepo := repository.NewSyncQueueRepository(db)

	statsSvc := NewStatsService(attemptRepo, quizRepo, sessionRepo, deckRepo)
	sessionSvc := NewStudySessionService(sessionRepo, deckRepo)
	deckSvc := NewDeckService(deckRepo, queueRepo)
	qf := newQuizFixture(t, db)
	return db, statsSvc, qf, sessionSvc, deckSvc
}

func TestQuizStatsEmpty(t *testing.T) {
	_, statsSvc, qf, _, _ := newStatsFixture(t)

	stats, err := statsSvc.QuizStats(qf.quiz.ID)
	if err != nil {
		t.Fatalf("quiz stats: %v", err)
	}
	if stats.TotalAttempts != 0 {
		t.Errorf("TotalAttempts = %d, want 0", stats.TotalAttempts)
	}
	if stats.AverageScore != 0 {
		t.Errorf("AverageScore = %v, want 0", stats.AverageScore)
	}
	if stats.BestScore != 0 {
		t.Errorf("BestScore = %d, want 0", stats.BestScore)
	}
	if stats.AverageDurationSeconds != nil {
		t.Errorf("AverageDurationSeconds = %v, want nil", *stats.AverageDurationSeconds)
	}
	if stats.LastAttemptAt != nil {
		t.Error("LastAttemptAt set for quiz with no attempts")
	}
	if len(stats.RecentScores) != 0 {
		t.Errorf("RecentScores = %v, want empty", stats.RecentScores)
	}
}

func seedAttempt(t *testing.T, db *gorm.DB, quizID string, score int, completedAt time.Time) {
	t.Helper()
	duration := 60
	attempt := &model.QuizAttempt{
		ID:              "attempt-" + completedAt.Format("150405") + "-" + time.Now().Format("05.000000000"),
		QuizID:          quizID,
		StartedAt:       completedAt.Add(-time.Minute),
		CompletedAt:     &completedAt,
		DurationSeconds: &duration,
		TotalQuestions:  10,
		CorrectAnswers:  score / 10,
		ScorePercentage: score,
	}
	if err := db.Create(attempt).Error; err != nil {
		t.Fatalf("seeding attempt: %v", err)
	}
}

func TestQuizStatsAggregates(t *testing.T) {
	db, statsSvc, qf, _, _ := newStatsFixture(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	scores := []int{40, 60, 80, 100, 50, 70}
	for i, score := range scores {
		seedAttempt(t, db, qf.quiz.ID, score, base.Add(time.Duration(i)*time.Hour))
	}
	// An unfinished attempt must not count.
	if err := db.Create(&model.QuizAttempt{
		ID: "attempt-open", QuizID: qf.quiz.ID, StartedAt: base, TotalQuestions: 10,
	}).Error; err != nil {
		t.Fatalf("seeding open attempt: %v", err)
	}

	stats, err := statsSvc.QuizStats(qf.quiz.ID)
	if err != nil {
		t.Fatalf("quiz stats: %v", err)
	}
	if stats.TotalAttempts != 6 {
		t.Errorf("TotalAttempts = %d, want 6", stats.TotalAttempts)
	}
	if stats.BestScore != 100 {
		t.Errorf("BestScore = %d, want 100", stats.BestScore)
	}
	wantAvg := (40.0 + 60 + 80 + 100 + 50 + 70) / 6
	if stats.AverageScore < wantAvg-0.01 || stats.AverageScore > wantAvg+0.01 {
		t.Errorf("AverageScore = %v, want %v", stats.AverageScore, wantAvg)
	}
	if stats.AverageDurationSeconds == nil || *stats.AverageDurationSeconds != 60 {
		t.Errorf("AverageDurationSeconds = %v, want 60", stats.AverageDurationSeconds)
	}
	if stats.LastAttemptAt == nil || !stats.LastAttemptAt.Equal(base.Add(5*time.Hour)) {
		t.Errorf("LastAttemptAt = %v, want %v", stats.LastAttemptAt, base.Add(5*time.Hour))
	}

	// Last five, newest first.
	want := []int{70, 50, 100, 80, 60}
	if len(stats.RecentScores) != len(want) {
		t.Fatalf("RecentScores = %v, want %v", stats.RecentScores, want)
	}
	for i := range want {
		if stats.RecentScores[i] != want[i] {
			t.Fatalf("RecentScores = %v, want %v", stats.RecentScores, want)
		}
	}
}

func TestDeckStudyStatsEmpty(t *testing.T) {
	_, statsSvc, _, _, deckSvc := newStatsFixture(t)
	deck, err := deckSvc.Create("user-1", dto.CreateDeckRequest{Name: "Kanji"})
	if err != nil {
		t.Fatalf("creating deck: %v", err)
	}

	stats, err := statsSvc.DeckStudyStats(deck.ID)
	if err != nil {
		t.Fatalf("deck stats: %v", err)
	}
	if stats.TotalSessions != 0 || stats.TotalStudyTimeSeconds != 0 || stats.TotalCardsStudied != 0 {
		t.Errorf("empty deck stats = %+v, want zeroes", stats)
	}
	if stats.LastStudiedAt != nil {
		t.Error("LastStudiedAt set for unstudied deck")
	}
}

func TestDeckStudyStatsAggregates(t *testing.T) {
	db, statsSvc, _, sessionSvc, deckSvc := newStatsFixture(t)
	deck, err := deckSvc.Create("user-1", dto.CreateDeckRequest{Name: "Kanji"})
	if err != nil {
		t.Fatalf("creating deck: %v", err)
	}

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, cards := range []int{10, 20} {
		ended := base.Add(time.Duration(i) * time.Hour)
		duration := 300
		session := &model.StudySession{
			ID:              deck.ID + "-session-" + string(rune('a'+i)),
			DeckID:          deck.ID,
			StartedAt:       ended.Add(-5 * time.Minute),
			EndedAt:         &ended,
			DurationSeconds: &duration,
			CardsStudied:    cards,
		}
		if err := db.Create(session).Error; err != nil {
			t.Fatalf("seeding session: %v", err)
		}
	}
	// A session still in progress must not count.
	if _, err := sessionSvc.Start(deck.ID); err != nil {
		t.Fatalf("starting open session: %v", err)
	}

	stats, err := statsSvc.DeckStudyStats(deck.ID)
	if err != nil {
		t.Fatalf("deck stats: %v", err)
	}
	if stats.TotalSessions != 2 {
		t.Errorf("TotalSessions = %d, want 2", stats.TotalSessions)
	}
	if stats.TotalStudyTimeSeconds != 600 {
		t.Errorf("TotalStudyTimeSeconds = %d, want 600", stats.TotalStudyTimeSeconds)
	}
	if stats.TotalCardsStudied != 30 {
		t.Errorf("TotalCardsStudied = %d, want 30", stats.TotalCardsStudied)
	}
	if stats.LastStudiedAt == nil || !stats.LastStudiedAt.Equal(base.Add(time.Hour)) {
		t.Errorf("LastStudiedAt = %v, want %v", stats.LastStudiedAt, base.Add(time.Hour))
	}
}

func TestStudySessionEndRejectsDoubleEnd(t *testing.T) {
	_, _, _, sessionSvc, deckSvc := newStatsFixture(t)
	deck, err := deckSvc.Create("user-1", dto.CreateDeckRequest{Name: "Kanji"})
	if err != nil {
		t.Fatalf("creating deck: %v", err)
	}
	session, err := sessionSvc.Start(deck.ID)
	if err != nil {
		t.Fatalf("starting session: %v", err)
	}
	ended, err := sessionSvc.End(session.ID, dto.EndStudySessionRequest{CardsStudied: 5})
	if err != nil {
		t.Fatalf("ending session: %v", err)
	}
	if ended.EndedAt == nil || ended.CardsStudied != 5 {
		t.Errorf("ended session = %+v, want EndedAt set and 5 cards", ended)
	}
	if _, err := sessionSvc.End(session.ID, dto.EndStudySessionRequest{}); err == nil {
		t.Error("second End succeeded, want validation error")
	}
}
