package repository

import (
	"time"

	"github.com/lshigami/kioku/internal/model"
	"gorm.io/gorm"
)

type StudySessionRepository interface {
	Create(session *model.StudySession) error
	FindByID(id string) (*model.StudySession, error)
	Update(session *model.StudySession) error
	Aggregate(deckID string) (StudyAggregate, error)
}

// StudyAggregate carries the SQL rollup over ended study sessions.
type StudyAggregate struct {
	TotalSessions     int
	TotalStudyTime    int
	TotalCardsStudied int
	LastStudiedAt     *time.Time
}

type studySessionRepository struct {
	db *gorm.DB
}

func NewStudySessionRepository(db *gorm.DB) StudySessionRepository {
	return &studySessionRepository{db: db}
}

func (r *studySessionRepository) Create(session *model.StudySession) error {
	return r.db.Create(session).Error
}

func (r *studySessionRepository) FindByID(id string) (*model.StudySession, error) {
	var session model.StudySession
	if err := r.db.First(&session, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *studySessionRepository) Update(session *model.StudySession) error {
	return r.db.Save(session).Error
}

func (r *studySessionRepository) Aggregate(deckID string) (StudyAggregate, error) {
	var row struct {
		TotalSessions     int
		TotalStudyTime    int
		TotalCardsStudied int
		LastStudiedAt     *time.Time
	}
	err := r.db.Model(&model.StudySession{}).
		Select(`COUNT(*) as total_sessions,
			COALESCE(SUM(duration_seconds), 0) as total_study_time,
			COALESCE(SUM(cards_studied), 0) as total_cards_studied,
			MAX(ended_at) as last_studied_at`).
		Where("deck_id = ? AND ended_at IS NOT NULL", deckID).
		Scan(&row).Error
	if err != nil {
		return StudyAggregate{}, err
	}
	return StudyAggregate{
		TotalSessions:     row.TotalSessions,
		TotalStudyTime:    row.TotalStudyTime,
		TotalCardsStudied: row.TotalCardsStudied,
		LastStudiedAt:     row.LastStudiedAt,
	}, nil
}
