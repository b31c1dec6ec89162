package repository

import (
	"time"

	"github.com/lshigami/kioku/internal/model"
	"gorm.io/gorm"
)

type AttemptRepository interface {
	Create(attempt *model.QuizAttempt) error
	FindByID(id string) (*model.QuizAttempt, error)
	FindByQuiz(quizID string) ([]model.QuizAttempt, error)
	Update(attempt *model.QuizAttempt) error
	CreateResults(results []model.QuestionResult) error
	// Aggregate reduces all completed attempts for a quiz in one query.
	Aggregate(quizID string) (AttemptAggregate, error)
	RecentScores(quizID string, limit int) ([]int, error)
}

// AttemptAggregate carries the SQL rollup over completed attempts.
type AttemptAggregate struct {
	TotalAttempts   int
	AverageScore    float64
	BestScore       int
	AverageDuration *float64
	LastAttemptAt   *time.Time
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(attempt *model.QuizAttempt) error {
	return r.db.Create(attempt).Error
}

func (r *attemptRepository) FindByID(id string) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.db.Preload("QuestionResults").First(&attempt, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindByQuiz(quizID string) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.db.Where("quiz_id = ?", quizID).
		Order("started_at DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *attemptRepository) Update(attempt *model.QuizAttempt) error {
	return r.db.Omit("QuestionResults").Save(attempt).Error
}

func (r *attemptRepository) CreateResults(results []model.QuestionResult) error {
	if len(results) == 0 {
		return nil
	}
	return r.db.Create(&results).Error
}

func (r *attemptRepository) Aggregate(quizID string) (AttemptAggregate, error) {
	var row struct {
		TotalAttempts   int
		AverageScore    float64
		BestScore       int
		AverageDuration *float64
		LastAttemptAt   *time.Time
	}
	err := r.db.Model(&model.QuizAttempt{}).
		Select(`COUNT(*) as total_attempts,
			COALESCE(AVG(score_percentage), 0) as average_score,
			COALESCE(MAX(score_percentage), 0) as best_score,
			AVG(duration_seconds) as average_duration,
			MAX(completed_at) as last_attempt_at`).
		Where("quiz_id = ? AND completed_at IS NOT NULL", quizID).
		Scan(&row).Error
	if err != nil {
		return AttemptAggregate{}, err
	}
	return AttemptAggregate{
		TotalAttempts:   row.TotalAttempts,
		AverageScore:    row.AverageScore,
		BestScore:       row.BestScore,
		AverageDuration: row.AverageDuration,
		LastAttemptAt:   row.LastAttemptAt,
	}, nil
}

func (r *attemptRepository) RecentScores(quizID string, limit int) ([]int, error) {
	scores := make([]int, 0, limit)
	err := r.db.Model(&model.QuizAttempt{}).
		Where("quiz_id = ? AND completed_at IS NOT NULL", quizID).
		Order("completed_at DESC").
		Limit(limit).
		Pluck("score_percentage", &scores).Error
	return scores, err
}
