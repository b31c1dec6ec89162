package repository

import (
	"github.com/lshigami/kioku/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AppStateRepository is a generic key-value store; the active user id is
// its only current tenant.
type AppStateRepository interface {
	Set(key, value string) error
	Get(key string) (string, error)
	Delete(key string) error
}

type appStateRepository struct {
	db *gorm.DB
}

func NewAppStateRepository(db *gorm.DB) AppStateRepository {
	return &appStateRepository{db: db}
}

func (r *appStateRepository) Set(key, value string) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&model.AppState{Key: key, Value: value}).Error
}

func (r *appStateRepository) Get(key string) (string, error) {
	var state model.AppState
	if err := r.db.First(&state, "key = ?", key).Error; err != nil {
		return "", err
	}
	return state.Value, nil
}

func (r *appStateRepository) Delete(key string) error {
	return r.db.Delete(&model.AppState{}, "key = ?", key).Error
}
