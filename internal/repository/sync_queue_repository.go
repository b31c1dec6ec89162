package repository

import (
	"github.com/lshigami/kioku/internal/model"
	"gorm.io/gorm"
)

type SyncQueueRepository interface {
	Enqueue(item *model.SyncQueueItem) error
	// FindAllOrdered snapshots the queue in replay order: all deck entries
	// before all card entries, FIFO within each type. Cards cannot be
	// created remotely before their parent deck has a remote id.
	FindAllOrdered() ([]model.SyncQueueItem, error)
	Delete(tx *gorm.DB, ids []uint) error
	Count() (int, error)
}

type syncQueueRepository struct {
	db *gorm.DB
}

func NewSyncQueueRepository(db *gorm.DB) SyncQueueRepository {
	return &syncQueueRepository{db: db}
}

func (r *syncQueueRepository) Enqueue(item *model.SyncQueueItem) error {
	return r.db.Create(item).Error
}

func (r *syncQueueRepository) FindAllOrdered() ([]model.SyncQueueItem, error) {
	var items []model.SyncQueueItem
	err := r.db.
		Order("CASE entity_type WHEN 'deck' THEN 0 ELSE 1 END, created_at ASC, id ASC").
		Find(&items).Error
	return items, err
}

func (r *syncQueueRepository) Delete(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return tx.Delete(&model.SyncQueueItem{}, "id IN ?", ids).Error
}

func (r *syncQueueRepository) Count() (int, error) {
	var count int64
	err := r.db.Model(&model.SyncQueueItem{}).Count(&count).Error
	return int(count), err
}
