package repository

import (
	"github.com/lshigami/kioku/internal/model"
	"gorm.io/gorm"
)

type TagRepository interface {
	Create(tag *model.Tag) error
	FindByDeck(deckID string) ([]model.Tag, error)
	FindByName(deckID, name string) (*model.Tag, error)
	Delete(id, deckID string) error
	AddToCard(cardID, tagID string) error
	RemoveFromCard(cardID, tagID string) error
	FindForCard(cardID string) ([]model.Tag, error)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(tag *model.Tag) error {
	return r.db.Create(tag).Error
}

func (r *tagRepository) FindByDeck(deckID string) ([]model.Tag, error) {
	var tags []model.Tag
	err := r.db.Where("deck_id = ?", deckID).Order("name ASC").Find(&tags).Error
	return tags, err
}

func (r *tagRepository) FindByName(deckID, name string) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.First(&tag, "deck_id = ? AND name = ?", deckID, name).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) Delete(id, deckID string) error {
	return r.db.Delete(&model.Tag{}, "id = ? AND deck_id = ?", id, deckID).Error
}

func (r *tagRepository) AddToCard(cardID, tagID string) error {
	// INSERT OR IGNORE keeps the association idempotent.
	return r.db.Exec(
		"INSERT OR IGNORE INTO card_tags (card_id, tag_id) VALUES (?, ?)",
		cardID, tagID,
	).Error
}

func (r *tagRepository) RemoveFromCard(cardID, tagID string) error {
	return r.db.Exec(
		"DELETE FROM card_tags WHERE card_id = ? AND tag_id = ?",
		cardID, tagID,
	).Error
}

func (r *tagRepository) FindForCard(cardID string) ([]model.Tag, error) {
	var tags []model.Tag
	err := r.db.
		Joins("INNER JOIN card_tags ct ON ct.tag_id = tags.id").
		Where("ct.card_id = ?", cardID).
		Order("tags.name ASC").
		Find(&tags).Error
	return tags, err
}
