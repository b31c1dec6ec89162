package repository

import (
	"github.com/lshigami/kioku/internal/model"
	"gorm.io/gorm"
)

type CardRepository interface {
	Create(card *model.Card) error
	FindByID(id, deckID string) (*model.Card, error)
	FindByDeck(deckID string) ([]model.Card, error)
	FindByRemoteID(remoteID int64, deckID string) (*model.Card, error)
	Update(card *model.Card) error
	Delete(id, deckID string) error
	FindQueuedRemoteDeckID(cardID string) (*int64, error)
	MarkSynced(tx *gorm.DB, id string, remoteID int64) error
}

type cardRepository struct {
	db *gorm.DB
}

func NewCardRepository(db *gorm.DB) CardRepository {
	return &cardRepository{db: db}
}

func preloadTags(db *gorm.DB) *gorm.DB {
	return db.Order("tags.name ASC")
}

func (r *cardRepository) Create(card *model.Card) error {
	return r.db.Create(card).Error
}

func (r *cardRepository) FindByID(id, deckID string) (*model.Card, error) {
	var card model.Card
	err := r.db.Preload("Tags", preloadTags).
		First(&card, "id = ? AND deck_id = ?", id, deckID).Error
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *cardRepository) FindByDeck(deckID string) ([]model.Card, error) {
	var cards []model.Card
	err := r.db.Preload("Tags", preloadTags).
		Where("deck_id = ?", deckID).
		Order("created_at ASC").
		Find(&cards).Error
	return cards, err
}

func (r *cardRepository) FindByRemoteID(remoteID int64, deckID string) (*model.Card, error) {
	var card model.Card
	if err := r.db.First(&card, "remote_id = ? AND deck_id = ?", remoteID, deckID).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *cardRepository) Update(card *model.Card) error {
	return r.db.Save(card).Error
}

func (r *cardRepository) Delete(id, deckID string) error {
	return r.db.Delete(&model.Card{}, "id = ? AND deck_id = ?", id, deckID).Error
}

// FindQueuedRemoteDeckID resolves the persisted remote id of the deck owning
// the given card, or nil if the deck has never been synced.
func (r *cardRepository) FindQueuedRemoteDeckID(cardID string) (*int64, error) {
	var card model.Card
	if err := r.db.Select("deck_id").First(&card, "id = ?", cardID).Error; err != nil {
		return nil, err
	}
	var deck model.Deck
	if err := r.db.Select("remote_id").First(&deck, "id = ?", card.DeckID).Error; err != nil {
		return nil, err
	}
	return deck.RemoteID, nil
}

func (r *cardRepository) MarkSynced(tx *gorm.DB, id string, remoteID int64) error {
	return tx.Model(&model.Card{}).Where("id = ?", id).
		Update("remote_id", remoteID).Error
}
