package repository

import (
	"time"

	"github.com/lshigami/kioku/internal/model"
	"gorm.io/gorm"
)

type DeckRepository interface {
	Create(deck *model.Deck) error
	FindByID(id string) (*model.Deck, error)
	FindByRemoteID(remoteID int64) (*model.Deck, error)
	FindAllByUser(userID string) ([]DeckWithCardCount, error)
	Update(deck *model.Deck) error
	Delete(id string) error
	DeleteByUser(userID string) error
	// MarkPendingIfSynced demotes a synced deck to pending_sync. It is a
	// no-op for decks that are local_only or already pending.
	MarkPendingIfSynced(id string) error
	// MarkSynced records a successful push: status synced, remote id and
	// last-synced timestamp set. Runs against tx so the sync service can
	// batch it with queue deletion.
	MarkSynced(tx *gorm.DB, id string, remoteID int64, syncedAt time.Time) error
	CountCards(deckID string) (int, error)
}

// DeckWithCardCount pairs a deck row with the number of cards it holds,
// computed in a single query.
type DeckWithCardCount struct {
	model.Deck
	CardCount int
}

type deckRepository struct {
	db *gorm.DB
}

func NewDeckRepository(db *gorm.DB) DeckRepository {
	return &deckRepository{db: db}
}

func (r *deckRepository) Create(deck *model.Deck) error {
	return r.db.Create(deck).Error
}

func (r *deckRepository) FindByID(id string) (*model.Deck, error) {
	var deck model.Deck
	if err := r.db.First(&deck, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &deck, nil
}

func (r *deckRepository) FindByRemoteID(remoteID int64) (*model.Deck, error) {
	var deck model.Deck
	if err := r.db.First(&deck, "remote_id = ?", remoteID).Error; err != nil {
		return nil, err
	}
	return &deck, nil
}

func (r *deckRepository) FindAllByUser(userID string) ([]DeckWithCardCount, error) {
	var results []DeckWithCardCount
	err := r.db.Model(&model.Deck{}).
		Select("decks.*, (SELECT COUNT(*) FROM cards WHERE cards.deck_id = decks.id) as card_count").
		Where("decks.user_id = ?", userID).
		Order("decks.updated_at DESC").
		Scan(&results).Error
	return results, err
}

func (r *deckRepository) Update(deck *model.Deck) error {
	return r.db.Save(deck).Error
}

func (r *deckRepository) Delete(id string) error {
	return r.db.Delete(&model.Deck{}, "id = ?", id).Error
}

func (r *deckRepository) DeleteByUser(userID string) error {
	return r.db.Delete(&model.Deck{}, "user_id = ?", userID).Error
}

func (r *deckRepository) MarkPendingIfSynced(id string) error {
	return r.db.Model(&model.Deck{}).
		Where("id = ? AND sync_status = ?", id, model.SyncSynced).
		Updates(map[string]interface{}{
			"sync_status": model.SyncPendingSync,
			"updated_at":  time.Now().UTC(),
		}).Error
}

func (r *deckRepository) MarkSynced(tx *gorm.DB, id string, remoteID int64, syncedAt time.Time) error {
	return tx.Model(&model.Deck{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"sync_status":    model.SyncSynced,
			"remote_id":      remoteID,
			"last_synced_at": syncedAt,
		}).Error
}

func (r *deckRepository) CountCards(deckID string) (int, error) {
	var count int64
	err := r.db.Model(&model.Card{}).Where("deck_id = ?", deckID).Count(&count).Error
	return int(count), err
}
