package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/kioku/internal/dto"
	"github.com/lshigami/kioku/internal/model"
	"github.com/lshigami/kioku/internal/repository"
	"github.com/rs/zerolog/log"
)

type DeckService interface {
	Create(userID string, req dto.CreateDeckRequest) (*model.Deck, error)
	GetAll(userID string) ([]model.Deck, error)
	Get(id string) (*model.Deck, error)
	Update(id string, req dto.UpdateDeckRequest) (*model.Deck, error)
	Delete(id string) error
}

type deckService struct {
	deckRepo  repository.DeckRepository
	queueRepo repository.SyncQueueRepository
}

func NewDeckService(deckRepo repository.DeckRepository, queueRepo repository.SyncQueueRepository) DeckService {
	return &deckService{deckRepo: deckRepo, queueRepo: queueRepo}
}

func (s *deckService) Create(userID string, req dto.CreateDeckRequest) (*model.Deck, error) {
	deck := &model.Deck{
		ID:           uuid.NewString(),
		UserID:       userID,
		Name:         req.Name,
		Description:  req.Description,
		ShuffleCards: req.ShuffleCards != nil && *req.ShuffleCards,
		SyncStatus:   model.SyncLocalOnly,
	}
	if err := s.deckRepo.Create(deck); err != nil {
		return nil, storeErr(err, "failed to create deck")
	}

	payload, err := json.Marshal(deckQueuePayload{
		Name:         deck.Name,
		Description:  deck.Description,
		ShuffleCards: deck.ShuffleCards,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode deck payload: %w", err)
	}
	item := &model.SyncQueueItem{
		EntityType: model.EntityDeck,
		EntityID:   deck.ID,
		Operation:  model.OpCreate,
		Payload:    payload,
	}
	if err := s.queueRepo.Enqueue(item); err != nil {
		return nil, storeErr(err, "failed to enqueue deck create")
	}

	log.Info().Str("deckID", deck.ID).Msg("Deck created locally")
	return deck, nil
}

func (s *deckService) GetAll(userID string) ([]model.Deck, error) {
	rows, err := s.deckRepo.FindAllByUser(userID)
	if err != nil {
		return nil, storeErr(err, "failed to list decks")
	}
	decks := make([]model.Deck, 0, len(rows))
	for _, row := range rows {
		deck := row.Deck
		count := row.CardCount
		deck.CardCount = &count
		decks = append(decks, deck)
	}
	return decks, nil
}

func (s *deckService) Get(id string) (*model.Deck, error) {
	deck, err := s.deckRepo.FindByID(id)
	if err != nil {
		return nil, storeErr(err, fmt.Sprintf("deck %s", id))
	}
	count, err := s.deckRepo.CountCards(id)
	if err != nil {
		return nil, storeErr(err, "failed to count cards")
	}
	deck.CardCount = &count
	return deck, nil
}

func (s *deckService) Update(id string, req dto.UpdateDeckRequest) (*model.Deck, error) {
	deck, err := s.deckRepo.FindByID(id)
	if err != nil {
		return nil, storeErr(err, fmt.Sprintf("deck %s", id))
	}

	deck.Name = req.Name
	deck.Description = req.Description
	deck.ShuffleCards = req.ShuffleCards != nil && *req.ShuffleCards
	deck.UpdatedAt = time.Now().UTC()
	// A synced deck mutated locally must be pushed again. local_only and
	// pending_sync stay as they are.
	if deck.SyncStatus == model.SyncSynced {
		deck.SyncStatus = model.SyncPendingSync
	}

	if err := s.deckRepo.Update(deck); err != nil {
		return nil, storeErr(err, "failed to update deck")
	}
	return deck, nil
}

func (s *deckService) Delete(id string) error {
	if _, err := s.deckRepo.FindByID(id); err != nil {
		return storeErr(err, fmt.Sprintf("deck %s", id))
	}
	if err := s.deckRepo.Delete(id); err != nil {
		return storeErr(err, "failed to delete deck")
	}
	return nil
}
