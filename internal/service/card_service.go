package service

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/lshigami/kioku/internal/dto"
	"github.com/lshigami/kioku/internal/model"
	"github.com/lshigami/kioku/internal/remote"
	"github.com/lshigami/kioku/internal/repository"
)

const defaultContentType = "TEXT"

type CardService interface {
	Create(deckID string, req dto.CreateCardRequest) (*model.Card, error)
	GetForDeck(deckID string) ([]model.Card, error)
	Get(id, deckID string) (*model.Card, error)
	Update(id, deckID string, req dto.UpdateCardRequest) (*model.Card, error)
	Delete(id, deckID string) error
}

type cardService struct {
	cardRepo  repository.CardRepository
	deckRepo  repository.DeckRepository
	queueRepo repository.SyncQueueRepository
}

func NewCardService(
	cardRepo repository.CardRepository,
	deckRepo repository.DeckRepository,
	queueRepo repository.SyncQueueRepository,
) CardService {
	return &cardService{cardRepo: cardRepo, deckRepo: deckRepo, queueRepo: queueRepo}
}

func contentTypeOrDefault(s *string) string {
	if s == nil || *s == "" {
		return defaultContentType
	}
	return *s
}

func (s *cardService) Create(deckID string, req dto.CreateCardRequest) (*model.Card, error) {
	if _, err := s.deckRepo.FindByID(deckID); err != nil {
		return nil, storeErr(err, fmt.Sprintf("deck %s", deckID))
	}

	card := &model.Card{
		ID:            uuid.NewString(),
		DeckID:        deckID,
		Front:         req.Front,
		FrontType:     contentTypeOrDefault(req.FrontType),
		FrontLanguage: req.FrontLanguage,
		Back:          req.Back,
		BackType:      contentTypeOrDefault(req.BackType),
		BackLanguage:  req.BackLanguage,
		Notes:         req.Notes,
		Tags:          []model.Tag{},
	}
	if err := s.cardRepo.Create(card); err != nil {
		return nil, storeErr(err, "failed to create card")
	}

	// Cards are the deck's responsibility on sync: adding one demotes a
	// synced deck back to pending.
	if err := s.deckRepo.MarkPendingIfSynced(deckID); err != nil {
		return nil, storeErr(err, "failed to mark deck pending")
	}

	payload, err := json.Marshal(cardQueuePayload{
		DeckID: deckID,
		CardPayload: remote.CardPayload{
			Front:         card.Front,
			FrontType:     card.FrontType,
			FrontLanguage: card.FrontLanguage,
			Back:          card.Back,
			BackType:      card.BackType,
			BackLanguage:  card.BackLanguage,
			Notes:         card.Notes,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode card payload: %w", err)
	}
	item := &model.SyncQueueItem{
		EntityType: model.EntityCard,
		EntityID:   card.ID,
		Operation:  model.OpCreate,
		Payload:    payload,
	}
	if err := s.queueRepo.Enqueue(item); err != nil {
		return nil, storeErr(err, "failed to enqueue card create")
	}

	return card, nil
}

func (s *cardService) GetForDeck(deckID string) ([]model.Card, error) {
	cards, err := s.cardRepo.FindByDeck(deckID)
	if err != nil {
		return nil, storeErr(err, "failed to list cards")
	}
	return cards, nil
}

func (s *cardService) Get(id, deckID string) (*model.Card, error) {
	card, err := s.cardRepo.FindByID(id, deckID)
	if err != nil {
		return nil, storeErr(err, fmt.Sprintf("card %s", id))
	}
	return card, nil
}

func (s *cardService) Update(id, deckID string, req dto.UpdateCardRequest) (*model.Card, error) {
	card, err := s.cardRepo.FindByID(id, deckID)
	if err != nil {
		return nil, storeErr(err, fmt.Sprintf("card %s", id))
	}

	card.Front = req.Front
	card.FrontType = contentTypeOrDefault(req.FrontType)
	card.FrontLanguage = req.FrontLanguage
	card.Back = req.Back
	card.BackType = contentTypeOrDefault(req.BackType)
	card.BackLanguage = req.BackLanguage
	card.Notes = req.Notes

	if err := s.cardRepo.Update(card); err != nil {
		return nil, storeErr(err, "failed to update card")
	}
	if err := s.deckRepo.MarkPendingIfSynced(deckID); err != nil {
		return nil, storeErr(err, "failed to mark deck pending")
	}
	return card, nil
}

func (s *cardService) Delete(id, deckID string) error {
	if _, err := s.cardRepo.FindByID(id, deckID); err != nil {
		return storeErr(err, fmt.Sprintf("card %s", id))
	}
	if err := s.cardRepo.Delete(id, deckID); err != nil {
		return storeErr(err, "failed to delete card")
	}
	if err := s.deckRepo.MarkPendingIfSynced(deckID); err != nil {
		return storeErr(err, "failed to mark deck pending")
	}
	return nil
}
