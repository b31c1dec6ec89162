package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lshigami/kioku/internal/model"
	"github.com/lshigami/kioku/internal/repository"
)

type TagService interface {
	Create(deckID, name string) (*model.Tag, error)
	GetForDeck(deckID string) ([]model.Tag, error)
	GetByName(deckID, name string) (*model.Tag, error)
	Delete(id, deckID string) error
	AddToCard(deckID, cardID, tagID string) error
	RemoveFromCard(deckID, cardID, tagID string) error
	GetForCard(cardID string) ([]model.Tag, error)
}

type tagService struct {
	tagRepo  repository.TagRepository
	deckRepo repository.DeckRepository
}

func NewTagService(tagRepo repository.TagRepository, deckRepo repository.DeckRepository) TagService {
	return &tagService{tagRepo: tagRepo, deckRepo: deckRepo}
}

func (s *tagService) Create(deckID, name string) (*model.Tag, error) {
	if _, err := s.deckRepo.FindByID(deckID); err != nil {
		return nil, storeErr(err, fmt.Sprintf("deck %s", deckID))
	}
	tag := &model.Tag{
		ID:     uuid.NewString(),
		DeckID: deckID,
		Name:   name,
	}
	if err := s.tagRepo.Create(tag); err != nil {
		return nil, storeErr(err, "failed to create tag")
	}
	if err := s.deckRepo.MarkPendingIfSynced(deckID); err != nil {
		return nil, storeErr(err, "failed to mark deck pending")
	}
	return tag, nil
}

func (s *tagService) GetForDeck(deckID string) ([]model.Tag, error) {
	tags, err := s.tagRepo.FindByDeck(deckID)
	if err != nil {
		return nil, storeErr(err, "failed to list tags")
	}
	return tags, nil
}

func (s *tagService) GetByName(deckID, name string) (*model.Tag, error) {
	tag, err := s.tagRepo.FindByName(deckID, name)
	if err != nil {
		return nil, storeErr(err, fmt.Sprintf("tag %q", name))
	}
	return tag, nil
}

func (s *tagService) Delete(id, deckID string) error {
	if err := s.tagRepo.Delete(id, deckID); err != nil {
		return storeErr(err, "failed to delete tag")
	}
	return s.markPending(deckID)
}

func (s *tagService) AddToCard(deckID, cardID, tagID string) error {
	if err := s.tagRepo.AddToCard(cardID, tagID); err != nil {
		return storeErr(err, "failed to tag card")
	}
	return s.markPending(deckID)
}

func (s *tagService) RemoveFromCard(deckID, cardID, tagID string) error {
	if err := s.tagRepo.RemoveFromCard(cardID, tagID); err != nil {
		return storeErr(err, "failed to untag card")
	}
	return s.markPending(deckID)
}

func (s *tagService) GetForCard(cardID string) ([]model.Tag, error) {
	tags, err := s.tagRepo.FindForCard(cardID)
	if err != nil {
		return nil, storeErr(err, "failed to list card tags")
	}
	return tags, nil
}

func (s *tagService) markPending(deckID string) error {
	if err := s.deckRepo.MarkPendingIfSynced(deckID); err != nil {
		return storeErr(err, "failed to mark deck pending")
	}
	return nil
}
