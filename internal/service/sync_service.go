package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/kioku/internal/apperr"
	"github.com/lshigami/kioku/internal/model"
	"github.com/lshigami/kioku/internal/remote"
	"github.com/lshigami/kioku/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// deckQueuePayload is the stored body of a queued deck create.
type deckQueuePayload struct {
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	ShuffleCards bool    `json:"shuffle_cards"`
}

// cardQueuePayload is the stored body of a queued card create. DeckID is
// the local deck id; the remote parent is resolved at drain time.
type cardQueuePayload struct {
	DeckID string `json:"deck_id"`
	remote.CardPayload
}

type SyncService interface {
	// Drain pushes every queued local create to the remote server and
	// returns how many entries were reconciled. Entries whose network call
	// fails stay queued for the next pass.
	Drain(ctx context.Context) (int, error)
	PendingCount() (int, error)
	CheckConnection(ctx context.Context) bool
	// Pull fetches the remote decks and their cards and upserts them
	// locally as synced entities owned by the given user.
	Pull(ctx context.Context, userID string) (int, error)
}

type syncService struct {
	db        *gorm.DB
	remote    remote.Client
	deckRepo  repository.DeckRepository
	cardRepo  repository.CardRepository
	queueRepo repository.SyncQueueRepository
}

func NewSyncService(
	db *gorm.DB,
	remoteClient remote.Client,
	deckRepo repository.DeckRepository,
	cardRepo repository.CardRepository,
	queueRepo repository.SyncQueueRepository,
) SyncService {
	return &syncService{
		db:        db,
		remote:    remoteClient,
		deckRepo:  deckRepo,
		cardRepo:  cardRepo,
		queueRepo: queueRepo,
	}
}

// drainedDeck pairs a queue entry with the remote id the server assigned.
type drainedDeck struct {
	entryID  uint
	localID  string
	remoteID int64
}

type drainedCard struct {
	entryID  uint
	localID  string
	remoteID int64
}

func (s *syncService) Drain(ctx context.Context) (int, error) {
	entries, err := s.queueRepo.FindAllOrdered()
	if err != nil {
		return 0, storeErr(err, "failed to snapshot sync queue")
	}
	if len(entries) == 0 {
		return 0, nil
	}

	// Network phase. No store lock is held: each entry is pushed in queue
	// order and failures leave the entry queued for the next drain. Decks
	// come first so cards can resolve their parent's fresh remote id.
	remoteDecks := make(map[string]int64)
	var decks []drainedDeck
	var cards []drainedCard

	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		switch entry.EntityType {
		case model.EntityDeck:
			var payload deckQueuePayload
			if err := json.Unmarshal(entry.Payload, &payload); err != nil {
				return 0, fmt.Errorf("sync queue entry %d: corrupt payload: %w", entry.ID, err)
			}
			resp, err := s.remote.CreateDeck(ctx, remote.DeckPayload(payload))
			if err != nil {
				if !apperr.RecoveredLocally(err) {
					return 0, err
				}
				log.Warn().Err(err).Str("deckID", entry.EntityID).Msg("Deck push failed, keeping queued")
				continue
			}
			remoteDecks[entry.EntityID] = resp.ID
			decks = append(decks, drainedDeck{entryID: entry.ID, localID: entry.EntityID, remoteID: resp.ID})

		case model.EntityCard:
			var payload cardQueuePayload
			if err := json.Unmarshal(entry.Payload, &payload); err != nil {
				return 0, fmt.Errorf("sync queue entry %d: corrupt payload: %w", entry.ID, err)
			}
			remoteDeckID, ok := remoteDecks[payload.DeckID]
			if !ok {
				persisted, err := s.cardRepo.FindQueuedRemoteDeckID(entry.EntityID)
				if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
					return 0, fmt.Errorf("%w: resolving remote deck for card %s: %v",
						apperr.ErrStore, entry.EntityID, err)
				}
				if persisted == nil {
					log.Warn().Str("cardID", entry.EntityID).
						Msg("Card parent deck has no remote id yet, keeping queued")
					continue
				}
				remoteDeckID = *persisted
			}
			resp, err := s.remote.CreateCard(ctx, remoteDeckID, payload.CardPayload)
			if err != nil {
				if !apperr.RecoveredLocally(err) {
					return 0, err
				}
				log.Warn().Err(err).Str("cardID", entry.EntityID).Msg("Card push failed, keeping queued")
				continue
			}
			cards = append(cards, drainedCard{entryID: entry.ID, localID: entry.EntityID, remoteID: resp.ID})

		default:
			return 0, fmt.Errorf("sync queue entry %d: unknown entity type %q", entry.ID, entry.EntityType)
		}
	}

	if len(decks) == 0 && len(cards) == 0 {
		return 0, nil
	}

	// Apply phase. Everything the server acknowledged lands in one
	// transaction so a crash cannot strand a synced entity in the queue.
	now := time.Now().UTC()
	drained := make([]uint, 0, len(decks)+len(cards))
	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, d := range decks {
			if err := s.deckRepo.MarkSynced(tx, d.localID, d.remoteID, now); err != nil {
				return err
			}
			drained = append(drained, d.entryID)
		}
		for _, c := range cards {
			if err := s.cardRepo.MarkSynced(tx, c.localID, c.remoteID); err != nil {
				return err
			}
			drained = append(drained, c.entryID)
		}
		return s.queueRepo.Delete(tx, drained)
	})
	if err != nil {
		return 0, storeErr(err, "failed to apply drain results")
	}

	log.Info().Int("synced", len(drained)).Msg("Sync queue drained")
	return len(drained), nil
}

func (s *syncService) PendingCount() (int, error) {
	count, err := s.queueRepo.Count()
	if err != nil {
		return 0, storeErr(err, "failed to count sync queue")
	}
	return count, nil
}

func (s *syncService) CheckConnection(ctx context.Context) bool {
	return s.remote.CheckConnection(ctx)
}

func (s *syncService) Pull(ctx context.Context, userID string) (int, error) {
	remoteDecks, err := s.remote.FetchDecks(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	pulled := 0
	for _, rd := range remoteDecks {
		deck, err := s.upsertDeck(userID, rd, now)
		if err != nil {
			return pulled, err
		}

		remoteCards, err := s.remote.FetchCards(ctx, rd.ID)
		if err != nil {
			return pulled, err
		}
		for _, rc := range remoteCards {
			if err := s.upsertCard(deck.ID, rc); err != nil {
				return pulled, err
			}
		}
		pulled++
	}

	log.Info().Int("decks", pulled).Msg("Pulled remote decks")
	return pulled, nil
}

func (s *syncService) upsertDeck(userID string, rd remote.DeckResponse, now time.Time) (*model.Deck, error) {
	deck, err := s.deckRepo.FindByRemoteID(rd.ID)
	switch {
	case err == nil:
		deck.Name = rd.Name
		deck.Description = rd.Description
		deck.ShuffleCards = rd.ShuffleCards
		deck.SyncStatus = model.SyncSynced
		deck.LastSyncedAt = &now
		deck.RemoteUpdatedAt = rd.UpdatedAt
		if err := s.deckRepo.Update(deck); err != nil {
			return nil, storeErr(err, "failed to update pulled deck")
		}
		return deck, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		remoteID := rd.ID
		deck = &model.Deck{
			ID:              uuid.NewString(),
			UserID:          userID,
			Name:            rd.Name,
			Description:     rd.Description,
			ShuffleCards:    rd.ShuffleCards,
			RemoteID:        &remoteID,
			SyncStatus:      model.SyncSynced,
			LastSyncedAt:    &now,
			RemoteUpdatedAt: rd.UpdatedAt,
		}
		if err := s.deckRepo.Create(deck); err != nil {
			return nil, storeErr(err, "failed to create pulled deck")
		}
		return deck, nil

	default:
		return nil, storeErr(err, "failed to look up pulled deck")
	}
}

func (s *syncService) upsertCard(deckID string, rc remote.CardResponse) error {
	card, err := s.cardRepo.FindByRemoteID(rc.ID, deckID)
	switch {
	case err == nil:
		card.Front = rc.Front
		card.FrontType = orDefault(rc.FrontType)
		card.FrontLanguage = rc.FrontLanguage
		card.Back = rc.Back
		card.BackType = orDefault(rc.BackType)
		card.BackLanguage = rc.BackLanguage
		card.Notes = rc.Notes
		if err := s.cardRepo.Update(card); err != nil {
			return storeErr(err, "failed to update pulled card")
		}
		return nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		remoteID := rc.ID
		card = &model.Card{
			ID:            uuid.NewString(),
			DeckID:        deckID,
			Front:         rc.Front,
			FrontType:     orDefault(rc.FrontType),
			FrontLanguage: rc.FrontLanguage,
			Back:          rc.Back,
			BackType:      orDefault(rc.BackType),
			BackLanguage:  rc.BackLanguage,
			Notes:         rc.Notes,
			RemoteID:      &remoteID,
		}
		if err := s.cardRepo.Create(card); err != nil {
			return storeErr(err, "failed to create pulled card")
		}
		return nil

	default:
		return storeErr(err, "failed to look up pulled card")
	}
}
