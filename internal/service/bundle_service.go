package service

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/lshigami/kioku/internal/dto"
	"github.com/lshigami/kioku/internal/model"
	"github.com/lshigami/kioku/internal/repository"
	"github.com/rs/zerolog/log"
)

// BundleService converts decks and quizzes to and from their portable JSON
// form. Exports strip local and remote identifiers; imports mint fresh ids
// and the imported deck starts local_only with an empty sync history.
type BundleService interface {
	ExportDeck(deckID string) (*dto.DeckBundle, error)
	ImportDeck(userID string, bundle dto.DeckBundle) (*model.Deck, error)
	ExportQuiz(quizID string) (*dto.QuizBundle, error)
	ImportQuiz(userID string, bundle dto.QuizBundle) (*model.Quiz, error)
}

type bundleService struct {
	deckRepo repository.DeckRepository
	cardRepo repository.CardRepository
	tagRepo  repository.TagRepository
	quizRepo repository.QuizRepository
}

func NewBundleService(
	deckRepo repository.DeckRepository,
	cardRepo repository.CardRepository,
	tagRepo repository.TagRepository,
	quizRepo repository.QuizRepository,
) BundleService {
	return &bundleService{deckRepo: deckRepo, cardRepo: cardRepo, tagRepo: tagRepo, quizRepo: quizRepo}
}

func (s *bundleService) ExportDeck(deckID string) (*dto.DeckBundle, error) {
	deck, err := s.deckRepo.FindByID(deckID)
	if err != nil {
		return nil, storeErr(err, fmt.Sprintf("deck %s", deckID))
	}
	cards, err := s.cardRepo.FindByDeck(deckID)
	if err != nil {
		return nil, storeErr(err, "failed to load cards")
	}
	deckTags, err := s.tagRepo.FindByDeck(deckID)
	if err != nil {
		return nil, storeErr(err, "failed to load tags")
	}

	bundle := &dto.DeckBundle{
		Name:         deck.Name,
		Description:  deck.Description,
		ShuffleCards: deck.ShuffleCards,
		Cards:        make([]dto.CardBundle, 0, len(cards)),
		Tags:         tagNames(deckTags),
	}
	for _, card := range cards {
		bundle.Cards = append(bundle.Cards, dto.CardBundle{
			Front:         card.Front,
			FrontType:     card.FrontType,
			FrontLanguage: card.FrontLanguage,
			Back:          card.Back,
			BackType:      card.BackType,
			BackLanguage:  card.BackLanguage,
			Notes:         card.Notes,
			Tags:          tagNames(card.Tags),
		})
	}
	return bundle, nil
}

func (s *bundleService) ImportDeck(userID string, bundle dto.DeckBundle) (*model.Deck, error) {
	deck := &model.Deck{
		ID:           uuid.NewString(),
		UserID:       userID,
		Name:         bundle.Name,
		Description:  bundle.Description,
		ShuffleCards: bundle.ShuffleCards,
		SyncStatus:   model.SyncLocalOnly,
	}
	if err := s.deckRepo.Create(deck); err != nil {
		return nil, storeErr(err, "failed to import deck")
	}

	// Deck tags first, so card tag names can resolve to them.
	tagsByName := make(map[string]*model.Tag)
	for _, name := range bundle.Tags {
		tag := &model.Tag{ID: uuid.NewString(), DeckID: deck.ID, Name: name}
		if err := s.tagRepo.Create(tag); err != nil {
			return nil, storeErr(err, "failed to import tag")
		}
		tagsByName[name] = tag
	}

	for _, cb := range bundle.Cards {
		card := &model.Card{
			ID:            uuid.NewString(),
			DeckID:        deck.ID,
			Front:         cb.Front,
			FrontType:     orDefault(cb.FrontType),
			FrontLanguage: cb.FrontLanguage,
			Back:          cb.Back,
			BackType:      orDefault(cb.BackType),
			BackLanguage:  cb.BackLanguage,
			Notes:         cb.Notes,
		}
		if err := s.cardRepo.Create(card); err != nil {
			return nil, storeErr(err, "failed to import card")
		}
		for _, name := range cb.Tags {
			tag, ok := tagsByName[name]
			if !ok {
				tag = &model.Tag{ID: uuid.NewString(), DeckID: deck.ID, Name: name}
				if err := s.tagRepo.Create(tag); err != nil {
					return nil, storeErr(err, "failed to import tag")
				}
				tagsByName[name] = tag
			}
			if err := s.tagRepo.AddToCard(card.ID, tag.ID); err != nil {
				return nil, storeErr(err, "failed to tag imported card")
			}
		}
	}

	log.Info().Str("deckID", deck.ID).Int("cards", len(bundle.Cards)).Msg("Deck imported")
	return deck, nil
}

func (s *bundleService) ExportQuiz(quizID string) (*dto.QuizBundle, error) {
	quiz, err := s.quizRepo.FindByIDWithQuestions(quizID)
	if err != nil {
		return nil, storeErr(err, fmt.Sprintf("quiz %s", quizID))
	}

	bundle := &dto.QuizBundle{
		Name:             quiz.Name,
		Description:      quiz.Description,
		ShuffleQuestions: quiz.ShuffleQuestions,
		Questions:        make([]dto.QuestionBundle, 0, len(quiz.Questions)),
	}
	for _, q := range quiz.Questions {
		qb := dto.QuestionBundle{
			QuestionType:    string(q.QuestionType),
			Content:         q.Content,
			ContentType:     q.ContentType,
			ContentLanguage: q.ContentLanguage,
			CorrectAnswer:   q.CorrectAnswer,
			MultipleAnswers: q.MultipleAnswers,
			Explanation:     q.Explanation,
			Position:        q.Position,
		}
		if err := copier.Copy(&qb.Choices, &q.Choices); err != nil {
			return nil, fmt.Errorf("failed to map choices: %w", err)
		}
		bundle.Questions = append(bundle.Questions, qb)
	}
	return bundle, nil
}

func (s *bundleService) ImportQuiz(userID string, bundle dto.QuizBundle) (*model.Quiz, error) {
	questions := make([]dto.QuestionBundle, len(bundle.Questions))
	copy(questions, bundle.Questions)
	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].Position < questions[j].Position
	})

	quiz := &model.Quiz{
		ID:               uuid.NewString(),
		UserID:           userID,
		Name:             bundle.Name,
		Description:      bundle.Description,
		ShuffleQuestions: bundle.ShuffleQuestions,
		Questions:        make([]model.Question, 0, len(questions)),
	}
	for i, qb := range questions {
		question := model.Question{
			ID:              uuid.NewString(),
			QuestionType:    model.ParseQuestionType(qb.QuestionType),
			Content:         qb.Content,
			ContentType:     orDefault(qb.ContentType),
			ContentLanguage: qb.ContentLanguage,
			CorrectAnswer:   qb.CorrectAnswer,
			MultipleAnswers: qb.MultipleAnswers,
			Explanation:     qb.Explanation,
			Position:        i,
			Choices:         make([]model.Choice, 0, len(qb.Choices)),
		}
		for j, cb := range qb.Choices {
			question.Choices = append(question.Choices, model.Choice{
				ID:        uuid.NewString(),
				Text:      cb.Text,
				IsCorrect: cb.IsCorrect,
				Position:  j,
			})
		}
		quiz.Questions = append(quiz.Questions, question)
	}
	if err := s.quizRepo.Create(quiz); err != nil {
		return nil, storeErr(err, "failed to import quiz")
	}

	log.Info().Str("quizID", quiz.ID).Int("questions", len(quiz.Questions)).Msg("Quiz imported")
	return quiz, nil
}

func orDefault(contentType string) string {
	if contentType == "" {
		return defaultContentType
	}
	return contentType
}

func tagNames(tags []model.Tag) []string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return names
}
