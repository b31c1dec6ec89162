package service

import (
	"testing"

	"github.com/lshigami/kioku/internal/dto"
	"github.com/lshigami/kioku/internal/model"
	"github.com/lshigami/kioku/internal/repository"
)

func newBundleFixture(t *testing.T) (BundleService, DeckService, CardService, *quizFixture) {
	t.Helper()
	db := newTestDB(t)

	deckRepo := repository.NewDeckRepository(db)
	cardRepo := repository.NewCardRepository(db)
	tagRepo := repository.NewTagRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	queueRepo := repository.NewSyncQueueRepository(db)

	bundleSvc := NewBundleService(deckRepo, cardRepo, tagRepo, quizRepo)
	deckSvc := NewDeckService(deckRepo, queueRepo)
	cardSvc := NewCardService(cardRepo, deckRepo, queueRepo)
	qf := newQuizFixture(t, db)
	return bundleSvc, deckSvc, cardSvc, qf
}

func TestDeckExportImportRoundTrip(t *testing.T) {
	bundleSvc, deckSvc, cardSvc, _ := newBundleFixture(t)

	deck, err := deckSvc.Create("user-1", dto.CreateDeckRequest{
		Name:         "Kanji",
		Description:  strPtr("JLPT N5 kanji"),
		ShuffleCards: boolPtr(true),
	})
	if err != nil {
		t.Fatalf("creating deck: %v", err)
	}
	card, err := cardSvc.Create(deck.ID, dto.CreateCardRequest{Front: "水", Back: "water", Notes: strPtr("radical 85")})
	if err != nil {
		t.Fatalf("creating card: %v", err)
	}

	bundle, err := bundleSvc.ExportDeck(deck.ID)
	if err != nil {
		t.Fatalf("exporting deck: %v", err)
	}
	if bundle.Name != "Kanji" || !bundle.ShuffleCards {
		t.Errorf("bundle header = %+v", bundle)
	}
	if len(bundle.Cards) != 1 || bundle.Cards[0].Front != "水" {
		t.Fatalf("bundle cards = %+v, want the exported card", bundle.Cards)
	}

	imported, err := bundleSvc.ImportDeck("user-2", *bundle)
	if err != nil {
		t.Fatalf("importing deck: %v", err)
	}
	if imported.ID == deck.ID {
		t.Error("import reused the source deck id")
	}
	if imported.SyncStatus != model.SyncLocalOnly {
		t.Errorf("imported deck SyncStatus = %q, want local_only", imported.SyncStatus)
	}
	if imported.RemoteID != nil {
		t.Error("imported deck carries a remote id")
	}

	cards, err := cardSvc.GetForDeck(imported.ID)
	if err != nil {
		t.Fatalf("loading imported cards: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("imported cards = %d, want 1", len(cards))
	}
	if cards[0].ID == card.ID {
		t.Error("import reused the source card id")
	}
	if cards[0].Front != "水" || cards[0].Back != "water" {
		t.Errorf("imported card = %+v", cards[0])
	}
}

func TestQuizExportImportRoundTrip(t *testing.T) {
	bundleSvc, _, _, qf := newBundleFixture(t)

	q := qf.addMultipleChoice(t, "Even numbers?", []dto.CreateChoiceRequest{
		{Text: "2", IsCorrect: true},
		{Text: "3", IsCorrect: false},
	})

	bundle, err := bundleSvc.ExportQuiz(qf.quiz.ID)
	if err != nil {
		t.Fatalf("exporting quiz: %v", err)
	}
	if len(bundle.Questions) != 1 || len(bundle.Questions[0].Choices) != 2 {
		t.Fatalf("bundle = %+v, want one question with two choices", bundle)
	}

	imported, err := bundleSvc.ImportQuiz("user-2", *bundle)
	if err != nil {
		t.Fatalf("importing quiz: %v", err)
	}
	if imported.ID == qf.quiz.ID {
		t.Error("import reused the source quiz id")
	}
	if len(imported.Questions) != 1 {
		t.Fatalf("imported questions = %d, want 1", len(imported.Questions))
	}
	got := imported.Questions[0]
	if got.ID == q.ID {
		t.Error("import reused the source question id")
	}
	if got.QuestionType != model.MultipleChoice || len(got.Choices) != 2 {
		t.Errorf("imported question = %+v", got)
	}
}
