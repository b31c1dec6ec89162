package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/lshigami/kioku/internal/model"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("opening in-memory database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrapping sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("enabling foreign keys: %v", err)
	}

	err = db.AutoMigrate(
		&model.LocalUser{},
		&model.AppState{},
		&model.Deck{},
		&model.Card{},
		&model.Tag{},
		&model.Quiz{},
		&model.QuizTag{},
		&model.Question{},
		&model.Choice{},
		&model.QuizAttempt{},
		&model.QuestionResult{},
		&model.StudySession{},
		&model.SyncQueueItem{},
	)
	if err != nil {
		t.Fatalf("migrating schema: %v", err)
	}
	return db
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
