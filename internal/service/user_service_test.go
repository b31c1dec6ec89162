package service

import (
	"errors"
	"testing"

	"github.com/lshigami/kioku/internal/apperr"
	"github.com/lshigami/kioku/internal/dto"
	"github.com/lshigami/kioku/internal/model"
	"github.com/lshigami/kioku/internal/repository"
	"gorm.io/gorm"
)

func newUserFixture(t *testing.T) (*gorm.DB, UserService) {
	t.Helper()
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	stateRepo := repository.NewAppStateRepository(db)
	deckRepo := repository.NewDeckRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	return db, NewUserService(userRepo, stateRepo, deckRepo, quizRepo)
}

func TestUserCreateDefaults(t *testing.T) {
	_, svc := newUserFixture(t)

	user, err := svc.Create(dto.CreateUserRequest{Name: "Alex"})
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}
	if user.Avatar != "avatar-smile" {
		t.Errorf("Avatar = %q, want avatar-smile", user.Avatar)
	}
	if user.HasPassword {
		t.Error("HasPassword = true for passwordless user")
	}
}

func TestLoginPasswordRoundTrip(t *testing.T) {
	_, svc := newUserFixture(t)

	user, err := svc.Create(dto.CreateUserRequest{Name: "Alex", Password: strPtr("hunter2")})
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}
	if !user.HasPassword {
		t.Fatal("HasPassword = false after setting a password")
	}
	if user.PasswordHash != nil && *user.PasswordHash == "hunter2" {
		t.Fatal("password stored in the clear")
	}

	logged, err := svc.Login(dto.LoginRequest{UserID: user.ID, Password: strPtr("hunter2")})
	if err != nil {
		t.Fatalf("login with correct password: %v", err)
	}
	if logged.LastLoginAt == nil {
		t.Error("LastLoginAt not stamped on login")
	}

	_, err = svc.Login(dto.LoginRequest{UserID: user.ID, Password: strPtr("wrong")})
	if !errors.Is(err, apperr.ErrAuth) {
		t.Errorf("wrong password error = %v, want ErrAuth", err)
	}
	_, err = svc.Login(dto.LoginRequest{UserID: user.ID})
	if !errors.Is(err, apperr.ErrAuth) {
		t.Errorf("missing password error = %v, want ErrAuth", err)
	}
}

func TestLoginPasswordlessUser(t *testing.T) {
	_, svc := newUserFixture(t)
	user, err := svc.Create(dto.CreateUserRequest{Name: "Alex"})
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}
	if _, err := svc.Login(dto.LoginRequest{UserID: user.ID}); err != nil {
		t.Errorf("passwordless login failed: %v", err)
	}
}

func TestActiveUserLifecycle(t *testing.T) {
	_, svc := newUserFixture(t)

	active, err := svc.ActiveUser()
	if err != nil {
		t.Fatalf("active user with nobody logged in: %v", err)
	}
	if active != nil {
		t.Fatalf("active user = %+v, want nil", active)
	}

	user, err := svc.Create(dto.CreateUserRequest{Name: "Alex"})
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}
	if _, err := svc.Login(dto.LoginRequest{UserID: user.ID}); err != nil {
		t.Fatalf("login: %v", err)
	}

	active, err = svc.ActiveUser()
	if err != nil {
		t.Fatalf("active user after login: %v", err)
	}
	if active == nil || active.ID != user.ID {
		t.Fatalf("active user = %+v, want %s", active, user.ID)
	}

	if err := svc.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	active, err = svc.ActiveUser()
	if err != nil {
		t.Fatalf("active user after logout: %v", err)
	}
	if active != nil {
		t.Error("active user still set after logout")
	}
}

func TestActiveUserDanglingID(t *testing.T) {
	db, svc := newUserFixture(t)

	if err := db.Create(&model.AppState{Key: model.ActiveUserKey, Value: "ghost"}).Error; err != nil {
		t.Fatalf("seeding dangling active user: %v", err)
	}
	active, err := svc.ActiveUser()
	if err != nil {
		t.Fatalf("active user with dangling id: %v", err)
	}
	if active != nil {
		t.Errorf("active user = %+v, want nil for dangling id", active)
	}
}

func TestUpdateUserPassword(t *testing.T) {
	_, svc := newUserFixture(t)
	user, err := svc.Create(dto.CreateUserRequest{Name: "Alex", Password: strPtr("hunter2")})
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}

	// Empty password removes it.
	updated, err := svc.Update(user.ID, dto.UpdateUserRequest{Name: "Alex", Password: strPtr("")})
	if err != nil {
		t.Fatalf("removing password: %v", err)
	}
	if updated.HasPassword {
		t.Error("HasPassword = true after password removal")
	}
	if _, err := svc.Login(dto.LoginRequest{UserID: user.ID}); err != nil {
		t.Errorf("login after password removal failed: %v", err)
	}
}

func TestDeleteUserRemovesDataAndLogsOut(t *testing.T) {
	db, svc := newUserFixture(t)
	user, err := svc.Create(dto.CreateUserRequest{Name: "Alex"})
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}
	if _, err := svc.Login(dto.LoginRequest{UserID: user.ID}); err != nil {
		t.Fatalf("login: %v", err)
	}

	deckRepo := repository.NewDeckRepository(db)
	queueRepo := repository.NewSyncQueueRepository(db)
	deckSvc := NewDeckService(deckRepo, queueRepo)
	deck, err := deckSvc.Create(user.ID, dto.CreateDeckRequest{Name: "Kanji"})
	if err != nil {
		t.Fatalf("creating deck: %v", err)
	}

	if err := svc.Delete(user.ID); err != nil {
		t.Fatalf("deleting user: %v", err)
	}
	if _, err := svc.Get(user.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("deleted user lookup error = %v, want ErrNotFound", err)
	}
	if _, err := deckSvc.Get(deck.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("orphaned deck lookup error = %v, want ErrNotFound", err)
	}
	active, err := svc.ActiveUser()
	if err != nil {
		t.Fatalf("active user after delete: %v", err)
	}
	if active != nil {
		t.Error("deleted user still active")
	}
}
