package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/kioku/internal/apperr"
	"github.com/lshigami/kioku/internal/dto"
	"github.com/lshigami/kioku/internal/model"
	"github.com/lshigami/kioku/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const defaultAvatar = "avatar-smile"

type UserService interface {
	Create(req dto.CreateUserRequest) (*model.LocalUser, error)
	GetAll() ([]model.LocalUser, error)
	Get(id string) (*model.LocalUser, error)
	Update(id string, req dto.UpdateUserRequest) (*model.LocalUser, error)
	Delete(id string) error
	Login(req dto.LoginRequest) (*model.LocalUser, error)
	Logout() error
	ActiveUser() (*model.LocalUser, error)
}

type userService struct {
	userRepo  repository.UserRepository
	stateRepo repository.AppStateRepository
	deckRepo  repository.DeckRepository
	quizRepo  repository.QuizRepository
}

func NewUserService(
	userRepo repository.UserRepository,
	stateRepo repository.AppStateRepository,
	deckRepo repository.DeckRepository,
	quizRepo repository.QuizRepository,
) UserService {
	return &userService{userRepo: userRepo, stateRepo: stateRepo, deckRepo: deckRepo, quizRepo: quizRepo}
}

func withDerived(u *model.LocalUser) *model.LocalUser {
	u.HasPassword = u.PasswordHash != nil
	return u
}

func hashPassword(password string) (*string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	s := string(digest)
	return &s, nil
}

func (s *userService) Create(req dto.CreateUserRequest) (*model.LocalUser, error) {
	user := &model.LocalUser{
		ID:     uuid.NewString(),
		Name:   req.Name,
		Avatar: defaultAvatar,
	}
	if req.Avatar != nil && *req.Avatar != "" {
		user.Avatar = *req.Avatar
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := hashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, storeErr(err, "failed to create user")
	}
	return withDerived(user), nil
}

func (s *userService) GetAll() ([]model.LocalUser, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, storeErr(err, "failed to list users")
	}
	for i := range users {
		withDerived(&users[i])
	}
	return users, nil
}

func (s *userService) Get(id string) (*model.LocalUser, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, storeErr(err, fmt.Sprintf("user %s", id))
	}
	return withDerived(user), nil
}

func (s *userService) Update(id string, req dto.UpdateUserRequest) (*model.LocalUser, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, storeErr(err, fmt.Sprintf("user %s", id))
	}
	user.Name = req.Name
	if req.Avatar != nil && *req.Avatar != "" {
		user.Avatar = *req.Avatar
	}
	if req.Password != nil {
		if *req.Password == "" {
			user.PasswordHash = nil
		} else {
			hash, err := hashPassword(*req.Password)
			if err != nil {
				return nil, err
			}
			user.PasswordHash = hash
		}
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, storeErr(err, "failed to update user")
	}
	return withDerived(user), nil
}

// Delete removes the user and everything they own. Decks and quizzes
// cascade to their children through foreign keys.
func (s *userService) Delete(id string) error {
	if _, err := s.userRepo.FindByID(id); err != nil {
		return storeErr(err, fmt.Sprintf("user %s", id))
	}
	if err := s.deckRepo.DeleteByUser(id); err != nil {
		return storeErr(err, "failed to delete user decks")
	}
	if err := s.quizRepo.DeleteByUser(id); err != nil {
		return storeErr(err, "failed to delete user quizzes")
	}
	if err := s.userRepo.Delete(id); err != nil {
		return storeErr(err, "failed to delete user")
	}

	active, err := s.stateRepo.Get(model.ActiveUserKey)
	if err == nil && active == id {
		if err := s.stateRepo.Delete(model.ActiveUserKey); err != nil {
			return storeErr(err, "failed to clear active user")
		}
	}
	return nil
}

func (s *userService) Login(req dto.LoginRequest) (*model.LocalUser, error) {
	user, err := s.userRepo.FindByID(req.UserID)
	if err != nil {
		return nil, storeErr(err, fmt.Sprintf("user %s", req.UserID))
	}
	if user.PasswordHash != nil {
		if req.Password == nil {
			return nil, fmt.Errorf("%w: password required", apperr.ErrAuth)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(*req.Password)); err != nil {
			return nil, fmt.Errorf("%w: invalid password", apperr.ErrAuth)
		}
	}

	now := time.Now().UTC()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, storeErr(err, "failed to record login")
	}
	if err := s.stateRepo.Set(model.ActiveUserKey, user.ID); err != nil {
		return nil, storeErr(err, "failed to set active user")
	}

	log.Info().Str("userID", user.ID).Msg("User logged in")
	return withDerived(user), nil
}

func (s *userService) Logout() error {
	if err := s.stateRepo.Delete(model.ActiveUserKey); err != nil {
		return storeErr(err, "failed to clear active user")
	}
	return nil
}

// ActiveUser resolves the logged-in profile. Nobody logged in, or a stored
// id pointing at a deleted user, both yield (nil, nil) rather than an
// error.
func (s *userService) ActiveUser() (*model.LocalUser, error) {
	id, err := s.stateRepo.Get(model.ActiveUserKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storeErr(err, "failed to read active user")
	}
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storeErr(err, "failed to read active user")
	}
	return withDerived(user), nil
}
