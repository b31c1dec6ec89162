package repository

import (
	"github.com/lshigami/kioku/internal/model"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.LocalUser) error
	FindByID(id string) (*model.LocalUser, error)
	FindAll() ([]model.LocalUser, error)
	Update(user *model.LocalUser) error
	Delete(id string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.LocalUser) error {
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(id string) (*model.LocalUser, error) {
	var user model.LocalUser
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindAll() ([]model.LocalUser, error) {
	var users []model.LocalUser
	err := r.db.
		Order("last_login_at DESC NULLS LAST, created_at DESC").
		Find(&users).Error
	return users, err
}

func (r *userRepository) Update(user *model.LocalUser) error {
	return r.db.Save(user).Error
}

func (r *userRepository) Delete(id string) error {
	return r.db.Delete(&model.LocalUser{}, "id = ?", id).Error
}
