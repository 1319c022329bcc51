package repository

import (
	"context"

	"gorm.io/gorm"

	"invest-research/internal/model"
)

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	// EnsureDefault creates the single-tenant default user if it does not
	// exist yet. Called once at startup.
	EnsureDefault(ctx context.Context) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) EnsureDefault(ctx context.Context) error {
	user := model.User{ID: model.DefaultUserID, Name: "Default User"}
	return r.db.WithContext(ctx).
		Where("id = ?", model.DefaultUserID).
		FirstOrCreate(&user).Error
}
