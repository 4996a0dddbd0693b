// File: internal/repository/user/gorm_user_repository.go
package user

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/sarmadi/go-chathub/internal/domain"
)

var ErrUserNotFound = errors.New("user not found")

type gormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

func (r *gormUserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	if u == nil {
		return nil, errors.New("user cannot be nil")
	}
	if err := u.IsValid(); err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		log.Printf("[UserRepository] Database error creating user %q: %v", u.Username, err)
		return nil, errors.New("database error creating user")
	}
	return u, nil
}

func (r *gormUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if id == 0 {
		return nil, ErrUserNotFound
	}

	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		log.Printf("[UserRepository] Database error finding user ID %d: %v", id, err)
		return nil, errors.New("database error fetching user")
	}
	return &u, nil
}

func (r *gormUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	if username == "" {
		return nil, ErrUserNotFound
	}

	var u domain.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		log.Printf("[UserRepository] Database error finding user by username: %v", err)
		return nil, errors.New("database error fetching user")
	}
	return &u, nil
}
