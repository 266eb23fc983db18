package user

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"shdeco/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type Service struct {
	users UserRepository
}

func NewService(users UserRepository) *Service {
	return &Service{users: users}
}

// RegisterUser stores a new user or reports the existing one. Upsert by
// email: clients call this on every sign-in.
func (s *Service) RegisterUser(ctx context.Context, req CreateUserRequest) (*domain.User, bool, error) {
	existing, err := s.users.GetByEmail(ctx, req.Email)
	if err == nil {
		return existing, true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	u := &domain.User{
		Name:      req.Name,
		Email:     req.Email,
		PhotoURL:  req.PhotoURL,
		Role:      "user",
		CreatedAt: time.Now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		// A concurrent register for the same email may win the insert.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, lookupErr := s.users.GetByEmail(ctx, req.Email)
			if lookupErr == nil {
				return existing, true, nil
			}
		}
		return nil, false, err
	}
	return u, false, nil
}
