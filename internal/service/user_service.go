package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/auditrain/auditrain-backend/internal/model"
	"github.com/auditrain/auditrain-backend/internal/repository"
	"github.com/jackc/pgx/v5"
)

// UserService handles account business logic.
type UserService struct {
	userRepo *repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Authenticate verifies email+password and returns the matching user.
// The comparison is against the legacy plaintext password column.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.userRepo.GetByCredentials(ctx, email, password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user by credentials: %w", err)
	}
	return user, nil
}

// Register creates a new student account.
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	user := &model.User{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Class:    req.Class,
		Role:     model.RoleStudent,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetByEmail returns one user.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.userRepo.GetByEmail(ctx, email)
}

// List returns users with optional role/class filters.
func (s *UserService) List(ctx context.Context, role *model.Role, class *string) ([]model.User, error) {
	return s.userRepo.List(ctx, role, class)
}

// UpdatePassword changes a password after verifying the old one.
// Returns ErrInvalidCredentials when the old password does not match.
func (s *UserService) UpdatePassword(ctx context.Context, email string, req *model.UpdatePasswordRequest) error {
	err := s.userRepo.UpdatePassword(ctx, email, req.OldPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// UpdateProfile updates the non-empty profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, email string, req *model.UpdateProfileRequest) (*model.User, error) {
	return s.userRepo.UpdateProfile(ctx, email, req.FullName, req.Class)
}
