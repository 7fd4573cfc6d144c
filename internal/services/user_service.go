package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/timesheet-api/internal/models"
	"github.com/yukikurage/timesheet-api/internal/repository"
)

// UserService provides the admin user directory.
type UserService struct {
	userRepo repository.UserRepository
	now      func() time.Time
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		now:      time.Now,
	}
}

// CreateUserInput represents the fields of a new user.
type CreateUserInput struct {
	Username     string
	Password     string
	Email        string
	Phone        string
	Department   string
	BusinessUnit string
	Role         models.Role
}

// UpdateUserInput holds the fields to change. Nil fields are left untouched.
type UpdateUserInput struct {
	Username     *string
	Password     *string
	Email        *string
	Phone        *string
	Department   *string
	BusinessUnit *string
	Role         *models.Role
}

// CreateUser creates a user; the role defaults to user.
func (s *UserService) CreateUser(input CreateUserInput) (*models.User, error) {
	return createUser(s.userRepo, input)
}

// ListUsers returns the users matching filter.
func (s *UserService) ListUsers(filter repository.DirectoryFilter) ([]models.User, error) {
	users, err := s.userRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetUser returns a user with its project memberships.
func (s *UserService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id, "Memberships")
	if err != nil {
		return nil, notFound(err, ErrUserNotFound, "find user")
	}
	return user, nil
}

// UpdateUser applies input to the user. A new password is re-hashed.
func (s *UserService) UpdateUser(id uint64, input UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound, "find user")
	}

	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if username == "" {
			return nil, validationf("username cannot be empty")
		}
		user.Username = username
	}
	if input.Password != nil {
		hashed, err := hashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hashed
	}
	if input.Email != nil {
		user.Email = strings.TrimSpace(*input.Email)
	}
	if input.Phone != nil {
		user.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Department != nil {
		user.Department = strings.TrimSpace(*input.Department)
	}
	if input.BusinessUnit != nil {
		user.BusinessUnit = strings.TrimSpace(*input.BusinessUnit)
	}
	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, validationf("invalid role %q", *input.Role)
		}
		user.Role = *input.Role
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, conflict(err, ErrUsernameTaken, "update user")
	}

	return s.GetUser(id)
}

// DeleteUser removes the user and its project memberships.
func (s *UserService) DeleteUser(id uint64) error {
	if err := s.userRepo.Delete(id); err != nil {
		return notFound(err, ErrUserNotFound, "delete user")
	}
	return nil
}

// IncrementCompletedTasks adds increment to the user's completed task counter
// and stamps the completion date.
func (s *UserService) IncrementCompletedTasks(id uint64, increment int) (*models.User, error) {
	if increment < 1 {
		return nil, validationf("increment must be at least 1")
	}

	if err := s.userRepo.IncrementCompletedTasks(id, increment, s.now()); err != nil {
		return nil, notFound(err, ErrUserNotFound, "update completed tasks")
	}

	return s.GetUser(id)
}
