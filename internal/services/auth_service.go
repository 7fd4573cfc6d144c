package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/timesheet-api/internal/constants"
	"github.com/yukikurage/timesheet-api/internal/models"
	"github.com/yukikurage/timesheet-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *TokenService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// SignupInput represents the required information to create a new user.
type SignupInput struct {
	Username     string
	Password     string
	Email        string
	Phone        string
	Department   string
	BusinessUnit string
}

// Signup registers a new user with the user role.
func (s *AuthService) Signup(input SignupInput) (*models.User, error) {
	return createUser(s.userRepo, CreateUserInput{
		Username:     input.Username,
		Password:     input.Password,
		Email:        input.Email,
		Phone:        input.Phone,
		Department:   input.Department,
		BusinessUnit: input.BusinessUnit,
		Role:         models.RoleUser,
	})
}

// CreateAdmin registers a user with the admin role. It backs the bootstrap command.
func (s *AuthService) CreateAdmin(username, password, email string) (*models.User, error) {
	return createUser(s.userRepo, CreateUserInput{
		Username: username,
		Password: password,
		Email:    email,
		Role:     models.RoleAdmin,
	})
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	User  *models.User
	Token string
}

// Login verifies credentials and issues an access token.
func (s *AuthService) Login(input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByUsername(strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{User: user, Token: token}, nil
}

// Validate checks a token issued by Login.
func (s *AuthService) Validate(token string) (*Claims, error) {
	return s.tokens.Verify(token)
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id, "Memberships")
	if err != nil {
		return nil, notFound(err, ErrUserNotFound, "find user")
	}

	return user, nil
}

func hashPassword(password string) (string, error) {
	if len(password) < constants.MinPasswordLength {
		return "", ErrPasswordTooShort
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func createUser(userRepo repository.UserRepository, input CreateUserInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, validationf("username is required")
	}

	role := input.Role
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return nil, validationf("invalid role %q", role)
	}

	if _, err := userRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hashed,
		Email:        strings.TrimSpace(input.Email),
		Phone:        strings.TrimSpace(input.Phone),
		Department:   strings.TrimSpace(input.Department),
		BusinessUnit: strings.TrimSpace(input.BusinessUnit),
		Role:         role,
	}

	if err := userRepo.Create(user); err != nil {
		return nil, conflict(err, ErrUsernameTaken, "create user")
	}

	return user, nil
}
