package dto

import (
	"time"

	"github.com/yukikurage/timesheet-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID            uint64      `json:"id"`
	Username      string      `json:"username"`
	Email         string      `json:"email"`
	Phone         string      `json:"phone"`
	Department    string      `json:"department"`
	BusinessUnit  string      `json:"businessUnit"`
	CompletedTask int         `json:"completedTask"`
	CompletedDate *time.Time  `json:"completedDate"`
	Role          models.Role `json:"role"`
	Projects      []uint64    `json:"projects"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// LoginResponse is returned by a successful login. UserID is only set for the
// user role.
type LoginResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	Role    models.Role `json:"role"`
	UserID  *uint64     `json:"userId,omitempty"`
}

// TokenValidationResponse is returned by the token validation endpoint
type TokenValidationResponse struct {
	Valid   bool        `json:"valid"`
	Role    models.Role `json:"role,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:            user.ID,
		Username:      user.Username,
		Email:         user.Email,
		Phone:         user.Phone,
		Department:    user.Department,
		BusinessUnit:  user.BusinessUnit,
		CompletedTask: user.CompletedTask,
		CompletedDate: user.CompletedDate,
		Role:          user.Role,
		Projects:      user.ProjectIDs(),
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	items := make([]UserDTO, len(users))
	for i, u := range users {
		items[i] = ToUserDTO(u)
	}
	return items
}

// NewLoginResponse builds the login payload for user
func NewLoginResponse(user models.User, token string) LoginResponse {
	resp := LoginResponse{
		Message: "Login successful.",
		Token:   token,
		Role:    user.Role,
	}
	if user.Role == models.RoleUser {
		id := user.ID
		resp.UserID = &id
	}
	return resp
}
