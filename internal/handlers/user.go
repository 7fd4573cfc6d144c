package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/timesheet-api/internal/dto"
	apierrors "github.com/yukikurage/timesheet-api/internal/errors"
	"github.com/yukikurage/timesheet-api/internal/models"
	"github.com/yukikurage/timesheet-api/internal/repository"
	"github.com/yukikurage/timesheet-api/internal/services"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// CreateUser creates a user; the role defaults to user
func (h *UserHandler) CreateUser(c *gin.Context) {
	type CreateUserRequest struct {
		Username     string      `json:"username" binding:"required,min=3,max=100"`
		Password     string      `json:"password" binding:"required"`
		Email        string      `json:"email" binding:"omitempty,email"`
		Phone        string      `json:"phone" binding:"max=50"`
		Department   string      `json:"department"`
		BusinessUnit string      `json:"businessUnit"`
		Role         models.Role `json:"role" binding:"omitempty,oneof=admin user"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.CreateUser(services.CreateUserInput{
		Username:     req.Username,
		Password:     req.Password,
		Email:        req.Email,
		Phone:        req.Phone,
		Department:   req.Department,
		BusinessUnit: req.BusinessUnit,
		Role:         req.Role,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// ListUsers returns users filtered by search (username or email), department
// and businessUnit
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(repository.DirectoryFilter{
		Search:       c.Query("search"),
		Department:   c.Query("department"),
		BusinessUnit: c.Query("businessUnit"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTOs(users))
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "user")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "user")
	if !ok {
		return
	}

	type UpdateUserRequest struct {
		Username     *string      `json:"username" binding:"omitempty,min=3,max=100"`
		Password     *string      `json:"password"`
		Email        *string      `json:"email" binding:"omitempty,email"`
		Phone        *string      `json:"phone" binding:"omitempty,max=50"`
		Department   *string      `json:"department"`
		BusinessUnit *string      `json:"businessUnit"`
		Role         *models.Role `json:"role" binding:"omitempty,oneof=admin user"`
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateUser(id, services.UpdateUserInput{
		Username:     req.Username,
		Password:     req.Password,
		Email:        req.Email,
		Phone:        req.Phone,
		Department:   req.Department,
		BusinessUnit: req.BusinessUnit,
		Role:         req.Role,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// DeleteUser removes the user and its project memberships
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "user")
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User and user assignments removed successfully",
	})
}

// UpdateCompletedTasks adds to the user's completed task counter
func (h *UserHandler) UpdateCompletedTasks(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "user")
	if !ok {
		return
	}

	type IncrementRequest struct {
		Increment int `json:"increment" binding:"required,min=1"`
	}

	var req IncrementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.IncrementCompletedTasks(id, req.Increment)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}
