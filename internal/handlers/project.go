package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/timesheet-api/internal/dto"
	apierrors "github.com/yukikurage/timesheet-api/internal/errors"
	"github.com/yukikurage/timesheet-api/internal/repository"
	"github.com/yukikurage/timesheet-api/internal/services"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	type CreateProjectRequest struct {
		ProjectName  string `json:"projectName" binding:"required,max=255"`
		ClientName   string `json:"clientName" binding:"required,max=255"`
		Address      string `json:"address" binding:"required,max=255"`
		Department   string `json:"department" binding:"required,max=255"`
		BusinessUnit string `json:"businessUnit" binding:"required,max=255"`
		ProjectType  string `json:"projectType" binding:"required,max=100"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(services.ProjectInput{
		ProjectName:  req.ProjectName,
		ClientName:   req.ClientName,
		Address:      req.Address,
		Department:   req.Department,
		BusinessUnit: req.BusinessUnit,
		ProjectType:  req.ProjectType,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// ListProjects returns projects filtered by search (name, client or address),
// department and businessUnit, with task and user references populated
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.projectService.ListProjects(repository.DirectoryFilter{
		Search:       c.Query("search"),
		Department:   c.Query("department"),
		BusinessUnit: c.Query("businessUnit"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTOs(projects))
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "project")
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "project")
	if !ok {
		return
	}

	type UpdateProjectRequest struct {
		ProjectName  *string `json:"projectName" binding:"omitempty,max=255"`
		ClientName   *string `json:"clientName" binding:"omitempty,max=255"`
		Address      *string `json:"address" binding:"omitempty,max=255"`
		Department   *string `json:"department" binding:"omitempty,max=255"`
		BusinessUnit *string `json:"businessUnit" binding:"omitempty,max=255"`
		ProjectType  *string `json:"projectType" binding:"omitempty,max=100"`
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.UpdateProject(id, services.UpdateProjectInput{
		ProjectName:  req.ProjectName,
		ClientName:   req.ClientName,
		Address:      req.Address,
		Department:   req.Department,
		BusinessUnit: req.BusinessUnit,
		ProjectType:  req.ProjectType,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "project")
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted successfully",
	})
}

func (h *ProjectHandler) DuplicateProject(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "project")
	if !ok {
		return
	}

	project, err := h.projectService.DuplicateProject(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// AddUser makes a user a member of the project
func (h *ProjectHandler) AddUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "project")
	if !ok {
		return
	}

	type AddUserRequest struct {
		UserID uint64 `json:"userId" binding:"required"`
	}

	var req AddUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.AddUser(id, req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProjectMutationResponse{
		Message: "User added to project successfully",
		Project: dto.ToProjectDTO(*project),
	})
}

// AddTask links an unassigned task to the project with its planned hours
func (h *ProjectHandler) AddTask(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "project")
	if !ok {
		return
	}

	type AddTaskRequest struct {
		TaskID   uint64 `json:"taskId" binding:"required"`
		TaskHour int    `json:"taskHour" binding:"required,gt=0"`
	}

	var req AddTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.AddTask(id, req.TaskID, req.TaskHour)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProjectMutationResponse{
		Message: "Task added to project successfully",
		Project: dto.ToProjectDTO(*project),
	})
}

// ListUserProjects returns the projects a user belongs to
func (h *ProjectHandler) ListUserProjects(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId", "user")
	if !ok {
		return
	}

	projects, err := h.projectService.ListByUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTOs(projects))
}

// ListProjectTasks returns the tasks linked to ?projectId with their allocated hours
func (h *ProjectHandler) ListProjectTasks(c *gin.Context) {
	raw := c.Query("projectId")
	if raw == "" {
		apierrors.BadRequest(c, "No project ID provided")
		return
	}
	projectID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || projectID == 0 {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	links, err := h.projectService.ProjectTasks(projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectTaskDTOs(links))
}
