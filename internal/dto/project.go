package dto

import (
	"time"

	"github.com/yukikurage/timesheet-api/internal/models"
)

// ProjectTaskRefDTO is a task reference inside a project with its planned hours
type ProjectTaskRefDTO struct {
	TaskID   uint64 `json:"taskId"`
	TaskName string `json:"taskName,omitempty"`
	TaskHour int    `json:"taskHour"`
}

// ProjectUserRefDTO is a member reference inside a project
type ProjectUserRefDTO struct {
	UserID   uint64 `json:"userId"`
	Username string `json:"username,omitempty"`
}

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID           uint64              `json:"id"`
	ProjectName  string              `json:"projectName"`
	ClientName   string              `json:"clientName"`
	Address      string              `json:"address"`
	Department   string              `json:"department"`
	BusinessUnit string              `json:"businessUnit"`
	ProjectType  string              `json:"projectType"`
	Tasks        []ProjectTaskRefDTO `json:"tasks"`
	Users        []ProjectUserRefDTO `json:"users"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

// ProjectMutationResponse wraps a project returned by an assignment call
type ProjectMutationResponse struct {
	Message string     `json:"message"`
	Project ProjectDTO `json:"project"`
}

// ToProjectDTO converts a Project model to ProjectDTO. Names are filled in when
// the linked task or user was preloaded.
func ToProjectDTO(project models.Project) ProjectDTO {
	dto := ProjectDTO{
		ID:           project.ID,
		ProjectName:  project.ProjectName,
		ClientName:   project.ClientName,
		Address:      project.Address,
		Department:   project.Department,
		BusinessUnit: project.BusinessUnit,
		ProjectType:  project.ProjectType,
		Tasks:        make([]ProjectTaskRefDTO, len(project.Tasks)),
		Users:        make([]ProjectUserRefDTO, len(project.Users)),
		CreatedAt:    project.CreatedAt,
		UpdatedAt:    project.UpdatedAt,
	}

	for i, link := range project.Tasks {
		dto.Tasks[i] = ProjectTaskRefDTO{
			TaskID:   link.TaskID,
			TaskName: link.Task.TaskName,
			TaskHour: link.TaskHour,
		}
	}
	for i, link := range project.Users {
		dto.Users[i] = ProjectUserRefDTO{
			UserID:   link.UserID,
			Username: link.User.Username,
		}
	}

	return dto
}

// ToProjectDTOs converts a slice of projects
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	items := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		items[i] = ToProjectDTO(p)
	}
	return items
}
