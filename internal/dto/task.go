package dto

import (
	"time"

	"github.com/yukikurage/timesheet-api/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID           uint64            `json:"id"`
	TaskName     string            `json:"taskName"`
	TaskHour     int               `json:"taskHour"`
	SpentHour    int               `json:"spentHour"`
	TaskAssigned []string          `json:"taskAssigned"`
	TaskStatus   models.TaskStatus `json:"taskStatus"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// ProjectTaskDTO is a task as seen from one project, with the hours allocated
// to it there
type ProjectTaskDTO struct {
	TaskDTO
	AllocatedHour int `json:"allocatedHour"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	assigned := make([]string, len(task.TaskAssigned))
	copy(assigned, task.TaskAssigned)

	return TaskDTO{
		ID:           task.ID,
		TaskName:     task.TaskName,
		TaskHour:     task.TaskHour,
		SpentHour:    task.SpentHour,
		TaskAssigned: assigned,
		TaskStatus:   task.TaskStatus,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
	}
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		items[i] = ToTaskDTO(t)
	}
	return items
}

// ToProjectTaskDTOs converts project links with preloaded tasks
func ToProjectTaskDTOs(links []models.ProjectTask) []ProjectTaskDTO {
	items := make([]ProjectTaskDTO, len(links))
	for i, link := range links {
		items[i] = ProjectTaskDTO{
			TaskDTO:       ToTaskDTO(link.Task),
			AllocatedHour: link.TaskHour,
		}
	}
	return items
}
