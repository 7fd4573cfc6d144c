package dto

import (
	"time"

	"github.com/yukikurage/timesheet-api/internal/models"
	"github.com/yukikurage/timesheet-api/internal/utils"
)

// TimeLogDTO represents a time log entry in API responses
type TimeLogDTO struct {
	ID          uint64            `json:"id"`
	Date        string            `json:"date"`
	ProjectName string            `json:"projectName"`
	TaskName    string            `json:"taskName"`
	ProjectID   uint64            `json:"projectId"`
	TaskID      uint64            `json:"taskId"`
	SpentHour   int               `json:"spentHour"`
	TaskStatus  models.TaskStatus `json:"taskStatus"`
	User        uint64            `json:"user"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// TimeLogListResponse represents a paginated list of time logs
type TimeLogListResponse struct {
	Logs       []TimeLogDTO             `json:"logs"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// TimeLogCreatedResponse is returned when an entry is added
type TimeLogCreatedResponse struct {
	Message string     `json:"message"`
	Log     TimeLogDTO `json:"log"`
}

// TimeLogUpdatedResponse is returned when progress is recorded on an entry
type TimeLogUpdatedResponse struct {
	Message string     `json:"message"`
	Log     TimeLogDTO `json:"log"`
	Task    TaskDTO    `json:"task"`
}

// ToTimeLogDTO converts a TimeLog model to TimeLogDTO
func ToTimeLogDTO(log models.TimeLog) TimeLogDTO {
	return TimeLogDTO{
		ID:          log.ID,
		Date:        utils.FormatDate(log.Date),
		ProjectName: log.ProjectName,
		TaskName:    log.TaskName,
		ProjectID:   log.ProjectID,
		TaskID:      log.TaskID,
		SpentHour:   log.SpentHour,
		TaskStatus:  log.TaskStatus,
		User:        log.UserID,
		CreatedAt:   log.CreatedAt,
		UpdatedAt:   log.UpdatedAt,
	}
}

// ToTimeLogDTOs converts a slice of time logs
func ToTimeLogDTOs(logs []models.TimeLog) []TimeLogDTO {
	items := make([]TimeLogDTO, len(logs))
	for i, l := range logs {
		items[i] = ToTimeLogDTO(l)
	}
	return items
}
