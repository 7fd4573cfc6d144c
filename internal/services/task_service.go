package services

import (
	"fmt"
	"strings"

	"github.com/yukikurage/timesheet-api/internal/models"
	"github.com/yukikurage/timesheet-api/internal/repository"
	"gorm.io/datatypes"
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	TaskName string
	TaskHour int
}

// UpdateTaskInput represents input for updating a task.
// The planned hours of a task cannot be changed after creation.
type UpdateTaskInput struct {
	TaskName   *string
	TaskStatus *models.TaskStatus
}

// CreateTask creates a Pending, unassigned task
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	name := strings.TrimSpace(input.TaskName)
	if name == "" {
		return nil, validationf("taskName is required")
	}
	if input.TaskHour <= 0 {
		return nil, validationf("taskHour must be greater than 0")
	}

	task := &models.Task{
		TaskName:     name,
		TaskHour:     input.TaskHour,
		TaskAssigned: datatypes.JSONSlice[string]{},
		TaskStatus:   models.TaskStatusPending,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// ListTasks returns tasks whose name contains search, ignoring case
func (s *TaskService) ListTasks(search string) ([]models.Task, error) {
	tasks, err := s.taskRepo.List(search)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns a task by ID
func (s *TaskService) GetTask(id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrTaskNotFound, "find task")
	}
	return task, nil
}

// UpdateTask renames a task or advances its status
func (s *TaskService) UpdateTask(id uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrTaskNotFound, "find task")
	}

	if input.TaskName != nil {
		name := strings.TrimSpace(*input.TaskName)
		if name == "" {
			return nil, validationf("taskName cannot be empty")
		}
		task.TaskName = name
	}
	if input.TaskStatus != nil {
		if err := checkAdvance(task.TaskStatus, *input.TaskStatus); err != nil {
			return nil, err
		}
		task.TaskStatus = *input.TaskStatus
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// DeleteTask removes a task whatever its status and detaches it from its project
func (s *TaskService) DeleteTask(id uint64) error {
	if err := s.taskRepo.Delete(id); err != nil {
		return notFound(err, ErrTaskNotFound, "delete task")
	}
	return nil
}

func checkAdvance(from, to models.TaskStatus) error {
	if !to.Valid() {
		return ErrInvalidTaskStatus
	}
	if !from.CanAdvanceTo(to) {
		return ErrStatusRegression
	}
	return nil
}
