package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/timesheet-api/internal/constants"
	"github.com/yukikurage/timesheet-api/internal/models"
	"github.com/yukikurage/timesheet-api/internal/repository"
	"github.com/yukikurage/timesheet-api/internal/utils"
	"gorm.io/gorm"
)

// TimeLogService records the hours users report against project tasks and
// drives the task status lifecycle from those reports.
type TimeLogService struct {
	logRepo     repository.TimeLogRepository
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	userRepo    repository.UserRepository
	now         func() time.Time
}

// NewTimeLogService creates a new TimeLogService.
func NewTimeLogService(
	logRepo repository.TimeLogRepository,
	projectRepo repository.ProjectRepository,
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
) *TimeLogService {
	return &TimeLogService{
		logRepo:     logRepo,
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		userRepo:    userRepo,
		now:         time.Now,
	}
}

// Actor identifies the authenticated caller.
type Actor struct {
	UserID uint64
	Role   models.Role
}

// IsAdmin reports whether the caller has the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// CreateLogInput represents a new time log entry. ProjectID, when set, selects the
// project directly; otherwise the project is looked up by name.
type CreateLogInput struct {
	Date        time.Time
	ProjectID   uint64
	ProjectName string
	TaskName    string
	SpentHour   int
}

// UpdateLogInput represents the progress recorded on an existing entry.
type UpdateLogInput struct {
	SpentHour  int
	TaskStatus *models.TaskStatus
}

// UpdateLogResult carries the entry and the task after an update.
type UpdateLogResult struct {
	Log  *models.TimeLog
	Task *models.Task
}

// CreateLog stores an In Progress entry for the actor and advances a Pending task
// to In Progress. The task must belong to the named project, the actor must be a
// member of it unless admin, and the hours must fit the remaining allocation.
func (s *TimeLogService) CreateLog(actor Actor, input CreateLogInput) (*models.TimeLog, error) {
	if err := checkLogHours(input.SpentHour); err != nil {
		return nil, err
	}
	if input.Date.IsZero() {
		return nil, validationf("date is required")
	}

	if _, err := s.userRepo.FindByID(actor.UserID); err != nil {
		return nil, notFound(err, ErrUserNotFound, "find user")
	}

	taskName := strings.TrimSpace(input.TaskName)
	project, err := s.resolveProject(actor, input.ProjectID, strings.TrimSpace(input.ProjectName), taskName)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !project.HasUser(actor.UserID) {
		return nil, ErrNotProjectMember
	}

	link, ok := findTaskLink(project, taskName)
	if !ok {
		return nil, ErrTaskNotInProject
	}
	task := link.Task

	if task.TaskStatus == models.TaskStatusCompleted {
		return nil, ErrTaskCompleted
	}
	if input.SpentHour > link.TaskHour-task.SpentHour {
		return nil, ErrHoursExceedPlanned
	}

	entry := &models.TimeLog{
		Date:        input.Date,
		ProjectName: project.ProjectName,
		TaskName:    task.TaskName,
		ProjectID:   project.ID,
		TaskID:      task.ID,
		SpentHour:   input.SpentHour,
		TaskStatus:  models.TaskStatusInProgress,
		UserID:      actor.UserID,
	}

	task.SpentHour += input.SpentHour
	if task.TaskStatus == models.TaskStatusPending {
		task.TaskStatus = models.TaskStatusInProgress
	}

	if err := s.logRepo.CreateWithTask(entry, &task); err != nil {
		return nil, fmt.Errorf("failed to create log entry: %w", err)
	}
	return entry, nil
}

// UpdateLog records continued progress or completion on an entry. The task's
// spent hours take the entry's new value, capped by the hours planned for the task
// in the project. Completing the entry completes the task; the entry's owner is
// credited with one completed task only when the task was not already Completed.
func (s *TimeLogService) UpdateLog(actor Actor, id uint64, input UpdateLogInput) (*UpdateLogResult, error) {
	entry, err := s.logRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrLogNotFound, "find log entry")
	}
	if !actor.IsAdmin() && entry.UserID != actor.UserID {
		return nil, ErrNotLogOwner
	}
	if entry.TaskStatus == models.TaskStatusCompleted {
		return nil, ErrLogCompleted
	}
	if err := checkLogHours(input.SpentHour); err != nil {
		return nil, err
	}
	if input.TaskStatus != nil {
		if err := checkAdvance(entry.TaskStatus, *input.TaskStatus); err != nil {
			return nil, err
		}
	}

	task, err := s.taskRepo.FindByID(entry.TaskID)
	if err != nil {
		return nil, notFound(err, ErrTaskNotFound, "find task")
	}
	planned, ok, err := s.plannedHours(entry)
	if err != nil {
		return nil, err
	}
	if ok && input.SpentHour > planned {
		return nil, ErrHoursExceedPlanned
	}
	alreadyCompleted := task.TaskStatus == models.TaskStatusCompleted

	entry.SpentHour = input.SpentHour
	task.SpentHour = input.SpentHour

	var completedBy *uint64
	if input.TaskStatus != nil {
		entry.TaskStatus = *input.TaskStatus
		if task.TaskStatus.CanAdvanceTo(*input.TaskStatus) {
			task.TaskStatus = *input.TaskStatus
		}
		if *input.TaskStatus == models.TaskStatusCompleted && !alreadyCompleted {
			owner := entry.UserID
			completedBy = &owner
		}
	}

	if err := s.logRepo.SaveProgress(entry, task, completedBy, s.now()); err != nil {
		return nil, notFound(err, ErrUserNotFound, "update log entry")
	}

	return &UpdateLogResult{Log: entry, Task: task}, nil
}

// ListLogs returns a page of entries, newest first, and the total count.
func (s *TimeLogService) ListLogs(params utils.PaginationParams) ([]models.TimeLog, int64, error) {
	logs, total, err := s.logRepo.List(repository.TimeLogFilter{Pagination: &params})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list log entries: %w", err)
	}
	return logs, total, nil
}

// ListUserLogs returns every entry of a user, newest first.
func (s *TimeLogService) ListUserLogs(userID uint64) ([]models.TimeLog, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return nil, notFound(err, ErrUserNotFound, "find user")
	}

	logs, _, err := s.logRepo.List(repository.TimeLogFilter{UserID: &userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list log entries: %w", err)
	}
	return logs, nil
}

// resolveProject picks the project a new entry is logged against. Names are not
// unique (duplicated projects share theirs), so among same-named projects the
// first one the actor may log on that links taskName wins.
func (s *TimeLogService) resolveProject(actor Actor, projectID uint64, name, taskName string) (*models.Project, error) {
	if projectID != 0 {
		project, err := s.projectRepo.FindByID(projectID, "Tasks.Task", "Users")
		if err != nil {
			return nil, notFound(err, ErrProjectNotFound, "find project")
		}
		if name != "" && name != project.ProjectName {
			return nil, validationf("projectName does not match projectId")
		}
		return project, nil
	}
	if name == "" {
		return nil, validationf("projectName or projectId is required")
	}

	projects, err := s.projectRepo.ListByName(name, "Tasks.Task", "Users")
	if err != nil {
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	if len(projects) == 0 {
		return nil, ErrProjectNotFound
	}

	var allowed *models.Project
	for i := range projects {
		p := &projects[i]
		if !actor.IsAdmin() && !p.HasUser(actor.UserID) {
			continue
		}
		if _, ok := findTaskLink(p, taskName); ok {
			return p, nil
		}
		if allowed == nil {
			allowed = p
		}
	}
	if allowed != nil {
		return allowed, nil
	}
	return &projects[0], nil
}

// plannedHours returns the hours allocated to the entry's task in its project.
// It reports false once the project or the link is gone.
func (s *TimeLogService) plannedHours(entry *models.TimeLog) (int, bool, error) {
	project, err := s.projectRepo.FindByID(entry.ProjectID, "Tasks")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to find project: %w", err)
	}
	for _, link := range project.Tasks {
		if link.TaskID == entry.TaskID {
			return link.TaskHour, true, nil
		}
	}
	return 0, false, nil
}

func checkLogHours(hours int) error {
	if hours < constants.MinLogHours || hours > constants.MaxLogHours {
		return validationf("spentHour must be between %d and %d", constants.MinLogHours, constants.MaxLogHours)
	}
	return nil
}

func findTaskLink(project *models.Project, taskName string) (models.ProjectTask, bool) {
	for _, link := range project.Tasks {
		if link.Task.ID != 0 && link.Task.TaskName == taskName {
			return link, true
		}
	}
	return models.ProjectTask{}, false
}
