package repository

import (
	"errors"
	"time"

	"github.com/yukikurage/timesheet-api/internal/models"
	"github.com/yukikurage/timesheet-api/internal/utils"
)

// ErrTaskAssigned is returned by LinkTask when the task was claimed by another project
var ErrTaskAssigned = errors.New("task is already assigned")

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// List retrieves users matching the filter
	List(filter DirectoryFilter) ([]models.User, error)

	// ListByRole retrieves all users with the given role
	ListByRole(role models.Role) ([]models.User, error)

	// Update saves all user fields
	Update(user *models.User) error

	// Delete removes a user and its project memberships
	Delete(id uint64) error

	// IncrementCompletedTasks adds n to the completed task counter and stamps the date
	IncrementCompletedTasks(id uint64, n int, at time.Time) error
}

// DirectoryFilter holds the search options shared by the user and project listings.
// Every field is a case-insensitive substring match; empty fields are ignored.
type DirectoryFilter struct {
	Search       string
	Department   string
	BusinessUnit string
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// ListByName retrieves the projects carrying exactly name, oldest first
	ListByName(name string, preload ...string) ([]models.Project, error)

	// List retrieves projects matching the filter with task and user references populated
	List(filter DirectoryFilter) ([]models.Project, error)

	// ListWithTasks retrieves every project with its task links and tasks populated
	ListWithTasks() ([]models.Project, error)

	// ListByUserID retrieves the projects a user is a member of
	ListByUserID(userID uint64) ([]models.Project, error)

	// Update saves the scalar project fields and follows a rename into task assignments
	Update(project *models.Project, previousName string) error

	// Delete removes a project, its links, and releases its tasks
	Delete(id uint64) error

	// Duplicate stores dup together with copies of the link rows of source
	Duplicate(source *models.Project, dup *models.Project) error

	// LinkTask stores the project-task link and the task's assignment list together.
	// It returns ErrTaskAssigned when the stored task already belongs to a project.
	LinkTask(link *models.ProjectTask, task *models.Task) error

	// LinkUser stores a project membership
	LinkUser(link *models.ProjectUser) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID
	FindByID(id uint64) (*models.Task, error)

	// List retrieves tasks whose name contains search (all tasks when empty)
	List(search string) ([]models.Task, error)

	// ListByProject retrieves the links of a project with their tasks populated
	ListByProject(projectID uint64) ([]models.ProjectTask, error)

	// Update saves all task fields
	Update(task *models.Task) error

	// Delete removes a task and every project link pointing at it
	Delete(id uint64) error
}

// TimeLogRepository defines the interface for time log data access
type TimeLogRepository interface {
	// CreateWithTask stores a new log together with the task progress it causes
	CreateWithTask(log *models.TimeLog, task *models.Task) error

	// FindByID finds a log by ID
	FindByID(id uint64) (*models.TimeLog, error)

	// List retrieves a page of logs and the total count
	List(filter TimeLogFilter) ([]models.TimeLog, int64, error)

	// ListAll retrieves every log with its user populated, oldest first
	ListAll() ([]models.TimeLog, error)

	// SaveProgress stores an updated log and task; when completedBy is non-nil the
	// user's completed task counter is incremented by one in the same transaction
	SaveProgress(log *models.TimeLog, task *models.Task, completedBy *uint64, at time.Time) error
}

// TimeLogFilter holds filtering options for listing time logs
type TimeLogFilter struct {
	UserID     *uint64
	Pagination *utils.PaginationParams
}
