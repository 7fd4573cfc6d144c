package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/timesheet-api/internal/constants"
	"github.com/yukikurage/timesheet-api/internal/models"
	"github.com/yukikurage/timesheet-api/internal/repository"
	"gorm.io/datatypes"
)

// ProjectService provides project management and the assignment of tasks and
// users to projects.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	userRepo    repository.UserRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(
	projectRepo repository.ProjectRepository,
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		userRepo:    userRepo,
	}
}

// ProjectInput represents the scalar fields of a project. All are required on create.
type ProjectInput struct {
	ProjectName  string
	ClientName   string
	Address      string
	Department   string
	BusinessUnit string
	ProjectType  string
}

// UpdateProjectInput holds the fields to change. Nil fields are left untouched.
type UpdateProjectInput struct {
	ProjectName  *string
	ClientName   *string
	Address      *string
	Department   *string
	BusinessUnit *string
	ProjectType  *string
}

// CreateProject creates a project without tasks or users.
func (s *ProjectService) CreateProject(input ProjectInput) (*models.Project, error) {
	project := &models.Project{
		ProjectName:  strings.TrimSpace(input.ProjectName),
		ClientName:   strings.TrimSpace(input.ClientName),
		Address:      strings.TrimSpace(input.Address),
		Department:   strings.TrimSpace(input.Department),
		BusinessUnit: strings.TrimSpace(input.BusinessUnit),
		ProjectType:  strings.TrimSpace(input.ProjectType),
	}
	if err := validateProject(project); err != nil {
		return nil, err
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

// ListProjects returns the projects matching filter with tasks and users populated.
func (s *ProjectService) ListProjects(filter repository.DirectoryFilter) ([]models.Project, error) {
	projects, err := s.projectRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetProject returns a project with tasks and users populated.
func (s *ProjectService) GetProject(id uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id, "Tasks.Task", "Users.User")
	if err != nil {
		return nil, notFound(err, ErrProjectNotFound, "find project")
	}
	return project, nil
}

// UpdateProject applies input to the project.
func (s *ProjectService) UpdateProject(id uint64, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrProjectNotFound, "find project")
	}
	previousName := project.ProjectName

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	apply(&project.ProjectName, input.ProjectName)
	apply(&project.ClientName, input.ClientName)
	apply(&project.Address, input.Address)
	apply(&project.Department, input.Department)
	apply(&project.BusinessUnit, input.BusinessUnit)
	apply(&project.ProjectType, input.ProjectType)

	if err := validateProject(project); err != nil {
		return nil, err
	}

	if err := s.projectRepo.Update(project, previousName); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return s.GetProject(id)
}

// DeleteProject removes the project and releases its tasks.
func (s *ProjectService) DeleteProject(id uint64) error {
	if err := s.projectRepo.Delete(id); err != nil {
		return notFound(err, ErrProjectNotFound, "delete project")
	}
	return nil
}

// DuplicateProject copies the project's fields and link lists into a new project
// named "<name> (Copy)".
func (s *ProjectService) DuplicateProject(id uint64) (*models.Project, error) {
	source, err := s.projectRepo.FindByID(id, "Tasks", "Users")
	if err != nil {
		return nil, notFound(err, ErrProjectNotFound, "find project")
	}

	dup := &models.Project{
		ProjectName:  source.ProjectName + constants.DuplicateProjectSuffix,
		ClientName:   source.ClientName,
		Address:      source.Address,
		Department:   source.Department,
		BusinessUnit: source.BusinessUnit,
		ProjectType:  source.ProjectType,
	}

	if err := s.projectRepo.Duplicate(source, dup); err != nil {
		return nil, fmt.Errorf("failed to duplicate project: %w", err)
	}
	return s.GetProject(dup.ID)
}

// AddTask links a task to a project with taskHour planned hours. Both conflict
// checks run before anything is written, and the link and the task's assignment
// list are stored in one transaction.
func (s *ProjectService) AddTask(projectID, taskID uint64, taskHour int) (*models.Project, error) {
	if taskHour <= 0 {
		return nil, validationf("taskHour must be greater than 0")
	}

	project, err := s.projectRepo.FindByID(projectID, "Tasks")
	if err != nil {
		return nil, notFound(err, ErrProjectNotFound, "find project")
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		return nil, notFound(err, ErrTaskNotFound, "find task")
	}

	if task.IsAssigned() {
		return nil, ErrTaskAlreadyAssigned
	}
	if project.HasTask(task.ID) {
		return nil, ErrTaskAlreadyInProject
	}

	assigned := make(datatypes.JSONSlice[string], 0, 1)
	task.TaskAssigned = append(assigned, project.ProjectName)

	link := &models.ProjectTask{
		ProjectID: project.ID,
		TaskID:    task.ID,
		TaskHour:  taskHour,
	}
	if err := s.projectRepo.LinkTask(link, task); err != nil {
		if errors.Is(err, repository.ErrTaskAssigned) {
			return nil, ErrTaskAlreadyAssigned
		}
		return nil, conflict(err, ErrTaskAlreadyInProject, "add task to project")
	}

	return s.GetProject(project.ID)
}

// AddUser makes a user a member of a project.
func (s *ProjectService) AddUser(projectID, userID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID, "Users")
	if err != nil {
		return nil, notFound(err, ErrProjectNotFound, "find project")
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound, "find user")
	}

	if project.HasUser(user.ID) {
		return nil, ErrUserAlreadyInProject
	}

	link := &models.ProjectUser{
		ProjectID: project.ID,
		UserID:    user.ID,
	}
	if err := s.projectRepo.LinkUser(link); err != nil {
		return nil, conflict(err, ErrUserAlreadyInProject, "add user to project")
	}

	return s.GetProject(project.ID)
}

// ListByUser returns the projects the user is a member of.
func (s *ProjectService) ListByUser(userID uint64) ([]models.Project, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return nil, notFound(err, ErrUserNotFound, "find user")
	}

	projects, err := s.projectRepo.ListByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// ProjectTasks returns the task links of a project with their tasks populated.
func (s *ProjectService) ProjectTasks(projectID uint64) ([]models.ProjectTask, error) {
	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		return nil, notFound(err, ErrProjectNotFound, "find project")
	}

	links, err := s.taskRepo.ListByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project tasks: %w", err)
	}
	return links, nil
}

func validateProject(p *models.Project) error {
	required := []struct {
		name  string
		value string
	}{
		{"projectName", p.ProjectName},
		{"clientName", p.ClientName},
		{"address", p.Address},
		{"department", p.Department},
		{"businessUnit", p.BusinessUnit},
		{"projectType", p.ProjectType},
	}
	for _, f := range required {
		if f.value == "" {
			return validationf("%s is required", f.name)
		}
	}
	return nil
}
