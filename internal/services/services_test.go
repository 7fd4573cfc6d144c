package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/timesheet-api/internal/database"
	"github.com/yukikurage/timesheet-api/internal/models"
	"github.com/yukikurage/timesheet-api/internal/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type serviceTestEnv struct {
	db       *gorm.DB
	tokens   *TokenService
	auth     *AuthService
	users    *UserService
	projects *ProjectService
	tasks    *TaskService
	logs     *TimeLogService
	reports  *ReportService
	exports  *ExportService
}

func setupServiceTestEnv(t *testing.T) serviceTestEnv {
	t.Helper()

	db, err := database.OpenInMemory(logger.Silent)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	logRepo := repository.NewTimeLogRepository(db)

	tokens := NewTokenService("test-secret", time.Hour)

	return serviceTestEnv{
		db:       db,
		tokens:   tokens,
		auth:     NewAuthService(userRepo, tokens),
		users:    NewUserService(userRepo),
		projects: NewProjectService(projectRepo, taskRepo, userRepo),
		tasks:    NewTaskService(taskRepo),
		logs:     NewTimeLogService(logRepo, projectRepo, taskRepo, userRepo),
		reports:  NewReportService(projectRepo, userRepo),
		exports:  NewExportService(logRepo),
	}
}

func (env serviceTestEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user, err := env.users.CreateUser(CreateUserInput{
		Username:     username,
		Password:     "password123",
		BusinessUnit: "BU-1",
	})
	require.NoError(t, err)
	return user
}

func (env serviceTestEnv) createProject(t *testing.T, name, businessUnit string) *models.Project {
	t.Helper()
	project, err := env.projects.CreateProject(ProjectInput{
		ProjectName:  name,
		ClientName:   "Client " + name,
		Address:      "1 Main St",
		Department:   "Engineering",
		BusinessUnit: businessUnit,
		ProjectType:  "Fixed",
	})
	require.NoError(t, err)
	return project
}

func (env serviceTestEnv) createTask(t *testing.T, name string, hours int) *models.Task {
	t.Helper()
	task, err := env.tasks.CreateTask(CreateTaskInput{TaskName: name, TaskHour: hours})
	require.NoError(t, err)
	return task
}

func (env serviceTestEnv) reloadTask(t *testing.T, id uint64) *models.Task {
	t.Helper()
	task, err := env.tasks.GetTask(id)
	require.NoError(t, err)
	return task
}

func (env serviceTestEnv) reloadUser(t *testing.T, id uint64) *models.User {
	t.Helper()
	user, err := env.users.GetUser(id)
	require.NoError(t, err)
	return user
}
