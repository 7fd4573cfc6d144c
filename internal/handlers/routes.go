package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/timesheet-api/internal/middleware"
	"github.com/yukikurage/timesheet-api/internal/models"
	"github.com/yukikurage/timesheet-api/internal/repository"
	"github.com/yukikurage/timesheet-api/internal/services"
	"gorm.io/gorm"
)

// Services bundles the business services behind the HTTP API.
type Services struct {
	Tokens   *services.TokenService
	Auth     *services.AuthService
	Users    *services.UserService
	Projects *services.ProjectService
	Tasks    *services.TaskService
	Logs     *services.TimeLogService
	Reports  *services.ReportService
	Exports  *services.ExportService
}

// NewServices wires repositories over db into services.
func NewServices(db *gorm.DB, tokens *services.TokenService) Services {
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	logRepo := repository.NewTimeLogRepository(db)

	return Services{
		Tokens:   tokens,
		Auth:     services.NewAuthService(userRepo, tokens),
		Users:    services.NewUserService(userRepo),
		Projects: services.NewProjectService(projectRepo, taskRepo, userRepo),
		Tasks:    services.NewTaskService(taskRepo),
		Logs:     services.NewTimeLogService(logRepo, projectRepo, taskRepo, userRepo),
		Reports:  services.NewReportService(projectRepo, userRepo),
		Exports:  services.NewExportService(logRepo),
	}
}

// RegisterRoutes mounts the health check and the /api tree on r.
func RegisterRoutes(r *gin.Engine, svc Services) {
	authHandler := NewAuthHandler(svc.Auth)
	userHandler := NewUserHandler(svc.Users)
	projectHandler := NewProjectHandler(svc.Projects)
	taskHandler := NewTaskHandler(svc.Tasks)
	logHandler := NewTimeLogHandler(svc.Logs, svc.Exports)
	reportHandler := NewReportHandler(svc.Reports)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Timesheet API is running",
		})
	})

	requireAuth := middleware.RequireAuth(svc.Tokens)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/validate", authHandler.Validate)
			auth.GET("/me", requireAuth, authHandler.GetCurrentUser)
		}

		users := api.Group("/users", requireAuth)
		{
			users.POST("", adminOnly, userHandler.CreateUser)
			users.GET("", adminOnly, userHandler.ListUsers)
			users.GET("/performance", adminOnly, reportHandler.EmployeePerformance)
			users.GET("/:id", middleware.RequireSelfOrAdmin("id"), userHandler.GetUser)
			users.PUT("/:id", adminOnly, userHandler.UpdateUser)
			users.DELETE("/:id", adminOnly, userHandler.DeleteUser)
			users.PUT("/:id/updateCompletedTasks", middleware.RequireSelfOrAdmin("id"), userHandler.UpdateCompletedTasks)
		}

		projects := api.Group("/projects", requireAuth)
		{
			projects.GET("/user/:userId", middleware.RequireSelfOrAdmin("userId"), projectHandler.ListUserProjects)
			projects.GET("/graph/hours", adminOnly, reportHandler.PlannedVsSpent)
			projects.GET("/graph/completed", adminOnly, reportHandler.CompletedByProject)
			projects.POST("", adminOnly, projectHandler.CreateProject)
			projects.GET("", adminOnly, projectHandler.ListProjects)
			projects.GET("/:id", adminOnly, projectHandler.GetProject)
			projects.PUT("/:id", adminOnly, projectHandler.UpdateProject)
			projects.DELETE("/:id", adminOnly, projectHandler.DeleteProject)
			projects.POST("/:id/duplicate", adminOnly, projectHandler.DuplicateProject)
			projects.POST("/:id/addUser", adminOnly, projectHandler.AddUser)
			projects.POST("/:id/addTask", adminOnly, projectHandler.AddTask)
		}

		api.GET("/project-tasks", requireAuth, projectHandler.ListProjectTasks)
		api.GET("/project/status", requireAuth, adminOnly, reportHandler.StatusByBusinessUnit)

		tasks := api.Group("/tasks", requireAuth, adminOnly)
		{
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		logs := api.Group("/logs", requireAuth)
		{
			logs.POST("", logHandler.CreateLog)
			logs.GET("", adminOnly, logHandler.ListLogs)
			logs.GET("/export", adminOnly, logHandler.ExportLogs)
			logs.GET("/user/:userId", middleware.RequireSelfOrAdmin("userId"), logHandler.ListUserLogs)
			logs.PUT("/:id", logHandler.UpdateLog)
		}
	}
}
