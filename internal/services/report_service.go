package services

import (
	"fmt"
	"time"

	"github.com/yukikurage/timesheet-api/internal/models"
	"github.com/yukikurage/timesheet-api/internal/repository"
)

// ReportService computes read-only views over projects, tasks and users.
type ReportService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

// NewReportService creates a new ReportService.
func NewReportService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *ReportService {
	return &ReportService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// TaskHours compares the hours planned for a task in a project with the hours spent.
type TaskHours struct {
	TaskName   string            `json:"taskName"`
	TaskHour   int               `json:"taskHour"`
	SpentHour  int               `json:"spentHour"`
	TaskStatus models.TaskStatus `json:"taskStatus"`
}

// ProjectHours groups the task hours of one project.
type ProjectHours struct {
	ProjectName string      `json:"projectName"`
	Tasks       []TaskHours `json:"tasks"`
}

// ProjectCompletion counts the completed tasks of one project.
type ProjectCompletion struct {
	ProjectName    string `json:"projectName"`
	CompletedTasks int    `json:"completedTasks"`
	TotalTasks     int    `json:"totalTasks"`
}

// BusinessUnitStatus tallies task statuses over the projects of a business unit.
type BusinessUnitStatus struct {
	BusinessUnit string `json:"businessUnit"`
	Pending      int    `json:"pending"`
	InProgress   int    `json:"inProgress"`
	Completed    int    `json:"completed"`
}

// EmployeePerformance reports how many tasks a user has completed.
type EmployeePerformance struct {
	UserID        uint64     `json:"userId"`
	Username      string     `json:"username"`
	Department    string     `json:"department"`
	BusinessUnit  string     `json:"businessUnit"`
	CompletedTask int        `json:"completedTask"`
	CompletedDate *time.Time `json:"completedDate"`
}

// PlannedVsSpent lists, per project, the planned hours of each linked task next
// to the hours spent on it.
func (s *ReportService) PlannedVsSpent() ([]ProjectHours, error) {
	projects, err := s.projectRepo.ListWithTasks()
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	report := make([]ProjectHours, 0, len(projects))
	for _, p := range projects {
		tasks := make([]TaskHours, 0, len(p.Tasks))
		for _, link := range p.Tasks {
			if link.Task.ID == 0 {
				continue
			}
			tasks = append(tasks, TaskHours{
				TaskName:   link.Task.TaskName,
				TaskHour:   link.TaskHour,
				SpentHour:  link.Task.SpentHour,
				TaskStatus: link.Task.TaskStatus,
			})
		}
		report = append(report, ProjectHours{ProjectName: p.ProjectName, Tasks: tasks})
	}
	return report, nil
}

// CompletedByProject counts completed tasks per project.
func (s *ReportService) CompletedByProject() ([]ProjectCompletion, error) {
	projects, err := s.projectRepo.ListWithTasks()
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	report := make([]ProjectCompletion, 0, len(projects))
	for _, p := range projects {
		row := ProjectCompletion{ProjectName: p.ProjectName}
		for _, link := range p.Tasks {
			if link.Task.ID == 0 {
				continue
			}
			row.TotalTasks++
			if link.Task.TaskStatus == models.TaskStatusCompleted {
				row.CompletedTasks++
			}
		}
		report = append(report, row)
	}
	return report, nil
}

// StatusByBusinessUnit tallies task statuses grouped by the exact business unit
// of their project, in order of first appearance.
func (s *ReportService) StatusByBusinessUnit() ([]BusinessUnitStatus, error) {
	projects, err := s.projectRepo.ListWithTasks()
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	index := make(map[string]int)
	report := make([]BusinessUnitStatus, 0)
	for _, p := range projects {
		i, ok := index[p.BusinessUnit]
		if !ok {
			i = len(report)
			index[p.BusinessUnit] = i
			report = append(report, BusinessUnitStatus{BusinessUnit: p.BusinessUnit})
		}

		for _, link := range p.Tasks {
			switch link.Task.TaskStatus {
			case models.TaskStatusPending:
				report[i].Pending++
			case models.TaskStatusInProgress:
				report[i].InProgress++
			case models.TaskStatusCompleted:
				report[i].Completed++
			}
		}
	}
	return report, nil
}

// EmployeePerformance lists the completed task counters of non-admin users.
func (s *ReportService) EmployeePerformance() ([]EmployeePerformance, error) {
	users, err := s.userRepo.ListByRole(models.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	report := make([]EmployeePerformance, len(users))
	for i, u := range users {
		report[i] = EmployeePerformance{
			UserID:        u.ID,
			Username:      u.Username,
			Department:    u.Department,
			BusinessUnit:  u.BusinessUnit,
			CompletedTask: u.CompletedTask,
			CompletedDate: u.CompletedDate,
		}
	}
	return report, nil
}
