package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/timesheet-api/internal/models"
)

func TestReportService(t *testing.T) {
	env := setupServiceTestEnv(t)

	apollo := env.createProject(t, "Apollo", "North")
	env.createProject(t, "Gemini", "South")
	mercury := env.createProject(t, "Mercury", "North")
	env.createProject(t, "Empty", "north")

	design := env.createTask(t, "Design", 10)
	build := env.createTask(t, "Build", 20)
	test := env.createTask(t, "Test", 5)

	_, err := env.projects.AddTask(apollo.ID, design.ID, 8)
	require.NoError(t, err)
	_, err = env.projects.AddTask(apollo.ID, build.ID, 16)
	require.NoError(t, err)
	_, err = env.projects.AddTask(mercury.ID, test.ID, 5)
	require.NoError(t, err)

	inProgress := models.TaskStatusInProgress
	_, err = env.tasks.UpdateTask(build.ID, UpdateTaskInput{TaskStatus: &inProgress})
	require.NoError(t, err)
	completed := models.TaskStatusCompleted
	_, err = env.tasks.UpdateTask(test.ID, UpdateTaskInput{TaskStatus: &completed})
	require.NoError(t, err)

	t.Run("planned vs spent", func(t *testing.T) {
		report, err := env.reports.PlannedVsSpent()
		require.NoError(t, err)
		require.Len(t, report, 4)

		assert.Equal(t, "Apollo", report[0].ProjectName)
		require.Len(t, report[0].Tasks, 2)
		assert.Equal(t, TaskHours{TaskName: "Design", TaskHour: 8, SpentHour: 0, TaskStatus: models.TaskStatusPending}, report[0].Tasks[0])
		assert.Equal(t, "Gemini", report[1].ProjectName)
		assert.NotNil(t, report[1].Tasks)
		assert.Empty(t, report[1].Tasks)
	})

	t.Run("completed by project", func(t *testing.T) {
		report, err := env.reports.CompletedByProject()
		require.NoError(t, err)
		require.Len(t, report, 4)
		assert.Equal(t, ProjectCompletion{ProjectName: "Apollo", CompletedTasks: 0, TotalTasks: 2}, report[0])
		assert.Equal(t, ProjectCompletion{ProjectName: "Mercury", CompletedTasks: 1, TotalTasks: 1}, report[2])
	})

	t.Run("status by business unit", func(t *testing.T) {
		report, err := env.reports.StatusByBusinessUnit()
		require.NoError(t, err)
		assert.Equal(t, []BusinessUnitStatus{
			{BusinessUnit: "North", Pending: 1, InProgress: 1, Completed: 1},
			{BusinessUnit: "South"},
			{BusinessUnit: "north"},
		}, report)
	})

	t.Run("employee performance", func(t *testing.T) {
		alice := env.createUser(t, "alice")
		_, err := env.users.IncrementCompletedTasks(alice.ID, 2)
		require.NoError(t, err)
		_, err = env.auth.CreateAdmin("root", "password123", "")
		require.NoError(t, err)

		report, err := env.reports.EmployeePerformance()
		require.NoError(t, err)
		require.Len(t, report, 1)
		assert.Equal(t, "alice", report[0].Username)
		assert.Equal(t, 2, report[0].CompletedTask)
		assert.NotNil(t, report[0].CompletedDate)
	})
}
