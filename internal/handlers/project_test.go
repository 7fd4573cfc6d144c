package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/timesheet-api/internal/dto"
	"github.com/yukikurage/timesheet-api/internal/models"
	"github.com/yukikurage/timesheet-api/internal/services"
)

func projectPayload(name string) map[string]string {
	return map[string]string{
		"projectName":  name,
		"clientName":   "Acme",
		"address":      "1 Main St",
		"department":   "Engineering",
		"businessUnit": "North",
		"projectType":  "Fixed",
	}
}

func (env apiTestEnv) createProject(t *testing.T, admin, name string) dto.ProjectDTO {
	t.Helper()
	w := env.do(t, http.MethodPost, "/api/projects", admin, projectPayload(name))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var project dto.ProjectDTO
	decode(t, w, &project)
	return project
}

func (env apiTestEnv) createTask(t *testing.T, admin, name string, hours int) dto.TaskDTO {
	t.Helper()
	w := env.do(t, http.MethodPost, "/api/tasks", admin, map[string]interface{}{"taskName": name, "taskHour": hours})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var task dto.TaskDTO
	decode(t, w, &task)
	return task
}

func TestProjectHandler_CRUD(t *testing.T) {
	env := setupAPITestEnv(t)
	admin := env.adminToken(t)

	project := env.createProject(t, admin, "Apollo")
	assert.Equal(t, "Apollo", project.ProjectName)
	assert.NotNil(t, project.Tasks)
	assert.NotNil(t, project.Users)

	incomplete := projectPayload("Gemini")
	delete(incomplete, "clientName")
	w := env.do(t, http.MethodPost, "/api/projects", admin, incomplete)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	path := fmt.Sprintf("/api/projects/%d", project.ID)
	w = env.do(t, http.MethodPut, path, admin, map[string]string{"clientName": "Globex"})
	require.Equal(t, http.StatusOK, w.Code)
	var updated dto.ProjectDTO
	decode(t, w, &updated)
	assert.Equal(t, "Globex", updated.ClientName)
	assert.Equal(t, "Apollo", updated.ProjectName)

	w = env.do(t, http.MethodGet, "/api/projects?search=glob", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var projects []dto.ProjectDTO
	decode(t, w, &projects)
	assert.Len(t, projects, 1)

	w = env.do(t, http.MethodDelete, path, admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, path, admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectHandler_AddTask(t *testing.T) {
	env := setupAPITestEnv(t)
	admin := env.adminToken(t)
	project := env.createProject(t, admin, "Apollo")
	other := env.createProject(t, admin, "Gemini")
	task := env.createTask(t, admin, "Design", 10)
	path := fmt.Sprintf("/api/projects/%d/addTask", project.ID)

	w := env.do(t, http.MethodPost, path, admin, map[string]interface{}{"taskId": task.ID, "taskHour": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, path, admin, map[string]interface{}{"taskId": task.ID, "taskHour": 8})
	require.Equal(t, http.StatusOK, w.Code)
	var response dto.ProjectMutationResponse
	decode(t, w, &response)
	require.Len(t, response.Project.Tasks, 1)
	assert.Equal(t, task.ID, response.Project.Tasks[0].TaskID)
	assert.Equal(t, 8, response.Project.Tasks[0].TaskHour)

	w = env.do(t, http.MethodPost, path, admin, map[string]interface{}{"taskId": task.ID, "taskHour": 8})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.do(t, http.MethodPost, fmt.Sprintf("/api/projects/%d/addTask", other.ID), admin, map[string]interface{}{"taskId": task.ID, "taskHour": 8})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.do(t, http.MethodPost, path, admin, map[string]interface{}{"taskId": task.ID + 100, "taskHour": 8})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/tasks/%d", task.ID), admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stored dto.TaskDTO
	decode(t, w, &stored)
	assert.Equal(t, []string{"Apollo"}, stored.TaskAssigned)
}

func TestProjectHandler_AddUserAndListByUser(t *testing.T) {
	env := setupAPITestEnv(t)
	admin := env.adminToken(t)
	project := env.createProject(t, admin, "Apollo")
	alice, aliceToken := env.createUser(t, "alice")
	bob, _ := env.createUser(t, "bob")
	path := fmt.Sprintf("/api/projects/%d/addUser", project.ID)

	w := env.do(t, http.MethodPost, path, admin, map[string]uint64{"userId": alice.ID})
	require.Equal(t, http.StatusOK, w.Code)
	var response dto.ProjectMutationResponse
	decode(t, w, &response)
	require.Len(t, response.Project.Users, 1)
	assert.Equal(t, alice.ID, response.Project.Users[0].UserID)

	w = env.do(t, http.MethodPost, path, admin, map[string]uint64{"userId": alice.ID})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.do(t, http.MethodPost, path, aliceToken, map[string]uint64{"userId": bob.ID})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/projects/user/%d", alice.ID), aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var projects []dto.ProjectDTO
	decode(t, w, &projects)
	require.Len(t, projects, 1)
	assert.Equal(t, "Apollo", projects[0].ProjectName)

	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/projects/user/%d", bob.ID), aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/users/%d", alice.ID), aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var user dto.UserDTO
	decode(t, w, &user)
	assert.Equal(t, []uint64{project.ID}, user.Projects)
}

func TestProjectHandler_Duplicate(t *testing.T) {
	env := setupAPITestEnv(t)
	admin := env.adminToken(t)
	project := env.createProject(t, admin, "Apollo")
	alice, _ := env.createUser(t, "alice")
	_, err := env.svc.Projects.AddUser(project.ID, alice.ID)
	require.NoError(t, err)

	w := env.do(t, http.MethodPost, fmt.Sprintf("/api/projects/%d/duplicate", project.ID), admin, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var dup dto.ProjectDTO
	decode(t, w, &dup)
	assert.NotEqual(t, project.ID, dup.ID)
	assert.Equal(t, "Apollo (Copy)", dup.ProjectName)
	assert.Equal(t, project.ClientName, dup.ClientName)
	require.Len(t, dup.Users, 1)
	assert.Equal(t, alice.ID, dup.Users[0].UserID)
}

func TestProjectHandler_ProjectTasks(t *testing.T) {
	env := setupAPITestEnv(t)
	admin := env.adminToken(t)
	_, userToken := env.createUser(t, "alice")
	project := env.createProject(t, admin, "Apollo")
	task := env.createTask(t, admin, "Design", 10)
	_, err := env.svc.Projects.AddTask(project.ID, task.ID, 6)
	require.NoError(t, err)

	w := env.do(t, http.MethodGet, "/api/project-tasks", userToken, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No project ID provided")

	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/project-tasks?projectId=%d", project.ID), userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tasks []dto.ProjectTaskDTO
	decode(t, w, &tasks)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Design", tasks[0].TaskName)
	assert.Equal(t, 10, tasks[0].TaskHour)
	assert.Equal(t, 6, tasks[0].AllocatedHour)

	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/project-tasks?projectId=%d", project.ID+100), userToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectHandler_Reports(t *testing.T) {
	env := setupAPITestEnv(t)
	admin := env.adminToken(t)
	_, userToken := env.createUser(t, "alice")
	project := env.createProject(t, admin, "Apollo")
	task := env.createTask(t, admin, "Design", 10)
	_, err := env.svc.Projects.AddTask(project.ID, task.ID, 8)
	require.NoError(t, err)
	completed := models.TaskStatusCompleted
	_, err = env.svc.Tasks.UpdateTask(task.ID, services.UpdateTaskInput{TaskStatus: &completed})
	require.NoError(t, err)

	for _, path := range []string{"/api/projects/graph/hours", "/api/projects/graph/completed", "/api/project/status"} {
		w := env.do(t, http.MethodGet, path, userToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code, path)
	}

	w := env.do(t, http.MethodGet, "/api/projects/graph/hours", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var hours []services.ProjectHours
	decode(t, w, &hours)
	require.Len(t, hours, 1)
	require.Len(t, hours[0].Tasks, 1)
	assert.Equal(t, 8, hours[0].Tasks[0].TaskHour)

	w = env.do(t, http.MethodGet, "/api/projects/graph/completed", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var completion []services.ProjectCompletion
	decode(t, w, &completion)
	assert.Equal(t, []services.ProjectCompletion{{ProjectName: "Apollo", CompletedTasks: 1, TotalTasks: 1}}, completion)

	w = env.do(t, http.MethodGet, "/api/project/status", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var status []services.BusinessUnitStatus
	decode(t, w, &status)
	assert.Equal(t, []services.BusinessUnitStatus{{BusinessUnit: "North", Completed: 1}}, status)
}
