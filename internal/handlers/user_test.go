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

func TestUserHandler_CreateAndList(t *testing.T) {
	env := setupAPITestEnv(t)
	admin := env.adminToken(t)

	w := env.do(t, http.MethodPost, "/api/users", admin, map[string]string{
		"username":     "alice",
		"password":     "password123",
		"email":        "alice@example.com",
		"department":   "Engineering",
		"businessUnit": "North",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created dto.UserDTO
	decode(t, w, &created)
	assert.Equal(t, models.RoleUser, created.Role)
	assert.NotNil(t, created.Projects)

	w = env.do(t, http.MethodPost, "/api/users", admin, map[string]string{
		"username": "bob",
		"password": "password123",
		"role":     "owner",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	env.createUser(t, "bob")

	w = env.do(t, http.MethodGet, "/api/users?search=ALI", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var users []dto.UserDTO
	decode(t, w, &users)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Username)

	w = env.do(t, http.MethodGet, "/api/users?businessUnit=North", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &users)
	assert.Len(t, users, 1)
}

func TestUserHandler_Access(t *testing.T) {
	env := setupAPITestEnv(t)
	alice, aliceToken := env.createUser(t, "alice")
	bob, _ := env.createUser(t, "bob")

	w := env.do(t, http.MethodGet, "/api/users", aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodGet, "/api/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/users/%d", alice.ID), aliceToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/users/%d", bob.ID), aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodDelete, fmt.Sprintf("/api/users/%d", bob.ID), aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUserHandler_UpdateAndDelete(t *testing.T) {
	env := setupAPITestEnv(t)
	admin := env.adminToken(t)
	alice, _ := env.createUser(t, "alice")
	path := fmt.Sprintf("/api/users/%d", alice.ID)

	w := env.do(t, http.MethodPut, path, admin, map[string]string{"department": "Sales"})
	require.Equal(t, http.StatusOK, w.Code)
	var updated dto.UserDTO
	decode(t, w, &updated)
	assert.Equal(t, "Sales", updated.Department)

	w = env.do(t, http.MethodPut, path, admin, map[string]string{"password": "123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodDelete, path, admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "User and user assignments removed successfully")

	w = env.do(t, http.MethodGet, path, admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodGet, "/api/users/abc", admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserHandler_UpdateCompletedTasks(t *testing.T) {
	env := setupAPITestEnv(t)
	alice, aliceToken := env.createUser(t, "alice")
	bob, _ := env.createUser(t, "bob")

	w := env.do(t, http.MethodPut, fmt.Sprintf("/api/users/%d/updateCompletedTasks", alice.ID), aliceToken, map[string]int{"increment": 2})
	require.Equal(t, http.StatusOK, w.Code)
	var updated dto.UserDTO
	decode(t, w, &updated)
	assert.Equal(t, 2, updated.CompletedTask)
	assert.NotNil(t, updated.CompletedDate)

	w = env.do(t, http.MethodPut, fmt.Sprintf("/api/users/%d/updateCompletedTasks", alice.ID), aliceToken, map[string]int{"increment": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPut, fmt.Sprintf("/api/users/%d/updateCompletedTasks", bob.ID), aliceToken, map[string]int{"increment": 1})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUserHandler_Performance(t *testing.T) {
	env := setupAPITestEnv(t)
	admin := env.adminToken(t)
	alice, aliceToken := env.createUser(t, "alice")
	_, err := env.svc.Users.IncrementCompletedTasks(alice.ID, 3)
	require.NoError(t, err)

	w := env.do(t, http.MethodGet, "/api/users/performance", aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodGet, "/api/users/performance", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var report []services.EmployeePerformance
	decode(t, w, &report)
	require.Len(t, report, 1)
	assert.Equal(t, "alice", report[0].Username)
	assert.Equal(t, 3, report[0].CompletedTask)
}
