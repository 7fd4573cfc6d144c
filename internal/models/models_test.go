package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestTaskStatus_CanAdvanceTo(t *testing.T) {
	assert.True(t, TaskStatusPending.CanAdvanceTo(TaskStatusInProgress))
	assert.True(t, TaskStatusPending.CanAdvanceTo(TaskStatusCompleted))
	assert.True(t, TaskStatusInProgress.CanAdvanceTo(TaskStatusInProgress))
	assert.True(t, TaskStatusInProgress.CanAdvanceTo(TaskStatusCompleted))

	assert.False(t, TaskStatusCompleted.CanAdvanceTo(TaskStatusInProgress))
	assert.False(t, TaskStatusInProgress.CanAdvanceTo(TaskStatusPending))
	assert.False(t, TaskStatusPending.CanAdvanceTo(TaskStatus("Archived")))
	assert.False(t, TaskStatus("").CanAdvanceTo(TaskStatusPending))
}

func TestTask_Release(t *testing.T) {
	task := Task{TaskAssigned: datatypes.JSONSlice[string]{"Apollo"}}
	assert.True(t, task.IsAssigned())

	assert.False(t, task.Release("Gemini"))
	assert.True(t, task.Release("Apollo"))
	assert.False(t, task.IsAssigned())
}

func TestTask_Rename(t *testing.T) {
	task := Task{TaskAssigned: datatypes.JSONSlice[string]{"Apollo"}}

	assert.False(t, task.Rename("Gemini", "Artemis"))
	assert.True(t, task.Rename("Apollo", "Artemis"))
	assert.Equal(t, []string{"Artemis"}, []string(task.TaskAssigned))
}

func TestProject_HasTaskAndUser(t *testing.T) {
	p := Project{
		Tasks: []ProjectTask{{TaskID: 3, TaskHour: 8}},
		Users: []ProjectUser{{UserID: 7}},
	}

	assert.True(t, p.HasTask(3))
	assert.False(t, p.HasTask(4))
	assert.True(t, p.HasUser(7))
	assert.False(t, p.HasUser(8))
}

func TestUser_ProjectIDs(t *testing.T) {
	u := User{Memberships: []ProjectUser{{ProjectID: 1}, {ProjectID: 5}}}
	assert.Equal(t, []uint64{1, 5}, u.ProjectIDs())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("owner").Valid())
}
