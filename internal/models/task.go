package models

import (
	"time"

	"gorm.io/datatypes"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "Pending"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
)

var taskStatusRank = map[TaskStatus]int{
	TaskStatusPending:    0,
	TaskStatusInProgress: 1,
	TaskStatusCompleted:  2,
}

func (s TaskStatus) Valid() bool {
	_, ok := taskStatusRank[s]
	return ok
}

// CanAdvanceTo reports whether next is the same state or a later one.
// The lifecycle only moves forward: Pending -> In Progress -> Completed.
func (s TaskStatus) CanAdvanceTo(next TaskStatus) bool {
	from, ok := taskStatusRank[s]
	if !ok {
		return false
	}
	to, ok := taskStatusRank[next]
	if !ok {
		return false
	}
	return to >= from
}

type Task struct {
	ID           uint64                     `gorm:"primarykey" json:"id"`
	TaskName     string                     `gorm:"type:varchar(255);not null" json:"taskName"`
	TaskHour     int                        `gorm:"not null" json:"taskHour"`
	SpentHour    int                        `gorm:"not null;default:0" json:"spentHour"`
	TaskAssigned datatypes.JSONSlice[string] `json:"taskAssigned"`
	TaskStatus   TaskStatus                 `gorm:"type:varchar(20);not null;default:'Pending'" json:"taskStatus"`
	CreatedAt    time.Time                  `json:"createdAt"`
	UpdatedAt    time.Time                  `json:"updatedAt"`

	// Relations
	Projects []ProjectTask `gorm:"foreignKey:TaskID" json:"-"`
}

// IsAssigned reports whether the task is already held by a project.
func (t Task) IsAssigned() bool {
	return len(t.TaskAssigned) > 0
}

// Release removes projectName from the task's assignment list.
func (t *Task) Release(projectName string) bool {
	kept := make(datatypes.JSONSlice[string], 0, len(t.TaskAssigned))
	for _, name := range t.TaskAssigned {
		if name != projectName {
			kept = append(kept, name)
		}
	}
	changed := len(kept) != len(t.TaskAssigned)
	t.TaskAssigned = kept
	return changed
}

// Rename replaces from with to in the task's assignment list.
func (t *Task) Rename(from, to string) bool {
	changed := false
	for i, name := range t.TaskAssigned {
		if name == from {
			t.TaskAssigned[i] = to
			changed = true
		}
	}
	return changed
}
