package models

import "time"

type Project struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	ProjectName  string    `gorm:"type:varchar(255);not null;index" json:"projectName"`
	ClientName   string    `gorm:"type:varchar(255);not null" json:"clientName"`
	Address      string    `gorm:"type:varchar(255);not null" json:"address"`
	Department   string    `gorm:"type:varchar(255);not null" json:"department"`
	BusinessUnit string    `gorm:"type:varchar(255);not null" json:"businessUnit"`
	ProjectType  string    `gorm:"type:varchar(100);not null" json:"projectType"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// Relations
	Tasks []ProjectTask `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
	Users []ProjectUser `gorm:"foreignKey:ProjectID" json:"users,omitempty"`
}

// HasTask reports whether taskID is already linked to the project.
// Tasks must be preloaded.
func (p Project) HasTask(taskID uint64) bool {
	for _, t := range p.Tasks {
		if t.TaskID == taskID {
			return true
		}
	}
	return false
}

// HasUser reports whether userID is already a member of the project.
// Users must be preloaded.
func (p Project) HasUser(userID uint64) bool {
	for _, u := range p.Users {
		if u.UserID == userID {
			return true
		}
	}
	return false
}

// ProjectTask links a task to a project with the hours planned for it there.
type ProjectTask struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	ProjectID uint64    `gorm:"not null;uniqueIndex:idx_project_tasks_project_task" json:"projectId"`
	TaskID    uint64    `gorm:"not null;uniqueIndex:idx_project_tasks_project_task;index" json:"taskId"`
	TaskHour  int       `gorm:"not null" json:"taskHour"`
	CreatedAt time.Time `json:"createdAt"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
	Task    Task    `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}

// ProjectUser records a user's membership in a project. The same row backs both
// the project's user list and the user's project list.
type ProjectUser struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	ProjectID uint64    `gorm:"not null;uniqueIndex:idx_project_users_project_user" json:"projectId"`
	UserID    uint64    `gorm:"not null;uniqueIndex:idx_project_users_project_user;index" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
