package models

import "time"

// TimeLog is one entry of hours reported by a user against a task.
// ProjectName and TaskName are snapshots taken when the entry is created;
// ProjectID and TaskID keep the resolved references.
type TimeLog struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Date        time.Time  `gorm:"not null" json:"date"`
	ProjectName string     `gorm:"type:varchar(255);not null" json:"projectName"`
	TaskName    string     `gorm:"type:varchar(255);not null" json:"taskName"`
	ProjectID   uint64     `gorm:"index" json:"projectId"`
	TaskID      uint64     `gorm:"index" json:"taskId"`
	SpentHour   int        `gorm:"not null" json:"spentHour"`
	TaskStatus  TaskStatus `gorm:"type:varchar(20);not null" json:"taskStatus"`
	UserID      uint64     `gorm:"not null;index" json:"user"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
