package models

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

type User struct {
	ID            uint64     `gorm:"primarykey" json:"id"`
	Username      string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	PasswordHash  string     `gorm:"type:varchar(255);not null" json:"-"`
	Email         string     `gorm:"type:varchar(255)" json:"email"`
	Phone         string     `gorm:"type:varchar(50)" json:"phone"`
	Department    string     `gorm:"type:varchar(255)" json:"department"`
	BusinessUnit  string     `gorm:"type:varchar(255)" json:"businessUnit"`
	CompletedTask int        `gorm:"not null;default:0" json:"completedTask"`
	CompletedDate *time.Time `json:"completedDate"`
	Role          Role       `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`

	// Relations
	Memberships []ProjectUser `gorm:"foreignKey:UserID" json:"-"`
}

// ProjectIDs returns the identifiers of the projects the user belongs to.
// Memberships must be preloaded.
func (u User) ProjectIDs() []uint64 {
	ids := make([]uint64, len(u.Memberships))
	for i, m := range u.Memberships {
		ids[i] = m.ProjectID
	}
	return ids
}
