package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleMember UserRole = "member"
	RoleAdmin  UserRole = "admin"
)

func (r UserRole) Valid() bool {
	return r == RoleMember || r == RoleAdmin
}

type User struct {
	ID        string    `json:"_id" gorm:"primaryKey;size:36"`
	Email     string    `json:"email" gorm:"not null;size:320;uniqueIndex"`
	Name      string    `json:"name"`
	PhotoURL  string    `json:"photoURL" gorm:"column:photo_url"`
	Role      UserRole  `json:"role" gorm:"not null;size:16;index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = RoleMember
	}
	u.Email = NormalizeEmail(u.Email)
	return nil
}
