package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a club operator account. Customer bookings do not require an
// account; operators authenticate to manage schedules and pricing.
type User struct {
	gorm.Model
	Name      string     `gorm:"default:''"`
	Email     string     `gorm:"unique;not null"`
	Mobile    string     `gorm:"default:''"`
	Role      string     `gorm:"default:'OPERATOR'"` // OPERATOR, ADMIN
	Password  string     `gorm:"not null"`
	ClubID    uint       `gorm:"index"`
	LastLogin *time.Time `json:"last_login"`
	IsDeleted bool       `gorm:"default:false"`
}

func (User) TableName() string {
	return "users"
}
