package models

import (
	"gorm.io/gorm"
)

type Club struct {
	gorm.Model
	Name      string `gorm:"not null"`
	Address   string `gorm:"default:''"`
	City      string `gorm:"default:''"`
	Phone     string `gorm:"default:''"`
	Email     string `gorm:"default:''"`
	IsDeleted bool   `gorm:"default:false"`
}

func (Club) TableName() string {
	return "clubs"
}
