package models

import (
	"gorm.io/gorm"
)

type Court struct {
	gorm.Model
	ClubID    uint   `gorm:"not null;index" json:"clubId"`
	Name      string `gorm:"not null" json:"name"`
	Surface   string `gorm:"default:''" json:"surface"` // e.g. ARTIFICIAL_GRASS, CONCRETE
	IsIndoor  bool   `gorm:"default:false" json:"isIndoor"`
	IsDeleted bool   `gorm:"default:false" json:"-"`

	// Relations
	Club Club `gorm:"foreignKey:ClubID" json:"-"`
}

func (Court) TableName() string {
	return "courts"
}
