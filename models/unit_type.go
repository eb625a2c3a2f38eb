package models

import (
	"time"

	"gorm.io/gorm"
)

type UnitType struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TypeName    string `json:"typeName" gorm:"size:50;uniqueIndex"`
	Description string `json:"description"`
	MaxGuests   uint   `json:"max_guests"`

	CreatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
