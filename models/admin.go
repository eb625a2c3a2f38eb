package models

import (
	"gorm.io/gorm"
)

const (
	AdminRoleAdmin     = "admin"
	AdminRoleReception = "reception"
)

type Admin struct {
	gorm.Model

	FullName string `json:"full_name" gorm:"size:120"`
	Email    string `json:"email" gorm:"size:120;uniqueIndex"`
	Password string `json:"-" gorm:"size:120"`
	Role     string `json:"role" gorm:"size:20;default:reception"`
}
