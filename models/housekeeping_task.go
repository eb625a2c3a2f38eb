package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
)

type HousekeepingTask struct {
	gorm.Model

	UnitID      uint       `gorm:"index;column:unit_id" json:"unit_id"`
	TaskType    string     `gorm:"column:task_type;size:50" json:"task_type"`
	Status      string     `gorm:"size:20;default:pending" json:"status"`
	Notes       string     `gorm:"type:text" json:"notes"`
	AssignedTo  *uint      `gorm:"column:assigned_to" json:"assigned_to,omitempty"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`

	Unit Unit `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
}
