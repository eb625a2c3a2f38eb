package models

import (
	"time"

	"gorm.io/gorm"
)

const PaymentStatusCompleted = "completed"

// Payment is append-only; no refund or void state is modeled.
type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	InvoiceID       uint    `gorm:"index;column:invoice_id" json:"invoice_id"`
	Amount          float64 `json:"amount"`
	PaymentMethodID uint    `gorm:"column:payment_method_id" json:"payment_method_id"`
	Status          string  `gorm:"size:20;default:completed" json:"status"`

	PaymentMethod PaymentMethod `gorm:"foreignKey:PaymentMethodID" json:"payment_method,omitempty"`
}

type PaymentMethod struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name     string `gorm:"size:60;uniqueIndex" json:"name"`
	IsActive bool   `gorm:"column:is_active;default:true" json:"is_active"`
}
