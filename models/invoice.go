package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPaid    = "paid"
)

// Invoice snapshots a booking's charges at creation time: the stored stay total
// plus the stored totals of all extras. TotalPaid is always recomputed from the
// completed payments, never incremented in place. Status moves pending -> paid
// once TotalPaid covers TotalAmount and never moves back.
type Invoice struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// One invoice per booking, enforced at the storage layer.
	BookingID uint `gorm:"column:booking_id;uniqueIndex" json:"booking_id"`

	TotalAmount float64    `gorm:"column:total_amount" json:"total_amount"`
	TotalPaid   float64    `gorm:"column:total_paid" json:"total_paid"`
	Status      string     `gorm:"size:20;default:pending" json:"status"`
	DueDate     *time.Time `gorm:"column:due_date" json:"due_date,omitempty"`
	PaidAt      *time.Time `gorm:"column:paid_at" json:"paid_at,omitempty"`

	Items    []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
	Payments []Payment     `gorm:"foreignKey:InvoiceID" json:"payments,omitempty"`
}

// Outstanding is the unpaid balance; negative under overpayment.
func (i *Invoice) Outstanding() float64 {
	return i.TotalAmount - i.TotalPaid
}

// InvoiceItem is an immutable line-item snapshot, created together with its
// invoice: one line for the accommodation stay and one per booking extra.
type InvoiceItem struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time

	InvoiceID   uint    `gorm:"index;column:invoice_id" json:"invoice_id"`
	Description string  `gorm:"size:200" json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `gorm:"column:unit_price" json:"unit_price"`
	TotalPrice  float64 `gorm:"column:total_price" json:"total_price"`
}
