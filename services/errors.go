package services

import (
	"errors"

	"gorm.io/gorm"
)

// Business errors use stable snake codes; controllers translate them to HTTP.
// Storage failures are wrapped with %w instead and pass through opaquely.
var (
	ErrUnitNotFound          = errors.New("unit_not_found")
	ErrGuestNotFound         = errors.New("guest_not_found")
	ErrBookingNotFound       = errors.New("booking_not_found")
	ErrInvoiceNotFound       = errors.New("invoice_not_found")
	ErrExtraNotFound         = errors.New("extra_not_found")
	ErrPaymentMethodNotFound = errors.New("payment_method_not_found")
	ErrRuleNotFound          = errors.New("pricing_rule_not_found")
	ErrTaskNotFound          = errors.New("task_not_found")
	ErrTicketNotFound        = errors.New("ticket_not_found")

	ErrInvalidDateRange      = errors.New("invalid_date_range")
	ErrInvalidAmount         = errors.New("invalid_amount")
	ErrInvalidQuantity       = errors.New("invalid_quantity")
	ErrInvalidRuleScope      = errors.New("invalid_rule_scope")
	ErrInvalidStatus         = errors.New("invalid_status")
	ErrPaymentMethodInactive = errors.New("payment_method_inactive")

	ErrUnitUnavailable      = errors.New("unit_unavailable")
	ErrInvoiceAlreadyExists = errors.New("invoice_already_exists")
	ErrInvoiceItemCreation  = errors.New("invoice_item_creation_failed")
	ErrBookingNotActive     = errors.New("booking_not_active")
	ErrPortalDisabled       = errors.New("portal_access_disabled")
)

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
