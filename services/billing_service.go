package services

import (
	"fmt"
	"time"

	"property-backend/models"
	"property-backend/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BillingService owns invoices, invoice items and payments. Invoice totals are
// built from stored snapshots (booking total + extras totals), never re-derived
// from the pricing rules.
type BillingService struct {
	DB       *gorm.DB
	Activity *ActivityService
}

func NewBillingService(db *gorm.DB, activity *ActivityService) *BillingService {
	return &BillingService{DB: db, Activity: activity}
}

// InitialPayment optionally settles part of the invoice in the same operation
// that creates it.
type InitialPayment struct {
	Amount   float64
	MethodID uint
}

// CreateInvoice opens the account for a booking: one invoice row plus one item
// for the accommodation stay and one per extra, all inside a transaction. The
// accommodation amount is the booking's stored total; extras use their stored
// snapshots. A second invoice for the same booking is rejected (and additionally
// blocked by a unique index on invoices.booking_id).
func (s *BillingService) CreateInvoice(bookingID uint, initial *InitialPayment) (models.Invoice, error) {
	var booking models.Booking
	if err := s.DB.Preload("Extras.Extra").Preload("Unit").First(&booking, bookingID).Error; err != nil {
		if isNotFound(err) {
			return models.Invoice{}, ErrBookingNotFound
		}
		return models.Invoice{}, fmt.Errorf("failed to find booking: %w", err)
	}
	if booking.Status == models.BookingStatusCancelled {
		return models.Invoice{}, ErrBookingNotActive
	}

	var existing models.Invoice
	err := s.DB.Where("booking_id = ?", bookingID).First(&existing).Error
	if err == nil {
		return models.Invoice{}, ErrInvoiceAlreadyExists
	}
	if !isNotFound(err) {
		return models.Invoice{}, fmt.Errorf("failed to check existing invoice: %w", err)
	}

	extrasTotal := 0.0
	for _, be := range booking.Extras {
		extrasTotal += be.TotalPrice
	}

	now := time.Now().UTC()
	invoice := models.Invoice{
		BookingID:   bookingID,
		TotalAmount: utils.Round2(booking.TotalAmount + extrasTotal),
		TotalPaid:   0,
		Status:      models.InvoiceStatusPending,
		DueDate:     &now,
	}

	items := buildInvoiceItems(&booking)

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&invoice).Error; err != nil {
			return fmt.Errorf("failed to create invoice: %w", err)
		}
		for i := range items {
			items[i].InvoiceID = invoice.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				// The transaction rolls the invoice row back; surface the
				// item failure as its own condition for the caller.
				return fmt.Errorf("%w: %v", ErrInvoiceItemCreation, err)
			}
		}
		return nil
	})
	if txErr != nil {
		return models.Invoice{}, txErr
	}
	invoice.Items = items

	s.Activity.Record("invoice_created",
		fmt.Sprintf("Invoice opened for booking %s", booking.ReferenceCode),
		fmt.Sprint(invoice.ID),
		map[string]interface{}{"booking_id": bookingID, "total_amount": invoice.TotalAmount})

	if initial != nil && initial.Amount > 0 {
		paid, err := s.RecordPayment(invoice.ID, initial.Amount, initial.MethodID)
		if err != nil {
			return invoice, err
		}
		paid.Items = items
		return paid, nil
	}

	return invoice, nil
}

// buildInvoiceItems snapshots the line items: the accommodation stay (quantity =
// nights, unit price = stored total / nights) and one line per booking extra.
func buildInvoiceItems(booking *models.Booking) []models.InvoiceItem {
	var items []models.InvoiceItem

	nights := booking.Nights()
	if nights > 0 || booking.TotalAmount > 0 {
		qty := nights
		if qty <= 0 {
			qty = 1
		}
		items = append(items, models.InvoiceItem{
			Description: fmt.Sprintf("Accommodation - %s (%s to %s)",
				booking.Unit.Name,
				utils.DateString(booking.CheckInDate),
				utils.DateString(booking.CheckOutDate)),
			Quantity:   qty,
			UnitPrice:  utils.Round2(booking.TotalAmount / float64(qty)),
			TotalPrice: utils.Round2(booking.TotalAmount),
		})
	}

	for _, be := range booking.Extras {
		unitPrice := be.TotalPrice
		if be.Quantity > 0 {
			unitPrice = be.TotalPrice / float64(be.Quantity)
		}
		items = append(items, models.InvoiceItem{
			Description: be.Extra.Name,
			Quantity:    be.Quantity,
			UnitPrice:   utils.Round2(unitPrice),
			TotalPrice:  utils.Round2(be.TotalPrice),
		})
	}
	return items
}

// RecordPayment appends a completed payment and recomputes the invoice's paid
// state. TotalPaid is re-summed from all completed payments rather than
// incremented, so a retried call can never double-count. The invoice row is
// locked for the read-sum-update sequence; concurrent payments serialize on it.
// Overpayment is accepted and simply leaves a negative outstanding balance.
func (s *BillingService) RecordPayment(invoiceID uint, amount float64, methodID uint) (models.Invoice, error) {
	if amount <= 0 {
		return models.Invoice{}, ErrInvalidAmount
	}

	var method models.PaymentMethod
	if err := s.DB.First(&method, methodID).Error; err != nil {
		if isNotFound(err) {
			return models.Invoice{}, ErrPaymentMethodNotFound
		}
		return models.Invoice{}, fmt.Errorf("failed to find payment method: %w", err)
	}
	if !method.IsActive {
		return models.Invoice{}, ErrPaymentMethodInactive
	}

	var invoice models.Invoice
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&invoice, invoiceID).Error; err != nil {
			if isNotFound(err) {
				return ErrInvoiceNotFound
			}
			return fmt.Errorf("failed to find invoice: %w", err)
		}

		payment := models.Payment{
			InvoiceID:       invoiceID,
			Amount:          utils.Round2(amount),
			PaymentMethodID: methodID,
			Status:          models.PaymentStatusCompleted,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return fmt.Errorf("failed to record payment: %w", err)
		}

		var totalPaid float64
		err := tx.Model(&models.Payment{}).
			Where("invoice_id = ? AND status = ?", invoiceID, models.PaymentStatusCompleted).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&totalPaid).Error
		if err != nil {
			return fmt.Errorf("failed to sum payments: %w", err)
		}

		invoice.TotalPaid = utils.Round2(totalPaid)
		if invoice.Status != models.InvoiceStatusPaid && invoice.TotalPaid >= invoice.TotalAmount {
			invoice.Status = models.InvoiceStatusPaid
			paidAt := time.Now().UTC()
			invoice.PaidAt = &paidAt
		}

		updates := map[string]interface{}{
			"total_paid": invoice.TotalPaid,
			"status":     invoice.Status,
			"paid_at":    invoice.PaidAt,
		}
		if err := tx.Model(&models.Invoice{}).Where("id = ?", invoiceID).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update invoice: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return models.Invoice{}, txErr
	}

	s.Activity.Record("payment_recorded",
		fmt.Sprintf("Payment of %.2f via %s", amount, method.Name),
		fmt.Sprint(invoiceID),
		map[string]interface{}{"invoice_id": invoiceID, "amount": amount, "method": method.Name})

	return invoice, nil
}

// AddExtra attaches a quantity of a catalog extra to a booking, snapshotting
// total price at the current catalog rate.
func (s *BillingService) AddExtra(bookingID, extraID uint, quantity int) (models.BookingExtra, error) {
	if quantity <= 0 {
		return models.BookingExtra{}, ErrInvalidQuantity
	}

	var booking models.Booking
	if err := s.DB.First(&booking, bookingID).Error; err != nil {
		if isNotFound(err) {
			return models.BookingExtra{}, ErrBookingNotFound
		}
		return models.BookingExtra{}, fmt.Errorf("failed to find booking: %w", err)
	}

	var extra models.Extra
	if err := s.DB.First(&extra, extraID).Error; err != nil {
		if isNotFound(err) {
			return models.BookingExtra{}, ErrExtraNotFound
		}
		return models.BookingExtra{}, fmt.Errorf("failed to find extra: %w", err)
	}

	bookingExtra := models.BookingExtra{
		BookingID:  bookingID,
		ExtraID:    extraID,
		Quantity:   quantity,
		TotalPrice: utils.Round2(extra.Price * float64(quantity)),
	}
	if err := s.DB.Create(&bookingExtra).Error; err != nil {
		return models.BookingExtra{}, fmt.Errorf("failed to add extra: %w", err)
	}
	bookingExtra.Extra = extra

	s.Activity.Record("extra_added",
		fmt.Sprintf("%s x%d added to booking %s", extra.Name, quantity, booking.ReferenceCode),
		fmt.Sprint(bookingID),
		map[string]interface{}{"extra": extra.Name, "quantity": quantity, "total_price": bookingExtra.TotalPrice})

	return bookingExtra, nil
}

// InvoiceForBooking returns the booking's invoice with items and payments.
func (s *BillingService) InvoiceForBooking(bookingID uint) (models.Invoice, error) {
	var invoice models.Invoice
	err := s.DB.Preload("Items").Preload("Payments.PaymentMethod").
		Where("booking_id = ?", bookingID).First(&invoice).Error
	if err != nil {
		if isNotFound(err) {
			return models.Invoice{}, ErrInvoiceNotFound
		}
		return models.Invoice{}, fmt.Errorf("failed to find invoice: %w", err)
	}
	return invoice, nil
}

func (s *BillingService) GetInvoice(id uint) (models.Invoice, error) {
	var invoice models.Invoice
	err := s.DB.Preload("Items").Preload("Payments.PaymentMethod").First(&invoice, id).Error
	if err != nil {
		if isNotFound(err) {
			return models.Invoice{}, ErrInvoiceNotFound
		}
		return models.Invoice{}, fmt.Errorf("failed to find invoice: %w", err)
	}
	return invoice, nil
}

func (s *BillingService) ListInvoices() ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := s.DB.Preload("Payments").Order("created_at DESC").Find(&invoices).Error
	return invoices, err
}

func (s *BillingService) ListExtras() ([]models.Extra, error) {
	var extras []models.Extra
	err := s.DB.Order("name").Find(&extras).Error
	return extras, err
}

func (s *BillingService) ListPaymentMethods() ([]models.PaymentMethod, error) {
	var methods []models.PaymentMethod
	err := s.DB.Where("is_active = ?", true).Order("name").Find(&methods).Error
	return methods, err
}
