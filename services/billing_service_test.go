package services

import (
	"testing"
	"time"

	"property-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedBooking(t *testing.T, db *gorm.DB, unit models.Unit, guest models.Guest, total float64) models.Booking {
	t.Helper()
	booking := models.Booking{
		UnitID:        unit.ID,
		GuestID:       guest.ID,
		ReferenceCode: newReferenceCode(),
		Status:        models.BookingStatusConfirmed,
		CheckInDate:   date("2024-07-01"),
		CheckOutDate:  date("2024-07-05"),
		GuestsCount:   2,
		TotalAmount:   total,
	}
	require.NoError(t, db.Create(&booking).Error)
	booking.Unit = unit
	return booking
}

func TestCreateInvoice_SnapshotsStayAndExtras(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBillingService(db, testActivity(db))

	unit := seedUnit(t, db, "Sea View 1", "apartment", 25)
	guest := seedGuest(t, db, "alice")
	booking := seedBooking(t, db, unit, guest, 100.00)

	spa := seedExtra(t, db, "Spa access", 15.00)
	parking := seedExtra(t, db, "Parking", 5.00)

	_, err := svc.AddExtra(booking.ID, spa.ID, 2)
	require.NoError(t, err)
	_, err = svc.AddExtra(booking.ID, parking.ID, 1)
	require.NoError(t, err)

	invoice, err := svc.CreateInvoice(booking.ID, nil)
	require.NoError(t, err)

	assert.Equal(t, 135.00, invoice.TotalAmount)
	assert.Equal(t, models.InvoiceStatusPending, invoice.Status)
	assert.Equal(t, 0.0, invoice.TotalPaid)
	assert.Len(t, invoice.Items, 3)

	var items []models.InvoiceItem
	require.NoError(t, db.Where("invoice_id = ?", invoice.ID).Order("id").Find(&items).Error)
	require.Len(t, items, 3)
	assert.Equal(t, 100.00, items[0].TotalPrice)
	assert.Equal(t, 4, items[0].Quantity)
	assert.Equal(t, 30.00, items[1].TotalPrice)
	assert.Equal(t, 5.00, items[2].TotalPrice)
}

func TestCreateInvoice_BookingNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBillingService(db, testActivity(db))

	_, err := svc.CreateInvoice(12345, nil)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCreateInvoice_RejectsCancelledBooking(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBillingService(db, testActivity(db))

	unit := seedUnit(t, db, "Sea View 1", "apartment", 25)
	guest := seedGuest(t, db, "alice")
	booking := seedBooking(t, db, unit, guest, 100.00)
	require.NoError(t, db.Model(&models.Booking{}).Where("id = ?", booking.ID).
		Update("status", models.BookingStatusCancelled).Error)

	_, err := svc.CreateInvoice(booking.ID, nil)
	assert.ErrorIs(t, err, ErrBookingNotActive)
}

func TestCreateInvoice_RejectsDuplicate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBillingService(db, testActivity(db))

	unit := seedUnit(t, db, "Sea View 1", "apartment", 25)
	guest := seedGuest(t, db, "alice")
	booking := seedBooking(t, db, unit, guest, 100.00)

	_, err := svc.CreateInvoice(booking.ID, nil)
	require.NoError(t, err)

	_, err = svc.CreateInvoice(booking.ID, nil)
	assert.ErrorIs(t, err, ErrInvoiceAlreadyExists)
}

func TestCreateInvoice_WithInitialPayment(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBillingService(db, testActivity(db))

	unit := seedUnit(t, db, "Sea View 1", "apartment", 25)
	guest := seedGuest(t, db, "alice")
	booking := seedBooking(t, db, unit, guest, 200.00)
	method := seedPaymentMethod(t, db, "Card", true)

	invoice, err := svc.CreateInvoice(booking.ID, &InitialPayment{Amount: 50, MethodID: method.ID})
	require.NoError(t, err)

	assert.Equal(t, 50.00, invoice.TotalPaid)
	assert.Equal(t, models.InvoiceStatusPending, invoice.Status)
	assert.Equal(t, 150.00, invoice.Outstanding())
}

func TestRecordPayment_PartialThenPaid(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBillingService(db, testActivity(db))

	unit := seedUnit(t, db, "Sea View 1", "apartment", 25)
	guest := seedGuest(t, db, "alice")
	booking := seedBooking(t, db, unit, guest, 50.00)
	method := seedPaymentMethod(t, db, "Cash", true)

	invoice, err := svc.CreateInvoice(booking.ID, nil)
	require.NoError(t, err)

	invoice, err = svc.RecordPayment(invoice.ID, 30, method.ID)
	require.NoError(t, err)
	assert.Equal(t, 30.00, invoice.TotalPaid)
	assert.Equal(t, models.InvoiceStatusPending, invoice.Status)
	assert.Nil(t, invoice.PaidAt)

	invoice, err = svc.RecordPayment(invoice.ID, 20, method.ID)
	require.NoError(t, err)
	assert.Equal(t, 50.00, invoice.TotalPaid)
	assert.Equal(t, models.InvoiceStatusPaid, invoice.Status)
	require.NotNil(t, invoice.PaidAt)
	assert.WithinDuration(t, time.Now().UTC(), *invoice.PaidAt, time.Minute)
}

func TestRecordPayment_OverpaymentStaysPaid(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBillingService(db, testActivity(db))

	unit := seedUnit(t, db, "Sea View 1", "apartment", 25)
	guest := seedGuest(t, db, "alice")
	booking := seedBooking(t, db, unit, guest, 200.00)
	method := seedPaymentMethod(t, db, "Cash", true)

	invoice, err := svc.CreateInvoice(booking.ID, nil)
	require.NoError(t, err)

	invoice, err = svc.RecordPayment(invoice.ID, 200, method.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPaid, invoice.Status)
	require.NotNil(t, invoice.PaidAt)
	firstPaidAt := *invoice.PaidAt

	// a later payment is accepted, keeps status paid, and grows TotalPaid
	invoice, err = svc.RecordPayment(invoice.ID, 10, method.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPaid, invoice.Status)
	assert.Equal(t, 210.00, invoice.TotalPaid)
	assert.Equal(t, -10.00, invoice.Outstanding())
	require.NotNil(t, invoice.PaidAt)
	assert.Equal(t, firstPaidAt.Unix(), invoice.PaidAt.Unix())
}

func TestRecordPayment_Validation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBillingService(db, testActivity(db))

	unit := seedUnit(t, db, "Sea View 1", "apartment", 25)
	guest := seedGuest(t, db, "alice")
	booking := seedBooking(t, db, unit, guest, 50.00)
	method := seedPaymentMethod(t, db, "Cash", true)
	inactive := seedPaymentMethod(t, db, "Cheque", false)

	invoice, err := svc.CreateInvoice(booking.ID, nil)
	require.NoError(t, err)

	_, err = svc.RecordPayment(invoice.ID, 0, method.ID)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.RecordPayment(invoice.ID, -5, method.ID)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.RecordPayment(invoice.ID, 10, 9999)
	assert.ErrorIs(t, err, ErrPaymentMethodNotFound)

	_, err = svc.RecordPayment(invoice.ID, 10, inactive.ID)
	assert.ErrorIs(t, err, ErrPaymentMethodInactive)

	_, err = svc.RecordPayment(9999, 10, method.ID)
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
}

func TestAddExtra_SnapshotsCatalogPrice(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBillingService(db, testActivity(db))

	unit := seedUnit(t, db, "Sea View 1", "apartment", 25)
	guest := seedGuest(t, db, "alice")
	booking := seedBooking(t, db, unit, guest, 100.00)
	breakfast := seedExtra(t, db, "Breakfast", 12.50)

	added, err := svc.AddExtra(booking.ID, breakfast.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 50.00, added.TotalPrice)

	// repricing the catalog later must not touch the stored snapshot
	require.NoError(t, db.Model(&models.Extra{}).Where("id = ?", breakfast.ID).Update("price", 99.0).Error)

	var stored models.BookingExtra
	require.NoError(t, db.First(&stored, added.ID).Error)
	assert.Equal(t, 50.00, stored.TotalPrice)

	_, err = svc.AddExtra(booking.ID, breakfast.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.AddExtra(booking.ID, 9999, 1)
	assert.ErrorIs(t, err, ErrExtraNotFound)

	_, err = svc.AddExtra(9999, breakfast.ID, 1)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
