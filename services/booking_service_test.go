package services

import (
	"testing"

	"property-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBooking_SnapshotsTotalAndSurvivesRuleChanges(t *testing.T) {
	db := setupTestDB(t)
	pricing := NewPricingService(db)
	svc := NewBookingService(db, pricing, testActivity(db))

	unit := seedUnit(t, db, "Sea View 1", "apartment", 50)
	guest := seedGuest(t, db, "alice")

	rule, err := pricing.CreateRule(models.PricingRule{
		UnitID:    &unit.ID,
		StartDate: date("2024-07-01"),
		EndDate:   date("2024-07-03"),
		Price:     80,
	})
	require.NoError(t, err)

	booking, err := svc.CreateBooking(unit.ID, guest.ID, date("2024-06-30"), date("2024-07-04"), 2)
	require.NoError(t, err)
	assert.Equal(t, 290.00, booking.TotalAmount)
	assert.Equal(t, models.BookingStatusConfirmed, booking.Status)
	assert.NotEmpty(t, booking.ReferenceCode)

	// deleting the rule must not reprice the stored booking
	require.NoError(t, pricing.DeleteRule(rule.ID))

	var stored models.Booking
	require.NoError(t, db.First(&stored, booking.ID).Error)
	assert.Equal(t, 290.00, stored.TotalAmount)
}

func TestCreateBooking_Validation(t *testing.T) {
	db := setupTestDB(t)
	pricing := NewPricingService(db)
	svc := NewBookingService(db, pricing, testActivity(db))

	unit := seedUnit(t, db, "Sea View 1", "apartment", 50)
	guest := seedGuest(t, db, "alice")

	_, err := svc.CreateBooking(unit.ID, guest.ID, date("2024-07-04"), date("2024-07-04"), 2)
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = svc.CreateBooking(9999, guest.ID, date("2024-07-01"), date("2024-07-04"), 2)
	assert.ErrorIs(t, err, ErrUnitNotFound)

	_, err = svc.CreateBooking(unit.ID, 9999, date("2024-07-01"), date("2024-07-04"), 2)
	assert.ErrorIs(t, err, ErrGuestNotFound)
}

func TestCreateBooking_OverlapRejected(t *testing.T) {
	db := setupTestDB(t)
	pricing := NewPricingService(db)
	svc := NewBookingService(db, pricing, testActivity(db))

	unit := seedUnit(t, db, "Sea View 1", "apartment", 50)
	alice := seedGuest(t, db, "alice")
	bob := seedGuest(t, db, "bob")

	_, err := svc.CreateBooking(unit.ID, alice.ID, date("2024-07-01"), date("2024-07-05"), 2)
	require.NoError(t, err)

	// overlapping stay on the same unit
	_, err = svc.CreateBooking(unit.ID, bob.ID, date("2024-07-04"), date("2024-07-08"), 2)
	assert.ErrorIs(t, err, ErrUnitUnavailable)

	// back-to-back is fine: previous check-out day is not a night
	_, err = svc.CreateBooking(unit.ID, bob.ID, date("2024-07-05"), date("2024-07-08"), 2)
	assert.NoError(t, err)
}

func TestAvailableUnits_ExcludesBusy(t *testing.T) {
	db := setupTestDB(t)
	pricing := NewPricingService(db)
	svc := NewBookingService(db, pricing, testActivity(db))

	busy := seedUnit(t, db, "Sea View 1", "apartment", 50)
	free := seedUnit(t, db, "Garden 2", "studio", 40)
	guest := seedGuest(t, db, "alice")

	_, err := svc.CreateBooking(busy.ID, guest.ID, date("2024-07-01"), date("2024-07-05"), 2)
	require.NoError(t, err)

	units, err := svc.AvailableUnits(date("2024-07-02"), date("2024-07-04"))
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, free.ID, units[0].ID)

	units, err = svc.AvailableUnits(date("2024-07-10"), date("2024-07-12"))
	require.NoError(t, err)
	assert.Len(t, units, 2)
}

func TestCheckInCheckOut_DrivesUnitStatusAndPortalAccess(t *testing.T) {
	db := setupTestDB(t)
	pricing := NewPricingService(db)
	svc := NewBookingService(db, pricing, testActivity(db))
	guests := NewGuestService(db, testActivity(db))

	unit := seedUnit(t, db, "Sea View 1", "apartment", 50)
	guest := seedGuest(t, db, "alice")

	booking, err := svc.CreateBooking(unit.ID, guest.ID, date("2024-07-01"), date("2024-07-05"), 2)
	require.NoError(t, err)

	_, err = guests.EnablePortalAccess(guest.ID, "Test Property", "http://localhost:3000")
	require.NoError(t, err)

	// cannot check out before checking in
	_, err = svc.CheckOut(booking.ID)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	checkedIn, err := svc.CheckIn(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCheckedIn, checkedIn.Status)
	require.NotNil(t, checkedIn.RealCheckIn)

	var u models.Unit
	require.NoError(t, db.First(&u, unit.ID).Error)
	assert.Equal(t, models.UnitStatusOccupied, u.Status)

	// double check-in rejected
	_, err = svc.CheckIn(booking.ID)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	checkedOut, err := svc.CheckOut(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCheckedOut, checkedOut.Status)

	require.NoError(t, db.First(&u, unit.ID).Error)
	assert.Equal(t, models.UnitStatusDirty, u.Status)

	var g models.Guest
	require.NoError(t, db.First(&g, guest.ID).Error)
	assert.False(t, g.PortalEnabled)
	assert.Empty(t, g.PortalToken)
}

func TestCancelBooking(t *testing.T) {
	db := setupTestDB(t)
	pricing := NewPricingService(db)
	svc := NewBookingService(db, pricing, testActivity(db))

	unit := seedUnit(t, db, "Sea View 1", "apartment", 50)
	guest := seedGuest(t, db, "alice")

	booking, err := svc.CreateBooking(unit.ID, guest.ID, date("2024-07-01"), date("2024-07-05"), 2)
	require.NoError(t, err)

	cancelled, err := svc.Cancel(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)

	// cancelled bookings free the unit
	units, err := svc.AvailableUnits(date("2024-07-02"), date("2024-07-04"))
	require.NoError(t, err)
	assert.Len(t, units, 1)

	_, err = svc.Cancel(booking.ID)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
