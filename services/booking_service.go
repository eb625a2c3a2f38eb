package services

import (
	"fmt"
	"strings"
	"time"

	"property-backend/models"
	"property-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingService drives the booking lifecycle (confirmed -> checked_in ->
// checked_out, with a cancel branch) and keeps the unit status machine in step.
type BookingService struct {
	DB       *gorm.DB
	Pricing  *PricingService
	Activity *ActivityService
}

func NewBookingService(db *gorm.DB, pricing *PricingService, activity *ActivityService) *BookingService {
	return &BookingService{DB: db, Pricing: pricing, Activity: activity}
}

// CreateBooking validates dates and availability, resolves the stay total from
// the pricing rules in force right now, and snapshots it on the booking. The
// snapshot is authoritative from then on.
func (s *BookingService) CreateBooking(unitID, guestID uint, checkIn, checkOut time.Time, guestsCount int) (models.Booking, error) {
	if !checkOut.After(checkIn) {
		return models.Booking{}, ErrInvalidDateRange
	}
	if guestsCount <= 0 {
		guestsCount = 1
	}

	var unit models.Unit
	if err := s.DB.First(&unit, unitID).Error; err != nil {
		if isNotFound(err) {
			return models.Booking{}, ErrUnitNotFound
		}
		return models.Booking{}, fmt.Errorf("failed to find unit: %w", err)
	}

	var guest models.Guest
	if err := s.DB.First(&guest, guestID).Error; err != nil {
		if isNotFound(err) {
			return models.Booking{}, ErrGuestNotFound
		}
		return models.Booking{}, fmt.Errorf("failed to find guest: %w", err)
	}

	available, err := s.unitAvailable(unitID, checkIn, checkOut)
	if err != nil {
		return models.Booking{}, err
	}
	if !available {
		return models.Booking{}, ErrUnitUnavailable
	}

	rules, err := s.Pricing.RulesForStay(&unit, checkIn, checkOut)
	if err != nil {
		return models.Booking{}, err
	}
	total, err := ComputeStayTotal(&unit, checkIn, checkOut, rules)
	if err != nil {
		return models.Booking{}, err
	}

	booking := models.Booking{
		UnitID:        unitID,
		GuestID:       guestID,
		ReferenceCode: newReferenceCode(),
		Status:        models.BookingStatusConfirmed,
		CheckInDate:   checkIn,
		CheckOutDate:  checkOut,
		GuestsCount:   guestsCount,
		TotalAmount:   utils.Round2(total),
	}
	if err := s.DB.Create(&booking).Error; err != nil {
		return models.Booking{}, fmt.Errorf("failed to create booking: %w", err)
	}
	booking.Unit = unit
	booking.Guest = guest

	s.Activity.Record("booking_created",
		fmt.Sprintf("Booking %s for %s (%s to %s)", booking.ReferenceCode, guest.FullName,
			utils.DateString(checkIn), utils.DateString(checkOut)),
		fmt.Sprint(booking.ID),
		map[string]interface{}{"unit": unit.Name, "total_amount": booking.TotalAmount})

	return booking, nil
}

func newReferenceCode() string {
	return "BK-" + strings.ToUpper(uuid.NewString()[:8])
}

// unitAvailable checks for overlapping confirmed/checked_in bookings on the
// unit. Overlap: existing.check_in < wanted.check_out AND existing.check_out >
// wanted.check_in.
func (s *BookingService) unitAvailable(unitID uint, checkIn, checkOut time.Time) (bool, error) {
	var count int64
	err := s.DB.Model(&models.Booking{}).
		Where("unit_id = ?", unitID).
		Where("status IN ?", []string{models.BookingStatusConfirmed, models.BookingStatusCheckedIn}).
		Where("check_in_date < ? AND check_out_date > ?", checkOut, checkIn).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check availability: %w", err)
	}
	return count == 0, nil
}

// AvailableUnits lists units with no overlapping active booking for the range.
func (s *BookingService) AvailableUnits(checkIn, checkOut time.Time) ([]models.Unit, error) {
	if !checkOut.After(checkIn) {
		return nil, ErrInvalidDateRange
	}

	var busyIDs []uint
	err := s.DB.Model(&models.Booking{}).
		Where("status IN ?", []string{models.BookingStatusConfirmed, models.BookingStatusCheckedIn}).
		Where("check_in_date < ? AND check_out_date > ?", checkOut, checkIn).
		Pluck("unit_id", &busyIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find busy units: %w", err)
	}

	query := s.DB.Order("name")
	if len(busyIDs) > 0 {
		query = query.Where("id NOT IN ?", busyIDs)
	}

	var units []models.Unit
	if err := query.Find(&units).Error; err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}
	return units, nil
}

func (s *BookingService) GetBooking(id uint) (models.Booking, error) {
	var booking models.Booking
	err := s.DB.Preload("Unit").Preload("Guest").Preload("Extras.Extra").First(&booking, id).Error
	if err != nil {
		if isNotFound(err) {
			return models.Booking{}, ErrBookingNotFound
		}
		return models.Booking{}, fmt.Errorf("failed to find booking: %w", err)
	}
	return booking, nil
}

func (s *BookingService) ListBookings(status string) ([]models.Booking, error) {
	query := s.DB.Preload("Unit").Preload("Guest").Order("check_in_date DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var bookings []models.Booking
	err := query.Find(&bookings).Error
	return bookings, err
}

// BookingsForGuest lists a guest's bookings for the portal, checked-in first,
// then upcoming by check-in date.
func (s *BookingService) BookingsForGuest(guestID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.Preload("Unit").Preload("Extras.Extra").
		Where("guest_id = ?", guestID).
		Order("status = 'checked_in' DESC, check_in_date ASC").
		Find(&bookings).Error
	return bookings, err
}

// CheckIn moves a confirmed booking to checked_in and the unit to occupied.
func (s *BookingService) CheckIn(bookingID uint) (models.Booking, error) {
	booking, err := s.GetBooking(bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if booking.Status != models.BookingStatusConfirmed {
		return models.Booking{}, ErrInvalidStatus
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{
		"status":        models.BookingStatusCheckedIn,
		"real_check_in": now,
	}
	if err := s.DB.Model(&models.Booking{}).Where("id = ?", bookingID).Updates(updates).Error; err != nil {
		return models.Booking{}, fmt.Errorf("failed to check in booking: %w", err)
	}
	if err := s.DB.Model(&models.Unit{}).Where("id = ?", booking.UnitID).
		Update("status", models.UnitStatusOccupied).Error; err != nil {
		return models.Booking{}, fmt.Errorf("failed to update unit status: %w", err)
	}

	booking.Status = models.BookingStatusCheckedIn
	booking.RealCheckIn = &now

	s.Activity.Record("booking_checked_in",
		fmt.Sprintf("Booking %s checked in", booking.ReferenceCode),
		fmt.Sprint(bookingID), nil)

	return booking, nil
}

// CheckOut moves a checked-in booking to checked_out, marks the unit dirty for
// housekeeping, and revokes the guest's portal access.
func (s *BookingService) CheckOut(bookingID uint) (models.Booking, error) {
	booking, err := s.GetBooking(bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if booking.Status != models.BookingStatusCheckedIn {
		return models.Booking{}, ErrInvalidStatus
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{
		"status":         models.BookingStatusCheckedOut,
		"real_check_out": now,
	}
	if err := s.DB.Model(&models.Booking{}).Where("id = ?", bookingID).Updates(updates).Error; err != nil {
		return models.Booking{}, fmt.Errorf("failed to check out booking: %w", err)
	}
	if err := s.DB.Model(&models.Unit{}).Where("id = ?", booking.UnitID).
		Update("status", models.UnitStatusDirty).Error; err != nil {
		return models.Booking{}, fmt.Errorf("failed to update unit status: %w", err)
	}

	// Guests lose portal access once they leave.
	if err := s.DB.Model(&models.Guest{}).Where("id = ?", booking.GuestID).
		Updates(map[string]interface{}{"portal_enabled": false, "portal_token": ""}).Error; err != nil {
		return models.Booking{}, fmt.Errorf("failed to revoke portal access: %w", err)
	}

	booking.Status = models.BookingStatusCheckedOut
	booking.RealCheckOut = &now

	s.Activity.Record("booking_checked_out",
		fmt.Sprintf("Booking %s checked out", booking.ReferenceCode),
		fmt.Sprint(bookingID), nil)

	return booking, nil
}

// Cancel marks a confirmed booking cancelled. Checked-in stays cannot be
// cancelled; they must check out.
func (s *BookingService) Cancel(bookingID uint) (models.Booking, error) {
	booking, err := s.GetBooking(bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if booking.Status != models.BookingStatusConfirmed {
		return models.Booking{}, ErrInvalidStatus
	}

	if err := s.DB.Model(&models.Booking{}).Where("id = ?", bookingID).
		Update("status", models.BookingStatusCancelled).Error; err != nil {
		return models.Booking{}, fmt.Errorf("failed to cancel booking: %w", err)
	}
	booking.Status = models.BookingStatusCancelled

	s.Activity.Record("booking_cancelled",
		fmt.Sprintf("Booking %s cancelled", booking.ReferenceCode),
		fmt.Sprint(bookingID), nil)

	return booking, nil
}

// Breakdown re-derives the per-night grouped accommodation breakdown for
// display. This is informational; the billed amount stays the stored snapshot.
func (s *BookingService) Breakdown(bookingID uint) ([]BreakdownGroup, error) {
	booking, err := s.GetBooking(bookingID)
	if err != nil {
		return nil, err
	}
	rules, err := s.Pricing.RulesForStay(&booking.Unit, booking.CheckInDate, booking.CheckOutDate)
	if err != nil {
		return nil, err
	}
	return BuildBreakdown(&booking.Unit, booking.CheckInDate, booking.CheckOutDate, rules), nil
}
