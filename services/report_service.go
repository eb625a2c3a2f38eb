package services

import (
	"fmt"
	"time"

	"property-backend/models"
	"property-backend/utils"

	"gorm.io/gorm"
)

type ReportService struct {
	DB *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db}
}

type OccupancySummary struct {
	From           string  `json:"from"`
	To             string  `json:"to"`
	UnitCount      int64   `json:"unit_count"`
	NightsTotal    int     `json:"nights_total"`
	NightsOccupied int64   `json:"nights_occupied"`
	OccupancyRate  float64 `json:"occupancy_rate"`
}

type RevenueSummary struct {
	From           string             `json:"from"`
	To             string             `json:"to"`
	InvoicedTotal  float64            `json:"invoiced_total"`
	CollectedTotal float64            `json:"collected_total"`
	ByMethod       map[string]float64 `json:"by_method"`
}

// Occupancy reports occupied nights vs. available nights for [from, to).
// A booking contributes the overlap of its stay with the window.
func (s *ReportService) Occupancy(from, to time.Time) (OccupancySummary, error) {
	if !to.After(from) {
		return OccupancySummary{}, ErrInvalidDateRange
	}

	var unitCount int64
	if err := s.DB.Model(&models.Unit{}).Count(&unitCount).Error; err != nil {
		return OccupancySummary{}, fmt.Errorf("failed to count units: %w", err)
	}

	var bookings []models.Booking
	err := s.DB.
		Where("status IN ?", []string{models.BookingStatusConfirmed, models.BookingStatusCheckedIn, models.BookingStatusCheckedOut}).
		Where("check_in_date < ? AND check_out_date > ?", to, from).
		Find(&bookings).Error
	if err != nil {
		return OccupancySummary{}, fmt.Errorf("failed to load bookings: %w", err)
	}

	var occupied int64
	for _, b := range bookings {
		start := b.CheckInDate
		if start.Before(from) {
			start = from
		}
		end := b.CheckOutDate
		if end.After(to) {
			end = to
		}
		occupied += int64(utils.NightsBetween(start, end))
	}

	windowNights := utils.NightsBetween(from, to)
	summary := OccupancySummary{
		From:           utils.DateString(from),
		To:             utils.DateString(to),
		UnitCount:      unitCount,
		NightsTotal:    windowNights * int(unitCount),
		NightsOccupied: occupied,
	}
	if summary.NightsTotal > 0 {
		summary.OccupancyRate = utils.Round2(float64(occupied) / float64(summary.NightsTotal) * 100)
	}
	return summary, nil
}

// Revenue sums invoiced and collected amounts for invoices created in [from, to),
// with collected money split by payment method.
func (s *ReportService) Revenue(from, to time.Time) (RevenueSummary, error) {
	if !to.After(from) {
		return RevenueSummary{}, ErrInvalidDateRange
	}

	summary := RevenueSummary{
		From:     utils.DateString(from),
		To:       utils.DateString(to),
		ByMethod: map[string]float64{},
	}

	var invoiced float64
	err := s.DB.Model(&models.Invoice{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&invoiced).Error
	if err != nil {
		return RevenueSummary{}, fmt.Errorf("failed to sum invoices: %w", err)
	}
	summary.InvoicedTotal = utils.Round2(invoiced)

	var payments []models.Payment
	err = s.DB.Preload("PaymentMethod").
		Where("created_at >= ? AND created_at < ? AND status = ?", from, to, models.PaymentStatusCompleted).
		Find(&payments).Error
	if err != nil {
		return RevenueSummary{}, fmt.Errorf("failed to load payments: %w", err)
	}
	for _, p := range payments {
		summary.CollectedTotal += p.Amount
		name := p.PaymentMethod.Name
		if name == "" {
			name = "Other"
		}
		summary.ByMethod[name] = utils.Round2(summary.ByMethod[name] + p.Amount)
	}
	summary.CollectedTotal = utils.Round2(summary.CollectedTotal)

	return summary, nil
}
