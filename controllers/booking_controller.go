package controllers

import (
	"errors"
	"net/http"

	"property-backend/services"
	"property-backend/utils"

	"github.com/gin-gonic/gin"
)

type CreateBookingRequest struct {
	UnitID      uint   `json:"unit_id" binding:"required"`
	GuestID     uint   `json:"guest_id" binding:"required"`
	CheckIn     string `json:"check_in" binding:"required"`
	CheckOut    string `json:"check_out" binding:"required"`
	GuestsCount int    `json:"guests_count"`
}

type BookingController struct {
	BookingSvc *services.BookingService
	BillingSvc *services.BillingService
}

func NewBookingController(bookingSvc *services.BookingService, billingSvc *services.BillingService) *BookingController {
	return &BookingController{BookingSvc: bookingSvc, BillingSvc: billingSvc}
}

func (bc *BookingController) ListBookings(c *gin.Context) {
	bookings, err := bc.BookingSvc.ListBookings(c.Query("status"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

func (bc *BookingController) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}

	checkIn, err := utils.ParseDate(req.CheckIn)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_date")
		return
	}
	checkOut, err := utils.ParseDate(req.CheckOut)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_date")
		return
	}

	booking, err := bc.BookingSvc.CreateBooking(req.UnitID, req.GuestID, checkIn, checkOut, req.GuestsCount)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, booking)
}

// GetBookingDetails returns the booking plus the re-derived accommodation
// breakdown and, when present, the invoice with its payments.
func (bc *BookingController) GetBookingDetails(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	booking, err := bc.BookingSvc.GetBooking(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	breakdown, err := bc.BookingSvc.Breakdown(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	payload := gin.H{
		"booking":   booking,
		"breakdown": breakdown,
	}

	invoice, err := bc.BillingSvc.InvoiceForBooking(id)
	switch {
	case err == nil:
		payload["invoice"] = invoice
		payload["outstanding"] = utils.Round2(invoice.Outstanding())
	case errors.Is(err, services.ErrInvoiceNotFound):
		// no account opened yet
	default:
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, payload)
}

func (bc *BookingController) CheckIn(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	booking, err := bc.BookingSvc.CheckIn(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (bc *BookingController) CheckOut(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	booking, err := bc.BookingSvc.CheckOut(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (bc *BookingController) CancelBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	booking, err := bc.BookingSvc.Cancel(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// AvailableUnits lists units free for ?check_in=YYYY-MM-DD&check_out=YYYY-MM-DD.
func (bc *BookingController) AvailableUnits(c *gin.Context) {
	checkIn, err := utils.ParseDate(c.Query("check_in"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_date")
		return
	}
	checkOut, err := utils.ParseDate(c.Query("check_out"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_date")
		return
	}

	units, err := bc.BookingSvc.AvailableUnits(checkIn, checkOut)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, units)
}
