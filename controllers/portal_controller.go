package controllers

import (
	"errors"
	"net/http"
	"strings"

	"property-backend/models"
	"property-backend/services"
	"property-backend/utils"

	"github.com/gin-gonic/gin"
)

type PortalTicketRequest struct {
	UnitID      uint   `json:"unit_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type PortalChatRequest struct {
	Content string `json:"content" binding:"required"`
	Type    string `json:"type"`
}

// PortalController serves the token-authenticated guest portal: own bookings
// with billing detail, maintenance requests, and the concierge chat relay.
type PortalController struct {
	GuestSvc       *services.GuestService
	BookingSvc     *services.BookingService
	BillingSvc     *services.BillingService
	MaintenanceSvc *services.MaintenanceService
	ChatSvc        *services.ChatService
}

func NewPortalController(
	guestSvc *services.GuestService,
	bookingSvc *services.BookingService,
	billingSvc *services.BillingService,
	maintenanceSvc *services.MaintenanceService,
	chatSvc *services.ChatService,
) *PortalController {
	return &PortalController{
		GuestSvc:       guestSvc,
		BookingSvc:     bookingSvc,
		BillingSvc:     billingSvc,
		MaintenanceSvc: maintenanceSvc,
		ChatSvc:        chatSvc,
	}
}

// authGuest resolves the requesting guest from the Authorization bearer token
// or the ?token= query parameter.
func (pc *PortalController) authGuest(c *gin.Context) (models.Guest, bool) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if token == "" || token == c.GetHeader("Authorization") {
		token = c.Query("token")
	}

	guest, err := pc.GuestSvc.FindByPortalToken(strings.TrimSpace(token))
	if err != nil {
		respondServiceError(c, err)
		return models.Guest{}, false
	}
	return guest, true
}

func (pc *PortalController) Me(c *gin.Context) {
	guest, ok := pc.authGuest(c)
	if !ok {
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}

func (pc *PortalController) MyBookings(c *gin.Context) {
	guest, ok := pc.authGuest(c)
	if !ok {
		return
	}
	bookings, err := pc.BookingSvc.BookingsForGuest(guest.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

// MyBookingDetail mirrors the staff booking detail view, restricted to the
// guest's own bookings.
func (pc *PortalController) MyBookingDetail(c *gin.Context) {
	guest, ok := pc.authGuest(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	booking, err := pc.BookingSvc.GetBooking(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if booking.GuestID != guest.ID {
		utils.JSONError(c, http.StatusForbidden, "not_your_booking")
		return
	}

	breakdown, err := pc.BookingSvc.Breakdown(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	payload := gin.H{"booking": booking, "breakdown": breakdown}

	invoice, err := pc.BillingSvc.InvoiceForBooking(id)
	switch {
	case err == nil:
		payload["invoice"] = invoice
		payload["outstanding"] = utils.Round2(invoice.Outstanding())
	case errors.Is(err, services.ErrInvoiceNotFound):
	default:
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, payload)
}

func (pc *PortalController) MyTickets(c *gin.Context) {
	guest, ok := pc.authGuest(c)
	if !ok {
		return
	}
	tickets, err := pc.MaintenanceSvc.TicketsForGuest(guest.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, tickets)
}

func (pc *PortalController) CreateTicket(c *gin.Context) {
	guest, ok := pc.authGuest(c)
	if !ok {
		return
	}
	var req PortalTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}

	guestID := guest.ID
	ticket, err := pc.MaintenanceSvc.CreateTicket(models.MaintenanceTicket{
		UnitID:      req.UnitID,
		GuestID:     &guestID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, ticket)
}

// SendChatMessage relays the message to the concierge webhook synchronously;
// a webhook failure is surfaced to the guest.
func (pc *PortalController) SendChatMessage(c *gin.Context) {
	guest, ok := pc.authGuest(c)
	if !ok {
		return
	}
	var req PortalChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}

	message, err := pc.ChatSvc.SendMessage(&guest, req.Content, req.Type)
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "chat_relay_failed")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, message)
}
