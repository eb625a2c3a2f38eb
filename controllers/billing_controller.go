package controllers

import (
	"net/http"

	"property-backend/services"
	"property-backend/utils"

	"github.com/gin-gonic/gin"
)

type CreateInvoiceRequest struct {
	BookingID     uint     `json:"booking_id" binding:"required"`
	InitialAmount *float64 `json:"initial_amount"`
	InitialMethod uint     `json:"initial_method_id"`
}

type RecordPaymentRequest struct {
	Amount   float64 `json:"amount" binding:"required"`
	MethodID uint    `json:"method_id" binding:"required"`
}

type AddExtraRequest struct {
	BookingID uint `json:"booking_id" binding:"required"`
	ExtraID   uint `json:"extra_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

type BillingController struct {
	BillingSvc *services.BillingService
}

func NewBillingController(svc *services.BillingService) *BillingController {
	return &BillingController{BillingSvc: svc}
}

func (bc *BillingController) CreateInvoice(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}

	var initial *services.InitialPayment
	if req.InitialAmount != nil && *req.InitialAmount > 0 {
		if req.InitialMethod == 0 {
			utils.JSONError(c, http.StatusBadRequest, "payment_method_required")
			return
		}
		initial = &services.InitialPayment{Amount: *req.InitialAmount, MethodID: req.InitialMethod}
	}

	invoice, err := bc.BillingSvc.CreateInvoice(req.BookingID, initial)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, invoice)
}

func (bc *BillingController) RecordPayment(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}

	invoice, err := bc.BillingSvc.RecordPayment(id, req.Amount, req.MethodID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"invoice":     invoice,
		"outstanding": utils.Round2(invoice.Outstanding()),
	})
}

func (bc *BillingController) AddExtra(c *gin.Context) {
	var req AddExtraRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}

	extra, err := bc.BillingSvc.AddExtra(req.BookingID, req.ExtraID, req.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, extra)
}

func (bc *BillingController) GetInvoice(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	invoice, err := bc.BillingSvc.GetInvoice(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, invoice)
}

func (bc *BillingController) ListInvoices(c *gin.Context) {
	invoices, err := bc.BillingSvc.ListInvoices()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, invoices)
}

func (bc *BillingController) ListExtras(c *gin.Context) {
	extras, err := bc.BillingSvc.ListExtras()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, extras)
}

func (bc *BillingController) ListPaymentMethods(c *gin.Context) {
	methods, err := bc.BillingSvc.ListPaymentMethods()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, methods)
}
