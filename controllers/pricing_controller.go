package controllers

import (
	"net/http"

	"property-backend/models"
	"property-backend/services"
	"property-backend/utils"

	"github.com/gin-gonic/gin"
)

type CreateRuleRequest struct {
	UnitID    *uint   `json:"unit_id"`
	UnitType  string  `json:"unit_type"`
	StartDate string  `json:"start_date" binding:"required"`
	EndDate   string  `json:"end_date" binding:"required"`
	Price     float64 `json:"price"`
}

type QuoteRequest struct {
	UnitID   uint   `json:"unit_id" binding:"required"`
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`
}

type PricingController struct {
	PricingSvc *services.PricingService
}

func NewPricingController(svc *services.PricingService) *PricingController {
	return &PricingController{PricingSvc: svc}
}

func (pc *PricingController) ListRules(c *gin.Context) {
	rules, err := pc.PricingSvc.ListRules()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rules)
}

func (pc *PricingController) CreateRule(c *gin.Context) {
	var req CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}

	start, err := utils.ParseDate(req.StartDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_date")
		return
	}
	end, err := utils.ParseDate(req.EndDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_date")
		return
	}

	rule, err := pc.PricingSvc.CreateRule(models.PricingRule{
		UnitID:    req.UnitID,
		UnitType:  req.UnitType,
		StartDate: start,
		EndDate:   end,
		Price:     req.Price,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, rule)
}

func (pc *PricingController) DeleteRule(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := pc.PricingSvc.DeleteRule(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "rule_deleted")
}

// Quote prices a prospective stay without creating anything: total plus the
// grouped per-night breakdown.
func (pc *PricingController) Quote(c *gin.Context) {
	var req QuoteRequest
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

	total, breakdown, err := pc.PricingSvc.Quote(req.UnitID, checkIn, checkOut)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"total":     utils.Round2(total),
		"breakdown": breakdown,
	})
}
