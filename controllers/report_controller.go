package controllers

import (
	"net/http"

	"property-backend/services"
	"property-backend/utils"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	ReportSvc *services.ReportService
}

func NewReportController(svc *services.ReportService) *ReportController {
	return &ReportController{ReportSvc: svc}
}

func (rc *ReportController) Occupancy(c *gin.Context) {
	from, err := utils.ParseDate(c.Query("from"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_date")
		return
	}
	to, err := utils.ParseDate(c.Query("to"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_date")
		return
	}

	summary, err := rc.ReportSvc.Occupancy(from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, summary)
}

func (rc *ReportController) Revenue(c *gin.Context) {
	from, err := utils.ParseDate(c.Query("from"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_date")
		return
	}
	to, err := utils.ParseDate(c.Query("to"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_date")
		return
	}

	summary, err := rc.ReportSvc.Revenue(from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, summary)
}
