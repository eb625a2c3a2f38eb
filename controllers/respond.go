package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"property-backend/services"
	"property-backend/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps the service layer's snake-code errors onto HTTP
// statuses. Anything unrecognized is a storage failure and becomes a 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUnitNotFound),
		errors.Is(err, services.ErrGuestNotFound),
		errors.Is(err, services.ErrBookingNotFound),
		errors.Is(err, services.ErrInvoiceNotFound),
		errors.Is(err, services.ErrExtraNotFound),
		errors.Is(err, services.ErrPaymentMethodNotFound),
		errors.Is(err, services.ErrRuleNotFound),
		errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrTicketNotFound):
		utils.JSONError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidDateRange),
		errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInvalidRuleScope),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrPaymentMethodInactive):
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrUnitUnavailable),
		errors.Is(err, services.ErrInvoiceAlreadyExists),
		errors.Is(err, services.ErrBookingNotActive):
		utils.JSONError(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrPortalDisabled):
		utils.JSONError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrInvoiceItemCreation):
		utils.JSONError(c, http.StatusInternalServerError, services.ErrInvoiceItemCreation.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal_error")
	}
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid_id")
		return 0, false
	}
	return uint(id), true
}
