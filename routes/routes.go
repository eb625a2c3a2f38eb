package routes

import (
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"property-backend/controllers"
	"property-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires the controller instances onto the API surface.
func SetupRouter(
	log *slog.Logger,
	uc *controllers.UnitController,
	gc *controllers.GuestController,
	bc *controllers.BookingController,
	blc *controllers.BillingController,
	prc *controllers.PricingController,
	hc *controllers.HousekeepingController,
	mc *controllers.MaintenanceController,
	ptc *controllers.PortalController,
	rc *controllers.ReportController,
	ac *controllers.AdminController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		units := api.Group("/units")
		{
			units.GET("", uc.ListUnits)

			// must precede /:id
			units.GET("/available", bc.AvailableUnits)

			units.GET("/:id", uc.GetUnit)
			units.POST("", uc.CreateUnit)
			units.PUT("/:id", uc.UpdateUnit)
			units.PATCH("/:id/status", uc.UpdateUnitStatus)
			units.DELETE("/:id", uc.DeleteUnit)
		}

		api.GET("/unit-types", uc.ListUnitTypes)

		guests := api.Group("/guests")
		{
			guests.GET("", gc.ListGuests)
			guests.GET("/:id", gc.GetGuest)
			guests.POST("", gc.CreateGuest)
			guests.PUT("/:id", gc.UpdateGuest)
			guests.DELETE("/:id", gc.DeleteGuest)
			guests.POST("/:id/portal-access", gc.EnablePortalAccess)
			guests.DELETE("/:id/portal-access", gc.DisablePortalAccess)
		}

		bookings := api.Group("/bookings")
		{
			bookings.GET("", bc.ListBookings)
			bookings.POST("", bc.CreateBooking)
			bookings.GET("/:id", bc.GetBookingDetails)
			bookings.POST("/:id/checkin", bc.CheckIn)
			bookings.POST("/:id/checkout", bc.CheckOut)
			bookings.POST("/:id/cancel", bc.CancelBooking)
		}

		rates := api.Group("/rates")
		{
			rates.GET("", prc.ListRules)
			rates.POST("", prc.CreateRule)
			rates.DELETE("/:id", prc.DeleteRule)
		}
		api.POST("/quote", prc.Quote)

		invoices := api.Group("/invoices")
		{
			invoices.GET("", blc.ListInvoices)
			invoices.POST("", blc.CreateInvoice)
			invoices.GET("/:id", blc.GetInvoice)
			invoices.POST("/:id/payments", blc.RecordPayment)
		}
		api.POST("/booking-extras", blc.AddExtra)
		api.GET("/extras", blc.ListExtras)
		api.GET("/payment-methods", blc.ListPaymentMethods)

		housekeeping := api.Group("/housekeeping")
		{
			housekeeping.GET("/tasks", hc.ListTasks)
			housekeeping.POST("/tasks", hc.CreateTask)
			housekeeping.PATCH("/tasks/:id/status", hc.UpdateTaskStatus)
		}

		maintenance := api.Group("/maintenance")
		{
			maintenance.GET("/tickets", mc.ListTickets)
			maintenance.POST("/tickets", mc.CreateTicket)
			maintenance.PATCH("/tickets/:id/status", mc.UpdateTicketStatus)
		}

		portal := api.Group("/portal")
		{
			portal.GET("/me", ptc.Me)
			portal.GET("/bookings", ptc.MyBookings)
			portal.GET("/bookings/:id", ptc.MyBookingDetail)
			portal.GET("/tickets", ptc.MyTickets)
			portal.POST("/tickets", ptc.CreateTicket)
			portal.POST("/chat", ptc.SendChatMessage)
		}

		reports := api.Group("/reports")
		{
			reports.GET("/occupancy", rc.Occupancy)
			reports.GET("/revenue", rc.Revenue)
		}

		admin := api.Group("/admin")
		{
			admin.GET("/users", ac.ListAdmins)
			admin.POST("/users", ac.CreateAdmin)
			admin.GET("/property", ac.GetProperty)
			admin.PUT("/property", ac.UpdateProperty)
			admin.GET("/activity", ac.RecentActivity)
		}
	}

	return r
}
