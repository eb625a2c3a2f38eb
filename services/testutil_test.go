package services

import (
	"log/slog"
	"os"
	"testing"

	"property-backend/config"
	"property-backend/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB connects to the MySQL database named by MYSQL_DSN_TEST, migrates
// the schema, and wipes all rows so each test starts clean. Tests needing a
// database are skipped when the env var is unset.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("MYSQL_DSN_TEST")
	if dsn == "" {
		t.Skip("MYSQL_DSN_TEST not set; skipping database test")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, config.Migrate(db))

	for _, table := range []string{
		"payments", "invoice_items", "invoices", "booking_extras", "bookings",
		"pricing_rules", "housekeeping_tasks", "maintenance_tickets",
		"activity_logs", "guests", "units", "extras", "payment_methods",
	} {
		require.NoError(t, db.Exec("DELETE FROM "+table).Error)
	}

	return db
}

func testActivity(db *gorm.DB) *ActivityService {
	return NewActivityService(db, slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

func seedUnit(t *testing.T, db *gorm.DB, name, unitType string, basePrice float64) models.Unit {
	t.Helper()
	unit := models.Unit{Name: name, Type: unitType, Capacity: 2, BasePrice: basePrice, Status: models.UnitStatusClean}
	require.NoError(t, db.Create(&unit).Error)
	return unit
}

func seedGuest(t *testing.T, db *gorm.DB, name string) models.Guest {
	t.Helper()
	guest := models.Guest{FullName: name, Email: name + "@example.com"}
	require.NoError(t, db.Create(&guest).Error)
	return guest
}

func seedPaymentMethod(t *testing.T, db *gorm.DB, name string, active bool) models.PaymentMethod {
	t.Helper()
	method := models.PaymentMethod{Name: name, IsActive: active}
	require.NoError(t, db.Create(&method).Error)
	return method
}

func seedExtra(t *testing.T, db *gorm.DB, name string, price float64) models.Extra {
	t.Helper()
	extra := models.Extra{Name: name, Price: price}
	require.NoError(t, db.Create(&extra).Error)
	return extra
}
