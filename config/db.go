package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"property-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

// ResolveMySQLDSN builds the connection string from MYSQL_URL / DATABASE_URL or
// the discrete DB_* env vars.
func ResolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "property_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// SeedDatabase inserts reference data on first boot: the property row, unit
// types, the extras catalog, payment methods, and a default admin.
func SeedDatabase() {
	var propCount int64
	DB.Model(&models.Property{}).Count(&propCount)
	if propCount == 0 {
		prop := models.Property{Name: "Costa Azul Apartments", Email: "info@costaazul.example"}
		if err := DB.Create(&prop).Error; err != nil {
			log.Printf("warning: failed to seed property: %v", err)
		} else {
			log.Println("Property seeded")
		}
	}

	var adminCount int64
	DB.Model(&models.Admin{}).Count(&adminCount)
	if adminCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(envOrDefault("ADMIN_DEFAULT_PASSWORD", "admin123")), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.Admin{
				FullName: "Admin User",
				Email:    "admin@property.local",
				Password: string(hash),
				Role:     models.AdminRoleAdmin,
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("Default admin seeded")
			}
		}
	}

	var utCount int64
	DB.Model(&models.UnitType{}).Count(&utCount)
	if utCount == 0 {
		unitTypes := []models.UnitType{
			{TypeName: "studio", Description: "Studio apartment", MaxGuests: 2},
			{TypeName: "apartment", Description: "One-bedroom apartment", MaxGuests: 4},
			{TypeName: "suite", Description: "Two-bedroom suite", MaxGuests: 6},
		}
		DB.Create(&unitTypes)
		log.Println("UnitTypes seeded")
	}

	var extraCount int64
	DB.Model(&models.Extra{}).Count(&extraCount)
	if extraCount == 0 {
		extras := []models.Extra{
			{Name: "Breakfast", Price: 12.50},
			{Name: "Late check-out", Price: 25.00},
			{Name: "Parking (per day)", Price: 15.00},
			{Name: "Airport transfer", Price: 40.00},
		}
		DB.Create(&extras)
		log.Println("Extras seeded")
	}

	var pmCount int64
	DB.Model(&models.PaymentMethod{}).Count(&pmCount)
	if pmCount == 0 {
		methods := []models.PaymentMethod{
			{Name: "Cash", IsActive: true},
			{Name: "Card", IsActive: true},
			{Name: "Bank transfer", IsActive: true},
		}
		DB.Create(&methods)
		log.Println("PaymentMethods seeded")
	}
}

func ConnectDatabase() error {
	dsn, err := ResolveMySQLDSN()
	if err != nil {
		return err
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return err
	}

	DB = db

	if err := Migrate(DB); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}

// Migrate runs AutoMigrate in parent->child order.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Property{},
		&models.Admin{},
		&models.UnitType{},
		&models.Unit{},
		&models.Guest{},
		&models.PricingRule{},
		&models.Booking{},
		&models.Extra{},
		&models.BookingExtra{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.PaymentMethod{},
		&models.Payment{},
		&models.HousekeepingTask{},
		&models.MaintenanceTicket{},
		&models.ActivityLog{},
	)
}
