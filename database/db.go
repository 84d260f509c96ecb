package database

import (
	"fmt"
	"os"

	"parking-management/logger"
	"parking-management/models/booking"
	"parking-management/models/feedback"
	"parking-management/models/log"
	"parking-management/models/slot"
	"parking-management/models/user"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection with auto migration and indexing
func InitDB() (*gorm.DB, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	// Get database configuration from environment variables
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	user := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE") // Optional: "disable", "require", etc.

	// Set default sslmode if not provided
	if sslmode == "" {
		sslmode = "disable"
	}

	// Build PostgreSQL DSN string
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, database, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := AutoMigrate(DB); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	// Create indexes for better performance
	if err := createIndexes(DB); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, err
	}
	logger.Success("All indexes created successfully")

	return DB, nil
}

// AutoMigrate runs auto migration for all models in dependency order.
func AutoMigrate(db *gorm.DB) error {
	// Stage 1: Core foundation models
	stage1Models := []interface{}{
		&user.User{},
		&slot.ParkingSlot{},
	}

	for _, model := range stage1Models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: Models with dependencies on Stage 1
	stage2Models := []interface{}{
		&booking.Booking{},
		&feedback.Feedback{},
	}

	for _, model := range stage2Models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 3: Remaining models
	remainingModels := []interface{}{
		// Logging
		&log.Log{},
	}

	for _, model := range remainingModels {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// createIndexes creates additional indexes for better performance
func createIndexes(db *gorm.DB) error {
	// User indexes
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_users_uuid ON users(uuid)").Error; err != nil {
		return fmt.Errorf("failed to create user uuid index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)").Error; err != nil {
		return fmt.Errorf("failed to create user username index: %w", err)
	}

	// Slot indexes; the composite unique index on (floor, label) is the
	// natural key the booking engine relies on.
	if err := db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_slots_floor_label ON parking_slots(floor, label)").Error; err != nil {
		return fmt.Errorf("failed to create slot natural key index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_slots_status ON parking_slots(status)").Error; err != nil {
		return fmt.Errorf("failed to create slot status index: %w", err)
	}

	// Booking indexes
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_bookings_user_id ON bookings(user_id)").Error; err != nil {
		return fmt.Errorf("failed to create booking user_id index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_bookings_floor_label ON bookings(floor, label)").Error; err != nil {
		return fmt.Errorf("failed to create booking floor_label index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings(status)").Error; err != nil {
		return fmt.Errorf("failed to create booking status index: %w", err)
	}

	// Feedback indexes
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_feedbacks_booking_id ON feedbacks(booking_id)").Error; err != nil {
		return fmt.Errorf("failed to create feedback booking_id index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_feedbacks_created_at ON feedbacks(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create feedback created_at index: %w", err)
	}

	// Log indexes
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create log created_at index: %w", err)
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
