package postgres

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/seu-repo/mandi-assist/internal/domain"
)

// NewConnection initializes a new PostgreSQL connection using GORM
func NewConnection(url string, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(url), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// Set connection pool settings
	// These could be configurable
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Info("Successfully connected to PostgreSQL")
	return db, nil
}

// RunMigrations creates the vendor directory and price store tables and
// seeds them when empty, so a fresh instance answers queries right away.
func RunMigrations(db *gorm.DB, log *zap.Logger) error {
	if err := db.AutoMigrate(&domain.VendorRecord{}, &domain.PriceRecord{}); err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}

	if err := seedPrices(db); err != nil {
		return fmt.Errorf("price seed failed: %w", err)
	}
	if err := seedVendors(db); err != nil {
		return fmt.Errorf("vendor seed failed: %w", err)
	}

	log.Info("Database migrations completed")
	return nil
}

func seedPrices(db *gorm.DB) error {
	var count int64
	if err := db.Model(&domain.PriceRecord{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	// Rs/kg wholesale reference prices.
	seed := []domain.PriceRecord{
		{Vegetable: "tomato", Average: 40, Min: 35, Max: 48},
		{Vegetable: "potato", Average: 28, Min: 24, Max: 32},
		{Vegetable: "onion", Average: 35, Min: 30, Max: 42},
		{Vegetable: "carrot", Average: 55, Min: 48, Max: 62},
		{Vegetable: "cabbage", Average: 30, Min: 25, Max: 36},
		{Vegetable: "cauliflower", Average: 45, Min: 38, Max: 52},
		{Vegetable: "spinach", Average: 25, Min: 20, Max: 30},
		{Vegetable: "brinjal", Average: 38, Min: 32, Max: 44},
		{Vegetable: "okra", Average: 50, Min: 42, Max: 58},
		{Vegetable: "capsicum", Average: 70, Min: 60, Max: 82},
	}
	return db.Create(&seed).Error
}

func seedVendors(db *gorm.DB) error {
	var count int64
	if err := db.Model(&domain.VendorRecord{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	f := func(v float64) *float64 { return &v }
	seed := []domain.VendorRecord{
		{ID: uuid.NewString(), Name: "Sharma Fresh Produce", Address: "Linking Road, Bandra West", Latitude: f(19.0607), Longitude: f(72.8362)},
		{ID: uuid.NewString(), Name: "Mandi Direct", Address: "SV Road, Andheri West", Latitude: f(19.1197), Longitude: f(72.8468)},
		{ID: uuid.NewString(), Name: "Green Leaf Stall", Address: "Dadar Market, Dadar West", Latitude: f(19.0213), Longitude: f(72.8424)},
		{ID: uuid.NewString(), Name: "Patil Vegetables", Address: "Hill Road, Bandra West", Latitude: f(19.0546), Longitude: f(72.8264)},
		// Directory entry pending a survey; proximity search skips it.
		{ID: uuid.NewString(), Name: "Roadside Cart 7", Address: "Near Kurla Station"},
	}
	return db.Create(&seed).Error
}

// Helper to close connection if needed (though *gorm.DB doesn't have Close directly, sql.DB does)
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
