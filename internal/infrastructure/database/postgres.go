package database

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"github.com/sokoerp/pos-api/internal/config"
	"github.com/sokoerp/pos-api/internal/domain/entity"
	"github.com/sokoerp/pos-api/internal/domain/enum"
	"github.com/sokoerp/pos-api/pkg/payment"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Tenancy entities
		&entity.Organization{},
		&entity.User{},
		&entity.Employee{},

		// Catalog and inventory entities
		&entity.Product{},
		&entity.Warehouse{},
		&entity.StockLevel{},
		&entity.StockMovement{},

		// POS entities
		&entity.POSTerminal{},
		&entity.POSSession{},
		&entity.POSSale{},
		&entity.SaleItem{},
		&entity.SalePayment{},

		// Payment entities
		&entity.PaymentProvider{},

		// System entities
		&entity.SequenceCounter{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// GORM tags cannot express a partial index. This one enforces at most one
	// OPEN session per cashier per organization, even under concurrent opens.
	err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_open_cashier
		ON pos_sessions (organization_id, cashier_id)
		WHERE status = 'OPEN'`).Error
	if err != nil {
		return fmt.Errorf("failed to create open session index: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds a demo organization with users, a warehouse, a
// terminal, a few products with stock, and a cash payment provider. Safe to
// run repeatedly; existing rows are left untouched.
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	orgSlug := viper.GetString("SEED_ORG_SLUG")
	if orgSlug == "" {
		orgSlug = "demo-store"
	}

	var org entity.Organization
	if err := db.Where("slug = ?", orgSlug).First(&org).Error; err != nil {
		org = entity.Organization{
			Name:     "Demo Store",
			Slug:     orgSlug,
			Currency: "KES",
		}
		if err := db.Create(&org).Error; err != nil {
			return fmt.Errorf("failed to create demo organization: %w", err)
		}
	}

	// Users and their employee directory records
	users := []struct {
		firstName string
		lastName  string
		email     string
		role      string
		jobTitle  string
	}{
		{"Amina", "Odhiambo", "admin@demo-store.test", "admin", "Store Owner"},
		{"Brian", "Kiptoo", "manager@demo-store.test", "manager", "Store Manager"},
		{"Cynthia", "Wanjiru", "cashier@demo-store.test", "cashier", "Cashier"},
	}

	seedPassword := viper.GetString("SEED_USER_PASSWORD")
	if seedPassword == "" {
		seedPassword = "password123"
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	for _, u := range users {
		var existing entity.User
		if err := db.Where("email = ?", u.email).First(&existing).Error; err == nil {
			continue
		}

		user := entity.User{
			OrganizationID: org.ID,
			FirstName:      u.firstName,
			LastName:       u.lastName,
			Email:          u.email,
			Password:       string(hashedPassword),
			Role:           u.role,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Printf("Warning: failed to create seed user %s: %v", u.email, err)
			continue
		}

		jobTitle := u.jobTitle
		employee := entity.Employee{
			OrganizationID: org.ID,
			UserID:         user.ID,
			FirstName:      u.firstName,
			LastName:       u.lastName,
			JobTitle:       &jobTitle,
		}
		if err := db.Create(&employee).Error; err != nil {
			log.Printf("Warning: failed to create seed employee for %s: %v", u.email, err)
		}
	}

	// Default warehouse
	var warehouse entity.Warehouse
	if err := db.Where("organization_id = ? AND is_default = ?", org.ID, true).First(&warehouse).Error; err != nil {
		location := "Nairobi CBD"
		warehouse = entity.Warehouse{
			OrganizationID: org.ID,
			Name:           "Main Store",
			Location:       &location,
			IsDefault:      true,
		}
		if err := db.Create(&warehouse).Error; err != nil {
			return fmt.Errorf("failed to create default warehouse: %w", err)
		}
	}

	// Terminal at the default warehouse
	var terminal entity.POSTerminal
	if err := db.Where("organization_id = ? AND name = ?", org.ID, "Till 1").First(&terminal).Error; err != nil {
		location := "Front Counter"
		terminal = entity.POSTerminal{
			OrganizationID: org.ID,
			Name:           "Till 1",
			Location:       &location,
			Status:         "ACTIVE",
			WarehouseID:    &warehouse.ID,
		}
		if err := db.Create(&terminal).Error; err != nil {
			log.Printf("Warning: failed to create seed terminal: %v", err)
		}
	}

	// Sample products with opening stock
	products := []struct {
		sku      string
		name     string
		price    string
		taxRate  string
		quantity int
	}{
		{"BEV-001", "Bottled Water 500ml", "50.00", "16.00", 200},
		{"BEV-002", "Fresh Juice 300ml", "120.00", "16.00", 80},
		{"SNK-001", "Roasted Peanuts 100g", "80.00", "16.00", 150},
		{"BKY-001", "White Bread 400g", "65.00", "0.00", 60},
	}

	for _, p := range products {
		var existing entity.Product
		if err := db.Where("organization_id = ? AND sku = ?", org.ID, p.sku).First(&existing).Error; err == nil {
			continue
		}

		product := entity.Product{
			OrganizationID: org.ID,
			SKU:            p.sku,
			Name:           p.name,
			SellingPrice:   decimal.RequireFromString(p.price),
			TaxRate:        decimal.RequireFromString(p.taxRate),
			IsActive:       true,
			IsSellable:     true,
		}
		if err := db.Create(&product).Error; err != nil {
			log.Printf("Warning: failed to create seed product %s: %v", p.sku, err)
			continue
		}

		level := entity.StockLevel{
			OrganizationID: org.ID,
			ProductID:      product.ID,
			WarehouseID:    warehouse.ID,
			Quantity:       p.quantity,
		}
		if err := db.Create(&level).Error; err != nil {
			log.Printf("Warning: failed to create stock level for %s: %v", p.sku, err)
		}
	}

	// Cash is always available at the till
	var cashProvider entity.PaymentProvider
	if err := db.Where("organization_id = ? AND provider_type = ?", org.ID, enum.ProviderTypeCash).First(&cashProvider).Error; err != nil {
		cashProvider = entity.PaymentProvider{
			OrganizationID: org.ID,
			ProviderType:   enum.ProviderTypeCash,
			DisplayName:    "Cash",
			IsActive:       true,
			ForPOS:         true,
			ForEcommerce:   false,
			Config:         payment.Config{},
		}
		if err := db.Create(&cashProvider).Error; err != nil {
			log.Printf("Warning: failed to create cash provider: %v", err)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
