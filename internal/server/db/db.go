package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/hash"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/roles"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/server/models"
)

// Open picks the driver from the DSN: a postgres URL goes through the
// postgres driver, anything else is treated as an SQLite file path.
func Open(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("empty database DSN")
	}

	cfg := &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	}

	var (
		conn *gorm.DB
		err  error
	)
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		conn, err = gorm.Open(postgres.Open(dsn), cfg)
	} else {
		conn, err = gorm.Open(sqlite.Open(dsn), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if sqlDB, err := conn.DB(); err == nil {
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	return conn, nil
}

func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.LoginAttempt{},
		&models.Client{},
		&models.Product{},
		&models.Invoice{},
		&models.InvoiceLine{},
	)
}

// Seed creates the initial admin account and a small demo catalog when
// the database is empty.
func Seed(conn *gorm.DB) error {
	var users int64
	if err := conn.Model(&models.User{}).Count(&users).Error; err != nil {
		return err
	}
	if users > 0 {
		return nil
	}

	pw, err := hash.Password("admin123")
	if err != nil {
		return err
	}
	admin := models.User{Username: "admin", PasswordHash: pw, Role: roles.Admin.String()}
	if err := conn.Create(&admin).Error; err != nil {
		return err
	}

	demo := []models.Product{
		{Reference: "BOOK-001", Label: "Hardcover notebook", UnitPrice: 12.50, Stock: 40},
		{Reference: "PEN-010", Label: "Fountain pen", UnitPrice: 24.00, Stock: 15},
		{Reference: "USB-032", Label: "32GB flash drive", UnitPrice: 9.90, Stock: 60},
	}
	return conn.Create(&demo).Error
}
