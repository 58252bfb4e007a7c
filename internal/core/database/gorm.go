package database

import (
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"products-api/internal/domain"
)

type Opts struct {
	Driver             string
	DSN                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	LogLevel           string
}

var ErrUnsupportedDriver = gorm.ErrInvalidDB

func NewGorm(o Opts) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch o.Driver {
	case "postgres":
		dial = postgres.Open(o.DSN)
	case "mysql":
		dial = mysql.Open(o.DSN)
	case "sqlite":
		dial = sqlite.Open(o.DSN)
	default:
		return nil, ErrUnsupportedDriver
	}
	lvl := logger.Warn
	switch o.LogLevel {
	case "silent":
		lvl = logger.Silent
	case "error":
		lvl = logger.Error
	case "info":
		lvl = logger.Info
	}
	db, err := gorm.Open(dial, &gorm.Config{
		Logger: logger.Default.LogMode(lvl),
		// timestamps are stored and served in UTC
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if o.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(o.MaxOpenConns)
	}
	if o.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(o.MaxIdleConns)
	}
	if o.ConnMaxLifetimeMin > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(o.ConnMaxLifetimeMin) * time.Minute)
	}
	db = db.Session(&gorm.Session{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
	})
	return db, nil
}

// MigrateProducts creates the products table and seeds the id sequence so the
// first store-assigned id is 100000.
func MigrateProducts(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.Product{}); err != nil {
		return err
	}
	return seedProductID(db)
}

// MigrateIdentity creates the identity tables (users, roles, user_roles).
func MigrateIdentity(db *gorm.DB) error {
	return db.AutoMigrate(&domain.User{}, &domain.Role{})
}

func seedProductID(db *gorm.DB) error {
	switch db.Dialector.Name() {
	case "mysql":
		return db.Exec("ALTER TABLE products AUTO_INCREMENT = 100000").Error
	case "postgres":
		return db.Exec(
			"SELECT setval(pg_get_serial_sequence('products','id'), GREATEST(COALESCE((SELECT MAX(id) FROM products), 99999), 99999), true)",
		).Error
	case "sqlite":
		return db.Exec(
			"INSERT INTO sqlite_sequence(name, seq) SELECT 'products', 99999 WHERE NOT EXISTS (SELECT 1 FROM sqlite_sequence WHERE name = 'products')",
		).Error
	}
	return nil
}
