package gormstore

import (
	"errors"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrUnknownDriver is returned by [Open] for a driver name it cannot dial.
var ErrUnknownDriver = errors.New("unknown gorm driver")

// Config selects the database gorm opens.
type Config struct {
	Driver   string `env:"GORM_DRIVER" envDefault:"sqlite"` // sqlite, mysql or postgres
	DSN      string `env:"GORM_DSN,required"`
	IDColumn string `env:"GORM_ID_COLUMN" envDefault:"id"`
}

// Dialector returns the gorm dialector for cfg.
func Dialector(cfg Config) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "sqlite", "":
		return sqlite.Open(cfg.DSN), nil
	case "mysql":
		return mysql.Open(cfg.DSN), nil
	case "postgres":
		return postgres.Open(cfg.DSN), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
}

// Open opens the configured database with gorm's own logging silenced.
func Open(cfg Config) (*gorm.DB, error) {
	d, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(d, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("gormstore: open %s: %w", cfg.Driver, err)
	}
	return db, nil
}
