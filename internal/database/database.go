package database

import (
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Driver names the document store backend selected by a connection string.
type Driver string

const (
	DriverMongo    Driver = "mongo"
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

var (
	DB *gorm.DB
)

// DriverFor picks the backend from the scheme of a connection string.
func DriverFor(url string) (Driver, error) {
	switch {
	case strings.HasPrefix(url, "mongodb://"), strings.HasPrefix(url, "mongodb+srv://"):
		return DriverMongo, nil
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return DriverPostgres, nil
	case strings.HasPrefix(url, "sqlite://"), strings.HasPrefix(url, "file:"):
		return DriverSQLite, nil
	}
	return "", fmt.Errorf("unsupported database url scheme in %q", redact(url))
}

// Connect opens a gorm connection for a postgres or sqlite url and stores it in DB.
func Connect(url string) (*gorm.DB, error) {
	driver, err := DriverFor(url)
	if err != nil {
		return nil, err
	}

	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres:
		dialector = postgres.Open(url)
	case DriverSQLite:
		dialector = sqlite.Open(strings.TrimPrefix(url, "sqlite://"))
	default:
		return nil, fmt.Errorf("%s is not a relational backend", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	DB = db
	return db, nil
}

// Close releases the gorm connection pool if one is open.
func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// redact hides credentials in a connection string before it is logged.
func redact(url string) string {
	schemeEnd := strings.Index(url, "://")
	at := strings.LastIndex(url, "@")
	if schemeEnd < 0 || at < schemeEnd {
		return url
	}
	return url[:schemeEnd+3] + "***" + url[at:]
}
