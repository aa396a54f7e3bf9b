// Package database opens SQL connections for the keystore's sql driver.
// It uses pure Go database drivers to keep builds CGO-free and wraps the
// connection with GORM.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	// Database drivers - pure Go implementations for CGO-free builds
	_ "github.com/go-sql-driver/mysql"                   // MySQL
	_ "github.com/jackc/pgx/v5/stdlib"                   // PostgreSQL
	_ "github.com/tursodatabase/libsql-client-go/libsql" // LibSQL/Turso
	_ "modernc.org/sqlite"                               // SQLite

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Common errors
var (
	ErrInvalidDriver = errors.New("invalid database driver")
	ErrInvalidConfig = errors.New("invalid database configuration")
)

// Open connects with cfg and returns a GORM handle over the pooled connection.
func Open(cfg Config) (*gorm.DB, error) {
	if cfg.URL != "" {
		cfg.Driver, cfg.URL = parseURLForDriver(cfg.URL)
	}

	sqlDB, err := NewSQL(cfg)
	if err != nil {
		return nil, err
	}

	gormDB, err := NewGORM(cfg, sqlDB)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}
	return gormDB, nil
}

// NewSQL creates a new SQL database connection with given config
func NewSQL(cfg Config) (*sql.DB, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	driverName, dsn, err := driverAndDSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	}
	if cfg.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Second)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// NewGORM creates a GORM instance from an existing SQL connection
func NewGORM(cfg Config, sqlDB *sql.DB) (*gorm.DB, error) {
	if sqlDB == nil {
		return nil, fmt.Errorf("sql.DB instance is required for GORM")
	}

	var dialector gorm.Dialector

	switch cfg.Driver {
	case "mysql":
		dialector = mysql.New(mysql.Config{Conn: sqlDB})
	case "postgres", "postgresql":
		dialector = postgres.New(postgres.Config{Conn: sqlDB})
	case "sqlite", "sqlite3", "libsql", "turso":
		dialector = sqlite.Dialector{Conn: sqlDB}
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidDriver, cfg.Driver)
	}

	gormCfg := &gorm.Config{}
	if cfg.Debug {
		gormCfg.Logger = logger.Default.LogMode(logger.Info)
	} else {
		gormCfg.Logger = logger.Default.LogMode(logger.Silent)
	}

	return gorm.Open(dialector, gormCfg)
}

// driverAndDSN maps cfg to a database/sql driver name and data source name.
func driverAndDSN(cfg Config) (string, string, error) {
	switch cfg.Driver {
	case "mysql":
		return "mysql", buildMySQLDSN(cfg), nil
	case "postgres", "postgresql":
		return "pgx", buildPostgresDSN(cfg), nil
	case "sqlite", "sqlite3":
		dsn := cfg.URL
		if dsn == "" {
			dsn = cfg.Database
		}
		if dsn == "" {
			dsn = "file:beaver-rsa.db?cache=shared&mode=rwc"
		}
		return "sqlite", dsn, nil
	case "libsql", "turso":
		dsn := cfg.URL
		if cfg.AuthToken != "" {
			dsn = fmt.Sprintf("%s?authToken=%s", cfg.URL, cfg.AuthToken)
		}
		return "libsql", dsn, nil
	default:
		return "", "", fmt.Errorf("%w: %s", ErrInvalidDriver, cfg.Driver)
	}
}

// parseURLForDriver picks the driver from a URL scheme and converts the URL
// into the DSN form that driver expects.
func parseURLForDriver(databaseURL string) (string, string) {
	u, err := url.Parse(databaseURL)
	if err != nil || u.Scheme == "" {
		return "sqlite", databaseURL
	}

	switch u.Scheme {
	case "postgres", "postgresql":
		return "postgres", databaseURL
	case "mysql":
		host := u.Host
		if u.Port() == "" {
			host += ":3306"
		}
		user := u.User.Username()
		pass, _ := u.User.Password()
		dsn := fmt.Sprintf("%s:%s@tcp(%s)%s", user, pass, host, u.Path)
		if u.RawQuery != "" {
			dsn += "?" + u.RawQuery
		}
		return "mysql", dsn
	case "libsql", "https", "wss", "ws":
		return "libsql", databaseURL
	case "sqlite", "sqlite3":
		return "sqlite", strings.TrimPrefix(strings.TrimPrefix(databaseURL, u.Scheme+"://"), u.Scheme+":")
	case "file":
		return "sqlite", databaseURL
	default:
		return "sqlite", databaseURL
	}
}

func validateConfig(cfg Config) error {
	if cfg.Driver == "" {
		return errors.New("database driver required")
	}

	switch cfg.Driver {
	case "libsql", "turso":
		if cfg.URL == "" {
			return errors.New("turso requires URL to be set")
		}
	case "sqlite", "sqlite3":
	default:
		if cfg.URL == "" && (cfg.Host == "" || cfg.Database == "") {
			return errors.New("database connection details required")
		}
	}

	return nil
}

func buildMySQLDSN(cfg Config) string {
	if cfg.URL != "" {
		return cfg.URL
	}

	port := cfg.Port
	if port == "" {
		port = "3306"
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s",
		cfg.Username, cfg.Password, cfg.Host, port, cfg.Database)

	params := []string{
		"charset=utf8mb4",
		"parseTime=True",
		"loc=Local",
	}
	if cfg.Params != "" {
		params = append(params, cfg.Params)
	}

	return dsn + "?" + strings.Join(params, "&")
}

func buildPostgresDSN(cfg Config) string {
	if cfg.URL != "" {
		return cfg.URL
	}

	port := cfg.Port
	if port == "" {
		port = "5432"
	}

	parts := []string{
		fmt.Sprintf("host=%s", cfg.Host),
		fmt.Sprintf("port=%s", port),
		fmt.Sprintf("user=%s", cfg.Username),
		fmt.Sprintf("password=%s", cfg.Password),
		fmt.Sprintf("dbname=%s", cfg.Database),
		fmt.Sprintf("sslmode=%s", cfg.SSLMode),
	}
	if cfg.Params != "" {
		parts = append(parts, cfg.Params)
	}

	return strings.Join(parts, " ")
}
