// Package sql stores keypair records in a relational database through GORM.
package sql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gobeaver/beaver-rsa/database"
)

// DefaultTable is used when Config.Table is empty.
const DefaultTable = "keypairs"

// entry is one row: a prefixed key and its encoded record.
type entry struct {
	Key       string `gorm:"column:entry_key;primaryKey;size:191"`
	Value     []byte `gorm:"column:value"`
	UpdatedAt time.Time
}

// Store implements the keypair backend on top of GORM
type Store struct {
	db        *gorm.DB
	table     string
	keyPrefix string
}

// Config holds SQL backend specific configuration
type Config struct {
	Database  database.Config
	Table     string
	KeyPrefix string
}

// New opens the database and creates the table when missing
func New(cfg Config) (*Store, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}

	table := cfg.Table
	if table == "" {
		table = DefaultTable
	}

	if err := db.Table(table).AutoMigrate(&entry{}); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			sqlDB.Close()
		}
		return nil, fmt.Errorf("failed to migrate %s: %w", table, err)
	}

	return &Store{db: db, table: table, keyPrefix: cfg.KeyPrefix}, nil
}

func (s *Store) query(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Table(s.table)
}

// Get retrieves a value by key
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var e entry
	err := s.query(ctx).Where("entry_key = ?", s.keyPrefix+key).Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return e.Value, true, nil
}

// Set inserts or replaces the value stored under key
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	e := entry{Key: s.keyPrefix + key, Value: value, UpdatedAt: time.Now().UTC()}
	return s.query(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&e).Error
}

// Delete removes a key
func (s *Store) Delete(ctx context.Context, key string) error {
	return s.query(ctx).Where("entry_key = ?", s.keyPrefix+key).Delete(&entry{}).Error
}

// Keys lists stored keys without the backend prefix, sorted
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	var raw []string
	err := s.query(ctx).Where("entry_key LIKE ?", s.keyPrefix+"%").Order("entry_key").Pluck("entry_key", &raw).Error
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(raw))
	for _, k := range raw {
		// LIKE treats _ and % in the prefix as wildcards
		if strings.HasPrefix(k, s.keyPrefix) {
			keys = append(keys, strings.TrimPrefix(k, s.keyPrefix))
		}
	}
	return keys, nil
}

// Ping verifies the database connection is alive
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
