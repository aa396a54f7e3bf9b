// Package keystore persists generated RSA keypairs under random IDs in a
// pluggable backend (memory, Redis, a SQL database or an S3 bucket).
package keystore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gobeaver/beaver-rsa/config"
	"github.com/gobeaver/beaver-rsa/keystore/driver/memory"
	"github.com/gobeaver/beaver-rsa/krypto"
)

const recordPrefix = "keypair:"

// Global instances
var (
	defaultStore *Keystore
	defaultOnce  sync.Once
	defaultErr   error
)

// Common errors
var (
	ErrNotInitialized = errors.New("keystore not initialized")
	ErrInvalidDriver  = errors.New("invalid keystore driver")
	ErrNotFound       = errors.New("keypair not found")
	ErrInvalidID      = errors.New("invalid keypair id")
	ErrLimitReached   = memory.ErrLimitReached
)

// Keystore stores keypair records in a Backend
type Keystore struct {
	backend Backend
	debug   bool
	now     func() time.Time
}

// Init initializes the global keystore with optional config
func Init(configs ...Config) error {
	defaultOnce.Do(func() {
		var cfg *Config
		if len(configs) > 0 {
			cfg = &configs[0]
		} else {
			cfg, defaultErr = GetConfig()
			if defaultErr != nil {
				return
			}
		}

		defaultStore, defaultErr = New(*cfg)
	})

	return defaultErr
}

// InitWithPrefix loads the keystore config using a custom env prefix
func InitWithPrefix(prefix string) error {
	cfg, err := GetConfig(config.LoadOptions{Prefix: prefix})
	if err != nil {
		return err
	}
	return Init(*cfg)
}

// New creates a keystore with the backend selected by cfg.Driver
func New(cfg Config) (*Keystore, error) {
	if cfg.Driver == "" {
		cfg.Driver = "memory"
	}

	var (
		backend Backend
		err     error
	)
	switch strings.ToLower(cfg.Driver) {
	case "memory", "builtin":
		backend, err = memoryRegister(cfg)
	case "redis":
		backend, err = redisRegister(cfg)
	case "sql", "database", "db":
		backend, err = sqlRegister(cfg)
	case "s3":
		backend, err = s3Register(cfg)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidDriver, cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if cfg.Debug {
		log.Printf("[KEYSTORE] using %s backend", cfg.Driver)
	}
	return NewWithBackend(backend, cfg.Debug), nil
}

// NewWithBackend wraps an existing backend
func NewWithBackend(backend Backend, debug bool) *Keystore {
	return &Keystore{
		backend: backend,
		debug:   debug,
		now:     time.Now,
	}
}

// Save validates kp and stores it under a fresh ID
func (k *Keystore) Save(ctx context.Context, kp krypto.Keypair, label string) (*Record, error) {
	if err := kp.Validate(); err != nil {
		return nil, err
	}

	rec := &Record{
		ID:        uuid.NewString(),
		Label:     label,
		E:         kp.E,
		D:         kp.D,
		N:         kp.N,
		CreatedAt: k.now().UTC(),
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode keypair: %w", err)
	}
	if err := k.backend.Set(ctx, recordPrefix+rec.ID, data); err != nil {
		return nil, fmt.Errorf("failed to save keypair: %w", err)
	}

	if k.debug {
		log.Printf("[KEYSTORE] saved keypair %s (N=%d)", rec.ID, rec.N)
	}
	return rec, nil
}

// Get loads the record stored under id
func (k *Keystore) Get(ctx context.Context, id string) (*Record, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	data, found, err := k.backend.Get(ctx, recordPrefix+id)
	if err != nil {
		return nil, fmt.Errorf("failed to load keypair %s: %w", id, err)
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode keypair %s: %w", id, err)
	}
	return &rec, nil
}

// Delete removes the record stored under id
func (k *Keystore) Delete(ctx context.Context, id string) error {
	if _, err := k.Get(ctx, id); err != nil {
		return err
	}
	if err := k.backend.Delete(ctx, recordPrefix+id); err != nil {
		return fmt.Errorf("failed to delete keypair %s: %w", id, err)
	}

	if k.debug {
		log.Printf("[KEYSTORE] deleted keypair %s", id)
	}
	return nil
}

// List returns every stored record, oldest first
func (k *Keystore) List(ctx context.Context) ([]*Record, error) {
	keys, err := k.backend.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list keypairs: %w", err)
	}

	records := make([]*Record, 0, len(keys))
	for _, key := range keys {
		id, ok := strings.CutPrefix(key, recordPrefix)
		if !ok {
			continue
		}
		rec, err := k.Get(ctx, id)
		if errors.Is(err, ErrNotFound) {
			// removed between Keys and Get
			continue
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].ID < records[j].ID
		}
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

// Service loads the keypair stored under id as a ready cipher service
func (k *Keystore) Service(ctx context.Context, id string, opts ...krypto.ServiceOption) (krypto.Service, error) {
	rec, err := k.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return krypto.NewService(rec.Keypair(), opts...)
}

// Ping checks if the backend is reachable
func (k *Keystore) Ping(ctx context.Context) error {
	return k.backend.Ping(ctx)
}

// Close closes the backend
func (k *Keystore) Close() error {
	return k.backend.Close()
}

// Default returns the global keystore instance
func Default() *Keystore {
	if defaultStore == nil {
		_ = Init()
	}
	return defaultStore
}

// Save stores kp in the global keystore
func Save(ctx context.Context, kp krypto.Keypair, label string) (*Record, error) {
	if defaultStore == nil {
		return nil, ErrNotInitialized
	}
	return defaultStore.Save(ctx, kp, label)
}

// Get loads a record from the global keystore
func Get(ctx context.Context, id string) (*Record, error) {
	if defaultStore == nil {
		return nil, ErrNotInitialized
	}
	return defaultStore.Get(ctx, id)
}

// Delete removes a record from the global keystore
func Delete(ctx context.Context, id string) error {
	if defaultStore == nil {
		return ErrNotInitialized
	}
	return defaultStore.Delete(ctx, id)
}

// List returns every record in the global keystore
func List(ctx context.Context) ([]*Record, error) {
	if defaultStore == nil {
		return nil, ErrNotInitialized
	}
	return defaultStore.List(ctx)
}

// Ping checks if the global keystore is reachable
func Ping(ctx context.Context) error {
	if defaultStore == nil {
		return ErrNotInitialized
	}
	return defaultStore.Ping(ctx)
}

// Reset clears the global instance (for testing)
func Reset() {
	if defaultStore != nil {
		defaultStore.Close()
	}
	defaultStore = nil
	defaultOnce = sync.Once{}
	defaultErr = nil
}

// Shutdown gracefully closes the global keystore
func Shutdown(ctx context.Context) error {
	if defaultStore == nil {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- defaultStore.Close()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// MustInit initializes the keystore and panics on error
func MustInit(configs ...Config) {
	if err := Init(configs...); err != nil {
		panic("failed to initialize keystore: " + err.Error())
	}
}
