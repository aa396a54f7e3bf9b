package keystore

import (
	"context"
	"time"

	"github.com/gobeaver/beaver-rsa/krypto"
)

// Backend defines the byte storage the keystore persists records in
type Backend interface {
	// Get retrieves a value by key; found is false when the key is absent
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set stores a value, replacing any existing one
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a key
	Delete(ctx context.Context, key string) error

	// Keys lists every stored key
	Keys(ctx context.Context) ([]string, error)

	// Ping checks if the backend is reachable
	Ping(ctx context.Context) error

	// Close closes the backend connection
	Close() error
}

// Record is a stored keypair with its metadata
type Record struct {
	ID        string    `json:"id"`
	Label     string    `json:"label,omitempty"`
	E         uint64    `json:"e"`
	D         uint64    `json:"d"`
	N         uint64    `json:"n"`
	CreatedAt time.Time `json:"created_at"`
}

// Keypair returns the key material of the record
func (r Record) Keypair() krypto.Keypair {
	return krypto.Keypair{E: r.E, D: r.D, N: r.N}
}
