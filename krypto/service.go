package krypto

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
)

// Service defines the interface for textbook RSA byte encryption
type Service interface {
	Keypair() Keypair
	Encrypt(data []byte) ([]uint64, error)
	Decrypt(ciphertext []uint64) ([]byte, error)
	EncryptString(plaintext string) (ciphertextB64 string, err error)
	DecryptString(ciphertextB64 string) (string, error)
}

// ServiceOption configures a Service.
type ServiceOption func(*rsaService)

// WithLinearExponentiation makes the service use PowerModLinear, matching
// the cost profile of the naive algorithm.
func WithLinearExponentiation() ServiceOption {
	return func(s *rsaService) {
		s.pow = PowerModLinear
	}
}

// rsaService implements the Service interface over a single keypair
type rsaService struct {
	kp  Keypair
	pow powerFunc
}

// NewService creates a byte cipher service bound to kp
func NewService(kp Keypair, opts ...ServiceOption) (Service, error) {
	if err := kp.Validate(); err != nil {
		return nil, err
	}
	s := &rsaService{kp: kp, pow: PowerMod}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *rsaService) Keypair() Keypair {
	return s.kp
}

// Encrypt encrypts byte data with the public exponent
func (s *rsaService) Encrypt(data []byte) ([]uint64, error) {
	return encryptWith(s.pow, data, s.kp.E, s.kp.N)
}

// Decrypt decrypts ciphertext with the private exponent
func (s *rsaService) Decrypt(ciphertext []uint64) ([]byte, error) {
	return decryptWith(s.pow, ciphertext, s.kp.D, s.kp.N)
}

// EncryptString encrypts a string and returns the ciphertext words as base64
func (s *rsaService) EncryptString(plaintext string) (string, error) {
	c, err := s.Encrypt([]byte(plaintext))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(EncodeCiphertext(c)), nil
}

// DecryptString decrypts a base64 string produced by EncryptString
func (s *rsaService) DecryptString(ciphertextB64 string) (string, error) {
	if ciphertextB64 == "" {
		return "", fmt.Errorf("%w: empty input", ErrInvalidCiphertext)
	}

	raw, err := base64.StdEncoding.DecodeString(ciphertextB64)
	if err != nil {
		return "", fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	c, err := DecodeCiphertext(raw)
	if err != nil {
		return "", err
	}

	plaintext, err := s.Decrypt(c)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// EncodeCiphertext packs ciphertext words as big-endian 8-byte values.
func EncodeCiphertext(c []uint64) []byte {
	out := make([]byte, 8*len(c))
	for i, v := range c {
		binary.BigEndian.PutUint64(out[8*i:], v)
	}
	return out
}

// DecodeCiphertext is the inverse of EncodeCiphertext.
func DecodeCiphertext(raw []byte) ([]uint64, error) {
	if len(raw)%8 != 0 {
		return nil, fmt.Errorf("%w: length %d is not a multiple of 8", ErrInvalidCiphertext, len(raw))
	}
	c := make([]uint64, len(raw)/8)
	for i := range c {
		c[i] = binary.BigEndian.Uint64(raw[8*i:])
	}
	return c, nil
}
