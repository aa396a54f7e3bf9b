package krypto

// powerFunc is the modular exponentiation used by the byte cipher.
type powerFunc func(base, exponent, modulus uint64) (uint64, error)

// Encrypt raises every byte of message to e modulo n independently.
// There is no padding and no chaining: equal bytes give equal ciphertext.
func Encrypt(message []byte, e, n uint64) ([]uint64, error) {
	return encryptWith(PowerMod, message, e, n)
}

// Decrypt raises every ciphertext element to d modulo n and truncates the
// result to a byte. A mismatched key yields wrong bytes, not an error.
func Decrypt(ciphertext []uint64, d, n uint64) ([]byte, error) {
	return decryptWith(PowerMod, ciphertext, d, n)
}

func encryptWith(pow powerFunc, message []byte, e, n uint64) ([]uint64, error) {
	if n == 0 {
		return nil, ErrDomain
	}
	c := make([]uint64, len(message))
	for i, b := range message {
		v, err := pow(uint64(b), e, n)
		if err != nil {
			return nil, err
		}
		c[i] = v
	}
	return c, nil
}

func decryptWith(pow powerFunc, ciphertext []uint64, d, n uint64) ([]byte, error) {
	if n == 0 {
		return nil, ErrDomain
	}
	m := make([]byte, len(ciphertext))
	for i, c := range ciphertext {
		v, err := pow(c, d, n)
		if err != nil {
			return nil, err
		}
		m[i] = byte(v)
	}
	return m, nil
}
