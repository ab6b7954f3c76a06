package crypto

import (
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20"
)

// seededReader yields a ChaCha20 keystream. Not suitable for real secrets:
// anyone who knows the seed can reproduce every byte.
type seededReader struct {
	cipher *chacha20.Cipher
}

// NewSeededReader returns a deterministic random stream derived from seed.
// Identical seeds produce identical streams.
func NewSeededReader(seed string) (io.Reader, error) {
	key := blake2b.Sum256([]byte(seed))
	nonce := make([]byte, chacha20.NonceSize)

	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce)
	if err != nil {
		return nil, fmt.Errorf("creating seeded cipher: %w", err)
	}
	return &seededReader{cipher: c}, nil
}

func (r *seededReader) Read(p []byte) (int, error) {
	clear(p)
	r.cipher.XORKeyStream(p, p)
	return len(p), nil
}
