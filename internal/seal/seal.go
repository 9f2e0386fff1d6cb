// Package seal encrypts ledger files with a locally stored symmetric key.
//
// The key file holds 32 random bytes, base64url encoded. It is generated on
// first use and reused thereafter. Losing the key file makes every file sealed
// with it permanently unrecoverable.
package seal

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/crypto/chacha20poly1305"
)

var (
	// ErrInvalidKey is returned when the key file does not hold a 32-byte key.
	ErrInvalidKey = errors.New("invalid key: must be 32 bytes")
	// ErrCiphertextTooShort is returned for blobs shorter than a nonce.
	ErrCiphertextTooShort = errors.New("ciphertext too short")
)

var encoding = base64.URLEncoding

// KeyFile is the on-disk location of the symmetric key.
type KeyFile struct {
	path string
}

// NewKeyFile returns a KeyFile rooted at path.
func NewKeyFile(path string) *KeyFile {
	return &KeyFile{path: path}
}

// Path returns the key file location.
func (k *KeyFile) Path() string {
	return k.path
}

// Read returns the stored key. A missing file yields an fs.ErrNotExist error.
func (k *KeyFile) Read() ([]byte, error) {
	data, err := os.ReadFile(k.path)
	if err != nil {
		return nil, fmt.Errorf("reading key file: %w", err)
	}
	key, err := encoding.DecodeString(string(bytes.TrimSpace(data)))
	if err != nil {
		return nil, fmt.Errorf("decoding key file: %w", ErrInvalidKey)
	}
	if len(key) != chacha20poly1305.KeySize {
		return nil, ErrInvalidKey
	}
	return key, nil
}

// LoadOrCreate returns the stored key, generating and persisting a new one if
// the file does not exist.
func (k *KeyFile) LoadOrCreate() ([]byte, error) {
	key, err := k.Read()
	if err == nil {
		return key, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	key = make([]byte, chacha20poly1305.KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generating key: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(k.path), 0o700); err != nil {
		return nil, fmt.Errorf("creating key dir: %w", err)
	}
	if err := os.WriteFile(k.path, []byte(encoding.EncodeToString(key)+"\n"), 0o600); err != nil {
		return nil, fmt.Errorf("writing key file: %w", err)
	}
	return key, nil
}

// Box seals and opens byte blobs with XChaCha20-Poly1305.
type Box struct {
	keys *KeyFile
}

// NewBox creates a Box whose key is read (or created) on each call.
func NewBox(keys *KeyFile) *Box {
	return &Box{keys: keys}
}

// Seal encrypts plaintext and returns base64url(nonce || ciphertext).
func (b *Box) Seal(plaintext []byte) ([]byte, error) {
	key, err := b.keys.LoadOrCreate()
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}
	sealed := aead.Seal(nonce, nonce, plaintext, nil)

	out := make([]byte, encoding.EncodedLen(len(sealed)))
	encoding.Encode(out, sealed)
	return out, nil
}

// Open decrypts a blob produced by Seal. Tampered data, a wrong key, or a
// malformed blob all return an error.
func (b *Box) Open(blob []byte) ([]byte, error) {
	key, err := b.keys.LoadOrCreate()
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	blob = bytes.TrimSpace(blob)
	sealed := make([]byte, encoding.DecodedLen(len(blob)))
	n, err := encoding.Decode(sealed, blob)
	if err != nil {
		return nil, fmt.Errorf("decoding ciphertext: %w", err)
	}
	sealed = sealed[:n]

	if len(sealed) < aead.NonceSize() {
		return nil, ErrCiphertextTooShort
	}
	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decrypting: %w", err)
	}
	return plaintext, nil
}
