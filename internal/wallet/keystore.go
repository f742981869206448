package wallet

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/99designs/keyring"
)

const (
	keychainService = "suikit"
	// passwordEnv unlocks the encrypted file backend without a prompt.
	passwordEnv = "SUIKIT_KEYRING_PASSWORD"
	// backendEnv forces one keyring backend, e.g. "file".
	backendEnv = "SUIKIT_KEYRING_BACKEND"
)

// ErrKeyNotFound is returned when no key is stored under a reference.
var ErrKeyNotFound = errors.New("key not found")

// KeyStore persists private seeds outside of wallets.json.
type KeyStore interface {
	Store(name, hexSeed string) (string, error)
	Retrieve(ref string) (string, error)
	Delete(ref string) error
}

// Keystore wraps OS keychain access.
type Keystore struct {
	ring keyring.Keyring
}

// DefaultKeystore returns a keystore backed by the OS keychain. When no
// keychain service is reachable the encrypted file backend under dir is used.
func DefaultKeystore(dir string) (*Keystore, error) {
	cfg := keyring.Config{
		ServiceName:              keychainService,
		KeychainTrustApplication: true,
		FileDir:                  filepath.Join(dir, "keys"),
		FilePasswordFunc:         filePassword,
	}

	switch {
	case os.Getenv(backendEnv) != "":
		cfg.AllowedBackends = []keyring.BackendType{keyring.BackendType(os.Getenv(backendEnv))}
	case runtime.GOOS == "linux":
		// Headless Linux usually has no secret service.
		cfg.AllowedBackends = []keyring.BackendType{
			keyring.SecretServiceBackend,
			keyring.KWalletBackend,
			keyring.FileBackend,
		}
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		cfg.AllowedBackends = []keyring.BackendType{keyring.FileBackend}
		ring, err = keyring.Open(cfg)
		if err != nil {
			return nil, fmt.Errorf("opening keychain: %w", err)
		}
	}
	return &Keystore{ring: ring}, nil
}

// NewInMemoryKeystore returns a keystore that keeps keys in memory.
func NewInMemoryKeystore() *Keystore {
	return &Keystore{ring: keyring.NewArrayKeyring(nil)}
}

// Store saves a seed for a wallet name and returns its reference.
func (k *Keystore) Store(name, hexSeed string) (string, error) {
	ref := keychainService + "." + name
	err := k.ring.Set(keyring.Item{
		Key:         ref,
		Data:        []byte(hexSeed),
		Label:       "suikit wallet " + name,
		Description: "Ed25519 seed",
	})
	if err != nil {
		return "", fmt.Errorf("keychain store: %w", err)
	}
	return ref, nil
}

// Retrieve fetches a seed by its reference.
func (k *Keystore) Retrieve(ref string) (string, error) {
	item, err := k.ring.Get(ref)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, ref)
	}
	if err != nil {
		return "", fmt.Errorf("keychain retrieve: %w", err)
	}
	return string(item.Data), nil
}

// Delete removes a stored seed. Deleting a missing key is not an error.
func (k *Keystore) Delete(ref string) error {
	err := k.ring.Remove(ref)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) && !os.IsNotExist(err) {
		return fmt.Errorf("keychain delete: %w", err)
	}
	return nil
}

func filePassword(prompt string) (string, error) {
	if pw := os.Getenv(passwordEnv); pw != "" {
		return pw, nil
	}
	return keyring.TerminalPrompt(prompt)
}
