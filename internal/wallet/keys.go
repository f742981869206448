package wallet

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// SchemeEd25519 is the only signature scheme suikit manages keys for.
const SchemeEd25519 = "ed25519"

// ed25519Flag prefixes the public key before hashing into an address.
const ed25519Flag byte = 0x00

// KeyPair is an Ed25519 key with its derived Sui address.
type KeyPair struct {
	Seed    []byte
	Public  ed25519.PublicKey
	Address string
}

// NewKeyPair generates a random Ed25519 key pair.
func NewKeyPair() (*KeyPair, error) {
	seed := make([]byte, ed25519.SeedSize)
	if _, err := rand.Read(seed); err != nil {
		return nil, fmt.Errorf("generating key: %w", err)
	}
	return keyPairFromSeed(seed), nil
}

// KeyPairFromHex rebuilds a key pair from a hex-encoded 32-byte seed.
func KeyPairFromHex(hexSeed string) (*KeyPair, error) {
	seed, err := hex.DecodeString(normaliseHexKey(hexSeed))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("%w: %d bytes, want %d", ErrInvalidKey, len(seed), ed25519.SeedSize)
	}
	return keyPairFromSeed(seed), nil
}

// SeedHex returns the 0x-prefixed hex seed.
func (k *KeyPair) SeedHex() string {
	return "0x" + hex.EncodeToString(k.Seed)
}

// Sign signs msg with the private key.
func (k *KeyPair) Sign(msg []byte) []byte {
	return ed25519.Sign(ed25519.NewKeyFromSeed(k.Seed), msg)
}

// DeriveAddress returns the Sui address of an Ed25519 public key:
// blake2b-256 over the scheme flag followed by the key.
func DeriveAddress(pub ed25519.PublicKey) string {
	buf := make([]byte, 0, 1+len(pub))
	buf = append(buf, ed25519Flag)
	buf = append(buf, pub...)
	sum := blake2b.Sum256(buf)
	return "0x" + hex.EncodeToString(sum[:])
}

func keyPairFromSeed(seed []byte) *KeyPair {
	pub := ed25519.NewKeyFromSeed(seed).Public().(ed25519.PublicKey)
	return &KeyPair{Seed: seed, Public: pub, Address: DeriveAddress(pub)}
}

func normaliseHexKey(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[:2] == "0x" || s[:2] == "0X") {
		return s[2:]
	}
	return s
}
