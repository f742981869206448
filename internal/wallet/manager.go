// Package wallet manages the suikit address book and Ed25519 signing keys.
package wallet

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/Mohsinsiddi/suikit/internal/chain"
)

// Wallet types.
const (
	TypeWatchOnly = "watch-only"
	TypeSigning   = "signing"
)

// Errors.
var (
	ErrWalletNotFound = errors.New("wallet not found")
	ErrWalletExists   = errors.New("wallet already exists")
	ErrInvalidKey     = errors.New("invalid private key")
	ErrInvalidAddress = errors.New("invalid address")
	ErrNotSigning     = errors.New("wallet has no private key")
	ErrNoKeystore     = errors.New("no keystore configured")
	ErrInvalidName    = errors.New("wallet name must not be empty")
)

// Wallet holds metadata for a single wallet.
type Wallet struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	Type      string `json:"type"`
	KeyRef    string `json:"key_ref,omitempty"` // keychain reference for signing wallets
	Scheme    string `json:"scheme,omitempty"`
	IsDefault bool   `json:"is_default"`
	CreatedAt string `json:"created_at"`
}

// Store is an interface for persisting wallets.
type Store interface {
	Load() ([]*Wallet, error)
	Save([]*Wallet) error
}

// Manager handles wallet CRUD.
type Manager struct {
	store    Store
	keystore KeyStore
	wallets  map[string]*Wallet
	loaded   bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithInMemoryStore keeps wallets and keys in memory.
func WithInMemoryStore() Option {
	return func(m *Manager) {
		m.store = &memStore{}
		if m.keystore == nil {
			m.keystore = NewInMemoryKeystore()
		}
	}
}

// WithStore sets a custom store.
func WithStore(s Store) Option {
	return func(m *Manager) {
		m.store = s
	}
}

// WithKeystore sets where private seeds are kept.
func WithKeystore(ks KeyStore) Option {
	return func(m *Manager) {
		m.keystore = ks
	}
}

// NewManager creates a new wallet manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		wallets: make(map[string]*Wallet),
		store:   &memStore{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Add registers a watch-only wallet. The address is normalized.
func (m *Manager) Add(name string, w *Wallet) error {
	if name == "" {
		return ErrInvalidName
	}
	if !chain.IsValidAddress(w.Address) {
		return fmt.Errorf("%w: %q", ErrInvalidAddress, w.Address)
	}
	if err := m.load(); err != nil {
		return err
	}
	if _, exists := m.wallets[name]; exists {
		return ErrWalletExists
	}
	w.Name = name
	w.Address = chain.NormalizeAddress(w.Address)
	if w.Type == "" {
		w.Type = TypeWatchOnly
	}
	if w.CreatedAt == "" {
		w.CreatedAt = now()
	}
	m.wallets[name] = w
	return m.persist()
}

// Generate creates a new Ed25519 signing wallet.
func (m *Manager) Generate(name string) (*Wallet, error) {
	kp, err := NewKeyPair()
	if err != nil {
		return nil, err
	}
	return m.addKeyPair(name, kp)
}

// AddWithKey imports a hex-encoded 32-byte Ed25519 seed as a signing wallet.
func (m *Manager) AddWithKey(name, hexSeed string) (*Wallet, error) {
	kp, err := KeyPairFromHex(hexSeed)
	if err != nil {
		return nil, err
	}
	return m.addKeyPair(name, kp)
}

// ExportKey returns the hex seed of a signing wallet.
func (m *Manager) ExportKey(name string) (string, error) {
	w, err := m.Get(name)
	if err != nil {
		return "", err
	}
	if w.Type != TypeSigning || w.KeyRef == "" {
		return "", fmt.Errorf("%w: %s", ErrNotSigning, name)
	}
	if m.keystore == nil {
		return "", ErrNoKeystore
	}
	return m.keystore.Retrieve(w.KeyRef)
}

// KeyPair loads the key pair of a signing wallet and checks it still matches
// the stored address.
func (m *Manager) KeyPair(name string) (*KeyPair, error) {
	seed, err := m.ExportKey(name)
	if err != nil {
		return nil, err
	}
	kp, err := KeyPairFromHex(seed)
	if err != nil {
		return nil, err
	}
	if w := m.wallets[name]; kp.Address != w.Address {
		return nil, fmt.Errorf("%w: stored key does not match %s", ErrInvalidKey, w.Address)
	}
	return kp, nil
}

// Get returns a wallet by name.
func (m *Manager) Get(name string) (*Wallet, error) {
	if err := m.load(); err != nil {
		return nil, err
	}
	w, ok := m.wallets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrWalletNotFound, name)
	}
	return w, nil
}

// Remove deletes a wallet by name, along with its stored key.
func (m *Manager) Remove(name string) error {
	w, err := m.Get(name)
	if err != nil {
		return err
	}
	if w.KeyRef != "" && m.keystore != nil {
		if err := m.keystore.Delete(w.KeyRef); err != nil {
			return err
		}
	}
	delete(m.wallets, name)
	return m.persist()
}

// List returns all wallets sorted by name.
func (m *Manager) List() []*Wallet {
	m.load() //nolint:errcheck
	out := make([]*Wallet, 0, len(m.wallets))
	for _, w := range m.wallets {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// SetDefault marks a wallet as the default.
func (m *Manager) SetDefault(name string) error {
	if _, err := m.Get(name); err != nil {
		return err
	}
	for _, w := range m.wallets {
		w.IsDefault = w.Name == name
	}
	return m.persist()
}

// Default returns the default wallet, or nil if none. A lone wallet is the
// default even when not marked.
func (m *Manager) Default() *Wallet {
	m.load() //nolint:errcheck
	for _, w := range m.wallets {
		if w.IsDefault {
			return w
		}
	}
	if len(m.wallets) == 1 {
		for _, w := range m.wallets {
			return w
		}
	}
	return nil
}

// --- internal ---

func (m *Manager) addKeyPair(name string, kp *KeyPair) (*Wallet, error) {
	if name == "" {
		return nil, ErrInvalidName
	}
	if m.keystore == nil {
		return nil, ErrNoKeystore
	}
	if err := m.load(); err != nil {
		return nil, err
	}
	if _, exists := m.wallets[name]; exists {
		return nil, ErrWalletExists
	}

	ref, err := m.keystore.Store(name, kp.SeedHex())
	if err != nil {
		return nil, fmt.Errorf("storing key: %w", err)
	}

	w := &Wallet{
		Name:      name,
		Address:   kp.Address,
		Type:      TypeSigning,
		KeyRef:    ref,
		Scheme:    SchemeEd25519,
		CreatedAt: now(),
	}
	m.wallets[name] = w
	if err := m.persist(); err != nil {
		return nil, err
	}
	return w, nil
}

func (m *Manager) load() error {
	if m.loaded {
		return nil
	}
	wallets, err := m.store.Load()
	if err != nil {
		return err
	}
	for _, w := range wallets {
		m.wallets[w.Name] = w
	}
	m.loaded = true
	return nil
}

func (m *Manager) persist() error {
	return m.store.Save(m.List())
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// --- in-memory store ---

type memStore struct {
	wallets []*Wallet
}

func (s *memStore) Load() ([]*Wallet, error) {
	return s.wallets, nil
}

func (s *memStore) Save(wallets []*Wallet) error {
	s.wallets = wallets
	return nil
}

// --- JSON file store ---

// JSONStore persists wallets to a JSON file.
type JSONStore struct {
	path string
}

// NewJSONStore creates a JSON-backed wallet store.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Load() ([]*Wallet, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var wallets []*Wallet
	if err := json.Unmarshal(data, &wallets); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	return wallets, nil
}

func (s *JSONStore) Save(wallets []*Wallet) error {
	data, err := json.MarshalIndent(wallets, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}
