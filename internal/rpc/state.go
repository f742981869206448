package rpc

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	log "github.com/sirupsen/logrus"
)

// StateFileName is the picker state file inside the config directory.
const StateFileName = "rpc_state.json"

// StateFile is a StateStore backed by a JSON file mapping network names to
// picker state.
type StateFile struct {
	path string
	mu   sync.Mutex
}

// NewStateFile returns a StateFile at path. The file is created on first Save.
func NewStateFile(path string) *StateFile {
	return &StateFile{path: path}
}

// Load returns the state saved under key. A missing or unreadable file
// yields the zero state.
func (f *StateFile) Load(key string) PickerState {
	f.mu.Lock()
	defer f.mu.Unlock()
	states, err := f.read()
	if err != nil {
		log.WithError(err).Debug("ignoring fullnode picker state")
		return PickerState{}
	}
	return states[key]
}

// Save records st under key, keeping the entries of other keys.
func (f *StateFile) Save(key string, st PickerState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	states, err := f.read()
	if err != nil {
		states = make(map[string]PickerState)
	}
	states[key] = st

	data, err := json.MarshalIndent(states, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", f.path, err)
	}
	return nil
}

func (f *StateFile) read() (map[string]PickerState, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]PickerState), nil
	}
	if err != nil {
		return nil, err
	}
	states := make(map[string]PickerState)
	if err := json.Unmarshal(data, &states); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", f.path, err)
	}
	return states, nil
}
