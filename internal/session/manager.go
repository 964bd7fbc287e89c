package session

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/leapstack-labs/promptfield/pkg/core"
)

// Record is the persisted editing-session state.
type Record struct {
	SystemPrompt  string              `json:"systemPrompt"`
	UserPrompt    string              `json:"userPrompt"`
	FieldMappings []core.FieldMapping `json:"fieldMappings"`
	Timestamp     time.Time           `json:"timestamp"`
}

// Manager stores and recalls session records through a KeyValueStore.
// Malformed or stale stored state is discarded silently; the caller
// recomputes mappings from scratch in that case.
type Manager struct {
	kv     KeyValueStore
	logger *slog.Logger
}

// NewManager creates a Manager over the given store.
func NewManager(kv KeyValueStore, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{kv: kv, logger: logger}
}

// NewKey mints a fresh editing-session key.
func NewKey() string {
	return uuid.New().String()
}

// Save persists the record under key, stamping it with the current
// time, and opportunistically sweeps entries past retention.
func (m *Manager) Save(key string, rec Record) error {
	rec.Timestamp = time.Now().UTC()

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode session state: %w", err)
	}
	if err := m.kv.Put(key, data, rec.Timestamp); err != nil {
		return err
	}

	if purged, err := m.kv.SweepExpired(RetentionWindow); err != nil {
		m.logger.Debug("session sweep failed", slog.String("error", err.Error()))
	} else if purged > 0 {
		m.logger.Debug("purged expired sessions", slog.Int("count", purged))
	}
	return nil
}

// Load returns the stored record for key, or nil when the entry is
// absent, older than the freshness window, or malformed.
func (m *Manager) Load(key string) *Record {
	data, err := m.kv.Get(key, FreshnessWindow)
	if err != nil {
		m.logger.Debug("session load failed", slog.String("error", err.Error()))
		return nil
	}
	if data == nil {
		return nil
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		m.logger.Debug("discarding malformed session state", slog.String("key", key))
		return nil
	}
	return &rec
}

// Sweep purges entries older than the retention window.
func (m *Manager) Sweep() (int, error) {
	return m.kv.SweepExpired(RetentionWindow)
}
