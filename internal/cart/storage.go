package cart

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// StorageKey is the fixed key carts are persisted under; each session gets its own namespace.
const StorageKey = "cart-storage"

const layoutVersion = 1

// Storage persists the line list of one cart. Implementations must return (nil, nil)
// for a key that was never saved.
type Storage interface {
	Load(ctx context.Context, key string) ([]Line, error)
	Save(ctx context.Context, key string, lines []Line) error
}

func SessionKey(sessionID string) string {
	return StorageKey + ":" + sessionID
}

type document struct {
	Version int    `json:"version"`
	Items   []Line `json:"items"`
}

// Encode renders lines in the persisted layout.
func Encode(lines []Line) ([]byte, error) {
	if lines == nil {
		lines = []Line{}
	}
	return json.Marshal(document{Version: layoutVersion, Items: lines})
}

// Decode accepts the versioned layout as well as the legacy bare array of lines.
func Decode(data []byte) ([]Line, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var lines []Line
		if err := json.Unmarshal(trimmed, &lines); err != nil {
			return nil, fmt.Errorf("decode legacy cart: %w", err)
		}
		return lines, nil
	}

	var doc document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	if doc.Version != layoutVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}
	return doc.Items, nil
}

// MemoryStorage keeps encoded carts in process memory.
type MemoryStorage struct {
	mu   sync.Mutex
	docs map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{docs: make(map[string][]byte)}
}

func (m *MemoryStorage) Load(ctx context.Context, key string) ([]Line, error) {
	m.mu.Lock()
	data, ok := m.docs[key]
	m.mu.Unlock()
	if !ok {
		return nil, nil
	}
	return Decode(data)
}

func (m *MemoryStorage) Save(ctx context.Context, key string, lines []Line) error {
	data, err := Encode(lines)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.docs[key] = data
	m.mu.Unlock()
	return nil
}
