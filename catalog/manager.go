package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gridverse/spacesync/space/engine"
)

// Manager is a file-backed Directory: each space lives in
// <dir>/<spaceID>.json as a SpaceDefinition. Definitions are parsed once
// and cached for the process lifetime.
type Manager struct {
	dir       string
	snapshots map[string]*engine.SpaceSnapshot
	defs      map[string]*SpaceDefinition
	mu        sync.RWMutex
}

// NewManager creates a manager over an existing spaces directory.
func NewManager(dir string) (*Manager, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("spaces directory does not exist: %s", dir)
	}
	return &Manager{
		dir:       dir,
		snapshots: make(map[string]*engine.SpaceSnapshot),
		defs:      make(map[string]*SpaceDefinition),
	}, nil
}

// Describe loads a space definition by ID, consulting the cache first.
func (m *Manager) Describe(_ context.Context, spaceID string) (*engine.SpaceSnapshot, error) {
	m.mu.RLock()
	if snap, exists := m.snapshots[spaceID]; exists {
		m.mu.RUnlock()
		return snap, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring the write lock.
	if snap, exists := m.snapshots[spaceID]; exists {
		return snap, nil
	}

	data, err := os.ReadFile(filepath.Join(m.dir, spaceID+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSpaceNotFound
		}
		return nil, fmt.Errorf("failed to read space definition: %w", err)
	}

	var def SpaceDefinition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpace, err)
	}

	snap, err := def.Snapshot(spaceID)
	if err != nil {
		return nil, err
	}

	m.snapshots[spaceID] = snap
	m.defs[spaceID] = &def
	return snap, nil
}

// Definition returns the raw definition for a space, validated the same
// way Describe validates it.
func (m *Manager) Definition(ctx context.Context, spaceID string) (*SpaceDefinition, error) {
	if _, err := m.Describe(ctx, spaceID); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defs[spaceID], nil
}

// List returns the IDs of every space definition in the directory.
func (m *Manager) List() ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read spaces directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(entry.Name(), ".json"))
	}
	return ids, nil
}
