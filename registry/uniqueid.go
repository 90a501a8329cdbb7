package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"alpaca-gateway/device"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// IDStore assigns each (type, number) slot a UUID the first time it is
// requested and keeps it for the life of the store. When path is set, the
// assignments are written to a YAML file so they survive restarts.
type IDStore struct {
	mu   sync.Mutex
	path string
	ids  map[string]string
}

type idFile struct {
	UniqueIDs map[string]string `yaml:"unique_ids"`
}

// OpenIDStore loads the store at path. A missing file yields an empty store;
// an empty path yields a store that never persists.
func OpenIDStore(path string) (*IDStore, error) {
	s := &IDStore{path: path, ids: make(map[string]string)}
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var f idFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	for k, v := range f.UniqueIDs {
		s.ids[k] = v
	}
	return s, nil
}

// UniqueID returns the ID of the slot, generating and saving one on first
// use.
func (s *IDStore) UniqueID(t device.Type, number uint32) (string, error) {
	key := fmt.Sprintf("%s/%d", t.PathSegment(), number)

	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.ids[key]; ok {
		return id, nil
	}
	id := uuid.NewString()
	s.ids[key] = id
	if err := s.saveLocked(); err != nil {
		delete(s.ids, key)
		return "", err
	}
	return id, nil
}

func (s *IDStore) saveLocked() error {
	if s.path == "" {
		return nil
	}
	data, err := yaml.Marshal(idFile{UniqueIDs: s.ids})
	if err != nil {
		return fmt.Errorf("encoding unique ids: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	return nil
}
