package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/danielerenburg1/address-checker/internal/neighborhood"
)

// FileStore implements Store over a single JSON file. Every mutation
// rewrites the whole file; writes go through a temp file and rename so a
// crash mid-write never corrupts the existing data.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// fileDocument is the on-disk shape of the neighborhoods file.
type fileDocument struct {
	Neighborhoods []neighborhood.Neighborhood `json:"neighborhoods"`
}

// NewFile creates a FileStore backed by the JSON file at path. The file
// is created on first mutation; a missing file reads as an empty set.
func NewFile(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Create(ctx context.Context, n neighborhood.Neighborhood) (*neighborhood.Neighborhood, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	n.ID = uuid.New().String()
	n.CreatedAt = time.Now().UTC()
	doc.Neighborhoods = append(doc.Neighborhoods, n)

	if err := s.save(doc); err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *FileStore) List(ctx context.Context) (neighborhood.Set, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return neighborhood.Set(doc.Neighborhoods), nil
}

func (s *FileStore) Get(ctx context.Context, id string) (*neighborhood.Neighborhood, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range doc.Neighborhoods {
		if doc.Neighborhoods[i].ID == id {
			return &doc.Neighborhoods[i], nil
		}
	}
	return nil, eris.Wrapf(ErrNotFound, "id %s", id)
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}

	kept := doc.Neighborhoods[:0]
	found := false
	for _, n := range doc.Neighborhoods {
		if n.ID == id {
			found = true
			continue
		}
		kept = append(kept, n)
	}
	if !found {
		return eris.Wrapf(ErrNotFound, "id %s", id)
	}

	doc.Neighborhoods = kept
	return s.save(doc)
}

// Migrate is a no-op for the file backend.
func (s *FileStore) Migrate(ctx context.Context) error { return nil }

func (s *FileStore) Close() error { return nil }

func (s *FileStore) load() (*fileDocument, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &fileDocument{}, nil
		}
		return nil, eris.Wrapf(err, "file store: read %s", s.path)
	}

	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrapf(err, "file store: parse %s", s.path)
	}
	return &doc, nil
}

func (s *FileStore) save(doc *fileDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return eris.Wrap(err, "file store: marshal")
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".neighborhoods-*.json")
	if err != nil {
		return eris.Wrap(err, "file store: create temp file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return eris.Wrap(err, "file store: write temp file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return eris.Wrap(err, "file store: close temp file")
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return eris.Wrapf(err, "file store: rename to %s", s.path)
	}
	return nil
}
