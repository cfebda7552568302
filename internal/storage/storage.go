// Package storage persists captured photos on disk and serves derived
// thumbnails. Originals live under the photos directory as
// <uuid>.jpg; metadata is kept in a YAML index alongside them.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	pkgerrors "github.com/snapbooth/snapbooth/pkg/errors"
)

const indexFile = "photos.yaml"

// Photo is the stored metadata for one captured image.
type Photo struct {
	ID        uuid.UUID `yaml:"id" json:"id"`
	Code      string    `yaml:"code" json:"code"`
	Filename  string    `yaml:"filename" json:"filename"`
	TakenAt   time.Time `yaml:"taken_at" json:"takenAt"`
	SizeBytes int64     `yaml:"size_bytes" json:"sizeBytes"`
}

type index struct {
	Photos []Photo `yaml:"photos"`
}

// Store owns the photos directory. All methods are safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	dir    string
	photos map[uuid.UUID]Photo
	byCode map[string]uuid.UUID
	order  []uuid.UUID
	thumbs *gocache.Cache
	logger *zerolog.Logger
}

// New opens (or creates) a photo store rooted at dir and loads its index.
func New(dir string, thumbnailTTL time.Duration, logger *zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating photos directory: %w", err)
	}

	s := &Store{
		dir:    dir,
		photos: make(map[uuid.UUID]Photo),
		byCode: make(map[string]uuid.UUID),
		thumbs: gocache.New(thumbnailTTL, 2*thumbnailTTL),
		logger: logger,
	}

	if err := s.loadIndex(); err != nil {
		return nil, err
	}

	logger.Info().
		Str("dir", dir).
		Int("photos", len(s.photos)).
		Msg("Photo store opened")

	return s, nil
}

func (s *Store) loadIndex() error {
	data, err := os.ReadFile(filepath.Join(s.dir, indexFile))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading photo index: %w", err)
	}

	var idx index
	if err := yaml.Unmarshal(data, &idx); err != nil {
		return fmt.Errorf("parsing photo index: %w", err)
	}

	for _, photo := range idx.Photos {
		s.photos[photo.ID] = photo
		s.byCode[photo.Code] = photo.ID
		s.order = append(s.order, photo.ID)
	}
	return nil
}

// saveIndex persists the index. Callers must hold s.mu.
func (s *Store) saveIndex() error {
	idx := index{Photos: make([]Photo, 0, len(s.order))}
	for _, id := range s.order {
		idx.Photos = append(idx.Photos, s.photos[id])
	}

	data, err := yaml.Marshal(idx)
	if err != nil {
		return fmt.Errorf("encoding photo index: %w", err)
	}

	// Write-then-rename so a crash never leaves a torn index.
	tmp := filepath.Join(s.dir, indexFile+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing photo index: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(s.dir, indexFile)); err != nil {
		return fmt.Errorf("replacing photo index: %w", err)
	}
	return nil
}

// Save persists a captured JPEG under a fresh ID and records it in the
// index with the given share code.
func (s *Store) Save(data []byte, code string) (Photo, error) {
	photo := Photo{
		ID:        uuid.New(),
		Code:      code,
		TakenAt:   time.Now().UTC(),
		SizeBytes: int64(len(data)),
	}
	photo.Filename = photo.ID.String() + ".jpg"

	if err := os.WriteFile(filepath.Join(s.dir, photo.Filename), data, 0o644); err != nil {
		return Photo{}, fmt.Errorf("writing photo: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.photos[photo.ID] = photo
	s.byCode[photo.Code] = photo.ID
	s.order = append(s.order, photo.ID)

	if err := s.saveIndex(); err != nil {
		// Roll back so a failed save is never served as a stored photo.
		delete(s.photos, photo.ID)
		delete(s.byCode, photo.Code)
		s.order = s.order[:len(s.order)-1]
		_ = os.Remove(filepath.Join(s.dir, photo.Filename))
		return Photo{}, err
	}

	s.logger.Info().
		Str("photo_id", photo.ID.String()).
		Str("code", photo.Code).
		Int64("size_bytes", photo.SizeBytes).
		Msg("Photo saved")

	return photo, nil
}

// Get returns the photo with the given ID.
func (s *Store) Get(id uuid.UUID) (Photo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	photo, ok := s.photos[id]
	if !ok {
		return Photo{}, fmt.Errorf("photo %s: %w", id, pkgerrors.ErrNotFound)
	}
	return photo, nil
}

// GetByCode returns the photo registered under a share code.
func (s *Store) GetByCode(code string) (Photo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byCode[code]
	if !ok {
		return Photo{}, fmt.Errorf("code %s: %w", code, pkgerrors.ErrNotFound)
	}
	return s.photos[id], nil
}

// List returns all photos, newest first.
func (s *Store) List() []Photo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	photos := make([]Photo, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		photos = append(photos, s.photos[s.order[i]])
	}
	return photos
}

// Count returns the number of stored photos.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.photos)
}

// ImagePath returns the on-disk path of a photo's original JPEG.
func (s *Store) ImagePath(id uuid.UUID) (string, error) {
	photo, err := s.Get(id)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.dir, photo.Filename), nil
}
