package storage

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// thumbnailWidth is the target width of derived thumbnails; height scales
// to preserve aspect ratio.
const thumbnailWidth = 320

// Thumbnail returns a JPEG thumbnail for the photo, deriving and caching
// it on first access.
func (s *Store) Thumbnail(id uuid.UUID) ([]byte, error) {
	key := id.String()
	if cached, ok := s.thumbs.Get(key); ok {
		return cached.([]byte), nil
	}

	path, err := s.ImagePath(id)
	if err != nil {
		return nil, err
	}

	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("decoding photo %s: %w", id, err)
	}

	resized := imaging.Resize(img, thumbnailWidth, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("encoding thumbnail for %s: %w", id, err)
	}

	data := buf.Bytes()
	s.thumbs.Set(key, data, gocache.DefaultExpiration)

	s.logger.Debug().
		Str("photo_id", key).
		Int("size_bytes", len(data)).
		Msg("Thumbnail generated")

	return data, nil
}

// ThumbnailCacheSize returns the number of cached thumbnails.
func (s *Store) ThumbnailCacheSize() int {
	return s.thumbs.ItemCount()
}
