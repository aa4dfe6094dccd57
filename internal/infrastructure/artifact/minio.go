package artifact

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"catalog-backend/internal/infrastructure/metrics"
	"catalog-backend/internal/infrastructure/storage"
)

// ObjectStorage is the subset of storage.MinIOStorage used here.
type ObjectStorage interface {
	Exists(ctx context.Context, key string) (bool, error)
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// ObjectStore keeps artifacts in a MinIO bucket. Stat-then-put assumes a
// single writer per key.
type ObjectStore struct {
	objects   ObjectStorage
	processor *storage.ImageProcessor
	metrics   *metrics.Metrics
}

func NewObjectStore(objects ObjectStorage, m *metrics.Metrics) *ObjectStore {
	return &ObjectStore{objects: objects, processor: storage.NewImageProcessor(), metrics: m}
}

func (s *ObjectStore) Exists(ctx context.Context, category Category, name string) bool {
	key := Key(category, name)
	if key == "" {
		return false
	}
	ok, err := s.objects.Exists(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("artifact", key).Msg("Artifact lookup failed, treating as absent")
		return false
	}
	if ok {
		s.metrics.RecordArtifact(string(category), "hit")
	}
	return ok
}

func (s *ObjectStore) Store(ctx context.Context, category Category, name, payload string) error {
	key := Key(category, name)
	if key == "" {
		return fmt.Errorf("%w: %q has no slug", ErrWrite, name)
	}
	if s.Exists(ctx, category, name) {
		return nil
	}

	data, err := decodePayload(s.processor, payload)
	if err != nil {
		s.metrics.RecordArtifact(string(category), "failed")
		return err
	}

	url, err := s.objects.Upload(ctx, key, data, defaultContentType)
	if err != nil {
		s.metrics.RecordArtifact(string(category), "failed")
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	s.metrics.RecordArtifact(string(category), "written")
	log.Info().Str("artifact", key).Str("url", url).Msg("Artifact stored")
	return nil
}
