package artifact

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"catalog-backend/internal/infrastructure/metrics"
	"catalog-backend/internal/infrastructure/storage"
)

// FileStore keeps artifacts under <dir>/<category>/<slug>.png.
type FileStore struct {
	dir       string
	processor *storage.ImageProcessor
	metrics   *metrics.Metrics
}

func NewFileStore(dir string, m *metrics.Metrics) *FileStore {
	return &FileStore{dir: dir, processor: storage.NewImageProcessor(), metrics: m}
}

// Dir is the public root, mounted by the HTTP server.
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) Exists(_ context.Context, category Category, name string) bool {
	key := Key(category, name)
	if key == "" {
		return false
	}
	_, err := os.Stat(filepath.Join(s.dir, filepath.FromSlash(key)))
	if err == nil {
		s.metrics.RecordArtifact(string(category), "hit")
	}
	return err == nil
}

// Store creates the file with O_EXCL so concurrent writers of the same key
// cannot both write; the loser sees a no-op.
func (s *FileStore) Store(ctx context.Context, category Category, name, payload string) error {
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

	target := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		s.metrics.RecordArtifact(string(category), "failed")
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, os.ErrExist) {
		return nil
	}
	if err != nil {
		s.metrics.RecordArtifact(string(category), "failed")
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	_, werr := f.Write(data)
	cerr := f.Close()
	if werr != nil || cerr != nil {
		// a truncated file would otherwise satisfy Exists forever
		_ = os.Remove(target)
		s.metrics.RecordArtifact(string(category), "failed")
		return fmt.Errorf("%w: %v", ErrWrite, errors.Join(werr, cerr))
	}

	s.metrics.RecordArtifact(string(category), "written")
	log.Info().Str("artifact", key).Int("bytes", len(data)).Msg("Artifact stored")
	return nil
}
