package job

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hibiken/asynq"

	"catalog-backend/internal/domains/generation/model"
	"catalog-backend/internal/shared"
)

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// NewSpawnAuthorTask builds the async variant of an author cascade.
// Cascades are not retried: a retry would spawn a second author.
func NewSpawnAuthorTask(name, requestID string) (*asynq.Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.ErrInvalidSeed
	}
	payload, err := json.Marshal(shared.SpawnAuthorPayload{Name: name, RequestID: requestID})
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return asynq.NewTask(shared.TypeSpawnAuthor, payload,
		asynq.Queue(shared.QueueGeneration),
		asynq.MaxRetry(0),
		asynq.Timeout(15*time.Minute),
	), nil
}

// NewIllustrateCatalogTask builds the illustration backfill task.
// Existing images are skipped, so retries are safe.
func NewIllustrateCatalogTask(requestID string) (*asynq.Task, error) {
	payload, err := json.Marshal(shared.IllustrateCatalogPayload{RequestID: requestID})
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return asynq.NewTask(shared.TypeIllustrateCatalog, payload,
		asynq.Queue(shared.QueueGeneration),
		asynq.MaxRetry(2),
		asynq.Timeout(time.Hour),
	), nil
}
