package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authorModel "catalog-backend/internal/domains/author/model"
	"catalog-backend/internal/domains/generation/model"
	"catalog-backend/internal/infrastructure/generative"
	"catalog-backend/internal/shared"
)

type fakeGeneration struct {
	spawnErr    error
	spawned     []string
	illustrated int
}

func (f *fakeGeneration) SpawnAuthorByName(_ context.Context, name string) (*model.AuthorTree, error) {
	f.spawned = append(f.spawned, name)
	if f.spawnErr != nil {
		return nil, f.spawnErr
	}
	return &model.AuthorTree{Author: authorModel.Author{ID: 1, Name: name}}, nil
}

func (f *fakeGeneration) SpawnBookByTitle(context.Context, string, int64) (*model.BookTree, error) {
	return nil, errors.New("not used")
}

func (f *fakeGeneration) SpawnCharactersForBook(context.Context, int64) (*model.CharacterBatch, error) {
	return nil, errors.New("not used")
}

func (f *fakeGeneration) IllustrateCatalog(context.Context) (*model.IllustrationReport, error) {
	f.illustrated++
	return &model.IllustrationReport{Generated: 1}, nil
}

func (f *fakeGeneration) Prompt(context.Context, string) (string, error) { return "", nil }
func (f *fakeGeneration) Image(context.Context, string) ([]byte, error)  { return nil, nil }

func TestNewSpawnAuthorTask(t *testing.T) {
	task, err := NewSpawnAuthorTask("  Tolkien ", "req-1")
	require.NoError(t, err)
	assert.Equal(t, shared.TypeSpawnAuthor, task.Type())

	var payload shared.SpawnAuthorPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, "Tolkien", payload.Name)
	assert.Equal(t, "req-1", payload.RequestID)

	_, err = NewSpawnAuthorTask(" ", "")
	assert.ErrorIs(t, err, model.ErrInvalidSeed)
}

func TestSpawnAuthorHandler(t *testing.T) {
	task, err := NewSpawnAuthorTask("Tolkien", "")
	require.NoError(t, err)

	gen := &fakeGeneration{}
	require.NoError(t, NewSpawnAuthorHandler(gen).ProcessTask(context.Background(), task))
	assert.Equal(t, []string{"Tolkien"}, gen.spawned)
}

func TestSpawnAuthorHandler_Errors(t *testing.T) {
	task, _ := NewSpawnAuthorTask("Tolkien", "")

	gen := &fakeGeneration{spawnErr: fmt.Errorf("generate author: %w", model.ErrMalformedOutput)}
	err := NewSpawnAuthorHandler(gen).ProcessTask(context.Background(), task)
	assert.ErrorIs(t, err, asynq.SkipRetry)

	gen = &fakeGeneration{spawnErr: fmt.Errorf("%w: chat: timeout", generative.ErrUnavailable)}
	err = NewSpawnAuthorHandler(gen).ProcessTask(context.Background(), task)
	assert.ErrorIs(t, err, model.ErrGenerationUnavailable)
	assert.NotErrorIs(t, err, asynq.SkipRetry)

	bad := asynq.NewTask(shared.TypeSpawnAuthor, []byte("{"))
	err = NewSpawnAuthorHandler(&fakeGeneration{}).ProcessTask(context.Background(), bad)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestIllustrateCatalogHandler(t *testing.T) {
	task, err := NewIllustrateCatalogTask("req-2")
	require.NoError(t, err)
	assert.Equal(t, shared.TypeIllustrateCatalog, task.Type())

	gen := &fakeGeneration{}
	require.NoError(t, NewIllustrateCatalogHandler(gen).ProcessTask(context.Background(), task))
	assert.Equal(t, 1, gen.illustrated)
}
