package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authorModel "catalog-backend/internal/domains/author/model"
	bookModel "catalog-backend/internal/domains/book/model"
	"catalog-backend/internal/domains/generation/model"
	"catalog-backend/internal/infrastructure/generative"
	"catalog-backend/internal/shared"
)

type fakeService struct {
	err     error
	spawned []string
	prompts []string
	ctxErr  error
}

func (f *fakeService) SpawnAuthorByName(ctx context.Context, name string) (*model.AuthorTree, error) {
	f.spawned = append(f.spawned, name)
	f.ctxErr = ctx.Err()
	if f.err != nil {
		return nil, f.err
	}
	return &model.AuthorTree{
		Author: authorModel.Author{ID: 1, Name: name, Slug: "j-r-r-tolkien"},
		Books:  []model.BookTree{{Book: bookModel.Book{ID: 2, AuthorID: 1, Title: "The Hobbit"}}},
	}, nil
}

func (f *fakeService) SpawnBookByTitle(_ context.Context, title string, authorID int64) (*model.BookTree, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &model.BookTree{Book: bookModel.Book{ID: 9, AuthorID: authorID, Title: title}}, nil
}

func (f *fakeService) SpawnCharactersForBook(_ context.Context, bookID int64) (*model.CharacterBatch, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &model.CharacterBatch{BookID: bookID}, nil
}

func (f *fakeService) IllustrateCatalog(context.Context) (*model.IllustrationReport, error) {
	return &model.IllustrationReport{}, nil
}

func (f *fakeService) Prompt(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return "reply to " + prompt, nil
}

func (f *fakeService) Image(_ context.Context, prompt string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("\x89PNG\r\n\x1a\n"), nil
}

type fakeQueue struct {
	err   error
	tasks []*asynq.Task
}

func (q *fakeQueue) Enqueue(task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if q.err != nil {
		return nil, q.err
	}
	q.tasks = append(q.tasks, task)
	return &asynq.TaskInfo{ID: "task-1", Queue: shared.QueueGeneration, Type: task.Type()}, nil
}

func newRouter(svc *fakeService, queue *fakeQueue) *gin.Engine {
	gin.SetMode(gin.TestMode)

	var h *GenerationHandler
	if queue == nil {
		h = NewGenerationHandler(svc, nil)
	} else {
		h = NewGenerationHandler(svc, queue)
	}

	r := gin.New()
	r.POST("/authors", h.SpawnAuthor)
	r.POST("/books", h.SpawnBook)
	r.POST("/books/:id/characters", h.SpawnCharacters)
	r.GET("/gpt/prompt", h.Prompt)
	r.GET("/gpt/image", h.Image)
	r.POST("/admin/jobs/illustrate", h.EnqueueIllustration)
	return r
}

func send(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSpawnAuthor_SyncIgnoresClientDisconnect(t *testing.T) {
	svc := &fakeService{}
	r := newRouter(svc, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/authors", bytes.NewBufferString(`{"name":"Tolkien"}`)).WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, svc.ctxErr)
}

func TestSpawnAuthor_Sync(t *testing.T) {
	svc := &fakeService{}
	r := newRouter(svc, &fakeQueue{})

	w := send(r, http.MethodPost, "/authors", map[string]interface{}{"name": "J.R.R. Tolkien"})
	require.Equal(t, http.StatusCreated, w.Code)

	var env struct {
		Data struct {
			Slug  string `json:"slug"`
			Books []struct {
				Title string `json:"title"`
			} `json:"books"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "j-r-r-tolkien", env.Data.Slug)
	require.Len(t, env.Data.Books, 1)
	assert.Equal(t, "The Hobbit", env.Data.Books[0].Title)
	assert.Equal(t, []string{"J.R.R. Tolkien"}, svc.spawned)
}

func TestSpawnAuthor_Async(t *testing.T) {
	svc := &fakeService{}
	queue := &fakeQueue{}
	r := newRouter(svc, queue)

	w := send(r, http.MethodPost, "/authors", map[string]interface{}{"name": "Tolkien", "async": true})
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), "task-1")
	assert.Empty(t, svc.spawned)

	require.Len(t, queue.tasks, 1)
	assert.Equal(t, shared.TypeSpawnAuthor, queue.tasks[0].Type())
}

func TestSpawnAuthor_AsyncWithoutQueue(t *testing.T) {
	r := newRouter(&fakeService{}, nil)

	w := send(r, http.MethodPost, "/authors", map[string]interface{}{"name": "Tolkien", "async": true})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "QUEUE_UNAVAILABLE")
}

func TestSpawnAuthor_Errors(t *testing.T) {
	tests := []struct {
		name string
		body interface{}
		err  error
		code int
		want string
	}{
		{"missing name", map[string]string{}, nil, http.StatusBadRequest, ""},
		{"blank seed", map[string]string{"name": " "}, model.ErrInvalidSeed, http.StatusBadRequest, "INVALID_SEED"},
		{"provider down", map[string]string{"name": "x"}, fmt.Errorf("generate author: %w", generative.ErrUnavailable), http.StatusBadGateway, "GENERATION_UNAVAILABLE"},
		{"malformed", map[string]string{"name": "x"}, fmt.Errorf("generate author: %w", model.ErrMalformedOutput), http.StatusUnprocessableEntity, "MALFORMED_GENERATION_OUTPUT"},
		{"store down", map[string]string{"name": "x"}, errors.Join(model.ErrPersistence, errors.New("conn refused")), http.StatusInternalServerError, "PERSISTENCE_FAILED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(&fakeService{err: tt.err}, nil)
			w := send(r, http.MethodPost, "/authors", tt.body)
			assert.Equal(t, tt.code, w.Code)
			if tt.want != "" {
				assert.Contains(t, w.Body.String(), tt.want)
			}
			assert.NotContains(t, w.Body.String(), "conn refused")
		})
	}
}

func TestSpawnBook(t *testing.T) {
	r := newRouter(&fakeService{}, nil)

	w := send(r, http.MethodPost, "/books", map[string]interface{}{"title": "The Silmarillion", "author_id": 1})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "The Silmarillion")

	w = send(r, http.MethodPost, "/books", map[string]interface{}{"title": "No author"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	r = newRouter(&fakeService{err: authorModel.ErrAuthorNotFound}, nil)
	w = send(r, http.MethodPost, "/books", map[string]interface{}{"title": "Orphan", "author_id": 42})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "AUTHOR_NOT_FOUND")
}

func TestSpawnCharacters(t *testing.T) {
	r := newRouter(&fakeService{}, nil)

	w := send(r, http.MethodPost, "/books/7/characters", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"book_id":7`)

	w = send(r, http.MethodPost, "/books/none/characters", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	r = newRouter(&fakeService{err: bookModel.ErrBookNotFound}, nil)
	w = send(r, http.MethodPost, "/books/7/characters", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPrompt(t *testing.T) {
	svc := &fakeService{}
	r := newRouter(svc, nil)

	w := send(r, http.MethodGet, "/gpt/prompt?prompt=hello", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "reply to hello")

	w = send(r, http.MethodGet, "/gpt/prompt", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, svc.prompts, 1)
}

func TestImage(t *testing.T) {
	r := newRouter(&fakeService{}, nil)

	w := send(r, http.MethodGet, "/gpt/image?prompt=A+red+dragon", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="a-red-dragon.png"`)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))
}

func TestEnqueueIllustration(t *testing.T) {
	queue := &fakeQueue{}
	r := newRouter(&fakeService{}, queue)

	w := send(r, http.MethodPost, "/admin/jobs/illustrate", nil)
	require.Equal(t, http.StatusAccepted, w.Code)
	require.Len(t, queue.tasks, 1)
	assert.Equal(t, shared.TypeIllustrateCatalog, queue.tasks[0].Type())

	r = newRouter(&fakeService{}, &fakeQueue{err: errors.New("redis down")})
	w = send(r, http.MethodPost, "/admin/jobs/illustrate", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
