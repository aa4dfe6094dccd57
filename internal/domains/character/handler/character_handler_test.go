package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authorModel "catalog-backend/internal/domains/author/model"
	bookModel "catalog-backend/internal/domains/book/model"
	"catalog-backend/internal/domains/character/model"
	"catalog-backend/internal/domains/character/service"
	"catalog-backend/internal/domains/generation/repository"
)

func setupRouter(t *testing.T) (*gin.Engine, *model.Character) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	catalog := repository.NewMemoryCatalog()
	a, err := catalog.Authors().Create(ctx, &authorModel.Author{Name: "Frank Herbert"})
	require.NoError(t, err)
	b, err := catalog.Books().Create(ctx, &bookModel.Book{AuthorID: a.ID, Title: "Dune"})
	require.NoError(t, err)
	paul, err := catalog.Characters().Create(ctx, &model.Character{BookID: b.ID, Name: "Paul Atreides"})
	require.NoError(t, err)
	_, err = catalog.Characters().Create(ctx, &model.Character{BookID: b.ID, Name: "Chani"})
	require.NoError(t, err)

	h := NewCharacterHandler(service.NewCharacterService(catalog.Characters()))
	r := gin.New()
	r.GET("/characters", h.List)
	r.GET("/characters/:id", h.GetByID)
	r.PUT("/characters/:id", h.Update)
	r.DELETE("/characters/:id", h.Delete)
	return r, paul
}

func request(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
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

func TestCharacterHandler_GetByID(t *testing.T) {
	r, paul := setupRouter(t)

	w := request(r, http.MethodGet, "/characters/3", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Data model.Character `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, paul.ID, env.Data.ID)
	assert.Equal(t, "paul-atreides", env.Data.Slug)

	w = request(r, http.MethodGet, "/characters/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "CHARACTER_NOT_FOUND")
}

func TestCharacterHandler_List(t *testing.T) {
	r, _ := setupRouter(t)

	w := request(r, http.MethodGet, "/characters?book_id=2&search=chani", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Data []model.Character `json:"data"`
		Meta struct {
			Total int64 `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, int64(1), env.Meta.Total)
	require.Len(t, env.Data, 1)
	assert.Equal(t, "Chani", env.Data[0].Name)

	w = request(r, http.MethodGet, "/characters?book_id=dune", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCharacterHandler_Update(t *testing.T) {
	r, _ := setupRouter(t)

	w := request(r, http.MethodPut, "/characters/3", map[string]string{"role": "protagonist"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "protagonist")

	long := make([]rune, model.MaxDescriptionRunes+1)
	for i := range long {
		long[i] = 'x'
	}
	w = request(r, http.MethodPut, "/characters/3", map[string]string{"photo_description": string(long)})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestCharacterHandler_Delete(t *testing.T) {
	r, _ := setupRouter(t)

	require.Equal(t, http.StatusOK, request(r, http.MethodDelete, "/characters/3", nil).Code)
	assert.Equal(t, http.StatusNotFound, request(r, http.MethodGet, "/characters/3", nil).Code)
	assert.Equal(t, http.StatusBadRequest, request(r, http.MethodDelete, "/characters/zero", nil).Code)
}
