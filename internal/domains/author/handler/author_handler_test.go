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
	"github.com/xuri/excelize/v2"

	"catalog-backend/internal/domains/author/model"
	"catalog-backend/internal/domains/author/service"
	bookModel "catalog-backend/internal/domains/book/model"
	"catalog-backend/internal/domains/generation/repository"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code string `json:"code"`
	} `json:"error"`
	Meta *struct {
		Total int64 `json:"total"`
	} `json:"meta"`
}

func setupRouter(t *testing.T) (*gin.Engine, *repository.MemoryCatalog) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog := repository.NewMemoryCatalog()
	h := NewAuthorHandler(service.NewAuthorService(catalog.Authors(), catalog.Books()))

	r := gin.New()
	r.GET("/authors", h.List)
	r.GET("/authors/export", h.Export)
	r.GET("/authors/slug/:slug", h.GetBySlug)
	r.GET("/authors/:id", h.GetByID)
	r.PUT("/authors/:id", h.Update)
	r.DELETE("/authors/:id", h.Delete)
	return r, catalog
}

func seed(t *testing.T, catalog *repository.MemoryCatalog) *model.Author {
	t.Helper()
	ctx := context.Background()

	a, err := catalog.Authors().Create(ctx, &model.Author{Name: "J. R. R. Tolkien"})
	require.NoError(t, err)
	_, err = catalog.Books().Create(ctx, &bookModel.Book{AuthorID: a.ID, Title: "The Hobbit"})
	require.NoError(t, err)
	return a
}

func do(r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestAuthorHandler_GetByID(t *testing.T) {
	r, catalog := setupRouter(t)
	a := seed(t, catalog)

	w, env := do(r, http.MethodGet, "/authors/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var detail service.AuthorDetail
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Equal(t, a.ID, detail.ID)
	assert.Equal(t, "j-r-r-tolkien", detail.Slug)
	require.Len(t, detail.Books, 1)
	assert.Equal(t, "The Hobbit", detail.Books[0].Title)
}

func TestAuthorHandler_GetByID_Errors(t *testing.T) {
	r, _ := setupRouter(t)

	w, _ := do(r, http.MethodGet, "/authors/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env := do(r, http.MethodGet, "/authors/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "AUTHOR_NOT_FOUND", env.Error.Code)
}

func TestAuthorHandler_GetBySlug(t *testing.T) {
	r, catalog := setupRouter(t)
	seed(t, catalog)

	w, env := do(r, http.MethodGet, "/authors/slug/j-r-r-tolkien", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
}

func TestAuthorHandler_List(t *testing.T) {
	r, catalog := setupRouter(t)
	seed(t, catalog)
	_, err := catalog.Authors().Create(context.Background(), &model.Author{Name: "Ursula K. Le Guin"})
	require.NoError(t, err)

	w, env := do(r, http.MethodGet, "/authors?search=guin", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(1), env.Meta.Total)
}

func TestAuthorHandler_Update(t *testing.T) {
	r, catalog := setupRouter(t)
	seed(t, catalog)

	w, env := do(r, http.MethodPut, "/authors/1", map[string]string{"country": "gb"})
	require.Equal(t, http.StatusOK, w.Code)

	var updated model.Author
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	require.NotNil(t, updated.Country)
	assert.Equal(t, "GB", *updated.Country)

	w, env = do(r, http.MethodPut, "/authors/1", map[string]string{"birth_date": "3 Jan 1892"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestAuthorHandler_Delete(t *testing.T) {
	r, catalog := setupRouter(t)
	seed(t, catalog)

	w, _ := do(r, http.MethodDelete, "/authors/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	books, err := catalog.Books().ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, books)

	w, _ = do(r, http.MethodGet, "/authors/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthorHandler_Export(t *testing.T) {
	r, catalog := setupRouter(t)
	seed(t, catalog)

	w, _ := do(r, http.MethodGet, "/authors/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	name, err := f.GetCellValue("Authors", "B2")
	require.NoError(t, err)
	assert.Equal(t, "J. R. R. Tolkien", name)

	title, err := f.GetCellValue("Books", "B2")
	require.NoError(t, err)
	assert.Equal(t, "The Hobbit", title)
}
