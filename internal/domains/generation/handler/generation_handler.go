package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"catalog-backend/internal/domains/generation/job"
	"catalog-backend/internal/domains/generation/model"
	"catalog-backend/internal/domains/generation/service"
	"catalog-backend/internal/shared/response"
	"catalog-backend/internal/shared/utils"
)

type GenerationHandler struct {
	service service.ServiceInterface
	queue   job.Enqueuer // nil khi Redis không khả dụng
}

func NewGenerationHandler(svc service.ServiceInterface, queue job.Enqueuer) *GenerationHandler {
	return &GenerationHandler{
		service: svc,
		queue:   queue,
	}
}

// SpawnAuthorRequest - POST /v1/authors
type SpawnAuthorRequest struct {
	Name  string `json:"name" binding:"required"`
	Async bool   `json:"async"`
}

// SpawnBookRequest - POST /v1/books
type SpawnBookRequest struct {
	Title    string `json:"title" binding:"required"`
	AuthorID int64  `json:"author_id" binding:"required"`
}

// ════════════════════════════════════════════════════════════════
// SPAWN: author → books → characters
// ════════════════════════════════════════════════════════════════

func (h *GenerationHandler) SpawnAuthor(c *gin.Context) {
	var req SpawnAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "Bad Request", err)
		return
	}

	if req.Async {
		h.enqueueSpawn(c, req.Name)
		return
	}

	// a cascade runs to completion even if the client disconnects
	tree, err := h.service.SpawnAuthorByName(context.WithoutCancel(c.Request.Context()), req.Name)
	if err != nil {
		h.fail(c, err)
		return
	}

	if failures := tree.AllFailures(); len(failures) > 0 {
		log.Warn().
			Int64("author_id", tree.ID).
			Int("failures", len(failures)).
			Str("request_id", c.GetString("request_id")).
			Msg("Author spawned with partial failures")
	}

	response.Success(c, http.StatusCreated, "Author generated successfully", tree)
}

func (h *GenerationHandler) enqueueSpawn(c *gin.Context, name string) {
	if h.queue == nil {
		response.ErrorResponse(c, http.StatusServiceUnavailable, "QUEUE_UNAVAILABLE", "Background queue is not configured")
		return
	}

	task, err := job.NewSpawnAuthorTask(name, c.GetString("request_id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	info, err := h.queue.Enqueue(task)
	if err != nil {
		log.Error().Err(err).Str("name", name).Msg("Failed to enqueue spawn task")
		response.ErrorResponse(c, http.StatusServiceUnavailable, "QUEUE_UNAVAILABLE", "Failed to enqueue task")
		return
	}

	response.Success(c, http.StatusAccepted, "Author generation queued", gin.H{
		"task_id": info.ID,
		"queue":   info.Queue,
	})
}

// POST /v1/books
func (h *GenerationHandler) SpawnBook(c *gin.Context) {
	var req SpawnBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "Bad Request", err)
		return
	}

	tree, err := h.service.SpawnBookByTitle(context.WithoutCancel(c.Request.Context()), req.Title, req.AuthorID)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Book generated successfully", tree)
}

// POST /v1/books/:id/characters
func (h *GenerationHandler) SpawnCharacters(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.ErrorWithDetails(c, http.StatusBadRequest, "Bad Request", "Invalid book id")
		return
	}

	batch, err := h.service.SpawnCharactersForBook(context.WithoutCancel(c.Request.Context()), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Characters generated successfully", batch)
}

// ════════════════════════════════════════════════════════════════
// PASSTHROUGH: /v1/gpt/*
// ════════════════════════════════════════════════════════════════

// GET /v1/gpt/prompt?prompt=
func (h *GenerationHandler) Prompt(c *gin.Context) {
	prompt := strings.TrimSpace(c.Query("prompt"))
	if prompt == "" {
		h.fail(c, model.ErrInvalidSeed)
		return
	}

	text, err := h.service.Prompt(c.Request.Context(), prompt)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Prompt completed", gin.H{"text": text})
}

// GET /v1/gpt/image?prompt=
func (h *GenerationHandler) Image(c *gin.Context) {
	prompt := strings.TrimSpace(c.Query("prompt"))
	if prompt == "" {
		h.fail(c, model.ErrInvalidSeed)
		return
	}

	png, err := h.service.Image(c.Request.Context(), prompt)
	if err != nil {
		h.fail(c, err)
		return
	}

	filename := utils.Slugify(utils.TruncateRunes(prompt, 64))
	if filename == "" {
		filename = "image"
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`.png"`)
	c.Data(http.StatusOK, "image/png", png)
}

// ════════════════════════════════════════════════════════════════
// ADMIN: POST /v1/admin/jobs/illustrate
// ════════════════════════════════════════════════════════════════

func (h *GenerationHandler) EnqueueIllustration(c *gin.Context) {
	if h.queue == nil {
		response.ErrorResponse(c, http.StatusServiceUnavailable, "QUEUE_UNAVAILABLE", "Background queue is not configured")
		return
	}

	task, err := job.NewIllustrateCatalogTask(c.GetString("request_id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	info, err := h.queue.Enqueue(task)
	if err != nil {
		log.Error().Err(err).Msg("Failed to enqueue illustration task")
		response.ErrorResponse(c, http.StatusServiceUnavailable, "QUEUE_UNAVAILABLE", "Failed to enqueue task")
		return
	}

	response.Success(c, http.StatusAccepted, "Illustration backfill queued", gin.H{
		"task_id": info.ID,
		"queue":   info.Queue,
	})
}

func (h *GenerationHandler) fail(c *gin.Context, err error) {
	status := model.ToHTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("Generation request failed")
		response.ErrorResponse(c, status, model.ToErrorCode(err), "Internal server error")
		return
	}
	response.ErrorResponse(c, status, model.ToErrorCode(err), err.Error())
}
