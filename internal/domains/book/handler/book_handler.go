package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"catalog-backend/internal/domains/book/model"
	"catalog-backend/internal/domains/book/service"
	"catalog-backend/internal/shared/response"
	"catalog-backend/internal/shared/utils"
)

type BookHandler struct {
	service service.ServiceInterface
}

func NewBookHandler(svc service.ServiceInterface) *BookHandler {
	return &BookHandler{service: svc}
}

// GET /v1/books/:id
func (h *BookHandler) GetByID(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.ErrorWithDetails(c, http.StatusBadRequest, "Bad Request", "Invalid book id")
		return
	}

	detail, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Get book successfully", detail)
}

// GET /v1/books?author_id=&search=&limit=&offset=
func (h *BookHandler) List(c *gin.Context) {
	limit, offset := utils.ParsePagination(c)

	filter := model.BookFilter{
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	}
	if raw := c.Query("author_id"); raw != "" {
		authorID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.ErrorWithDetails(c, http.StatusBadRequest, "Bad Request", "Invalid author_id")
			return
		}
		filter.AuthorID = authorID
	}

	books, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, books, &response.Meta{
		Page:  offset/limit + 1,
		Limit: limit,
		Total: total,
	})
}

// PUT /v1/books/:id
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.ErrorWithDetails(c, http.StatusBadRequest, "Bad Request", "Invalid book id")
		return
	}

	var req model.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "Bad Request", err)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Update book successfully", updated)
}

// DELETE /v1/books/:id
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.ErrorWithDetails(c, http.StatusBadRequest, "Bad Request", "Invalid book id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Delete book successfully", nil)
}

func (h *BookHandler) fail(c *gin.Context, err error) {
	status := model.ToHTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("Book request failed")
		response.ErrorResponse(c, status, model.ToErrorCode(err), "Internal server error")
		return
	}
	response.ErrorResponse(c, status, model.ToErrorCode(err), err.Error())
}
