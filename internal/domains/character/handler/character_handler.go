package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"catalog-backend/internal/domains/character/model"
	"catalog-backend/internal/domains/character/service"
	"catalog-backend/internal/shared/response"
	"catalog-backend/internal/shared/utils"
)

type CharacterHandler struct {
	service service.ServiceInterface
}

func NewCharacterHandler(svc service.ServiceInterface) *CharacterHandler {
	return &CharacterHandler{service: svc}
}

// GET /v1/characters/:id
func (h *CharacterHandler) GetByID(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.ErrorWithDetails(c, http.StatusBadRequest, "Bad Request", "Invalid character id")
		return
	}

	character, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Get character successfully", character)
}

// GET /v1/characters?book_id=&search=&limit=&offset=
func (h *CharacterHandler) List(c *gin.Context) {
	limit, offset := utils.ParsePagination(c)

	filter := model.CharacterFilter{
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	}
	if raw := c.Query("book_id"); raw != "" {
		bookID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.ErrorWithDetails(c, http.StatusBadRequest, "Bad Request", "Invalid book_id")
			return
		}
		filter.BookID = bookID
	}

	characters, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, characters, &response.Meta{
		Page:  offset/limit + 1,
		Limit: limit,
		Total: total,
	})
}

// PUT /v1/characters/:id
func (h *CharacterHandler) Update(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.ErrorWithDetails(c, http.StatusBadRequest, "Bad Request", "Invalid character id")
		return
	}

	var req model.UpdateCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "Bad Request", err)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Update character successfully", updated)
}

// DELETE /v1/characters/:id
func (h *CharacterHandler) Delete(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.ErrorWithDetails(c, http.StatusBadRequest, "Bad Request", "Invalid character id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Delete character successfully", nil)
}

func (h *CharacterHandler) fail(c *gin.Context, err error) {
	status := model.ToHTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("Character request failed")
		response.ErrorResponse(c, status, model.ToErrorCode(err), "Internal server error")
		return
	}
	response.ErrorResponse(c, status, model.ToErrorCode(err), err.Error())
}
