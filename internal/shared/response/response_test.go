package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Success(c, http.StatusCreated, "Created", map[string]int{"id": 7})

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Created", body["message"])
	assert.Equal(t, float64(7), body["data"].(map[string]any)["id"])
}

func TestErrorWithDetails_FlattensPlainErrors(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ErrorWithDetails(c, http.StatusBadGateway, "Generation failed", errors.New("provider down"))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	errBody := decode(t, w)["error"].(map[string]any)
	assert.Equal(t, "BAD_GATEWAY", errBody["code"])
	assert.Equal(t, "provider down", errBody["details"])
}

func TestErrorWithDetails_KeepsValidationErrors(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ErrorWithDetails(c, http.StatusBadRequest, "Validation failed", validation.Errors{"name": errors.New("cannot be blank")})

	errBody := decode(t, w)["error"].(map[string]any)
	assert.Equal(t, "cannot be blank", errBody["details"].(map[string]any)["name"])
}
