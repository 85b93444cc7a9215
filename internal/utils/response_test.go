// internal/utils/response_test.go
package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/rishvigems/gems-backend/internal/i18n"
)

func testContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func TestNotFoundResponseUsesMessageKey(t *testing.T) {
	c, w := testContext()

	NotFoundResponse(c, i18n.KeyProductNotFound)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response APIResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.False(t, response.Success)
	assert.Equal(t, "NOT_FOUND", response.Error.Code)
	assert.NotEmpty(t, response.Error.Message)
}

func TestGetUserIDFromContext(t *testing.T) {
	c, _ := testContext()

	_, exists := GetUserIDFromContext(c)
	assert.False(t, exists)

	c.Set("user_id", "user-1")
	userID, exists := GetUserIDFromContext(c)
	assert.True(t, exists)
	assert.Equal(t, "user-1", userID)
}

func TestGetLangFromContextDefaultsToEnglish(t *testing.T) {
	c, _ := testContext()
	assert.Equal(t, "en", GetLangFromContext(c))

	c.Set("lang", "ta")
	assert.Equal(t, "ta", GetLangFromContext(c))
}
