package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_IsSurvivesCopies(t *testing.T) {
	cause := errors.New("user not found")

	err := fmt.Errorf("service: %w", ErrUserNotFound.WithError(cause).WithDetails("id=42"))

	assert.True(t, Is(err, ErrUserNotFound))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, Is(err, ErrProfileNotFound))
	assert.Nil(t, ErrUserNotFound.Details, "предопределенная переменная не должна меняться")
	assert.Nil(t, ErrUserNotFound.Err)
}

func TestAppError_ErrorString(t *testing.T) {
	assert.Equal(t, "[user:NOT_FOUND] User not found", ErrUserNotFound.Error())

	wrapped := ErrUserNotFound.WithError(errors.New("boom"))
	assert.Equal(t, "[user:NOT_FOUND] User not found (boom)", wrapped.Error())
}

func TestAppError_MarshalJSONHidesCause(t *testing.T) {
	appErr := ValidationError(map[string]string{"email": "This field is required"}).
		WithError(errors.New("secret driver message"))

	data, err := json.Marshal(appErr)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"code": "VALIDATION_FAILED",
		"domain": "validation",
		"message": "Validation failed",
		"details": {"email": "This field is required"}
	}`, string(data))
}

func TestAsAppError(t *testing.T) {
	appErr, ok := AsAppError(fmt.Errorf("wrap: %w", ErrInsufficientPoints))
	require.True(t, ok)
	assert.Equal(t, CodeInsufficientPoints, appErr.Code)
	assert.Equal(t, http.StatusConflict, appErr.HTTPCode)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}

func TestHandleGinError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("client error keeps message", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

		(&GinErrorHandler{}).HandleGinError(c, ErrCategoryNotFound)

		assert.Equal(t, http.StatusNotFound, w.Code)
		var body ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Category not found", body.Error.Message)
		assert.Equal(t, CodeNotFound, body.Error.Code)
	})

	t.Run("server error is masked outside debug", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

		(&GinErrorHandler{Debug: false}).HandleGinError(c, errors.New("connection reset"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection reset")
		assert.Contains(t, w.Body.String(), "Internal server error")
	})
}
