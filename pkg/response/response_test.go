package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"marketplace-settlement/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestOK(t *testing.T) {
	c, w := setupContext()
	c.Set("request_id", "req-1")

	OK(c, gin.H{"escrow_status": "held"})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "req-1", resp.RequestID)
	assert.NotEmpty(t, resp.Timestamp)

	data := resp.Data.(map[string]any)
	assert.Equal(t, "held", data["escrow_status"])
}

func TestCreated(t *testing.T) {
	c, w := setupContext()

	Created(c, gin.H{"id": "abc"})

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestError_AppError(t *testing.T) {
	c, w := setupContext()

	Error(c, apperror.ErrInvalidEscrowState("released"))

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ESC_001", resp.ErrorCode)
	assert.Contains(t, resp.Message, "released")
}

func TestError_WrappedAppError(t *testing.T) {
	c, w := setupContext()

	wrapped := errors.Join(errors.New("context"), apperror.ErrDuplicateRefund())
	Error(c, wrapped)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestError_UnknownError(t *testing.T) {
	c, w := setupContext()

	Error(c, errors.New("something unexpected"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "SYS_000", resp.ErrorCode)
	assert.NotContains(t, resp.Message, "something unexpected")
}

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	c, _ := setupContext()
	id := requestID(c)
	assert.NotEmpty(t, id)
}
