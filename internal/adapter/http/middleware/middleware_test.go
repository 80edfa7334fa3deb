package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"marketplace-settlement/internal/core/ports"
	"marketplace-settlement/internal/core/ports/mocks"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockToken := mocks.NewMockTokenService(ctrl)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	JWTAuth(mockToken, zerolog.Nop())(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, c.IsAborted())
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockToken := mocks.NewMockTokenService(ctrl)
	mockToken.EXPECT().Validate("bad-token").Return(nil, errors.New("token is malformed"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	c.Request.Header.Set("Authorization", "Bearer bad-token")

	JWTAuth(mockToken, zerolog.Nop())(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, c.IsAborted())
}

func TestJWTAuth_NonAdminRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockToken := mocks.NewMockTokenService(ctrl)
	mockToken.EXPECT().Validate("user-token").
		Return(&ports.TokenClaims{ActorID: "user-1", Role: "user"}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	c.Request.Header.Set("Authorization", "Bearer user-token")

	JWTAuth(mockToken, zerolog.Nop())(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.True(t, c.IsAborted())
}

func TestJWTAuth_AdminToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockToken := mocks.NewMockTokenService(ctrl)
	mockToken.EXPECT().Validate("admin-token").
		Return(&ports.TokenClaims{ActorID: "admin-7", Role: "admin"}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	c.Request.Header.Set("Authorization", "Bearer admin-token")

	JWTAuth(mockToken, zerolog.Nop())(c)

	assert.False(t, c.IsAborted())
	actorID, ok := c.Get(CtxActorID)
	assert.True(t, ok)
	assert.Equal(t, "admin-7", actorID)
	role, _ := c.Get(CtxRole)
	assert.Equal(t, "admin", role)
}

func TestRequestID_Generated(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RequestID()(c)

	id, ok := c.Get("request_id")
	assert.True(t, ok)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, w.Header().Get("X-Request-ID"))
}

func TestRequestID_Propagated(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("X-Request-ID", "req-abc")

	RequestID()(c)

	id, _ := c.Get("request_id")
	assert.Equal(t, "req-abc", id)
	assert.Equal(t, "req-abc", w.Header().Get("X-Request-ID"))
}

func TestRecovery_Panic(t *testing.T) {
	router := gin.New()
	router.Use(Recovery(zerolog.Nop()))
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "SYS_001")
}
