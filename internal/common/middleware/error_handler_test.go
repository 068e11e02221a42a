package middleware

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arverify-node/internal/common/errors"
)

func newRouter(t *testing.T, h gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zerolog.New(zerolog.NewTestWriter(t))

	r := gin.New()
	r.Use(RequestID(), Recovery(logger))
	r.GET("/x", HandleErrorWrapper(logger)(h))
	return r
}

func decode(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHandleErrorWrapperAppError(t *testing.T) {
	r := newRouter(t, func(c *gin.Context) {
		_ = c.Error(errors.New(errors.ErrCodeTipNotFound, "no tip"))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", "req-1")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "error", body.Status)
	assert.Equal(t, "no tip", body.Message)
	assert.Equal(t, errors.ErrCodeTipNotFound, body.Code)
	assert.Equal(t, "req-1", body.RequestID)
	assert.Equal(t, "req-1", w.Header().Get("X-Request-ID"))
}

func TestHandleErrorWrapperForeignError(t *testing.T) {
	r := newRouter(t, func(c *gin.Context) {
		_ = c.Error(stderrors.New("boom"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, errors.ErrCodeInternal, body.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestHandleErrorWrapperSuccessUntouched(t *testing.T) {
	r := newRouter(t, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"success"}`, w.Body.String())
}

func TestRecovery(t *testing.T) {
	r := newRouter(t, func(c *gin.Context) {
		panic("unexpected")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "error", decode(t, w).Status)
}
