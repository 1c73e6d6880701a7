package api

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, tc := range []struct {
		err  error
		code int
	}{
		{nil, 200},
		{errors.New("dial tcp: connection refused"), 503},
	} {
		router := gin.New()
		router.GET("/health", HealthHandler(stubPinger{err: tc.err}))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
		assert.Equal(t, tc.code, w.Code)
	}
}
