package handler_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"vixip/internal/handler"
	"vixip/mocks"
)

func healthRouter(generator *mocks.MockTextGenerator) *gin.Engine {
	h := handler.NewHealthHandler(generator)
	r := gin.New()
	r.GET("/healthz", h.Liveness)
	r.GET("/readyz", h.Readiness)
	return r
}

func TestLiveness(t *testing.T) {
	r := healthRouter(new(mocks.MockTextGenerator))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReadiness_BackendUp(t *testing.T) {
	generator := new(mocks.MockTextGenerator)
	generator.On("Healthy", mock.Anything).Return(nil)
	r := healthRouter(generator)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReadiness_BackendDown(t *testing.T) {
	generator := new(mocks.MockTextGenerator)
	generator.On("Healthy", mock.Anything).Return(errors.New("connection refused"))
	r := healthRouter(generator)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
