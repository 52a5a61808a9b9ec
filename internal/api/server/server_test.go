package server_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/lampworks/moth-bridge/internal/api/server"
	"github.com/lampworks/moth-bridge/internal/logger"
	"github.com/lampworks/moth-bridge/internal/metrics"
	"github.com/lampworks/moth-bridge/internal/mocks"
)

func TestMain(m *testing.M) {
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

func TestRouter(t *testing.T) {
	tests := []struct {
		name   string
		config server.Config
		path   string
		status int
	}{
		{name: "health", config: server.Config{}, path: "/health", status: http.StatusOK},
		{name: "metrics enabled", config: server.Config{MetricsEnabled: true}, path: "/metrics", status: http.StatusOK},
		{name: "metrics custom path", config: server.Config{MetricsEnabled: true, MetricsPath: "/internal/metrics"}, path: "/internal/metrics", status: http.StatusOK},
		{name: "metrics disabled", config: server.Config{}, path: "/metrics", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s := server.New(tt.config, mocks.NewMockAPIExecutor(ctrl), mocks.NewMockForwarder(ctrl))
			w := httptest.NewRecorder()

			s.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.status, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestRouter_MetricsExposeCollectors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	metrics.PreviewsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()

	s := server.New(server.Config{MetricsEnabled: true}, mocks.NewMockAPIExecutor(ctrl), mocks.NewMockForwarder(ctrl))
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Contains(t, w.Body.String(), "moth_bridge_metadata_previews_total")
}

func TestShutdownWithoutStart(t *testing.T) {
	s := server.New(server.Config{}, nil, nil)
	assert.NoError(t, s.Shutdown(t.Context()))
}
