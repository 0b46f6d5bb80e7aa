package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mikey/frozen-screen-detector/internal/core"
	"go.uber.org/zap"
)

// HTTPMonitor exposes the detection service over HTTP for the surrounding
// monitoring system
type HTTPMonitor struct {
	service *core.FreezeDetectionService
	logger  *zap.Logger
	addr    string
	server  *http.Server
}

// NewHTTPMonitor creates a new HTTP monitor
func NewHTTPMonitor(service *core.FreezeDetectionService, logger *zap.Logger, addr string) *HTTPMonitor {
	return &HTTPMonitor{
		service: service,
		logger:  logger,
		addr:    addr,
	}
}

// checkRequest is the JSON body accepted by POST /check
type checkRequest struct {
	URL string `json:"url"`
}

// checkResponse is the JSON rendering of a detection result
type checkResponse struct {
	URL             string `json:"url"`
	IsFrozen        bool   `json:"is_frozen"`
	Reason          string `json:"reason,omitempty"`
	Category        string `json:"category"`
	FramesExtracted int    `json:"frames_extracted"`
	ElapsedMS       int64  `json:"elapsed_ms"`
	CheckedAt       string `json:"checked_at"`
	ProcessingID    string `json:"processing_id,omitempty"`
}

func toCheckResponse(result *core.DetectionResult) checkResponse {
	return checkResponse{
		URL:             result.URL,
		IsFrozen:        result.IsFrozen,
		Reason:          result.Reason,
		Category:        string(result.Category),
		FramesExtracted: result.FramesExtracted,
		ElapsedMS:       result.Elapsed.Milliseconds(),
		CheckedAt:       result.CheckedAt.Format(time.RFC3339),
		ProcessingID:    result.ProcessingID,
	}
}

// Router builds the HTTP routes served by the monitor
func (m *HTTPMonitor) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/check", m.handleCheckQuery)
	r.Post("/check", m.handleCheckBody)
	r.Delete("/cache", m.handleClearCache)

	return r
}

func (m *HTTPMonitor) handleCheckQuery(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		http.Error(w, "missing url parameter", http.StatusBadRequest)
		return
	}
	m.writeResult(w, r, url)
}

func (m *HTTPMonitor) handleCheckBody(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	m.writeResult(w, r, req.URL)
}

func (m *HTTPMonitor) writeResult(w http.ResponseWriter, r *http.Request, url string) {
	result := m.service.CheckStream(r.Context(), url)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(toCheckResponse(result)); err != nil {
		m.logger.Error("Failed to encode check response", zap.Error(err))
	}
}

func (m *HTTPMonitor) handleClearCache(w http.ResponseWriter, r *http.Request) {
	if err := m.service.ClearCache(r.Context()); err != nil {
		http.Error(w, "failed to clear cache", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Start begins serving HTTP requests in the background
func (m *HTTPMonitor) Start() error {
	m.server = &http.Server{
		Addr:    m.addr,
		Handler: m.Router(),
	}

	go func() {
		m.logger.Info("HTTP monitor listening", zap.String("address", m.addr))
		if err := m.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.logger.Error("HTTP monitor stopped unexpectedly", zap.Error(err))
		}
	}()

	return nil
}

// Stop gracefully shuts down the HTTP server
func (m *HTTPMonitor) Stop() error {
	if m.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.server.Shutdown(ctx)
}
