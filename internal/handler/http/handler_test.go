// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-directory-bot/internal/logger"
	"github.com/MKhiriev/go-directory-bot/internal/service"
	"github.com/MKhiriev/go-directory-bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mocks
// ─────────────────────────────────────────────

type mockDirectory struct {
	size     int
	degraded bool
}

func (m *mockDirectory) Reload(context.Context) int               { return m.size }
func (m *mockDirectory) Search(string, int) []models.ClientRecord { return nil }
func (m *mockDirectory) Size() int                                { return m.size }
func (m *mockDirectory) Degraded() bool                           { return m.degraded }

type mockRegistry struct {
	size int
}

func (m *mockRegistry) IsAuthorized(string) bool                { return false }
func (m *mockRegistry) Authorize(context.Context, string) error { return nil }
func (m *mockRegistry) Size() int                               { return m.size }

func newTestHandler(directory *mockDirectory, registry *mockRegistry) *Handler {
	services := &service.Services{DirectoryService: directory}
	return NewHandler(services, registry, "1.2.3", logger.Nop())
}

// ─────────────────────────────────────────────
// Routes
// ─────────────────────────────────────────────

func TestHealth_OK(t *testing.T) {
	h := newTestHandler(&mockDirectory{size: 12}, &mockRegistry{size: 3})
	srv := httptest.NewServer(h.Init())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var got healthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, healthResponse{Status: "ok", Records: 12, AuthorizedChats: 3}, got)
}

func TestHealth_DegradedWhenDirectoryEmpty(t *testing.T) {
	h := newTestHandler(&mockDirectory{size: 0, degraded: true}, &mockRegistry{})
	srv := httptest.NewServer(h.Init())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	var got healthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "degraded", got.Status)
	assert.Zero(t, got.Records)
}

func TestGetVersion(t *testing.T) {
	h := newTestHandler(&mockDirectory{}, &mockRegistry{})
	srv := httptest.NewServer(h.Init())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/version")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := make([]byte, 16)
	n, _ := resp.Body.Read(body)
	assert.Equal(t, "1.2.3", string(body[:n]))
}

func TestTraceID_GeneratedAndEchoed(t *testing.T) {
	h := newTestHandler(&mockDirectory{}, &mockRegistry{})
	srv := httptest.NewServer(h.Init())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.NotEmpty(t, resp.Header.Get(traceIDHeader), "a trace id is generated when absent")

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set(traceIDHeader, "trace-42")

	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, "trace-42", resp2.Header.Get(traceIDHeader), "a provided trace id is echoed back")
}

func TestRoutes_UnknownPathIs404(t *testing.T) {
	h := newTestHandler(&mockDirectory{}, &mockRegistry{})
	srv := httptest.NewServer(h.Init())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/data")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
