// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/tg-lang-bot/internal/config"
	"github.com/MKhiriev/tg-lang-bot/internal/logger"
	"github.com/MKhiriev/tg-lang-bot/internal/workers"
	"github.com/MKhiriev/tg-lang-bot/models"
)

// ---- Fake dispatcher ----

type fakeDispatcher struct {
	mu     sync.Mutex
	events []models.Event
	err    error
}

func (d *fakeDispatcher) Dispatch(_ context.Context, event models.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.events = append(d.events, event)
	return nil
}

// ---- Helpers ----

const messageUpdate = `{
	"update_id": 7,
	"message": {
		"message_id": 10,
		"from": {"id": 42, "is_bot": false, "first_name": "John", "username": "john", "language_code": "en"},
		"chat": {"id": 42, "type": "private"},
		"date": 1700000000,
		"text": "hello"
	}
}`

func newTestRouter(d Dispatcher, secret string) http.Handler {
	h := NewHandler(d, config.Server{WebhookPath: "/webhook", WebhookSecret: secret}, logger.Nop())
	return h.Init()
}

func post(router http.Handler, path, body, secret string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set(secretTokenHeader, secret)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// ---- Webhook ----

func TestWebhook_DispatchesMessage(t *testing.T) {
	d := &fakeDispatcher{}
	router := newTestRouter(d, "")

	rr := post(router, "/webhook", messageUpdate, "")

	assert.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, d.events, 1)
	assert.Equal(t, 7, d.events[0].UpdateID)
	assert.Equal(t, models.EventMessage, d.events[0].Kind)
	assert.Equal(t, "hello", d.events[0].Text)
	assert.Equal(t, int64(42), d.events[0].Actor.ID)
	assert.NotEmpty(t, rr.Header().Get(traceIDHeader))
}

func TestWebhook_SecretToken(t *testing.T) {
	tests := []struct {
		name       string
		secret     string
		sent       string
		wantStatus int
		wantEvents int
	}{
		{name: "matching secret", secret: "s3cret", sent: "s3cret", wantStatus: http.StatusOK, wantEvents: 1},
		{name: "wrong secret", secret: "s3cret", sent: "guess", wantStatus: http.StatusUnauthorized},
		{name: "missing secret", secret: "s3cret", sent: "", wantStatus: http.StatusUnauthorized},
		{name: "no secret configured", secret: "", sent: "anything", wantStatus: http.StatusOK, wantEvents: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &fakeDispatcher{}
			rr := post(newTestRouter(d, tt.secret), "/webhook", messageUpdate, tt.sent)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Len(t, d.events, tt.wantEvents)
		})
	}
}

func TestWebhook_BadBody(t *testing.T) {
	d := &fakeDispatcher{}

	rr := post(newTestRouter(d, ""), "/webhook", "{not json", "")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, d.events)
}

func TestWebhook_UnsupportedUpdateAcknowledged(t *testing.T) {
	d := &fakeDispatcher{}
	body := `{"update_id": 8, "channel_post": {"message_id": 1, "chat": {"id": -100, "type": "channel"}, "date": 1}}`

	rr := post(newTestRouter(d, ""), "/webhook", body, "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, d.events)
}

func TestWebhook_DispatchErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "stopped", err: workers.ErrDispatcherStopped, wantStatus: http.StatusServiceUnavailable},
		{name: "other", err: errors.New("queue broken"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := post(newTestRouter(&fakeDispatcher{err: tt.err}, ""), "/webhook", messageUpdate, "")
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

// ---- Routes ----

func TestRoutes(t *testing.T) {
	router := newTestRouter(&fakeDispatcher{}, "")

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{name: "health check", method: http.MethodGet, path: "/healthz", wantStatus: http.StatusOK},
		{name: "GET on webhook is hidden", method: http.MethodGet, path: "/webhook", wantStatus: http.StatusNotFound},
		{name: "POST on health check is hidden", method: http.MethodPost, path: "/healthz", wantStatus: http.StatusNotFound},
		{name: "unknown path", method: http.MethodGet, path: "/nope", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestHealthz_Body(t *testing.T) {
	router := newTestRouter(&fakeDispatcher{}, "")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}

// failingWriter accepts headers but fails every body write.
type failingWriter struct {
	*httptest.ResponseRecorder
}

func (w failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset by peer")
}

func TestHealthz_WriteErrorLogged(t *testing.T) {
	var buf bytes.Buffer
	h := newTestHandler(&buf)
	w := failingWriter{ResponseRecorder: httptest.NewRecorder()}

	h.healthz(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, buf.String(), "error writing health check response")
	assert.Contains(t, buf.String(), "connection reset by peer")
}
