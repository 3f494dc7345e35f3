package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mgzon/backend/internal/model"
)

func TestContactHandler_Submit(t *testing.T) {
	var saved *model.ContactMessage
	svc := &mockContactService{
		submitFunc: func(ctx context.Context, msg *model.ContactMessage) error {
			msg.ID = "generated-id"
			msg.Status = model.StatusNew
			saved = msg
			return nil
		},
	}
	h := NewContactHandler(svc)

	body := `{"name":"Ann","email":"a@x.com","subject":"hi","message":"hello"}`
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	req.Header.Set("User-Agent", "curl/8")
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if saved == nil {
		t.Fatal("service was not called")
	}
	if saved.Name != "Ann" || saved.Email != "a@x.com" {
		t.Errorf("submitted fields not forwarded: %+v", saved)
	}
	if saved.IPAddress != "203.0.113.9" {
		t.Errorf("ip = %q, want first forwarded hop", saved.IPAddress)
	}
	if saved.UserAgent != "curl/8" {
		t.Errorf("user agent = %q", saved.UserAgent)
	}

	var resp model.ContactMessage
	decodeBody(t, rec, &resp)
	if resp.ID != "generated-id" || resp.Status != model.StatusNew {
		t.Errorf("response = %+v, want created message", resp)
	}
}

func TestContactHandler_Submit_InvalidJSON(t *testing.T) {
	called := false
	svc := &mockContactService{
		submitFunc: func(ctx context.Context, msg *model.ContactMessage) error {
			called = true
			return nil
		},
	}
	h := NewContactHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(`{"name":`))
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if called {
		t.Error("service must not be called for malformed JSON")
	}
}

func TestContactHandler_Submit_MessageTooLong(t *testing.T) {
	called := false
	svc := &mockContactService{
		submitFunc: func(ctx context.Context, msg *model.ContactMessage) error {
			called = true
			return nil
		},
	}
	h := NewContactHandler(svc)

	long := strings.Repeat("x", maxMessageLength+1)
	body := fmt.Sprintf(`{"name":"Ann","email":"a@x.com","subject":"hi","message":%q}`, long)
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "message_too_long") {
		t.Errorf("body = %s", rec.Body)
	}
	if called {
		t.Error("service must not be called for an oversized message")
	}
}

func TestContactHandler_Submit_ValidationError(t *testing.T) {
	svc := &mockContactService{
		submitFunc: func(ctx context.Context, msg *model.ContactMessage) error {
			return fmt.Errorf("%w: email is required", model.ErrValidation)
		},
	}
	h := NewContactHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/contact",
		strings.NewReader(`{"name":"Ann","subject":"hi"}`))
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "email is required") {
		t.Errorf("validation message missing: %s", rec.Body)
	}
}

func TestContactHandler_Submit_StoreFailureStaysGeneric(t *testing.T) {
	svc := &mockContactService{
		submitFunc: func(ctx context.Context, msg *model.ContactMessage) error {
			return errors.New("pq: out of disk")
		},
	}
	h := NewContactHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/contact",
		strings.NewReader(`{"name":"Ann","email":"a@x.com","subject":"hi","message":"hi"}`))
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "out of disk") {
		t.Errorf("store internals leaked: %s", rec.Body)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{"forwarded single hop", "10.0.0.1:443", "203.0.113.9", "203.0.113.9"},
		{"forwarded chain takes first", "10.0.0.1:443", "203.0.113.9, 10.0.0.1, 10.0.0.2", "203.0.113.9"},
		{"no header falls back to remote addr", "198.51.100.7:51234", "", "198.51.100.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if got := clientIP(req); got != tt.want {
				t.Errorf("clientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
