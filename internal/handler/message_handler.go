package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mgzon/backend/internal/model"
	"github.com/mgzon/backend/internal/repository"
	"github.com/mgzon/backend/internal/service"
	"github.com/mgzon/backend/pkg/pagination"
)

// MessageHandler handles the admin back-office endpoints for contact
// messages. Authentication is enforced upstream by the deployment's
// gateway; these handlers assume an already-authorized caller.
type MessageHandler struct {
	contactService service.ContactService
}

// NewMessageHandler creates a MessageHandler.
func NewMessageHandler(contactService service.ContactService) *MessageHandler {
	return &MessageHandler{contactService: contactService}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// respondServiceError maps workflow errors onto HTTP statuses. Validation
// problems keep their message; everything unexpected gets the generic
// fallback so store internals never leak to the client.
func respondServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, model.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "message_not_found")
	default:
		slog.Error("contact workflow failed", "error", err)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

// listResponse is the JSON response for GET /api/admin/messages.
type listResponse struct {
	Messages   []*model.ContactMessage `json:"messages"`
	Total      int                     `json:"total"`
	Page       int                     `json:"page"`
	TotalPages int                     `json:"total_pages"`
	Pagination []pagination.Item       `json:"pagination"`
}

// List handles GET /api/admin/messages.
// Query params: status (new/in_progress/resolved/spam/all), q (substring
// search), sort, dir (asc/desc), page, limit.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	opts := model.MessageListOptions{
		SearchText: r.URL.Query().Get("q"),
		SortField:  r.URL.Query().Get("sort"),
		SortDir:    r.URL.Query().Get("dir"),
	}

	if s := r.URL.Query().Get("status"); s != "" && s != "all" {
		status, err := model.ParseStatus(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		opts.Status = &status
	}

	page := 1
	limit := 20
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	opts.Skip = (page - 1) * limit
	opts.Limit = limit

	messages, total, err := h.contactService.List(r.Context(), opts)
	if err != nil {
		respondServiceError(w, err, "list_failed")
		return
	}

	// Return [] not null for empty lists
	if messages == nil {
		messages = []*model.ContactMessage{}
	}

	totalPages := pagination.TotalPages(total, limit)
	items := pagination.Plan(page, totalPages)
	if items == nil {
		items = []pagination.Item{}
	}
	writeJSON(w, http.StatusOK, listResponse{
		Messages:   messages,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
		Pagination: items,
	})
}

// Get handles GET /api/admin/messages/{id}.
func (h *MessageHandler) Get(w http.ResponseWriter, r *http.Request) {
	msg, err := h.contactService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err, "get_failed")
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

// UpdateStatus handles PATCH /api/admin/messages/{id}/status.
func (h *MessageHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	if err := h.contactService.SetStatus(r.Context(), r.PathValue("id"), req.Status); err != nil {
		respondServiceError(w, err, "update_failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

// ToggleResolved handles POST /api/admin/messages/{id}/toggle.
func (h *MessageHandler) ToggleResolved(w http.ResponseWriter, r *http.Request) {
	status, err := h.contactService.ToggleResolved(r.Context(), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err, "toggle_failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": status.String()})
}

// BulkUpdateStatus handles PATCH /api/admin/messages/status.
func (h *MessageHandler) BulkUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs    []string `json:"ids"`
		Status string   `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	if err := h.contactService.BulkSetStatus(r.Context(), req.IDs, req.Status); err != nil {
		respondServiceError(w, err, "bulk_update_failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": req.Status, "count": len(req.IDs)})
}

// AddNote handles POST /api/admin/messages/{id}/notes.
func (h *MessageHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	if err := h.contactService.AddNote(r.Context(), r.PathValue("id"), req.Content); err != nil {
		respondServiceError(w, err, "add_note_failed")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"ok": "true"})
}

// AddActivity handles POST /api/admin/messages/{id}/activities.
func (h *MessageHandler) AddActivity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type    string `json:"type"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	if err := h.contactService.AddActivity(r.Context(), r.PathValue("id"), req.Type, req.Content); err != nil {
		respondServiceError(w, err, "add_activity_failed")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"ok": "true"})
}

// Reply handles POST /api/admin/messages/{id}/reply.
func (h *MessageHandler) Reply(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Body string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	if err := h.contactService.Reply(r.Context(), r.PathValue("id"), req.Body); err != nil {
		respondServiceError(w, err, "reply_failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"ok": "true"})
}

// Delete handles DELETE /api/admin/messages/{id}.
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.contactService.Delete(r.Context(), r.PathValue("id")); err != nil {
		respondServiceError(w, err, "delete_failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"ok": "true"})
}
