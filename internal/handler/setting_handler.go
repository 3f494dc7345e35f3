package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mgzon/backend/internal/model"
	"github.com/mgzon/backend/internal/service"
)

// SettingHandler serves the site configuration. Reads on the public path
// go through the settings cache; the admin path reads and writes the
// store directly.
type SettingHandler struct {
	settingService service.SettingService
}

// NewSettingHandler creates a SettingHandler.
func NewSettingHandler(settingService service.SettingService) *SettingHandler {
	return &SettingHandler{settingService: settingService}
}

// Get handles GET /api/settings (cached; read on every page render).
func (h *SettingHandler) Get(w http.ResponseWriter, r *http.Request) {
	setting, err := h.settingService.Get(r.Context())
	if err != nil {
		respondServiceError(w, err, "settings_unavailable")
		return
	}
	writeJSON(w, http.StatusOK, setting)
}

// GetFresh handles GET /api/admin/settings, bypassing the cache so the
// admin form always edits the stored values.
func (h *SettingHandler) GetFresh(w http.ResponseWriter, r *http.Request) {
	setting, err := h.settingService.GetFresh(r.Context())
	if err != nil {
		respondServiceError(w, err, "settings_unavailable")
		return
	}
	writeJSON(w, http.StatusOK, setting)
}

// Update handles PUT /api/admin/settings.
func (h *SettingHandler) Update(w http.ResponseWriter, r *http.Request) {
	var setting model.Setting
	if err := json.NewDecoder(r.Body).Decode(&setting); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	stored, err := h.settingService.Update(r.Context(), &setting)
	if err != nil {
		respondServiceError(w, err, "update_failed")
		return
	}
	writeJSON(w, http.StatusOK, stored)
}
