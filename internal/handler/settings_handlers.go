package handler

import (
	"encoding/json"
	"net/http"

	"github.com/lodgeworks/roomkeeper/internal/handler/dto"
)

// handleGetNotificationSettings reports whether push delivery is enabled.
// @Summary Get notification settings
// @Tags settings
// @Produce json
// @Success 200 {object} dto.NotificationSettingsResponse
// @Security BearerAuth
// @Router /settings/notifications [get]
func (h *Handler) handleGetNotificationSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	enabled := h.prefs.Enabled(ctx)
	respondJSON(w, http.StatusOK, dto.NotificationSettingsResponse{Enabled: enabled})
}

// handleSetNotificationSettings toggles push delivery globally.
// @Summary Update notification settings
// @Tags settings
// @Accept json
// @Produce json
// @Param request body dto.NotificationSettingsRequest true "Settings request"
// @Success 200 {object} dto.NotificationSettingsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /settings/notifications [put]
func (h *Handler) handleSetNotificationSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.NotificationSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := h.prefs.SetEnabled(ctx, req.Enabled); err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.NotificationSettingsResponse{Enabled: req.Enabled})
}
