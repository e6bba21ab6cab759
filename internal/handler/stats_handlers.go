package handler

import (
	"net/http"

	"github.com/lodgeworks/roomkeeper/internal/authz"
	"github.com/lodgeworks/roomkeeper/internal/handler/dto"
	"github.com/lodgeworks/roomkeeper/internal/middleware"
)

// handleGetStats returns open and completed task counts grouped by room and by assignee.
// @Summary Get task statistics
// @Description Returns open/completed counts per room and per assignee. Admin only.
// @Tags stats
// @Produce json
// @Success 200 {object} dto.StatsResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /stats [get]
func (h *Handler) handleGetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := middleware.GetActorFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	if err := authz.CheckOperation(actor.Role, authz.OpViewStats); err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	roomStats, err := h.taskRepo.GetRoomStats(ctx)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	assigneeStats, err := h.taskRepo.GetAssigneeStats(ctx)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToStatsResponse(roomStats, assigneeStats))
}
