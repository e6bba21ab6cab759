package handler

import (
	"encoding/json"
	"net/http"

	"github.com/lodgeworks/roomkeeper/internal/authz"
	"github.com/lodgeworks/roomkeeper/internal/domain"
	"github.com/lodgeworks/roomkeeper/internal/handler/dto"
	"github.com/lodgeworks/roomkeeper/internal/middleware"
)

// handleGetMe returns the authenticated user's profile.
// @Summary Get own profile
// @Tags users
// @Produce json
// @Success 200 {object} dto.ActorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /me [get]
func (h *Handler) handleGetMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := middleware.GetActorFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	respondJSON(w, http.StatusOK, dto.ToActorResponse(actor))
}

// handleSetPushToken stores or clears the caller's push token.
// @Summary Register a push token
// @Description Stores the device push token on the caller's profile. A null token clears it.
// @Tags users
// @Accept json
// @Param request body dto.PushTokenRequest true "Push token request"
// @Success 204
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /me/push-token [put]
func (h *Handler) handleSetPushToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := middleware.GetActorFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	var req dto.PushTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := h.actorRepo.UpdatePushToken(ctx, actor.ID, req.Token); err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleListUsers lists all user profiles.
// @Summary List users
// @Description Lists all profiles. Admin only.
// @Tags users
// @Produce json
// @Success 200 {object} dto.ActorsListResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users [get]
func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := middleware.GetActorFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	if err := authz.CheckOperation(actor.Role, authz.OpListUsers); err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	actors, err := h.actorRepo.List(ctx)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	out := make([]dto.ActorResponse, len(actors))
	for i, a := range actors {
		out[i] = dto.ToActorResponse(a)
	}
	respondJSON(w, http.StatusOK, dto.ActorsListResponse{Users: out})
}

// handleSetRole changes a user's role.
// @Summary Change a user's role
// @Description Sets a user's role. Admin only. Takes effect on the user's next request.
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.SetRoleRequest true "Role request"
// @Success 200 {object} dto.ActorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/role [put]
func (h *Handler) handleSetRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := middleware.GetActorFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	userID, ok := extractPathID(w, r)
	if !ok {
		return
	}

	if err := authz.CheckOperation(actor.Role, authz.OpSetRole); err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	var req dto.SetRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	role := domain.Role(req.Role)
	if !role.IsValid() {
		status, code, message := dto.MapDomainError(domain.ErrInvalidRole)
		respondError(w, status, code, message)
		return
	}

	updated, err := h.actorRepo.UpdateRole(ctx, userID, role)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToActorResponse(updated))
}
