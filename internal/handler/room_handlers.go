package handler

import (
	"encoding/json"
	"net/http"

	"github.com/lodgeworks/roomkeeper/internal/domain"
	"github.com/lodgeworks/roomkeeper/internal/handler/dto"
	"github.com/lodgeworks/roomkeeper/internal/middleware"
)

// handleListRooms lists all rooms.
// @Summary List rooms
// @Tags rooms
// @Produce json
// @Success 200 {object} dto.RoomsListResponse
// @Security BearerAuth
// @Router /rooms [get]
func (h *Handler) handleListRooms(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rooms, err := h.roomService.ListRooms(ctx)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	out := make([]dto.RoomResponse, len(rooms))
	for i, room := range rooms {
		out[i] = dto.ToRoomResponse(room)
	}
	respondJSON(w, http.StatusOK, dto.RoomsListResponse{Rooms: out})
}

// handleCreateRoom creates a new room.
// @Summary Create a room
// @Description Creates a room. Admin only.
// @Tags rooms
// @Accept json
// @Produce json
// @Param request body dto.CreateRoomRequest true "Room creation request"
// @Success 201 {object} dto.RoomResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /rooms [post]
func (h *Handler) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := middleware.GetActorFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	var req dto.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	room, err := h.roomService.CreateRoom(ctx, actor, req.Name, req.Description)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToRoomResponse(room))
}

// handleUpdateRoom applies a partial update to a room.
// @Summary Update a room
// @Description Updates room name or description. Admin only.
// @Tags rooms
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body dto.UpdateRoomRequest true "Room update request"
// @Success 200 {object} dto.RoomResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /rooms/{id} [patch]
func (h *Handler) handleUpdateRoom(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := middleware.GetActorFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	roomID, ok := extractPathID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	room, err := h.roomService.UpdateRoom(ctx, actor, roomID, domain.RoomPatch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToRoomResponse(room))
}

// handleDeleteRoom removes a room, detaching its tasks.
// @Summary Delete a room
// @Description Deletes a room. Tasks referencing it survive with their room reference cleared. Admin only.
// @Tags rooms
// @Param id path string true "Room ID"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /rooms/{id} [delete]
func (h *Handler) handleDeleteRoom(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := middleware.GetActorFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	roomID, ok := extractPathID(w, r)
	if !ok {
		return
	}

	if err := h.roomService.DeleteRoom(ctx, actor, roomID); err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
