package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/lodgeworks/roomkeeper/internal/domain"
	"github.com/lodgeworks/roomkeeper/internal/handler/dto"
	"github.com/lodgeworks/roomkeeper/internal/middleware"
	"github.com/lodgeworks/roomkeeper/internal/service"
)

// handleListTasks lists the tasks visible to the authenticated actor.
// @Summary List visible tasks
// @Description Admins see all tasks; housekeepers see only tasks assigned to them. Optionally filtered by room.
// @Tags tasks
// @Produce json
// @Param room query string false "Room ID filter"
// @Success 200 {object} dto.TasksListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks [get]
func (h *Handler) handleListTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := middleware.GetActorFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	var roomID *string
	if room := r.URL.Query().Get("room"); room != "" {
		if _, err := uuid.Parse(room); err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "room must be a valid UUID")
			return
		}
		roomID = &room
	}

	tasks, err := h.taskService.ListVisibleTasks(ctx, actor, roomID)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTasksListResponse(tasks))
}

// handleCreateTask creates a new task.
// @Summary Create a new task
// @Description Creates a task. Admin only. Without an explicit assignee the task is assigned to its creator.
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body dto.CreateTaskRequest true "Task creation request"
// @Success 201 {object} dto.TaskResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks [post]
func (h *Handler) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := middleware.GetActorFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	var req dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	task, intents, err := h.taskService.CreateTask(ctx, actor, service.CreateTaskParams{
		Title:         req.Title,
		Description:   req.Description,
		Priority:      domain.TaskPriority(req.Priority),
		EstimatedTime: req.EstimatedTime,
		Notes:         req.Notes,
		AssignedTo:    req.AssignedTo,
		RoomID:        req.RoomID,
	})
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	h.dispatcher.Dispatch(ctx, intents)

	respondJSON(w, http.StatusCreated, dto.ToTaskResponse(task))
}

// handleUpdateTask applies a partial update to a task.
// @Summary Update a task
// @Description Admins may update any field; housekeepers may only set completed on their own tasks.
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.UpdateTaskRequest true "Task update request"
// @Success 200 {object} dto.TaskResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [patch]
func (h *Handler) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := middleware.GetActorFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	taskID, ok := extractPathID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(ctx, actor, taskID, req.ToPatch())
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskResponse(task))
}

// handleToggleCompletion flips the completed flag of a task.
// @Summary Toggle task completion
// @Description Marks a task done or not done. Housekeepers may only toggle their own tasks.
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.ToggleCompletionRequest true "Desired completion state"
// @Success 200 {object} dto.TaskResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/completion [patch]
func (h *Handler) handleToggleCompletion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := middleware.GetActorFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	taskID, ok := extractPathID(w, r)
	if !ok {
		return
	}

	var req dto.ToggleCompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	task, err := h.taskService.ToggleCompletion(ctx, actor, taskID, req.Completed)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskResponse(task))
}

// handleDeleteTask removes a task.
// @Summary Delete a task
// @Description Deletes a task. Admin only.
// @Tags tasks
// @Param id path string true "Task ID"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [delete]
func (h *Handler) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := middleware.GetActorFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	taskID, ok := extractPathID(w, r)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(ctx, actor, taskID); err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleAssignTask sets or clears the assignee of a task.
// @Summary Assign a task
// @Description Assigns the task to a staff member, or clears the assignment with a null user_id. Admin only.
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.AssignTaskRequest true "Assignment request"
// @Success 200 {object} dto.TaskResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/assignee [put]
func (h *Handler) handleAssignTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := middleware.GetActorFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	taskID, ok := extractPathID(w, r)
	if !ok {
		return
	}

	var req dto.AssignTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	task, intents, err := h.taskService.AssignTask(ctx, actor, taskID, req.UserID)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	h.dispatcher.Dispatch(ctx, intents)

	respondJSON(w, http.StatusOK, dto.ToTaskResponse(task))
}

// handleAssignRoom sets or clears the room of a task.
// @Summary Move a task to a room
// @Description Attaches the task to a room, or detaches it with a null room_id. Admin only.
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.AssignRoomRequest true "Room assignment request"
// @Success 200 {object} dto.TaskResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/room [put]
func (h *Handler) handleAssignRoom(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := middleware.GetActorFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	taskID, ok := extractPathID(w, r)
	if !ok {
		return
	}

	var req dto.AssignRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	task, err := h.taskService.AssignTaskToRoom(ctx, actor, taskID, req.RoomID)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskResponse(task))
}

// handleSetNotes replaces the internal notes of a task.
// @Summary Set task notes
// @Description Replaces the internal coordination notes. Admin only.
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.SetNotesRequest true "Notes request"
// @Success 200 {object} dto.TaskResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/notes [put]
func (h *Handler) handleSetNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := middleware.GetActorFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	taskID, ok := extractPathID(w, r)
	if !ok {
		return
	}

	var req dto.SetNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	task, err := h.taskService.SetNotes(ctx, actor, taskID, req.Notes)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskResponse(task))
}
