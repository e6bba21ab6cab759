package dto

import "github.com/lodgeworks/roomkeeper/internal/domain"

// CreateTaskRequest represents the request body for POST /tasks.
type CreateTaskRequest struct {
	Title         string  `json:"title"`
	Description   string  `json:"description,omitempty"`
	Priority      string  `json:"priority,omitempty"`
	EstimatedTime string  `json:"estimated_time,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	AssignedTo    *string `json:"assigned_to,omitempty"`
	RoomID        *string `json:"room_id,omitempty"`
}

// UpdateTaskRequest represents the request body for PATCH /tasks/:id.
// Absent fields are left untouched.
type UpdateTaskRequest struct {
	Title         *string `json:"title,omitempty"`
	Description   *string `json:"description,omitempty"`
	Priority      *string `json:"priority,omitempty"`
	Completed     *bool   `json:"completed,omitempty"`
	EstimatedTime *string `json:"estimated_time,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	AssignedTo    *string `json:"assigned_to,omitempty"`
	RoomID        *string `json:"room_id,omitempty"`
}

// ToPatch converts the request into a domain patch.
func (r UpdateTaskRequest) ToPatch() domain.TaskPatch {
	patch := domain.TaskPatch{
		Title:         r.Title,
		Description:   r.Description,
		Completed:     r.Completed,
		EstimatedTime: r.EstimatedTime,
		Notes:         r.Notes,
		AssignedTo:    r.AssignedTo,
		RoomID:        r.RoomID,
	}
	if r.Priority != nil {
		p := domain.TaskPriority(*r.Priority)
		patch.Priority = &p
	}
	return patch
}

// ToggleCompletionRequest represents the request body for PATCH /tasks/:id/completion.
type ToggleCompletionRequest struct {
	Completed bool `json:"completed"`
}

// AssignTaskRequest represents the request body for PUT /tasks/:id/assignee.
// A null user_id clears the explicit assignee.
type AssignTaskRequest struct {
	UserID *string `json:"user_id"`
}

// AssignRoomRequest represents the request body for PUT /tasks/:id/room.
// A null room_id detaches the task from its room.
type AssignRoomRequest struct {
	RoomID *string `json:"room_id"`
}

// SetNotesRequest represents the request body for PUT /tasks/:id/notes.
type SetNotesRequest struct {
	Notes string `json:"notes"`
}

// CreateRoomRequest represents the request body for POST /rooms.
type CreateRoomRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// UpdateRoomRequest represents the request body for PATCH /rooms/:id.
type UpdateRoomRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// SetRoleRequest represents the request body for PUT /users/:id/role.
type SetRoleRequest struct {
	Role string `json:"role"`
}

// PushTokenRequest represents the request body for PUT /me/push-token.
// A null token unregisters the device.
type PushTokenRequest struct {
	Token *string `json:"token"`
}

// NotificationSettingsRequest represents the request body for PUT /settings/notifications.
type NotificationSettingsRequest struct {
	Enabled bool `json:"enabled"`
}
