package dto

import (
	"time"

	"github.com/lodgeworks/roomkeeper/internal/domain"
	"github.com/lodgeworks/roomkeeper/internal/repository"
)

// TaskResponse represents a task in API responses.
type TaskResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Priority      string    `json:"priority"`
	Completed     bool      `json:"completed"`
	EstimatedTime string    `json:"estimated_time"`
	Notes         *string   `json:"notes,omitempty"`
	AssignedTo    string    `json:"assigned_to"`
	RoomID        *string   `json:"room_id,omitempty"`
	RoomName      *string   `json:"room_name,omitempty"`
	CreatedBy     string    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TasksListResponse represents the response for GET /tasks.
type TasksListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
}

// RoomResponse represents a room in API responses.
type RoomResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RoomsListResponse represents the response for GET /rooms.
type RoomsListResponse struct {
	Rooms []RoomResponse `json:"rooms"`
}

// ActorResponse represents a staff profile in API responses.
type ActorResponse struct {
	ID        string    `json:"id"`
	FullName  *string   `json:"full_name,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ActorsListResponse represents the response for GET /users.
type ActorsListResponse struct {
	Users []ActorResponse `json:"users"`
}

// NotificationSettingsResponse represents the persisted notification flag.
type NotificationSettingsResponse struct {
	Enabled bool `json:"enabled"`
}

// RoomStats holds open/completed counts for one room.
type RoomStats struct {
	RoomID    *string `json:"room_id"`
	RoomName  *string `json:"room_name"`
	Open      int     `json:"open"`
	Completed int     `json:"completed"`
}

// AssigneeStats holds open/completed counts for one staff member.
type AssigneeStats struct {
	UserID    string  `json:"user_id"`
	FullName  *string `json:"full_name"`
	Open      int     `json:"open"`
	Completed int     `json:"completed"`
}

// StatsResponse represents the response for GET /stats.
type StatsResponse struct {
	Rooms     []RoomStats     `json:"rooms"`
	Assignees []AssigneeStats `json:"assignees"`
}

// ToTaskResponse converts domain.Task to TaskResponse.
func ToTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:            task.ID,
		Title:         task.Title,
		Description:   task.Description,
		Priority:      string(task.Priority),
		Completed:     task.Completed,
		EstimatedTime: task.EstimatedTime,
		Notes:         task.Notes,
		AssignedTo:    task.Assignee(),
		RoomID:        task.RoomID,
		RoomName:      task.RoomName,
		CreatedBy:     task.CreatedBy,
		CreatedAt:     task.CreatedAt,
		UpdatedAt:     task.UpdatedAt,
	}
}

// ToTasksListResponse converts a task slice to TasksListResponse.
func ToTasksListResponse(tasks []*domain.Task) TasksListResponse {
	out := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		out[i] = ToTaskResponse(task)
	}
	return TasksListResponse{Tasks: out, Total: len(out)}
}

// ToRoomResponse converts domain.Room to RoomResponse.
func ToRoomResponse(room *domain.Room) RoomResponse {
	return RoomResponse{
		ID:          room.ID,
		Name:        room.Name,
		Description: room.Description,
		CreatedBy:   room.CreatedBy,
		CreatedAt:   room.CreatedAt,
		UpdatedAt:   room.UpdatedAt,
	}
}

// ToActorResponse converts domain.Actor to ActorResponse.
func ToActorResponse(actor *domain.Actor) ActorResponse {
	return ActorResponse{
		ID:        actor.ID,
		FullName:  actor.FullName,
		Role:      string(actor.Role),
		CreatedAt: actor.CreatedAt,
	}
}

// ToStatsResponse converts repository stats results to StatsResponse.
func ToStatsResponse(rooms []repository.RoomStatsResult, assignees []repository.AssigneeStatsResult) StatsResponse {
	out := StatsResponse{
		Rooms:     make([]RoomStats, len(rooms)),
		Assignees: make([]AssigneeStats, len(assignees)),
	}
	for i, r := range rooms {
		out.Rooms[i] = RoomStats{
			RoomID:    r.RoomID,
			RoomName:  r.RoomName,
			Open:      r.Open,
			Completed: r.Completed,
		}
	}
	for i, a := range assignees {
		out.Assignees[i] = AssigneeStats{
			UserID:    a.AssigneeID,
			FullName:  a.FullName,
			Open:      a.Open,
			Completed: a.Completed,
		}
	}
	return out
}
