package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lodgeworks/roomkeeper/internal/authz"
	"github.com/lodgeworks/roomkeeper/internal/domain"
	"github.com/lodgeworks/roomkeeper/internal/metrics"
	"github.com/lodgeworks/roomkeeper/internal/notify"
)

// TaskStore is the persistence boundary for tasks.
type TaskStore interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	GetByID(ctx context.Context, taskID string) (*domain.Task, error)
	List(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error)
	Update(ctx context.Context, taskID string, patch domain.TaskPatch, assigneeID *string) (*domain.Task, error)
	UpdateAssignee(ctx context.Context, taskID string, assigneeID *string) (*domain.Task, error)
	UpdateRoom(ctx context.Context, taskID string, roomID *string) (*domain.Task, error)
	Delete(ctx context.Context, taskID string) error
}

// RoomStore is the persistence boundary for rooms, as needed by task operations.
type RoomStore interface {
	List(ctx context.Context) ([]*domain.Room, error)
	GetByID(ctx context.Context, roomID string) (*domain.Room, error)
	NamesByIDs(ctx context.Context, roomIDs []string) (map[string]string, error)
	Create(ctx context.Context, room *domain.Room) (*domain.Room, error)
	Update(ctx context.Context, roomID string, patch domain.RoomPatch) (*domain.Room, error)
	Delete(ctx context.Context, roomID string) error
}

// ActorStore is the persistence boundary for staff profiles, as needed by task
// operations.
type ActorStore interface {
	GetByID(ctx context.Context, actorID string) (*domain.Actor, error)
}

// TaskService mediates all task reads and writes according to actor role and
// produces notification intents for relevant transitions. The acting staff
// member is always passed in explicitly; the service keeps no session state.
type TaskService struct {
	tasks  TaskStore
	rooms  RoomStore
	actors ActorStore
}

// NewTaskService creates a new TaskService.
func NewTaskService(tasks TaskStore, rooms RoomStore, actors ActorStore) *TaskService {
	return &TaskService{
		tasks:  tasks,
		rooms:  rooms,
		actors: actors,
	}
}

// CreateTaskParams holds the caller-supplied fields for a new task.
type CreateTaskParams struct {
	Title         string
	Description   string
	Priority      domain.TaskPriority
	EstimatedTime string
	Notes         *string
	AssignedTo    *string
	RoomID        *string
}

// ListVisibleTasks returns the tasks the actor may see, newest-created first,
// optionally restricted to one room. Admins see every task; housekeepers see
// only tasks whose resolved assignee is them.
func (s *TaskService) ListVisibleTasks(ctx context.Context, actor *domain.Actor, roomID *string) ([]*domain.Task, error) {
	if err := authz.CheckOperation(actor.Role, authz.OpListTasks); err != nil {
		return nil, err
	}

	filter := domain.TaskFilter{RoomID: roomID}
	if authz.OwnershipRequired(actor.Role) {
		filter.AssigneeID = &actor.ID
	}

	tasks, err := s.tasks.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	s.resolveRoomNames(ctx, tasks)
	return tasks, nil
}

// CreateTask persists a new task on behalf of an admin. A task created without
// an explicit assignee is assigned to its creator, so every task always has a
// resolvable assignee. Returns the created task together with the notification
// intents announcing it.
func (s *TaskService) CreateTask(ctx context.Context, actor *domain.Actor, params CreateTaskParams) (*domain.Task, []notify.Intent, error) {
	if err := authz.CheckOperation(actor.Role, authz.OpCreateTask); err != nil {
		metrics.ObserveTaskOperation("create", err)
		return nil, nil, err
	}
	if params.Title == "" {
		return nil, nil, domain.ErrTitleRequired
	}
	if params.Priority != "" && !params.Priority.IsValid() {
		return nil, nil, domain.ErrInvalidPriority
	}

	assignedTo := params.AssignedTo
	if assignedTo == nil {
		// Self-assignment fallback: the creator owns unassigned tasks.
		assignedTo = &actor.ID
	}

	task := &domain.Task{
		Title:         params.Title,
		Description:   params.Description,
		Priority:      params.Priority,
		EstimatedTime: params.EstimatedTime,
		Notes:         params.Notes,
		AssignedTo:    assignedTo,
		RoomID:        params.RoomID,
		CreatedBy:     actor.ID,
	}

	created, err := s.tasks.Create(ctx, task)
	metrics.ObserveTaskOperation("create", err)
	if err != nil {
		return nil, nil, fmt.Errorf("create task: %w", err)
	}

	s.resolveRoomNames(ctx, []*domain.Task{created})

	slog.Info("task created",
		"task_id", created.ID,
		"actor_id", actor.ID,
		"assigned_to", created.Assignee(),
	)

	// The assignee announcement is a role broadcast to all housekeepers, not a
	// targeted push to the specific assignee. AssignTask targets the assignee;
	// this asymmetry is deliberate.
	body := announcementBody(created)
	intents := []notify.Intent{
		notify.ToRoles("New task created", body, domain.RoleAdmin),
		notify.ToRoles("New task assigned", body, domain.RoleHousekeeper),
	}

	return created, intents, nil
}

// UpdateTask applies a partial update. Admins may change any field on any task.
// Housekeepers may only flip completion, and only on tasks assigned to them;
// that ownership constraint is repeated in the store's WHERE clause, so the
// database rejects the write even if this check is bypassed.
func (s *TaskService) UpdateTask(ctx context.Context, actor *domain.Actor, taskID string, patch domain.TaskPatch) (*domain.Task, error) {
	if patch.IsEmpty() {
		return nil, domain.ErrEmptyPatch
	}
	if err := authz.CheckOperation(actor.Role, authz.OpUpdateTask); err != nil {
		metrics.ObserveTaskOperation("update", err)
		return nil, err
	}
	if err := authz.CheckTaskFields(actor.Role, patch.Fields()); err != nil {
		metrics.ObserveTaskOperation("update", err)
		return nil, err
	}
	if patch.Priority != nil && !patch.Priority.IsValid() {
		return nil, domain.ErrInvalidPriority
	}

	var owner *string
	if authz.OwnershipRequired(actor.Role) {
		if err := s.checkOwnership(ctx, actor, taskID); err != nil {
			metrics.ObserveTaskOperation("update", err)
			return nil, err
		}
		owner = &actor.ID
	}

	task, err := s.tasks.Update(ctx, taskID, patch, owner)
	metrics.ObserveTaskOperation("update", err)
	if err != nil {
		return nil, err
	}

	s.resolveRoomNames(ctx, []*domain.Task{task})

	slog.Info("task updated",
		"task_id", task.ID,
		"actor_id", actor.ID,
		"fields", patch.Fields(),
	)

	return task, nil
}

// ToggleCompletion flips the completed flag. Usable by both roles, subject to
// the same ownership constraint as UpdateTask for housekeepers.
func (s *TaskService) ToggleCompletion(ctx context.Context, actor *domain.Actor, taskID string, completed bool) (*domain.Task, error) {
	if err := authz.CheckOperation(actor.Role, authz.OpToggleCompletion); err != nil {
		metrics.ObserveTaskOperation("toggle_completion", err)
		return nil, err
	}

	var owner *string
	if authz.OwnershipRequired(actor.Role) {
		if err := s.checkOwnership(ctx, actor, taskID); err != nil {
			metrics.ObserveTaskOperation("toggle_completion", err)
			return nil, err
		}
		owner = &actor.ID
	}

	task, err := s.tasks.Update(ctx, taskID, domain.TaskPatch{Completed: &completed}, owner)
	metrics.ObserveTaskOperation("toggle_completion", err)
	if err != nil {
		return nil, err
	}

	s.resolveRoomNames(ctx, []*domain.Task{task})

	slog.Info("task completion toggled",
		"task_id", task.ID,
		"actor_id", actor.ID,
		"completed", completed,
	)

	return task, nil
}

// DeleteTask removes a task. Admin only.
func (s *TaskService) DeleteTask(ctx context.Context, actor *domain.Actor, taskID string) error {
	if err := authz.CheckOperation(actor.Role, authz.OpDeleteTask); err != nil {
		metrics.ObserveTaskOperation("delete", err)
		return err
	}

	err := s.tasks.Delete(ctx, taskID)
	metrics.ObserveTaskOperation("delete", err)
	if err != nil {
		return err
	}

	slog.Info("task deleted", "task_id", taskID, "actor_id", actor.ID)
	return nil
}

// AssignTask sets or clears the explicit assignee. Admin only. Assigning to a
// specific staff member produces one intent targeted at exactly that member.
func (s *TaskService) AssignTask(ctx context.Context, actor *domain.Actor, taskID string, userID *string) (*domain.Task, []notify.Intent, error) {
	if err := authz.CheckOperation(actor.Role, authz.OpAssignTask); err != nil {
		metrics.ObserveTaskOperation("assign", err)
		return nil, nil, err
	}

	if userID != nil {
		if _, err := s.actors.GetByID(ctx, *userID); err != nil {
			return nil, nil, err
		}
	}

	task, err := s.tasks.UpdateAssignee(ctx, taskID, userID)
	metrics.ObserveTaskOperation("assign", err)
	if err != nil {
		return nil, nil, err
	}

	s.resolveRoomNames(ctx, []*domain.Task{task})

	slog.Info("task assigned",
		"task_id", task.ID,
		"actor_id", actor.ID,
		"assigned_to", task.Assignee(),
	)

	var intents []notify.Intent
	if userID != nil {
		intents = append(intents, notify.ToUsers("Task assigned to you", announcementBody(task), *userID))
	}

	return task, intents, nil
}

// AssignTaskToRoom sets or clears the room reference. Admin only.
func (s *TaskService) AssignTaskToRoom(ctx context.Context, actor *domain.Actor, taskID string, roomID *string) (*domain.Task, error) {
	if err := authz.CheckOperation(actor.Role, authz.OpAssignRoom); err != nil {
		metrics.ObserveTaskOperation("assign_room", err)
		return nil, err
	}

	if roomID != nil {
		if _, err := s.rooms.GetByID(ctx, *roomID); err != nil {
			return nil, err
		}
	}

	task, err := s.tasks.UpdateRoom(ctx, taskID, roomID)
	metrics.ObserveTaskOperation("assign_room", err)
	if err != nil {
		return nil, err
	}

	s.resolveRoomNames(ctx, []*domain.Task{task})

	slog.Info("task moved to room",
		"task_id", task.ID,
		"actor_id", actor.ID,
		"room_id", roomID,
	)

	return task, nil
}

// SetNotes replaces the internal coordination notes. Admin only.
func (s *TaskService) SetNotes(ctx context.Context, actor *domain.Actor, taskID string, notes string) (*domain.Task, error) {
	if err := authz.CheckOperation(actor.Role, authz.OpSetNotes); err != nil {
		metrics.ObserveTaskOperation("set_notes", err)
		return nil, err
	}

	task, err := s.tasks.Update(ctx, taskID, domain.TaskPatch{Notes: &notes}, nil)
	metrics.ObserveTaskOperation("set_notes", err)
	if err != nil {
		return nil, err
	}

	s.resolveRoomNames(ctx, []*domain.Task{task})

	slog.Info("task notes updated", "task_id", task.ID, "actor_id", actor.ID)
	return task, nil
}

// checkOwnership verifies that the task exists and its resolved assignee is
// the actor. A task held by someone else is a permission failure, not a
// missing task; ErrTaskNotFound stays reserved for ids with no row at all.
// The store's ownership WHERE clause still guards the write itself.
func (s *TaskService) checkOwnership(ctx context.Context, actor *domain.Actor, taskID string) error {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if !task.IsAssignedTo(actor.ID) {
		return fmt.Errorf("%w: task %s is not assigned to actor %s", domain.ErrPermissionDenied, taskID, actor.ID)
	}
	return nil
}

// resolveRoomNames fills in RoomName for every task referencing a room. A task
// pointing at a deleted room keeps a nil name; a failed lookup only costs the
// display names, never the listing itself.
func (s *TaskService) resolveRoomNames(ctx context.Context, tasks []*domain.Task) {
	seen := make(map[string]bool)
	var roomIDs []string
	for _, task := range tasks {
		if task.RoomID != nil && !seen[*task.RoomID] {
			seen[*task.RoomID] = true
			roomIDs = append(roomIDs, *task.RoomID)
		}
	}
	if len(roomIDs) == 0 {
		return
	}

	names, err := s.rooms.NamesByIDs(ctx, roomIDs)
	if err != nil {
		slog.Error("failed to resolve room names", "error", err)
		return
	}

	for _, task := range tasks {
		if task.RoomID == nil {
			continue
		}
		if name, ok := names[*task.RoomID]; ok {
			n := name
			task.RoomName = &n
		}
	}
}

// announcementBody renders the notification body for a task, including the
// room name when one is resolved.
func announcementBody(task *domain.Task) string {
	if task.RoomName != nil {
		return fmt.Sprintf("%s (%s)", task.Title, *task.RoomName)
	}
	return task.Title
}
