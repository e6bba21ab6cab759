// Package authz holds the role capability table. Every permission decision in the
// service goes through this table rather than ad hoc role checks at call sites.
package authz

import (
	"fmt"

	"github.com/lodgeworks/roomkeeper/internal/domain"
)

// Operation identifies a guarded service operation.
type Operation string

const (
	OpListTasks        Operation = "list_tasks"
	OpCreateTask       Operation = "create_task"
	OpUpdateTask       Operation = "update_task"
	OpToggleCompletion Operation = "toggle_completion"
	OpDeleteTask       Operation = "delete_task"
	OpAssignTask       Operation = "assign_task"
	OpAssignRoom       Operation = "assign_room"
	OpSetNotes         Operation = "set_notes"

	OpCreateRoom Operation = "create_room"
	OpUpdateRoom Operation = "update_room"
	OpDeleteRoom Operation = "delete_room"

	OpListUsers Operation = "list_users"
	OpSetRole   Operation = "set_role"
	OpViewStats Operation = "view_stats"
)

// capability describes what a role may do: which operations it may invoke and
// which task fields it may mutate through an update.
type capability struct {
	operations map[Operation]bool
	taskFields map[domain.TaskField]bool
}

var capabilities = map[domain.Role]capability{
	domain.RoleAdmin: {
		operations: map[Operation]bool{
			OpListTasks:        true,
			OpCreateTask:       true,
			OpUpdateTask:       true,
			OpToggleCompletion: true,
			OpDeleteTask:       true,
			OpAssignTask:       true,
			OpAssignRoom:       true,
			OpSetNotes:         true,
			OpCreateRoom:       true,
			OpUpdateRoom:       true,
			OpDeleteRoom:       true,
			OpListUsers:        true,
			OpSetRole:          true,
			OpViewStats:        true,
		},
		taskFields: map[domain.TaskField]bool{
			domain.FieldTitle:         true,
			domain.FieldDescription:   true,
			domain.FieldPriority:      true,
			domain.FieldCompleted:     true,
			domain.FieldEstimatedTime: true,
			domain.FieldNotes:         true,
			domain.FieldAssignedTo:    true,
			domain.FieldRoomID:        true,
		},
	},
	domain.RoleHousekeeper: {
		operations: map[Operation]bool{
			OpListTasks:        true,
			OpUpdateTask:       true,
			OpToggleCompletion: true,
		},
		// Housekeepers may only flip completion on their own tasks.
		taskFields: map[domain.TaskField]bool{
			domain.FieldCompleted: true,
		},
	},
}

// Allows reports whether the role may invoke the operation.
func Allows(role domain.Role, op Operation) bool {
	return capabilities[role].operations[op]
}

// CheckOperation returns ErrPermissionDenied if the role may not invoke the operation.
func CheckOperation(role domain.Role, op Operation) error {
	if !Allows(role, op) {
		return fmt.Errorf("%w: role %s may not perform %s", domain.ErrPermissionDenied, role, op)
	}
	return nil
}

// CheckTaskFields returns ErrPermissionDenied if the role may not mutate any of the
// given fields.
func CheckTaskFields(role domain.Role, fields []domain.TaskField) error {
	allowed := capabilities[role].taskFields
	for _, field := range fields {
		if !allowed[field] {
			return fmt.Errorf("%w: role %s may not set %s", domain.ErrPermissionDenied, role, field)
		}
	}
	return nil
}

// OwnershipRequired reports whether the role is restricted to tasks it is
// assigned to. Admins operate on any task.
func OwnershipRequired(role domain.Role) bool {
	return role != domain.RoleAdmin
}
