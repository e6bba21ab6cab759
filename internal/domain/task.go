package domain

import "time"

// TaskPriority represents the priority level of a task.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// IsValid checks if the priority is one of the allowed values.
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	default:
		return false
	}
}

// Task represents a cleaning task.
type Task struct {
	ID            string
	Title         string
	Description   string
	Priority      TaskPriority
	Completed     bool
	EstimatedTime string
	Notes         *string
	AssignedTo    *string
	RoomID        *string
	RoomName      *string // resolved display name, nil when the room is unset or gone
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Assignee resolves the effective assignee of the task. Tasks created without an
// explicit assignee belong to their creator.
func (t *Task) Assignee() string {
	if t.AssignedTo != nil {
		return *t.AssignedTo
	}
	return t.CreatedBy
}

// IsAssignedTo checks if the task's resolved assignee is the given actor.
func (t *Task) IsAssignedTo(actorID string) bool {
	return t.Assignee() == actorID
}

// TaskField identifies a mutable task field for capability checks.
type TaskField string

const (
	FieldTitle         TaskField = "title"
	FieldDescription   TaskField = "description"
	FieldPriority      TaskField = "priority"
	FieldCompleted     TaskField = "completed"
	FieldEstimatedTime TaskField = "estimated_time"
	FieldNotes         TaskField = "notes"
	FieldAssignedTo    TaskField = "assigned_to"
	FieldRoomID        TaskField = "room_id"
)

// TaskPatch is a partial task update. Nil fields are left untouched.
type TaskPatch struct {
	Title         *string
	Description   *string
	Priority      *TaskPriority
	Completed     *bool
	EstimatedTime *string
	Notes         *string
	AssignedTo    *string
	RoomID        *string
}

// Fields returns the set of fields the patch modifies.
func (p TaskPatch) Fields() []TaskField {
	var fields []TaskField
	if p.Title != nil {
		fields = append(fields, FieldTitle)
	}
	if p.Description != nil {
		fields = append(fields, FieldDescription)
	}
	if p.Priority != nil {
		fields = append(fields, FieldPriority)
	}
	if p.Completed != nil {
		fields = append(fields, FieldCompleted)
	}
	if p.EstimatedTime != nil {
		fields = append(fields, FieldEstimatedTime)
	}
	if p.Notes != nil {
		fields = append(fields, FieldNotes)
	}
	if p.AssignedTo != nil {
		fields = append(fields, FieldAssignedTo)
	}
	if p.RoomID != nil {
		fields = append(fields, FieldRoomID)
	}
	return fields
}

// IsEmpty returns true if the patch modifies nothing.
func (p TaskPatch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// TaskFilter holds the supported filters for task listing.
type TaskFilter struct {
	AssigneeID *string // resolved assignee (assigned_to falling back to created_by)
	RoomID     *string
}
