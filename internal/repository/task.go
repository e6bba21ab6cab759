package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lodgeworks/roomkeeper/internal/domain"
)

// taskColumns is the shared list of columns for task queries.
var taskColumns = []string{
	"id", "title", "description", "priority", "completed", "estimated_time",
	"notes", "assigned_to", "room_id", "created_by", "created_at", "updated_at",
}

// resolvedAssignee is the SQL expression for the effective assignee of a task.
// Tasks without an explicit assignee belong to their creator.
const resolvedAssignee = "COALESCE(assigned_to, created_by)"

// TaskRepository handles database operations for tasks.
type TaskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

// scanTask scans a single row into a Task struct.
func scanTask(row pgx.Row) (*domain.Task, error) {
	var task domain.Task
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Priority,
		&task.Completed,
		&task.EstimatedTime,
		&task.Notes,
		&task.AssignedTo,
		&task.RoomID,
		&task.CreatedBy,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}
	return &task, nil
}

// scanTasks scans multiple rows into a slice of Task structs.
func scanTasks(rows pgx.Rows) ([]*domain.Task, error) {
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return tasks, nil
}

// GetByID retrieves a task by ID.
func (r *TaskRepository) GetByID(ctx context.Context, taskID string) (*domain.Task, error) {
	query, args, err := psql.
		Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"id": taskID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for task: %w", err)
	}

	return scanTask(r.pool.QueryRow(ctx, query, args...))
}

// List retrieves tasks matching the filter, newest-created first.
func (r *TaskRepository) List(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error) {
	qb := psql.Select(taskColumns...).From("tasks")

	if filter.AssigneeID != nil {
		qb = qb.Where(sq.Eq{resolvedAssignee: *filter.AssigneeID})
	}
	if filter.RoomID != nil {
		qb = qb.Where(sq.Eq{"room_id": *filter.RoomID})
	}

	query, args, err := qb.OrderBy("created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build List query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}

	return scanTasks(rows)
}

// Create creates a new task in the database.
// Returns the created task with ID, CreatedAt, and UpdatedAt populated.
func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	// Set defaults
	if task.Priority == "" {
		task.Priority = domain.TaskPriorityMedium
	}

	query, args, err := psql.
		Insert("tasks").
		Columns(
			"title", "description", "priority", "completed", "estimated_time",
			"notes", "assigned_to", "room_id", "created_by",
		).
		Values(
			task.Title,
			task.Description,
			task.Priority,
			task.Completed,
			task.EstimatedTime,
			task.Notes,
			task.AssignedTo,
			task.RoomID,
			task.CreatedBy,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Create query for task: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	return task, nil
}

// Update applies a partial update to a task. When assigneeID is non-nil the update
// only matches tasks whose resolved assignee is that actor, so ownership is
// enforced by the database even if a caller-side check was bypassed.
// Returns ErrTaskNotFound if no row matched the id and ownership constraint.
func (r *TaskRepository) Update(
	ctx context.Context,
	taskID string,
	patch domain.TaskPatch,
	assigneeID *string,
) (*domain.Task, error) {
	qb := psql.Update("tasks")

	if patch.Title != nil {
		qb = qb.Set("title", *patch.Title)
	}
	if patch.Description != nil {
		qb = qb.Set("description", *patch.Description)
	}
	if patch.Priority != nil {
		qb = qb.Set("priority", *patch.Priority)
	}
	if patch.Completed != nil {
		qb = qb.Set("completed", *patch.Completed)
	}
	if patch.EstimatedTime != nil {
		qb = qb.Set("estimated_time", *patch.EstimatedTime)
	}
	if patch.Notes != nil {
		qb = qb.Set("notes", *patch.Notes)
	}
	if patch.AssignedTo != nil {
		qb = qb.Set("assigned_to", *patch.AssignedTo)
	}
	if patch.RoomID != nil {
		qb = qb.Set("room_id", *patch.RoomID)
	}

	qb = qb.Set("updated_at", sq.Expr("NOW()")).Where(sq.Eq{"id": taskID})
	if assigneeID != nil {
		qb = qb.Where(sq.Eq{resolvedAssignee: *assigneeID})
	}

	query, args, err := qb.Suffix("RETURNING " + joinColumns(taskColumns)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Update query for task %s: %w", taskID, err)
	}

	return scanTask(r.pool.QueryRow(ctx, query, args...))
}

// UpdateAssignee sets or clears the explicit assignee of a task.
func (r *TaskRepository) UpdateAssignee(ctx context.Context, taskID string, assigneeID *string) (*domain.Task, error) {
	return r.setNullable(ctx, taskID, "assigned_to", assigneeID)
}

// UpdateRoom sets or clears the room reference of a task.
func (r *TaskRepository) UpdateRoom(ctx context.Context, taskID string, roomID *string) (*domain.Task, error) {
	return r.setNullable(ctx, taskID, "room_id", roomID)
}

// setNullable writes a nullable column, where a nil value clears it.
func (r *TaskRepository) setNullable(ctx context.Context, taskID, column string, value *string) (*domain.Task, error) {
	query, args, err := psql.
		Update("tasks").
		Set(column, value).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": taskID}).
		Suffix("RETURNING " + joinColumns(taskColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update query for task %s: %w", taskID, err)
	}

	return scanTask(r.pool.QueryRow(ctx, query, args...))
}

// Delete removes a task.
// Returns ErrTaskNotFound if no task matched the id.
func (r *TaskRepository) Delete(ctx context.Context, taskID string) error {
	query, args, err := psql.
		Delete("tasks").
		Where(sq.Eq{"id": taskID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build Delete query for task %s: %w", taskID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}

// joinColumns renders a column list for RETURNING clauses.
func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}
