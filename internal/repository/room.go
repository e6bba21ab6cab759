package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lodgeworks/roomkeeper/internal/domain"
)

// roomColumns is the shared list of columns for room queries.
var roomColumns = []string{
	"id", "name", "description", "created_by", "created_at", "updated_at",
}

// RoomRepository handles database operations for rooms.
type RoomRepository struct {
	pool *pgxpool.Pool
}

// NewRoomRepository creates a new RoomRepository.
func NewRoomRepository(pool *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{pool: pool}
}

// scanRoom scans a single row into a Room struct.
func scanRoom(row pgx.Row) (*domain.Room, error) {
	var room domain.Room
	err := row.Scan(
		&room.ID,
		&room.Name,
		&room.Description,
		&room.CreatedBy,
		&room.CreatedAt,
		&room.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, fmt.Errorf("scan room: %w", err)
	}
	return &room, nil
}

// List retrieves all rooms ordered by name.
func (r *RoomRepository) List(ctx context.Context) ([]*domain.Room, error) {
	query, args, err := psql.
		Select(roomColumns...).
		From("rooms").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build List query for rooms: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*domain.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate room rows: %w", err)
	}
	return rooms, nil
}

// GetByID retrieves a room by ID.
func (r *RoomRepository) GetByID(ctx context.Context, roomID string) (*domain.Room, error) {
	query, args, err := psql.
		Select(roomColumns...).
		From("rooms").
		Where(sq.Eq{"id": roomID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for room: %w", err)
	}

	return scanRoom(r.pool.QueryRow(ctx, query, args...))
}

// NamesByIDs resolves room display names for the given ids. Ids that no longer
// exist are simply absent from the result, so callers can render listings with
// dangling room references instead of failing them.
func (r *RoomRepository) NamesByIDs(ctx context.Context, roomIDs []string) (map[string]string, error) {
	if len(roomIDs) == 0 {
		return map[string]string{}, nil
	}

	query, args, err := psql.
		Select("id", "name").
		From("rooms").
		Where(sq.Eq{"id": roomIDs}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build NamesByIDs query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query room names: %w", err)
	}
	defer rows.Close()

	names := make(map[string]string, len(roomIDs))
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan room name: %w", err)
		}
		names[id] = name
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate room name rows: %w", err)
	}
	return names, nil
}

// Create creates a new room in the database.
// Returns the created room with ID, CreatedAt, and UpdatedAt populated.
func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	query, args, err := psql.
		Insert("rooms").
		Columns("name", "description", "created_by").
		Values(room.Name, room.Description, room.CreatedBy).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Create query for room: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&room.ID, &room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}

	return room, nil
}

// Update applies a partial update to a room.
// Returns ErrRoomNotFound if no room matched the id.
func (r *RoomRepository) Update(ctx context.Context, roomID string, patch domain.RoomPatch) (*domain.Room, error) {
	qb := psql.Update("rooms")

	if patch.Name != nil {
		qb = qb.Set("name", *patch.Name)
	}
	if patch.Description != nil {
		qb = qb.Set("description", *patch.Description)
	}

	query, args, err := qb.
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": roomID}).
		Suffix("RETURNING " + joinColumns(roomColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Update query for room %s: %w", roomID, err)
	}

	return scanRoom(r.pool.QueryRow(ctx, query, args...))
}

// Delete removes a room after clearing the room reference on every task that
// points to it. Tasks survive room deletion; only the grouping is lost.
// Returns ErrRoomNotFound if no room matched the id.
func (r *RoomRepository) Delete(ctx context.Context, roomID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && err.Error() != "tx is closed" {
			slog.Error("failed to rollback transaction", "error", err)
		}
	}()

	detach, detachArgs, err := psql.
		Update("tasks").
		Set("room_id", nil).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"room_id": roomID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build detach query for room %s: %w", roomID, err)
	}

	if _, err := tx.Exec(ctx, detach, detachArgs...); err != nil {
		return fmt.Errorf("detach tasks from room: %w", err)
	}

	del, delArgs, err := psql.
		Delete("rooms").
		Where(sq.Eq{"id": roomID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build Delete query for room %s: %w", roomID, err)
	}

	tag, err := tx.Exec(ctx, del, delArgs...)
	if err != nil {
		return fmt.Errorf("delete room: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRoomNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
