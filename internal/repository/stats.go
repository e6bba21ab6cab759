package repository

import (
	"context"
	"fmt"
)

// RoomStatsResult holds open/completed counts for a single room.
// RoomID and RoomName are nil for the uncategorized bucket.
type RoomStatsResult struct {
	RoomID    *string
	RoomName  *string
	Open      int
	Completed int
}

// AssigneeStatsResult holds open/completed counts for a single staff member.
type AssigneeStatsResult struct {
	AssigneeID string
	FullName   *string
	Open       int
	Completed  int
}

// GetRoomStats retrieves task counts grouped by room. Tasks whose room was
// deleted fall into the uncategorized bucket together with never-assigned ones.
func (r *TaskRepository) GetRoomStats(ctx context.Context) ([]RoomStatsResult, error) {
	query := `
		SELECT
			rm.id,
			rm.name,
			COUNT(CASE WHEN NOT t.completed THEN 1 END) AS open,
			COUNT(CASE WHEN t.completed THEN 1 END) AS completed
		FROM tasks t
		LEFT JOIN rooms rm ON rm.id = t.room_id
		GROUP BY rm.id, rm.name
		ORDER BY rm.name NULLS LAST
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query room stats: %w", err)
	}
	defer rows.Close()

	var results []RoomStatsResult
	for rows.Next() {
		var result RoomStatsResult
		err := rows.Scan(
			&result.RoomID,
			&result.RoomName,
			&result.Open,
			&result.Completed,
		)
		if err != nil {
			return nil, fmt.Errorf("scan room stats: %w", err)
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate room stats rows: %w", err)
	}

	return results, nil
}

// GetAssigneeStats retrieves task counts grouped by the resolved assignee.
func (r *TaskRepository) GetAssigneeStats(ctx context.Context) ([]AssigneeStatsResult, error) {
	query := `
		SELECT
			p.id,
			p.full_name,
			COUNT(CASE WHEN NOT t.completed THEN 1 END) AS open,
			COUNT(CASE WHEN t.completed THEN 1 END) AS completed
		FROM profiles p
		LEFT JOIN tasks t ON COALESCE(t.assigned_to, t.created_by) = p.id
		GROUP BY p.id, p.full_name
		ORDER BY p.full_name NULLS LAST
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query assignee stats: %w", err)
	}
	defer rows.Close()

	var results []AssigneeStatsResult
	for rows.Next() {
		var result AssigneeStatsResult
		err := rows.Scan(
			&result.AssigneeID,
			&result.FullName,
			&result.Open,
			&result.Completed,
		)
		if err != nil {
			return nil, fmt.Errorf("scan assignee stats: %w", err)
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assignee stats rows: %w", err)
	}

	return results, nil
}
