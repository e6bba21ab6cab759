package domain

import "time"

// Room represents a grouping label for tasks.
type Room struct {
	ID          string
	Name        string
	Description *string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RoomPatch is a partial room update. Nil fields are left untouched.
type RoomPatch struct {
	Name        *string
	Description *string
}
