package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lodgeworks/roomkeeper/internal/authz"
	"github.com/lodgeworks/roomkeeper/internal/domain"
)

// RoomService coordinates room CRUD. Rooms are a pure grouping label; every
// mutation is admin only, while listing is open to all staff.
type RoomService struct {
	rooms RoomStore
}

// NewRoomService creates a new RoomService.
func NewRoomService(rooms RoomStore) *RoomService {
	return &RoomService{rooms: rooms}
}

// ListRooms returns all rooms ordered by name.
func (s *RoomService) ListRooms(ctx context.Context) ([]*domain.Room, error) {
	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

// CreateRoom persists a new room on behalf of an admin.
func (s *RoomService) CreateRoom(ctx context.Context, actor *domain.Actor, name string, description *string) (*domain.Room, error) {
	if err := authz.CheckOperation(actor.Role, authz.OpCreateRoom); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, domain.ErrNameRequired
	}

	room, err := s.rooms.Create(ctx, &domain.Room{
		Name:        name,
		Description: description,
		CreatedBy:   actor.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}

	slog.Info("room created", "room_id", room.ID, "actor_id", actor.ID)
	return room, nil
}

// UpdateRoom applies a partial update to a room. Admin only.
func (s *RoomService) UpdateRoom(ctx context.Context, actor *domain.Actor, roomID string, patch domain.RoomPatch) (*domain.Room, error) {
	if err := authz.CheckOperation(actor.Role, authz.OpUpdateRoom); err != nil {
		return nil, err
	}
	if patch.Name != nil && *patch.Name == "" {
		return nil, domain.ErrNameRequired
	}

	room, err := s.rooms.Update(ctx, roomID, patch)
	if err != nil {
		return nil, err
	}

	slog.Info("room updated", "room_id", room.ID, "actor_id", actor.ID)
	return room, nil
}

// DeleteRoom removes a room. Admin only. Tasks referencing the room are kept
// and merely lose their room reference.
func (s *RoomService) DeleteRoom(ctx context.Context, actor *domain.Actor, roomID string) error {
	if err := authz.CheckOperation(actor.Role, authz.OpDeleteRoom); err != nil {
		return err
	}

	if err := s.rooms.Delete(ctx, roomID); err != nil {
		return err
	}

	slog.Info("room deleted", "room_id", roomID, "actor_id", actor.ID)
	return nil
}
