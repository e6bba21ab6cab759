package service_test

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/lodgeworks/roomkeeper/internal/domain"
)

// fakeTaskStore is an in-memory TaskStore mirroring the repository's
// semantics, including the resolved-assignee ownership constraint.
type fakeTaskStore struct {
	tasks map[string]*domain.Task
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: make(map[string]*domain.Task)}
}

func cloneTask(t *domain.Task) *domain.Task {
	c := *t
	return &c
}

func (s *fakeTaskStore) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	c := cloneTask(task)
	c.ID = uuid.New().String()
	if c.Priority == "" {
		c.Priority = domain.TaskPriorityMedium
	}
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	s.tasks[c.ID] = c
	return cloneTask(c), nil
}

func (s *fakeTaskStore) GetByID(ctx context.Context, taskID string) (*domain.Task, error) {
	task, ok := s.tasks[taskID]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return cloneTask(task), nil
}

func (s *fakeTaskStore) List(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, task := range s.tasks {
		if filter.AssigneeID != nil && !task.IsAssignedTo(*filter.AssigneeID) {
			continue
		}
		if filter.RoomID != nil && (task.RoomID == nil || *task.RoomID != *filter.RoomID) {
			continue
		}
		out = append(out, cloneTask(task))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *fakeTaskStore) Update(ctx context.Context, taskID string, patch domain.TaskPatch, assigneeID *string) (*domain.Task, error) {
	task, ok := s.tasks[taskID]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	if assigneeID != nil && !task.IsAssignedTo(*assigneeID) {
		return nil, domain.ErrTaskNotFound
	}
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.Completed != nil {
		task.Completed = *patch.Completed
	}
	if patch.EstimatedTime != nil {
		task.EstimatedTime = *patch.EstimatedTime
	}
	if patch.Notes != nil {
		task.Notes = patch.Notes
	}
	if patch.AssignedTo != nil {
		task.AssignedTo = patch.AssignedTo
	}
	if patch.RoomID != nil {
		task.RoomID = patch.RoomID
	}
	task.UpdatedAt = time.Now()
	return cloneTask(task), nil
}

func (s *fakeTaskStore) UpdateAssignee(ctx context.Context, taskID string, assigneeID *string) (*domain.Task, error) {
	task, ok := s.tasks[taskID]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	task.AssignedTo = assigneeID
	task.UpdatedAt = time.Now()
	return cloneTask(task), nil
}

func (s *fakeTaskStore) UpdateRoom(ctx context.Context, taskID string, roomID *string) (*domain.Task, error) {
	task, ok := s.tasks[taskID]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	task.RoomID = roomID
	task.UpdatedAt = time.Now()
	return cloneTask(task), nil
}

func (s *fakeTaskStore) Delete(ctx context.Context, taskID string) error {
	if _, ok := s.tasks[taskID]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(s.tasks, taskID)
	return nil
}

// fakeActorStore is an in-memory ActorStore over staff profiles.
type fakeActorStore struct {
	actors map[string]*domain.Actor
}

func newFakeActorStore(actors ...*domain.Actor) *fakeActorStore {
	s := &fakeActorStore{actors: make(map[string]*domain.Actor)}
	for _, actor := range actors {
		s.actors[actor.ID] = actor
	}
	return s
}

func (s *fakeActorStore) GetByID(ctx context.Context, actorID string) (*domain.Actor, error) {
	actor, ok := s.actors[actorID]
	if !ok {
		return nil, domain.ErrActorNotFound
	}
	c := *actor
	return &c, nil
}

// fakeRoomStore is an in-memory RoomStore. Deleting a room clears the room
// reference on tasks in the paired task store, matching the repository's
// transactional delete.
type fakeRoomStore struct {
	rooms map[string]*domain.Room
	tasks *fakeTaskStore
}

func newFakeRoomStore(tasks *fakeTaskStore) *fakeRoomStore {
	return &fakeRoomStore{rooms: make(map[string]*domain.Room), tasks: tasks}
}

func cloneRoom(r *domain.Room) *domain.Room {
	c := *r
	return &c
}

func (s *fakeRoomStore) List(ctx context.Context) ([]*domain.Room, error) {
	var out []*domain.Room
	for _, room := range s.rooms {
		out = append(out, cloneRoom(room))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *fakeRoomStore) GetByID(ctx context.Context, roomID string) (*domain.Room, error) {
	room, ok := s.rooms[roomID]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	return cloneRoom(room), nil
}

func (s *fakeRoomStore) NamesByIDs(ctx context.Context, roomIDs []string) (map[string]string, error) {
	names := make(map[string]string)
	for _, id := range roomIDs {
		if room, ok := s.rooms[id]; ok {
			names[id] = room.Name
		}
	}
	return names, nil
}

func (s *fakeRoomStore) Create(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	c := cloneRoom(room)
	c.ID = uuid.New().String()
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	s.rooms[c.ID] = c
	return cloneRoom(c), nil
}

func (s *fakeRoomStore) Update(ctx context.Context, roomID string, patch domain.RoomPatch) (*domain.Room, error) {
	room, ok := s.rooms[roomID]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	if patch.Name != nil {
		room.Name = *patch.Name
	}
	if patch.Description != nil {
		room.Description = patch.Description
	}
	room.UpdatedAt = time.Now()
	return cloneRoom(room), nil
}

func (s *fakeRoomStore) Delete(ctx context.Context, roomID string) error {
	if _, ok := s.rooms[roomID]; !ok {
		return domain.ErrRoomNotFound
	}
	delete(s.rooms, roomID)
	if s.tasks != nil {
		for _, task := range s.tasks.tasks {
			if task.RoomID != nil && *task.RoomID == roomID {
				task.RoomID = nil
			}
		}
	}
	return nil
}
