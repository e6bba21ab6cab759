package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lodgeworks/roomkeeper/internal/domain"
	"github.com/lodgeworks/roomkeeper/internal/service"
	"github.com/stretchr/testify/suite"
)

// RoomServiceTestSuite is the test suite for RoomService.
type RoomServiceTestSuite struct {
	suite.Suite
	tasks       *fakeTaskStore
	rooms       *fakeRoomStore
	roomService *service.RoomService
	taskService *service.TaskService

	admin  *domain.Actor
	keeper *domain.Actor
}

// SetupTest runs before each test.
func (s *RoomServiceTestSuite) SetupTest() {
	s.tasks = newFakeTaskStore()
	s.rooms = newFakeRoomStore(s.tasks)
	s.roomService = service.NewRoomService(s.rooms)

	s.admin = &domain.Actor{ID: uuid.New().String(), Role: domain.RoleAdmin}
	s.keeper = &domain.Actor{ID: uuid.New().String(), Role: domain.RoleHousekeeper}

	s.taskService = service.NewTaskService(s.tasks, s.rooms, newFakeActorStore(s.admin, s.keeper))
}

func (s *RoomServiceTestSuite) TestCreateRoom() {
	desc := "second floor corner suite"
	room, err := s.roomService.CreateRoom(context.Background(), s.admin, "Suite 12", &desc)
	s.Require().NoError(err)
	s.NotEmpty(room.ID)
	s.Equal("Suite 12", room.Name)
	s.Equal(s.admin.ID, room.CreatedBy)
}

func (s *RoomServiceTestSuite) TestCreateRoomRequiresName() {
	_, err := s.roomService.CreateRoom(context.Background(), s.admin, "", nil)
	s.ErrorIs(err, domain.ErrNameRequired)
}

func (s *RoomServiceTestSuite) TestCreateRoomDeniedForHousekeeper() {
	_, err := s.roomService.CreateRoom(context.Background(), s.keeper, "Suite 12", nil)
	s.ErrorIs(err, domain.ErrPermissionDenied)
}

func (s *RoomServiceTestSuite) TestListRoomsOpenToAllStaff() {
	_, err := s.roomService.CreateRoom(context.Background(), s.admin, "Suite 12", nil)
	s.Require().NoError(err)
	_, err = s.roomService.CreateRoom(context.Background(), s.admin, "Lobby", nil)
	s.Require().NoError(err)

	rooms, err := s.roomService.ListRooms(context.Background())
	s.Require().NoError(err)
	s.Require().Len(rooms, 2)
	s.Equal("Lobby", rooms[0].Name)
	s.Equal("Suite 12", rooms[1].Name)
}

func (s *RoomServiceTestSuite) TestUpdateRoom() {
	room, err := s.roomService.CreateRoom(context.Background(), s.admin, "Suite 12", nil)
	s.Require().NoError(err)

	newName := "Suite 12A"
	updated, err := s.roomService.UpdateRoom(context.Background(), s.admin, room.ID, domain.RoomPatch{Name: &newName})
	s.Require().NoError(err)
	s.Equal("Suite 12A", updated.Name)
}

func (s *RoomServiceTestSuite) TestUpdateRoomRejectsEmptyName() {
	room, err := s.roomService.CreateRoom(context.Background(), s.admin, "Suite 12", nil)
	s.Require().NoError(err)

	empty := ""
	_, err = s.roomService.UpdateRoom(context.Background(), s.admin, room.ID, domain.RoomPatch{Name: &empty})
	s.ErrorIs(err, domain.ErrNameRequired)
}

func (s *RoomServiceTestSuite) TestUpdateRoomNotFound() {
	newName := "Suite 12A"
	_, err := s.roomService.UpdateRoom(context.Background(), s.admin, uuid.New().String(), domain.RoomPatch{Name: &newName})
	s.ErrorIs(err, domain.ErrRoomNotFound)
}

func (s *RoomServiceTestSuite) TestDeleteRoomDetachesTasks() {
	room, err := s.roomService.CreateRoom(context.Background(), s.admin, "Suite 12", nil)
	s.Require().NoError(err)

	task, _, err := s.taskService.CreateTask(context.Background(), s.admin, service.CreateTaskParams{
		Title:  "Change sheets",
		RoomID: &room.ID,
	})
	s.Require().NoError(err)

	err = s.roomService.DeleteRoom(context.Background(), s.admin, room.ID)
	s.Require().NoError(err)

	stored, err := s.tasks.GetByID(context.Background(), task.ID)
	s.Require().NoError(err)
	s.Nil(stored.RoomID)
}

func (s *RoomServiceTestSuite) TestDeleteRoomDeniedForHousekeeper() {
	room, err := s.roomService.CreateRoom(context.Background(), s.admin, "Suite 12", nil)
	s.Require().NoError(err)

	err = s.roomService.DeleteRoom(context.Background(), s.keeper, room.ID)
	s.ErrorIs(err, domain.ErrPermissionDenied)

	_, err = s.rooms.GetByID(context.Background(), room.ID)
	s.Require().NoError(err)
}

func TestRoomServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RoomServiceTestSuite))
}
