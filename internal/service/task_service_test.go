package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lodgeworks/roomkeeper/internal/domain"
	"github.com/lodgeworks/roomkeeper/internal/service"
	"github.com/stretchr/testify/suite"
)

// TaskServiceTestSuite is the test suite for TaskService.
type TaskServiceTestSuite struct {
	suite.Suite
	tasks       *fakeTaskStore
	rooms       *fakeRoomStore
	taskService *service.TaskService

	admin  *domain.Actor
	keeper *domain.Actor
	other  *domain.Actor
}

// SetupTest runs before each test.
func (s *TaskServiceTestSuite) SetupTest() {
	s.tasks = newFakeTaskStore()
	s.rooms = newFakeRoomStore(s.tasks)

	s.admin = &domain.Actor{ID: uuid.New().String(), Role: domain.RoleAdmin}
	s.keeper = &domain.Actor{ID: uuid.New().String(), Role: domain.RoleHousekeeper}
	s.other = &domain.Actor{ID: uuid.New().String(), Role: domain.RoleHousekeeper}

	s.taskService = service.NewTaskService(s.tasks, s.rooms, newFakeActorStore(s.admin, s.keeper, s.other))
}

func (s *TaskServiceTestSuite) createTask(params service.CreateTaskParams) *domain.Task {
	task, _, err := s.taskService.CreateTask(context.Background(), s.admin, params)
	s.Require().NoError(err)
	return task
}

func (s *TaskServiceTestSuite) TestCreateTaskDefaultsAssigneeToCreator() {
	task := s.createTask(service.CreateTaskParams{Title: "Restock towels"})

	s.Require().NotNil(task.AssignedTo)
	s.Equal(s.admin.ID, *task.AssignedTo)
	s.Equal(s.admin.ID, task.Assignee())
	s.Equal(domain.TaskPriorityMedium, task.Priority)
}

func (s *TaskServiceTestSuite) TestCreateTaskRequiresTitle() {
	_, _, err := s.taskService.CreateTask(context.Background(), s.admin, service.CreateTaskParams{})
	s.ErrorIs(err, domain.ErrTitleRequired)
}

func (s *TaskServiceTestSuite) TestCreateTaskRejectsInvalidPriority() {
	_, _, err := s.taskService.CreateTask(context.Background(), s.admin, service.CreateTaskParams{
		Title:    "Vacuum hallway",
		Priority: "urgent",
	})
	s.ErrorIs(err, domain.ErrInvalidPriority)
}

func (s *TaskServiceTestSuite) TestCreateTaskDeniedForHousekeeper() {
	_, intents, err := s.taskService.CreateTask(context.Background(), s.keeper, service.CreateTaskParams{
		Title: "Vacuum hallway",
	})
	s.ErrorIs(err, domain.ErrPermissionDenied)
	s.Empty(intents)

	all, err := s.taskService.ListVisibleTasks(context.Background(), s.admin, nil)
	s.Require().NoError(err)
	s.Empty(all)
}

func (s *TaskServiceTestSuite) TestListVisibleTasksAdminSeesAll() {
	s.createTask(service.CreateTaskParams{Title: "Clean pool", AssignedTo: &s.keeper.ID})
	s.createTask(service.CreateTaskParams{Title: "Trim hedges", AssignedTo: &s.other.ID})
	s.createTask(service.CreateTaskParams{Title: "Order supplies"})

	tasks, err := s.taskService.ListVisibleTasks(context.Background(), s.admin, nil)
	s.Require().NoError(err)
	s.Len(tasks, 3)
}

func (s *TaskServiceTestSuite) TestListVisibleTasksHousekeeperSeesOwnOnly() {
	assigned := s.createTask(service.CreateTaskParams{Title: "Clean pool", AssignedTo: &s.keeper.ID})
	s.createTask(service.CreateTaskParams{Title: "Trim hedges", AssignedTo: &s.other.ID})
	s.createTask(service.CreateTaskParams{Title: "Order supplies"})

	tasks, err := s.taskService.ListVisibleTasks(context.Background(), s.keeper, nil)
	s.Require().NoError(err)
	s.Require().Len(tasks, 1)
	s.Equal(assigned.ID, tasks[0].ID)
}

func (s *TaskServiceTestSuite) TestListVisibleTasksFallbackOwnershipCounts() {
	// A task created by the keeper's ID without an explicit assignee resolves
	// to the creator, so it shows up in the keeper's list.
	created, err := s.tasks.Create(context.Background(), &domain.Task{
		Title:     "Report broken lamp",
		CreatedBy: s.keeper.ID,
	})
	s.Require().NoError(err)

	tasks, err := s.taskService.ListVisibleTasks(context.Background(), s.keeper, nil)
	s.Require().NoError(err)
	s.Require().Len(tasks, 1)
	s.Equal(created.ID, tasks[0].ID)
}

func (s *TaskServiceTestSuite) TestListVisibleTasksRoomFilter() {
	room, err := s.rooms.Create(context.Background(), &domain.Room{Name: "Suite 12", CreatedBy: s.admin.ID})
	s.Require().NoError(err)

	inRoom := s.createTask(service.CreateTaskParams{Title: "Change sheets", RoomID: &room.ID})
	s.createTask(service.CreateTaskParams{Title: "Order supplies"})

	tasks, err := s.taskService.ListVisibleTasks(context.Background(), s.admin, &room.ID)
	s.Require().NoError(err)
	s.Require().Len(tasks, 1)
	s.Equal(inRoom.ID, tasks[0].ID)
	s.Require().NotNil(tasks[0].RoomName)
	s.Equal("Suite 12", *tasks[0].RoomName)
}

func (s *TaskServiceTestSuite) TestUpdateTaskEmptyPatch() {
	task := s.createTask(service.CreateTaskParams{Title: "Clean pool"})

	_, err := s.taskService.UpdateTask(context.Background(), s.admin, task.ID, domain.TaskPatch{})
	s.ErrorIs(err, domain.ErrEmptyPatch)
}

func (s *TaskServiceTestSuite) TestUpdateTaskHousekeeperCompletionOnly() {
	task := s.createTask(service.CreateTaskParams{Title: "Clean pool", AssignedTo: &s.keeper.ID})

	newTitle := "Drain pool"
	_, err := s.taskService.UpdateTask(context.Background(), s.keeper, task.ID, domain.TaskPatch{Title: &newTitle})
	s.ErrorIs(err, domain.ErrPermissionDenied)

	completed := true
	updated, err := s.taskService.UpdateTask(context.Background(), s.keeper, task.ID, domain.TaskPatch{Completed: &completed})
	s.Require().NoError(err)
	s.True(updated.Completed)
	s.Equal("Clean pool", updated.Title)
}

func (s *TaskServiceTestSuite) TestUpdateTaskHousekeeperNotAssignee() {
	task := s.createTask(service.CreateTaskParams{Title: "Clean pool", AssignedTo: &s.other.ID})

	completed := true
	_, err := s.taskService.UpdateTask(context.Background(), s.keeper, task.ID, domain.TaskPatch{Completed: &completed})
	s.ErrorIs(err, domain.ErrPermissionDenied)

	_, err = s.taskService.ToggleCompletion(context.Background(), s.keeper, task.ID, true)
	s.ErrorIs(err, domain.ErrPermissionDenied)

	stored, err := s.tasks.GetByID(context.Background(), task.ID)
	s.Require().NoError(err)
	s.False(stored.Completed)
}

func (s *TaskServiceTestSuite) TestUpdateTaskHousekeeperMissingTask() {
	completed := true
	missing := uuid.New().String()

	_, err := s.taskService.UpdateTask(context.Background(), s.keeper, missing, domain.TaskPatch{Completed: &completed})
	s.ErrorIs(err, domain.ErrTaskNotFound)

	_, err = s.taskService.ToggleCompletion(context.Background(), s.keeper, missing, true)
	s.ErrorIs(err, domain.ErrTaskNotFound)
}

func (s *TaskServiceTestSuite) TestUpdateTaskAdminAnyField() {
	task := s.createTask(service.CreateTaskParams{Title: "Clean pool", AssignedTo: &s.keeper.ID})

	high := domain.TaskPriorityHigh
	newTitle := "Clean pool and deck"
	updated, err := s.taskService.UpdateTask(context.Background(), s.admin, task.ID, domain.TaskPatch{
		Title:    &newTitle,
		Priority: &high,
	})
	s.Require().NoError(err)
	s.Equal("Clean pool and deck", updated.Title)
	s.Equal(domain.TaskPriorityHigh, updated.Priority)
}

func (s *TaskServiceTestSuite) TestToggleCompletionRoundTrip() {
	task := s.createTask(service.CreateTaskParams{Title: "Clean pool", AssignedTo: &s.keeper.ID})

	done, err := s.taskService.ToggleCompletion(context.Background(), s.keeper, task.ID, true)
	s.Require().NoError(err)
	s.True(done.Completed)

	reopened, err := s.taskService.ToggleCompletion(context.Background(), s.keeper, task.ID, false)
	s.Require().NoError(err)
	s.False(reopened.Completed)
}

func (s *TaskServiceTestSuite) TestDeleteTaskAdminOnly() {
	task := s.createTask(service.CreateTaskParams{Title: "Clean pool", AssignedTo: &s.keeper.ID})

	err := s.taskService.DeleteTask(context.Background(), s.keeper, task.ID)
	s.ErrorIs(err, domain.ErrPermissionDenied)

	err = s.taskService.DeleteTask(context.Background(), s.admin, task.ID)
	s.Require().NoError(err)

	_, err = s.tasks.GetByID(context.Background(), task.ID)
	s.ErrorIs(err, domain.ErrTaskNotFound)
}

func (s *TaskServiceTestSuite) TestAssignTaskProducesTargetedIntent() {
	task := s.createTask(service.CreateTaskParams{Title: "Clean pool"})

	updated, intents, err := s.taskService.AssignTask(context.Background(), s.admin, task.ID, &s.keeper.ID)
	s.Require().NoError(err)
	s.Equal(s.keeper.ID, updated.Assignee())

	s.Require().Len(intents, 1)
	s.Equal("Task assigned to you", intents[0].Title)
	s.Equal([]string{s.keeper.ID}, intents[0].UserIDs)
	s.Empty(intents[0].Roles)
}

func (s *TaskServiceTestSuite) TestUnassignTaskProducesNoIntent() {
	task := s.createTask(service.CreateTaskParams{Title: "Clean pool", AssignedTo: &s.keeper.ID})

	updated, intents, err := s.taskService.AssignTask(context.Background(), s.admin, task.ID, nil)
	s.Require().NoError(err)
	s.Nil(updated.AssignedTo)
	s.Equal(s.admin.ID, updated.Assignee())
	s.Empty(intents)
}

func (s *TaskServiceTestSuite) TestAssignTaskRejectsUnknownUser() {
	task := s.createTask(service.CreateTaskParams{Title: "Clean pool"})

	unknown := uuid.New().String()
	_, _, err := s.taskService.AssignTask(context.Background(), s.admin, task.ID, &unknown)
	s.ErrorIs(err, domain.ErrActorNotFound)

	stored, err := s.tasks.GetByID(context.Background(), task.ID)
	s.Require().NoError(err)
	s.Equal(s.admin.ID, stored.Assignee())
}

func (s *TaskServiceTestSuite) TestAssignTaskDeniedForHousekeeper() {
	task := s.createTask(service.CreateTaskParams{Title: "Clean pool"})

	_, _, err := s.taskService.AssignTask(context.Background(), s.keeper, task.ID, &s.keeper.ID)
	s.ErrorIs(err, domain.ErrPermissionDenied)
}

func (s *TaskServiceTestSuite) TestAssignTaskToRoomRejectsUnknownRoom() {
	task := s.createTask(service.CreateTaskParams{Title: "Clean pool"})

	missing := uuid.New().String()
	_, err := s.taskService.AssignTaskToRoom(context.Background(), s.admin, task.ID, &missing)
	s.ErrorIs(err, domain.ErrRoomNotFound)
}

func (s *TaskServiceTestSuite) TestAssignTaskToRoomAndDetach() {
	room, err := s.rooms.Create(context.Background(), &domain.Room{Name: "Suite 12", CreatedBy: s.admin.ID})
	s.Require().NoError(err)
	task := s.createTask(service.CreateTaskParams{Title: "Change sheets"})

	attached, err := s.taskService.AssignTaskToRoom(context.Background(), s.admin, task.ID, &room.ID)
	s.Require().NoError(err)
	s.Require().NotNil(attached.RoomID)
	s.Equal(room.ID, *attached.RoomID)

	detached, err := s.taskService.AssignTaskToRoom(context.Background(), s.admin, task.ID, nil)
	s.Require().NoError(err)
	s.Nil(detached.RoomID)
}

func (s *TaskServiceTestSuite) TestSetNotes() {
	task := s.createTask(service.CreateTaskParams{Title: "Clean pool"})

	updated, err := s.taskService.SetNotes(context.Background(), s.admin, task.ID, "guest checks in at 3pm")
	s.Require().NoError(err)
	s.Require().NotNil(updated.Notes)
	s.Equal("guest checks in at 3pm", *updated.Notes)

	_, err = s.taskService.SetNotes(context.Background(), s.keeper, task.ID, "nope")
	s.ErrorIs(err, domain.ErrPermissionDenied)
}

func (s *TaskServiceTestSuite) TestStaleRoomReferenceOmitsName() {
	room, err := s.rooms.Create(context.Background(), &domain.Room{Name: "Suite 12", CreatedBy: s.admin.ID})
	s.Require().NoError(err)
	s.createTask(service.CreateTaskParams{Title: "Change sheets", RoomID: &room.ID})

	// Drop the room out from under the task without going through the room
	// service, leaving a dangling reference.
	delete(s.rooms.rooms, room.ID)

	tasks, err := s.taskService.ListVisibleTasks(context.Background(), s.admin, nil)
	s.Require().NoError(err)
	s.Require().Len(tasks, 1)
	s.Nil(tasks[0].RoomName)
}

func (s *TaskServiceTestSuite) TestCreateTaskIntents() {
	room, err := s.rooms.Create(context.Background(), &domain.Room{Name: "Suite 12", CreatedBy: s.admin.ID})
	s.Require().NoError(err)

	_, intents, err := s.taskService.CreateTask(context.Background(), s.admin, service.CreateTaskParams{
		Title:  "Change sheets",
		RoomID: &room.ID,
	})
	s.Require().NoError(err)

	s.Require().Len(intents, 2)
	s.Equal("New task created", intents[0].Title)
	s.Equal([]domain.Role{domain.RoleAdmin}, intents[0].Roles)
	s.Equal("New task assigned", intents[1].Title)
	s.Equal([]domain.Role{domain.RoleHousekeeper}, intents[1].Roles)
	s.Equal("Change sheets (Suite 12)", intents[0].Body)
	s.Equal("Change sheets (Suite 12)", intents[1].Body)
}

func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
