package authz_test

import (
	"testing"

	"github.com/lodgeworks/roomkeeper/internal/authz"
	"github.com/lodgeworks/roomkeeper/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestAdminAllowsEveryOperation(t *testing.T) {
	ops := []authz.Operation{
		authz.OpListTasks,
		authz.OpCreateTask,
		authz.OpUpdateTask,
		authz.OpToggleCompletion,
		authz.OpDeleteTask,
		authz.OpAssignTask,
		authz.OpAssignRoom,
		authz.OpSetNotes,
		authz.OpCreateRoom,
		authz.OpUpdateRoom,
		authz.OpDeleteRoom,
		authz.OpListUsers,
		authz.OpSetRole,
		authz.OpViewStats,
	}
	for _, op := range ops {
		assert.True(t, authz.Allows(domain.RoleAdmin, op), "admin should allow %s", op)
	}
}

func TestHousekeeperOperations(t *testing.T) {
	allowed := []authz.Operation{
		authz.OpListTasks,
		authz.OpUpdateTask,
		authz.OpToggleCompletion,
	}
	denied := []authz.Operation{
		authz.OpCreateTask,
		authz.OpDeleteTask,
		authz.OpAssignTask,
		authz.OpAssignRoom,
		authz.OpSetNotes,
		authz.OpCreateRoom,
		authz.OpUpdateRoom,
		authz.OpDeleteRoom,
		authz.OpListUsers,
		authz.OpSetRole,
		authz.OpViewStats,
	}
	for _, op := range allowed {
		assert.True(t, authz.Allows(domain.RoleHousekeeper, op), "housekeeper should allow %s", op)
	}
	for _, op := range denied {
		assert.False(t, authz.Allows(domain.RoleHousekeeper, op), "housekeeper should deny %s", op)
	}
}

func TestUnknownRoleAllowsNothing(t *testing.T) {
	assert.False(t, authz.Allows(domain.Role("manager"), authz.OpListTasks))
	assert.Error(t, authz.CheckOperation(domain.Role("manager"), authz.OpListTasks))
}

func TestCheckOperationWrapsPermissionDenied(t *testing.T) {
	err := authz.CheckOperation(domain.RoleHousekeeper, authz.OpDeleteTask)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestCheckTaskFields(t *testing.T) {
	err := authz.CheckTaskFields(domain.RoleHousekeeper, []domain.TaskField{domain.FieldCompleted})
	assert.NoError(t, err)

	err = authz.CheckTaskFields(domain.RoleHousekeeper, []domain.TaskField{domain.FieldCompleted, domain.FieldTitle})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	err = authz.CheckTaskFields(domain.RoleAdmin, []domain.TaskField{
		domain.FieldTitle,
		domain.FieldPriority,
		domain.FieldAssignedTo,
		domain.FieldRoomID,
	})
	assert.NoError(t, err)
}

func TestOwnershipRequired(t *testing.T) {
	assert.False(t, authz.OwnershipRequired(domain.RoleAdmin))
	assert.True(t, authz.OwnershipRequired(domain.RoleHousekeeper))
}
