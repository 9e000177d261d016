package service

import (
	"context"
	"testing"

	"backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSupplyRequest(t *testing.T) {
	env := newTestEnv(t)
	employee := env.createUser(t, "alice", model.RoleEmployee)
	ctx := context.Background()

	created, err := env.supply.Create(ctx, employee.ID.String(), CreateSupplyRequestDTO{
		ItemName:      "Whiteboard markers",
		Quantity:      12,
		Justification: "Meeting room restock",
	})
	require.NoError(t, err)
	assert.Equal(t, string(model.StatusPending), created.Status)
	assert.Equal(t, model.UrgencyNormal, created.Urgency)

	_, err = env.supply.Create(ctx, employee.ID.String(), CreateSupplyRequestDTO{
		ItemName:      "Markers",
		Quantity:      0,
		Justification: "Restock",
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.supply.Create(ctx, employee.ID.String(), CreateSupplyRequestDTO{
		ItemName:      "  ",
		Quantity:      1,
		Justification: "Restock",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSupplyRequestLifecycle(t *testing.T) {
	env := newTestEnv(t)
	employee := env.createUser(t, "alice", model.RoleEmployee)
	admin := env.createUser(t, "boss", model.RoleAdmin)
	ctx := context.Background()

	created, err := env.supply.Create(ctx, employee.ID.String(), CreateSupplyRequestDTO{
		ItemName:      "Standing desk mat",
		Quantity:      1,
		Justification: "Ergonomics",
	})
	require.NoError(t, err)

	// Fulfilling before approval is refused.
	_, err = env.supply.Fulfill(ctx, created.ID, admin.ID.String())
	assert.ErrorIs(t, err, ErrInvalidState)

	approved, err := env.supply.Approve(ctx, created.ID, admin.ID.String())
	require.NoError(t, err)
	assert.Equal(t, string(model.StatusApproved), approved.Status)

	fulfilled, err := env.supply.Fulfill(ctx, created.ID, admin.ID.String())
	require.NoError(t, err)
	assert.Equal(t, string(model.StatusFulfilled), fulfilled.Status)

	// Fulfilled is terminal.
	_, err = env.supply.Fulfill(ctx, created.ID, admin.ID.String())
	assert.ErrorIs(t, err, ErrInvalidState)
	_, err = env.supply.Reject(ctx, created.ID, admin.ID.String(), "changed my mind")
	assert.ErrorIs(t, err, ErrInvalidState)

	assert.Contains(t, env.auditActions(t), model.ActionFulfillSupplyRequest)
}

func TestRejectSupplyRequest(t *testing.T) {
	env := newTestEnv(t)
	employee := env.createUser(t, "alice", model.RoleEmployee)
	admin := env.createUser(t, "boss", model.RoleAdmin)
	ctx := context.Background()

	created, err := env.supply.Create(ctx, employee.ID.String(), CreateSupplyRequestDTO{
		ItemName:      "Espresso machine",
		Quantity:      1,
		Justification: "Morale",
	})
	require.NoError(t, err)

	_, err = env.supply.Reject(ctx, created.ID, admin.ID.String(), " ")
	assert.ErrorIs(t, err, ErrValidation)

	rejected, err := env.supply.Reject(ctx, created.ID, admin.ID.String(), "Kitchen already has one")
	require.NoError(t, err)
	assert.Equal(t, string(model.StatusRejected), rejected.Status)
	assert.Equal(t, "Kitchen already has one", rejected.RejectionReason)
}

func TestDeleteSupplyRequest(t *testing.T) {
	env := newTestEnv(t)
	employee := env.createUser(t, "alice", model.RoleEmployee)
	other := env.createUser(t, "mallory", model.RoleEmployee)
	admin := env.createUser(t, "boss", model.RoleAdmin)
	ctx := context.Background()

	created, err := env.supply.Create(ctx, employee.ID.String(), CreateSupplyRequestDTO{
		ItemName:      "Notebooks",
		Quantity:      5,
		Justification: "Planning sessions",
	})
	require.NoError(t, err)

	err = env.supply.Delete(ctx, created.ID, other.ID.String(), model.RoleEmployee)
	assert.ErrorIs(t, err, ErrForbidden)

	// Admins may delete on the owner's behalf.
	err = env.supply.Delete(ctx, created.ID, admin.ID.String(), model.RoleAdmin)
	require.NoError(t, err)

	var count int64
	require.NoError(t, env.db.Model(&model.SupplyRequest{}).Where("id = ?", created.ID).Count(&count).Error)
	assert.Zero(t, count)
}
