package service

import (
	"context"
	"testing"

	"backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) createAsset(t *testing.T, adminID, tag, category string) AssetResponse {
	t.Helper()

	asset, err := e.asset.CreateAsset(context.Background(), adminID, CreateAssetDTO{
		AssetTag:     tag,
		Name:         "Test " + tag,
		Category:     category,
		PurchaseCost: "1299.99",
	})
	require.NoError(t, err)
	return asset
}

func TestCreateAsset(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "boss", model.RoleAdmin)

	asset := env.createAsset(t, admin.ID.String(), "LPT-001", "laptop")
	assert.Equal(t, model.AssetAvailable, asset.Status)
	assert.Equal(t, "1299.99", asset.PurchaseCost)

	_, err := env.asset.CreateAsset(context.Background(), admin.ID.String(), CreateAssetDTO{
		AssetTag:     "LPT-002",
		Name:         "Laptop",
		Category:     "laptop",
		PurchaseCost: "not-a-number",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestApproveAssetRequestBindsAsset(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "boss", model.RoleAdmin)
	employee := env.createUser(t, "alice", model.RoleEmployee)
	ctx := context.Background()

	asset := env.createAsset(t, admin.ID.String(), "LPT-001", "laptop")

	request, err := env.asset.CreateRequest(ctx, employee.ID.String(), CreateAssetRequestDTO{
		Category: "laptop",
		Urgency:  model.UrgencyHigh,
	})
	require.NoError(t, err)
	assert.Equal(t, string(model.StatusPending), request.Status)

	approved, err := env.asset.Approve(ctx, request.ID, admin.ID.String(), ApproveAssetRequestDTO{
		AssetID: asset.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, string(model.StatusApproved), approved.Status)
	require.NotNil(t, approved.AssetID)
	assert.Equal(t, asset.ID, *approved.AssetID)

	// The asset left the availability pool and an active assignment exists.
	available, err := env.asset.ListAvailableAssets(ctx, "laptop")
	require.NoError(t, err)
	assert.Empty(t, available)

	assignments, total, err := env.asset.ListAssignments(ctx, model.AssignmentActive, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, assignments, 1)
	assert.Equal(t, employee.ID.String(), assignments[0].UserID)
	require.NotNil(t, assignments[0].RequestID)
	assert.Equal(t, request.ID, *assignments[0].RequestID)
}

func TestApproveAssetRequestAssetConflicts(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "boss", model.RoleAdmin)
	employee := env.createUser(t, "alice", model.RoleEmployee)
	ctx := context.Background()

	wanted := env.createAsset(t, admin.ID.String(), "LPT-001", "laptop")
	other := env.createAsset(t, admin.ID.String(), "LPT-002", "laptop")

	request, err := env.asset.CreateRequest(ctx, employee.ID.String(), CreateAssetRequestDTO{
		Category: "laptop",
		AssetID:  wanted.ID,
	})
	require.NoError(t, err)

	// Approving with a different asset than the one requested is refused.
	_, err = env.asset.Approve(ctx, request.ID, admin.ID.String(), ApproveAssetRequestDTO{
		AssetID: other.ID,
	})
	assert.ErrorIs(t, err, ErrValidation)

	// Binding an asset that is no longer available fails and rolls back the
	// approval.
	_, err = env.asset.CreateAssignment(ctx, admin.ID.String(), CreateAssignmentDTO{
		AssetID: wanted.ID,
		UserID:  admin.ID.String(),
	})
	require.NoError(t, err)

	_, err = env.asset.Approve(ctx, request.ID, admin.ID.String(), ApproveAssetRequestDTO{})
	assert.ErrorIs(t, err, ErrInvalidState)

	var stored model.AssetRequest
	require.NoError(t, env.db.First(&stored, "id = ?", request.ID).Error)
	assert.Equal(t, model.StatusPending, stored.Status)
}

func TestRejectAssetRequest(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "boss", model.RoleAdmin)
	employee := env.createUser(t, "alice", model.RoleEmployee)
	ctx := context.Background()

	request, err := env.asset.CreateRequest(ctx, employee.ID.String(), CreateAssetRequestDTO{
		Category: "monitor",
	})
	require.NoError(t, err)

	_, err = env.asset.Reject(ctx, request.ID, admin.ID.String(), "")
	assert.ErrorIs(t, err, ErrValidation)

	rejected, err := env.asset.Reject(ctx, request.ID, admin.ID.String(), "No budget this quarter")
	require.NoError(t, err)
	assert.Equal(t, string(model.StatusRejected), rejected.Status)
	assert.Equal(t, "No budget this quarter", rejected.RejectionReason)
}

func TestDirectAssignmentAndReturn(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "boss", model.RoleAdmin)
	employee := env.createUser(t, "alice", model.RoleEmployee)
	ctx := context.Background()

	asset := env.createAsset(t, admin.ID.String(), "LPT-001", "laptop")

	assignment, err := env.asset.CreateAssignment(ctx, admin.ID.String(), CreateAssignmentDTO{
		AssetID: asset.ID,
		UserID:  employee.ID.String(),
		DueDate: "2026-12-31",
	})
	require.NoError(t, err)
	assert.Equal(t, model.AssignmentActive, assignment.Status)
	assert.Nil(t, assignment.RequestID)
	require.NotNil(t, assignment.DueDate)
	assert.Equal(t, "2026-12-31", *assignment.DueDate)

	// Issuing the same asset twice fails while it is out.
	_, err = env.asset.CreateAssignment(ctx, admin.ID.String(), CreateAssignmentDTO{
		AssetID: asset.ID,
		UserID:  employee.ID.String(),
	})
	assert.ErrorIs(t, err, ErrInvalidState)

	returned, err := env.asset.ReturnAsset(ctx, assignment.ID, admin.ID.String())
	require.NoError(t, err)
	assert.Equal(t, model.AssignmentReturned, returned.Status)
	assert.NotNil(t, returned.ReturnDate)

	// The asset is available again.
	available, err := env.asset.ListAvailableAssets(ctx, "laptop")
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, asset.ID, available[0].ID)

	// A closed assignment cannot be returned twice.
	_, err = env.asset.ReturnAsset(ctx, assignment.ID, admin.ID.String())
	assert.ErrorIs(t, err, ErrInvalidState)

	assert.Contains(t, env.auditActions(t), model.ActionAssignAsset)
	assert.Contains(t, env.auditActions(t), model.ActionReturnAsset)
}

func TestDeleteAssetRequestPendingOnly(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "boss", model.RoleAdmin)
	employee := env.createUser(t, "alice", model.RoleEmployee)
	ctx := context.Background()

	request, err := env.asset.CreateRequest(ctx, employee.ID.String(), CreateAssetRequestDTO{
		Category: "keyboard",
	})
	require.NoError(t, err)

	_, err = env.asset.Approve(ctx, request.ID, admin.ID.String(), ApproveAssetRequestDTO{})
	require.NoError(t, err)

	err = env.asset.Delete(ctx, request.ID, employee.ID.String(), model.RoleEmployee)
	assert.ErrorIs(t, err, ErrInvalidState)
}
