package service

import (
	"context"
	"testing"
	"time"

	"backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateVacationRequest(t *testing.T) {
	env := newTestEnv(t)
	employee := env.createUser(t, "alice", model.RoleEmployee)

	resp, err := env.vacation.Create(context.Background(), employee.ID.String(), CreateVacationRequestDTO{
		StartDate: "2025-06-01",
		EndDate:   "2025-06-05",
		Reason:    "Family trip",
	})
	require.NoError(t, err)

	assert.Equal(t, string(model.StatusPending), resp.Status)
	assert.Equal(t, 5, resp.DurationDays)
	assert.Nil(t, resp.ApprovedBy)
	assert.Nil(t, resp.ApprovedAt)
	assert.Contains(t, env.auditActions(t), model.ActionCreateVacationRequest)
}

func TestCreateVacationRequestValidation(t *testing.T) {
	env := newTestEnv(t)
	employee := env.createUser(t, "alice", model.RoleEmployee)
	ctx := context.Background()

	_, err := env.vacation.Create(ctx, employee.ID.String(), CreateVacationRequestDTO{
		StartDate: "2025-06-05",
		EndDate:   "2025-06-01",
		Reason:    "Backwards",
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.vacation.Create(ctx, employee.ID.String(), CreateVacationRequestDTO{
		StartDate: "2025-06-01",
		EndDate:   "2025-06-05",
		Reason:    "   ",
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.vacation.Create(ctx, employee.ID.String(), CreateVacationRequestDTO{
		StartDate: "June 1st",
		EndDate:   "2025-06-05",
		Reason:    "Bad date",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestApproveVacationRequest(t *testing.T) {
	env := newTestEnv(t)
	employee := env.createUser(t, "alice", model.RoleEmployee)
	admin := env.createUser(t, "boss", model.RoleAdmin)
	ctx := context.Background()

	created, err := env.vacation.Create(ctx, employee.ID.String(), CreateVacationRequestDTO{
		StartDate: "2025-06-01",
		EndDate:   "2025-06-05",
		Reason:    "Family trip",
	})
	require.NoError(t, err)

	approved, err := env.vacation.Approve(ctx, created.ID, admin.ID.String())
	require.NoError(t, err)
	assert.Equal(t, string(model.StatusApproved), approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, admin.ID.String(), *approved.ApprovedBy)
	assert.NotNil(t, approved.ApprovedAt)

	// A second decision on the same request must fail.
	_, err = env.vacation.Approve(ctx, created.ID, admin.ID.String())
	assert.ErrorIs(t, err, ErrInvalidState)
	_, err = env.vacation.Reject(ctx, created.ID, admin.ID.String(), "too late")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestApproveLosesRaceToConcurrentDecision(t *testing.T) {
	env := newTestEnv(t)
	employee := env.createUser(t, "alice", model.RoleEmployee)
	admin := env.createUser(t, "boss", model.RoleAdmin)
	ctx := context.Background()

	created, err := env.vacation.Create(ctx, employee.ID.String(), CreateVacationRequestDTO{
		StartDate: "2025-06-01",
		EndDate:   "2025-06-05",
		Reason:    "Family trip",
	})
	require.NoError(t, err)

	// Another admin decided between our read and our write: the guarded
	// update must refuse to overwrite it.
	require.NoError(t, env.db.Model(&model.VacationRequest{}).
		Where("id = ?", created.ID).
		Update("status", model.StatusRejected).Error)

	_, err = env.vacation.Approve(ctx, created.ID, admin.ID.String())
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestRejectVacationRequestRequiresReason(t *testing.T) {
	env := newTestEnv(t)
	employee := env.createUser(t, "alice", model.RoleEmployee)
	admin := env.createUser(t, "boss", model.RoleAdmin)
	ctx := context.Background()

	created, err := env.vacation.Create(ctx, employee.ID.String(), CreateVacationRequestDTO{
		StartDate: "2025-06-01",
		EndDate:   "2025-06-05",
		Reason:    "Family trip",
	})
	require.NoError(t, err)

	_, err = env.vacation.Reject(ctx, created.ID, admin.ID.String(), "   ")
	assert.ErrorIs(t, err, ErrValidation)

	rejected, err := env.vacation.Reject(ctx, created.ID, admin.ID.String(), "Blackout period")
	require.NoError(t, err)
	assert.Equal(t, string(model.StatusRejected), rejected.Status)
	assert.Equal(t, "Blackout period", rejected.RejectionReason)
}

func TestResubmitVacationRequest(t *testing.T) {
	env := newTestEnv(t)
	employee := env.createUser(t, "alice", model.RoleEmployee)
	other := env.createUser(t, "mallory", model.RoleEmployee)
	admin := env.createUser(t, "boss", model.RoleAdmin)
	ctx := context.Background()

	created, err := env.vacation.Create(ctx, employee.ID.String(), CreateVacationRequestDTO{
		StartDate: "2025-06-01",
		EndDate:   "2025-06-05",
		Reason:    "Family trip",
	})
	require.NoError(t, err)

	// Pending requests cannot be resubmitted.
	_, err = env.vacation.Resubmit(ctx, employee.ID.String(), created.ID, CreateVacationRequestDTO{
		StartDate: "2025-07-01",
		EndDate:   "2025-07-03",
		Reason:    "Second try",
	})
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = env.vacation.Reject(ctx, created.ID, admin.ID.String(), "Blackout period")
	require.NoError(t, err)

	// Only the owner may resubmit.
	_, err = env.vacation.Resubmit(ctx, other.ID.String(), created.ID, CreateVacationRequestDTO{
		StartDate: "2025-07-01",
		EndDate:   "2025-07-03",
		Reason:    "Second try",
	})
	assert.ErrorIs(t, err, ErrForbidden)

	resubmitted, err := env.vacation.Resubmit(ctx, employee.ID.String(), created.ID, CreateVacationRequestDTO{
		StartDate: "2025-07-01",
		EndDate:   "2025-07-03",
		Reason:    "Second try",
	})
	require.NoError(t, err)
	assert.Equal(t, string(model.StatusPending), resubmitted.Status)
	require.NotNil(t, resubmitted.OriginalRequestID)
	assert.Equal(t, created.ID, *resubmitted.OriginalRequestID)

	// The rejected original is untouched.
	var original model.VacationRequest
	require.NoError(t, env.db.First(&original, "id = ?", created.ID).Error)
	assert.Equal(t, model.StatusRejected, original.Status)
}

func TestCancelPendingRequestDeletesIt(t *testing.T) {
	env := newTestEnv(t)
	employee := env.createUser(t, "alice", model.RoleEmployee)
	ctx := context.Background()

	created, err := env.vacation.Create(ctx, employee.ID.String(), CreateVacationRequestDTO{
		StartDate: "2025-06-01",
		EndDate:   "2025-06-05",
		Reason:    "Family trip",
	})
	require.NoError(t, err)

	_, deleted, err := env.vacation.Cancel(ctx, created.ID, employee.ID.String(), model.RoleEmployee)
	require.NoError(t, err)
	assert.True(t, deleted)

	var count int64
	require.NoError(t, env.db.Model(&model.VacationRequest{}).Where("id = ?", created.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCancelApprovedFutureRequest(t *testing.T) {
	env := newTestEnv(t)
	employee := env.createUser(t, "alice", model.RoleEmployee)
	admin := env.createUser(t, "boss", model.RoleAdmin)
	ctx := context.Background()

	start := time.Now().AddDate(0, 1, 0)
	created, err := env.vacation.Create(ctx, employee.ID.String(), CreateVacationRequestDTO{
		StartDate: start.Format("2006-01-02"),
		EndDate:   start.AddDate(0, 0, 4).Format("2006-01-02"),
		Reason:    "Family trip",
	})
	require.NoError(t, err)
	_, err = env.vacation.Approve(ctx, created.ID, admin.ID.String())
	require.NoError(t, err)

	resp, deleted, err := env.vacation.Cancel(ctx, created.ID, employee.ID.String(), model.RoleEmployee)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, string(model.StatusCancelled), resp.Status)
}

func TestCancelApprovedStartedRequestFails(t *testing.T) {
	env := newTestEnv(t)
	employee := env.createUser(t, "alice", model.RoleEmployee)
	admin := env.createUser(t, "boss", model.RoleAdmin)
	ctx := context.Background()

	start := time.Now().AddDate(0, 0, -1)
	created, err := env.vacation.Create(ctx, employee.ID.String(), CreateVacationRequestDTO{
		StartDate: start.Format("2006-01-02"),
		EndDate:   start.AddDate(0, 0, 5).Format("2006-01-02"),
		Reason:    "Family trip",
	})
	require.NoError(t, err)
	_, err = env.vacation.Approve(ctx, created.ID, admin.ID.String())
	require.NoError(t, err)

	_, _, err = env.vacation.Cancel(ctx, created.ID, employee.ID.String(), model.RoleEmployee)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestDeleteVacationRequestOwnership(t *testing.T) {
	env := newTestEnv(t)
	employee := env.createUser(t, "alice", model.RoleEmployee)
	other := env.createUser(t, "mallory", model.RoleEmployee)
	ctx := context.Background()

	created, err := env.vacation.Create(ctx, employee.ID.String(), CreateVacationRequestDTO{
		StartDate: "2025-06-01",
		EndDate:   "2025-06-05",
		Reason:    "Family trip",
	})
	require.NoError(t, err)

	err = env.vacation.Delete(ctx, created.ID, other.ID.String(), model.RoleEmployee)
	assert.ErrorIs(t, err, ErrForbidden)

	err = env.vacation.Delete(ctx, created.ID, employee.ID.String(), model.RoleEmployee)
	require.NoError(t, err)
}

func TestListVacationRequests(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", model.RoleEmployee)
	bob := env.createUser(t, "bob", model.RoleEmployee)
	admin := env.createUser(t, "boss", model.RoleAdmin)
	ctx := context.Background()

	first, err := env.vacation.Create(ctx, alice.ID.String(), CreateVacationRequestDTO{
		StartDate: "2025-06-01", EndDate: "2025-06-05", Reason: "Trip",
	})
	require.NoError(t, err)
	_, err = env.vacation.Create(ctx, bob.ID.String(), CreateVacationRequestDTO{
		StartDate: "2025-06-10", EndDate: "2025-06-12", Reason: "Move",
	})
	require.NoError(t, err)
	_, err = env.vacation.Approve(ctx, first.ID, admin.ID.String())
	require.NoError(t, err)

	mine, total, err := env.vacation.ListMine(ctx, alice.ID.String(), 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, mine, 1)
	assert.Equal(t, alice.ID.String(), mine[0].UserID)

	pending, total, err := env.vacation.List(ctx, model.StatusPending, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, pending, 1)
	assert.Equal(t, bob.ID.String(), pending[0].UserID)

	_, _, err = env.vacation.List(ctx, model.RequestStatus("WEIRD"), 1, 20)
	assert.ErrorIs(t, err, ErrValidation)
}
