package service

import (
	"context"
	"testing"
	"time"

	"backend/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetsByCategory(t *testing.T) {
	env := newTestEnv(t)
	svc := NewReportService(env.db)

	assets := []model.Asset{
		{AssetTag: "LPT-001", Name: "Laptop A", Category: "laptop", PurchaseCost: decimal.RequireFromString("1000.00"), Status: model.AssetAvailable},
		{AssetTag: "LPT-002", Name: "Laptop B", Category: "laptop", PurchaseCost: decimal.RequireFromString("1500.50"), Status: model.AssetAssigned},
		{AssetTag: "MON-001", Name: "Monitor", Category: "monitor", PurchaseCost: decimal.RequireFromString("300.00"), Status: model.AssetAvailable},
	}
	for i := range assets {
		require.NoError(t, env.db.Create(&assets[i]).Error)
	}

	summaries, err := svc.AssetsByCategory(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	laptops := summaries[0]
	assert.Equal(t, "laptop", laptops.Category)
	assert.EqualValues(t, 2, laptops.Total)
	assert.EqualValues(t, 1, laptops.Available)
	assert.EqualValues(t, 1, laptops.Assigned)
	assert.True(t, laptops.TotalCost.Equal(decimal.RequireFromString("2500.50")), "got %s", laptops.TotalCost)

	monitors := summaries[1]
	assert.Equal(t, "monitor", monitors.Category)
	assert.EqualValues(t, 1, monitors.Total)
}

func TestMonthlyStats(t *testing.T) {
	env := newTestEnv(t)
	svc := NewReportService(env.db)
	employee := env.createUser(t, "alice", model.RoleEmployee)

	june := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	august := time.Date(2025, 8, 2, 9, 0, 0, 0, time.UTC)

	rows := []model.VacationRequest{
		{UserID: employee.ID, StartDate: june, EndDate: june.AddDate(0, 0, 2), Reason: "a", Status: model.StatusApproved, CreatedAt: june},
		{UserID: employee.ID, StartDate: june, EndDate: june.AddDate(0, 0, 2), Reason: "b", Status: model.StatusRejected, CreatedAt: june},
		{UserID: employee.ID, StartDate: august, EndDate: august.AddDate(0, 0, 2), Reason: "c", Status: model.StatusPending, CreatedAt: august},
	}
	for i := range rows {
		require.NoError(t, env.db.Create(&rows[i]).Error)
	}
	supply := model.SupplyRequest{
		UserID: employee.ID, ItemName: "pens", Quantity: 2, Justification: "x",
		Status: model.StatusFulfilled, CreatedAt: june,
	}
	require.NoError(t, env.db.Create(&supply).Error)

	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC)
	stats, err := svc.MonthlyStats(context.Background(), from, to)
	require.NoError(t, err)

	// Months are contiguous even when empty.
	require.Len(t, stats.Months, 3)
	assert.Equal(t, "2025-06", stats.Months[0].Month)
	assert.Equal(t, "2025-07", stats.Months[1].Month)
	assert.Equal(t, "2025-08", stats.Months[2].Month)

	juneStats := stats.Months[0]
	assert.EqualValues(t, 2, juneStats.VacationCreated)
	assert.EqualValues(t, 1, juneStats.VacationApproved)
	assert.EqualValues(t, 1, juneStats.VacationRejected)
	assert.EqualValues(t, 1, juneStats.SupplyCreated)
	// Fulfilled requests were approved along the way.
	assert.EqualValues(t, 1, juneStats.SupplyApproved)

	julyStats := stats.Months[1]
	assert.Zero(t, julyStats.VacationCreated)

	augustStats := stats.Months[2]
	assert.EqualValues(t, 1, augustStats.VacationCreated)
	assert.Zero(t, augustStats.VacationApproved)
}
