package service

import (
	"context"
	"fmt"
	"time"

	"backend/internal/model"

	"gorm.io/gorm"
)

type ReportService interface {
	AssetsByCategory(ctx context.Context) ([]model.CategorySummary, error)
	MonthlyStats(ctx context.Context, from, to time.Time) (model.MonthlyStatsResponse, error)
}

type reportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) ReportService {
	return &reportService{db: db}
}

// AssetsByCategory aggregates the asset inventory per category.
func (s *reportService) AssetsByCategory(ctx context.Context) ([]model.CategorySummary, error) {
	var summaries []model.CategorySummary

	err := s.db.WithContext(ctx).Model(&model.Asset{}).
		Select(`category,
			COUNT(*) as total,
			SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) as available,
			SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) as assigned,
			SUM(purchase_cost) as total_cost`, model.AssetAvailable, model.AssetAssigned).
		Group("category").
		Order("category").
		Scan(&summaries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate assets by category: %w", err)
	}

	return summaries, nil
}

// statusRow is the minimal projection used for month bucketing.
type statusRow struct {
	CreatedAt time.Time
	Status    model.RequestStatus
}

// MonthlyStats buckets request activity per calendar month between from and
// to, across all three request variants. Bucketing happens in Go so the query
// stays portable across the postgres production store and the sqlite test
// store.
func (s *reportService) MonthlyStats(ctx context.Context, from, to time.Time) (model.MonthlyStatsResponse, error) {
	resp := model.MonthlyStatsResponse{
		From: from.Format("2006-01-02"),
		To:   to.Format("2006-01-02"),
	}

	buckets := map[string]*model.MonthlyRequestStats{}
	bucket := func(t time.Time) *model.MonthlyRequestStats {
		key := t.Format("2006-01")
		if b, ok := buckets[key]; ok {
			return b
		}
		b := &model.MonthlyRequestStats{Month: key}
		buckets[key] = b
		return b
	}

	var vacations []statusRow
	if err := s.db.WithContext(ctx).Model(&model.VacationRequest{}).
		Select("created_at", "status").
		Where("created_at >= ? AND created_at <= ?", from, to).
		Scan(&vacations).Error; err != nil {
		return resp, fmt.Errorf("failed to load vacation stats: %w", err)
	}
	for _, row := range vacations {
		b := bucket(row.CreatedAt)
		b.VacationCreated++
		switch row.Status {
		case model.StatusApproved:
			b.VacationApproved++
		case model.StatusRejected:
			b.VacationRejected++
		}
	}

	var assets []statusRow
	if err := s.db.WithContext(ctx).Model(&model.AssetRequest{}).
		Select("created_at", "status").
		Where("created_at >= ? AND created_at <= ?", from, to).
		Scan(&assets).Error; err != nil {
		return resp, fmt.Errorf("failed to load asset request stats: %w", err)
	}
	for _, row := range assets {
		b := bucket(row.CreatedAt)
		b.AssetCreated++
		switch row.Status {
		case model.StatusApproved:
			b.AssetApproved++
		case model.StatusRejected:
			b.AssetRejected++
		}
	}

	var supplies []statusRow
	if err := s.db.WithContext(ctx).Model(&model.SupplyRequest{}).
		Select("created_at", "status").
		Where("created_at >= ? AND created_at <= ?", from, to).
		Scan(&supplies).Error; err != nil {
		return resp, fmt.Errorf("failed to load supply request stats: %w", err)
	}
	for _, row := range supplies {
		b := bucket(row.CreatedAt)
		b.SupplyCreated++
		switch row.Status {
		case model.StatusApproved:
			b.SupplyApproved++
		case model.StatusFulfilled:
			b.SupplyApproved++
		case model.StatusRejected:
			b.SupplyRejected++
		}
	}

	// Emit months in order.
	cursor := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cursor.After(end) {
		key := cursor.Format("2006-01")
		if b, ok := buckets[key]; ok {
			resp.Months = append(resp.Months, *b)
		} else {
			resp.Months = append(resp.Months, model.MonthlyRequestStats{Month: key})
		}
		cursor = cursor.AddDate(0, 1, 0)
	}

	return resp, nil
}
