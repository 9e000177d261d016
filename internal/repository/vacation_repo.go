package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VacationRepository interface {
	Create(ctx context.Context, req *model.VacationRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.VacationRequest, error)
	FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*model.VacationRequest, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]model.VacationRequest, int64, error)
	List(ctx context.Context, status model.RequestStatus, page, limit int) ([]model.VacationRequest, int64, error)
	UpdateStatusGuard(ctx context.Context, id uuid.UUID, from, to model.RequestStatus, updates map[string]interface{}) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type vacationRepository struct {
	db *gorm.DB
}

func NewVacationRepository(db *gorm.DB) VacationRepository {
	return &vacationRepository{db: db}
}

func (r *vacationRepository) Create(ctx context.Context, req *model.VacationRequest) error {
	return GetDB(ctx, r.db).Create(req).Error
}

func (r *vacationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.VacationRequest, error) {
	var req model.VacationRequest
	if err := GetDB(ctx, r.db).First(&req, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *vacationRepository) FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*model.VacationRequest, error) {
	var req model.VacationRequest
	if err := GetDB(ctx, r.db).Preload("User").Preload("Approver").First(&req, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *vacationRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]model.VacationRequest, int64, error) {
	var requests []model.VacationRequest
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.VacationRequest{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Approver").Where("user_id = ?", userID).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&requests).Error; err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

func (r *vacationRepository) List(ctx context.Context, status model.RequestStatus, page, limit int) ([]model.VacationRequest, int64, error) {
	var requests []model.VacationRequest
	var total int64

	db := GetDB(ctx, r.db)
	query := db.Model(&model.VacationRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	fetchQuery := db.Preload("User").Preload("Approver")
	if status != "" {
		fetchQuery = fetchQuery.Where("status = ?", status)
	}
	if err := fetchQuery.Order("created_at DESC").Offset(offset).Limit(limit).Find(&requests).Error; err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

// UpdateStatusGuard performs a conditional status transition: the UPDATE only
// matches while the row still holds the expected source status, so a race
// between two concurrent decisions resolves to a single winner. Returns the
// number of affected rows; 0 means the guard failed.
func (r *vacationRepository) UpdateStatusGuard(ctx context.Context, id uuid.UUID, from, to model.RequestStatus, updates map[string]interface{}) (int64, error) {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = to

	res := GetDB(ctx, r.db).Model(&model.VacationRequest{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *vacationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Delete(&model.VacationRequest{}, "id = ?", id).Error
}
