package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SupplyRepository interface {
	Create(ctx context.Context, req *model.SupplyRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.SupplyRequest, error)
	FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*model.SupplyRequest, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]model.SupplyRequest, int64, error)
	List(ctx context.Context, status model.RequestStatus, page, limit int) ([]model.SupplyRequest, int64, error)
	UpdateStatusGuard(ctx context.Context, id uuid.UUID, from, to model.RequestStatus, updates map[string]interface{}) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type supplyRepository struct {
	db *gorm.DB
}

func NewSupplyRepository(db *gorm.DB) SupplyRepository {
	return &supplyRepository{db: db}
}

func (r *supplyRepository) Create(ctx context.Context, req *model.SupplyRequest) error {
	return GetDB(ctx, r.db).Create(req).Error
}

func (r *supplyRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.SupplyRequest, error) {
	var req model.SupplyRequest
	if err := GetDB(ctx, r.db).First(&req, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *supplyRepository) FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*model.SupplyRequest, error) {
	var req model.SupplyRequest
	if err := GetDB(ctx, r.db).Preload("User").Preload("Approver").First(&req, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *supplyRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]model.SupplyRequest, int64, error) {
	var requests []model.SupplyRequest
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.SupplyRequest{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Approver").Where("user_id = ?", userID).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&requests).Error; err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

func (r *supplyRepository) List(ctx context.Context, status model.RequestStatus, page, limit int) ([]model.SupplyRequest, int64, error) {
	var requests []model.SupplyRequest
	var total int64

	db := GetDB(ctx, r.db)
	query := db.Model(&model.SupplyRequest{})
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

func (r *supplyRepository) UpdateStatusGuard(ctx context.Context, id uuid.UUID, from, to model.RequestStatus, updates map[string]interface{}) (int64, error) {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = to

	res := GetDB(ctx, r.db).Model(&model.SupplyRequest{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *supplyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Delete(&model.SupplyRequest{}, "id = ?", id).Error
}
