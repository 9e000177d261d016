package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssetRequestRepository interface {
	Create(ctx context.Context, req *model.AssetRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.AssetRequest, error)
	FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*model.AssetRequest, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]model.AssetRequest, int64, error)
	List(ctx context.Context, status model.RequestStatus, page, limit int) ([]model.AssetRequest, int64, error)
	UpdateStatusGuard(ctx context.Context, id uuid.UUID, from, to model.RequestStatus, updates map[string]interface{}) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type assetRequestRepository struct {
	db *gorm.DB
}

func NewAssetRequestRepository(db *gorm.DB) AssetRequestRepository {
	return &assetRequestRepository{db: db}
}

func (r *assetRequestRepository) Create(ctx context.Context, req *model.AssetRequest) error {
	return GetDB(ctx, r.db).Create(req).Error
}

func (r *assetRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.AssetRequest, error) {
	var req model.AssetRequest
	if err := GetDB(ctx, r.db).First(&req, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *assetRequestRepository) FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*model.AssetRequest, error) {
	var req model.AssetRequest
	if err := GetDB(ctx, r.db).Preload("User").Preload("Approver").Preload("Asset").First(&req, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *assetRequestRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]model.AssetRequest, int64, error) {
	var requests []model.AssetRequest
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.AssetRequest{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Approver").Preload("Asset").Where("user_id = ?", userID).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&requests).Error; err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

func (r *assetRequestRepository) List(ctx context.Context, status model.RequestStatus, page, limit int) ([]model.AssetRequest, int64, error) {
	var requests []model.AssetRequest
	var total int64

	db := GetDB(ctx, r.db)
	query := db.Model(&model.AssetRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	fetchQuery := db.Preload("User").Preload("Approver").Preload("Asset")
	if status != "" {
		fetchQuery = fetchQuery.Where("status = ?", status)
	}
	if err := fetchQuery.Order("created_at DESC").Offset(offset).Limit(limit).Find(&requests).Error; err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

func (r *assetRequestRepository) UpdateStatusGuard(ctx context.Context, id uuid.UUID, from, to model.RequestStatus, updates map[string]interface{}) (int64, error) {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = to

	res := GetDB(ctx, r.db).Model(&model.AssetRequest{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *assetRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Delete(&model.AssetRequest{}, "id = ?", id).Error
}
