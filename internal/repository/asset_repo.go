package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssetRepository interface {
	Create(ctx context.Context, asset *model.Asset) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Asset, error)
	List(ctx context.Context, page, limit int) ([]model.Asset, int64, error)
	ListAvailable(ctx context.Context, category string) ([]model.Asset, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to string) (int64, error)
}

type assetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) AssetRepository {
	return &assetRepository{db: db}
}

func (r *assetRepository) Create(ctx context.Context, asset *model.Asset) error {
	return GetDB(ctx, r.db).Create(asset).Error
}

func (r *assetRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Asset, error) {
	var asset model.Asset
	if err := GetDB(ctx, r.db).First(&asset, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *assetRepository) List(ctx context.Context, page, limit int) ([]model.Asset, int64, error) {
	var assets []model.Asset
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.Asset{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("asset_tag").Offset(offset).Limit(limit).Find(&assets).Error; err != nil {
		return nil, 0, err
	}

	return assets, total, nil
}

// ListAvailable returns assets that can currently be issued, optionally
// narrowed to one category.
func (r *assetRepository) ListAvailable(ctx context.Context, category string) ([]model.Asset, error) {
	var assets []model.Asset
	query := GetDB(ctx, r.db).Where("status = ?", model.AssetAvailable)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Order("asset_tag").Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

// UpdateStatus flips an asset between availability states with the same
// conditional-update guard used for request transitions.
func (r *assetRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to string) (int64, error) {
	res := GetDB(ctx, r.db).Model(&model.Asset{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}
