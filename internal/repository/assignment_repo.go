package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssignmentRepository interface {
	Create(ctx context.Context, assignment *model.AssetAssignment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.AssetAssignment, error)
	FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*model.AssetAssignment, error)
	List(ctx context.Context, status string, page, limit int) ([]model.AssetAssignment, int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.AssetAssignment, error)
	CloseGuard(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (int64, error)
}

type assignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *model.AssetAssignment) error {
	return GetDB(ctx, r.db).Create(assignment).Error
}

func (r *assignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.AssetAssignment, error) {
	var assignment model.AssetAssignment
	if err := GetDB(ctx, r.db).First(&assignment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepository) FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*model.AssetAssignment, error) {
	var assignment model.AssetAssignment
	if err := GetDB(ctx, r.db).Preload("Asset").Preload("User").First(&assignment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepository) List(ctx context.Context, status string, page, limit int) ([]model.AssetAssignment, int64, error) {
	var assignments []model.AssetAssignment
	var total int64

	db := GetDB(ctx, r.db)
	query := db.Model(&model.AssetAssignment{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	fetchQuery := db.Preload("Asset").Preload("User")
	if status != "" {
		fetchQuery = fetchQuery.Where("status = ?", status)
	}
	if err := fetchQuery.Order("issue_date DESC").Offset(offset).Limit(limit).Find(&assignments).Error; err != nil {
		return nil, 0, err
	}

	return assignments, total, nil
}

func (r *assignmentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.AssetAssignment, error) {
	var assignments []model.AssetAssignment
	if err := GetDB(ctx, r.db).Preload("Asset").
		Where("user_id = ?", userID).Order("issue_date DESC").Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// CloseGuard marks an ACTIVE assignment RETURNED; 0 affected rows means the
// assignment was already closed.
func (r *assignmentRepository) CloseGuard(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (int64, error) {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = model.AssignmentReturned

	res := GetDB(ctx, r.db).Model(&model.AssetAssignment{}).
		Where("id = ? AND status = ?", id, model.AssignmentActive).
		Updates(updates)
	return res.RowsAffected, res.Error
}
