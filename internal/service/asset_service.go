package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"backend/internal/model"
	"backend/internal/notification"
	"backend/internal/repository"
	ws "backend/internal/websocket"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateAssetDTO struct {
	AssetTag     string `json:"asset_tag" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Category     string `json:"category" binding:"required"`
	SerialNumber string `json:"serial_number"`
	PurchaseCost string `json:"purchase_cost"` // decimal string, optional
}

type CreateAssetRequestDTO struct {
	Category     string `json:"category" binding:"required"`
	AssetID      string `json:"asset_id"` // optional: request one specific asset
	Urgency      string `json:"urgency" binding:"omitempty,oneof=low normal high"`
	DurationDays int    `json:"duration_days" binding:"omitempty,gte=0"`
}

type ApproveAssetRequestDTO struct {
	AssetID string `json:"asset_id"` // optional: bind an asset and open an assignment
	DueDate string `json:"due_date"` // optional, YYYY-MM-DD
}

type CreateAssignmentDTO struct {
	AssetID string `json:"asset_id" binding:"required"`
	UserID  string `json:"user_id" binding:"required"`
	DueDate string `json:"due_date"` // optional, YYYY-MM-DD
}

type AssetResponse struct {
	ID           string `json:"id"`
	AssetTag     string `json:"asset_tag"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	SerialNumber string `json:"serial_number,omitempty"`
	PurchaseCost string `json:"purchase_cost"`
	Status       string `json:"status"`
}

type AssetRequestResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	RequesterName   string  `json:"requester_name,omitempty"`
	Category        string  `json:"category"`
	AssetID         *string `json:"asset_id"`
	AssetTag        string  `json:"asset_tag,omitempty"`
	Urgency         string  `json:"urgency"`
	DurationDays    int     `json:"duration_days"`
	Status          string  `json:"status"`
	ApprovedBy      *string `json:"approved_by"`
	ApproverName    string  `json:"approver_name,omitempty"`
	ApprovedAt      *string `json:"approved_at"`
	RejectionReason string  `json:"rejection_reason,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

type AssignmentResponse struct {
	ID         string  `json:"id"`
	AssetID    string  `json:"asset_id"`
	AssetTag   string  `json:"asset_tag,omitempty"`
	UserID     string  `json:"user_id"`
	Username   string  `json:"username,omitempty"`
	RequestID  *string `json:"request_id"`
	IssueDate  string  `json:"issue_date"`
	DueDate    *string `json:"due_date"`
	ReturnDate *string `json:"return_date"`
	Status     string  `json:"status"`
}

// --- Interface ---

type AssetService interface {
	CreateAsset(ctx context.Context, adminID string, req CreateAssetDTO) (AssetResponse, error)
	ListAssets(ctx context.Context, page, limit int) ([]AssetResponse, int64, error)
	ListAvailableAssets(ctx context.Context, category string) ([]AssetResponse, error)

	CreateRequest(ctx context.Context, userID string, req CreateAssetRequestDTO) (AssetRequestResponse, error)
	Approve(ctx context.Context, id string, approverID string, req ApproveAssetRequestDTO) (AssetRequestResponse, error)
	Reject(ctx context.Context, id string, approverID string, reason string) (AssetRequestResponse, error)
	Delete(ctx context.Context, id string, actorID string, actorRole string) error
	ListMine(ctx context.Context, userID string, page, limit int) ([]AssetRequestResponse, int64, error)
	List(ctx context.Context, status model.RequestStatus, page, limit int) ([]AssetRequestResponse, int64, error)

	CreateAssignment(ctx context.Context, adminID string, req CreateAssignmentDTO) (AssignmentResponse, error)
	ReturnAsset(ctx context.Context, assignmentID string, adminID string) (AssignmentResponse, error)
	ListAssignments(ctx context.Context, status string, page, limit int) ([]AssignmentResponse, int64, error)
}

type assetService struct {
	assets      repository.AssetRepository
	requests    repository.AssetRequestRepository
	assignments repository.AssignmentRepository
	users       repository.UserRepository
	audits      repository.AuditRepository
	txManager   repository.TransactionManager
	notifier    *notification.Notifier
	hub         *ws.Hub
}

func NewAssetService(
	assets repository.AssetRepository,
	requests repository.AssetRequestRepository,
	assignments repository.AssignmentRepository,
	users repository.UserRepository,
	audits repository.AuditRepository,
	txManager repository.TransactionManager,
	notifier *notification.Notifier,
	hub *ws.Hub,
) AssetService {
	return &assetService{
		assets:      assets,
		requests:    requests,
		assignments: assignments,
		users:       users,
		audits:      audits,
		txManager:   txManager,
		notifier:    notifier,
		hub:         hub,
	}
}

// --- Assets ---

func (s *assetService) CreateAsset(ctx context.Context, adminID string, req CreateAssetDTO) (AssetResponse, error) {
	creatorID, err := uuid.Parse(adminID)
	if err != nil {
		return AssetResponse{}, fmt.Errorf("%w: invalid user id", ErrValidation)
	}

	cost := decimal.Zero
	if req.PurchaseCost != "" {
		parsed, parseErr := decimal.NewFromString(req.PurchaseCost)
		if parseErr != nil {
			return AssetResponse{}, fmt.Errorf("%w: purchase_cost must be a decimal number", ErrValidation)
		}
		cost = parsed
	}

	asset := model.Asset{
		AssetTag:     strings.TrimSpace(req.AssetTag),
		Name:         strings.TrimSpace(req.Name),
		Category:     strings.TrimSpace(req.Category),
		SerialNumber: req.SerialNumber,
		PurchaseCost: cost,
		Status:       model.AssetAvailable,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.assets.Create(txCtx, &asset); createErr != nil {
			return fmt.Errorf("failed to create asset: %w", createErr)
		}
		details, _ := json.Marshal(map[string]interface{}{"asset_tag": asset.AssetTag, "category": asset.Category})
		audit := model.AuditLog{
			UserID:     &creatorID,
			Action:     model.ActionCreateAsset,
			EntityID:   asset.ID.String(),
			EntityName: asset.AssetTag,
			Details:    string(details),
		}
		return s.audits.Log(txCtx, &audit)
	})
	if err != nil {
		return AssetResponse{}, err
	}

	s.hub.Publish(ws.EventAssetsUpdated, nil)
	return toAssetResponse(&asset), nil
}

func (s *assetService) ListAssets(ctx context.Context, page, limit int) ([]AssetResponse, int64, error) {
	assets, total, err := s.assets.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]AssetResponse, 0, len(assets))
	for i := range assets {
		res = append(res, toAssetResponse(&assets[i]))
	}
	return res, total, nil
}

func (s *assetService) ListAvailableAssets(ctx context.Context, category string) ([]AssetResponse, error) {
	assets, err := s.assets.ListAvailable(ctx, category)
	if err != nil {
		return nil, err
	}

	res := make([]AssetResponse, 0, len(assets))
	for i := range assets {
		res = append(res, toAssetResponse(&assets[i]))
	}
	return res, nil
}

// --- Requests ---

func (s *assetService) CreateRequest(ctx context.Context, userID string, req CreateAssetRequestDTO) (AssetRequestResponse, error) {
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return AssetRequestResponse{}, fmt.Errorf("%w: invalid user id", ErrValidation)
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		return AssetRequestResponse{}, fmt.Errorf("%w: category must not be empty", ErrValidation)
	}

	urgency := req.Urgency
	if urgency == "" {
		urgency = model.UrgencyNormal
	}

	var assetID *uuid.UUID
	if req.AssetID != "" {
		parsed, parseErr := uuid.Parse(req.AssetID)
		if parseErr != nil {
			return AssetRequestResponse{}, fmt.Errorf("%w: invalid asset id", ErrValidation)
		}
		assetID = &parsed
	}

	request := model.AssetRequest{
		UserID:       ownerID,
		Category:     category,
		AssetID:      assetID,
		Urgency:      urgency,
		DurationDays: req.DurationDays,
		Status:       model.StatusPending,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if assetID != nil {
			if _, findErr := s.assets.FindByID(txCtx, *assetID); findErr != nil {
				if errors.Is(findErr, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: asset %s", ErrNotFound, req.AssetID)
				}
				return findErr
			}
		}

		if createErr := s.requests.Create(txCtx, &request); createErr != nil {
			return fmt.Errorf("failed to create asset request: %w", createErr)
		}

		details, _ := json.Marshal(map[string]interface{}{"category": category, "urgency": urgency})
		audit := model.AuditLog{
			UserID:     &ownerID,
			Action:     model.ActionCreateAssetRequest,
			EntityID:   request.ID.String(),
			EntityName: "asset_request",
			Details:    string(details),
		}
		return s.audits.Log(txCtx, &audit)
	})
	if err != nil {
		return AssetRequestResponse{}, err
	}

	s.hub.Publish(ws.EventAssetRequestsUpdated, map[string]interface{}{"id": request.ID.String()})
	lines := []string{"Category: " + category, "Urgency: " + urgency}
	go func() {
		owner, lookupErr := s.users.GetByID(context.Background(), ownerID.String())
		if lookupErr != nil {
			return
		}
		s.notifier.NotifyAdminsNewRequest(context.Background(), "asset", owner, lines)
	}()

	return toAssetRequestResponse(&request), nil
}

// Approve decides a pending asset request. When an asset id is supplied (or
// the request named a specific asset) the asset is bound in the same
// transaction: it flips AVAILABLE -> ASSIGNED and an ACTIVE assignment is
// opened with issue date now.
func (s *assetService) Approve(ctx context.Context, id string, approverID string, req ApproveAssetRequestDTO) (AssetRequestResponse, error) {
	requestID, adminID, err := parseIDPair(id, approverID)
	if err != nil {
		return AssetRequestResponse{}, err
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		parsed, parseErr := time.Parse(dateLayout, req.DueDate)
		if parseErr != nil {
			return AssetRequestResponse{}, fmt.Errorf("%w: due_date must be YYYY-MM-DD", ErrValidation)
		}
		dueDate = &parsed
	}

	now := time.Now()
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		request, findErr := s.requests.FindByID(txCtx, requestID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: asset request %s", ErrNotFound, id)
			}
			return findErr
		}

		if !model.CanTransition(request.Status, model.StatusApproved) {
			return fmt.Errorf("%w: request is already %s", ErrInvalidState, request.Status)
		}

		// Resolve which asset, if any, to bind.
		bindID := request.AssetID
		if req.AssetID != "" {
			parsed, parseErr := uuid.Parse(req.AssetID)
			if parseErr != nil {
				return fmt.Errorf("%w: invalid asset id", ErrValidation)
			}
			if request.AssetID != nil && *request.AssetID != parsed {
				return fmt.Errorf("%w: request names a different asset", ErrValidation)
			}
			bindID = &parsed
		}

		affected, guardErr := s.requests.UpdateStatusGuard(txCtx, requestID, model.StatusPending, model.StatusApproved, map[string]interface{}{
			"approved_by": adminID,
			"approved_at": now,
			"asset_id":    bindID,
		})
		if guardErr != nil {
			return guardErr
		}
		if affected == 0 {
			return fmt.Errorf("%w: request was decided concurrently", ErrInvalidState)
		}

		if bindID != nil {
			if _, bindErr := s.bindAsset(txCtx, *bindID, request.UserID, &requestID, dueDate, adminID, now); bindErr != nil {
				return bindErr
			}
		}

		details, _ := json.Marshal(map[string]interface{}{"request_id": requestID.String()})
		audit := model.AuditLog{
			UserID:     &adminID,
			Action:     model.ActionApproveRequest,
			EntityID:   requestID.String(),
			EntityName: "asset_request",
			Details:    string(details),
		}
		return s.audits.Log(txCtx, &audit)
	})
	if err != nil {
		return AssetRequestResponse{}, err
	}

	return s.afterRequestDecision(ctx, requestID, model.StatusApproved, "")
}

// bindAsset flips the asset to ASSIGNED and opens the assignment. Runs inside
// the approval transaction so a failed binding rolls back the approval too.
func (s *assetService) bindAsset(txCtx context.Context, assetID, userID uuid.UUID, requestID *uuid.UUID, dueDate *time.Time, adminID uuid.UUID, now time.Time) (*model.AssetAssignment, error) {
	affected, err := s.assets.UpdateStatus(txCtx, assetID, model.AssetAvailable, model.AssetAssigned)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: asset is not available", ErrInvalidState)
	}

	assignment := &model.AssetAssignment{
		AssetID:   assetID,
		UserID:    userID,
		RequestID: requestID,
		IssueDate: now,
		DueDate:   dueDate,
		Status:    model.AssignmentActive,
	}
	if err := s.assignments.Create(txCtx, assignment); err != nil {
		return nil, fmt.Errorf("failed to create asset assignment: %w", err)
	}

	details, _ := json.Marshal(map[string]interface{}{"asset_id": assetID.String(), "user_id": userID.String()})
	audit := model.AuditLog{
		UserID:     &adminID,
		Action:     model.ActionAssignAsset,
		EntityID:   assignment.ID.String(),
		EntityName: "asset_assignment",
		Details:    string(details),
	}
	if err := s.audits.Log(txCtx, &audit); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *assetService) Reject(ctx context.Context, id string, approverID string, reason string) (AssetRequestResponse, error) {
	requestID, adminID, err := parseIDPair(id, approverID)
	if err != nil {
		return AssetRequestResponse{}, err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return AssetRequestResponse{}, fmt.Errorf("%w: rejection reason must not be empty", ErrValidation)
	}

	now := time.Now()
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		request, findErr := s.requests.FindByID(txCtx, requestID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: asset request %s", ErrNotFound, id)
			}
			return findErr
		}

		if !model.CanTransition(request.Status, model.StatusRejected) {
			return fmt.Errorf("%w: request is already %s", ErrInvalidState, request.Status)
		}

		affected, guardErr := s.requests.UpdateStatusGuard(txCtx, requestID, model.StatusPending, model.StatusRejected, map[string]interface{}{
			"approved_by":      adminID,
			"approved_at":      now,
			"rejection_reason": reason,
		})
		if guardErr != nil {
			return guardErr
		}
		if affected == 0 {
			return fmt.Errorf("%w: request was decided concurrently", ErrInvalidState)
		}

		details, _ := json.Marshal(map[string]interface{}{"request_id": requestID.String(), "reason": reason})
		audit := model.AuditLog{
			UserID:     &adminID,
			Action:     model.ActionRejectRequest,
			EntityID:   requestID.String(),
			EntityName: "asset_request",
			Details:    string(details),
		}
		return s.audits.Log(txCtx, &audit)
	})
	if err != nil {
		return AssetRequestResponse{}, err
	}

	return s.afterRequestDecision(ctx, requestID, model.StatusRejected, reason)
}

func (s *assetService) Delete(ctx context.Context, id string, actorID string, actorRole string) error {
	requestID, callerID, err := parseIDPair(id, actorID)
	if err != nil {
		return err
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		request, findErr := s.requests.FindByID(txCtx, requestID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: asset request %s", ErrNotFound, id)
			}
			return findErr
		}

		if request.UserID != callerID && actorRole != model.RoleAdmin {
			return fmt.Errorf("%w: only the requester may delete this request", ErrForbidden)
		}
		if request.Status != model.StatusPending {
			return fmt.Errorf("%w: only pending requests can be deleted", ErrInvalidState)
		}

		if delErr := s.requests.Delete(txCtx, requestID); delErr != nil {
			return fmt.Errorf("failed to delete asset request: %w", delErr)
		}

		details, _ := json.Marshal(map[string]interface{}{"request_id": requestID.String()})
		audit := model.AuditLog{
			UserID:     &callerID,
			Action:     model.ActionDeleteAssetRequest,
			EntityID:   requestID.String(),
			EntityName: "asset_request",
			Details:    string(details),
		}
		return s.audits.Log(txCtx, &audit)
	})
	if err != nil {
		return err
	}

	s.hub.Publish(ws.EventAssetRequestsUpdated, nil)
	return nil
}

func (s *assetService) ListMine(ctx context.Context, userID string, page, limit int) ([]AssetRequestResponse, int64, error) {
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: invalid user id", ErrValidation)
	}

	requests, total, err := s.requests.ListByUser(ctx, ownerID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	return mapAssetRequestResponses(requests), total, nil
}

func (s *assetService) List(ctx context.Context, status model.RequestStatus, page, limit int) ([]AssetRequestResponse, int64, error) {
	if status != "" && !model.ValidStatus(status) {
		return nil, 0, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	requests, total, err := s.requests.List(ctx, status, page, limit)
	if err != nil {
		return nil, 0, err
	}

	return mapAssetRequestResponses(requests), total, nil
}

// --- Assignments ---

func (s *assetService) CreateAssignment(ctx context.Context, adminID string, req CreateAssignmentDTO) (AssignmentResponse, error) {
	issuerID, err := uuid.Parse(adminID)
	if err != nil {
		return AssignmentResponse{}, fmt.Errorf("%w: invalid user id", ErrValidation)
	}
	assetID, err := uuid.Parse(req.AssetID)
	if err != nil {
		return AssignmentResponse{}, fmt.Errorf("%w: invalid asset id", ErrValidation)
	}
	targetID, err := uuid.Parse(req.UserID)
	if err != nil {
		return AssignmentResponse{}, fmt.Errorf("%w: invalid user id", ErrValidation)
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		parsed, parseErr := time.Parse(dateLayout, req.DueDate)
		if parseErr != nil {
			return AssignmentResponse{}, fmt.Errorf("%w: due_date must be YYYY-MM-DD", ErrValidation)
		}
		dueDate = &parsed
	}

	now := time.Now()
	var assignment *model.AssetAssignment
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if _, findErr := s.users.GetByID(txCtx, targetID.String()); findErr != nil {
			return fmt.Errorf("%w: user %s", ErrNotFound, req.UserID)
		}

		created, bindErr := s.bindAsset(txCtx, assetID, targetID, nil, dueDate, issuerID, now)
		if bindErr != nil {
			return bindErr
		}
		assignment = created
		return nil
	})
	if err != nil {
		return AssignmentResponse{}, err
	}

	if reloaded, loadErr := s.assignments.FindByIDWithRelations(ctx, assignment.ID); loadErr == nil {
		assignment = reloaded
	}

	s.hub.Publish(ws.EventAssetsUpdated, nil)
	return toAssignmentResponse(assignment), nil
}

func (s *assetService) ReturnAsset(ctx context.Context, assignmentID string, adminID string) (AssignmentResponse, error) {
	id, returnerID, err := parseIDPair(assignmentID, adminID)
	if err != nil {
		return AssignmentResponse{}, err
	}

	now := time.Now()
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		assignment, findErr := s.assignments.FindByID(txCtx, id)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: assignment %s", ErrNotFound, assignmentID)
			}
			return findErr
		}

		affected, guardErr := s.assignments.CloseGuard(txCtx, id, map[string]interface{}{
			"return_date": now,
			"returned_by": returnerID,
		})
		if guardErr != nil {
			return guardErr
		}
		if affected == 0 {
			return fmt.Errorf("%w: assignment is already closed", ErrInvalidState)
		}

		if _, statusErr := s.assets.UpdateStatus(txCtx, assignment.AssetID, model.AssetAssigned, model.AssetAvailable); statusErr != nil {
			return statusErr
		}

		details, _ := json.Marshal(map[string]interface{}{"assignment_id": id.String(), "asset_id": assignment.AssetID.String()})
		audit := model.AuditLog{
			UserID:     &returnerID,
			Action:     model.ActionReturnAsset,
			EntityID:   id.String(),
			EntityName: "asset_assignment",
			Details:    string(details),
		}
		return s.audits.Log(txCtx, &audit)
	})
	if err != nil {
		return AssignmentResponse{}, err
	}

	assignment, err := s.assignments.FindByIDWithRelations(ctx, id)
	if err != nil {
		return AssignmentResponse{}, fmt.Errorf("failed to reload assignment: %w", err)
	}

	s.hub.Publish(ws.EventAssetsUpdated, nil)
	return toAssignmentResponse(assignment), nil
}

func (s *assetService) ListAssignments(ctx context.Context, status string, page, limit int) ([]AssignmentResponse, int64, error) {
	assignments, total, err := s.assignments.List(ctx, status, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		res = append(res, toAssignmentResponse(&assignments[i]))
	}
	return res, total, nil
}

// --- Side effects / helpers ---

func (s *assetService) afterRequestDecision(ctx context.Context, requestID uuid.UUID, status model.RequestStatus, reason string) (AssetRequestResponse, error) {
	request, err := s.requests.FindByIDWithRelations(ctx, requestID)
	if err != nil {
		return AssetRequestResponse{}, fmt.Errorf("failed to reload asset request: %w", err)
	}

	s.hub.Publish(ws.EventAssetRequestsUpdated, map[string]interface{}{"id": request.ID.String()})
	if status == model.StatusApproved && request.AssetID != nil {
		s.hub.Publish(ws.EventAssetsUpdated, nil)
	}

	if request.User != nil {
		requester := request.User
		lines := []string{"Category: " + request.Category}
		if request.Asset != nil {
			lines = append(lines, "Asset: "+request.Asset.AssetTag+" ("+request.Asset.Name+")")
		}
		go s.notifier.NotifyDecision("asset", requester, status, reason, lines)
	}

	return toAssetRequestResponse(request), nil
}

func mapAssetRequestResponses(requests []model.AssetRequest) []AssetRequestResponse {
	result := make([]AssetRequestResponse, 0, len(requests))
	for i := range requests {
		result = append(result, toAssetRequestResponse(&requests[i]))
	}
	return result
}

func toAssetResponse(a *model.Asset) AssetResponse {
	return AssetResponse{
		ID:           a.ID.String(),
		AssetTag:     a.AssetTag,
		Name:         a.Name,
		Category:     a.Category,
		SerialNumber: a.SerialNumber,
		PurchaseCost: a.PurchaseCost.StringFixed(2),
		Status:       a.Status,
	}
}

func toAssetRequestResponse(r *model.AssetRequest) AssetRequestResponse {
	resp := AssetRequestResponse{
		ID:              r.ID.String(),
		UserID:          r.UserID.String(),
		Category:        r.Category,
		Urgency:         r.Urgency,
		DurationDays:    r.DurationDays,
		Status:          string(r.Status),
		RejectionReason: r.RejectionReason,
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
	}

	if r.User != nil {
		resp.RequesterName = r.User.Username
	}
	if r.AssetID != nil {
		s := r.AssetID.String()
		resp.AssetID = &s
	}
	if r.Asset != nil {
		resp.AssetTag = r.Asset.AssetTag
	}
	if r.ApprovedBy != nil {
		s := r.ApprovedBy.String()
		resp.ApprovedBy = &s
	}
	if r.Approver != nil {
		resp.ApproverName = r.Approver.Username
	}
	if r.ApprovedAt != nil {
		s := r.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &s
	}

	return resp
}

func toAssignmentResponse(a *model.AssetAssignment) AssignmentResponse {
	resp := AssignmentResponse{
		ID:        a.ID.String(),
		AssetID:   a.AssetID.String(),
		UserID:    a.UserID.String(),
		IssueDate: a.IssueDate.Format(time.RFC3339),
		Status:    a.Status,
	}

	if a.Asset != nil {
		resp.AssetTag = a.Asset.AssetTag
	}
	if a.User != nil {
		resp.Username = a.User.Username
	}
	if a.RequestID != nil {
		s := a.RequestID.String()
		resp.RequestID = &s
	}
	if a.DueDate != nil {
		s := a.DueDate.Format(dateLayout)
		resp.DueDate = &s
	}
	if a.ReturnDate != nil {
		s := a.ReturnDate.Format(time.RFC3339)
		resp.ReturnDate = &s
	}

	return resp
}
