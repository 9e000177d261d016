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
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateSupplyRequestDTO struct {
	ItemName      string `json:"item_name" binding:"required"`
	Quantity      int    `json:"quantity" binding:"required,gt=0"`
	Justification string `json:"justification" binding:"required"`
	Urgency       string `json:"urgency" binding:"omitempty,oneof=low normal high"`
}

type SupplyRequestResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	RequesterName   string  `json:"requester_name,omitempty"`
	ItemName        string  `json:"item_name"`
	Quantity        int     `json:"quantity"`
	Justification   string  `json:"justification"`
	Urgency         string  `json:"urgency"`
	Status          string  `json:"status"`
	ApprovedBy      *string `json:"approved_by"`
	ApproverName    string  `json:"approver_name,omitempty"`
	ApprovedAt      *string `json:"approved_at"`
	RejectionReason string  `json:"rejection_reason,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

// --- Interface ---

type SupplyService interface {
	Create(ctx context.Context, userID string, req CreateSupplyRequestDTO) (SupplyRequestResponse, error)
	Approve(ctx context.Context, id string, approverID string) (SupplyRequestResponse, error)
	Reject(ctx context.Context, id string, approverID string, reason string) (SupplyRequestResponse, error)
	Fulfill(ctx context.Context, id string, adminID string) (SupplyRequestResponse, error)
	Delete(ctx context.Context, id string, actorID string, actorRole string) error
	ListMine(ctx context.Context, userID string, page, limit int) ([]SupplyRequestResponse, int64, error)
	List(ctx context.Context, status model.RequestStatus, page, limit int) ([]SupplyRequestResponse, int64, error)
}

type supplyService struct {
	supplies  repository.SupplyRepository
	users     repository.UserRepository
	audits    repository.AuditRepository
	txManager repository.TransactionManager
	notifier  *notification.Notifier
	hub       *ws.Hub
}

func NewSupplyService(
	supplies repository.SupplyRepository,
	users repository.UserRepository,
	audits repository.AuditRepository,
	txManager repository.TransactionManager,
	notifier *notification.Notifier,
	hub *ws.Hub,
) SupplyService {
	return &supplyService{
		supplies:  supplies,
		users:     users,
		audits:    audits,
		txManager: txManager,
		notifier:  notifier,
		hub:       hub,
	}
}

// --- Implementation ---

func (s *supplyService) Create(ctx context.Context, userID string, req CreateSupplyRequestDTO) (SupplyRequestResponse, error) {
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return SupplyRequestResponse{}, fmt.Errorf("%w: invalid user id", ErrValidation)
	}

	itemName := strings.TrimSpace(req.ItemName)
	justification := strings.TrimSpace(req.Justification)
	if itemName == "" {
		return SupplyRequestResponse{}, fmt.Errorf("%w: item_name must not be empty", ErrValidation)
	}
	if req.Quantity <= 0 {
		return SupplyRequestResponse{}, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	if justification == "" {
		return SupplyRequestResponse{}, fmt.Errorf("%w: justification must not be empty", ErrValidation)
	}

	urgency := req.Urgency
	if urgency == "" {
		urgency = model.UrgencyNormal
	}

	request := model.SupplyRequest{
		UserID:        ownerID,
		ItemName:      itemName,
		Quantity:      req.Quantity,
		Justification: justification,
		Urgency:       urgency,
		Status:        model.StatusPending,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.supplies.Create(txCtx, &request); createErr != nil {
			return fmt.Errorf("failed to create supply request: %w", createErr)
		}

		details, _ := json.Marshal(map[string]interface{}{"item_name": itemName, "quantity": req.Quantity})
		audit := model.AuditLog{
			UserID:     &ownerID,
			Action:     model.ActionCreateSupplyRequest,
			EntityID:   request.ID.String(),
			EntityName: "supply_request",
			Details:    string(details),
		}
		return s.audits.Log(txCtx, &audit)
	})
	if err != nil {
		return SupplyRequestResponse{}, err
	}

	s.hub.Publish(ws.EventSupplyRequestsUpdated, map[string]interface{}{"id": request.ID.String()})
	lines := []string{
		fmt.Sprintf("Item: %s (x%d)", itemName, req.Quantity),
		"Justification: " + justification,
	}
	go func() {
		owner, lookupErr := s.users.GetByID(context.Background(), ownerID.String())
		if lookupErr != nil {
			return
		}
		s.notifier.NotifyAdminsNewRequest(context.Background(), "supply", owner, lines)
	}()

	return toSupplyResponse(&request), nil
}

func (s *supplyService) Approve(ctx context.Context, id string, approverID string) (SupplyRequestResponse, error) {
	return s.decide(ctx, id, approverID, model.StatusApproved, "")
}

func (s *supplyService) Reject(ctx context.Context, id string, approverID string, reason string) (SupplyRequestResponse, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return SupplyRequestResponse{}, fmt.Errorf("%w: rejection reason must not be empty", ErrValidation)
	}
	return s.decide(ctx, id, approverID, model.StatusRejected, reason)
}

// Fulfill marks an approved supply request as handed out. Only the
// APPROVED -> FULFILLED edge exists for supplies.
func (s *supplyService) Fulfill(ctx context.Context, id string, adminID string) (SupplyRequestResponse, error) {
	requestID, actorID, err := parseIDPair(id, adminID)
	if err != nil {
		return SupplyRequestResponse{}, err
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		request, findErr := s.supplies.FindByID(txCtx, requestID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: supply request %s", ErrNotFound, id)
			}
			return findErr
		}

		if !model.CanTransition(request.Status, model.StatusFulfilled) {
			return fmt.Errorf("%w: request is %s, only approved requests can be fulfilled", ErrInvalidState, request.Status)
		}

		affected, guardErr := s.supplies.UpdateStatusGuard(txCtx, requestID, model.StatusApproved, model.StatusFulfilled, nil)
		if guardErr != nil {
			return guardErr
		}
		if affected == 0 {
			return fmt.Errorf("%w: request changed concurrently", ErrInvalidState)
		}

		details, _ := json.Marshal(map[string]interface{}{"request_id": requestID.String()})
		audit := model.AuditLog{
			UserID:     &actorID,
			Action:     model.ActionFulfillSupplyRequest,
			EntityID:   requestID.String(),
			EntityName: "supply_request",
			Details:    string(details),
		}
		return s.audits.Log(txCtx, &audit)
	})
	if err != nil {
		return SupplyRequestResponse{}, err
	}

	return s.afterDecision(ctx, requestID, model.StatusFulfilled, "")
}

// decide applies the shared PENDING -> {APPROVED, REJECTED} transition.
func (s *supplyService) decide(ctx context.Context, id string, approverID string, to model.RequestStatus, reason string) (SupplyRequestResponse, error) {
	requestID, adminID, err := parseIDPair(id, approverID)
	if err != nil {
		return SupplyRequestResponse{}, err
	}

	now := time.Now()
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		request, findErr := s.supplies.FindByID(txCtx, requestID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: supply request %s", ErrNotFound, id)
			}
			return findErr
		}

		if !model.CanTransition(request.Status, to) {
			return fmt.Errorf("%w: request is already %s", ErrInvalidState, request.Status)
		}

		updates := map[string]interface{}{
			"approved_by": adminID,
			"approved_at": now,
		}
		if to == model.StatusRejected {
			updates["rejection_reason"] = reason
		}

		affected, guardErr := s.supplies.UpdateStatusGuard(txCtx, requestID, model.StatusPending, to, updates)
		if guardErr != nil {
			return guardErr
		}
		if affected == 0 {
			return fmt.Errorf("%w: request was decided concurrently", ErrInvalidState)
		}

		action := model.ActionApproveRequest
		if to == model.StatusRejected {
			action = model.ActionRejectRequest
		}
		details, _ := json.Marshal(map[string]interface{}{"request_id": requestID.String(), "reason": reason})
		audit := model.AuditLog{
			UserID:     &adminID,
			Action:     action,
			EntityID:   requestID.String(),
			EntityName: "supply_request",
			Details:    string(details),
		}
		return s.audits.Log(txCtx, &audit)
	})
	if err != nil {
		return SupplyRequestResponse{}, err
	}

	return s.afterDecision(ctx, requestID, to, reason)
}

func (s *supplyService) Delete(ctx context.Context, id string, actorID string, actorRole string) error {
	requestID, callerID, err := parseIDPair(id, actorID)
	if err != nil {
		return err
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		request, findErr := s.supplies.FindByID(txCtx, requestID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: supply request %s", ErrNotFound, id)
			}
			return findErr
		}

		if request.UserID != callerID && actorRole != model.RoleAdmin {
			return fmt.Errorf("%w: only the requester may delete this request", ErrForbidden)
		}
		if request.Status != model.StatusPending {
			return fmt.Errorf("%w: only pending requests can be deleted", ErrInvalidState)
		}

		if delErr := s.supplies.Delete(txCtx, requestID); delErr != nil {
			return fmt.Errorf("failed to delete supply request: %w", delErr)
		}

		details, _ := json.Marshal(map[string]interface{}{"request_id": requestID.String()})
		audit := model.AuditLog{
			UserID:     &callerID,
			Action:     model.ActionDeleteSupplyRequest,
			EntityID:   requestID.String(),
			EntityName: "supply_request",
			Details:    string(details),
		}
		return s.audits.Log(txCtx, &audit)
	})
	if err != nil {
		return err
	}

	s.hub.Publish(ws.EventSupplyRequestsUpdated, nil)
	return nil
}

func (s *supplyService) ListMine(ctx context.Context, userID string, page, limit int) ([]SupplyRequestResponse, int64, error) {
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: invalid user id", ErrValidation)
	}

	requests, total, err := s.supplies.ListByUser(ctx, ownerID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	return mapSupplyResponses(requests), total, nil
}

func (s *supplyService) List(ctx context.Context, status model.RequestStatus, page, limit int) ([]SupplyRequestResponse, int64, error) {
	if status != "" && !model.ValidStatus(status) {
		return nil, 0, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	requests, total, err := s.supplies.List(ctx, status, page, limit)
	if err != nil {
		return nil, 0, err
	}

	return mapSupplyResponses(requests), total, nil
}

// --- Side effects / helpers ---

func (s *supplyService) afterDecision(ctx context.Context, requestID uuid.UUID, status model.RequestStatus, reason string) (SupplyRequestResponse, error) {
	request, err := s.supplies.FindByIDWithRelations(ctx, requestID)
	if err != nil {
		return SupplyRequestResponse{}, fmt.Errorf("failed to reload supply request: %w", err)
	}

	s.hub.Publish(ws.EventSupplyRequestsUpdated, map[string]interface{}{"id": request.ID.String()})

	if request.User != nil {
		requester := request.User
		lines := []string{fmt.Sprintf("Item: %s (x%d)", request.ItemName, request.Quantity)}
		go s.notifier.NotifyDecision("supply", requester, status, reason, lines)
	}

	return toSupplyResponse(request), nil
}

func mapSupplyResponses(requests []model.SupplyRequest) []SupplyRequestResponse {
	result := make([]SupplyRequestResponse, 0, len(requests))
	for i := range requests {
		result = append(result, toSupplyResponse(&requests[i]))
	}
	return result
}

func toSupplyResponse(r *model.SupplyRequest) SupplyRequestResponse {
	resp := SupplyRequestResponse{
		ID:              r.ID.String(),
		UserID:          r.UserID.String(),
		ItemName:        r.ItemName,
		Quantity:        r.Quantity,
		Justification:   r.Justification,
		Urgency:         r.Urgency,
		Status:          string(r.Status),
		RejectionReason: r.RejectionReason,
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
	}

	if r.User != nil {
		resp.RequesterName = r.User.Username
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
