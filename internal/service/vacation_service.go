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

const dateLayout = "2006-01-02"

// --- DTOs ---

type CreateVacationRequestDTO struct {
	StartDate string `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate   string `json:"end_date" binding:"required"`   // YYYY-MM-DD
	Reason    string `json:"reason" binding:"required"`
}

type RejectRequestDTO struct {
	Reason string `json:"reason" binding:"required"`
}

type VacationRequestResponse struct {
	ID                string  `json:"id"`
	UserID            string  `json:"user_id"`
	RequesterName     string  `json:"requester_name,omitempty"`
	StartDate         string  `json:"start_date"`
	EndDate           string  `json:"end_date"`
	DurationDays      int     `json:"duration_days"`
	Reason            string  `json:"reason"`
	Status            string  `json:"status"`
	ApprovedBy        *string `json:"approved_by"`
	ApproverName      string  `json:"approver_name,omitempty"`
	ApprovedAt        *string `json:"approved_at"`
	RejectionReason   string  `json:"rejection_reason,omitempty"`
	OriginalRequestID *string `json:"original_request_id"`
	CreatedAt         string  `json:"created_at"`
}

// --- Interface ---

type VacationService interface {
	Create(ctx context.Context, userID string, req CreateVacationRequestDTO) (VacationRequestResponse, error)
	Resubmit(ctx context.Context, userID string, originalID string, req CreateVacationRequestDTO) (VacationRequestResponse, error)
	Approve(ctx context.Context, id string, approverID string) (VacationRequestResponse, error)
	Reject(ctx context.Context, id string, approverID string, reason string) (VacationRequestResponse, error)
	Cancel(ctx context.Context, id string, actorID string, actorRole string) (VacationRequestResponse, bool, error)
	Delete(ctx context.Context, id string, actorID string, actorRole string) error
	ListMine(ctx context.Context, userID string, page, limit int) ([]VacationRequestResponse, int64, error)
	List(ctx context.Context, status model.RequestStatus, page, limit int) ([]VacationRequestResponse, int64, error)
}

type vacationService struct {
	vacations repository.VacationRepository
	users     repository.UserRepository
	audits    repository.AuditRepository
	txManager repository.TransactionManager
	notifier  *notification.Notifier
	hub       *ws.Hub
}

func NewVacationService(
	vacations repository.VacationRepository,
	users repository.UserRepository,
	audits repository.AuditRepository,
	txManager repository.TransactionManager,
	notifier *notification.Notifier,
	hub *ws.Hub,
) VacationService {
	return &vacationService{
		vacations: vacations,
		users:     users,
		audits:    audits,
		txManager: txManager,
		notifier:  notifier,
		hub:       hub,
	}
}

// --- Implementation ---

func (s *vacationService) Create(ctx context.Context, userID string, req CreateVacationRequestDTO) (VacationRequestResponse, error) {
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return VacationRequestResponse{}, fmt.Errorf("%w: invalid user id", ErrValidation)
	}

	start, end, reason, err := parseVacationFields(req)
	if err != nil {
		return VacationRequestResponse{}, err
	}

	request := model.VacationRequest{
		UserID:    ownerID,
		StartDate: start,
		EndDate:   end,
		Reason:    reason,
		Status:    model.StatusPending,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.vacations.Create(txCtx, &request); createErr != nil {
			return fmt.Errorf("failed to create vacation request: %w", createErr)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"start_date": req.StartDate,
			"end_date":   req.EndDate,
		})
		audit := model.AuditLog{
			UserID:     &ownerID,
			Action:     model.ActionCreateVacationRequest,
			EntityID:   request.ID.String(),
			EntityName: "vacation_request",
			Details:    string(details),
		}
		return s.audits.Log(txCtx, &audit)
	})
	if err != nil {
		return VacationRequestResponse{}, err
	}

	s.afterCreate(&request, ownerID)

	return toVacationResponse(&request), nil
}

func (s *vacationService) Resubmit(ctx context.Context, userID string, originalID string, req CreateVacationRequestDTO) (VacationRequestResponse, error) {
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return VacationRequestResponse{}, fmt.Errorf("%w: invalid user id", ErrValidation)
	}
	origID, err := uuid.Parse(originalID)
	if err != nil {
		return VacationRequestResponse{}, fmt.Errorf("%w: invalid request id", ErrValidation)
	}

	start, end, reason, err := parseVacationFields(req)
	if err != nil {
		return VacationRequestResponse{}, err
	}

	var request model.VacationRequest
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		original, findErr := s.vacations.FindByID(txCtx, origID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: vacation request %s", ErrNotFound, originalID)
			}
			return findErr
		}

		if original.UserID != ownerID {
			return fmt.Errorf("%w: only the requester may resubmit", ErrForbidden)
		}
		// Resubmission never reopens the original; it only links back to a
		// rejected one.
		if original.Status != model.StatusRejected {
			return fmt.Errorf("%w: request is %s, only rejected requests can be resubmitted", ErrInvalidState, original.Status)
		}

		request = model.VacationRequest{
			UserID:            ownerID,
			StartDate:         start,
			EndDate:           end,
			Reason:            reason,
			Status:            model.StatusPending,
			OriginalRequestID: &original.ID,
		}
		if createErr := s.vacations.Create(txCtx, &request); createErr != nil {
			return fmt.Errorf("failed to create resubmission: %w", createErr)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"original_request_id": original.ID.String(),
			"start_date":          req.StartDate,
			"end_date":            req.EndDate,
		})
		audit := model.AuditLog{
			UserID:     &ownerID,
			Action:     model.ActionResubmitVacationRequest,
			EntityID:   request.ID.String(),
			EntityName: "vacation_request",
			Details:    string(details),
		}
		return s.audits.Log(txCtx, &audit)
	})
	if err != nil {
		return VacationRequestResponse{}, err
	}

	s.afterCreate(&request, ownerID)

	return toVacationResponse(&request), nil
}

func (s *vacationService) Approve(ctx context.Context, id string, approverID string) (VacationRequestResponse, error) {
	requestID, adminID, err := parseIDPair(id, approverID)
	if err != nil {
		return VacationRequestResponse{}, err
	}

	now := time.Now()
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		request, findErr := s.vacations.FindByID(txCtx, requestID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: vacation request %s", ErrNotFound, id)
			}
			return findErr
		}

		if !model.CanTransition(request.Status, model.StatusApproved) {
			return fmt.Errorf("%w: request is already %s", ErrInvalidState, request.Status)
		}

		affected, guardErr := s.vacations.UpdateStatusGuard(txCtx, requestID, model.StatusPending, model.StatusApproved, map[string]interface{}{
			"approved_by": adminID,
			"approved_at": now,
		})
		if guardErr != nil {
			return guardErr
		}
		if affected == 0 {
			return fmt.Errorf("%w: request was decided concurrently", ErrInvalidState)
		}

		details, _ := json.Marshal(map[string]interface{}{"request_id": requestID.String()})
		audit := model.AuditLog{
			UserID:     &adminID,
			Action:     model.ActionApproveRequest,
			EntityID:   requestID.String(),
			EntityName: "vacation_request",
			Details:    string(details),
		}
		return s.audits.Log(txCtx, &audit)
	})
	if err != nil {
		return VacationRequestResponse{}, err
	}

	return s.afterDecision(ctx, requestID, model.StatusApproved, "")
}

func (s *vacationService) Reject(ctx context.Context, id string, approverID string, reason string) (VacationRequestResponse, error) {
	requestID, adminID, err := parseIDPair(id, approverID)
	if err != nil {
		return VacationRequestResponse{}, err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return VacationRequestResponse{}, fmt.Errorf("%w: rejection reason must not be empty", ErrValidation)
	}

	now := time.Now()
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		request, findErr := s.vacations.FindByID(txCtx, requestID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: vacation request %s", ErrNotFound, id)
			}
			return findErr
		}

		if !model.CanTransition(request.Status, model.StatusRejected) {
			return fmt.Errorf("%w: request is already %s", ErrInvalidState, request.Status)
		}

		affected, guardErr := s.vacations.UpdateStatusGuard(txCtx, requestID, model.StatusPending, model.StatusRejected, map[string]interface{}{
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
			EntityName: "vacation_request",
			Details:    string(details),
		}
		return s.audits.Log(txCtx, &audit)
	})
	if err != nil {
		return VacationRequestResponse{}, err
	}

	return s.afterDecision(ctx, requestID, model.StatusRejected, reason)
}

// Cancel handles both owner cancellation paths: a pending request is removed
// outright, an approved future-dated request transitions to CANCELLED. The
// boolean result reports whether the record was deleted.
func (s *vacationService) Cancel(ctx context.Context, id string, actorID string, actorRole string) (VacationRequestResponse, bool, error) {
	requestID, callerID, err := parseIDPair(id, actorID)
	if err != nil {
		return VacationRequestResponse{}, false, err
	}

	var deleted bool
	var request *model.VacationRequest
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		found, findErr := s.vacations.FindByID(txCtx, requestID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: vacation request %s", ErrNotFound, id)
			}
			return findErr
		}
		request = found

		if request.UserID != callerID && actorRole != model.RoleAdmin {
			return fmt.Errorf("%w: only the requester may cancel this request", ErrForbidden)
		}

		switch request.Status {
		case model.StatusPending:
			deleted = true
			if delErr := s.vacations.Delete(txCtx, requestID); delErr != nil {
				return fmt.Errorf("failed to delete pending request: %w", delErr)
			}
		case model.StatusApproved:
			if !request.StartDate.After(time.Now()) {
				return fmt.Errorf("%w: an approved vacation can only be cancelled before it starts", ErrInvalidState)
			}
			affected, guardErr := s.vacations.UpdateStatusGuard(txCtx, requestID, model.StatusApproved, model.StatusCancelled, nil)
			if guardErr != nil {
				return guardErr
			}
			if affected == 0 {
				return fmt.Errorf("%w: request changed concurrently", ErrInvalidState)
			}
			request.Status = model.StatusCancelled
		default:
			return fmt.Errorf("%w: request is %s and can no longer be cancelled", ErrInvalidState, request.Status)
		}

		details, _ := json.Marshal(map[string]interface{}{"request_id": requestID.String(), "deleted": deleted})
		audit := model.AuditLog{
			UserID:     &callerID,
			Action:     model.ActionCancelVacationRequest,
			EntityID:   requestID.String(),
			EntityName: "vacation_request",
			Details:    string(details),
		}
		return s.audits.Log(txCtx, &audit)
	})
	if err != nil {
		return VacationRequestResponse{}, false, err
	}

	s.hub.Publish(ws.EventVacationRequestsUpdated, nil)

	if deleted {
		return VacationRequestResponse{}, true, nil
	}
	return toVacationResponse(request), false, nil
}

// Delete hard-deletes a pending request on behalf of its owner.
func (s *vacationService) Delete(ctx context.Context, id string, actorID string, actorRole string) error {
	requestID, callerID, err := parseIDPair(id, actorID)
	if err != nil {
		return err
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		request, findErr := s.vacations.FindByID(txCtx, requestID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: vacation request %s", ErrNotFound, id)
			}
			return findErr
		}

		if request.UserID != callerID && actorRole != model.RoleAdmin {
			return fmt.Errorf("%w: only the requester may delete this request", ErrForbidden)
		}
		if request.Status != model.StatusPending {
			return fmt.Errorf("%w: only pending requests can be deleted", ErrInvalidState)
		}

		if delErr := s.vacations.Delete(txCtx, requestID); delErr != nil {
			return fmt.Errorf("failed to delete vacation request: %w", delErr)
		}

		details, _ := json.Marshal(map[string]interface{}{"request_id": requestID.String()})
		audit := model.AuditLog{
			UserID:     &callerID,
			Action:     model.ActionDeleteVacationRequest,
			EntityID:   requestID.String(),
			EntityName: "vacation_request",
			Details:    string(details),
		}
		return s.audits.Log(txCtx, &audit)
	})
	if err != nil {
		return err
	}

	s.hub.Publish(ws.EventVacationRequestsUpdated, nil)
	return nil
}

func (s *vacationService) ListMine(ctx context.Context, userID string, page, limit int) ([]VacationRequestResponse, int64, error) {
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: invalid user id", ErrValidation)
	}

	requests, total, err := s.vacations.ListByUser(ctx, ownerID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	return mapVacationResponses(requests), total, nil
}

func (s *vacationService) List(ctx context.Context, status model.RequestStatus, page, limit int) ([]VacationRequestResponse, int64, error) {
	if status != "" && !model.ValidStatus(status) {
		return nil, 0, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	requests, total, err := s.vacations.List(ctx, status, page, limit)
	if err != nil {
		return nil, 0, err
	}

	return mapVacationResponses(requests), total, nil
}

// --- Side effects ---

// afterCreate runs the post-commit side effects of a new request: admin
// notification fan-out and list invalidation. Email is fire-and-forget.
func (s *vacationService) afterCreate(request *model.VacationRequest, ownerID uuid.UUID) {
	s.hub.Publish(ws.EventVacationRequestsUpdated, map[string]interface{}{"id": request.ID.String()})

	lines := []string{
		fmt.Sprintf("Dates: %s to %s (%d days)",
			request.StartDate.Format(dateLayout), request.EndDate.Format(dateLayout), request.DurationDays()),
		"Reason: " + request.Reason,
	}
	go func() {
		owner, err := s.users.GetByID(context.Background(), ownerID.String())
		if err != nil {
			return
		}
		s.notifier.NotifyAdminsNewRequest(context.Background(), "vacation", owner, lines)
	}()
}

// afterDecision reloads the decided request, notifies the requester and
// publishes the invalidation event.
func (s *vacationService) afterDecision(ctx context.Context, requestID uuid.UUID, status model.RequestStatus, reason string) (VacationRequestResponse, error) {
	request, err := s.vacations.FindByIDWithRelations(ctx, requestID)
	if err != nil {
		return VacationRequestResponse{}, fmt.Errorf("failed to reload vacation request: %w", err)
	}

	s.hub.Publish(ws.EventVacationRequestsUpdated, map[string]interface{}{"id": request.ID.String()})

	if request.User != nil {
		requester := request.User
		lines := []string{
			fmt.Sprintf("Dates: %s to %s",
				request.StartDate.Format(dateLayout), request.EndDate.Format(dateLayout)),
		}
		go s.notifier.NotifyDecision("vacation", requester, status, reason, lines)
	}

	return toVacationResponse(request), nil
}

// --- Helpers ---

func parseVacationFields(req CreateVacationRequestDTO) (start, end time.Time, reason string, err error) {
	start, err = time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, "", fmt.Errorf("%w: start_date must be YYYY-MM-DD", ErrValidation)
	}
	end, err = time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, "", fmt.Errorf("%w: end_date must be YYYY-MM-DD", ErrValidation)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, "", fmt.Errorf("%w: end_date must not be before start_date", ErrValidation)
	}

	reason = strings.TrimSpace(req.Reason)
	if reason == "" {
		return time.Time{}, time.Time{}, "", fmt.Errorf("%w: reason must not be empty", ErrValidation)
	}

	return start, end, reason, nil
}

func parseIDPair(id, actorID string) (uuid.UUID, uuid.UUID, error) {
	requestID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("%w: invalid request id", ErrValidation)
	}
	callerID, err := uuid.Parse(actorID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("%w: invalid user id", ErrValidation)
	}
	return requestID, callerID, nil
}

func mapVacationResponses(requests []model.VacationRequest) []VacationRequestResponse {
	result := make([]VacationRequestResponse, 0, len(requests))
	for i := range requests {
		result = append(result, toVacationResponse(&requests[i]))
	}
	return result
}

func toVacationResponse(v *model.VacationRequest) VacationRequestResponse {
	resp := VacationRequestResponse{
		ID:              v.ID.String(),
		UserID:          v.UserID.String(),
		StartDate:       v.StartDate.Format(dateLayout),
		EndDate:         v.EndDate.Format(dateLayout),
		DurationDays:    v.DurationDays(),
		Reason:          v.Reason,
		Status:          string(v.Status),
		RejectionReason: v.RejectionReason,
		CreatedAt:       v.CreatedAt.Format(time.RFC3339),
	}

	if v.User != nil {
		resp.RequesterName = v.User.Username
	}
	if v.ApprovedBy != nil {
		s := v.ApprovedBy.String()
		resp.ApprovedBy = &s
	}
	if v.Approver != nil {
		resp.ApproverName = v.Approver.Username
	}
	if v.ApprovedAt != nil {
		s := v.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &s
	}
	if v.OriginalRequestID != nil {
		s := v.OriginalRequestID.String()
		resp.OriginalRequestID = &s
	}

	return resp
}
