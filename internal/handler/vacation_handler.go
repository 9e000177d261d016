package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type VacationHandler struct {
	vacationService service.VacationService
}

func NewVacationHandler(vacationService service.VacationService) *VacationHandler {
	return &VacationHandler{vacationService: vacationService}
}

func (h *VacationHandler) RegisterRoutes(router *gin.RouterGroup) {
	requests := router.Group("/api/vacation-requests")
	{
		requests.POST("", middleware.RequireRole("admin", "employee"), h.Create)
		requests.POST("/:id/resubmit", middleware.RequireRole("admin", "employee"), h.Resubmit)
		requests.PUT("/:id/approve", middleware.RequireRole("admin"), h.Approve)
		requests.PUT("/:id/reject", middleware.RequireRole("admin"), h.Reject)
		requests.PUT("/:id/cancel", middleware.RequireRole("admin", "employee"), h.Cancel)
		requests.DELETE("/:id", middleware.RequireRole("admin", "employee"), h.Delete)
		requests.GET("/me", middleware.RequireRole("admin", "employee"), h.ListMine)
		requests.GET("", middleware.RequireRole("admin"), h.List)
	}
}

// Create submits a new vacation request
// @Summary      Create vacation request
// @Description  Submits a vacation request for the authenticated user; admins are notified by email
// @Tags         vacation-requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateVacationRequestDTO  true  "Vacation Request Payload"
// @Success      201      {object}  response.Response{data=service.VacationRequestResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/vacation-requests [post]
func (h *VacationHandler) Create(c *gin.Context) {
	var req service.CreateVacationRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	userID, _ := currentUser(c)
	result, err := h.vacationService.Create(c.Request.Context(), userID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, result))
}

// Resubmit creates a fresh request linked to a rejected one
// @Summary      Resubmit vacation request
// @Description  Creates a new pending request referencing a rejected request owned by the caller
// @Tags         vacation-requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                            true  "Rejected Request ID"
// @Param        payload  body      service.CreateVacationRequestDTO  true  "Updated Request Payload"
// @Success      201      {object}  response.Response{data=service.VacationRequestResponse}
// @Failure      403      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/vacation-requests/{id}/resubmit [post]
func (h *VacationHandler) Resubmit(c *gin.Context) {
	var req service.CreateVacationRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	userID, _ := currentUser(c)
	result, err := h.vacationService.Resubmit(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, result))
}

// Approve approves a pending vacation request
// @Summary      Approve vacation request
// @Tags         vacation-requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request ID"
// @Success      200  {object}  response.Response{data=service.VacationRequestResponse}
// @Failure      409  {object}  response.Response
// @Router       /api/vacation-requests/{id}/approve [put]
func (h *VacationHandler) Approve(c *gin.Context) {
	approverID, _ := currentUser(c)

	result, err := h.vacationService.Approve(c.Request.Context(), c.Param("id"), approverID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// Reject rejects a pending vacation request with a mandatory reason
// @Summary      Reject vacation request
// @Tags         vacation-requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                    true  "Request ID"
// @Param        payload  body      service.RejectRequestDTO  true  "Rejection Reason"
// @Success      200      {object}  response.Response{data=service.VacationRequestResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/vacation-requests/{id}/reject [put]
func (h *VacationHandler) Reject(c *gin.Context) {
	var req service.RejectRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Rejection reason is required"))
		return
	}

	approverID, _ := currentUser(c)
	result, err := h.vacationService.Reject(c.Request.Context(), c.Param("id"), approverID, req.Reason)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// Cancel withdraws a pending or future-dated approved request
// @Summary      Cancel vacation request
// @Description  Pending requests are removed outright; approved future-dated requests move to CANCELLED
// @Tags         vacation-requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/vacation-requests/{id}/cancel [put]
func (h *VacationHandler) Cancel(c *gin.Context) {
	actorID, actorRole := currentUser(c)

	result, deleted, err := h.vacationService.Cancel(c.Request.Context(), c.Param("id"), actorID, actorRole)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if deleted {
		c.JSON(http.StatusOK, response.Success(http.StatusOK, "Request cancelled"))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// Delete removes a pending request owned by the caller
// @Summary      Delete vacation request
// @Tags         vacation-requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/vacation-requests/{id} [delete]
func (h *VacationHandler) Delete(c *gin.Context) {
	actorID, actorRole := currentUser(c)

	if err := h.vacationService.Delete(c.Request.Context(), c.Param("id"), actorID, actorRole); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Request deleted"))
}

// ListMine returns the caller's own requests
// @Summary      List own vacation requests
// @Tags         vacation-requests
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Items per page"
// @Success      200    {object}  response.Response
// @Router       /api/vacation-requests/me [get]
func (h *VacationHandler) ListMine(c *gin.Context) {
	userID, _ := currentUser(c)
	p := pagination.Parse(c)

	requests, total, err := h.vacationService.ListMine(c.Request.Context(), userID, p.Page, p.Limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"requests": requests,
		"total":    total,
		"page":     p.Page,
		"limit":    p.Limit,
	}))
}

// List returns all requests, optionally filtered by status
// @Summary      List vacation requests
// @Tags         vacation-requests
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Status filter (PENDING, APPROVED, REJECTED, CANCELLED)"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Items per page"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Router       /api/vacation-requests [get]
func (h *VacationHandler) List(c *gin.Context) {
	status, ok := statusFilter(c)
	if !ok {
		return
	}
	p := pagination.Parse(c)

	requests, total, err := h.vacationService.List(c.Request.Context(), status, p.Page, p.Limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"requests": requests,
		"total":    total,
		"page":     p.Page,
		"limit":    p.Limit,
	}))
}

// statusFilter validates the optional ?status= query param. On an unknown
// value it writes a 400 and returns ok=false.
func statusFilter(c *gin.Context) (model.RequestStatus, bool) {
	raw := c.Query("status")
	if raw == "" {
		return "", true
	}
	status := model.RequestStatus(raw)
	if !model.ValidStatus(status) {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Unknown status: "+raw))
		return "", false
	}
	return status, true
}
