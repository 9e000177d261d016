package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type SupplyHandler struct {
	supplyService service.SupplyService
}

func NewSupplyHandler(supplyService service.SupplyService) *SupplyHandler {
	return &SupplyHandler{supplyService: supplyService}
}

func (h *SupplyHandler) RegisterRoutes(router *gin.RouterGroup) {
	requests := router.Group("/api/supply-requests")
	{
		requests.POST("", middleware.RequireRole("admin", "employee"), h.Create)
		requests.PUT("/:id/approve", middleware.RequireRole("admin"), h.Approve)
		requests.PUT("/:id/reject", middleware.RequireRole("admin"), h.Reject)
		requests.PUT("/:id/fulfill", middleware.RequireRole("admin"), h.Fulfill)
		requests.DELETE("/:id", middleware.RequireRole("admin", "employee"), h.Delete)
		requests.GET("/me", middleware.RequireRole("admin", "employee"), h.ListMine)
		requests.GET("", middleware.RequireRole("admin"), h.List)
	}
}

// Create submits a new supply request
// @Summary      Create supply request
// @Description  Submits a supply request for the authenticated user; admins are notified by email
// @Tags         supply-requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateSupplyRequestDTO  true  "Supply Request Payload"
// @Success      201      {object}  response.Response{data=service.SupplyRequestResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/supply-requests [post]
func (h *SupplyHandler) Create(c *gin.Context) {
	var req service.CreateSupplyRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	userID, _ := currentUser(c)
	result, err := h.supplyService.Create(c.Request.Context(), userID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, result))
}

// Approve approves a pending supply request
// @Summary      Approve supply request
// @Tags         supply-requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request ID"
// @Success      200  {object}  response.Response{data=service.SupplyRequestResponse}
// @Failure      409  {object}  response.Response
// @Router       /api/supply-requests/{id}/approve [put]
func (h *SupplyHandler) Approve(c *gin.Context) {
	approverID, _ := currentUser(c)

	result, err := h.supplyService.Approve(c.Request.Context(), c.Param("id"), approverID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// Reject rejects a pending supply request with a mandatory reason
// @Summary      Reject supply request
// @Tags         supply-requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                    true  "Request ID"
// @Param        payload  body      service.RejectRequestDTO  true  "Rejection Reason"
// @Success      200      {object}  response.Response{data=service.SupplyRequestResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/supply-requests/{id}/reject [put]
func (h *SupplyHandler) Reject(c *gin.Context) {
	var req service.RejectRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Rejection reason is required"))
		return
	}

	approverID, _ := currentUser(c)
	result, err := h.supplyService.Reject(c.Request.Context(), c.Param("id"), approverID, req.Reason)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// Fulfill marks an approved supply request as fulfilled
// @Summary      Fulfill supply request
// @Tags         supply-requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request ID"
// @Success      200  {object}  response.Response{data=service.SupplyRequestResponse}
// @Failure      409  {object}  response.Response
// @Router       /api/supply-requests/{id}/fulfill [put]
func (h *SupplyHandler) Fulfill(c *gin.Context) {
	adminID, _ := currentUser(c)

	result, err := h.supplyService.Fulfill(c.Request.Context(), c.Param("id"), adminID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// Delete removes a pending supply request owned by the caller
// @Summary      Delete supply request
// @Tags         supply-requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/supply-requests/{id} [delete]
func (h *SupplyHandler) Delete(c *gin.Context) {
	actorID, actorRole := currentUser(c)

	if err := h.supplyService.Delete(c.Request.Context(), c.Param("id"), actorID, actorRole); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Request deleted"))
}

// ListMine returns the caller's own supply requests
// @Summary      List own supply requests
// @Tags         supply-requests
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Items per page"
// @Success      200    {object}  response.Response
// @Router       /api/supply-requests/me [get]
func (h *SupplyHandler) ListMine(c *gin.Context) {
	userID, _ := currentUser(c)
	p := pagination.Parse(c)

	requests, total, err := h.supplyService.ListMine(c.Request.Context(), userID, p.Page, p.Limit)
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

// List returns all supply requests, optionally filtered by status
// @Summary      List supply requests
// @Tags         supply-requests
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Status filter"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Items per page"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Router       /api/supply-requests [get]
func (h *SupplyHandler) List(c *gin.Context) {
	status, ok := statusFilter(c)
	if !ok {
		return
	}
	p := pagination.Parse(c)

	requests, total, err := h.supplyService.List(c.Request.Context(), status, p.Page, p.Limit)
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
