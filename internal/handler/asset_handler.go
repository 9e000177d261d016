package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type AssetHandler struct {
	assetService service.AssetService
}

func NewAssetHandler(assetService service.AssetService) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

func (h *AssetHandler) RegisterRoutes(router *gin.RouterGroup) {
	assets := router.Group("/api/assets")
	{
		assets.POST("", middleware.RequireRole("admin"), h.CreateAsset)
		assets.GET("", middleware.RequireRole("admin", "employee"), h.ListAssets)
		assets.GET("/available", middleware.RequireRole("admin", "employee"), h.ListAvailable)
	}

	requests := router.Group("/api/asset-requests")
	{
		requests.POST("", middleware.RequireRole("admin", "employee"), h.CreateRequest)
		requests.PUT("/:id/approve", middleware.RequireRole("admin"), h.Approve)
		requests.PUT("/:id/reject", middleware.RequireRole("admin"), h.Reject)
		requests.DELETE("/:id", middleware.RequireRole("admin", "employee"), h.Delete)
		requests.GET("/me", middleware.RequireRole("admin", "employee"), h.ListMine)
		requests.GET("", middleware.RequireRole("admin"), h.List)
	}

	assignments := router.Group("/api/asset-assignments")
	{
		assignments.POST("", middleware.RequireRole("admin"), h.CreateAssignment)
		assignments.PUT("/:id/return", middleware.RequireRole("admin"), h.ReturnAsset)
		assignments.GET("", middleware.RequireRole("admin"), h.ListAssignments)
	}
}

// CreateAsset registers a new asset in the inventory
// @Summary      Create asset
// @Tags         assets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateAssetDTO  true  "Asset Payload"
// @Success      201      {object}  response.Response{data=service.AssetResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/assets [post]
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req service.CreateAssetDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	adminID, _ := currentUser(c)
	result, err := h.assetService.CreateAsset(c.Request.Context(), adminID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, result))
}

// ListAssets returns the full asset inventory
// @Summary      List assets
// @Tags         assets
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Items per page"
// @Success      200    {object}  response.Response
// @Router       /api/assets [get]
func (h *AssetHandler) ListAssets(c *gin.Context) {
	p := pagination.Parse(c)

	assets, total, err := h.assetService.ListAssets(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"assets": assets,
		"total":  total,
		"page":   p.Page,
		"limit":  p.Limit,
	}))
}

// ListAvailable returns assets currently available for assignment
// @Summary      List available assets
// @Tags         assets
// @Produce      json
// @Security     BearerAuth
// @Param        category  query     string  false  "Category filter"
// @Success      200       {object}  response.Response{data=[]service.AssetResponse}
// @Router       /api/assets/available [get]
func (h *AssetHandler) ListAvailable(c *gin.Context) {
	assets, err := h.assetService.ListAvailableAssets(c.Request.Context(), c.Query("category"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, assets))
}

// CreateRequest submits a new asset request
// @Summary      Create asset request
// @Description  Submits an asset request for the authenticated user; admins are notified by email
// @Tags         asset-requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateAssetRequestDTO  true  "Asset Request Payload"
// @Success      201      {object}  response.Response{data=service.AssetRequestResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/asset-requests [post]
func (h *AssetHandler) CreateRequest(c *gin.Context) {
	var req service.CreateAssetRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	userID, _ := currentUser(c)
	result, err := h.assetService.CreateRequest(c.Request.Context(), userID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, result))
}

// Approve approves a pending asset request, optionally binding an asset
// @Summary      Approve asset request
// @Description  Approves the request; when an asset id is supplied the asset is assigned and an active assignment is opened in the same transaction
// @Tags         asset-requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                          true   "Request ID"
// @Param        payload  body      service.ApproveAssetRequestDTO  false  "Approval Options"
// @Success      200      {object}  response.Response{data=service.AssetRequestResponse}
// @Failure      409      {object}  response.Response
// @Router       /api/asset-requests/{id}/approve [put]
func (h *AssetHandler) Approve(c *gin.Context) {
	var req service.ApproveAssetRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		// Empty body is fine — approval without binding an asset
		req = service.ApproveAssetRequestDTO{}
	}

	approverID, _ := currentUser(c)
	result, err := h.assetService.Approve(c.Request.Context(), c.Param("id"), approverID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// Reject rejects a pending asset request with a mandatory reason
// @Summary      Reject asset request
// @Tags         asset-requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                    true  "Request ID"
// @Param        payload  body      service.RejectRequestDTO  true  "Rejection Reason"
// @Success      200      {object}  response.Response{data=service.AssetRequestResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/asset-requests/{id}/reject [put]
func (h *AssetHandler) Reject(c *gin.Context) {
	var req service.RejectRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Rejection reason is required"))
		return
	}

	approverID, _ := currentUser(c)
	result, err := h.assetService.Reject(c.Request.Context(), c.Param("id"), approverID, req.Reason)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// Delete removes a pending asset request owned by the caller
// @Summary      Delete asset request
// @Tags         asset-requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/asset-requests/{id} [delete]
func (h *AssetHandler) Delete(c *gin.Context) {
	actorID, actorRole := currentUser(c)

	if err := h.assetService.Delete(c.Request.Context(), c.Param("id"), actorID, actorRole); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Request deleted"))
}

// ListMine returns the caller's own asset requests
// @Summary      List own asset requests
// @Tags         asset-requests
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Items per page"
// @Success      200    {object}  response.Response
// @Router       /api/asset-requests/me [get]
func (h *AssetHandler) ListMine(c *gin.Context) {
	userID, _ := currentUser(c)
	p := pagination.Parse(c)

	requests, total, err := h.assetService.ListMine(c.Request.Context(), userID, p.Page, p.Limit)
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

// List returns all asset requests, optionally filtered by status
// @Summary      List asset requests
// @Tags         asset-requests
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Status filter"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Items per page"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Router       /api/asset-requests [get]
func (h *AssetHandler) List(c *gin.Context) {
	status, ok := statusFilter(c)
	if !ok {
		return
	}
	p := pagination.Parse(c)

	requests, total, err := h.assetService.List(c.Request.Context(), status, p.Page, p.Limit)
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

// CreateAssignment issues an asset directly to a user without a request
// @Summary      Create asset assignment
// @Tags         asset-assignments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateAssignmentDTO  true  "Assignment Payload"
// @Success      201      {object}  response.Response{data=service.AssignmentResponse}
// @Failure      409      {object}  response.Response
// @Router       /api/asset-assignments [post]
func (h *AssetHandler) CreateAssignment(c *gin.Context) {
	var req service.CreateAssignmentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	adminID, _ := currentUser(c)
	result, err := h.assetService.CreateAssignment(c.Request.Context(), adminID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, result))
}

// ReturnAsset closes an active assignment and frees the asset
// @Summary      Return assigned asset
// @Tags         asset-assignments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Assignment ID"
// @Success      200  {object}  response.Response{data=service.AssignmentResponse}
// @Failure      409  {object}  response.Response
// @Router       /api/asset-assignments/{id}/return [put]
func (h *AssetHandler) ReturnAsset(c *gin.Context) {
	adminID, _ := currentUser(c)

	result, err := h.assetService.ReturnAsset(c.Request.Context(), c.Param("id"), adminID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// ListAssignments returns assignments, optionally filtered by status
// @Summary      List asset assignments
// @Tags         asset-assignments
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Status filter (ACTIVE, RETURNED)"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Items per page"
// @Success      200     {object}  response.Response
// @Router       /api/asset-assignments [get]
func (h *AssetHandler) ListAssignments(c *gin.Context) {
	p := pagination.Parse(c)

	assignments, total, err := h.assetService.ListAssignments(c.Request.Context(), c.Query("status"), p.Page, p.Limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"assignments": assignments,
		"total":       total,
		"page":        p.Page,
		"limit":       p.Limit,
	}))
}
