package handler

import (
	"errors"
	"net/http"

	"purchasing-backend/internal/middleware"
	"purchasing-backend/internal/service"
	"purchasing-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	requestService service.RequestService
}

func NewRequestHandler(requestService service.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

func (h *RequestHandler) RegisterRoutes(router *gin.RouterGroup) {
	requests := router.Group("/api/requests")
	{
		requests.GET("", middleware.RequirePermission("requests.read"), h.ListRequests)
		requests.POST("", middleware.RequirePermission("requests.write"), h.CreateRequest)
		requests.GET("/:id", middleware.RequirePermission("requests.read"), h.GetRequest)
		requests.PUT("/:id", middleware.RequirePermission("requests.write"), h.UpdateRequest)
		requests.PUT("/:id/status", middleware.RequirePermission("requests.status"), h.UpdateStatus)
		requests.POST("/:id/reopen", middleware.RequirePermission("requests.reopen"), h.Reopen)
		requests.POST("/:id/actions", middleware.RequirePermission("requests.actions"), h.RequestAction)
		requests.PUT("/:id/actions/resolve", middleware.RequirePermission("requests.actions.resolve"), h.ResolveAction)
		requests.GET("/:id/history", middleware.RequirePermission("requests.read"), h.GetHistory)
	}
}

// actorFrom extracts the authenticated username set by the auth middleware.
func actorFrom(c *gin.Context) string {
	return c.GetString("username")
}

// writeServiceError maps engine failures onto HTTP status codes.
func writeServiceError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	var transitionErr *service.InvalidTransitionError

	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
	case errors.Is(err, service.ErrNoPendingAction),
		errors.Is(err, service.ErrActionAlreadyPending):
		c.JSON(http.StatusConflict, response.Error(http.StatusConflict, err.Error()))
	case errors.As(err, &transitionErr):
		c.JSON(http.StatusConflict, response.Error(http.StatusConflict, err.Error()))
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
	}
}

// CreateRequest registers a new purchase request
// @Summary      Create purchase request
// @Description  Allocates the next consecutive number and creates a request in PENDING status
// @Tags         requests
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateRequestDTO  true  "Create Request Payload"
// @Success      201      {object}  response.Response{data=service.RequestResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/requests [post]
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	var req service.CreateRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.requestService.CreateRequest(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, result))
}

// ListRequests returns all purchase requests, newest first
// @Summary      List purchase requests
// @Tags         requests
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.RequestResponse}
// @Router       /api/requests [get]
func (h *RequestHandler) ListRequests(c *gin.Context) {
	result, err := h.requestService.ListRequests(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// GetRequest returns one purchase request by id
// @Summary      Get purchase request
// @Tags         requests
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Request ID"
// @Success      200  {object}  response.Response{data=service.RequestResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/requests/{id} [get]
func (h *RequestHandler) GetRequest(c *gin.Context) {
	result, err := h.requestService.GetRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// UpdateRequest edits the whitelisted content fields of a request
// @Summary      Update purchase request content
// @Description  Edits content fields only; edits after approval are flagged in the history ledger
// @Tags         requests
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                    true  "Request ID"
// @Param        payload  body      service.UpdateRequestDTO  true  "Editable Fields"
// @Success      200      {object}  response.Response{data=service.RequestResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/requests/{id} [put]
func (h *RequestHandler) UpdateRequest(c *gin.Context) {
	var req service.UpdateRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.requestService.UpdateRequest(c.Request.Context(), c.Param("id"), actorFrom(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// UpdateStatus applies one lifecycle transition
// @Summary      Update request status
// @Description  Validates the transition against the lifecycle table and appends a history entry
// @Tags         requests
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                   true  "Request ID"
// @Param        payload  body      service.UpdateStatusDTO  true  "Status Transition"
// @Success      200      {object}  response.Response{data=service.RequestResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/requests/{id}/status [put]
func (h *RequestHandler) UpdateStatus(c *gin.Context) {
	var req service.UpdateStatusDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.requestService.UpdateStatus(c.Request.Context(), c.Param("id"), actorFrom(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// Reopen forces a finished or canceled request back to PENDING
// @Summary      Reopen request
// @Description  Returns a terminal or canceled request to PENDING and marks it reopened
// @Tags         requests
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Request ID"
// @Success      200  {object}  response.Response{data=service.RequestResponse}
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/requests/{id}/reopen [post]
func (h *RequestHandler) Reopen(c *gin.Context) {
	result, err := h.requestService.Reopen(c.Request.Context(), c.Param("id"), actorFrom(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// RequestAction opens a dual-control administrative action
// @Summary      Propose administrative action
// @Description  Flags the request for cancellation or un-approval without changing its status
// @Tags         requests
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                           true  "Request ID"
// @Param        payload  body      service.AdministrativeActionDTO  true  "Action Proposal"
// @Success      200      {object}  response.Response{data=service.RequestResponse}
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/requests/{id}/actions [post]
func (h *RequestHandler) RequestAction(c *gin.Context) {
	var req service.AdministrativeActionDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.requestService.RequestAdministrativeAction(c.Request.Context(), c.Param("id"), actorFrom(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// ResolveAction approves or rejects the pending administrative action
// @Summary      Resolve administrative action
// @Description  A second actor applies or rejects the pending proposal
// @Tags         requests
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                    true  "Request ID"
// @Param        payload  body      service.ResolveActionDTO  true  "Resolution"
// @Success      200      {object}  response.Response{data=service.RequestResponse}
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/requests/{id}/actions/resolve [put]
func (h *RequestHandler) ResolveAction(c *gin.Context) {
	var req service.ResolveActionDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.requestService.ResolveAdministrativeAction(c.Request.Context(), c.Param("id"), actorFrom(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// GetHistory returns the audit ledger for one request, newest first
// @Summary      Get request history
// @Tags         requests
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Request ID"
// @Success      200  {object}  response.Response{data=[]service.HistoryEntryResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/requests/{id}/history [get]
func (h *RequestHandler) GetHistory(c *gin.Context) {
	result, err := h.requestService.GetHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}
