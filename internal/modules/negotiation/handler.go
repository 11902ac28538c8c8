package negotiation

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"hotelbook/internal/domain"
	"hotelbook/internal/pkg/response"
	"hotelbook/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	n := rg.Group("/negotiations")
	{
		n.POST("", h.Propose)
		n.GET("/me", h.ListMine)
		n.GET("/:id", h.Get)
		n.PATCH("/:id", h.Update)
		n.DELETE("/:id", h.Cancel)
		n.POST("/:id/accept-counter", h.AcceptCounter)
		n.GET("/:id/history", h.History)
	}

	rg.GET("/hotels/:id/negotiations", h.ListByHotel)
	rg.GET("/rooms/:id/negotiations", h.ListByRoom)
}

// Propose creates a pending negotiation.
// @Summary		Propose a nightly price
// @Tags		Negotiations
// @Security	BearerAuth
// @Param		request	body	ProposeRequest	true	"room_id, start_date, end_date, price"
// @Success		201	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{}
// @Router		/negotiations [POST]
func (h *Handler) Propose(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req ProposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", errs)
		return
	}

	start, err1 := time.Parse(dateLayout, req.StartDate)
	end, err2 := time.Parse(dateLayout, req.EndDate)
	if err1 != nil || err2 != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Dates must be YYYY-MM-DD")
		return
	}

	res, err := h.service.Propose(c.Request.Context(), actor, ProposeInput{
		RoomID:    req.RoomID,
		StartDate: start,
		EndDate:   end,
		Price:     *req.Price,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, newTransitionResponse(res, actor.Role))
}

// Get handles GET /api/v1/negotiations/:id
func (h *Handler) Get(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	v, err := h.service.Get(c.Request.Context(), actor, id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, v)
}

// Update applies a host or guest decision.
// @Summary		Accept, reject, counter or cancel
// @Tags		Negotiations
// @Security	BearerAuth
// @Param		id		path	int				true	"Negotiation ID"
// @Param		request	body	UpdateRequest	true	"status and optional counter_price"
// @Success		200	{object}	map[string]interface{}
// @Failure		409	{object}	map[string]interface{}
// @Router		/negotiations/{id} [PATCH]
func (h *Handler) Update(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", errs)
		return
	}

	res, err := h.service.Update(c.Request.Context(), actor, id, UpdateInput{
		Status:       req.Status,
		CounterPrice: req.CounterPrice,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, newTransitionResponse(res, actor.Role))
}

// AcceptCounter handles POST /api/v1/negotiations/:id/accept-counter
func (h *Handler) AcceptCounter(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	res, err := h.service.AcceptCounter(c.Request.Context(), actor, id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, newTransitionResponse(res, actor.Role))
}

// Cancel handles DELETE /api/v1/negotiations/:id
func (h *Handler) Cancel(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	res, err := h.service.Cancel(c.Request.Context(), actor, id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, newTransitionResponse(res, actor.Role))
}

func (h *Handler) History(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	events, err := h.service.History(c.Request.Context(), actor, id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"events": events})
}

// ListMine handles GET /api/v1/negotiations/me?status=active
func (h *Handler) ListMine(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	res, err := h.service.ListByUser(c.Request.Context(), actor, actor.UserID, listParams(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// ListByHotel handles GET /api/v1/hotels/:id/negotiations
func (h *Handler) ListByHotel(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	res, err := h.service.ListByHotel(c.Request.Context(), actor, id, listParams(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// ListByRoom handles GET /api/v1/rooms/:id/negotiations
func (h *Handler) ListByRoom(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	res, err := h.service.ListByRoom(c.Request.Context(), actor, id, listParams(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func actorFrom(c *gin.Context) (domain.Actor, bool) {
	userID := c.GetInt64("user_id")
	role := domain.UserRole(c.GetString("role"))
	if userID == 0 || !role.IsValid() {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return domain.Actor{}, false
	}
	return domain.Actor{UserID: userID, Role: role}, true
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return 0, false
	}
	return id, true
}

func listParams(c *gin.Context) ListParams {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	return ListParams{Status: c.Query("status"), Limit: limit, Offset: offset}
}

// writeError maps service errors to the response envelope. Validation is
// checked first: a missing room on propose is a bad request, not a 404.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", err.Error())
	case errors.Is(err, ErrStaleState):
		response.Error(c, http.StatusConflict, "STALE_STATE", "Negotiation was changed by someone else, reload and retry")
	case errors.Is(err, ErrBookingConflict):
		response.Error(c, http.StatusConflict, "BOOKING_CONFLICT", "Room is already booked for these dates")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
