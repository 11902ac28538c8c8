package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotelbook/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	if public != nil {
		public.GET("/rooms/:id/busy-ranges", h.GetBusyRanges)
	}
	if protected != nil {
		protected.GET("/bookings/me", h.GetMyBookings)
	}
}

// GetMyBookings handles GET /api/v1/bookings/me
func (h *Handler) GetMyBookings(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, err := h.service.GetMyBookings(c.Request.Context(), userID, limit, offset)
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load bookings")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": items})
}

// GetBusyRanges handles GET /api/v1/rooms/:id/busy-ranges?from=2024-06-01&to=2024-07-01
func (h *Handler) GetBusyRanges(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || roomID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid room ID")
		return
	}

	ranges, err := h.service.GetBusyRanges(c.Request.Context(), roomID, c.Query("from"), c.Query("to"))
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "from/to must be YYYY-MM-DD with from < to, at most one year apart")
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load busy ranges")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"room_id":     roomID,
		"busy_ranges": ranges,
	})
}
