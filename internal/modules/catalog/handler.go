package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotelbook/internal/domain"
	"hotelbook/internal/middleware"
	"hotelbook/internal/pkg/response"
	"hotelbook/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

/* ---------- ROUTE REGISTRATION ---------- */

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	if public != nil {
		public.GET("/hotels", h.GetHotels)        // ?city=&limit=&page=
		public.GET("/hotels/:id", h.GetHotelByID) // with rooms
		public.GET("/hotels/:id/rooms", h.GetRooms)
		public.GET("/rooms/:id", h.GetRoomByID)
	}

	if protected != nil {
		host := protected.Group("")
		host.Use(middleware.RequireRole(domain.RoleHost))
		host.GET("/hotels/mine", h.GetMyHotels)
		host.POST("/hotels", h.CreateHotel)
		host.POST("/hotels/:id/rooms", h.CreateRoom)
		host.PUT("/rooms/:id", h.UpdateRoom)
	}
}

/* ---------- HOTEL HANDLERS ---------- */

// GetHotels handles GET /api/v1/hotels with filters
func (h *Handler) GetHotels(c *gin.Context) {
	f := repository.HotelFilters{City: c.Query("city")}
	h.listHotels(c, f)
}

// GetMyHotels handles GET /api/v1/hotels/mine
func (h *Handler) GetMyHotels(c *gin.Context) {
	h.listHotels(c, repository.HotelFilters{OwnerID: c.GetInt64("user_id")})
}

func (h *Handler) listHotels(c *gin.Context, f repository.HotelFilters) {
	f.Limit = 20
	if limit := c.Query("limit"); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil && val > 0 && val <= 100 {
			f.Limit = val
		}
	}
	if page := c.Query("page"); page != "" {
		if val, err := strconv.Atoi(page); err == nil && val > 0 {
			f.Offset = (val - 1) * f.Limit
		}
	}

	hotels, total, err := h.service.ListHotels(c.Request.Context(), f)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"hotels": hotels,
		"pagination": gin.H{
			"page":        f.Offset/f.Limit + 1,
			"limit":       f.Limit,
			"total":       total,
			"total_pages": (int(total) + f.Limit - 1) / f.Limit,
		},
	})
}

// GetHotelByID handles GET /api/v1/hotels/:id
func (h *Handler) GetHotelByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	hotel, err := h.service.GetHotel(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"hotel": hotel})
}

// CreateHotel handles POST /api/v1/hotels
func (h *Handler) CreateHotel(c *gin.Context) {
	var req CreateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	hotel, err := h.service.CreateHotel(c.Request.Context(), actorOf(c), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"hotel": hotel})
}

/* ---------- ROOM HANDLERS ---------- */

// GetRooms handles GET /api/v1/hotels/:id/rooms
func (h *Handler) GetRooms(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	rooms, err := h.service.ListRooms(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rooms": rooms})
}

// GetRoomByID handles GET /api/v1/rooms/:id
func (h *Handler) GetRoomByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	room, err := h.service.GetRoom(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"room": room})
}

// CreateRoom handles POST /api/v1/hotels/:id/rooms
func (h *Handler) CreateRoom(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	room, err := h.service.CreateRoom(c.Request.Context(), actorOf(c), id, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"room": room})
}

// UpdateRoom handles PUT /api/v1/rooms/:id
func (h *Handler) UpdateRoom(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	room, err := h.service.UpdateRoom(c.Request.Context(), actorOf(c), id, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"room": room})
}

func actorOf(c *gin.Context) domain.Actor {
	return domain.Actor{UserID: c.GetInt64("user_id"), Role: domain.UserRole(c.GetString("role"))}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return 0, false
	}
	return id, true
}

/* ---------- ERROR HANDLING ---------- */

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't have permission to perform this action")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
