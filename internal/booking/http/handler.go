package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ovalhall/meeting-scheduler-backend/internal/auth"
	"github.com/ovalhall/meeting-scheduler-backend/internal/booking"
	"github.com/ovalhall/meeting-scheduler-backend/internal/pkg/request"
	"github.com/ovalhall/meeting-scheduler-backend/internal/pkg/response"
	"github.com/ovalhall/meeting-scheduler-backend/internal/user"
)

type Handler struct {
	service     booking.Service
	userService user.Service
}

func NewHandler(service booking.Service, userService user.Service) *Handler {
	return &Handler{
		service:     service,
		userService: userService,
	}
}

// Create validates and persists a booking candidate against the owner named
// in the path. Rejections surface the exact failing check.
func (h *Handler) Create(c *gin.Context) {
	username := c.Param("username")

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	candidate, err := req.Candidate(username)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date or start_time format", "details": err.Error()})
		return
	}

	b, err := h.service.Create(c.Request.Context(), candidate)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

// ListByOwner returns the owner's bookings for one date. Only the owner may
// see who booked them.
func (h *Handler) ListByOwner(c *gin.Context) {
	username := c.Param("username")
	if auth.GetUsername(c) != username {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	owner, err := h.userService.GetByUsername(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "owner not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve owner"})
		return
	}

	dateStr := c.DefaultQuery("date", time.Now().UTC().Format(dateLayout))
	date, err := time.ParseInLocation(dateLayout, dateStr, time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected YYYY-MM-DD"})
		return
	}

	records, err := h.service.ListByOwnerAndDate(c.Request.Context(), owner.ID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookings"})
		return
	}

	items := make([]BookingResponse, len(records))
	for i, b := range records {
		items[i] = NewBookingResponse(b)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, 1, len(items), len(items)))
}

// Get returns one booking by ID, restricted to the calendar owner.
func (h *Handler) Get(c *gin.Context) {
	var byID request.ByIDRequest
	if err := c.ShouldBindUri(&byID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), byID.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if auth.GetUserID(c) != b.OwnerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}
