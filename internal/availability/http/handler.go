package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ovalhall/meeting-scheduler-backend/internal/auth"
	"github.com/ovalhall/meeting-scheduler-backend/internal/availability"
	"github.com/ovalhall/meeting-scheduler-backend/internal/pkg/request"
	"github.com/ovalhall/meeting-scheduler-backend/internal/pkg/response"
	"github.com/ovalhall/meeting-scheduler-backend/internal/user"
)

type Handler struct {
	service     availability.Service
	userService user.Service
}

func NewHandler(service availability.Service, userService user.Service) *Handler {
	return &Handler{
		service:     service,
		userService: userService,
	}
}

// ListOwn returns the authenticated user's availability windows.
func (h *Handler) ListOwn(c *gin.Context) {
	ownerID := auth.GetUserID(c)
	if ownerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	windows, err := h.service.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list availability"})
		return
	}

	items := make([]WindowResponse, len(windows))
	for i, w := range windows {
		items[i] = NewWindowResponse(w)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, 1, len(items), len(items)))
}

// ListByUsername returns an owner's windows to anonymous booking clients.
func (h *Handler) ListByUsername(c *gin.Context) {
	username := c.Param("username")

	owner, err := h.userService.GetByUsername(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "owner not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve owner"})
		return
	}

	windows, err := h.service.ListByOwner(c.Request.Context(), owner.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list availability"})
		return
	}

	items := make([]WindowResponse, len(windows))
	for i, w := range windows {
		items[i] = NewWindowResponse(w)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, 1, len(items), len(items)))
}

// Create declares a new availability window for the authenticated user.
func (h *Handler) Create(c *gin.Context) {
	ownerID := auth.GetUserID(c)
	if ownerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req CreateWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	w, err := h.service.Create(c.Request.Context(), availability.CreateRequest{
		OwnerID:     ownerID,
		From:        req.From,
		To:          req.To,
		SlotMinutes: req.SlotMinutes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewWindowResponse(w))
}

// Update applies a partial update to one of the user's windows.
func (h *Handler) Update(c *gin.Context) {
	ownerID := auth.GetUserID(c)
	if ownerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var byID request.ByIDRequest
	if err := c.ShouldBindUri(&byID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var req UpdateWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	w, err := h.service.Update(c.Request.Context(), byID.ID, ownerID, availability.UpdateRequest{
		From:        req.From,
		To:          req.To,
		SlotMinutes: req.SlotMinutes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewWindowResponse(w))
}

// Delete removes one of the user's windows. Existing bookings stay valid.
func (h *Handler) Delete(c *gin.Context) {
	ownerID := auth.GetUserID(c)
	if ownerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var byID request.ByIDRequest
	if err := c.ShouldBindUri(&byID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), byID.ID, ownerID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
