package http

import (
	"time"

	"github.com/ovalhall/meeting-scheduler-backend/internal/availability"
	"github.com/ovalhall/meeting-scheduler-backend/internal/pkg/timespan"
)

// WindowResponse is the API shape of one availability window.
type WindowResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	From        time.Time `json:"from"`
	To          time.Time `json:"to"`
	SlotMinutes int       `json:"slot_minutes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewWindowResponse(w *availability.Window) WindowResponse {
	return WindowResponse{
		ID:          w.ID,
		OwnerID:     w.OwnerID,
		From:        w.Span.Start(),
		To:          w.Span.End(),
		SlotMinutes: w.SlotMinutes,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

// CreateWindowRequest defines the payload for declaring a new window.
type CreateWindowRequest struct {
	From        time.Time `json:"from" binding:"required"`
	To          time.Time `json:"to" binding:"required"`
	SlotMinutes int       `json:"slot_minutes" binding:"required,oneof=15 30 45 60"`
}

// Validate performs custom validation for CreateWindowRequest.
func (r *CreateWindowRequest) Validate() error {
	if !r.From.Before(r.To) {
		return timespan.ErrInvalidSpan
	}
	return nil
}

// UpdateWindowRequest defines the payload for partial updates. Absent fields
// retain their stored values.
type UpdateWindowRequest struct {
	From        *time.Time `json:"from"`
	To          *time.Time `json:"to"`
	SlotMinutes *int       `json:"slot_minutes" binding:"omitempty,oneof=15 30 45 60"`
}

// Validate performs custom validation for UpdateWindowRequest.
func (r *UpdateWindowRequest) Validate() error {
	if r.From != nil && r.To != nil && !r.From.Before(*r.To) {
		return timespan.ErrInvalidSpan
	}
	return nil
}
