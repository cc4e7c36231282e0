package availability

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ovalhall/meeting-scheduler-backend/internal/pkg/timespan"
)

// CreateRequest holds the fields needed to declare a new window.
type CreateRequest struct {
	OwnerID     string
	From        time.Time
	To          time.Time
	SlotMinutes int
}

// UpdateRequest applies only the fields that are non-nil; nil fields retain
// their stored values.
type UpdateRequest struct {
	From        *time.Time
	To          *time.Time
	SlotMinutes *int
}

// Service defines business logic for availability windows. All mutations are
// scoped to the owning user; deleting or updating a window never touches
// bookings that were accepted while it was in force.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Window, error)
	Update(ctx context.Context, id, ownerID string, req UpdateRequest) (*Window, error)
	Delete(ctx context.Context, id, ownerID string) error
	GetByID(ctx context.Context, id string) (*Window, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Window, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new availability Service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Window, error) {
	span, err := timespan.New(req.From.UTC(), req.To.UTC())
	if err != nil {
		return nil, err
	}
	if !ValidSlotMinutes(req.SlotMinutes) {
		return nil, ErrInvalidSlot
	}

	w := &Window{
		OwnerID:     req.OwnerID,
		Span:        span,
		SlotMinutes: req.SlotMinutes,
	}

	if err := s.repo.Create(ctx, w); err != nil {
		return nil, err
	}

	s.logger.Info("availability window created",
		zap.String("owner_id", w.OwnerID),
		zap.Time("from", w.Span.Start()),
		zap.Time("to", w.Span.End()),
	)
	return w, nil
}

func (s *service) Update(ctx context.Context, id, ownerID string, req UpdateRequest) (*Window, error) {
	w, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w.OwnerID != ownerID {
		return nil, ErrPermissionDenied
	}

	from := w.Span.Start()
	to := w.Span.End()
	if req.From != nil {
		from = req.From.UTC()
	}
	if req.To != nil {
		to = req.To.UTC()
	}

	span, err := timespan.New(from, to)
	if err != nil {
		return nil, err
	}
	w.Span = span

	if req.SlotMinutes != nil {
		if !ValidSlotMinutes(*req.SlotMinutes) {
			return nil, ErrInvalidSlot
		}
		w.SlotMinutes = *req.SlotMinutes
	}

	if err := s.repo.Update(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *service) Delete(ctx context.Context, id, ownerID string) error {
	w, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if w.OwnerID != ownerID {
		return ErrPermissionDenied
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) GetByID(ctx context.Context, id string) (*Window, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByOwner(ctx context.Context, ownerID string) ([]*Window, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}
