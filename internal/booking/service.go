package booking

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/ovalhall/meeting-scheduler-backend/internal/pkg/ownerlock"
	"github.com/ovalhall/meeting-scheduler-backend/internal/user"
)

// Service validates and persists bookings. Validation reads the owner's
// current bookings and acceptance writes a new one, so the whole
// validate-then-persist sequence is serialized per owner; candidates for
// different owners proceed in parallel.
type Service interface {
	Create(ctx context.Context, c Candidate) (*Record, error)
	GetByID(ctx context.Context, id string) (*Record, error)
	ListByOwnerAndDate(ctx context.Context, ownerID string, date time.Time) ([]*Record, error)
}

type service struct {
	engine *Engine
	repo   Repository
	locks  *ownerlock.KeyedMutex
	logger *zap.Logger
}

// NewService creates a booking Service around the validation engine.
func NewService(engine *Engine, repo Repository, logger *zap.Logger) Service {
	return &service{
		engine: engine,
		repo:   repo,
		locks:  ownerlock.New(),
		logger: logger,
	}
}

func (s *service) Create(ctx context.Context, c Candidate) (*Record, error) {
	// Lock on the resolved owner ID, not the submitted username: the resolver
	// normalizes usernames (whitespace trimming), so two spellings of the same
	// owner must land on one key or both could pass validation against a
	// stale snapshot.
	owner, err := s.engine.ResolveOwner(ctx, c.OwnerUsername)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrOwnerNotFound
		}
		return nil, err
	}

	s.locks.Lock(owner.ID)
	defer s.locks.Unlock(owner.ID)

	decision, err := s.engine.Validate(ctx, c)
	if err != nil {
		return nil, err
	}
	if !decision.Accepted {
		return nil, decision.Reason
	}

	if err := s.repo.Insert(ctx, decision.Record); err != nil {
		return nil, err
	}

	s.logger.Info("booking accepted",
		zap.String("owner", c.OwnerUsername),
		zap.Time("start", decision.Record.StartTime),
		zap.Time("end", decision.Record.EndTime),
	)
	return decision.Record, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Record, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByOwnerAndDate(ctx context.Context, ownerID string, date time.Time) ([]*Record, error) {
	return s.repo.ListByOwnerAndDate(ctx, ownerID, date)
}
