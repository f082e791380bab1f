package activity

import (
	"context"
	"errors"
	"time"
)

// Service coordinates the append-only activity log. Only successful
// mutations are recorded; errors never are.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService constructs a Service. now may be nil, defaulting to time.Now.
func NewService(repo Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, now: now}
}

// Append writes one immutable record with the wall-clock timestamp captured
// at call time. A failure here means the store is unreachable and is
// propagated as-is.
func (s *Service) Append(ctx context.Context, assetID, action, username string) error {
	if s == nil || s.repo == nil {
		return errors.New("activity: repository not configured")
	}
	loggedAt := s.now().Format(TimestampLayout)
	_, err := s.repo.Insert(ctx, assetID, action, username, loggedAt)
	return err
}

// List returns the full log snapshot in insertion order.
func (s *Service) List(ctx context.Context) ([]Entry, error) {
	return s.repo.List(ctx)
}
