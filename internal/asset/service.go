package asset

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/assetdesk/assetdesk/internal/activity"
	"github.com/assetdesk/assetdesk/internal/rbac"
	"github.com/assetdesk/assetdesk/internal/shared"
)

// RepositoryPort abstracts persistence for the service.
type RepositoryPort interface {
	List(ctx context.Context) ([]Asset, error)
	Get(ctx context.Context, id string) (*Asset, error)
	Upsert(ctx context.Context, a Asset) error
}

// Recorder abstracts the activity log write side.
type Recorder interface {
	Append(ctx context.Context, assetID, action, username string) error
}

// Invalidator lets mutations bump downstream caches.
type Invalidator interface {
	Bump(ctx context.Context) error
}

// Encoder turns an identifier payload into a scannable image.
type Encoder interface {
	Encode(payload string) ([]byte, error)
}

// Service coordinates asset registry operations. All capability checks
// happen here, at the operation boundary, independent of what the
// presentation layer chooses to show.
type Service struct {
	repo     RepositoryPort
	log      Recorder
	cache    Invalidator
	encoder  Encoder
	locks    *shared.KeyedMutex
	validate *validator.Validate
}

// NewService builds Service. cache and encoder may be nil when the caller
// does not need invalidation or identifier images.
func NewService(repo RepositoryPort, log Recorder, cache Invalidator, encoder Encoder) *Service {
	return &Service{
		repo:     repo,
		log:      log,
		cache:    cache,
		encoder:  encoder,
		locks:    shared.NewKeyedMutex(),
		validate: validator.New(),
	}
}

// List returns the full snapshot. Absent dates surface as nil, never as an
// error.
func (s *Service) List(ctx context.Context) ([]Asset, error) {
	return s.repo.List(ctx)
}

// Get fetches one asset or shared.ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (*Asset, error) {
	return s.repo.Get(ctx, id)
}

// Upsert validates and writes a full row replacement, then records the
// mutation. Requires the manage_assets capability.
func (s *Service) Upsert(ctx context.Context, principal shared.Principal, input UpsertInput) (*Asset, error) {
	caps := rbac.Capabilities(principal.Role)
	if !rbac.Has(caps, rbac.CapManageAssets) {
		return nil, shared.ErrPermissionDenied
	}

	if err := s.validate.Struct(input); err != nil {
		fields := make(map[string]string)
		for _, fieldErr := range err.(validator.ValidationErrors) {
			fields[fieldErr.Field()] = fieldErr.Tag()
		}
		return nil, shared.NewValidationError(fields)
	}

	status := NormalizeStatus(input.Status)
	if !status.Valid() {
		return nil, shared.NewValidationError(map[string]string{
			"Status": "must be one of Active, Maintenance, Retired",
		})
	}

	a := Asset{
		ID:              input.ID,
		Name:            input.Name,
		Location:        input.Location,
		Status:          status,
		LastMaintenance: input.LastMaintenance,
		NextMaintenance: input.NextMaintenance,
		WarrantyExpiry:  input.WarrantyExpiry,
		Cost:            input.Cost,
	}

	// Writes to the same id take turns; the statement itself stays atomic.
	s.locks.Lock(a.ID)
	defer s.locks.Unlock(a.ID)

	if err := s.repo.Upsert(ctx, a); err != nil {
		return nil, err
	}
	if err := s.log.Append(ctx, a.ID, activity.ActionAddedUpdated, principal.Username); err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.Bump(ctx)
	}
	return &a, nil
}

// Identifier fetches the asset, builds the encoder payload and returns both
// the payload text and the encoded image. Requires the track_assets
// capability; an unknown id yields shared.ErrNotFound.
func (s *Service) Identifier(ctx context.Context, principal shared.Principal, id string) (string, []byte, error) {
	caps := rbac.Capabilities(principal.Role)
	if !rbac.Has(caps, rbac.CapTrackAssets) {
		return "", nil, shared.ErrPermissionDenied
	}

	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return "", nil, err
	}

	payload := IdentifierPayload(*a)

	var image []byte
	if s.encoder != nil {
		image, err = s.encoder.Encode(payload)
		if err != nil {
			return "", nil, err
		}
	}
	if err := s.log.Append(ctx, a.ID, activity.ActionTracked, principal.Username); err != nil {
		return "", nil, err
	}
	return payload, image, nil
}
