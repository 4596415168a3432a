package items

import (
	"context"
	"time"
)

// Service applies the business rules between controller and repository:
// server-assigned ownership, completed defaulting, and timestamping.
// Validation is the controller's responsibility and never happens here.
type Service struct {
	repo Repository

	// now is the clock used for timestamp stamping; injectable for tests.
	now func() time.Time
}

// NewService creates a service over the given repository.
func NewService(repo Repository) *Service {
	if repo == nil {
		panic("repository cannot be nil")
	}

	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// List returns the owner's items, newest first.
func (s *Service) List(ctx context.Context, owner string) ([]Item, error) {
	return s.repo.ListByOwner(ctx, owner)
}

// Create constructs a full Item from the draft and stores it.
//
// Ownership is always taken from the authenticated subject, never from the
// payload. Completed defaults to false when the draft omits it. CreatedAt
// and UpdatedAt are stamped to the same instant.
func (s *Service) Create(ctx context.Context, owner string, draft CreateDraft) (*Item, error) {
	now := s.timestamp()

	item := &Item{
		Name:        draft.Name,
		Description: draft.Description,
		Owner:       owner,
		Completed:   draft.Completed != nil && *draft.Completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := s.repo.Insert(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// Update builds a patch from the draft's present fields plus a fresh
// UpdatedAt stamp and applies it to the owner's document. CreatedAt is never
// re-stamped.
func (s *Service) Update(ctx context.Context, id, owner string, draft UpdateDraft) (*UpdateResult, error) {
	patch := Patch{
		Name:        draft.Name,
		Description: draft.Description,
		Completed:   draft.Completed,
		UpdatedAt:   s.timestamp(),
	}

	return s.repo.UpdateByOwner(ctx, id, owner, patch)
}

// Remove deletes the owner's document.
func (s *Service) Remove(ctx context.Context, id, owner string) (*DeleteResult, error) {
	return s.repo.DeleteByOwner(ctx, id, owner)
}

// timestamp returns the current instant truncated to the store's millisecond
// precision, so a created item round-trips with identical field values.
func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}
