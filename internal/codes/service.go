package codes

import (
	"context"
	"errors"
	"strings"

	"github.com/codebin/codebin/internal/access"
	"github.com/codebin/codebin/internal/apperror"
	"github.com/codebin/codebin/internal/tokens"
)

// Service applies validation and the access policy in front of the
// repository. Per-instance operations load the record first so a missing id
// reads as NotFound, then consult the policy so a foreign id reads as
// Forbidden — in that order.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service { return &Service{repo: r} }

// Create persists a new code owned by the authenticated identity.
func (s *Service) Create(ctx context.Context, claims *tokens.Claims, language, body string) (*Code, error) {
	if strings.TrimSpace(language) == "" {
		return nil, apperror.NewValidation("language is required", nil)
	}
	if strings.TrimSpace(body) == "" {
		return nil, apperror.NewValidation("body is required", nil)
	}
	code := &Code{
		Language: language,
		Body:     body,
		OwnerID:  claims.UserID(),
	}
	created, err := s.repo.Insert(ctx, code)
	if err != nil {
		return nil, apperror.NewStorage("failed to create code", err)
	}
	return created, nil
}

// List returns every code; listing is always allowed by the policy.
func (s *Service) List(ctx context.Context) ([]*Code, error) {
	out, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperror.NewStorage("failed to list codes", err)
	}
	return out, nil
}

// ListByOwner returns the codes owned by the given user.
func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]*Code, error) {
	out, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperror.NewStorage("failed to list codes", err)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, claims *tokens.Claims, id string) (*Code, error) {
	code, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanAccess(claims, code.OwnerID, access.ReadOne) {
		return nil, apperror.NewForbidden("Forbidden", nil)
	}
	return code, nil
}

func (s *Service) Update(ctx context.Context, claims *tokens.Claims, id string, patch Patch) (*Code, error) {
	code, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanAccess(claims, code.OwnerID, access.Update) {
		return nil, apperror.NewForbidden("Forbidden", nil)
	}
	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperror.NewNotFound("code not found", err)
		}
		return nil, apperror.NewStorage("failed to update code", err)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, claims *tokens.Claims, id string) error {
	code, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !access.CanAccess(claims, code.OwnerID, access.Delete) {
		return apperror.NewForbidden("Forbidden", nil)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperror.NewNotFound("code not found", err)
		}
		return apperror.NewStorage("failed to delete code", err)
	}
	return nil
}

// DeleteByOwner removes all codes owned by a user; used by the users
// service when a user is deleted.
func (s *Service) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	return s.repo.DeleteByOwner(ctx, ownerID)
}

func (s *Service) load(ctx context.Context, id string) (*Code, error) {
	code, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperror.NewNotFound("code not found", err)
		}
		return nil, apperror.NewStorage("failed to load code", err)
	}
	return code, nil
}
