package users

import (
	"context"
	"errors"
	"strings"

	"github.com/codebin/codebin/internal/apperror"
	"github.com/codebin/codebin/internal/models"
	"github.com/codebin/codebin/pkg/logger"
)

// CodeDeleter removes all codes owned by a user. Satisfied by the codes
// service; kept as a local interface so this package does not import it.
type CodeDeleter interface {
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
}

// Service encapsulates user-related business logic. All failures it returns
// are apperror values ready for the error pipeline.
type Service struct {
	repo  Repository
	codes CodeDeleter // optional; enables cascading delete
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// SetCodeDeleter enables cascading deletion of a user's codes. Called once
// during wiring; not safe to call after the server starts serving.
func (s *Service) SetCodeDeleter(d CodeDeleter) { s.codes = d }

// Create validates required fields, persists the user and returns the
// stored record with its generated identifier.
func (s *Service) Create(ctx context.Context, u *models.User) (*models.User, error) {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Email == "" {
		return nil, apperror.NewValidation("email is required", nil)
	}
	if strings.TrimSpace(u.Name) == "" {
		return nil, apperror.NewValidation("name is required", nil)
	}
	if u.Role == "" {
		u.Role = models.RoleUser
	}

	created, err := s.repo.Insert(ctx, u)
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, apperror.NewConflict("email already exists", err)
		}
		return nil, apperror.NewStorage("failed to create user", err)
	}
	return created, nil
}

func (s *Service) List(ctx context.Context) ([]*models.User, error) {
	out, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperror.NewStorage("failed to list users", err)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperror.NewNotFound("user not found", err)
		}
		return nil, apperror.NewStorage("failed to load user", err)
	}
	return u, nil
}

// Update applies a partial patch; only fields present in the patch change.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (*models.User, error) {
	u, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, apperror.NewNotFound("user not found", err)
		case errors.Is(err, ErrDuplicateEmail):
			return nil, apperror.NewConflict("email already exists", err)
		default:
			return nil, apperror.NewStorage("failed to update user", err)
		}
	}
	return u, nil
}

// Delete removes the user and, when a code deleter is wired, that user's
// codes as well so no orphaned documents remain.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperror.NewNotFound("user not found", err)
		}
		return apperror.NewStorage("failed to delete user", err)
	}
	if s.codes != nil {
		n, err := s.codes.DeleteByOwner(ctx, id)
		if err != nil {
			// the user is gone; log the stranded codes rather than failing the request
			logger.Errorf("cascade delete for user %s failed: %v", id, err)
		} else if n > 0 {
			logger.Infof("cascade deleted %d codes for user %s", n, id)
		}
	}
	return nil
}
