package user

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/storyflow-backend/internal/domain"
)

// userRepo defines the user repository interface needed by user service.
type userRepo interface {
	Upsert(ctx context.Context, u domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role domain.UserRole, updatedAt time.Time) (*domain.User, error)
	List(ctx context.Context, role *domain.UserRole, limit, offset int) ([]domain.User, error)
	Count(ctx context.Context, role *domain.UserRole) (int, error)
}

// Service keeps the local user directory in sync with verified identities.
type Service struct {
	log   *slog.Logger
	users userRepo
	now   func() time.Time
}

// NewService creates a new user service instance.
func NewService(logger *slog.Logger, users userRepo) *Service {
	return &Service{
		log:   logger.With("service", "user"),
		users: users,
		now:   func() time.Time { return time.Now().UTC() },
	}
}
