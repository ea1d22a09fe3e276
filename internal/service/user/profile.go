package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/storyflow-backend/internal/auth"
	"github.com/heartmarshall/storyflow-backend/internal/domain"
)

// Register records the authenticated identity in the local directory.
// The stored role always follows the verified token claim.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	actor, err := auth.ActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if !actor.Role.IsValid() {
		return nil, domain.ErrForbidden
	}

	user, err := s.users.Upsert(ctx, domain.User{
		ID:        actor.ID,
		Email:     input.Email,
		Name:      input.Name,
		Role:      actor.Role,
		UpdatedAt: s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("user.Register: %w", err)
	}

	s.log.InfoContext(ctx, "user registered",
		slog.String("user_id", actor.ID.String()),
		slog.String("role", actor.Role.String()),
	)

	return user, nil
}

// GetMe returns the authenticated user's directory entry.
// Returns ErrUnauthorized if no identity is found in context.
func (s *Service) GetMe(ctx context.Context) (*domain.User, error) {
	actor, err := auth.ActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("user.GetMe: %w", err)
	}

	return user, nil
}
