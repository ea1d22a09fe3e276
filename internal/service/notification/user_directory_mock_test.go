package notification

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/storyflow-backend/internal/domain"
)

var _ userDirectory = &userDirectoryMock{}

type userDirectoryMock struct {
	ListIDsByRoleFunc func(ctx context.Context, roles ...domain.UserRole) ([]uuid.UUID, error)

	calls struct {
		ListIDsByRole []struct {
			Ctx   context.Context
			Roles []domain.UserRole
		}
	}
	lockListIDsByRole sync.RWMutex
}

func (mock *userDirectoryMock) ListIDsByRole(ctx context.Context, roles ...domain.UserRole) ([]uuid.UUID, error) {
	if mock.ListIDsByRoleFunc == nil {
		panic("userDirectoryMock.ListIDsByRoleFunc: method is nil but userDirectory.ListIDsByRole was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Roles []domain.UserRole
	}{Ctx: ctx, Roles: roles}
	mock.lockListIDsByRole.Lock()
	mock.calls.ListIDsByRole = append(mock.calls.ListIDsByRole, callInfo)
	mock.lockListIDsByRole.Unlock()
	return mock.ListIDsByRoleFunc(ctx, roles...)
}

func (mock *userDirectoryMock) ListIDsByRoleCalls() []struct {
	Ctx   context.Context
	Roles []domain.UserRole
} {
	mock.lockListIDsByRole.RLock()
	calls := mock.calls.ListIDsByRole
	mock.lockListIDsByRole.RUnlock()
	return calls
}
