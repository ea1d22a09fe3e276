package user

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/storyflow-backend/internal/domain"
)

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	UpsertFunc     func(ctx context.Context, u domain.User) (*domain.User, error)
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateRoleFunc func(ctx context.Context, id uuid.UUID, role domain.UserRole, updatedAt time.Time) (*domain.User, error)
	ListFunc       func(ctx context.Context, role *domain.UserRole, limit int, offset int) ([]domain.User, error)
	CountFunc      func(ctx context.Context, role *domain.UserRole) (int, error)

	calls struct {
		Upsert []struct {
			Ctx context.Context
			U   domain.User
		}
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		UpdateRole []struct {
			Ctx       context.Context
			ID        uuid.UUID
			Role      domain.UserRole
			UpdatedAt time.Time
		}
		List []struct {
			Ctx    context.Context
			Role   *domain.UserRole
			Limit  int
			Offset int
		}
		Count []struct {
			Ctx  context.Context
			Role *domain.UserRole
		}
	}
	lockUpsert     sync.RWMutex
	lockGetByID    sync.RWMutex
	lockUpdateRole sync.RWMutex
	lockList       sync.RWMutex
	lockCount      sync.RWMutex
}

func (mock *userRepoMock) Upsert(ctx context.Context, u domain.User) (*domain.User, error) {
	if mock.UpsertFunc == nil {
		panic("userRepoMock.UpsertFunc: method is nil but userRepo.Upsert was just called")
	}
	callInfo := struct {
		Ctx context.Context
		U   domain.User
	}{Ctx: ctx, U: u}
	mock.lockUpsert.Lock()
	mock.calls.Upsert = append(mock.calls.Upsert, callInfo)
	mock.lockUpsert.Unlock()
	return mock.UpsertFunc(ctx, u)
}

func (mock *userRepoMock) UpsertCalls() []struct {
	Ctx context.Context
	U   domain.User
} {
	mock.lockUpsert.RLock()
	calls := mock.calls.Upsert
	mock.lockUpsert.RUnlock()
	return calls
}

func (mock *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if mock.GetByIDFunc == nil {
		panic("userRepoMock.GetByIDFunc: method is nil but userRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *userRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *userRepoMock) UpdateRole(ctx context.Context, id uuid.UUID, role domain.UserRole, updatedAt time.Time) (*domain.User, error) {
	if mock.UpdateRoleFunc == nil {
		panic("userRepoMock.UpdateRoleFunc: method is nil but userRepo.UpdateRole was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		ID        uuid.UUID
		Role      domain.UserRole
		UpdatedAt time.Time
	}{Ctx: ctx, ID: id, Role: role, UpdatedAt: updatedAt}
	mock.lockUpdateRole.Lock()
	mock.calls.UpdateRole = append(mock.calls.UpdateRole, callInfo)
	mock.lockUpdateRole.Unlock()
	return mock.UpdateRoleFunc(ctx, id, role, updatedAt)
}

func (mock *userRepoMock) UpdateRoleCalls() []struct {
	Ctx       context.Context
	ID        uuid.UUID
	Role      domain.UserRole
	UpdatedAt time.Time
} {
	mock.lockUpdateRole.RLock()
	calls := mock.calls.UpdateRole
	mock.lockUpdateRole.RUnlock()
	return calls
}

func (mock *userRepoMock) List(ctx context.Context, role *domain.UserRole, limit int, offset int) ([]domain.User, error) {
	if mock.ListFunc == nil {
		panic("userRepoMock.ListFunc: method is nil but userRepo.List was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Role   *domain.UserRole
		Limit  int
		Offset int
	}{Ctx: ctx, Role: role, Limit: limit, Offset: offset}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, role, limit, offset)
}

func (mock *userRepoMock) ListCalls() []struct {
	Ctx    context.Context
	Role   *domain.UserRole
	Limit  int
	Offset int
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *userRepoMock) Count(ctx context.Context, role *domain.UserRole) (int, error) {
	if mock.CountFunc == nil {
		panic("userRepoMock.CountFunc: method is nil but userRepo.Count was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Role *domain.UserRole
	}{Ctx: ctx, Role: role}
	mock.lockCount.Lock()
	mock.calls.Count = append(mock.calls.Count, callInfo)
	mock.lockCount.Unlock()
	return mock.CountFunc(ctx, role)
}

func (mock *userRepoMock) CountCalls() []struct {
	Ctx  context.Context
	Role *domain.UserRole
} {
	mock.lockCount.RLock()
	calls := mock.calls.Count
	mock.lockCount.RUnlock()
	return calls
}
