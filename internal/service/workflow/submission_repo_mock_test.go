package workflow

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/storyflow-backend/internal/domain"
)

var _ submissionRepo = &submissionRepoMock{}

type submissionRepoMock struct {
	GetByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
	UpdateStatusFunc func(ctx context.Context, id uuid.UUID, upd domain.StatusUpdate) (*domain.Submission, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		UpdateStatus []struct {
			Ctx context.Context
			ID  uuid.UUID
			Upd domain.StatusUpdate
		}
	}
	lockGetByID      sync.RWMutex
	lockUpdateStatus sync.RWMutex
}

func (mock *submissionRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	if mock.GetByIDFunc == nil {
		panic("submissionRepoMock.GetByIDFunc: method is nil but submissionRepo.GetByID was just called")
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

func (mock *submissionRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *submissionRepoMock) UpdateStatus(ctx context.Context, id uuid.UUID, upd domain.StatusUpdate) (*domain.Submission, error) {
	if mock.UpdateStatusFunc == nil {
		panic("submissionRepoMock.UpdateStatusFunc: method is nil but submissionRepo.UpdateStatus was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
		Upd domain.StatusUpdate
	}{Ctx: ctx, ID: id, Upd: upd}
	mock.lockUpdateStatus.Lock()
	mock.calls.UpdateStatus = append(mock.calls.UpdateStatus, callInfo)
	mock.lockUpdateStatus.Unlock()
	return mock.UpdateStatusFunc(ctx, id, upd)
}

func (mock *submissionRepoMock) UpdateStatusCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
	Upd domain.StatusUpdate
} {
	mock.lockUpdateStatus.RLock()
	calls := mock.calls.UpdateStatus
	mock.lockUpdateStatus.RUnlock()
	return calls
}
