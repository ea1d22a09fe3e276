package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/storyflow-backend/internal/domain"
	"github.com/heartmarshall/storyflow-backend/internal/service/submission"
)

var _ submissionService = &submissionServiceMock{}

type submissionServiceMock struct {
	CreateDraftFunc func(ctx context.Context, input submission.CreateInput) (*domain.Submission, error)
	UpdateDraftFunc func(ctx context.Context, id uuid.UUID, input submission.UpdateInput) (*domain.Submission, error)
	GetFunc         func(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
	ListQueueFunc   func(ctx context.Context, input submission.QueueInput) ([]domain.Submission, int, error)
	ListMineFunc    func(ctx context.Context, limit int, offset int) ([]domain.Submission, int, error)
	DeleteFunc      func(ctx context.Context, id uuid.UUID) error

	calls struct {
		CreateDraft []struct {
			Ctx   context.Context
			Input submission.CreateInput
		}
		UpdateDraft []struct {
			Ctx   context.Context
			ID    uuid.UUID
			Input submission.UpdateInput
		}
		Get []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		ListQueue []struct {
			Ctx   context.Context
			Input submission.QueueInput
		}
		ListMine []struct {
			Ctx    context.Context
			Limit  int
			Offset int
		}
		Delete []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockCreateDraft sync.RWMutex
	lockUpdateDraft sync.RWMutex
	lockGet         sync.RWMutex
	lockListQueue   sync.RWMutex
	lockListMine    sync.RWMutex
	lockDelete      sync.RWMutex
}

func (mock *submissionServiceMock) CreateDraft(ctx context.Context, input submission.CreateInput) (*domain.Submission, error) {
	if mock.CreateDraftFunc == nil {
		panic("submissionServiceMock.CreateDraftFunc: method is nil but submissionService.CreateDraft was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input submission.CreateInput
	}{Ctx: ctx, Input: input}
	mock.lockCreateDraft.Lock()
	mock.calls.CreateDraft = append(mock.calls.CreateDraft, callInfo)
	mock.lockCreateDraft.Unlock()
	return mock.CreateDraftFunc(ctx, input)
}

func (mock *submissionServiceMock) CreateDraftCalls() []struct {
	Ctx   context.Context
	Input submission.CreateInput
} {
	mock.lockCreateDraft.RLock()
	calls := mock.calls.CreateDraft
	mock.lockCreateDraft.RUnlock()
	return calls
}

func (mock *submissionServiceMock) UpdateDraft(ctx context.Context, id uuid.UUID, input submission.UpdateInput) (*domain.Submission, error) {
	if mock.UpdateDraftFunc == nil {
		panic("submissionServiceMock.UpdateDraftFunc: method is nil but submissionService.UpdateDraft was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		ID    uuid.UUID
		Input submission.UpdateInput
	}{Ctx: ctx, ID: id, Input: input}
	mock.lockUpdateDraft.Lock()
	mock.calls.UpdateDraft = append(mock.calls.UpdateDraft, callInfo)
	mock.lockUpdateDraft.Unlock()
	return mock.UpdateDraftFunc(ctx, id, input)
}

func (mock *submissionServiceMock) UpdateDraftCalls() []struct {
	Ctx   context.Context
	ID    uuid.UUID
	Input submission.UpdateInput
} {
	mock.lockUpdateDraft.RLock()
	calls := mock.calls.UpdateDraft
	mock.lockUpdateDraft.RUnlock()
	return calls
}

func (mock *submissionServiceMock) Get(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	if mock.GetFunc == nil {
		panic("submissionServiceMock.GetFunc: method is nil but submissionService.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, id)
}

func (mock *submissionServiceMock) GetCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *submissionServiceMock) ListQueue(ctx context.Context, input submission.QueueInput) ([]domain.Submission, int, error) {
	if mock.ListQueueFunc == nil {
		panic("submissionServiceMock.ListQueueFunc: method is nil but submissionService.ListQueue was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input submission.QueueInput
	}{Ctx: ctx, Input: input}
	mock.lockListQueue.Lock()
	mock.calls.ListQueue = append(mock.calls.ListQueue, callInfo)
	mock.lockListQueue.Unlock()
	return mock.ListQueueFunc(ctx, input)
}

func (mock *submissionServiceMock) ListQueueCalls() []struct {
	Ctx   context.Context
	Input submission.QueueInput
} {
	mock.lockListQueue.RLock()
	calls := mock.calls.ListQueue
	mock.lockListQueue.RUnlock()
	return calls
}

func (mock *submissionServiceMock) ListMine(ctx context.Context, limit int, offset int) ([]domain.Submission, int, error) {
	if mock.ListMineFunc == nil {
		panic("submissionServiceMock.ListMineFunc: method is nil but submissionService.ListMine was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Limit  int
		Offset int
	}{Ctx: ctx, Limit: limit, Offset: offset}
	mock.lockListMine.Lock()
	mock.calls.ListMine = append(mock.calls.ListMine, callInfo)
	mock.lockListMine.Unlock()
	return mock.ListMineFunc(ctx, limit, offset)
}

func (mock *submissionServiceMock) ListMineCalls() []struct {
	Ctx    context.Context
	Limit  int
	Offset int
} {
	mock.lockListMine.RLock()
	calls := mock.calls.ListMine
	mock.lockListMine.RUnlock()
	return calls
}

func (mock *submissionServiceMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("submissionServiceMock.DeleteFunc: method is nil but submissionService.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *submissionServiceMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}
