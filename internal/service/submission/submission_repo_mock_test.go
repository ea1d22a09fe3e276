package submission

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/storyflow-backend/internal/domain"
)

var _ submissionRepo = &submissionRepoMock{}

type submissionRepoMock struct {
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
	ListFunc          func(ctx context.Context, f domain.SubmissionFilter) ([]domain.Submission, int, error)
	CreateFunc        func(ctx context.Context, s domain.Submission) (*domain.Submission, error)
	UpdateContentFunc func(ctx context.Context, id uuid.UUID, title string, content string, updatedAt time.Time) (*domain.Submission, error)
	DeleteFunc        func(ctx context.Context, id uuid.UUID) error

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		List []struct {
			Ctx context.Context
			F   domain.SubmissionFilter
		}
		Create []struct {
			Ctx context.Context
			S   domain.Submission
		}
		UpdateContent []struct {
			Ctx       context.Context
			ID        uuid.UUID
			Title     string
			Content   string
			UpdatedAt time.Time
		}
		Delete []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockGetByID       sync.RWMutex
	lockList          sync.RWMutex
	lockCreate        sync.RWMutex
	lockUpdateContent sync.RWMutex
	lockDelete        sync.RWMutex
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

func (mock *submissionRepoMock) List(ctx context.Context, f domain.SubmissionFilter) ([]domain.Submission, int, error) {
	if mock.ListFunc == nil {
		panic("submissionRepoMock.ListFunc: method is nil but submissionRepo.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.SubmissionFilter
	}{Ctx: ctx, F: f}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, f)
}

func (mock *submissionRepoMock) ListCalls() []struct {
	Ctx context.Context
	F   domain.SubmissionFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *submissionRepoMock) Create(ctx context.Context, s domain.Submission) (*domain.Submission, error) {
	if mock.CreateFunc == nil {
		panic("submissionRepoMock.CreateFunc: method is nil but submissionRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		S   domain.Submission
	}{Ctx: ctx, S: s}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, s)
}

func (mock *submissionRepoMock) CreateCalls() []struct {
	Ctx context.Context
	S   domain.Submission
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *submissionRepoMock) UpdateContent(ctx context.Context, id uuid.UUID, title string, content string, updatedAt time.Time) (*domain.Submission, error) {
	if mock.UpdateContentFunc == nil {
		panic("submissionRepoMock.UpdateContentFunc: method is nil but submissionRepo.UpdateContent was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		ID        uuid.UUID
		Title     string
		Content   string
		UpdatedAt time.Time
	}{Ctx: ctx, ID: id, Title: title, Content: content, UpdatedAt: updatedAt}
	mock.lockUpdateContent.Lock()
	mock.calls.UpdateContent = append(mock.calls.UpdateContent, callInfo)
	mock.lockUpdateContent.Unlock()
	return mock.UpdateContentFunc(ctx, id, title, content, updatedAt)
}

func (mock *submissionRepoMock) UpdateContentCalls() []struct {
	Ctx       context.Context
	ID        uuid.UUID
	Title     string
	Content   string
	UpdatedAt time.Time
} {
	mock.lockUpdateContent.RLock()
	calls := mock.calls.UpdateContent
	mock.lockUpdateContent.RUnlock()
	return calls
}

func (mock *submissionRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("submissionRepoMock.DeleteFunc: method is nil but submissionRepo.Delete was just called")
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

func (mock *submissionRepoMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}
