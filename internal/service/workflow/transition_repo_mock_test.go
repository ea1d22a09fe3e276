package workflow

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/storyflow-backend/internal/domain"
)

var _ transitionRepo = &transitionRepoMock{}

type transitionRepoMock struct {
	CreateFunc           func(ctx context.Context, t domain.Transition) (domain.Transition, error)
	ListBySubmissionFunc func(ctx context.Context, submissionID uuid.UUID) ([]domain.Transition, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			T   domain.Transition
		}
		ListBySubmission []struct {
			Ctx          context.Context
			SubmissionID uuid.UUID
		}
	}
	lockCreate           sync.RWMutex
	lockListBySubmission sync.RWMutex
}

func (mock *transitionRepoMock) Create(ctx context.Context, t domain.Transition) (domain.Transition, error) {
	if mock.CreateFunc == nil {
		panic("transitionRepoMock.CreateFunc: method is nil but transitionRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		T   domain.Transition
	}{Ctx: ctx, T: t}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, t)
}

func (mock *transitionRepoMock) CreateCalls() []struct {
	Ctx context.Context
	T   domain.Transition
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *transitionRepoMock) ListBySubmission(ctx context.Context, submissionID uuid.UUID) ([]domain.Transition, error) {
	if mock.ListBySubmissionFunc == nil {
		panic("transitionRepoMock.ListBySubmissionFunc: method is nil but transitionRepo.ListBySubmission was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		SubmissionID uuid.UUID
	}{Ctx: ctx, SubmissionID: submissionID}
	mock.lockListBySubmission.Lock()
	mock.calls.ListBySubmission = append(mock.calls.ListBySubmission, callInfo)
	mock.lockListBySubmission.Unlock()
	return mock.ListBySubmissionFunc(ctx, submissionID)
}

func (mock *transitionRepoMock) ListBySubmissionCalls() []struct {
	Ctx          context.Context
	SubmissionID uuid.UUID
} {
	mock.lockListBySubmission.RLock()
	calls := mock.calls.ListBySubmission
	mock.lockListBySubmission.RUnlock()
	return calls
}
