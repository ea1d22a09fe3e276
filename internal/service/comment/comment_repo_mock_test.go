package comment

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/storyflow-backend/internal/domain"
)

var _ commentRepo = &commentRepoMock{}

type commentRepoMock struct {
	GetByIDFunc          func(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	ListBySubmissionFunc func(ctx context.Context, submissionID uuid.UUID) ([]domain.Comment, error)
	CreateFunc           func(ctx context.Context, c domain.Comment) (*domain.Comment, error)
	UpdateContentFunc    func(ctx context.Context, id uuid.UUID, content string, updatedAt time.Time) (*domain.Comment, error)
	SetResolvedFunc      func(ctx context.Context, id uuid.UUID, resolved bool, by uuid.UUID, at time.Time) (*domain.Comment, error)
	ResolveRepliesFunc   func(ctx context.Context, parentID uuid.UUID, by uuid.UUID, at time.Time) (int, error)
	DeleteFunc           func(ctx context.Context, id uuid.UUID) error

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		ListBySubmission []struct {
			Ctx          context.Context
			SubmissionID uuid.UUID
		}
		Create []struct {
			Ctx context.Context
			C   domain.Comment
		}
		UpdateContent []struct {
			Ctx       context.Context
			ID        uuid.UUID
			Content   string
			UpdatedAt time.Time
		}
		SetResolved []struct {
			Ctx      context.Context
			ID       uuid.UUID
			Resolved bool
			By       uuid.UUID
			At       time.Time
		}
		ResolveReplies []struct {
			Ctx      context.Context
			ParentID uuid.UUID
			By       uuid.UUID
			At       time.Time
		}
		Delete []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockGetByID          sync.RWMutex
	lockListBySubmission sync.RWMutex
	lockCreate           sync.RWMutex
	lockUpdateContent    sync.RWMutex
	lockSetResolved      sync.RWMutex
	lockResolveReplies   sync.RWMutex
	lockDelete           sync.RWMutex
}

func (mock *commentRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	if mock.GetByIDFunc == nil {
		panic("commentRepoMock.GetByIDFunc: method is nil but commentRepo.GetByID was just called")
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

func (mock *commentRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *commentRepoMock) ListBySubmission(ctx context.Context, submissionID uuid.UUID) ([]domain.Comment, error) {
	if mock.ListBySubmissionFunc == nil {
		panic("commentRepoMock.ListBySubmissionFunc: method is nil but commentRepo.ListBySubmission was just called")
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

func (mock *commentRepoMock) ListBySubmissionCalls() []struct {
	Ctx          context.Context
	SubmissionID uuid.UUID
} {
	mock.lockListBySubmission.RLock()
	calls := mock.calls.ListBySubmission
	mock.lockListBySubmission.RUnlock()
	return calls
}

func (mock *commentRepoMock) Create(ctx context.Context, c domain.Comment) (*domain.Comment, error) {
	if mock.CreateFunc == nil {
		panic("commentRepoMock.CreateFunc: method is nil but commentRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		C   domain.Comment
	}{Ctx: ctx, C: c}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, c)
}

func (mock *commentRepoMock) CreateCalls() []struct {
	Ctx context.Context
	C   domain.Comment
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *commentRepoMock) UpdateContent(ctx context.Context, id uuid.UUID, content string, updatedAt time.Time) (*domain.Comment, error) {
	if mock.UpdateContentFunc == nil {
		panic("commentRepoMock.UpdateContentFunc: method is nil but commentRepo.UpdateContent was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		ID        uuid.UUID
		Content   string
		UpdatedAt time.Time
	}{Ctx: ctx, ID: id, Content: content, UpdatedAt: updatedAt}
	mock.lockUpdateContent.Lock()
	mock.calls.UpdateContent = append(mock.calls.UpdateContent, callInfo)
	mock.lockUpdateContent.Unlock()
	return mock.UpdateContentFunc(ctx, id, content, updatedAt)
}

func (mock *commentRepoMock) UpdateContentCalls() []struct {
	Ctx       context.Context
	ID        uuid.UUID
	Content   string
	UpdatedAt time.Time
} {
	mock.lockUpdateContent.RLock()
	calls := mock.calls.UpdateContent
	mock.lockUpdateContent.RUnlock()
	return calls
}

func (mock *commentRepoMock) SetResolved(ctx context.Context, id uuid.UUID, resolved bool, by uuid.UUID, at time.Time) (*domain.Comment, error) {
	if mock.SetResolvedFunc == nil {
		panic("commentRepoMock.SetResolvedFunc: method is nil but commentRepo.SetResolved was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		ID       uuid.UUID
		Resolved bool
		By       uuid.UUID
		At       time.Time
	}{Ctx: ctx, ID: id, Resolved: resolved, By: by, At: at}
	mock.lockSetResolved.Lock()
	mock.calls.SetResolved = append(mock.calls.SetResolved, callInfo)
	mock.lockSetResolved.Unlock()
	return mock.SetResolvedFunc(ctx, id, resolved, by, at)
}

func (mock *commentRepoMock) SetResolvedCalls() []struct {
	Ctx      context.Context
	ID       uuid.UUID
	Resolved bool
	By       uuid.UUID
	At       time.Time
} {
	mock.lockSetResolved.RLock()
	calls := mock.calls.SetResolved
	mock.lockSetResolved.RUnlock()
	return calls
}

func (mock *commentRepoMock) ResolveReplies(ctx context.Context, parentID uuid.UUID, by uuid.UUID, at time.Time) (int, error) {
	if mock.ResolveRepliesFunc == nil {
		panic("commentRepoMock.ResolveRepliesFunc: method is nil but commentRepo.ResolveReplies was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		ParentID uuid.UUID
		By       uuid.UUID
		At       time.Time
	}{Ctx: ctx, ParentID: parentID, By: by, At: at}
	mock.lockResolveReplies.Lock()
	mock.calls.ResolveReplies = append(mock.calls.ResolveReplies, callInfo)
	mock.lockResolveReplies.Unlock()
	return mock.ResolveRepliesFunc(ctx, parentID, by, at)
}

func (mock *commentRepoMock) ResolveRepliesCalls() []struct {
	Ctx      context.Context
	ParentID uuid.UUID
	By       uuid.UUID
	At       time.Time
} {
	mock.lockResolveReplies.RLock()
	calls := mock.calls.ResolveReplies
	mock.lockResolveReplies.RUnlock()
	return calls
}

func (mock *commentRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("commentRepoMock.DeleteFunc: method is nil but commentRepo.Delete was just called")
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

func (mock *commentRepoMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}
