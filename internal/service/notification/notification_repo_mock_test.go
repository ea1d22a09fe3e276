package notification

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/storyflow-backend/internal/domain"
)

var _ notificationRepo = &notificationRepoMock{}

type notificationRepoMock struct {
	CreateBatchFunc      func(ctx context.Context, ns []domain.Notification) error
	ListFunc             func(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int, offset int) ([]domain.Notification, int, error)
	UnreadCountFunc      func(ctx context.Context, userID uuid.UUID) (int, error)
	SetReadFunc          func(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, read bool, at time.Time) (int, error)
	MarkAllReadFunc      func(ctx context.Context, userID uuid.UUID, at time.Time) (int, error)
	DeleteFunc           func(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
	DeleteReadBeforeFunc func(ctx context.Context, cutoff time.Time) (int, error)

	calls struct {
		CreateBatch []struct {
			Ctx context.Context
			Ns  []domain.Notification
		}
		List []struct {
			Ctx        context.Context
			UserID     uuid.UUID
			UnreadOnly bool
			Limit      int
			Offset     int
		}
		UnreadCount []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		SetRead []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Ids    []uuid.UUID
			Read   bool
			At     time.Time
		}
		MarkAllRead []struct {
			Ctx    context.Context
			UserID uuid.UUID
			At     time.Time
		}
		Delete []struct {
			Ctx    context.Context
			UserID uuid.UUID
			ID     uuid.UUID
		}
		DeleteReadBefore []struct {
			Ctx    context.Context
			Cutoff time.Time
		}
	}
	lockCreateBatch      sync.RWMutex
	lockList             sync.RWMutex
	lockUnreadCount      sync.RWMutex
	lockSetRead          sync.RWMutex
	lockMarkAllRead      sync.RWMutex
	lockDelete           sync.RWMutex
	lockDeleteReadBefore sync.RWMutex
}

func (mock *notificationRepoMock) CreateBatch(ctx context.Context, ns []domain.Notification) error {
	if mock.CreateBatchFunc == nil {
		panic("notificationRepoMock.CreateBatchFunc: method is nil but notificationRepo.CreateBatch was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Ns  []domain.Notification
	}{Ctx: ctx, Ns: ns}
	mock.lockCreateBatch.Lock()
	mock.calls.CreateBatch = append(mock.calls.CreateBatch, callInfo)
	mock.lockCreateBatch.Unlock()
	return mock.CreateBatchFunc(ctx, ns)
}

func (mock *notificationRepoMock) CreateBatchCalls() []struct {
	Ctx context.Context
	Ns  []domain.Notification
} {
	mock.lockCreateBatch.RLock()
	calls := mock.calls.CreateBatch
	mock.lockCreateBatch.RUnlock()
	return calls
}

func (mock *notificationRepoMock) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int, offset int) ([]domain.Notification, int, error) {
	if mock.ListFunc == nil {
		panic("notificationRepoMock.ListFunc: method is nil but notificationRepo.List was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		UserID     uuid.UUID
		UnreadOnly bool
		Limit      int
		Offset     int
	}{Ctx: ctx, UserID: userID, UnreadOnly: unreadOnly, Limit: limit, Offset: offset}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, userID, unreadOnly, limit, offset)
}

func (mock *notificationRepoMock) ListCalls() []struct {
	Ctx        context.Context
	UserID     uuid.UUID
	UnreadOnly bool
	Limit      int
	Offset     int
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *notificationRepoMock) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	if mock.UnreadCountFunc == nil {
		panic("notificationRepoMock.UnreadCountFunc: method is nil but notificationRepo.UnreadCount was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockUnreadCount.Lock()
	mock.calls.UnreadCount = append(mock.calls.UnreadCount, callInfo)
	mock.lockUnreadCount.Unlock()
	return mock.UnreadCountFunc(ctx, userID)
}

func (mock *notificationRepoMock) UnreadCountCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockUnreadCount.RLock()
	calls := mock.calls.UnreadCount
	mock.lockUnreadCount.RUnlock()
	return calls
}

func (mock *notificationRepoMock) SetRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, read bool, at time.Time) (int, error) {
	if mock.SetReadFunc == nil {
		panic("notificationRepoMock.SetReadFunc: method is nil but notificationRepo.SetRead was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Ids    []uuid.UUID
		Read   bool
		At     time.Time
	}{Ctx: ctx, UserID: userID, Ids: ids, Read: read, At: at}
	mock.lockSetRead.Lock()
	mock.calls.SetRead = append(mock.calls.SetRead, callInfo)
	mock.lockSetRead.Unlock()
	return mock.SetReadFunc(ctx, userID, ids, read, at)
}

func (mock *notificationRepoMock) SetReadCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Ids    []uuid.UUID
	Read   bool
	At     time.Time
} {
	mock.lockSetRead.RLock()
	calls := mock.calls.SetRead
	mock.lockSetRead.RUnlock()
	return calls
}

func (mock *notificationRepoMock) MarkAllRead(ctx context.Context, userID uuid.UUID, at time.Time) (int, error) {
	if mock.MarkAllReadFunc == nil {
		panic("notificationRepoMock.MarkAllReadFunc: method is nil but notificationRepo.MarkAllRead was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		At     time.Time
	}{Ctx: ctx, UserID: userID, At: at}
	mock.lockMarkAllRead.Lock()
	mock.calls.MarkAllRead = append(mock.calls.MarkAllRead, callInfo)
	mock.lockMarkAllRead.Unlock()
	return mock.MarkAllReadFunc(ctx, userID, at)
}

func (mock *notificationRepoMock) MarkAllReadCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	At     time.Time
} {
	mock.lockMarkAllRead.RLock()
	calls := mock.calls.MarkAllRead
	mock.lockMarkAllRead.RUnlock()
	return calls
}

func (mock *notificationRepoMock) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("notificationRepoMock.DeleteFunc: method is nil but notificationRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		ID     uuid.UUID
	}{Ctx: ctx, UserID: userID, ID: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, userID, id)
}

func (mock *notificationRepoMock) DeleteCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	ID     uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *notificationRepoMock) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int, error) {
	if mock.DeleteReadBeforeFunc == nil {
		panic("notificationRepoMock.DeleteReadBeforeFunc: method is nil but notificationRepo.DeleteReadBefore was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Cutoff time.Time
	}{Ctx: ctx, Cutoff: cutoff}
	mock.lockDeleteReadBefore.Lock()
	mock.calls.DeleteReadBefore = append(mock.calls.DeleteReadBefore, callInfo)
	mock.lockDeleteReadBefore.Unlock()
	return mock.DeleteReadBeforeFunc(ctx, cutoff)
}

func (mock *notificationRepoMock) DeleteReadBeforeCalls() []struct {
	Ctx    context.Context
	Cutoff time.Time
} {
	mock.lockDeleteReadBefore.RLock()
	calls := mock.calls.DeleteReadBefore
	mock.lockDeleteReadBefore.RUnlock()
	return calls
}
