package achievement

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/storyflow-backend/internal/domain"
)

var _ notifier = &notifierMock{}

type notifierMock struct {
	NotifyFunc func(ctx context.Context, recipients []uuid.UUID, typ domain.NotificationType, title string, message string, data domain.Payload) error

	calls struct {
		Notify []struct {
			Ctx        context.Context
			Recipients []uuid.UUID
			Typ        domain.NotificationType
			Title      string
			Message    string
			Data       domain.Payload
		}
	}
	lockNotify sync.RWMutex
}

func (mock *notifierMock) Notify(ctx context.Context, recipients []uuid.UUID, typ domain.NotificationType, title string, message string, data domain.Payload) error {
	if mock.NotifyFunc == nil {
		panic("notifierMock.NotifyFunc: method is nil but notifier.Notify was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		Recipients []uuid.UUID
		Typ        domain.NotificationType
		Title      string
		Message    string
		Data       domain.Payload
	}{Ctx: ctx, Recipients: recipients, Typ: typ, Title: title, Message: message, Data: data}
	mock.lockNotify.Lock()
	mock.calls.Notify = append(mock.calls.Notify, callInfo)
	mock.lockNotify.Unlock()
	return mock.NotifyFunc(ctx, recipients, typ, title, message, data)
}

func (mock *notifierMock) NotifyCalls() []struct {
	Ctx        context.Context
	Recipients []uuid.UUID
	Typ        domain.NotificationType
	Title      string
	Message    string
	Data       domain.Payload
} {
	mock.lockNotify.RLock()
	calls := mock.calls.Notify
	mock.lockNotify.RUnlock()
	return calls
}
