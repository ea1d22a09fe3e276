package notification

import (
	"context"
	"sync"

	"github.com/heartmarshall/storyflow-backend/internal/realtime"
)

var _ livePublisher = &livePublisherMock{}

type livePublisherMock struct {
	PublishFunc func(ctx context.Context, msg realtime.Message) error

	calls struct {
		Publish []struct {
			Ctx context.Context
			Msg realtime.Message
		}
	}
	lockPublish sync.RWMutex
}

func (mock *livePublisherMock) Publish(ctx context.Context, msg realtime.Message) error {
	if mock.PublishFunc == nil {
		panic("livePublisherMock.PublishFunc: method is nil but livePublisher.Publish was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Msg realtime.Message
	}{Ctx: ctx, Msg: msg}
	mock.lockPublish.Lock()
	mock.calls.Publish = append(mock.calls.Publish, callInfo)
	mock.lockPublish.Unlock()
	return mock.PublishFunc(ctx, msg)
}

func (mock *livePublisherMock) PublishCalls() []struct {
	Ctx context.Context
	Msg realtime.Message
} {
	mock.lockPublish.RLock()
	calls := mock.calls.Publish
	mock.lockPublish.RUnlock()
	return calls
}
