package comment

import (
	"context"
	"sync"

	"github.com/heartmarshall/storyflow-backend/internal/domain"
)

var _ eventRecorder = &eventRecorderMock{}

type eventRecorderMock struct {
	OnEventFunc func(ctx context.Context, evt domain.Event) error

	calls struct {
		OnEvent []struct {
			Ctx context.Context
			Evt domain.Event
		}
	}
	lockOnEvent sync.RWMutex
}

func (mock *eventRecorderMock) OnEvent(ctx context.Context, evt domain.Event) error {
	if mock.OnEventFunc == nil {
		panic("eventRecorderMock.OnEventFunc: method is nil but eventRecorder.OnEvent was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Evt domain.Event
	}{Ctx: ctx, Evt: evt}
	mock.lockOnEvent.Lock()
	mock.calls.OnEvent = append(mock.calls.OnEvent, callInfo)
	mock.lockOnEvent.Unlock()
	return mock.OnEventFunc(ctx, evt)
}

func (mock *eventRecorderMock) OnEventCalls() []struct {
	Ctx context.Context
	Evt domain.Event
} {
	mock.lockOnEvent.RLock()
	calls := mock.calls.OnEvent
	mock.lockOnEvent.RUnlock()
	return calls
}
