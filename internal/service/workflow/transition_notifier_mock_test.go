package workflow

import (
	"context"
	"sync"

	"github.com/heartmarshall/storyflow-backend/internal/domain"
)

var _ transitionNotifier = &transitionNotifierMock{}

type transitionNotifierMock struct {
	OnTransitionFunc func(ctx context.Context, evt domain.TransitionEvent) error

	calls struct {
		OnTransition []struct {
			Ctx context.Context
			Evt domain.TransitionEvent
		}
	}
	lockOnTransition sync.RWMutex
}

func (mock *transitionNotifierMock) OnTransition(ctx context.Context, evt domain.TransitionEvent) error {
	if mock.OnTransitionFunc == nil {
		panic("transitionNotifierMock.OnTransitionFunc: method is nil but transitionNotifier.OnTransition was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Evt domain.TransitionEvent
	}{Ctx: ctx, Evt: evt}
	mock.lockOnTransition.Lock()
	mock.calls.OnTransition = append(mock.calls.OnTransition, callInfo)
	mock.lockOnTransition.Unlock()
	return mock.OnTransitionFunc(ctx, evt)
}

func (mock *transitionNotifierMock) OnTransitionCalls() []struct {
	Ctx context.Context
	Evt domain.TransitionEvent
} {
	mock.lockOnTransition.RLock()
	calls := mock.calls.OnTransition
	mock.lockOnTransition.RUnlock()
	return calls
}
