package achievement

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/storyflow-backend/internal/domain"
)

var _ statsRepo = &statsRepoMock{}

type statsRepoMock struct {
	MarkProcessedFunc    func(ctx context.Context, evt domain.Event, at time.Time) (bool, error)
	IncrementCounterFunc func(ctx context.Context, userID uuid.UUID, counter domain.StatCounter, delta int, at time.Time) (int, error)
	GetStatsFunc         func(ctx context.Context, userID uuid.UUID) (map[domain.StatCounter]int, error)
	AwardFunc            func(ctx context.Context, userID uuid.UUID, achievementID string, at time.Time) (bool, error)
	ListAwardsFunc       func(ctx context.Context, userID uuid.UUID) ([]domain.UserAchievement, error)

	calls struct {
		MarkProcessed []struct {
			Ctx context.Context
			Evt domain.Event
			At  time.Time
		}
		IncrementCounter []struct {
			Ctx     context.Context
			UserID  uuid.UUID
			Counter domain.StatCounter
			Delta   int
			At      time.Time
		}
		GetStats []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		Award []struct {
			Ctx           context.Context
			UserID        uuid.UUID
			AchievementID string
			At            time.Time
		}
		ListAwards []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
	}
	lockMarkProcessed    sync.RWMutex
	lockIncrementCounter sync.RWMutex
	lockGetStats         sync.RWMutex
	lockAward            sync.RWMutex
	lockListAwards       sync.RWMutex
}

func (mock *statsRepoMock) MarkProcessed(ctx context.Context, evt domain.Event, at time.Time) (bool, error) {
	if mock.MarkProcessedFunc == nil {
		panic("statsRepoMock.MarkProcessedFunc: method is nil but statsRepo.MarkProcessed was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Evt domain.Event
		At  time.Time
	}{Ctx: ctx, Evt: evt, At: at}
	mock.lockMarkProcessed.Lock()
	mock.calls.MarkProcessed = append(mock.calls.MarkProcessed, callInfo)
	mock.lockMarkProcessed.Unlock()
	return mock.MarkProcessedFunc(ctx, evt, at)
}

func (mock *statsRepoMock) MarkProcessedCalls() []struct {
	Ctx context.Context
	Evt domain.Event
	At  time.Time
} {
	mock.lockMarkProcessed.RLock()
	calls := mock.calls.MarkProcessed
	mock.lockMarkProcessed.RUnlock()
	return calls
}

func (mock *statsRepoMock) IncrementCounter(ctx context.Context, userID uuid.UUID, counter domain.StatCounter, delta int, at time.Time) (int, error) {
	if mock.IncrementCounterFunc == nil {
		panic("statsRepoMock.IncrementCounterFunc: method is nil but statsRepo.IncrementCounter was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		UserID  uuid.UUID
		Counter domain.StatCounter
		Delta   int
		At      time.Time
	}{Ctx: ctx, UserID: userID, Counter: counter, Delta: delta, At: at}
	mock.lockIncrementCounter.Lock()
	mock.calls.IncrementCounter = append(mock.calls.IncrementCounter, callInfo)
	mock.lockIncrementCounter.Unlock()
	return mock.IncrementCounterFunc(ctx, userID, counter, delta, at)
}

func (mock *statsRepoMock) IncrementCounterCalls() []struct {
	Ctx     context.Context
	UserID  uuid.UUID
	Counter domain.StatCounter
	Delta   int
	At      time.Time
} {
	mock.lockIncrementCounter.RLock()
	calls := mock.calls.IncrementCounter
	mock.lockIncrementCounter.RUnlock()
	return calls
}

func (mock *statsRepoMock) GetStats(ctx context.Context, userID uuid.UUID) (map[domain.StatCounter]int, error) {
	if mock.GetStatsFunc == nil {
		panic("statsRepoMock.GetStatsFunc: method is nil but statsRepo.GetStats was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockGetStats.Lock()
	mock.calls.GetStats = append(mock.calls.GetStats, callInfo)
	mock.lockGetStats.Unlock()
	return mock.GetStatsFunc(ctx, userID)
}

func (mock *statsRepoMock) GetStatsCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockGetStats.RLock()
	calls := mock.calls.GetStats
	mock.lockGetStats.RUnlock()
	return calls
}

func (mock *statsRepoMock) Award(ctx context.Context, userID uuid.UUID, achievementID string, at time.Time) (bool, error) {
	if mock.AwardFunc == nil {
		panic("statsRepoMock.AwardFunc: method is nil but statsRepo.Award was just called")
	}
	callInfo := struct {
		Ctx           context.Context
		UserID        uuid.UUID
		AchievementID string
		At            time.Time
	}{Ctx: ctx, UserID: userID, AchievementID: achievementID, At: at}
	mock.lockAward.Lock()
	mock.calls.Award = append(mock.calls.Award, callInfo)
	mock.lockAward.Unlock()
	return mock.AwardFunc(ctx, userID, achievementID, at)
}

func (mock *statsRepoMock) AwardCalls() []struct {
	Ctx           context.Context
	UserID        uuid.UUID
	AchievementID string
	At            time.Time
} {
	mock.lockAward.RLock()
	calls := mock.calls.Award
	mock.lockAward.RUnlock()
	return calls
}

func (mock *statsRepoMock) ListAwards(ctx context.Context, userID uuid.UUID) ([]domain.UserAchievement, error) {
	if mock.ListAwardsFunc == nil {
		panic("statsRepoMock.ListAwardsFunc: method is nil but statsRepo.ListAwards was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockListAwards.Lock()
	mock.calls.ListAwards = append(mock.calls.ListAwards, callInfo)
	mock.lockListAwards.Unlock()
	return mock.ListAwardsFunc(ctx, userID)
}

func (mock *statsRepoMock) ListAwardsCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockListAwards.RLock()
	calls := mock.calls.ListAwards
	mock.lockListAwards.RUnlock()
	return calls
}
