package mocks

import (
	"context"
	"time"

	"ninedelivery/stats-svc/internal/domain"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// PopularityRecorder is a mock type for service.PopularityRecorder.
type PopularityRecorder struct {
	mock.Mock
}

func (_m *PopularityRecorder) RecordCheckout(ctx context.Context, event domain.CheckoutEvent) error {
	return _m.Called(ctx, event).Error(0)
}

func NewPopularityRecorder(t testingT) *PopularityRecorder {
	m := &PopularityRecorder{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// PopularityReader is a mock type for service.PopularityReader.
type PopularityReader struct {
	mock.Mock
}

func (_m *PopularityReader) Top(ctx context.Context, restaurantID, period string, now time.Time, limit int) ([]domain.ItemPopularity, error) {
	ret := _m.Called(ctx, restaurantID, period, now, limit)
	var r0 []domain.ItemPopularity
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.ItemPopularity)
	}
	return r0, ret.Error(1)
}

func NewPopularityReader(t testingT) *PopularityReader {
	m := &PopularityReader{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// MessageReader is a mock type for service.MessageReader.
type MessageReader struct {
	mock.Mock
}

func (_m *MessageReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(kafka.Message), ret.Error(1)
}

func NewMessageReader(t testingT) *MessageReader {
	m := &MessageReader{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// StatsServiceInterface is a mock type for service.StatsServiceInterface.
type StatsServiceInterface struct {
	mock.Mock
}

func (_m *StatsServiceInterface) Popular(ctx context.Context, restaurantID, period string, limit int) (domain.PopularityResponse, error) {
	ret := _m.Called(ctx, restaurantID, period, limit)
	return ret.Get(0).(domain.PopularityResponse), ret.Error(1)
}

func NewStatsServiceInterface(t testingT) *StatsServiceInterface {
	m := &StatsServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
