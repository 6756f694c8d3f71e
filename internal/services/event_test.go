package services

import (
	"context"
	"testing"

	"ticket-marketplace/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockEventStore is a mock implementation of EventStore
type MockEventStore struct {
	mock.Mock
}

func (m *MockEventStore) GetEventByID(ctx context.Context, id string) (*models.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventStore) ListEvents(ctx context.Context, filter models.EventFilter) ([]*models.Event, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Event), args.Error(1)
}

func (m *MockEventStore) ListCities(ctx context.Context) ([]models.City, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.City), args.Error(1)
}

func (m *MockEventStore) GetSeatsByEventID(ctx context.Context, eventID string) ([]models.Seat, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Seat), args.Error(1)
}

func (m *MockEventStore) GetSeatsByIDs(ctx context.Context, eventID string, ids []string) ([]models.Seat, error) {
	args := m.Called(ctx, eventID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Seat), args.Error(1)
}

func TestEventService_SelectSeats(t *testing.T) {
	event := testEvent("e1")
	store := new(MockEventStore)
	store.On("GetEventByID", mock.Anything, "e1").Return(&event, nil)
	store.On("GetSeatsByIDs", mock.Anything, "e1", []string{"s1", "s2"}).
		Return([]models.Seat{testSeat("s1", 100), testSeat("s2", 200)}, nil)

	gotEvent, seats, err := NewEventService(store).SelectSeats(context.Background(), "e1", []string{"s1", "s2"})
	require.NoError(t, err)
	assert.Equal(t, "e1", gotEvent.ID)
	assert.Len(t, seats, 2)
}

func TestEventService_SelectSeats_Unavailable(t *testing.T) {
	event := testEvent("e1")
	taken := testSeat("s2", 200)
	taken.Status = models.SeatUnavailable

	store := new(MockEventStore)
	store.On("GetEventByID", mock.Anything, "e1").Return(&event, nil)
	store.On("GetSeatsByIDs", mock.Anything, "e1", []string{"s1", "s2"}).
		Return([]models.Seat{testSeat("s1", 100), taken}, nil)

	_, seats, err := NewEventService(store).SelectSeats(context.Background(), "e1", []string{"s1", "s2"})
	assert.ErrorIs(t, err, models.ErrSeatUnavailable)
	assert.Nil(t, seats)
}

func TestEventService_SelectSeats_EventMissing(t *testing.T) {
	store := new(MockEventStore)
	store.On("GetEventByID", mock.Anything, "nope").Return(nil, models.ErrEventNotFound)

	_, _, err := NewEventService(store).SelectSeats(context.Background(), "nope", []string{"s1"})
	assert.ErrorIs(t, err, models.ErrEventNotFound)
	store.AssertNotCalled(t, "GetSeatsByIDs", mock.Anything, mock.Anything, mock.Anything)
}

func TestEventService_SelectSeats_NoSeats(t *testing.T) {
	store := new(MockEventStore)

	_, _, err := NewEventService(store).SelectSeats(context.Background(), "e1", nil)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestEventService_ListEvents_RejectsUnknownCategory(t *testing.T) {
	store := new(MockEventStore)

	_, err := NewEventService(store).ListEvents(context.Background(), models.EventFilter{Category: "opera"})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	store.AssertNotCalled(t, "ListEvents", mock.Anything, mock.Anything)
}

func TestEventService_ListEvents_TrimsCity(t *testing.T) {
	store := new(MockEventStore)
	store.On("ListEvents", mock.Anything, models.EventFilter{City: "Denver"}).Return([]*models.Event{}, nil)

	events, err := NewEventService(store).ListEvents(context.Background(), models.EventFilter{City: "  Denver "})
	require.NoError(t, err)
	assert.Empty(t, events)
	store.AssertExpectations(t)
}

func TestEventService_GetSeats_RequiresActiveEvent(t *testing.T) {
	store := new(MockEventStore)
	store.On("GetEventByID", mock.Anything, "gone").Return(nil, models.ErrEventNotFound)

	_, err := NewEventService(store).GetSeats(context.Background(), "gone")
	assert.ErrorIs(t, err, models.ErrEventNotFound)
}
