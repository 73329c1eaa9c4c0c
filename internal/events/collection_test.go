package events

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/KirkDiggler/sideline/internal/common/apperr"
	"github.com/KirkDiggler/sideline/internal/common/clock"
	uuidMocks "github.com/KirkDiggler/sideline/internal/common/uuid/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CollectionTestSuite struct {
	suite.Suite
	mockCtrl   *gomock.Controller
	mockUUID   *uuidMocks.MockUUID
	clock      *clock.Manual
	collection *Collection
	testTime   time.Time
}

func (s *CollectionTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.clock = clock.NewManual(s.testTime)

	var err error
	s.collection, err = New(&Config{
		ID:            "game-1",
		Clock:         s.clock,
		UUIDGenerator: s.mockUUID,
	})
	s.Require().NoError(err)
}

func (s *CollectionTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCollectionTestSuite(t *testing.T) {
	suite.Run(t, new(CollectionTestSuite))
}

func (s *CollectionTestSuite) TestNewRequiresID() {
	_, err := New(&Config{})
	s.Require().Error(err)
	s.True(errors.Is(err, apperr.InvalidArgument))
	s.Equal("id must be provided", err.Error())

	_, err = New(nil)
	s.ErrorIs(err, ErrNilConfig)
}

func (s *CollectionTestSuite) TestAddEventDoesNotMutateInput() {
	s.mockUUID.EXPECT().NewUUID().Return("event-1")
	input := GameEvent{
		Type:     EventTypeClockStarted,
		PlayerID: "p1",
		Data:     map[string]any{"period": "1"},
	}
	original := input.clone()

	stored, err := s.collection.AddEvent(input)
	s.Require().NoError(err)

	s.Equal(original, input)
	expected := original
	expected.ID = "event-1"
	expected.Timestamp = s.testTime.UnixMilli()
	s.Equal(expected, stored)

	input.Data["period"] = "2"
	got, ok := s.collection.Get("event-1")
	s.True(ok)
	s.Equal("1", got.Data["period"])

	stored.Data["period"] = "3"
	got, _ = s.collection.Get("event-1")
	s.Equal("1", got.Data["period"])
}

func (s *CollectionTestSuite) TestAddEventUsesFrozenTime() {
	source := clock.NewTimeSource(s.clock)
	c, err := New(&Config{ID: "game-1", Clock: source, UUIDGenerator: s.mockUUID})
	s.Require().NoError(err)
	s.mockUUID.EXPECT().NewUUID().Return("event-1")

	s.Require().NoError(source.Freeze())
	s.clock.IncrementCurrentTime(time.Minute)
	stored, err := c.AddEvent(GameEvent{Type: EventTypeClockStopped})
	s.Require().NoError(err)
	s.Require().NoError(source.Unfreeze())

	s.Equal(s.testTime.UnixMilli(), stored.Timestamp)
	s.Equal(s.testTime, stored.Time().UTC())
}

func (s *CollectionTestSuite) TestAddEventRejectsDuplicateID() {
	s.mockUUID.EXPECT().NewUUID().Return("event-1").Times(2)

	_, err := s.collection.AddEvent(GameEvent{Type: EventTypeClockStarted})
	s.Require().NoError(err)
	_, err = s.collection.AddEvent(GameEvent{Type: EventTypeClockStopped})

	s.ErrorIs(err, ErrDuplicateEventID)
	s.Equal(1, s.collection.Len())
}

func (s *CollectionTestSuite) TestAddEventGroupSharesGroupAndTimestamp() {
	gomock.InOrder(
		s.mockUUID.EXPECT().NewUUID().Return("group-1"),
		s.mockUUID.EXPECT().NewUUID().Return("event-in"),
		s.mockUUID.EXPECT().NewUUID().Return("event-out"),
	)

	stored, err := s.collection.AddEventGroup([]GameEvent{
		{Type: EventTypeSubIn, PlayerID: "p2"},
		{Type: EventTypeSubOut, PlayerID: "p1"},
	})
	s.Require().NoError(err)
	s.Require().Len(stored, 2)

	s.Equal("event-in", stored[0].ID)
	s.Equal("event-out", stored[1].ID)
	for _, e := range stored {
		s.Equal("group-1", e.GroupID)
		s.Equal(s.testTime.UnixMilli(), e.Timestamp)
	}
	s.Equal(stored, s.collection.Group("group-1"))
}

func (s *CollectionTestSuite) TestAddEventGroupIsAtomic() {
	gomock.InOrder(
		s.mockUUID.EXPECT().NewUUID().Return("group-1"),
		s.mockUUID.EXPECT().NewUUID().Return("event-1"),
		s.mockUUID.EXPECT().NewUUID().Return("event-1"),
	)

	_, err := s.collection.AddEventGroup([]GameEvent{
		{Type: EventTypeSubIn, PlayerID: "p2"},
		{Type: EventTypeSubOut, PlayerID: "p1"},
	})

	s.ErrorIs(err, ErrDuplicateEventID)
	s.Zero(s.collection.Len())
}

func (s *CollectionTestSuite) TestAddEventGroupEmpty() {
	stored, err := s.collection.AddEventGroup(nil)

	s.NoError(err)
	s.Nil(stored)
}

func (s *CollectionTestSuite) TestIterationOrder() {
	gomock.InOrder(
		s.mockUUID.EXPECT().NewUUID().Return("a"),
		s.mockUUID.EXPECT().NewUUID().Return("b"),
		s.mockUUID.EXPECT().NewUUID().Return("c"),
	)
	for _, typ := range []EventType{EventTypeClockStarted, EventTypeClockStopped, EventTypePeriodEnded} {
		_, err := s.collection.AddEvent(GameEvent{Type: typ})
		s.Require().NoError(err)
		s.clock.IncrementCurrentTime(time.Second)
	}

	var ids []string
	for e := range s.collection.All() {
		ids = append(ids, e.ID)
	}
	s.Equal([]string{"a", "b", "c"}, ids)

	evts := s.collection.Events()
	s.Require().Len(evts, 3)
	s.Equal(EventTypePeriodEnded, evts[2].Type)

	_, ok := s.collection.Get("missing")
	s.False(ok)
}

func (s *CollectionTestSuite) TestJSONRoundTrip() {
	gomock.InOrder(
		s.mockUUID.EXPECT().NewUUID().Return("a"),
		s.mockUUID.EXPECT().NewUUID().Return("group-1"),
		s.mockUUID.EXPECT().NewUUID().Return("b"),
		s.mockUUID.EXPECT().NewUUID().Return("c"),
	)
	_, err := s.collection.AddEvent(GameEvent{Type: EventTypeClockStarted, Data: map[string]any{"period": "1"}})
	s.Require().NoError(err)
	_, err = s.collection.AddEventGroup([]GameEvent{
		{Type: EventTypeSubIn, PlayerID: "p2", Data: map[string]any{"position": "GK"}},
		{Type: EventTypeSubOut, PlayerID: "p1"},
	})
	s.Require().NoError(err)

	data, err := json.Marshal(s.collection)
	s.Require().NoError(err)

	parsed, err := Parse(data, s.clock, s.mockUUID)
	s.Require().NoError(err)
	s.Equal(s.collection, parsed)
}

func (s *CollectionTestSuite) TestJSONRoundTripWithNumericData() {
	gomock.InOrder(
		s.mockUUID.EXPECT().NewUUID().Return("a"),
		s.mockUUID.EXPECT().NewUUID().Return("group-1"),
		s.mockUUID.EXPECT().NewUUID().Return("b"),
	)
	recorded, err := s.collection.AddEvent(GameEvent{
		Type: EventTypeMatchCreated,
		Data: map[string]any{"period": 1, "players": int64(18), "positions": []string{"GK", "CB"}},
	})
	s.Require().NoError(err)
	s.Equal(float64(1), recorded.Data["period"])
	s.Equal([]any{"GK", "CB"}, recorded.Data["positions"])

	_, err = s.collection.AddEventGroup([]GameEvent{
		{Type: EventTypePeriodEnded, Data: map[string]any{"period": 2}},
	})
	s.Require().NoError(err)

	data, err := json.Marshal(s.collection)
	s.Require().NoError(err)

	parsed, err := Parse(data, s.clock, s.mockUUID)
	s.Require().NoError(err)
	s.Equal(s.collection, parsed)
	s.Equal(s.collection.Events(), parsed.Events())
}

func (s *CollectionTestSuite) TestAddEventRejectsUnencodableData() {
	_, err := s.collection.AddEvent(GameEvent{
		Type: EventTypeSwap,
		Data: map[string]any{"callback": func() {}},
	})

	s.True(errors.Is(err, apperr.InvalidArgument))
	s.Equal(0, s.collection.Len())

	_, err = s.collection.AddEventGroup([]GameEvent{
		{Type: EventTypeSubIn, Data: map[string]any{"ch": make(chan int)}},
	})
	s.True(errors.Is(err, apperr.InvalidArgument))
	s.Equal(0, s.collection.Len())
}

func (s *CollectionTestSuite) TestParseValidates() {
	_, err := Parse([]byte(`{"id":"","events":[]}`), s.clock, s.mockUUID)
	s.ErrorIs(err, ErrMissingID)

	_, err = Parse([]byte(`{"id":"g","events":[{"id":"a","type":"swap","timestamp":1,"data":null},{"id":"a","type":"swap","timestamp":2,"data":null}]}`), s.clock, s.mockUUID)
	s.True(errors.Is(err, apperr.InvalidArgument))
}
