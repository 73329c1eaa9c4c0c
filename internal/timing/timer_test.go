package timing

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/KirkDiggler/sideline/internal/common/clock"
	"github.com/stretchr/testify/suite"
)

type TimerTestSuite struct {
	suite.Suite
	clock    *clock.Manual
	timer    *Timer
	testTime time.Time
}

func (s *TimerTestSuite) SetupTest() {
	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.clock = clock.NewManual(s.testTime)
	s.timer = NewTimer(s.clock)
}

func TestTimerTestSuite(t *testing.T) {
	suite.Run(t, new(TimerTestSuite))
}

func (s *TimerTestSuite) TestElapsedWhileRunning() {
	s.timer.Start()
	s.clock.IncrementCurrentTime(5 * time.Second)

	elapsed := s.timer.Elapsed()
	s.Equal(int64(0), elapsed.Minutes())
	s.Equal(int64(5), elapsed.Seconds())
	s.True(s.timer.IsRunning())
}

func (s *TimerTestSuite) TestStopAccumulates() {
	s.timer.Start()
	s.clock.IncrementCurrentTime(5 * time.Second)
	s.timer.Stop()

	s.clock.IncrementCurrentTime(30 * time.Second)
	s.Equal(Seconds(5), s.timer.Elapsed())

	s.timer.Start()
	s.clock.IncrementCurrentTime(7 * time.Second)
	s.timer.Stop()
	s.Equal(Seconds(12), s.timer.Elapsed())
}

func (s *TimerTestSuite) TestRepeatedStartKeepsOriginalStart() {
	s.timer.Start()
	s.clock.IncrementCurrentTime(3 * time.Second)
	s.timer.Start()
	s.clock.IncrementCurrentTime(2 * time.Second)

	start, ok := s.timer.StartTime()
	s.True(ok)
	s.Equal(s.testTime.UnixMilli(), start.UnixMilli())
	s.Equal(Seconds(5), s.timer.Elapsed())
}

func (s *TimerTestSuite) TestRepeatedStopLeavesElapsedUnchanged() {
	s.timer.Start()
	s.clock.IncrementCurrentTime(4 * time.Second)
	s.timer.Stop()
	before := s.timer.Elapsed()

	s.clock.IncrementCurrentTime(9 * time.Second)
	s.timer.Stop()

	s.Equal(before, s.timer.Elapsed())
}

func (s *TimerTestSuite) TestStopWithoutStartIsNoop() {
	s.timer.Stop()

	s.False(s.timer.IsRunning())
	s.True(s.timer.Elapsed().IsZero())
}

func (s *TimerTestSuite) TestReset() {
	s.timer.Start()
	s.clock.IncrementCurrentTime(4 * time.Second)
	s.timer.Reset()

	s.False(s.timer.IsRunning())
	_, ok := s.timer.StartTime()
	s.False(ok)
	s.True(s.timer.Elapsed().IsZero())
}

func (s *TimerTestSuite) TestElapsedNeverNegative() {
	s.timer.Start()
	s.clock.SetCurrentTime(s.testTime.Add(-time.Minute))

	s.True(s.timer.Elapsed().IsZero())
}

func (s *TimerTestSuite) TestManyStopsKeepSubSecondTime() {
	for range 4 {
		s.timer.Start()
		s.clock.IncrementCurrentTime(1500 * time.Millisecond)
		s.timer.Stop()
		s.clock.IncrementCurrentTime(time.Minute)
	}

	s.Equal(Seconds(6), s.timer.Elapsed())

	data, err := json.Marshal(s.timer)
	s.Require().NoError(err)
	s.JSONEq(`{"isRunning":false,"duration":{"value":6}}`, string(data))
}

func (s *TimerTestSuite) TestJSONRoundTripPartialSecond() {
	s.timer.Start()
	s.clock.IncrementCurrentTime(2250 * time.Millisecond)
	s.timer.Stop()

	data, err := json.Marshal(s.timer)
	s.Require().NoError(err)
	s.JSONEq(`{"isRunning":false,"duration":{"value":2.25}}`, string(data))

	parsed, err := ParseTimer(data, s.clock)
	s.Require().NoError(err)
	s.Equal(s.timer, parsed)
	s.Equal(int64(2), parsed.Elapsed().TotalSeconds())
}

func (s *TimerTestSuite) TestJSONRoundTripRunning() {
	s.clock.IncrementCurrentTime(1500 * time.Millisecond)
	s.timer.Start()

	data, err := json.Marshal(s.timer)
	s.Require().NoError(err)
	s.JSONEq(`{"isRunning":true,"startTime":`+jsonInt(s.clock.Now().UnixMilli())+`,"duration":{"value":0}}`, string(data))

	parsed, err := ParseTimer(data, s.clock)
	s.Require().NoError(err)
	s.Equal(s.timer, parsed)
}

func (s *TimerTestSuite) TestJSONRoundTripStopped() {
	s.timer.Start()
	s.clock.IncrementCurrentTime(61 * time.Second)
	s.timer.Stop()

	data, err := json.Marshal(s.timer)
	s.Require().NoError(err)
	s.JSONEq(`{"isRunning":false,"duration":{"value":61}}`, string(data))

	parsed, err := ParseTimer(data, s.clock)
	s.Require().NoError(err)
	s.Equal(s.timer, parsed)
}

func (s *TimerTestSuite) TestParseRejectsInconsistentState() {
	_, err := ParseTimer([]byte(`{"isRunning":true,"duration":{"value":0}}`), s.clock)
	s.Error(err)

	_, err = ParseTimer([]byte(`{"isRunning":false,"startTime":5,"duration":{"value":0}}`), s.clock)
	s.Error(err)
}

func jsonInt(n int64) string {
	data, _ := json.Marshal(n)
	return string(data)
}
