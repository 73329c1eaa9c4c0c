package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/KirkDiggler/sideline/internal/common/clock"
	"github.com/KirkDiggler/sideline/internal/common/logging"
	"github.com/KirkDiggler/sideline/internal/common/uuid"
	matchRepo "github.com/KirkDiggler/sideline/internal/repositories/match"
	playtimeRepo "github.com/KirkDiggler/sideline/internal/repositories/playtime"
	matchService "github.com/KirkDiggler/sideline/internal/services/match"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

const createLine = `{"op":"create","game":{"id":"match-1","name":"U10 vs Rovers",` +
	`"formation":{"id":"1-1","positions":[{"id":"GK"},{"id":"FW"}]},` +
	`"roster":[` +
	`{"id":"p1","name":"Ann","status":"on","currentPosition":{"id":"GK"}},` +
	`{"id":"p2","name":"Ben","status":"on","currentPosition":{"id":"FW"}},` +
	`{"id":"p3","name":"Cal","status":"off"}]}}`

type decodedResponse struct {
	Op     string          `json:"op"`
	OK     bool            `json:"ok"`
	Error  string          `json:"error"`
	Result json.RawMessage `json:"result"`
}

type DriverTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	clock  *clock.Manual
	svc    matchService.Service
}

func (s *DriverTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	matches, err := matchRepo.NewRedis(&matchRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	ledger, err := playtimeRepo.NewRedis(&playtimeRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)

	s.clock = clock.NewManual(time.Date(2025, 4, 19, 9, 0, 0, 0, time.UTC))

	s.svc, err = matchService.New(&matchService.Config{
		MatchRepo:     matches,
		PlaytimeRepo:  ledger,
		Clock:         s.clock,
		UUIDGenerator: uuid.New(),
		Logger:        logging.Discard(),
	})
	s.Require().NoError(err)
}

func (s *DriverTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestDriverTestSuite(t *testing.T) {
	suite.Run(t, new(DriverTestSuite))
}

// send runs the given command lines and decodes one response per command
func (s *DriverTestSuite) send(lines ...string) []decodedResponse {
	var out bytes.Buffer
	err := run(context.Background(), s.svc, strings.NewReader(strings.Join(lines, "\n")), &out)
	s.Require().NoError(err)

	var responses []decodedResponse
	decoder := json.NewDecoder(&out)
	for decoder.More() {
		var resp decodedResponse
		s.Require().NoError(decoder.Decode(&resp))
		responses = append(responses, resp)
	}
	return responses
}

func (s *DriverTestSuite) TestMatchLifecycle() {
	responses := s.send(createLine, "", `{"op":"start","matchId":"match-1"}`)
	s.Require().Len(responses, 2)
	s.True(responses[0].OK, responses[0].Error)
	s.JSONEq(`{"matchId":"match-1","valid":true}`, string(responses[0].Result))
	s.True(responses[1].OK, responses[1].Error)

	s.clock.IncrementCurrentTime(10 * time.Minute)

	responses = s.send(
		`{"op":"changes","matchId":"match-1","changes":[{"kind":"substitution","playerId":"p3","replacedId":"p2"}]}`,
		`{"op":"end_match","matchId":"match-1"}`,
	)
	s.Require().Len(responses, 2)
	s.True(responses[0].OK, responses[0].Error)
	s.True(responses[1].OK, responses[1].Error)

	var ended matchService.EndMatchOutput
	s.Require().NoError(json.Unmarshal(responses[1].Result, &ended))
	seconds := make(map[string]int64)
	for _, r := range ended.Records {
		seconds[r.PlayerID] = r.Seconds
	}
	s.Equal(map[string]int64{"p1": 600, "p2": 600, "p3": 0}, seconds)

	responses = s.send(`{"op":"get","matchId":"match-1"}`)
	s.Require().Len(responses, 1)

	var got matchService.GetMatchOutput
	s.Require().NoError(json.Unmarshal(responses[0].Result, &got))
	s.Equal("completed", string(got.Game.Status))
	s.False(got.ClockRunning)
	s.Len(got.Players, 3)

	responses = s.send(`{"op":"stats","playerId":"p2"}`)
	s.Require().Len(responses, 1)
	s.True(responses[0].OK, responses[0].Error)

	var stats matchService.GetPlayerPlaytimeOutput
	s.Require().NoError(json.Unmarshal(responses[0].Result, &stats))
	s.Equal(int64(600), stats.Stats.Seconds)
	s.Equal(int64(1), stats.Stats.Matches)
	s.Require().Len(stats.Records, 1)
	s.Equal("match-1", stats.Records[0].GameID)
}

func (s *DriverTestSuite) TestRejectedChangesReportIssues() {
	s.send(createLine)

	responses := s.send(`{"op":"changes","matchId":"match-1","changes":[{"kind":"swap","playerId":"p1","position":{"id":"SW"}}]}`)
	s.Require().Len(responses, 1)
	s.True(responses[0].OK)
	s.JSONEq(`{"applied":false,"issues":[{"key":"p1","reason":"invalid position: SW"}]}`, string(responses[0].Result))
}

func (s *DriverTestSuite) TestErrorsDoNotStopTheLoop() {
	responses := s.send(
		`not json`,
		`{"op":"fly"}`,
		`{"op":"start","matchId":"missing"}`,
		`{"op":"reset","matchId":"missing"}`,
	)
	s.Require().Len(responses, 4)

	s.False(responses[0].OK)
	s.Contains(responses[0].Error, "invalid command")
	s.Equal(`unknown op: "fly"`, responses[1].Error)
	s.Equal("match not found", responses[2].Error)
	s.Equal("match not found", responses[3].Error)
}

func (s *DriverTestSuite) TestRunStopsWhenCancelled() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := run(ctx, s.svc, strings.NewReader(createLine), &out)

	s.NoError(err)
	s.Empty(out.String())
}

// failingWriter rejects every write
type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("stdout closed")
}

// setServeEnv points serve at miniredis and drops the suite's own
// connection so only serve's client is counted
func (s *DriverTestSuite) setServeEnv() {
	s.Require().NoError(s.client.Close())
	s.Eventually(func() bool {
		return s.mr.CurrentConnectionCount() == 0
	}, time.Second, 10*time.Millisecond)

	s.T().Setenv("SIDELINE_REDIS_ADDR", s.mr.Addr())
	s.T().Setenv("SIDELINE_DISCORD_TOKEN", "")
	s.T().Setenv("SIDELINE_DISCORD_CHANNEL_ID", "")
	s.T().Setenv("SIDELINE_LOG_LEVEL", "ERROR")
}

func (s *DriverTestSuite) TestServeRunsUntilEndOfInput() {
	s.setServeEnv()

	var out bytes.Buffer
	code := serve(strings.NewReader(createLine), &out)

	s.Equal(0, code)
	s.Contains(out.String(), `"ok":true`)
	s.Eventually(func() bool {
		return s.mr.CurrentConnectionCount() == 0
	}, time.Second, 10*time.Millisecond)
}

func (s *DriverTestSuite) TestServeClosesRedisWhenCommandLoopFails() {
	s.setServeEnv()

	code := serve(strings.NewReader(createLine), failingWriter{})

	s.Equal(1, code)
	s.Eventually(func() bool {
		return s.mr.CurrentConnectionCount() == 0
	}, time.Second, 10*time.Millisecond)
}

func (s *DriverTestSuite) TestServeFailsWithoutRedis() {
	s.setServeEnv()
	s.T().Setenv("SIDELINE_REDIS_ADDR", "127.0.0.1:1")

	s.Equal(1, serve(strings.NewReader(""), &bytes.Buffer{}))
}
