package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/KirkDiggler/sideline/internal/lineup"
	"github.com/KirkDiggler/sideline/internal/models"
	matchService "github.com/KirkDiggler/sideline/internal/services/match"
)

// maxLineSize bounds one command; a full roster fits comfortably
const maxLineSize = 1 << 20

// Command operations
const (
	opCreate    = "create"
	opStart     = "start"
	opStop      = "stop"
	opChanges   = "changes"
	opEndPeriod = "end_period"
	opEndMatch  = "end_match"
	opGet       = "get"
	opReset     = "reset"
	opStats     = "stats"
)

// command is one line of input
type command struct {
	Op       string                 `json:"op"`
	MatchID  string                 `json:"matchId,omitempty"`
	PlayerID string                 `json:"playerId,omitempty"`
	Game     *models.Game           `json:"game,omitempty"`
	Changes  []lineup.PendingChange `json:"changes,omitempty"`
}

// response is one line of output
type response struct {
	Op     string `json:"op"`
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
	Result any    `json:"result,omitempty"`
}

// run reads newline-delimited JSON commands from in and writes one JSON
// response per command to out until EOF or ctx is cancelled. A failed
// command is reported in its response and does not stop the loop.
func run(ctx context.Context, svc matchService.Service, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	encoder := json.NewEncoder(out)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var cmd command
		resp := response{}
		if err := json.Unmarshal([]byte(line), &cmd); err != nil {
			resp.Error = fmt.Sprintf("invalid command: %v", err)
		} else {
			resp.Op = cmd.Op
			result, err := dispatch(ctx, svc, &cmd)
			if err != nil {
				resp.Error = err.Error()
			} else {
				resp.OK = true
				resp.Result = result
			}
		}

		if err := encoder.Encode(resp); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read commands: %w", err)
	}
	return nil
}

func dispatch(ctx context.Context, svc matchService.Service, cmd *command) (any, error) {
	switch cmd.Op {
	case opCreate:
		return svc.CreateMatch(ctx, &matchService.CreateMatchInput{Game: cmd.Game})
	case opStart:
		return svc.StartClock(ctx, &matchService.StartClockInput{MatchID: cmd.MatchID})
	case opStop:
		return svc.StopClock(ctx, &matchService.StopClockInput{MatchID: cmd.MatchID})
	case opChanges:
		return svc.ApplyChanges(ctx, &matchService.ApplyChangesInput{
			MatchID: cmd.MatchID,
			Changes: cmd.Changes,
		})
	case opEndPeriod:
		return svc.EndPeriod(ctx, &matchService.EndPeriodInput{MatchID: cmd.MatchID})
	case opEndMatch:
		return svc.EndMatch(ctx, &matchService.EndMatchInput{MatchID: cmd.MatchID})
	case opGet:
		return svc.GetMatch(ctx, &matchService.GetMatchInput{MatchID: cmd.MatchID})
	case opReset:
		return svc.ResetMatch(ctx, &matchService.ResetMatchInput{MatchID: cmd.MatchID})
	case opStats:
		return svc.GetPlayerPlaytime(ctx, &matchService.GetPlayerPlaytimeInput{PlayerID: cmd.PlayerID})
	default:
		return nil, fmt.Errorf("unknown op: %q", cmd.Op)
	}
}
