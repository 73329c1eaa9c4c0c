package match

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/sideline/internal/common/clock"
	"github.com/KirkDiggler/sideline/internal/common/uuid"
	"github.com/KirkDiggler/sideline/internal/events"
	"github.com/KirkDiggler/sideline/internal/lineup"
	"github.com/KirkDiggler/sideline/internal/models"
	matchRepo "github.com/KirkDiggler/sideline/internal/repositories/match"
	playtimeRepo "github.com/KirkDiggler/sideline/internal/repositories/playtime"
	"github.com/KirkDiggler/sideline/internal/tracker"
)

// service implements the Service interface.
//
// Every operation loads the match, mutates it and saves it back while
// holding mu, and reads time through a TimeSource of its own so freezes
// never cross operations.
type service struct {
	mu sync.Mutex

	matchRepo     matchRepo.Repository
	playtimeRepo  playtimeRepo.Repository
	notifier      Notifier
	clock         clock.Clock
	uuidGenerator uuid.UUID
	logger        *slog.Logger
}

// liveMatch is a match loaded for a single operation
type liveMatch struct {
	game     *models.Game
	trackers *tracker.Map
	events   *events.Collection
	source   *clock.TimeSource
}

// New creates a new match service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.MatchRepo == nil {
		return nil, ErrNilMatchRepo
	}
	if cfg.PlaytimeRepo == nil {
		return nil, ErrNilPlaytimeRepo
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	s := &service{
		matchRepo:     cfg.MatchRepo,
		playtimeRepo:  cfg.PlaytimeRepo,
		notifier:      cfg.Notifier,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
		logger:        cfg.Logger,
	}
	if s.notifier == nil {
		s.notifier = NoopNotifier{}
	}
	if s.clock == nil {
		s.clock = &clock.DefaultClock{}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s, nil
}

// CreateMatch validates the starting lineup and begins tracking a match
func (s *service) CreateMatch(ctx context.Context, input *CreateMatchInput) (*CreateMatchOutput, error) {
	if input == nil || input.Game == nil {
		return nil, ErrNilGame
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	game := input.Game
	if result := lineup.ValidateStarters(game); !result.Valid() {
		s.logger.Warn("starting lineup rejected",
			"match_id", game.ID,
			"issues", len(result),
		)
		return &CreateMatchOutput{
			Valid:  false,
			Issues: result.Issues(),
		}, nil
	}

	if game.ID == "" {
		game.ID = s.uuidGenerator.NewUUID()
	} else {
		_, err := s.matchRepo.GetMatch(ctx, &matchRepo.GetMatchInput{MatchID: game.ID})
		if err == nil {
			return nil, ErrMatchExists
		}
		if !errors.Is(err, matchRepo.ErrMatchNotFound) {
			return nil, err
		}
	}

	source := clock.NewTimeSource(s.clock)
	now := source.Now()

	game.Status = models.GameStatusLive
	if game.Period == 0 {
		game.Period = 1
	}
	game.CreatedAt = now
	game.UpdatedAt = now

	trackers := tracker.NewMap(game.ID, source)
	if err := trackers.Initialize(game.Roster); err != nil {
		return nil, err
	}

	collection, err := events.New(&events.Config{
		ID:            game.ID,
		Clock:         source,
		UUIDGenerator: s.uuidGenerator,
	})
	if err != nil {
		return nil, err
	}

	_, err = collection.AddEvent(events.GameEvent{
		Type: events.EventTypeMatchCreated,
		Data: map[string]any{
			"formation": game.Formation.ID,
			"players":   len(game.Roster),
		},
	})
	if err != nil {
		return nil, err
	}

	m := &liveMatch{game: game, trackers: trackers, events: collection, source: source}
	if err := s.save(ctx, m); err != nil {
		return nil, err
	}

	s.logger.Info("match created",
		"match_id", game.ID,
		"formation", game.Formation.ID,
		"players", len(game.Roster),
	)

	return &CreateMatchOutput{
		MatchID: game.ID,
		Valid:   true,
	}, nil
}

// StartClock starts the match clock and every player's shift
func (s *service) StartClock(ctx context.Context, input *StartClockInput) (*StartClockOutput, error) {
	if input == nil {
		return nil, ErrMissingMatchID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.loadLive(ctx, input.MatchID)
	if err != nil {
		return nil, err
	}

	if m.trackers.ClockRunning() {
		return nil, ErrClockRunning
	}

	if err := m.trackers.StartShiftTimers(); err != nil {
		return nil, err
	}

	event, err := m.events.AddEvent(events.GameEvent{
		Type: events.EventTypeClockStarted,
		Data: map[string]any{"period": m.game.Period},
	})
	if err != nil {
		return nil, err
	}

	if err := s.save(ctx, m); err != nil {
		return nil, err
	}

	s.logger.Info("clock started",
		"match_id", m.game.ID,
		"period", m.game.Period,
	)
	s.notify(ctx, s.notification(m, NotificationClockStarted, event))

	return &StartClockOutput{
		Event: event,
	}, nil
}

// StopClock stops the match clock and every player's shift
func (s *service) StopClock(ctx context.Context, input *StopClockInput) (*StopClockOutput, error) {
	if input == nil {
		return nil, ErrMissingMatchID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.loadLive(ctx, input.MatchID)
	if err != nil {
		return nil, err
	}

	if !m.trackers.ClockRunning() {
		return nil, ErrClockStopped
	}

	event, err := s.stopClock(m)
	if err != nil {
		return nil, err
	}

	if err := s.save(ctx, m); err != nil {
		return nil, err
	}

	s.logger.Info("clock stopped",
		"match_id", m.game.ID,
		"period", m.game.Period,
	)
	s.notify(ctx, s.notification(m, NotificationClockStopped, event))

	return &StopClockOutput{
		Event: event,
	}, nil
}

// ApplyChanges validates and commits a batch of substitutions and swaps.
// A batch with any issue is rejected as a whole and nothing is saved.
func (s *service) ApplyChanges(ctx context.Context, input *ApplyChangesInput) (*ApplyChangesOutput, error) {
	if input == nil {
		return nil, ErrMissingMatchID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.loadLive(ctx, input.MatchID)
	if err != nil {
		return nil, err
	}

	steps, result := lineup.Resolve(m.game, input.Changes)
	if !result.Valid() {
		s.logger.Warn("lineup changes rejected",
			"match_id", m.game.ID,
			"changes", len(input.Changes),
			"issues", len(result),
		)
		return &ApplyChangesOutput{
			Applied: false,
			Issues:  result.Issues(),
		}, nil
	}

	if len(steps) == 0 {
		return &ApplyChangesOutput{Applied: true}, nil
	}

	var subs []tracker.Substitution
	for _, step := range steps {
		if step.Kind == lineup.ChangeSubstitution {
			subs = append(subs, tracker.Substitution{InID: step.PlayerID, OutID: step.ReplacedID})
		}
	}
	if len(subs) > 0 {
		if err := m.trackers.SubstitutePlayers(subs); err != nil {
			return nil, err
		}
	}

	if err := lineup.ApplyToRoster(m.game, steps); err != nil {
		return nil, err
	}

	recorded, err := s.recordSteps(m, steps)
	if err != nil {
		return nil, err
	}

	if err := s.save(ctx, m); err != nil {
		return nil, err
	}

	s.logger.Info("lineup changes applied",
		"match_id", m.game.ID,
		"substitutions", len(subs),
		"swaps", len(steps)-len(subs),
		"clock_running", m.trackers.ClockRunning(),
	)

	n := s.notification(m, NotificationChangesApplied, recorded[len(recorded)-1])
	for _, step := range steps {
		switch step.Kind {
		case lineup.ChangeSubstitution:
			n.Substitutions = append(n.Substitutions, SubstitutionSummary{
				InName:     displayName(m.game, step.PlayerID),
				OutName:    displayName(m.game, step.ReplacedID),
				PositionID: step.ToPositionID,
			})
		case lineup.ChangeSwap:
			n.Swaps = append(n.Swaps, SwapSummary{
				Name:           displayName(m.game, step.PlayerID),
				FromPositionID: step.FromPositionID,
				ToPositionID:   step.ToPositionID,
			})
		}
	}
	s.notify(ctx, n)

	return &ApplyChangesOutput{
		Applied: true,
		Events:  recorded,
	}, nil
}

// EndPeriod stops the clock if it is running, commits every shift to its
// player's total and moves to the next period.
func (s *service) EndPeriod(ctx context.Context, input *EndPeriodInput) (*EndPeriodOutput, error) {
	if input == nil {
		return nil, ErrMissingMatchID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.loadLive(ctx, input.MatchID)
	if err != nil {
		return nil, err
	}

	event, err := s.closePeriod(m, events.EventTypePeriodEnded)
	if err != nil {
		return nil, err
	}

	ended := m.game.Period
	m.game.Period++

	snapshots, err := m.trackers.Snapshots()
	if err != nil {
		return nil, err
	}

	if err := s.save(ctx, m); err != nil {
		return nil, err
	}

	s.logger.Info("period ended",
		"match_id", m.game.ID,
		"period", ended,
	)

	n := s.notification(m, NotificationPeriodEnded, event)
	n.Period = ended
	n.Players = playerSummaries(m.game, snapshots)
	s.notify(ctx, n)

	return &EndPeriodOutput{
		Period:  m.game.Period,
		Players: snapshots,
	}, nil
}

// EndMatch completes the match and writes one ledger record per available
// player. Records are written before the match is marked completed, so a
// failed write leaves the match live and the call can be retried.
func (s *service) EndMatch(ctx context.Context, input *EndMatchInput) (*EndMatchOutput, error) {
	if input == nil {
		return nil, ErrMissingMatchID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.loadLive(ctx, input.MatchID)
	if err != nil {
		return nil, err
	}

	event, err := s.closePeriod(m, events.EventTypeMatchEnded)
	if err != nil {
		return nil, err
	}

	m.game.Status = models.GameStatusCompleted

	timestamp := event.Time()
	records := make([]*models.PlaytimeRecord, 0, len(m.game.Roster))
	for _, p := range m.game.Roster {
		if p.Status == models.PlayerStatusOut {
			continue
		}
		t, ok := m.trackers.Tracker(p.ID)
		if !ok {
			continue
		}
		records = append(records, &models.PlaytimeRecord{
			ID:        s.uuidGenerator.NewUUID(),
			PlayerID:  p.ID,
			GameID:    m.game.ID,
			Seconds:   t.TotalTime().TotalSeconds(),
			Shifts:    t.ShiftCount(),
			Timestamp: timestamp,
		})
	}

	snapshots, err := m.trackers.Snapshots()
	if err != nil {
		return nil, err
	}

	if err := s.playtimeRepo.AddRecords(ctx, &playtimeRepo.AddRecordsInput{Records: records}); err != nil {
		return nil, err
	}

	if err := s.save(ctx, m); err != nil {
		return nil, err
	}

	s.logger.Info("match ended",
		"match_id", m.game.ID,
		"periods", m.game.Period,
		"records", len(records),
	)

	n := s.notification(m, NotificationMatchEnded, event)
	n.Players = playerSummaries(m.game, snapshots)
	s.notify(ctx, n)

	return &EndMatchOutput{
		Records: records,
	}, nil
}

// GetMatch returns the current state of a match. Completed matches can be read.
func (s *service) GetMatch(ctx context.Context, input *GetMatchInput) (*GetMatchOutput, error) {
	if input == nil {
		return nil, ErrMissingMatchID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load(ctx, input.MatchID)
	if err != nil {
		return nil, err
	}

	snapshots, err := m.trackers.Snapshots()
	if err != nil {
		return nil, err
	}

	return &GetMatchOutput{
		Game:         m.game,
		ClockRunning: m.trackers.ClockRunning(),
		Players:      snapshots,
		Events:       m.events.Events(),
	}, nil
}

// ResetMatch discards a match's live state
func (s *service) ResetMatch(ctx context.Context, input *ResetMatchInput) (*ResetMatchOutput, error) {
	if input == nil || input.MatchID == "" {
		return nil, ErrMissingMatchID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.matchRepo.DeleteMatch(ctx, &matchRepo.DeleteMatchInput{MatchID: input.MatchID})
	if err != nil {
		if errors.Is(err, matchRepo.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	s.logger.Info("match reset", "match_id", input.MatchID)

	return &ResetMatchOutput{}, nil
}

// GetPlayerPlaytime returns a player's ledger totals and per-match records,
// oldest match first. A player with no completed matches has zero totals.
func (s *service) GetPlayerPlaytime(ctx context.Context, input *GetPlayerPlaytimeInput) (*GetPlayerPlaytimeOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, ErrMissingPlayer
	}

	stats, err := s.playtimeRepo.GetPlayerStats(ctx, &playtimeRepo.GetPlayerStatsInput{
		PlayerID: input.PlayerID,
	})
	if err != nil {
		return nil, err
	}

	records, err := s.playtimeRepo.GetRecordsForPlayer(ctx, &playtimeRepo.GetRecordsForPlayerInput{
		PlayerID: input.PlayerID,
	})
	if err != nil {
		return nil, err
	}

	return &GetPlayerPlaytimeOutput{
		Stats:   stats.Stats,
		Records: records.Records,
	}, nil
}

// load reads a match bound to a fresh time source
func (s *service) load(ctx context.Context, matchID string) (*liveMatch, error) {
	if matchID == "" {
		return nil, ErrMissingMatchID
	}

	source := clock.NewTimeSource(s.clock)
	out, err := s.matchRepo.GetMatch(ctx, &matchRepo.GetMatchInput{
		MatchID:       matchID,
		TimeSource:    source,
		UUIDGenerator: s.uuidGenerator,
	})
	if err != nil {
		if errors.Is(err, matchRepo.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	return &liveMatch{
		game:     out.Game,
		trackers: out.Trackers,
		events:   out.Events,
		source:   source,
	}, nil
}

// loadLive reads a match that has not been completed
func (s *service) loadLive(ctx context.Context, matchID string) (*liveMatch, error) {
	m, err := s.load(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if m.game.Status == models.GameStatusCompleted {
		return nil, ErrMatchCompleted
	}
	return m, nil
}

func (s *service) save(ctx context.Context, m *liveMatch) error {
	m.game.UpdatedAt = m.source.Now()
	return s.matchRepo.SaveMatch(ctx, &matchRepo.SaveMatchInput{
		Game:     m.game,
		Trackers: m.trackers,
		Events:   m.events,
	})
}

func (s *service) stopClock(m *liveMatch) (events.GameEvent, error) {
	if err := m.trackers.StopShiftTimers(); err != nil {
		return events.GameEvent{}, err
	}
	return m.events.AddEvent(events.GameEvent{
		Type: events.EventTypeClockStopped,
		Data: map[string]any{"period": m.game.Period},
	})
}

// closePeriod stops a running clock, totals every shift and records the
// closing event.
func (s *service) closePeriod(m *liveMatch, closing events.EventType) (events.GameEvent, error) {
	if m.trackers.ClockRunning() {
		if _, err := s.stopClock(m); err != nil {
			return events.GameEvent{}, err
		}
	}

	if err := m.trackers.TotalShiftTimers(); err != nil {
		return events.GameEvent{}, err
	}

	return m.events.AddEvent(events.GameEvent{
		Type: closing,
		Data: map[string]any{"period": m.game.Period},
	})
}

// recordSteps writes a sub_in/sub_out group per substitution and a swap
// event per swap, in step order.
func (s *service) recordSteps(m *liveMatch, steps []lineup.Step) ([]events.GameEvent, error) {
	var recorded []events.GameEvent
	for _, step := range steps {
		switch step.Kind {
		case lineup.ChangeSubstitution:
			group, err := m.events.AddEventGroup([]events.GameEvent{
				{
					Type:     events.EventTypeSubIn,
					PlayerID: step.PlayerID,
					Data: map[string]any{
						"replacedId": step.ReplacedID,
						"position":   step.ToPositionID,
						"period":     m.game.Period,
					},
				},
				{
					Type:     events.EventTypeSubOut,
					PlayerID: step.ReplacedID,
					Data: map[string]any{
						"replacedById": step.PlayerID,
						"position":     step.FromPositionID,
						"period":       m.game.Period,
					},
				},
			})
			if err != nil {
				return nil, err
			}
			recorded = append(recorded, group...)
		case lineup.ChangeSwap:
			event, err := m.events.AddEvent(events.GameEvent{
				Type:     events.EventTypeSwap,
				PlayerID: step.PlayerID,
				Data: map[string]any{
					"from":   step.FromPositionID,
					"to":     step.ToPositionID,
					"period": m.game.Period,
				},
			})
			if err != nil {
				return nil, err
			}
			recorded = append(recorded, event)
		}
	}
	return recorded, nil
}

func (s *service) notification(m *liveMatch, kind NotificationKind, event events.GameEvent) *Notification {
	return &Notification{
		Kind:      kind,
		MatchID:   m.game.ID,
		MatchName: m.game.Name,
		Period:    m.game.Period,
		Timestamp: event.Time(),
	}
}

// notify is best effort; the operation has already been saved
func (s *service) notify(ctx context.Context, n *Notification) {
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.logger.Warn("failed to send notification",
			"match_id", n.MatchID,
			"kind", string(n.Kind),
			"error", err,
		)
	}
}

func displayName(game *models.Game, playerID string) string {
	if p, ok := game.Player(playerID); ok {
		return p.DisplayName()
	}
	return playerID
}

func playerSummaries(game *models.Game, snapshots []tracker.Snapshot) []PlayerSummary {
	summaries := make([]PlayerSummary, 0, len(snapshots))
	for _, snap := range snapshots {
		summaries = append(summaries, PlayerSummary{
			Name:      displayName(game, snap.ID),
			IsOn:      snap.IsOn,
			Shifts:    snap.ShiftCount,
			TotalTime: snap.TotalTime,
		})
	}
	return summaries
}
