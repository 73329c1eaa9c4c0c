package match

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/KirkDiggler/sideline/internal/common/clock"
	"github.com/KirkDiggler/sideline/internal/events"
	"github.com/KirkDiggler/sideline/internal/models"
	"github.com/KirkDiggler/sideline/internal/tracker"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	matchKeyPrefix    = "match:"
	trackersKeySuffix = ":trackers"
	eventsKeySuffix   = ":events"
	activeMatchesKey  = "active_matches"
)

// ErrMatchNotFound is returned when a match is not found
var ErrMatchNotFound = errors.New("match not found")

// Config holds configuration for the Redis match repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed match repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func gameKey(matchID string) string {
	return matchKeyPrefix + matchID
}

func trackersKey(matchID string) string {
	return matchKeyPrefix + matchID + trackersKeySuffix
}

func eventsKey(matchID string) string {
	return matchKeyPrefix + matchID + eventsKeySuffix
}

// SaveMatch persists a match to Redis
func (r *redisRepository) SaveMatch(ctx context.Context, input *SaveMatchInput) error {
	if input == nil || input.Game == nil || input.Trackers == nil || input.Events == nil {
		return errors.New("input, game, trackers and events cannot be nil")
	}
	if input.Game.ID == "" {
		return errors.New("game ID cannot be empty")
	}

	gameJSON, err := json.Marshal(input.Game)
	if err != nil {
		return fmt.Errorf("failed to marshal game: %w", err)
	}

	trackersJSON, err := json.Marshal(input.Trackers)
	if err != nil {
		return fmt.Errorf("failed to marshal trackers: %w", err)
	}

	eventsJSON, err := json.Marshal(input.Events)
	if err != nil {
		return fmt.Errorf("failed to marshal events: %w", err)
	}

	// Write all three documents in one transaction
	pipe := r.client.TxPipeline()

	matchID := input.Game.ID
	pipe.Set(ctx, gameKey(matchID), gameJSON, 0)
	pipe.Set(ctx, trackersKey(matchID), trackersJSON, 0)
	pipe.Set(ctx, eventsKey(matchID), eventsJSON, 0)

	if input.Game.Status == models.GameStatusLive {
		pipe.SAdd(ctx, activeMatchesKey, matchID)
	} else {
		pipe.SRem(ctx, activeMatchesKey, matchID)
	}

	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save match: %w", err)
	}

	return nil
}

// GetMatch retrieves a match by ID from Redis
func (r *redisRepository) GetMatch(ctx context.Context, input *GetMatchInput) (*GetMatchOutput, error) {
	if input == nil || input.MatchID == "" {
		return nil, errors.New("input and match ID cannot be empty")
	}

	pipe := r.client.Pipeline()
	gameCmd := pipe.Get(ctx, gameKey(input.MatchID))
	trackersCmd := pipe.Get(ctx, trackersKey(input.MatchID))
	eventsCmd := pipe.Get(ctx, eventsKey(input.MatchID))

	_, err := pipe.Exec(ctx)
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	gameJSON, err := gameCmd.Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	trackersJSON, err := trackersCmd.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to get trackers for match %s: %w", input.MatchID, err)
	}

	eventsJSON, err := eventsCmd.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to get events for match %s: %w", input.MatchID, err)
	}

	var game models.Game
	if err := json.Unmarshal(gameJSON, &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	// The tracker map and event log read time from the same source
	source := input.TimeSource
	if source == nil {
		source = clock.NewTimeSource(nil)
	}

	trackers, err := tracker.ParseMap(trackersJSON, source)
	if err != nil {
		return nil, err
	}

	collection, err := events.Parse(eventsJSON, source, input.UUIDGenerator)
	if err != nil {
		return nil, err
	}

	return &GetMatchOutput{
		Game:     &game,
		Trackers: trackers,
		Events:   collection,
	}, nil
}

// DeleteMatch removes a match from Redis
func (r *redisRepository) DeleteMatch(ctx context.Context, input *DeleteMatchInput) error {
	if input == nil || input.MatchID == "" {
		return errors.New("input and match ID cannot be empty")
	}

	pipe := r.client.TxPipeline()
	delCmd := pipe.Del(ctx, gameKey(input.MatchID), trackersKey(input.MatchID), eventsKey(input.MatchID))
	pipe.SRem(ctx, activeMatchesKey, input.MatchID)

	_, err := pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}

	if delCmd.Val() == 0 {
		return ErrMatchNotFound
	}

	return nil
}

// GetActiveMatches retrieves the IDs of all live matches
func (r *redisRepository) GetActiveMatches(ctx context.Context, input *GetActiveMatchesInput) (*GetActiveMatchesOutput, error) {
	matchIDs, err := r.client.SMembers(ctx, activeMatchesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get active matches: %w", err)
	}

	sort.Strings(matchIDs)

	return &GetActiveMatchesOutput{
		MatchIDs: matchIDs,
	}, nil
}
