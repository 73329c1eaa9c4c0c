package playtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/KirkDiggler/sideline/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	recordKeyPrefix        = "playtime:"
	matchRecordsKeyPrefix  = "match_playtime:"
	playerRecordsKeyPrefix = "player_playtime:"
	playerStatsKeyPrefix   = "playtime_stats:"

	// Stats hash fields
	statsSecondsField = "seconds"
	statsMatchesField = "matches"
	statsShiftsField  = "shifts"
)

// Config holds configuration for the Redis playtime repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed playtime repository
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

// AddRecords adds records to the ledger in a single transaction
func (r *redisRepository) AddRecords(ctx context.Context, input *AddRecordsInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}

	for _, record := range input.Records {
		if record == nil {
			return errors.New("record cannot be nil")
		}
		if record.ID == "" || record.PlayerID == "" || record.GameID == "" {
			return errors.New("record ID, player ID and game ID cannot be empty")
		}
		if record.Timestamp.IsZero() {
			return fmt.Errorf("record %s has no timestamp", record.ID)
		}
	}

	if len(input.Records) == 0 {
		return nil
	}

	pipe := r.client.TxPipeline()

	for _, record := range input.Records {
		recordJSON, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to marshal playtime record: %w", err)
		}

		pipe.Set(ctx, recordKeyPrefix+record.ID, recordJSON, 0)

		score := float64(record.Timestamp.UnixMilli())
		pipe.ZAdd(ctx, matchRecordsKeyPrefix+record.GameID, redis.Z{
			Score:  score,
			Member: record.ID,
		})
		pipe.ZAdd(ctx, playerRecordsKeyPrefix+record.PlayerID, redis.Z{
			Score:  score,
			Member: record.ID,
		})

		statsKey := playerStatsKeyPrefix + record.PlayerID
		pipe.HIncrBy(ctx, statsKey, statsSecondsField, record.Seconds)
		pipe.HIncrBy(ctx, statsKey, statsShiftsField, int64(record.Shifts))
		pipe.HIncrBy(ctx, statsKey, statsMatchesField, 1)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to add playtime records: %w", err)
	}

	return nil
}

// GetRecordsForMatch retrieves all records written for a match
func (r *redisRepository) GetRecordsForMatch(ctx context.Context, input *GetRecordsForMatchInput) (*GetRecordsForMatchOutput, error) {
	if input == nil || input.MatchID == "" {
		return nil, errors.New("input and match ID cannot be empty")
	}

	records, err := r.getRecords(ctx, matchRecordsKeyPrefix+input.MatchID)
	if err != nil {
		return nil, err
	}

	return &GetRecordsForMatchOutput{
		Records: records,
	}, nil
}

// GetRecordsForPlayer retrieves all records for a player, oldest first
func (r *redisRepository) GetRecordsForPlayer(ctx context.Context, input *GetRecordsForPlayerInput) (*GetRecordsForPlayerOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("input and player ID cannot be empty")
	}

	records, err := r.getRecords(ctx, playerRecordsKeyPrefix+input.PlayerID)
	if err != nil {
		return nil, err
	}

	return &GetRecordsForPlayerOutput{
		Records: records,
	}, nil
}

// GetPlayerStats retrieves a player's totals. A player with no records has zero stats.
func (r *redisRepository) GetPlayerStats(ctx context.Context, input *GetPlayerStatsInput) (*GetPlayerStatsOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("input and player ID cannot be empty")
	}

	fields, err := r.client.HGetAll(ctx, playerStatsKeyPrefix+input.PlayerID).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get player stats: %w", err)
	}

	stats := &models.PlayerPlaytimeStats{PlayerID: input.PlayerID}
	for field, target := range map[string]*int64{
		statsSecondsField: &stats.Seconds,
		statsMatchesField: &stats.Matches,
		statsShiftsField:  &stats.Shifts,
	} {
		raw, ok := fields[field]
		if !ok {
			continue
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s for player %s: %w", field, input.PlayerID, err)
		}
		*target = v
	}

	return &GetPlayerStatsOutput{
		Stats: stats,
	}, nil
}

// getRecords loads the records indexed by a sorted set, in score order
func (r *redisRepository) getRecords(ctx context.Context, indexKey string) ([]*models.PlaytimeRecord, error) {
	recordIDs, err := r.client.ZRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get playtime record IDs: %w", err)
	}

	if len(recordIDs) == 0 {
		return []*models.PlaytimeRecord{}, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, 0, len(recordIDs))
	for _, id := range recordIDs {
		cmds = append(cmds, pipe.Get(ctx, recordKeyPrefix+id))
	}

	_, err = pipe.Exec(ctx)
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get playtime records: %w", err)
	}

	records := make([]*models.PlaytimeRecord, 0, len(recordIDs))
	for i, cmd := range cmds {
		recordJSON, err := cmd.Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				// Index entry without a record
				continue
			}
			return nil, fmt.Errorf("failed to get playtime record %s: %w", recordIDs[i], err)
		}

		var record models.PlaytimeRecord
		if err := json.Unmarshal(recordJSON, &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal playtime record %s: %w", recordIDs[i], err)
		}

		records = append(records, &record)
	}

	return records, nil
}
