package rdx

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"travelbook/logger"
	"travelbook/models"
)

// revField holds the revision floor of a travel's hash. Itinerary ids are
// uuids and never collide with it.
const revField = "_rev"

// fillScript writes an itinerary unless the hash already saw a newer
// revision, and lifts the floor to the revision that was read.
// KEYS[1] hash, ARGV rev, itinerary id, payload, ttl ms.
var fillScript = redis.NewScript(`
local floor = tonumber(redis.call('HGET', KEYS[1], '_rev') or '0')
local rev = tonumber(ARGV[1])
if floor > rev then
	return 0
end
redis.call('HSET', KEYS[1], ARGV[2], ARGV[3], '_rev', ARGV[1])
redis.call('PEXPIRE', KEYS[1], ARGV[4])
return 1
`)

// invalidateScript drops every cached itinerary of the travel and leaves
// only the floor behind, never lowering it.
// KEYS[1] hash, ARGV rev, ttl ms.
var invalidateScript = redis.NewScript(`
local floor = tonumber(redis.call('HGET', KEYS[1], '_rev') or '0')
local rev = tonumber(ARGV[1])
if floor > rev then
	rev = floor
end
redis.call('DEL', KEYS[1])
redis.call('HSET', KEYS[1], '_rev', tostring(rev))
redis.call('PEXPIRE', KEYS[1], ARGV[2])
return rev
`)

// ItineraryCache keeps projected itineraries in one hash per travel, so a
// write to the travel drops every cached itinerary at once.
type ItineraryCache struct {
	conn *redis.Client
	ttl  time.Duration
	log  *logger.Logger
}

func NewItineraryCache(conn *redis.Client, ttl time.Duration, log *logger.Logger) *ItineraryCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ItineraryCache{conn: conn, ttl: ttl, log: log}
}

func subqueryKey(twinID, travelID string) string {
	return "subquery:" + twinID + ":" + travelID
}

// GetItinerary reports a miss on any redis failure; the store is the source
// of truth.
func (c *ItineraryCache) GetItinerary(ctx context.Context, twinID, travelID, itineraryID string) (*models.Itinerary, bool) {
	raw, err := c.conn.HGet(ctx, subqueryKey(twinID, travelID), itineraryID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.log.Warn("itinerary cache read failed", "travelId", travelID, "error", err)
		return nil, false
	}
	var it models.Itinerary
	if err := json.Unmarshal(raw, &it); err != nil {
		c.log.Warn("itinerary cache entry unreadable", "travelId", travelID, "itineraryId", itineraryID, "error", err)
		return nil, false
	}
	return &it, true
}

func (c *ItineraryCache) SetItinerary(ctx context.Context, twinID, travelID string, rev int64, it *models.Itinerary) {
	data, err := json.Marshal(it)
	if err != nil {
		c.log.Warn("itinerary cache encode failed", "itineraryId", it.ID, "error", err)
		return
	}
	stored, err := fillScript.Run(ctx, c.conn, []string{subqueryKey(twinID, travelID)},
		strconv.FormatInt(rev, 10), it.ID, data, c.ttl.Milliseconds()).Int()
	if err != nil {
		c.log.Warn("itinerary cache write failed", "travelId", travelID, "error", err)
		return
	}
	if stored == 0 {
		c.log.Debug("stale itinerary not cached", "travelId", travelID, "itineraryId", it.ID, "revision", rev)
	}
}

func (c *ItineraryCache) InvalidateTravel(ctx context.Context, twinID, travelID string, rev int64) error {
	return invalidateScript.Run(ctx, c.conn, []string{subqueryKey(twinID, travelID)},
		strconv.FormatInt(rev, 10), c.ttl.Milliseconds()).Err()
}
