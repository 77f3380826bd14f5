package cache

import (
	"fmt"

	redis "github.com/redis/go-redis/v9"
)

// key names definition
const (
	SessionFreeSeatsKey = "session:%d:seats:free"  // remaining free seats of a session, '%d' is session id
	SessionSeatMapKey   = "session:%d:seats:map"   // cached seat map of a session's room
	SessionSalesKey     = "session:%d:sales:count" // tickets sold for a session, maintained by the events consumer
)

func MakeSessionFreeSeatsKey(sessionID uint) string {
	return fmt.Sprintf(SessionFreeSeatsKey, sessionID)
}

func MakeSessionSeatMapKey(sessionID uint) string {
	return fmt.Sprintf(SessionSeatMapKey, sessionID)
}

func MakeSessionSalesKey(sessionID uint) string {
	return fmt.Sprintf(SessionSalesKey, sessionID)
}

// initFreeSeatsScript seeds the free-seat counters for every session
// in one round trip.
var initFreeSeatsScript = redis.NewScript(`
-- ARGV: key1 value1 key2 value2 ...
for i = 1, #ARGV, 2 do
    local key = ARGV[i]
    local value = tonumber(ARGV[i + 1])
    redis.call("SET", key, value)
end
return #ARGV / 2
`)
