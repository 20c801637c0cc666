package revocation

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	id "kader/pkg/domain"
)

var isRevokedDurationMs = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "kader_is_token_revoked_duration_ms",
	Help:    "Latency of token revocation checks in milliseconds",
	Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
})

// Redis key prefix for per-employee revocation watermarks.
const revokedKeyPrefix = "trl:employee:"

// watermarkLayout is RFC 3339 with a fixed-width 9-digit fraction. Watermarks
// are always UTC, so the encoded strings sort lexicographically in
// chronological order and the store script can compare them without parsing.
const watermarkLayout = "2006-01-02T15:04:05.000000000Z07:00"

// revokeScript writes the watermark only when it moves forward, so a racing
// RevokeAll with an earlier timestamp cannot narrow the revocation window.
var revokeScript = redis.NewScript(`
local current = redis.call('GET', KEYS[1])
if current and current >= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[2])
return 1
`)

// RedisList is the Redis-backed revocation list. This is the recommended
// implementation for distributed deployments where multiple instances need to
// share revocation state.
type RedisList struct {
	client *redis.Client
}

// NewRedisList constructs a Redis-backed revocation list.
func NewRedisList(client *redis.Client) *RedisList {
	return &RedisList{client: client}
}

// RevokeAll stores the revoked-at watermark with TTL. The watermark never
// moves backwards; an existing later watermark keeps its value and TTL,
// matching the in-memory implementation.
func (l *RedisList) RevokeAll(ctx context.Context, employeeID id.EmployeeID, at time.Time, ttl time.Duration) error {
	if err := validateTTL(ttl); err != nil {
		return err
	}
	key := revokedKeyPrefix + employeeID.String()
	return revokeScript.Run(ctx, l.client,
		[]string{key},
		at.UTC().Format(watermarkLayout),
		ttl.Milliseconds(),
	).Err()
}

// IsRevoked compares the token issue time against the stored watermark.
// A missing key means not revoked (or the watermark expired together with the
// tokens it covered).
func (l *RedisList) IsRevoked(ctx context.Context, employeeID id.EmployeeID, issuedAt time.Time) (bool, error) {
	start := time.Now()
	defer func() {
		isRevokedDurationMs.Observe(float64(time.Since(start).Microseconds()) / 1000.0)
	}()

	key := revokedKeyPrefix + employeeID.String()
	raw, err := l.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	watermark, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		// A corrupt watermark fails closed rather than letting tokens through.
		return true, nil
	}
	return !issuedAt.After(watermark), nil
}
