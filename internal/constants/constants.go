package constants

import "time"

// CircuitBreakerConfig holds the breaker tuning for the vision-model boundary.
var CircuitBreakerConfig = struct {
	FailureThreshold    int
	ResetTimeout        time.Duration
	RateLimitTimeout    time.Duration
	HealthCheckInterval time.Duration
}{
	FailureThreshold:    3,
	ResetTimeout:        5 * time.Minute,
	RateLimitTimeout:    15 * time.Minute,
	HealthCheckInterval: 2 * time.Minute,
}

// Cache key prefixes
const (
	CacheKeyClassification = "inkmatch:classification:"
	CacheKeyArtist         = "inkmatch:artist:"
)

// Vision annotation request bounds
const (
	MaxAnnotationLabels = 10
	MaxAnnotationColors = 8
)

// MaxUploadBytes caps multipart uploads (10 MiB).
const MaxUploadBytes = 10 << 20
