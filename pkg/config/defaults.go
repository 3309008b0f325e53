package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "roomly"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPaginationLimit = 100

	DefaultReportingTimezone  = "Asia/Kolkata"
	DefaultPricingTimezone    = "UTC"
	DefaultCancellationWindow = 2 * time.Hour
	DefaultMaxBookingDuration = 12 * time.Hour

	DefaultLockTTL           = 10 * time.Second
	DefaultLockRetryAttempts = 5
	DefaultLockRetryDelay    = 50 * time.Millisecond

	DefaultKafkaEnabled = false
)

const (
	Confirmed = "CONFIRMED"
	Cancelled = "CANCELLED"
)
