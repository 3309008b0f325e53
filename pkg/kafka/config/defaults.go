package kafka_config

import "time"

const (
	DefaultKafkaBrokers = "localhost:9092"

	DefaultBookingEventsTopic    = "booking-events"
	DefaultBookingEventsDLQTopic = ""
	DefaultAuditConsumerGroup    = "booking-audit"

	DefaultProducerMaxAttempts  = 3
	DefaultProducerBatchTimeout = 10 * time.Millisecond
	DefaultProducerRequireAcks  = -1
	DefaultProducerCompression  = "snappy"

	DefaultConsumerMaxWait    = 500 * time.Millisecond
	DefaultConsumerMaxRetries = 3
	DefaultConsumerRetryDelay = 500 * time.Millisecond

	DefaultEnableMiddleware = true
)
