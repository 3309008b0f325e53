package kafka_config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{EnvKafkaBrokers, EnvBookingEventsTopic, EnvBookingEventsDLQTopic, EnvAuditConsumerGroup} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"localhost:9092"}, cfg.Brokers)
	assert.Equal(t, "booking-events", cfg.EventsTopic)
	assert.Empty(t, cfg.EventsDLQTopic)
	assert.Equal(t, "booking-audit", cfg.AuditGroup)
	assert.Equal(t, -1, cfg.ProducerRequireAcks)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv(EnvKafkaBrokers, " kafka-1:9092, ,kafka-2:9092 ")
	t.Setenv(EnvBookingEventsTopic, "roomly.bookings")
	t.Setenv(EnvBookingEventsDLQTopic, "roomly.bookings.dlq")
	t.Setenv(EnvKafkaConsumerRetryDelay, "2s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Brokers)
	assert.Equal(t, "roomly.bookings", cfg.EventsTopic)
	assert.Equal(t, "roomly.bookings.dlq", cfg.EventsDLQTopic)
	assert.Equal(t, 2*time.Second, cfg.ConsumerRetryDelay)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Brokers:              []string{"localhost:9092"},
			EventsTopic:          "booking-events",
			AuditGroup:           "booking-audit",
			ProducerMaxAttempts:  3,
			ProducerBatchTimeout: 10 * time.Millisecond,
			ProducerRequireAcks:  -1,
			ProducerCompression:  "snappy",
			ConsumerMaxWait:      time.Second,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "no brokers", mutate: func(c *Config) { c.Brokers = nil }, wantErr: "At least one Kafka broker is required"},
		{name: "no topic", mutate: func(c *Config) { c.EventsTopic = "" }, wantErr: "EventsTopic cannot be empty"},
		{name: "dlq equals topic", mutate: func(c *Config) { c.EventsDLQTopic = c.EventsTopic }, wantErr: "EventsDLQTopic must differ"},
		{name: "bad acks", mutate: func(c *Config) { c.ProducerRequireAcks = 2 }, wantErr: "ProducerRequireAcks"},
		{name: "bad compression", mutate: func(c *Config) { c.ProducerCompression = "brotli" }, wantErr: "ProducerCompression"},
		{name: "negative retries", mutate: func(c *Config) { c.ConsumerMaxRetries = -1 }, wantErr: "ConsumerMaxRetries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
