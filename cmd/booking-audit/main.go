package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"roomly/internal/audit/handler"
	"roomly/internal/audit/repository"
	"roomly/pkg/config"
	"roomly/pkg/kafka"
	kafka_config "roomly/pkg/kafka/config"
	kafka_middleware "roomly/pkg/kafka/middleware"
)

const ServiceName = "booking-audit"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	eventHandler := handler.NewEventHandler(repository.NewMongoEventRepository(cfg), cfg.Log)
	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		cfg.Log,
		kafkaCfg.EventsTopic,
		kafkaCfg.AuditGroup,
		kafkaCfg.EventsDLQTopic,
		eventHandler.Handle,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	if kafkaCfg.EnableMiddleware {
		consumer.Use(kafka_middleware.LoggingConsumerMiddleware(cfg.Log))
	}
	cfg.Client.Register("kafka-consumer", consumer)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg.Log.Info("Starting booking audit consumer",
		"topic", kafkaCfg.EventsTopic,
		"group", kafkaCfg.AuditGroup,
	)
	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Booking audit consumer stopped", "error", err)
		return
	}
	cfg.Log.Info("Booking audit consumer stopped")
}
