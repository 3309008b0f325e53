package main

import (
	_ "time/tzdata"

	analyticshandler "roomly/internal/analytics/handler"
	analyticsrepository "roomly/internal/analytics/repository"
	analyticsservice "roomly/internal/analytics/service"
	"roomly/internal/bookings/events"
	"roomly/internal/bookings/handler"
	"roomly/internal/bookings/repository"
	"roomly/internal/bookings/service"
	"roomly/internal/bookings/validator"
	roomshandler "roomly/internal/rooms/handler"
	roomsrepository "roomly/internal/rooms/repository"
	roomsservice "roomly/internal/rooms/service"
	"roomly/pkg/app"
	"roomly/pkg/clock"
	"roomly/pkg/config"
	"roomly/pkg/kafka"
	kafka_config "roomly/pkg/kafka/config"
	kafka_middleware "roomly/pkg/kafka/middleware"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Bookings service")

	roomRepo := roomsrepository.NewMongoRoomRepository(cfg)
	bookingService := initBookingService(cfg, roomRepo, initPublisher(cfg))
	roomService := roomsservice.NewRoomService(roomRepo, cfg)
	analyticsService := analyticsservice.NewAnalyticsService(analyticsrepository.NewMongoAnalyticsRepository(cfg), cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		roomshandler.NewRoomHandler(roomService, cfg.Log),
		handler.NewBookingHandler(bookingService, cfg.Log, cfg.ReportingLocation),
		analyticshandler.NewAnalyticsHandler(analyticsService, cfg.Log),
	)
	serverApp.Run()
}

func initBookingService(cfg *config.Config, roomRepo roomsrepository.RoomRepository, publisher events.Publisher) service.BookingService {
	bookingService := service.NewBookingService(
		repository.NewMongoBookingRepository(cfg),
		repository.NewMongoBookingLockRepository(cfg),
		roomRepo,
		validator.NewBookingValidator(cfg.Log, cfg.MaxBookingDuration),
		publisher,
		clock.System{},
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService
}

func initPublisher(cfg *config.Config) events.Publisher {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka disabled, booking events will not be published")
		return events.NoopPublisher{}
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.Log, kafkaCfg.EventsTopic, kafkaCfg.EventsDLQTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	}
	cfg.Client.Register("kafka-producer", producer)

	cfg.Log.Info("Booking events enabled", "topic", producer.Topic())
	return events.NewKafkaPublisher(producer, clock.System{})
}
