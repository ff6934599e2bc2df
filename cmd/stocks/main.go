package main

import (
	"context"

	"library/internal/stocks/cache"
	"library/internal/stocks/calendar"
	"library/internal/stocks/events"
	"library/internal/stocks/handler"
	"library/internal/stocks/repository"
	"library/internal/stocks/service"
	"library/internal/stocks/validator"
	"library/pkg/app"
	"library/pkg/config"
	"library/pkg/kafka"
	kafka_config "library/pkg/kafka/config"
	kafka_middleware "library/pkg/kafka/middleware"
)

const ServiceName = "stocks"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetStore()
	cfg.SetRedis()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Stocks service")
	serverApp := app.NewApplication(cfg)

	publisher := initPublisher(cfg, serverApp)
	stockService := initServices(cfg, publisher)

	serverApp.SetApp(
		handler.NewHealthHandler(cfg.Client, cfg.Log),
		handler.NewStockHandler(stockService, cfg.CalendarLocation, cfg.Log),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config, publisher events.Publisher) service.StockService {
	formatter, err := calendar.NewFormatter(cfg.CalendarLocale, cfg.CalendarLocation)
	if err != nil {
		cfg.Log.Fatal("Invalid calendar settings", "error", err)
	}

	calendarCache := cache.NewNoopCalendarCache()
	if cfg.Client.Redis != nil {
		calendarCache = cache.NewRedisCalendarCache(cfg.Client.Redis, cfg.CalendarCacheTTL)
	}

	stockService := service.NewStockService(
		repository.NewStockRepository(cfg),
		repository.NewBookRepository(cfg),
		validator.NewStockValidator(),
		formatter,
		calendarCache,
		publisher,
		cfg,
	)

	cfg.Log.Info("Stock service initialized",
		"storage_driver", cfg.StorageDriver,
		"calendar_cache", cfg.Client.Redis != nil,
	)
	return stockService
}

func initPublisher(cfg *config.Config, serverApp *app.Application) events.Publisher {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka disabled, stock events will not be published")
		return events.NewNoopPublisher()
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.KafkaStockTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	}
	serverApp.OnShutdown(func(context.Context) error {
		return producer.Close()
	})

	return events.NewKafkaPublisher(producer, ServiceName)
}
