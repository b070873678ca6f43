package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/shenikar/geo_monitoring_pipeline/internal/broker/rabbitmq"
	"github.com/shenikar/geo_monitoring_pipeline/internal/config"
	"github.com/shenikar/geo_monitoring_pipeline/internal/geofence"
	v1 "github.com/shenikar/geo_monitoring_pipeline/internal/handler/http/v1"
	"github.com/shenikar/geo_monitoring_pipeline/internal/ingest"
	"github.com/shenikar/geo_monitoring_pipeline/internal/models"
	"github.com/shenikar/geo_monitoring_pipeline/internal/notify"
	"github.com/shenikar/geo_monitoring_pipeline/internal/repository"
	"github.com/shenikar/geo_monitoring_pipeline/internal/service"
	"github.com/shenikar/geo_monitoring_pipeline/internal/sink"
	"github.com/shenikar/geo_monitoring_pipeline/internal/webhook"
	"github.com/shenikar/geo_monitoring_pipeline/internal/window"
	"github.com/shenikar/geo_monitoring_pipeline/internal/zonecache"
	"github.com/shenikar/geo_monitoring_pipeline/pkg/logger"
	mongoclient "github.com/shenikar/geo_monitoring_pipeline/pkg/mongo"
	mqttclient "github.com/shenikar/geo_monitoring_pipeline/pkg/mqtt"
	"github.com/shenikar/geo_monitoring_pipeline/pkg/postgres"
	amqpclient "github.com/shenikar/geo_monitoring_pipeline/pkg/rabbitmq"
	redisclient "github.com/shenikar/geo_monitoring_pipeline/pkg/redis"

	_ "github.com/shenikar/geo_monitoring_pipeline/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Geo Monitoring Pipeline API
// @version 1.0
// @description Streaming geofence monitoring pipeline API server.
// @host localhost:8080
// @BasePath /api/v1
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

// buildRouting собирает таблицу маршрутизации уведомлений из конфигурации
func buildRouting(cfg *config.Config) (notify.Routing, error) {
	warning, err := notify.ParseRole(cfg.WarningRecipient)
	if err != nil {
		return nil, err
	}
	danger, err := notify.ParseRole(cfg.DangerRecipient)
	if err != nil {
		return nil, err
	}
	return notify.Routing{
		models.RiskWarning: warning,
		models.RiskDanger:  danger,
	}, nil
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel, cfg.LogFormat, "geo-monitoring-pipeline")

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Запуск миграций
	if err := runMigrations(cfg, log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Подключение к PostgreSQL: зоны и журнал аудита
	dbpool, err := postgres.NewPostgresDB(ctx, cfg.DatabaseURL, int32(cfg.DBMaxConns))
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Подключение к MongoDB: live snapshot и outbox уведомлений
	mongoClient, mongoDB, err := mongoclient.Connect(ctx, mongoclient.Config{URI: cfg.MongoURI, Database: cfg.MongoDB})
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()
	log.Info("Successfully connected to MongoDB")

	outboxRepo := repository.NewOutboxRepository(mongoDB)
	if err := outboxRepo.EnsureIndexes(ctx); err != nil {
		log.WithError(err).Warn("Failed to create outbox indexes")
	}
	snapshotRepo := repository.NewSnapshotRepository(mongoDB)

	dependencies := map[string]v1.Pinger{
		"postgres": dbpool.Ping,
		"mongodb": func(ctx context.Context) error {
			return mongoClient.Ping(ctx, nil)
		},
	}

	// Транспорт уведомлений: Redis-очередь вебхуков или RabbitMQ
	var sender notify.Sender
	switch cfg.NotifyTransport {
	case config.TransportRabbitMQ:
		conn, ch, err := amqpclient.Dial(cfg.RabbitMQURL)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer conn.Close()
		defer ch.Close()

		publisher, err := rabbitmq.NewPublisher(ch)
		if err != nil {
			log.Fatalf("Failed to declare RabbitMQ topology: %v", err)
		}
		sender = publisher
		dependencies["rabbitmq"] = func(context.Context) error {
			if conn.IsClosed() {
				return errors.New("amqp connection is closed")
			}
			return nil
		}
		log.Info("Successfully connected to RabbitMQ")
	default:
		redisClient, err := redisclient.NewRedisClient(ctx, redisclient.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		log.Info("Successfully connected to Redis")

		sender = webhook.NewRedisPublisher(redisClient)
		dependencies["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}

		// Воркер доставки вебхуков
		if cfg.WebhookURL != "" {
			webhook.NewWorker(redisClient, log, cfg).Start(ctx)
		} else {
			log.Warn("WEBHOOK_URL is not set, notifications stay in the Redis queue")
		}
	}

	// Компоненты конвейера
	policy, err := geofence.ParsePolicy(cfg.DangerThresholdPolicy)
	if err != nil {
		log.Fatalf("Invalid classification policy: %v", err)
	}
	routing, err := buildRouting(cfg)
	if err != nil {
		log.Fatalf("Invalid notification routing: %v", err)
	}

	cache := zonecache.New(repository.NewZoneRepository(dbpool), cfg.ZoneCacheTTL, cfg.ZoneRefreshTimeout)
	if err := cache.Refresh(ctx); err != nil {
		log.WithError(err).Warn("Initial zone load failed, will retry on the first record")
	} else {
		log.WithField("zones", cache.Len()).Info("Restricted zones loaded")
	}

	notifier, err := notify.NewDispatcher(routing, sender)
	if err != nil {
		log.Fatalf("Failed to create notification dispatcher: %v", err)
	}

	processor := service.NewProcessor(service.Deps{
		Cache:      cache,
		Assigner:   window.NewAssigner(cfg.WindowDuration, cfg.AllowedLateness, window.WithMaxSkew(cfg.MaxClockSkew)),
		Classifier: geofence.NewClassifier(cache, policy),
		Notifier:   notifier,
		Sink: sink.NewFanout(
			repository.NewAuditRepository(dbpool),
			snapshotRepo,
			outboxRepo,
			cfg.SinkWriteTimeout,
		),
		Logger: log,
	})

	// Воркеры конвейера; записи одного субъекта обрабатываются по порядку
	dispatcher := ingest.NewDispatcher(cfg.PipelineWorkers, cfg.PipelineQueueSize, processor, log)
	pipelineDone := make(chan error, 1)
	go func() {
		pipelineDone <- dispatcher.Run(ctx)
	}()

	// Подписка на MQTT восстанавливается при каждом переподключении
	subscriber := ingest.NewSubscriber(cfg.MQTTTopic, processor, dispatcher, log)
	mqttClient, err := mqttclient.Connect(mqttclient.Config{
		Broker:   cfg.MQTTBroker,
		ClientID: cfg.MQTTClientID,
	}, subscriber.OnConnect, log)
	if err != nil {
		log.Fatalf("Failed to connect to MQTT broker: %v", err)
	}
	defer mqttClient.Disconnect(250)
	dependencies["mqtt"] = func(context.Context) error {
		if !mqttClient.IsConnectionOpen() {
			return paho.ErrNotConnected
		}
		return nil
	}

	monitoringService := service.NewMonitoringService(
		processor,
		ingest.NewPublisher(mqttClient, cfg.MQTTTopic),
		snapshotRepo,
		log,
	)

	// Инициализация хэндлеров
	handler := v1.NewHandler(monitoringService, log, dependencies, cfg.MaxClockSkew)

	// Настройка Gin роутера
	router := gin.Default()
	handler.RegisterSystemRoutes(router)
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	// Сначала прекращаем прием сообщений, затем дожидаемся воркеров
	mqttClient.Unsubscribe(cfg.MQTTTopic).WaitTimeout(time.Second)
	cancel()
	select {
	case err := <-pipelineDone:
		if err != nil && !errors.Is(err, context.Canceled) {
			log.WithError(err).Error("Pipeline workers stopped with error")
		}
	case <-shutdownCtx.Done():
		log.Warn("Pipeline workers did not stop in time")
	}

	log.WithField("pending", dispatcher.Pending()).Info("Server gracefully stopped")
}
