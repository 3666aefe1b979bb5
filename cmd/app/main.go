package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ordersim/cmd"
	"ordersim/internal/adapters/out/postgres/orderrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := godotenv.Load(".env"); err != nil {
		logger.Info("no .env file found, reading configuration from environment")
	}

	config, err := getConfig()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	gormDB, err := connectDB(config)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	root, err := cmd.NewCompositionRoot(config, gormDB, logger)
	if err != nil {
		logger.Error("composition failed", "error", err)
		os.Exit(1)
	}
	defer root.Close()

	sweepJob := root.CreateStatusSweepJob(config)
	if err = sweepJob.Start(); err != nil {
		logger.Error("status sweep start failed", "error", err)
		os.Exit(1)
	}

	e := echo.New()
	e.HideBanner = true
	root.CreateHTTPServer(sweepJob).RegisterRoutes(e)

	go func() {
		if serveErr := e.Start("0.0.0.0:" + config.HTTPPort); serveErr != nil &&
			!errors.Is(serveErr, http.ErrServerClosed) {
			logger.Error("http server stopped", "error", serveErr)
			os.Exit(1)
		}
	}()
	logger.Info("order simulator started", "port", config.HTTPPort, "sweep_period", config.SweepPeriod.String())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	sweepJob.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", "error", err)
	}
}

func getConfig() (cmd.Config, error) {
	sweepPeriod, err := envDuration("SWEEP_PERIOD", 30*time.Second)
	if err != nil {
		return cmd.Config{}, err
	}
	updateInterval, err := envDuration("STATUS_UPDATE_INTERVAL", time.Minute)
	if err != nil {
		return cmd.Config{}, err
	}
	deliveryLead, err := envDuration("DELIVERY_LEAD", 3*time.Minute)
	if err != nil {
		return cmd.Config{}, err
	}

	return cmd.Config{
		HTTPPort:            envOr("HTTP_PORT", "8080"),
		DBHost:              envOr("DB_HOST", "localhost"),
		DBPort:              envOr("DB_PORT", "5432"),
		DBUser:              envOr("DB_USER", "postgres"),
		DBPassword:          envOr("DB_PASSWORD", "postgres"),
		DBName:              envOr("DB_NAME", "ordersim"),
		DBSslMode:           envOr("DB_SSLMODE", "disable"),
		SweepPeriod:         sweepPeriod,
		UpdateInterval:      updateInterval,
		DeliveryLead:        deliveryLead,
		Stores:              os.Getenv("STORES"),
		KafkaBrokers:        os.Getenv("KAFKA_BROKERS"),
		KafkaInventoryTopic: envOr("KAFKA_INVENTORY_TOPIC", "inventory.order.completed"),
	}, nil
}

func connectDB(config cmd.Config) (*gorm.DB, error) {
	// TranslateError maps unique violations onto gorm.ErrDuplicatedKey,
	// which the order repository relies on.
	gormDB, err := gorm.Open(postgresdriver.Open(config.PostgresDSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err = gormDB.AutoMigrate(&orderrepo.OrderDTO{}); err != nil {
		return nil, err
	}
	return gormDB, nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}

	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}
