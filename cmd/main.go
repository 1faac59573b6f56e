package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/go-redis/redis_rate/v10"
	"github.com/ijalalfrz/airline-booking-service/internal/app/config"
	"github.com/ijalalfrz/airline-booking-service/internal/app/dto"
	"github.com/ijalalfrz/airline-booking-service/internal/app/endpoints"
	"github.com/ijalalfrz/airline-booking-service/internal/app/service"
	"github.com/ijalalfrz/airline-booking-service/internal/app/transport"
	"github.com/ijalalfrz/airline-booking-service/internal/pkg/airline"
	"github.com/ijalalfrz/airline-booking-service/internal/pkg/event"
	"github.com/ijalalfrz/airline-booking-service/internal/pkg/inventory"
	"github.com/ijalalfrz/airline-booking-service/internal/pkg/loader"
	"github.com/ijalalfrz/airline-booking-service/internal/pkg/logger"
	"github.com/redis/go-redis/v9"
)

type publisher interface {
	service.EventPublisher
	Close() error
}

// @title           Airline Booking Service API
// @version         0.0.1
// @description     airline-booking-service
// @host      localhost:8080
// @BasePath  /
// @license.name Rizal Alfarizi
// @license.url https://github.com/ijalalfrz
func main() {
	cfg := config.MustInitConfig(".env")
	logger.InitStructuredLogger(cfg.LogLevel)

	slog.Debug("config loaded successfully", slog.Any("config", cfg))
	runApp(cfg)
}

func runApp(cfg config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	slog.InfoContext(ctx, "starting...", slog.String("log_level", string(cfg.LogLevel)))

	// init validator
	if err := dto.InitValidator(); err != nil {
		slog.ErrorContext(ctx, "failed to init validator", slog.String("error", err.Error()))
		panic(err)
	}

	dataset, err := loadDataset(ctx, &cfg)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load dataset", slog.String("error", err.Error()))
		os.Exit(1)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		ReadTimeout:  cfg.Redis.Timeout,
		WriteTimeout: cfg.Redis.Timeout,
	})
	defer redisClient.Close()

	tripEvents := initPublisher(&cfg)
	defer func() {
		if err := tripEvents.Close(); err != nil {
			slog.ErrorContext(ctx, "failed to close event publisher", slog.String("error", err.Error()))
		}
	}()

	endpts := makeEndpoints(&cfg, dataset, redisClient, tripEvents)

	var waitGroup sync.WaitGroup
	// Starts the server in a go routine
	waitGroup.Add(1)
	go func() {
		defer waitGroup.Done()
		startHTTPServer(ctx, cfg, endpts)
	}()

	sigChannel := make(chan os.Signal, 1)
	signal.Notify(sigChannel, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case sig := <-sigChannel:
		cancel()
		slog.InfoContext(ctx, "received OS signal. Exiting...", slog.String("signal", sig.String()))
	case <-ctx.Done():
		slog.ErrorContext(ctx, "failed to start HTTP server")
	}

	waitGroup.Wait()
	slog.InfoContext(ctx, "All service closed...")
}

func startHTTPServer(ctx context.Context, cfg config.Config, endpts endpoints.Endpoints) {
	router := transport.MakeHTTPRouter(endpts)
	server := &http.Server{
		Handler:      router,
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		WriteTimeout: cfg.HTTP.Timeout,
		ReadTimeout:  cfg.HTTP.Timeout,
	}

	slog.Info("running HTTP server...", slog.Int("port", cfg.HTTP.Port))

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "failed to start HTTP server", slog.String("error", err.Error()))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.Timeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(ctx, "failed to shutdown HTTP server", slog.String("error", err.Error()))
	}

	slog.InfoContext(ctx, "HTTP server shutdown gracefully")
}

func loadDataset(ctx context.Context, cfg *config.Config) (*loader.Dataset, error) {
	opts := loader.Options{
		BaseCostPerKm: cfg.Booking.BaseCostPerKm,
		SeatCapacity:  cfg.Booking.SeatCapacity(),
	}
	if cfg.Booking.ReverseAccrualOnCancel {
		opts.CustomerOptions = append(opts.CustomerOptions, airline.WithAccrualReversal())
	}

	return loader.LoadFiles(ctx, loader.Files{
		Airports:  cfg.Dataset.AirportsFile,
		Customers: cfg.Dataset.CustomersFile,
		Segments:  cfg.Dataset.SegmentsFile,
		Trips:     cfg.Dataset.TripsFile,
	}, opts)
}

// trip events are only published when brokers are configured
func initPublisher(cfg *config.Config) publisher {
	brokers := cfg.Kafka.BrokerList()
	if len(brokers) == 0 {
		slog.Info("kafka brokers not configured, trip events disabled")
		return event.NopPublisher{}
	}

	return event.NewProducer(brokers, cfg.Kafka.TripEventsTopic)
}

func makeEndpoints(cfg *config.Config, dataset *loader.Dataset,
	redisClient *redis.Client, tripEvents publisher) endpoints.Endpoints {
	return endpoints.Endpoints{
		BookingEndpoint: makeBookingEndpoint(cfg, dataset, redisClient, tripEvents),
	}
}

func makeBookingEndpoint(cfg *config.Config, dataset *loader.Dataset,
	redisClient *redis.Client, tripEvents publisher) endpoints.BookingEndpoint {

	// cache
	inventoryCache := inventory.NewCache(redisClient)

	// rate limiter
	limiter := inventory.NewRateLimiter(redis_rate.NewLimiter(redisClient), cfg.Booking.RateLimitPerMinute)

	// service
	bookingService := service.NewBookingService(dataset, inventoryCache, limiter, tripEvents,
		cfg.Booking.LockTimeout, cfg.Inventory.CacheExpiration)

	// endpoint
	return endpoints.MakeBookingEndpoint(bookingService)
}
