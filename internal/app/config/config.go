package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/ijalalfrz/airline-booking-service/internal/pkg/airline"
)

type LogLeveler string

func (l LogLeveler) Level() slog.Level {
	var level slog.Level

	_ = level.UnmarshalText([]byte(l))

	return level
}

// Config holds the server configuration.
type Config struct {
	LogLevel  LogLeveler `mapstructure:"LOG_LEVEL"`
	HTTP      HTTP       `mapstructure:",squash"`
	Redis     Redis      `mapstructure:",squash"`
	Dataset   Dataset    `mapstructure:",squash"`
	Booking   Booking    `mapstructure:",squash"`
	Inventory Inventory  `mapstructure:",squash"`
	Kafka     Kafka      `mapstructure:",squash"`
}

type HTTP struct {
	Port    int           `mapstructure:"HTTP_PORT"`
	Timeout time.Duration `mapstructure:"HTTP_TIMEOUT"`
}

type Redis struct {
	Addr     string        `mapstructure:"REDIS_ADDR"`
	Password string        `mapstructure:"REDIS_PASSWORD"`
	DB       int           `mapstructure:"REDIS_DB"`
	Timeout  time.Duration `mapstructure:"REDIS_TIMEOUT"`
}

// Dataset points at the delimited files loaded at startup.
type Dataset struct {
	AirportsFile  string `mapstructure:"DATASET_AIRPORTS_FILE"`
	CustomersFile string `mapstructure:"DATASET_CUSTOMERS_FILE"`
	SegmentsFile  string `mapstructure:"DATASET_SEGMENTS_FILE"`
	TripsFile     string `mapstructure:"DATASET_TRIPS_FILE"`
}

type Booking struct {
	BaseCostPerKm          float64       `mapstructure:"BOOKING_BASE_COST_PER_KM"`
	EconomyCapacity        int           `mapstructure:"BOOKING_ECONOMY_CAPACITY"`
	BusinessCapacity       int           `mapstructure:"BOOKING_BUSINESS_CAPACITY"`
	LockTimeout            time.Duration `mapstructure:"BOOKING_LOCK_TIMEOUT"`
	RateLimitPerMinute     int           `mapstructure:"BOOKING_RATE_LIMIT_PER_MINUTE"`
	ReverseAccrualOnCancel bool          `mapstructure:"BOOKING_REVERSE_ACCRUAL_ON_CANCEL"`
}

func (b Booking) SeatCapacity() map[airline.CabinClass]int {
	return map[airline.CabinClass]int{
		airline.Economy:  b.EconomyCapacity,
		airline.Business: b.BusinessCapacity,
	}
}

type Inventory struct {
	CacheExpiration time.Duration `mapstructure:"INVENTORY_CACHE_EXPIRATION"`
}

type Kafka struct {
	Brokers         string `mapstructure:"KAFKA_BROKERS"`
	TripEventsTopic string `mapstructure:"KAFKA_TRIP_EVENTS_TOPIC"`
}

// BrokerList splits the comma separated broker list. Empty means disabled.
func (k Kafka) BrokerList() []string {
	var brokers []string
	for _, b := range strings.Split(k.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}

	return brokers
}
