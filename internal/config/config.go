package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// EnvPrefix префикс переменных окружения, переопределяющих значения из файла
const EnvPrefix = "COURTBOOKING"

var (
	// ErrLoadConfig возвращается, если файл конфигурации не удалось прочитать
	ErrLoadConfig = errors.New("config: failed to load")

	// ErrInvalidConfig возвращается при недопустимых значениях
	ErrInvalidConfig = errors.New("config: invalid value")
)

type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	VenueService VenueServiceConfig `toml:"venue_service"`
	Redis        RedisConfig        `toml:"redis"`
	Events       EventsConfig       `toml:"events"`
	CORS         CORSConfig         `toml:"cors"`
	Pricing      PricingConfig      `toml:"pricing"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, sslMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type VenueServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

type RedisConfig struct {
	Enabled   bool   `toml:"enabled"`
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	CourtTTL  int    `toml:"court_ttl"`
	KeyPrefix string `toml:"key_prefix"`
}

type EventsConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

type PricingConfig struct {
	// DefaultSlotDurationMinutes используется, если площадка не указала длину слота
	DefaultSlotDurationMinutes int `toml:"default_slot_duration_minutes"`
	// MaxSlotsPerBooking ограничивает число слотов в одном бронировании
	MaxSlotsPerBooking int `toml:"max_slots_per_booking"`
	// AdvanceBookingDays насколько вперед можно бронировать
	AdvanceBookingDays int `toml:"advance_booking_days"`
	// Timezone часовой пояс площадок, в котором считаются "сегодня" и прошедшие слоты
	Timezone string `toml:"timezone"`
	// DefaultOpenFrom/DefaultOpenTo сетка слотов для кортов без опубликованных часов работы
	DefaultOpenFrom string `toml:"default_open_from"`
	DefaultOpenTo   string `toml:"default_open_to"`
}

// envOverrides переменные окружения, которые перекрывают значения из файла.
// Указатели позволяют отличить "не задано" от нулевого значения.
type envOverrides struct {
	HTTPPort       *int     `envconfig:"HTTP_PORT"`
	DBHost         *string  `envconfig:"DB_HOST"`
	DBPort         *int     `envconfig:"DB_PORT"`
	DBUser         *string  `envconfig:"DB_USER"`
	DBPassword     *string  `envconfig:"DB_PASSWORD"`
	DBName         *string  `envconfig:"DB_NAME"`
	DBSSLMode      *string  `envconfig:"DB_SSLMODE"`
	LogLevel       *string  `envconfig:"LOG_LEVEL"`
	LogFile        *string  `envconfig:"LOG_FILE"`
	MetricsEnabled *bool    `envconfig:"METRICS_ENABLED"`
	VenueURL       *string  `envconfig:"VENUE_SERVICE_URL"`
	RedisEnabled   *bool    `envconfig:"REDIS_ENABLED"`
	RedisAddr      *string  `envconfig:"REDIS_ADDR"`
	RedisPassword  *string  `envconfig:"REDIS_PASSWORD"`
	EventsEnabled  *bool    `envconfig:"EVENTS_ENABLED"`
	RabbitURL      *string  `envconfig:"RABBIT_URL"`
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS"`
	Timezone       *string  `envconfig:"TIMEZONE"`
}

// Load читает TOML-файл, затем .env (если есть) и переменные окружения COURTBOOKING_*
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
	}

	// .env опционален, отсутствие файла не ошибка
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: .env: %v", ErrLoadConfig, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "court-booking",
		},
		VenueService: VenueServiceConfig{Timeout: 5},
		Redis: RedisConfig{
			Addr:      "localhost:6379",
			CourtTTL:  300,
			KeyPrefix: "court-booking",
		},
		Events: EventsConfig{Exchange: "booking.events"},
		Pricing: PricingConfig{
			DefaultSlotDurationMinutes: domain.DefaultSlotDurationMinutes,
			MaxSlotsPerBooking:         domain.DefaultMaxSlotsPerBooking,
			AdvanceBookingDays:         60,
			Timezone:                   "UTC",
			DefaultOpenFrom:            "06:00",
			DefaultOpenTo:              "23:00",
		},
	}
}

func applyEnv(cfg *Config) error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("%w: env: %v", ErrLoadConfig, err)
	}

	setString(&cfg.Database.Host, env.DBHost)
	setInt(&cfg.Database.Port, env.DBPort)
	setString(&cfg.Database.User, env.DBUser)
	setString(&cfg.Database.Password, env.DBPassword)
	setString(&cfg.Database.DBName, env.DBName)
	setString(&cfg.Database.SSLMode, env.DBSSLMode)
	setInt(&cfg.Server.HTTPPort, env.HTTPPort)
	setString(&cfg.Logs.Level, env.LogLevel)
	setString(&cfg.Logs.File, env.LogFile)
	setBool(&cfg.Metrics.Enabled, env.MetricsEnabled)
	setString(&cfg.VenueService.URL, env.VenueURL)
	setBool(&cfg.Redis.Enabled, env.RedisEnabled)
	setString(&cfg.Redis.Addr, env.RedisAddr)
	setString(&cfg.Redis.Password, env.RedisPassword)
	setBool(&cfg.Events.Enabled, env.EventsEnabled)
	setString(&cfg.Events.URL, env.RabbitURL)
	setString(&cfg.Pricing.Timezone, env.Timezone)
	if len(env.AllowedOrigins) > 0 {
		cfg.CORS.AllowedOrigins = env.AllowedOrigins
	}

	return nil
}

// Validate проверяет обязательные значения
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.VenueService.URL == "" {
		return fmt.Errorf("%w: venue_service.url is required", ErrInvalidConfig)
	}
	if c.Events.Enabled && c.Events.URL == "" {
		return fmt.Errorf("%w: events.url is required when events are enabled", ErrInvalidConfig)
	}
	if c.Pricing.DefaultSlotDurationMinutes <= 0 {
		return fmt.Errorf("%w: pricing.default_slot_duration_minutes must be positive", ErrInvalidConfig)
	}
	if c.Pricing.MaxSlotsPerBooking <= 0 {
		return fmt.Errorf("%w: pricing.max_slots_per_booking must be positive", ErrInvalidConfig)
	}
	if _, err := c.Pricing.Location(); err != nil {
		return err
	}
	if _, _, err := c.Pricing.DefaultHours(); err != nil {
		return err
	}
	return nil
}

// DefaultHours часы работы по умолчанию для построения сетки слотов
func (p PricingConfig) DefaultHours() (types.TimeOfDay, types.TimeOfDay, error) {
	from, err := types.ParseTimeOfDay(p.DefaultOpenFrom)
	if err != nil {
		return types.TimeOfDay{}, types.TimeOfDay{}, fmt.Errorf("%w: pricing.default_open_from: %v", ErrInvalidConfig, err)
	}
	to, err := types.ParseTimeOfDay(p.DefaultOpenTo)
	if err != nil {
		return types.TimeOfDay{}, types.TimeOfDay{}, fmt.Errorf("%w: pricing.default_open_to: %v", ErrInvalidConfig, err)
	}
	if !from.Before(to) {
		return types.TimeOfDay{}, types.TimeOfDay{}, fmt.Errorf("%w: pricing.default_open_from must be before default_open_to", ErrInvalidConfig)
	}
	return from, to, nil
}

// Location часовой пояс площадок
func (p PricingConfig) Location() (*time.Location, error) {
	if p.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: pricing.timezone=%q: %v", ErrInvalidConfig, p.Timezone, err)
	}
	return loc, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
