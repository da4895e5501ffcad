package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/karlmarxlive/artchaos-bot/internal/identity"
	cleanenvport "github.com/wb-go/wbf/config/cleanenv-port"
	"github.com/wb-go/wbf/logger"
	"github.com/wb-go/wbf/retry"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"    validate:"required"`
	Logger    LoggerConfig    `yaml:"logger"    validate:"required"`
	Gin       GinConfig       `yaml:"gin"       validate:"required"`
	Storage   StorageConfig   `yaml:"storage"   validate:"required"`
	Postgres  PostgresConfig  `yaml:"postgres"  validate:"required"`
	Scheduler SchedulerConfig `yaml:"scheduler" validate:"required"`
	Telegram  TelegramConfig  `yaml:"telegram"`
	Studio    StudioConfig    `yaml:"studio"    validate:"required"`
	Admin     AdminConfig     `yaml:"admin"`
	RabbitMQ  RabbitMQConfig  `yaml:"rabbitmq"`
}

type ServerConfig struct {
	Addr         string        `yaml:"addr"          env:"SERVER_ADDR"          env-default:":8080" validate:"required"`
	ReadTimeout  time.Duration `yaml:"read_timeout"  env:"SERVER_READ_TIMEOUT"  env-default:"10s"   validate:"gt=0"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" env-default:"10s"   validate:"gt=0"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"  env:"SERVER_IDLE_TIMEOUT"  env-default:"60s"   validate:"gt=0"`
}

// LogLevel преобразует строковый уровень в logger.Level из wbf.
func (c LoggerConfig) LogLevel() logger.Level {
	switch c.Level {
	case "debug":
		return logger.DebugLevel
	case "warn":
		return logger.WarnLevel
	case "error":
		return logger.ErrorLevel
	default:
		return logger.InfoLevel
	}
}

// LogEngine преобразует строковый движок в logger.Engine из wbf.
func (c LoggerConfig) LogEngine() logger.Engine {
	return logger.Engine(c.Engine)
}

type LoggerConfig struct {
	Engine string `yaml:"engine" env:"LOG_ENGINE" env-default:"slog"  validate:"required,oneof=slog zap zerolog logrus"`
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"  validate:"required,oneof=debug info warn error"`
}

type GinConfig struct {
	Mode string `yaml:"mode" env:"GIN_MODE" env-default:"debug" validate:"required,oneof=debug release test"`
}

type StorageConfig struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"postgres" validate:"required,oneof=postgres memory"`
}

type PostgresConfig struct {
	Host            string        `yaml:"host"              env:"DB_HOST"              env-default:"localhost"    validate:"required"`
	Port            int           `yaml:"port"              env:"DB_PORT"              env-default:"5432"         validate:"required,min=1,max=65535"`
	User            string        `yaml:"user"              env:"DB_USER"              env-default:"postgres"     validate:"required"`
	Password        string        `yaml:"password"          env:"DB_PASSWORD"          env-default:"postgres"     validate:"required"`
	Database        string        `yaml:"database"          env:"DB_NAME"              env-default:"artchaos"     validate:"required"`
	SSLMode         string        `yaml:"sslmode"           env:"DB_SSLMODE"           env-default:"disable"      validate:"required,oneof=disable require verify-ca verify-full"`
	MaxOpenConns    int           `yaml:"max_open_conns"    env:"DB_MAX_OPEN_CONNS"    env-default:"10"           validate:"min=1"`
	MaxIdleConns    int           `yaml:"max_idle_conns"    env:"DB_MAX_IDLE_CONNS"    env-default:"5"            validate:"min=1"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME" env-default:"5m"           validate:"gt=0"`
}

func (p *PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type SchedulerConfig struct {
	Interval     time.Duration `yaml:"interval"      env:"SCHEDULER_INTERVAL"      env-default:"30s"    validate:"required,gt=0"`
	LeadTimes    string        `yaml:"lead_times"    env:"REMINDER_LEAD_TIMES"     env-default:"24h,1h" validate:"required"`
	SendTimeout  time.Duration `yaml:"send_timeout"  env:"REMINDER_SEND_TIMEOUT"   env-default:"10s"    validate:"gt=0"`
	MaxAttempts  int           `yaml:"max_attempts"  env:"REMINDER_MAX_ATTEMPTS"   env-default:"3"      validate:"min=1"`
	RetryDelay   time.Duration `yaml:"retry_delay"   env:"REMINDER_RETRY_DELAY"    env-default:"2s"     validate:"gt=0"`
	RetryBackoff float64       `yaml:"retry_backoff" env:"REMINDER_RETRY_BACKOFF"  env-default:"2"      validate:"gte=1"`
}

// Leads parses LeadTimes, e.g. "24h,1h". Duplicates are dropped and the
// result is ordered largest first.
func (s SchedulerConfig) Leads() ([]time.Duration, error) {
	seen := make(map[time.Duration]struct{})
	var leads []time.Duration

	for _, part := range strings.Split(s.LeadTimes, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := time.ParseDuration(part)
		if err != nil {
			return nil, fmt.Errorf("invalid lead time %q: %w", part, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("lead time %q must be positive", part)
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		leads = append(leads, d)
	}

	if len(leads) == 0 {
		return nil, fmt.Errorf("no reminder lead times configured")
	}

	sort.Slice(leads, func(i, j int) bool { return leads[i] > leads[j] })
	return leads, nil
}

func (s SchedulerConfig) RetryStrategy() retry.Strategy {
	return retry.Strategy{
		Attempts: s.MaxAttempts,
		Delay:    s.RetryDelay,
		Backoff:  s.RetryBackoff,
	}
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token" env:"TELEGRAM_BOT_TOKEN" env-default:""`
	// Polling turns on the interactive bot. Without it the token is used
	// for outgoing notifications only.
	Polling bool `yaml:"polling" env:"TELEGRAM_POLLING" env-default:"true"`
}

type StudioConfig struct {
	Timezone        string        `yaml:"timezone"         env:"STUDIO_TIMEZONE"         env-default:"Europe/Moscow" validate:"required"`
	TimeSlots       string        `yaml:"time_slots"       env:"STUDIO_TIME_SLOTS"       env-default:"10:00,11:00,12:00,13:00,14:00,15:00,16:00,17:00,18:00,19:00,20:00,21:00"`
	Durations       string        `yaml:"durations"        env:"STUDIO_DURATIONS"        env-default:"2h"`
	BookingDays     int           `yaml:"booking_days"     env:"STUDIO_BOOKING_DAYS"     env-default:"7"  validate:"min=1,max=60"`
	ConversationTTL time.Duration `yaml:"conversation_ttl" env:"STUDIO_CONVERSATION_TTL" env-default:"30m"`
}

func (s StudioConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", s.Timezone, err)
	}
	return loc, nil
}

// Slots returns the start times offered by the bot, earliest first.
func (s StudioConfig) Slots() ([]string, error) {
	var slots []string
	for _, part := range strings.Split(s.TimeSlots, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		t, err := time.Parse("15:04", part)
		if err != nil {
			return nil, fmt.Errorf("invalid time slot %q: %w", part, err)
		}
		slots = append(slots, t.Format("15:04"))
	}

	if len(slots) == 0 {
		return nil, fmt.Errorf("no time slots configured")
	}

	sort.Strings(slots)
	return slots, nil
}

func (s StudioConfig) BookingDurations() ([]time.Duration, error) {
	var res []time.Duration
	for _, part := range strings.Split(s.Durations, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := time.ParseDuration(part)
		if err != nil {
			return nil, fmt.Errorf("invalid booking duration %q: %w", part, err)
		}
		if d < time.Minute || d%time.Minute != 0 {
			return nil, fmt.Errorf("booking duration %q must be a whole number of minutes", part)
		}
		res = append(res, d)
	}

	if len(res) == 0 {
		return nil, fmt.Errorf("no booking durations configured")
	}
	return res, nil
}

type AdminConfig struct {
	IDs string `yaml:"ids" env:"ADMIN_IDS" env-default:""`
}

func (a AdminConfig) AdminIDs() ([]int64, error) {
	return identity.ParseIDs(a.IDs)
}

// RabbitMQConfig with an empty URL disables event publishing.
type RabbitMQConfig struct {
	URL      string `yaml:"url"      env:"RABBITMQ_URL"      env-default:""`
	Exchange string `yaml:"exchange" env:"RABBITMQ_EXCHANGE" env-default:"artchaos.events"`
}

// Validate checks the values that tags cannot express.
func (c *Config) Validate() error {
	if _, err := c.Scheduler.Leads(); err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}
	if _, err := c.Studio.Location(); err != nil {
		return fmt.Errorf("studio: %w", err)
	}
	if _, err := c.Studio.Slots(); err != nil {
		return fmt.Errorf("studio: %w", err)
	}
	if _, err := c.Studio.BookingDurations(); err != nil {
		return fmt.Errorf("studio: %w", err)
	}
	if _, err := c.Admin.AdminIDs(); err != nil {
		return fmt.Errorf("admin: %w", err)
	}
	if c.RabbitMQ.URL != "" && c.RabbitMQ.Exchange == "" {
		return fmt.Errorf("rabbitmq: exchange is required when url is set")
	}
	return nil
}

func MustLoad() *Config {
	var cfg Config
	if err := cleanenvport.Load(&cfg); err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("invalid config: %v", err))
	}
	return &cfg
}
