package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	AppEnv   string
	LogLevel string
	HTTPPort int

	DatabaseURL string

	SessionSecret string
	SessionTTL    time.Duration

	AdminEmail    string
	AdminPassword string

	TelegramBotToken string
	TelegramChatID   string
	TelegramAPIURL   string

	KafkaBrokers []string
	KafkaTopic   string

	StoreTimeout  time.Duration
	NotifyTimeout time.Duration

	CartIdleTTL time.Duration

	DeliveryFreeThreshold decimal.Decimal
	DeliveryFlatFee       decimal.Decimal
}

// Load reads an optional .env file from the working directory and then the process environment.
// Variables already set in the environment win over .env entries.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("godotenv.Load: %w", err)
	}

	return FromEnv()
}

func FromEnv() (Config, error) {
	p := &parser{}

	cfg := Config{
		AppEnv:   getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		HTTPPort: p.int("HTTP_PORT", 8080),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionTTL:    p.duration("SESSION_TTL", 24*time.Hour),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:   os.Getenv("TELEGRAM_CHAT_ID"),
		TelegramAPIURL:   getEnv("TELEGRAM_API_URL", "https://api.telegram.org"),

		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "nutshop.orders"),

		StoreTimeout:  p.duration("STORE_TIMEOUT", 5*time.Second),
		NotifyTimeout: p.duration("NOTIFY_TIMEOUT", 5*time.Second),

		CartIdleTTL: p.duration("CART_IDLE_TTL", 2*time.Hour),

		DeliveryFreeThreshold: p.decimal("DELIVERY_FREE_THRESHOLD", decimal.NewFromInt(500)),
		DeliveryFlatFee:       p.decimal("DELIVERY_FLAT_FEE", decimal.NewFromInt(50)),
	}

	if err := errors.Join(p.errs...); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate reports settings the shop cannot start without.
func (c Config) Validate() error {
	var errs []error

	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is not set"))
	}
	if len(c.SessionSecret) < 16 {
		errs = append(errs, errors.New("SESSION_SECRET must be at least 16 bytes"))
	}
	if c.DeliveryFlatFee.IsNegative() || c.DeliveryFreeThreshold.IsNegative() {
		errs = append(errs, errors.New("delivery policy amounts must not be negative"))
	}

	return errors.Join(errs...)
}

// Warnings reports settings the shop can start without but cannot fully work without.
func (c Config) Warnings() []error {
	var errs []error

	if c.TelegramBotToken == "" {
		errs = append(errs, errors.New("TELEGRAM_BOT_TOKEN is not set"))
	}
	if c.TelegramChatID == "" {
		errs = append(errs, errors.New("TELEGRAM_CHAT_ID is not set"))
	}

	return errs
}

func (c Config) TelegramEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != ""
}

func (c Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

type parser struct {
	errs []error
}

func (p *parser) int(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}

	return n
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	if d <= 0 {
		p.errs = append(p.errs, fmt.Errorf("%s: must be positive", key))
		return def
	}

	return d
}

func (p *parser) decimal(key string, def decimal.Decimal) decimal.Decimal {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	d, err := decimal.NewFromString(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}

	return d
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
