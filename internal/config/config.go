package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config stores delivery service settings.
type Config struct {
	Port      int
	DB        DB
	Redis     Redis
	Kafka     Kafka
	Auth      Auth
	QR        QR
	RateLimit RateLimit
	Pprof     Pprof
}

// DB stores Postgres connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN renders the connection string for pgx.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Pass, d.Host, d.Port, d.Name)
}

// Redis stores pub/sub broker settings. An empty Addr disables the
// realtime fan-out (a nop broadcaster is wired instead).
type Redis struct {
	Addr     string
	Password string
	DB       int
}

// Kafka stores order-events consumer settings. Empty brokers disable the
// worker consumer.
type Kafka struct {
	Brokers []string
	GroupID string
	Topic   string
}

// Auth stores JWT verification settings.
type Auth struct {
	Secret     string
	CookieName string
}

// QR stores token issuance settings.
type QR struct {
	TTL time.Duration
}

// RateLimit stores per-IP token bucket settings.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// Pprof stores debug server settings. An empty Addr disables it.
type Pprof struct {
	Addr string
	User string
	Pass string
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:      DefaultPort(),
		DB:        DefaultDB(),
		Redis:     DefaultRedis(),
		Kafka:     DefaultKafka(),
		Auth:      DefaultAuth(),
		QR:        DefaultQR(),
		RateLimit: DefaultRateLimit(),
	}

	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = p
	}

	readEnvString(&cfg.DB.Host, "POSTGRES_HOST")
	readEnvString(&cfg.DB.User, "POSTGRES_USER")
	readEnvString(&cfg.DB.Pass, "POSTGRES_PASSWORD")
	readEnvString(&cfg.DB.Name, "POSTGRES_DB")
	if v := os.Getenv("POSTGRES_PORT"); v != "" {
		if _, err := strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("invalid POSTGRES_PORT %q: %w", v, err)
		}
		cfg.DB.Port = v
	}

	readEnvString(&cfg.Redis.Addr, "REDIS_ADDR")
	readEnvString(&cfg.Redis.Password, "REDIS_PASSWORD")
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB %q: %w", v, err)
		}
		cfg.Redis.DB = n
	}

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = splitCSV(v)
	}
	readEnvString(&cfg.Kafka.GroupID, "KAFKA_GROUP_ID")
	readEnvString(&cfg.Kafka.Topic, "KAFKA_ORDERS_TOPIC")

	readEnvString(&cfg.Auth.Secret, "JWT_SECRET")
	readEnvString(&cfg.Auth.CookieName, "JWT_COOKIE")

	if v := os.Getenv("QR_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid QR_TTL %q: %w", v, err)
		}
		cfg.QR.TTL = d
	}

	if v := os.Getenv("RATE_LIMIT_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_ENABLED %q: %w", v, err)
		}
		cfg.RateLimit.Enabled = b
	}
	if v := os.Getenv("RATE_LIMIT_RATE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_RATE %q: %w", v, err)
		}
		cfg.RateLimit.Rate = f
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_BURST %q: %w", v, err)
		}
		cfg.RateLimit.Burst = n
	}

	readEnvString(&cfg.Pprof.Addr, "PPROF_ADDR")
	readEnvString(&cfg.Pprof.User, "PPROF_USER")
	readEnvString(&cfg.Pprof.Pass, "PPROF_PASS")

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	pflag.Parse()

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if cfg.QR.TTL <= 0 {
		return nil, fmt.Errorf("invalid qr ttl: %s", cfg.QR.TTL)
	}
	return cfg, nil
}

func readEnvString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
