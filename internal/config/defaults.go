package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "delivery_db",
}

var defaultRedis = Redis{
	Addr: "",
	DB:   0,
}

var defaultKafka = Kafka{
	Brokers: nil,
	GroupID: "delivery-worker",
	Topic:   "orders.events",
}

var defaultAuth = Auth{
	Secret:     "",
	CookieName: "accessToken",
}

var defaultQR = QR{
	TTL: 5 * time.Minute,
}

var defaultRateLimit = RateLimit{
	Enabled:    false,
	Rate:       50,
	Burst:      100,
	TTL:        10 * time.Minute,
	MaxBuckets: 100_000,
}

// DefaultPort returns the default HTTP port.
func DefaultPort() int { return defaultPort }

// DefaultDB returns the default database settings.
func DefaultDB() DB { return defaultDB }

// DefaultRedis returns the default pub/sub broker settings.
func DefaultRedis() Redis { return defaultRedis }

// DefaultKafka returns the default order-events consumer settings.
func DefaultKafka() Kafka { return defaultKafka }

// DefaultAuth returns the default JWT settings.
func DefaultAuth() Auth { return defaultAuth }

// DefaultQR returns the default QR issuance settings.
func DefaultQR() QR { return defaultQR }

// DefaultRateLimit returns the default rate limit settings.
func DefaultRateLimit() RateLimit { return defaultRateLimit }
