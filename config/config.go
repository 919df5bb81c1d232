package config

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

// CheckoutTopic carries checkout_link_issued events from storefront-svc to stats-svc.
const CheckoutTopic = "checkout-events"

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetDuration reads a Go duration such as "72h"; unparsable values fall back to
// defaultValue.
func GetDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid %s=%q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}

func GetInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid %s=%q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

// DefaultStoreTimezone is where the storefront's restaurants are.
const DefaultStoreTimezone = "America/Argentina/Cordoba"

// GetLocation loads the IANA zone named by key. An unknown name logs and
// falls back to UTC.
func GetLocation(key, defaultValue string) *time.Location {
	name := GetEnv(key, defaultValue)
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Invalid %s=%q, using UTC", key, name)
		return time.UTC
	}
	return loc
}

func PostgresEnabled() bool { return os.Getenv("DB_HOST") != "" }
func RedisEnabled() bool    { return os.Getenv("REDIS_HOST") != "" }
func KafkaEnabled() bool    { return os.Getenv("KAFKA_BROKER") != "" }

func PostgresDSN() string {
	return "host=" + os.Getenv("DB_HOST") + " port=" + GetEnv("DB_PORT", "5432") +
		" user=" + os.Getenv("DB_USER") + " password=" + os.Getenv("DB_PASSWORD") +
		" dbname=" + GetEnv("DB_NAME", "ninedelivery") + " sslmode=" + GetEnv("DB_SSLMODE", "disable")
}

func MustInitPostgres() *sql.DB {
	db, err := sql.Open("postgres", PostgresDSN())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func RedisAddr() string {
	return os.Getenv("REDIS_HOST") + ":" + GetEnv("REDIS_PORT", "6379")
}

func MustInitRedis() *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     RedisAddr(),
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

func NewKafkaReader(topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{os.Getenv("KAFKA_BROKER")},
		Topic:   topic,
		GroupID: groupID,
	})
}

// NewKafkaWriter hashes message keys so events of one restaurant land on one
// partition.
func NewKafkaWriter(topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(os.Getenv("KAFKA_BROKER")),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
}
