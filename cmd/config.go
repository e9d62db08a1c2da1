package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"ordering/internal/pkg/errs"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaBrokers                     string
	KafkaConsumerGroup               string
	KafkaPaymentRequestTopic         string
	KafkaPaymentResponseTopic        string
	KafkaRestaurantApprovalTopic     string
	KafkaRestaurantApprovalRespTopic string

	RabbitMQURL                  string
	RabbitMQNotificationExchange string

	StaleOrderSchedule  string
	StaleOrderMaxAge    time.Duration
	StaleOrderBatchSize int
}

// ConfigFromEnv reads the configuration through getenv. Connection settings
// are required; topics, exchange and job settings fall back to defaults.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	lookup := func(key, def string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return def
	}

	config := Config{
		HTTPPort:   lookup("HTTP_PORT", "8080"),
		DBHost:     getenv("DB_HOST"),
		DBPort:     lookup("DB_PORT", "5432"),
		DBUser:     getenv("DB_USER"),
		DBPassword: getenv("DB_PASSWORD"),
		DBName:     getenv("DB_NAME"),
		DBSslMode:  lookup("DB_SSLMODE", "disable"),

		KafkaBrokers:                     getenv("KAFKA_BROKERS"),
		KafkaConsumerGroup:               lookup("KAFKA_CONSUMER_GROUP", "ordering-service"),
		KafkaPaymentRequestTopic:         lookup("KAFKA_PAYMENT_REQUEST_TOPIC", "payment-request"),
		KafkaPaymentResponseTopic:        lookup("KAFKA_PAYMENT_RESPONSE_TOPIC", "payment-response"),
		KafkaRestaurantApprovalTopic:     lookup("KAFKA_RESTAURANT_APPROVAL_REQUEST_TOPIC", "restaurant-approval-request"),
		KafkaRestaurantApprovalRespTopic: lookup("KAFKA_RESTAURANT_APPROVAL_RESPONSE_TOPIC", "restaurant-approval-response"),

		RabbitMQURL:                  getenv("RABBITMQ_URL"),
		RabbitMQNotificationExchange: lookup("RABBITMQ_NOTIFICATION_EXCHANGE", "customer_notifications"),

		StaleOrderSchedule: lookup("STALE_ORDER_SCHEDULE", "0 * * * * *"),
	}

	var errAge, errBatch error
	config.StaleOrderMaxAge, errAge = time.ParseDuration(lookup("STALE_ORDER_MAX_AGE", "15m"))
	if errAge != nil {
		errAge = errs.NewValueIsInvalidErrorWithCause("STALE_ORDER_MAX_AGE", errAge)
	}
	config.StaleOrderBatchSize, errBatch = strconv.Atoi(lookup("STALE_ORDER_BATCH_SIZE", "100"))
	if errBatch != nil {
		errBatch = errs.NewValueIsInvalidErrorWithCause("STALE_ORDER_BATCH_SIZE", errBatch)
	}

	if err := errors.Join(
		required("DB_HOST", config.DBHost),
		required("DB_USER", config.DBUser),
		required("DB_NAME", config.DBName),
		required("KAFKA_BROKERS", config.KafkaBrokers),
		required("RABBITMQ_URL", config.RabbitMQURL),
		errAge,
		errBatch,
	); err != nil {
		return Config{}, err
	}

	return config, nil
}

// DSN is the PostgreSQL connection string for gorm.io/driver/postgres.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func required(key, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(key)
	}
	return nil
}
