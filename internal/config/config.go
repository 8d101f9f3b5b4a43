package config

import (
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/corray333/swiftserve/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SWIFTSERVE_STORAGE_DRIVER.
const EnvPrefix = "SWIFTSERVE"

// MustInit loads .env, registers defaults, reads config.yaml and installs the
// default logger. cfgFile overrides the config search path when not empty.
// A missing .env or config file is not an error; a malformed one panics.
func MustInit(cfgFile string) {
	if err := godotenv.Load("./.env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		panic("error while loading .env file: " + err.Error())
	}

	SetDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("/etc/swiftserve")
		viper.AddConfigPath(".")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			panic("error while reading config file: " + err.Error())
		}
	}

	SetupLogger()
}

// SetDefaults registers the default value of every known key.
func SetDefaults() {
	viper.SetDefault("server.http.port", "8080")
	viper.SetDefault("server.http.cors.allowed_origins", []string{"*"})
	viper.SetDefault("server.http.cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	viper.SetDefault("server.http.cors.allowed_headers", []string{"Accept", "Content-Type", "X-Request-Id"})
	viper.SetDefault("server.http.cors.max_age", 300)

	viper.SetDefault("server.grpc.enabled", true)
	viper.SetDefault("server.grpc.port", "9090")
	viper.SetDefault("server.grpc.keepalive.max_connection_idle", 15)
	viper.SetDefault("server.grpc.keepalive.max_connection_age", 30)
	viper.SetDefault("server.grpc.keepalive.max_connection_age_grace", 5)
	viper.SetDefault("server.grpc.keepalive.time", 5)
	viper.SetDefault("server.grpc.keepalive.timeout", 1)
	viper.SetDefault("server.grpc.keepalive.min_time", 5)
	viper.SetDefault("server.grpc.keepalive.permit_without_stream", true)

	viper.SetDefault("storage.driver", "memory")

	viper.SetDefault("postgres.host", "localhost")
	viper.SetDefault("postgres.port", 5432)
	viper.SetDefault("postgres.sslmode", "disable")
	viper.SetDefault("postgres.migrations_path", "./migrations")

	viper.SetDefault("rabbitmq.enabled", false)
	viper.SetDefault("rabbitmq.port", 5672)
	viper.SetDefault("rabbitmq.audit_queue", "swiftserve.order_transitions")
	viper.SetDefault("rabbitmq.audit_queue_size", 256)
	viper.SetDefault("rabbitmq.notification_queue", "swiftserve.notifications")

	viper.SetDefault("kafka.brokers", "localhost:9092")
	viper.SetDefault("kafka.notification_topic", "swiftserve.notifications")

	viper.SetDefault("notify.driver", "log")
	viper.SetDefault("notify.queue_size", 256)

	viper.SetDefault("lifecycle.tick_interval", time.Second)

	viper.SetDefault("outbox.poll_interval", 10*time.Second)
	viper.SetDefault("outbox.batch_size", 100)
	viper.SetDefault("outbox.retry_interval", 30*time.Second)
	viper.SetDefault("outbox.max_retries", 5)
	viper.SetDefault("outbox.lease_duration", time.Minute)

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.service_name", "swiftserve")
	viper.SetDefault("otel.jaeger_endpoint", "http://jaeger:14268/api/traces")

	viper.SetDefault("log.level", "info")
}

// SetupLogger installs the JSON logger at log.level as the slog default.
func SetupLogger() {
	handler := logger.NewHandler(&slog.HandlerOptions{
		Level: logger.ParseLevel(viper.GetString("log.level")),
	})
	slog.SetDefault(slog.New(handler))
}
