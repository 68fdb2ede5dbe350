package environment

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the process-wide configuration, read once at startup.
type Config struct {
	HTTPAddr      string
	LogLevel      string
	MaxConcurrent int64

	// Wall-clock limit per execution, in seconds.
	ExecTimeoutSec int

	// EventSink selects where result events go: "nats", "sqs" or ""
	// for none.
	EventSink   string
	NatsUrl     string
	NatsSubject string
	AwsRegion   string
	SqsQueueUrl string
}

// ReadEnvConfig loads .env (if present) and reads the environment.
func ReadEnvConfig() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	result := &Config{
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		MaxConcurrent:  getEnvInt64("MAX_CONCURRENT", 4),
		ExecTimeoutSec: int(getEnvInt64("EXEC_TIMEOUT_SEC", 5)),
		EventSink:      getEnv("EVENT_SINK", ""),
		NatsUrl:        getEnv("NATS_URL", "nats://127.0.0.1:4222"),
		NatsSubject:    getEnv("NATS_SUBJECT", "submissions.results"),
		AwsRegion:      getEnv("AWS_REGION", "eu-central-1"),
		SqsQueueUrl:    getEnv("SQS_QUEUE_URL", ""),
	}
	return result
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", v)
		return fallback
	}
	return n
}
