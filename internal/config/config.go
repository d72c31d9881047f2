package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

const prefix = "cogtrain"

type Config struct {
	// Address is the address the HTTP API listens on.
	Address string `default:":9010"`

	// GRPCAddress is the address the gRPC health service listens on. Empty disables it.
	GRPCAddress string `split_words:"true" default:":9011"`

	// DevMode switches the logger to the console writer at trace level and keeps the
	// HTTP server up on shutdown so a debugger can still reach it.
	DevMode bool `split_words:"true"`

	// LogFile, when set, receives a rotated copy of the log as JSON lines.
	LogFile string `split_words:"true"`

	// tuning

	// TuningDir holds games/default.yaml and games/<profile>.yaml.
	TuningDir string `split_words:"true" default:"config"`

	// TuningProfile selects the games/<profile>.yaml layered on top of the defaults.
	TuningProfile string `split_words:"true"`

	// TuningWatchInterval is how often the tuning files are polled. Zero disables hot reload.
	TuningWatchInterval time.Duration `split_words:"true" default:"5s"`

	// sessions

	// SessionTTL drops sessions nobody touched for that long.
	SessionTTL time.Duration `split_words:"true" default:"30m"`

	// persistence. Every configured backend receives result records; the first
	// configured of Firebase and Redis also stores player documents.

	// FirebaseURL is the Realtime Database root, e.g. https://<project>.firebaseio.com.
	FirebaseURL string `split_words:"true"`

	// FirebaseSecret is appended as ?auth= to every request when set.
	FirebaseSecret string `split_words:"true"`

	// RedisURL is parsed by redis.ParseURL, e.g. redis://127.0.0.1:6379/1.
	RedisURL string `split_words:"true"`

	RedisPrefix string `split_words:"true" default:"cogtrain:"`

	// NatsURL is the NATS server result records are published to.
	NatsURL string `split_words:"true"`

	NatsSubjectPrefix string `split_words:"true" default:"cogtrain.results"`

	// ReportTimeout bounds one result record write.
	ReportTimeout time.Duration `split_words:"true" default:"10s"`

	// Timezone is the IANA zone the date of a result record is rendered in.
	Timezone string `default:"Local"`

	// HTTPServerShutdownTimeout is the fiber idle timeout, which bounds a graceful shutdown.
	HTTPServerShutdownTimeout time.Duration `split_words:"true" default:"60s"`
}

// Location resolves Timezone, falling back to the local zone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Warn().Err(err).Str("timezone", c.Timezone).Msg("unknown timezone, using local time")
		return time.Local
	}
	return loc
}

func Parse() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	var config Config
	err := envconfig.Process(prefix, &config)
	if err != nil {
		_ = envconfig.Usage(prefix, &config)
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	return &config, nil
}
