package internal

import (
	"fmt"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

type Config struct {
	Host                 string        `env:"HOST,default=0.0.0.0"`
	Port                 int           `env:"PORT,default=8080"`
	DebugPort            int           `env:"DEBUG_PORT,default=8081"`
	LogLevel             string        `env:"LOG_LEVEL,default=INFO"`
	BadgerFilepath       string        `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath        string        `env:"BLUGE_FILEPATH,required=true"`
	BufferSize           int           `env:"BUFFER_SIZE,default=1024"`
	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,default=64"`
	NumberOfWorkers      int           `env:"NUMBER_OF_WORKERS,default=4"`
	DeliveryTimeout      time.Duration `env:"DELIVERY_TIMEOUT,default=2s"`
	NotificationTimeout  time.Duration `env:"NOTIFICATION_TIMEOUT,default=10s"`
	HeartbeatInterval    time.Duration `env:"HEARTBEAT_INTERVAL,default=30s"`
	MetricInterval       time.Duration `env:"METRIC_INTERVAL,default=15s"`
	RestartInterval      time.Duration `env:"RESTART_INTERVAL,default=1s"`
	AuthTokenDuration    time.Duration `env:"AUTH_TOKEN_DURATION,default=24h"`
	AuthSecret           string        `env:"AUTH_SECRET,required=true"`
	LimitPosts           *int          `env:"LIMIT_POSTS"`
	MaxContentLength     int           `env:"MAX_CONTENT_LENGTH,default=2000"`
	CharReplacement      string        `env:"CHARACTER_REPLACEMENT,default=*"`
	BannedWords          []string      `env:"BANNED_WORDS,separator=|"`

	DeduplicateReplyNotifications bool `env:"DEDUPLICATE_REPLY_NOTIFICATIONS,default=false"`
}

// LoadConfig reads an optional .env file, then the process environment.
// Variables already set in the environment win over the file.
func LoadConfig(files ...string) (Config, error) {
	_ = godotenv.Load(files...)

	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if len(config.AuthSecret) < 16 {
		return Config{}, fmt.Errorf("AUTH_SECRET must be at least 16 characters")
	}
	if config.NumberOfWorkers < 1 {
		return Config{}, fmt.Errorf("NUMBER_OF_WORKERS must be positive, got %d", config.NumberOfWorkers)
	}
	return config, nil
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
