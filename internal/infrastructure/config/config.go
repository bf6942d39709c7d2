package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	API     APIConfig
	Console ConsoleConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

// APIConfig configures the memberd service.
type APIConfig struct {
	Port      string        `env:"API_PORT,  default=9000"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
}

// ConsoleConfig configures the web console.
type ConsoleConfig struct {
	Port          string        `env:"CONSOLE_PORT,   default=3000"`
	MemberAPIURL  string        `env:"MEMBER_API_URL, default=http://localhost:9000"`
	ClientTimeout time.Duration `env:"CLIENT_TIMEOUT, default=10s"`
	CookieSecure  bool          `env:"COOKIE_SECURE,  default=false"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=memberhub"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
