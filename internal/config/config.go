package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env"
	"github.com/spf13/pflag"
)

type Arguments struct {
	ListenAddr      string        `env:"SERVER_ADDRESS" envDefault:"localhost:8080"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	JWTSecret       string        `env:"JWT_SECRET" envDefault:"secret"`
	BackendAddr     string        `env:"BACKEND_ADDRESS" envDefault:"http://localhost:8081"`
	ServiceLogin    string        `env:"BACKEND_SERVICE_LOGIN" envDefault:""`
	ServicePassword string        `env:"BACKEND_SERVICE_PASSWORD" envDefault:""`
	PollInterval    time.Duration `env:"SUMMARY_POLL_INTERVAL" envDefault:"30s"`
	RedisAddr       string        `env:"REDIS_ADDR" envDefault:""`
	RedisPassword   string        `env:"REDIS_PASSWORD" envDefault:""`
	SessionTTL      time.Duration `env:"SESSION_TTL" envDefault:"24h"`
}

// ServerConfig модель настроек HTTP-сервера консоли
type ServerConfig struct {
	ListenAddr string
	LogLevel   string
	JWTSecret  string
}

// BackendConfig модель настроек работы с внешним бэкендом управления счетами
type BackendConfig struct {
	BackendAddr     string
	ServiceLogin    string
	ServicePassword string
	PollInterval    time.Duration
}

// SessionConfig модель настроек хранилища сессий консоли
type SessionConfig struct {
	RedisAddr     string
	RedisPassword string
	TTL           time.Duration
}

// Config модель настроек сервиса
type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Session SessionConfig
}

func NewConfig() Config {

	var args Arguments
	if err := env.Parse(&args); err != nil {
		panic(fmt.Sprintf("Failed to parse enviroment var: %s", err.Error()))
	}

	var (
		server       = pflag.StringP("server", "a", args.ListenAddr, "Server listen address in a form host:port.")
		logLevel     = pflag.StringP("log_level", "l", args.LogLevel, "Log level.")
		secret       = pflag.StringP("secret", "s", args.JWTSecret, "Secret to JWT")
		backend      = pflag.StringP("backend", "b", args.BackendAddr, "Backend base URL.")
		serviceLogin = pflag.StringP("service_login", "u", args.ServiceLogin, "Backend service account login (summary poller).")
		servicePass  = pflag.StringP("service_password", "p", args.ServicePassword, "Backend service account password.")
		poll         = pflag.DurationP("poll", "i", args.PollInterval, "Summary poll interval.")
		redisAddr    = pflag.StringP("redis", "r", args.RedisAddr, "Redis address for sessions (empty: in-memory).")
		redisPass    = pflag.String("redis_password", args.RedisPassword, "Redis password.")
		sessionTTL   = pflag.DurationP("session_ttl", "t", args.SessionTTL, "Console session lifetime.")
	)
	pflag.Parse()

	return Config{
		Server: ServerConfig{
			ListenAddr: *server,
			LogLevel:   *logLevel,
			JWTSecret:  *secret,
		},
		Backend: BackendConfig{
			BackendAddr:     *backend,
			ServiceLogin:    *serviceLogin,
			ServicePassword: *servicePass,
			PollInterval:    *poll,
		},
		Session: SessionConfig{
			RedisAddr:     *redisAddr,
			RedisPassword: *redisPass,
			TTL:           *sessionTTL,
		},
	}
}

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			ListenAddr: "localhost:8080",
			LogLevel:   "info",
			JWTSecret:  "secret",
		},
		Backend: BackendConfig{
			BackendAddr:  "http://localhost:8081",
			PollInterval: 30 * time.Second,
		},
		Session: SessionConfig{
			TTL: 24 * time.Hour,
		},
	}
}
