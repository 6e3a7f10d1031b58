package config

import (
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/gw0212/maplink-manager/internal/deeplink"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	ServerAddress  string        `json:"server_address" env:"SERVER_ADDRESS"`
	GRPCAddress    string        `json:"grpc_address" env:"GRPC_ADDRESS"`
	AppName        string        `json:"app_name" env:"APP_NAME"`
	LogLevel       string        `json:"log_level" env:"LOG_LEVEL"`
	RequestTimeout time.Duration `json:"-" env:"REQUEST_TIMEOUT"`
	EnableGzip     bool          `json:"enable_gzip" env:"ENABLE_GZIP"`
	MaxProcs       int           `json:"max_procs" env:"MAX_PROCS"`
	ConfigPath     string        `json:"-" env:"CONFIG"`
}

// fileConfig mirrors Config for JSON files, where durations are strings like "5s".
type fileConfig struct {
	Config
	RequestTimeout string `json:"request_timeout"`
}

// NewConfig builds the configuration. Later sources override earlier ones:
// defaults, JSON config file, command-line flags, environment (.env included).
func NewConfig() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("failed to load .env file")
	}

	cfg := &Config{
		ServerAddress:  ":8080",
		AppName:        deeplink.DefaultAppName,
		LogLevel:       "info",
		RequestTimeout: 10 * time.Second,
		EnableGzip:     true,
	}

	configPath := findConfigPath(os.Args[1:])
	if envConfig := os.Getenv("CONFIG"); envConfig != "" {
		configPath = envConfig
	}
	if configPath != "" {
		if err := loadFile(configPath, cfg); err != nil {
			log.Warn().Err(err).Str("path", configPath).Msg("failed to read config file")
		}
	}

	flag.StringVar(&cfg.ConfigPath, "c", configPath, "Path to JSON config file")
	flag.StringVar(&cfg.ServerAddress, "a", cfg.ServerAddress, "HTTP server address (e.g. localhost:8888)")
	flag.StringVar(&cfg.GRPCAddress, "g", cfg.GRPCAddress, "gRPC server address, empty disables gRPC (e.g. :3200)")
	flag.StringVar(&cfg.AppName, "n", cfg.AppName, "App identifier passed to the Naver Map app")
	flag.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flag.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "Request timeout, 0 disables it")
	flag.BoolVar(&cfg.EnableGzip, "z", cfg.EnableGzip, "Compress JSON responses with gzip")
	flag.IntVar(&cfg.MaxProcs, "p", cfg.MaxProcs, "GOMAXPROCS override, 0 keeps the runtime default")

	flag.Parse()

	if err := env.Parse(cfg); err != nil {
		log.Warn().Err(err).Msg("failed to parse environment")
	}

	return cfg
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	fc := fileConfig{Config: *cfg}
	if err := json.Unmarshal(data, &fc); err != nil {
		return err
	}

	if fc.RequestTimeout != "" {
		d, err := time.ParseDuration(fc.RequestTimeout)
		if err != nil {
			return err
		}
		fc.Config.RequestTimeout = d
	}

	*cfg = fc.Config
	return nil
}

// findConfigPath looks for -c ahead of flag.Parse so the file can
// supply defaults that flags then override.
func findConfigPath(args []string) string {
	for i, arg := range args {
		switch {
		case arg == "-c" || arg == "--c":
			if i+1 < len(args) {
				return args[i+1]
			}
		case len(arg) > 3 && arg[:3] == "-c=":
			return arg[3:]
		case len(arg) > 4 && arg[:4] == "--c=":
			return arg[4:]
		}
	}
	return ""
}
