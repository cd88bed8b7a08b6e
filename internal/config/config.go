// Package config loads the shared configuration for the travelctl client
// and the table service. Values come from the environment, with an
// optional .env file for local runs.
package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	defaultServerAddress = "http://localhost:8080"
	defaultRunAddress    = ":8080"
	defaultDataDirName   = ".zervitravel"
)

type Config struct {
	Env    string
	Client client
	DB     db
	Server server
	Logger logger
}

type client struct {
	// ServerAddress is the base URL of the table service.
	ServerAddress string `env:"SERVER_ADDRESS"`
	// DataDir holds the snapshot cache database.
	DataDir string `env:"DATA_DIR"`
}

type db struct {
	// DatabaseURI selects the Postgres backend when set; the service
	// falls back to a local SQLite file otherwise.
	DatabaseURI string `env:"DATABASE_URI"`
	SQLitePath  string `env:"SQLITE_PATH"`
}

type server struct {
	RunAddress string `env:"RUN_ADDRESS"`
}

type logger struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

func MustLoad() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	viper.AutomaticEnv()

	cfg := Config{
		Env: viper.GetString("app_env"),
		Client: client{
			ServerAddress: viper.GetString("server_address"),
			DataDir:       viper.GetString("data_dir"),
		},
		DB: db{
			DatabaseURI: viper.GetString("database_uri"),
			SQLitePath:  viper.GetString("sqlite_path"),
		},
		Server: server{
			RunAddress: viper.GetString("run_address"),
		},
		Logger: logger{
			LogLevel: viper.GetString("log_level"),
		},
	}

	if cfg.Env == "" {
		cfg.Env = EnvLocal
	}
	if cfg.Client.ServerAddress == "" {
		cfg.Client.ServerAddress = defaultServerAddress
	}
	if cfg.Client.DataDir == "" {
		cfg.Client.DataDir = defaultDataDir()
	}
	if cfg.Server.RunAddress == "" {
		cfg.Server.RunAddress = defaultRunAddress
	}
	if cfg.DB.SQLitePath == "" {
		cfg.DB.SQLitePath = filepath.Join(cfg.Client.DataDir, "tables.db")
	}

	return &cfg
}

// CachePath is the snapshot cache location for the client.
func (c *Config) CachePath() string {
	return filepath.Join(c.Client.DataDir, "cache.db")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultDataDirName
	}
	return filepath.Join(home, defaultDataDirName)
}
