package config

import (
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Remote   Remote
	LogLevel string
}

type Server struct {
	Port string
}

type Database struct {
	Dir  string
	File string
}

type Remote struct {
	BaseURL        string
	TimeoutSeconds int
}

// Path returns the full path of the SQLite database file.
func (d Database) Path() string {
	return filepath.Join(d.Dir, d.File)
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.SetDefault("SERVER_PORT", "7311")
	viper.SetDefault("DATA_DIR", "data")
	viper.SetDefault("DATABASE_FILE", "kioku.db")
	viper.SetDefault("REMOTE_TIMEOUT_SECONDS", 10)
	viper.SetDefault("LOG_LEVEL", "info")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Dir = viper.GetString("DATA_DIR")
	config.Database.File = viper.GetString("DATABASE_FILE")
	config.Remote.BaseURL = viper.GetString("REMOTE_API_URL")
	config.Remote.TimeoutSeconds = viper.GetInt("REMOTE_TIMEOUT_SECONDS")
	config.LogLevel = viper.GetString("LOG_LEVEL")

	log.Info().Interface("config", config).Msg("Config loaded")
	return &config, nil
}
