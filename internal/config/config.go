package config

import (
	"github.com/spf13/viper"
)

type (
	Config struct {
		Database
		Metadata
		Server
	}

	Database struct {
		Path string
	}
	Metadata struct {
		Path string // Root directory probed for a legacy-format store
	}
	Server struct {
		Version string
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("database_path", "./data/database.sqlite")
	v.SetDefault("metadata_path", "./data")
	v.SetDefault("server_version", "0.1.0")

	return &Config{
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Metadata: Metadata{
			Path: v.GetString("METADATA_PATH"),
		},
		Server: Server{
			Version: v.GetString("SERVER_VERSION"),
		},
	}
}
