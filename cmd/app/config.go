package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	configPath   = "./"
	configName   = "config"
	configFormat = "yaml"

	defaultStorageHost = "firebasestorage.googleapis.com"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Firebase FirebaseConfig `yaml:"firebase"`
	Trigger  TriggerConfig  `yaml:"trigger"`

	LogLevel string `yaml:"logLevel"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type FirebaseConfig struct {
	ProjectID       string `yaml:"projectId"`
	StorageBucket   string `yaml:"storageBucket"`
	CredentialsFile string `yaml:"credentialsFile"`
	// StorageHost recognizes which photo URLs point at our own bucket.
	StorageHost string `yaml:"storageHost"`
}

type TriggerConfig struct {
	Secret string `yaml:"secret"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(configName)
	viper.AddConfigPath(configPath)
	viper.SetConfigType(configFormat)

	viper.AutomaticEnv()
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Firebase.StorageHost == "" {
		cfg.Firebase.StorageHost = defaultStorageHost
	}

	return &cfg, nil
}
