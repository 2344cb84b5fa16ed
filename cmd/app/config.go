package main

import (
	"fmt"
	"strings"

	"bias_notifier/internal/repository"

	"github.com/spf13/viper"
)

const (
	configPath   = "./"
	configName   = "config"
	configFormat = "yaml"
)

type Config struct {
	Database repository.Config `yaml:"database"`
	Server   ServerConfig      `yaml:"server"`

	Cron     CronConfig     `yaml:"cron"`
	Gemini   GeminiConfig   `yaml:"gemini"`
	Firebase FirebaseConfig `yaml:"firebase"`
	Proton   ProtonConfig   `yaml:"proton"`
	Links    LinksConfig    `yaml:"links"`

	LogLevel string `yaml:"logLevel"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type CronConfig struct {
	Secret string `yaml:"secret"`
}

type GeminiConfig struct {
	APIKey string `yaml:"apiKey"`
}

type FirebaseConfig struct {
	ServiceAccountBase64 string `yaml:"serviceAccountBase64"`
}

type ProtonConfig struct {
	RPCEndpoint string `yaml:"rpcEndpoint"`
}

type LinksConfig struct {
	AppURL   string `yaml:"appUrl"`
	ClaimURL string `yaml:"claimUrl"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(configName)
	viper.AddConfigPath(configPath)
	viper.SetConfigType(configFormat)

	viper.SetDefault("proton.rpcEndpoint", "https://rpc.api.mainnet.metalx.com")
	viper.SetDefault("logLevel", "info")

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

	return &cfg, nil
}
