package config

import (
	"time"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/spf13/viper"
)

const (
	defaultAdviceModel   = "gemini-3-flash-preview"
	defaultAdviceTimeout = 10
	defaultTimeZone      = "UTC"
)

type Config struct {
	GeneralVersion       string `mapstructure:"GENERAL_VERSION"`
	Environment          string `mapstructure:"ENVIRONMENT"`
	ServerPort           int    `mapstructure:"SERVER_PORT"`
	CorsAllowOrigins     string `mapstructure:"CORS_ALLOW_ORIGINS"`
	TimeZone             string `mapstructure:"TIME_ZONE"`
	EventsCacheAddress   string `mapstructure:"EVENTS_CACHE_ADDRESS"`
	EventsCachePort      int    `mapstructure:"EVENTS_CACHE_PORT"`
	SchedulerEnabled     bool   `mapstructure:"SCHEDULER_ENABLED"`
	GeminiAPIKey         string `mapstructure:"GEMINI_API_KEY"`
	AdviceModel          string `mapstructure:"ADVICE_MODEL"`
	AdviceTimeoutSeconds int    `mapstructure:"ADVICE_TIMEOUT_SECONDS"`
}

var ConfigInstance Config

func New() (Config, error) {
	log := logger.New("config").Function("New")
	log.Info("Initializing config")

	v := viper.New()
	v.AutomaticEnv()

	envVars := []string{
		"GENERAL_VERSION", "ENVIRONMENT", "SERVER_PORT", "CORS_ALLOW_ORIGINS", "TIME_ZONE",
		"EVENTS_CACHE_ADDRESS", "EVENTS_CACHE_PORT",
		"SCHEDULER_ENABLED",
		"GEMINI_API_KEY", "ADVICE_MODEL", "ADVICE_TIMEOUT_SECONDS",
	}

	for _, env := range envVars {
		if err := v.BindEnv(env); err != nil {
			log.Warn("Failed to bind environment variable", "env", env, "error", err)
		}
	}

	v.SetDefault("TIME_ZONE", defaultTimeZone)
	v.SetDefault("ADVICE_MODEL", defaultAdviceModel)
	v.SetDefault("ADVICE_TIMEOUT_SECONDS", defaultAdviceTimeout)
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")

	if v.IsSet("SERVER_PORT") {
		log.Info("Environment variables detected, skipping file loading")
	} else {
		log.Info("Environment variables not found, attempting to load from files")

		v.SetConfigFile(".env")
		v.SetConfigType("env")

		if err := v.ReadInConfig(); err != nil {
			log.Warn("Could not find .env file", "error", err)
		} else {
			log.Info("Loaded .env file")
		}

		v.SetConfigFile(".env.local")
		if err := v.MergeInConfig(); err != nil {
			log.Debug("No .env.local file found", "error", err)
		} else {
			log.Info("Loaded .env.local overrides")
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, log.Err("Fatal error: could not unmarshal config", err)
	}

	if err := validateConfig(config, log); err != nil {
		return Config{}, err
	}

	log.Info(
		"Successfully initialized config",
		"environment", config.Environment,
		"port", config.ServerPort,
		"scheduler", config.SchedulerEnabled,
		"adviceEnabled", config.GeminiAPIKey != "",
		"eventsCache", config.EventsCacheAddress != "",
	)

	return ConfigInstance, nil
}

func GetConfig() Config {
	return ConfigInstance
}

func validateConfig(config Config, log logger.Logger) error {
	if config.ServerPort <= 0 {
		return log.Error(
			"Fatal error: invalid server port",
			"port", config.ServerPort,
		)
	}

	if _, err := time.LoadLocation(config.TimeZone); err != nil {
		return log.Err("Fatal error: invalid TIME_ZONE", err, "timeZone", config.TimeZone)
	}

	if config.EventsCacheAddress != "" && config.EventsCachePort <= 0 {
		return log.ErrMsg("Fatal error: EVENTS_CACHE_PORT required when EVENTS_CACHE_ADDRESS is set")
	}

	if config.AdviceTimeoutSeconds <= 0 {
		return log.Error(
			"Fatal error: invalid advice timeout",
			"seconds", config.AdviceTimeoutSeconds,
		)
	}

	ConfigInstance = config
	return nil
}

// Location resolves the configured time zone, falling back to UTC.
func (c Config) Location() *time.Location {
	if c.TimeZone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c Config) AdviceTimeout() time.Duration {
	if c.AdviceTimeoutSeconds <= 0 {
		return defaultAdviceTimeout * time.Second
	}
	return time.Duration(c.AdviceTimeoutSeconds) * time.Second
}
