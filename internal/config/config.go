package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. FRAMES_SUBDIVISIONS.
const EnvPrefix = "FRAMES"

type Config struct {
	Subdivisions       int    `yaml:"subdivisions" envconfig:"SUBDIVISIONS"`
	Mode               string `yaml:"mode" envconfig:"MODE"`
	Space              string `yaml:"space" envconfig:"SPACE"`
	Easing             string `yaml:"easing" envconfig:"EASING"`
	RequireUniformSize *bool  `yaml:"requireUniformSize" envconfig:"REQUIRE_UNIFORM_SIZE"`
	Workers            int    `yaml:"workers" envconfig:"WORKERS"`
	FPS                int    `yaml:"fps" envconfig:"FPS"`
	LogLevel           string `yaml:"logLevel" envconfig:"LOG_LEVEL"`
	LogDir             string `yaml:"logDir" envconfig:"LOG_DIR"`
	Export             Export `yaml:"export" envconfig:"EXPORT"`
	Server             Server `yaml:"server" envconfig:"SERVER"`
	Mqtt               Mqtt   `yaml:"mqtt" envconfig:"MQTT"`
}

type Export struct {
	Width     int     `yaml:"width" envconfig:"WIDTH"`
	Height    int     `yaml:"height" envconfig:"HEIGHT"`
	Sigma     float64 `yaml:"sigma" envconfig:"SIGMA"`
	Greyscale bool    `yaml:"greyscale" envconfig:"GREYSCALE"`
}

type Server struct {
	Port           int           `yaml:"port" envconfig:"PORT"`
	ReloadInterval time.Duration `yaml:"reloadInterval" envconfig:"RELOAD_INTERVAL"`
}

type Mqtt struct {
	URL      string `yaml:"url" envconfig:"URL"`
	Username string `yaml:"username" envconfig:"USERNAME"`
	Password string `yaml:"password" envconfig:"PASSWORD"`
	Topic    string `yaml:"topic" envconfig:"TOPIC"`
	ClientID string `yaml:"clientId" envconfig:"CLIENT_ID"`
}

// Verify checks config and fills in defaults. It is safe to call again after
// command line overrides have been applied.
func Verify(config *Config) error {
	if config == nil {
		return errors.New("cannot verify config, config is nil")
	}

	if config.Subdivisions < 0 {
		return fmt.Errorf("subdivisions must not be negative, got %d", config.Subdivisions)
	}

	if config.Mode == "" {
		config.Mode = "faithful"
	}

	if config.Space == "" {
		config.Space = "rgb"
	}

	if config.Easing == "" {
		config.Easing = "linear"
	}

	if config.RequireUniformSize == nil {
		defaultVal := false
		config.RequireUniformSize = &defaultVal
	}

	if config.Workers == 0 {
		config.Workers = 4
	}
	if config.Workers < 0 {
		return fmt.Errorf("workers must be positive, got %d", config.Workers)
	}

	if config.FPS == 0 {
		config.FPS = 24
	}
	if config.FPS < 0 {
		return fmt.Errorf("fps must be positive, got %d", config.FPS)
	}

	if config.LogLevel == "" {
		config.LogLevel = "info"
	}

	if config.Export.Width < 0 || config.Export.Height < 0 || config.Export.Sigma < 0 {
		return errors.New("export width, height and sigma must not be negative")
	}

	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}

	if config.Server.ReloadInterval < 0 {
		return errors.New("server reload interval must not be negative")
	}

	if config.Mqtt.Topic == "" {
		config.Mqtt.Topic = "frames/stream"
	}

	if config.Mqtt.ClientID == "" {
		config.Mqtt.ClientID = "frame-interpolator"
	}

	return nil
}

// GetConfig reads the YAML file at path (skipped when path is empty), applies
// FRAMES_* environment overrides and fills in defaults.
func GetConfig(path string) (Config, error) {
	config := Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, err
		}

		err = yaml.Unmarshal(data, &config)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	// Override with env variables if they are passed in
	err := envconfig.Process(EnvPrefix, &config)
	if err != nil {
		return Config{}, err
	}

	err = Verify(&config)
	if err != nil {
		return Config{}, err
	}

	return config, nil
}
