// Package config loads the gateway's configuration from a YAML file,
// environment variables, and built-in defaults, per the teacher's
// pkg/config/config.go shape.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config is the root configuration for an m17gw instance.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Gateway  GatewayConfig  `mapstructure:"gateway"`
	Web      WebConfig      `mapstructure:"web"`
	Database DatabaseConfig `mapstructure:"database"`
	MQTT     MQTTConfig     `mapstructure:"mqtt"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// ServerConfig identifies this gateway instance on the M17 network.
type ServerConfig struct {
	Callsign string `mapstructure:"callsign"`
	CAN      int    `mapstructure:"can"` // channel access number, 0-15
}

// GatewayConfig configures the M17-over-IP reflector/peer connection.
type GatewayConfig struct {
	ListenAddr    string `mapstructure:"listen_addr"`
	ListenPort    int    `mapstructure:"listen_port"`
	ReflectorAddr string `mapstructure:"reflector_addr"`
	ReflectorPort int    `mapstructure:"reflector_port"`
	Module        string `mapstructure:"module"` // reflector module letter, A-Z
	PingInterval  int    `mapstructure:"ping_interval_seconds"`
	MaxMissed     int    `mapstructure:"max_missed_pings"`
}

// WebConfig holds the dashboard websocket server's listen settings.
type WebConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
}

// DatabaseConfig holds the heard-station/text-message store's settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// MQTTConfig configures the event-publishing client.
type MQTTConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Broker      string `mapstructure:"broker"`
	TopicPrefix string `mapstructure:"topic_prefix"`
	ClientID    string `mapstructure:"client_id"`
}

// LoggingConfig configures pkg/logger.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// MetricsConfig configures the Prometheus exporter.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from configFile (or the default search path
// if empty), overlays environment variables prefixed M17GW_, and
// validates the result.
func Load(configFile string) (*Config, error) {
	setDefaults()

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath("/etc/m17gw")
	}

	viper.SetEnvPrefix("M17GW")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// no config file is fine, defaults apply
		} else if os.IsNotExist(err) {
			// an explicitly named file that's missing is also fine
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.callsign", "N0CALL")
	viper.SetDefault("server.can", 0)

	viper.SetDefault("gateway.listen_addr", "0.0.0.0")
	viper.SetDefault("gateway.listen_port", 17000)
	viper.SetDefault("gateway.reflector_port", 17000)
	viper.SetDefault("gateway.module", "A")
	viper.SetDefault("gateway.ping_interval_seconds", 5)
	viper.SetDefault("gateway.max_missed_pings", 3)

	viper.SetDefault("web.enabled", true)
	viper.SetDefault("web.host", "0.0.0.0")
	viper.SetDefault("web.port", 8080)

	viper.SetDefault("database.path", "m17gw.sqlite")

	viper.SetDefault("mqtt.enabled", false)
	viper.SetDefault("mqtt.topic_prefix", "m17/gw")
	viper.SetDefault("mqtt.client_id", "m17gw")

	viper.SetDefault("logging.level", "info")

	viper.SetDefault("metrics.enabled", true)
	viper.SetDefault("metrics.port", 9090)
	viper.SetDefault("metrics.path", "/metrics")
}
