package config

import (
	"fmt"

	"github.com/M17-Project/m17-core-go/pkg/m17"
)

// validate validates the configuration.
func validate(cfg *Config) error {
	if cfg.Server.Callsign == "" {
		return fmt.Errorf("server.callsign is required")
	}
	if _, err := m17.AddressFromCallsign(cfg.Server.Callsign); err != nil {
		return fmt.Errorf("server.callsign %q is invalid: %w", cfg.Server.Callsign, err)
	}
	if cfg.Server.CAN < 0 || cfg.Server.CAN > 15 {
		return fmt.Errorf("server.can must be between 0 and 15")
	}

	if cfg.Gateway.ListenPort <= 0 || cfg.Gateway.ListenPort > 65535 {
		return fmt.Errorf("gateway.listen_port must be between 1 and 65535")
	}
	if cfg.Gateway.ReflectorAddr != "" {
		if cfg.Gateway.ReflectorPort <= 0 || cfg.Gateway.ReflectorPort > 65535 {
			return fmt.Errorf("gateway.reflector_port must be between 1 and 65535")
		}
		if len(cfg.Gateway.Module) != 1 || cfg.Gateway.Module[0] < 'A' || cfg.Gateway.Module[0] > 'Z' {
			return fmt.Errorf("gateway.module must be a single letter A-Z")
		}
	}
	if cfg.Gateway.PingInterval <= 0 {
		return fmt.Errorf("gateway.ping_interval_seconds must be positive")
	}
	if cfg.Gateway.MaxMissed <= 0 {
		return fmt.Errorf("gateway.max_missed_pings must be positive")
	}

	if cfg.Web.Enabled {
		if cfg.Web.Port <= 0 || cfg.Web.Port > 65535 {
			return fmt.Errorf("web.port must be between 1 and 65535")
		}
	}

	if cfg.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}

	if cfg.MQTT.Enabled && cfg.MQTT.Broker == "" {
		return fmt.Errorf("mqtt.broker is required when mqtt is enabled")
	}

	if cfg.Metrics.Enabled {
		if cfg.Metrics.Port <= 0 || cfg.Metrics.Port > 65535 {
			return fmt.Errorf("metrics.port must be between 1 and 65535")
		}
	}

	return nil
}
