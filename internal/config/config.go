package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Redis        RedisConfig        `toml:"redis"`
	SalonService SalonServiceConfig `toml:"salon_service"`
	Schedule     ScheduleConfig     `toml:"schedule"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RedisConfig настройки хранилища workflow-сессий
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// SalonServiceConfig настройки интеграции с SalonService
type SalonServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// ScheduleConfig настройки сетки расписания и workflow-сессий
type ScheduleConfig struct {
	GridStart          string `toml:"grid_start"`          // "05:00"
	GridEnd            string `toml:"grid_end"`            // "19:30"
	GranularityMinutes int    `toml:"granularity_minutes"` // шаг сетки
	SessionTTLMinutes  int    `toml:"session_ttl_minutes"` // время жизни сессии
}

// Load читает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port must be positive")
	}
	if c.Redis.Addr == "" {
		return fmt.Errorf("config: redis.addr is required")
	}
	if c.SalonService.URL == "" {
		return fmt.Errorf("config: salon_service.url is required")
	}
	if c.Schedule.GranularityMinutes <= 0 {
		return fmt.Errorf("config: schedule.granularity_minutes must be positive")
	}
	if c.Schedule.SessionTTLMinutes <= 0 {
		return fmt.Errorf("config: schedule.session_ttl_minutes must be positive")
	}
	return nil
}
