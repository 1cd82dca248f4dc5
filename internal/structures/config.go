package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	FilePath     string        `yaml:"filePath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type TrackingConfig struct {
	WeekStart            string        `yaml:"weekStart" validate:"required|in:sunday,monday,tuesday,wednesday,thursday,friday,saturday"`
	DayRetentionDays     int           `yaml:"dayRetentionDays" validate:"required|min:1"`
	WeekRetentionDays    int           `yaml:"weekRetentionDays" validate:"required|min:1"`
	CleanupCheckInterval time.Duration `yaml:"cleanupCheckInterval" validate:"required|min:1"`
}

type WatcherConfig struct {
	Enabled        bool          `yaml:"enabled"`
	ProbeUrl       string        `yaml:"probeUrl"`
	Interval       time.Duration `yaml:"interval"`
	RequestTimeout time.Duration `yaml:"requestTimeout"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	Tracking    TrackingConfig `yaml:"tracking"`
	WebServer   Server         `yaml:"webServer"`
	Persistence Persistence    `yaml:"persistence"`
	Logger      LoggerConfig   `yaml:"logger"`
	Watcher     WatcherConfig  `yaml:"watcher"`
	Cache       CacheConfig    `yaml:"cache"`
	Metrics     MetricsConfig  `yaml:"metrics"`
}
