package providers

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"swtd/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.SetDefault("tracking.weekStart", "sunday")
	viper.SetDefault("tracking.dayRetentionDays", 7)
	viper.SetDefault("tracking.weekRetentionDays", 30)
	viper.SetDefault("tracking.cleanupCheckInterval", time.Minute)
	viper.SetDefault("watcher.interval", time.Second)
	viper.SetDefault("watcher.requestTimeout", 800*time.Millisecond)

	viper.BindEnv("logger.level", "SWTD_LOG_LEVEL")
	viper.BindEnv("tracking.weekStart", "SWTD_WEEK_START")
	viper.BindEnv("tracking.dayRetentionDays", "SWTD_DAY_RETENTION_DAYS")
	viper.BindEnv("tracking.weekRetentionDays", "SWTD_WEEK_RETENTION_DAYS")
	viper.BindEnv("persistence.saveInterval", "SWTD_SAVE_INTERVAL")
	viper.BindEnv("watcher.probeUrl", "SWTD_PROBE_URL")
	viper.BindEnv("cache.enabled", "SWTD_CACHE_ENABLED")
	viper.BindEnv("cache.size", "SWTD_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "StreamWatchTimeDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
