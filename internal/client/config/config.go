// Package config загружает конфигурацию клиента из YAML файла, переменных
// окружения GYMKEEPER_* и флагов командной строки.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/iudanet/gymkeeper/internal/logger"
	"github.com/iudanet/gymkeeper/internal/models"
)

const (
	envPrefix      = "GYMKEEPER"
	configName     = "config"
	configType     = "yaml"
	appDir         = "gymkeeper"
	defaultDBFile  = "gymkeeper-client.db"
	defaultLogFile = "daemon.log"
)

// Ключи конфигурации
const (
	KeyServerURL      = "server_url"
	KeyToken          = "token"
	KeyDBPath         = "db_path"
	KeyHealthInterval = "health_interval"
	KeySyncInterval   = "sync_interval"
	KeyRequestTimeout = "request_timeout"
	KeyBackoffBase    = "backoff_base"
	KeyMaxRetries     = "max_retries"
	KeyLogLevel       = "log.level"
	KeyLogFormat      = "log.format"
	KeyLogFile        = "log.file"
)

// LogConfig параметры логирования клиента
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"` // File используется только демоном
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// Logger переводит настройки в logger.Config
func (c LogConfig) Logger() logger.Config {
	return logger.Config{
		Level:      c.Level,
		Format:     c.Format,
		File:       c.File,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
	}
}

// Config конфигурация клиента
type Config struct {
	ServerURL      string        `mapstructure:"server_url"`
	Token          string        `mapstructure:"token"` // Token bearer JWT, выданный gymkeeper-server token
	DBPath         string        `mapstructure:"db_path"`
	HealthInterval time.Duration `mapstructure:"health_interval"`
	SyncInterval   time.Duration `mapstructure:"sync_interval"` // SyncInterval период фоновой синхронизации демона
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	BackoffBase    time.Duration `mapstructure:"backoff_base"`
	MaxRetries     int           `mapstructure:"max_retries"`
	Log            LogConfig     `mapstructure:"log"`
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.ServerURL == "" {
		return errors.New("server_url is required")
	}
	u, err := url.Parse(c.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("server_url must be an http(s) URL, got %q", c.ServerURL)
	}

	if c.DBPath == "" {
		return errors.New("db_path is required")
	}

	if c.HealthInterval <= 0 {
		return errors.New("health_interval must be positive")
	}
	if c.SyncInterval <= 0 {
		return errors.New("sync_interval must be positive")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request_timeout must be positive")
	}
	if c.BackoffBase <= 0 {
		return errors.New("backoff_base must be positive")
	}
	if c.MaxRetries < 1 {
		return errors.New("max_retries must be at least 1")
	}

	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}

	return nil
}

// Loader читает конфигурацию и следит за изменениями файла
type Loader struct {
	v  *viper.Viper
	mu sync.Mutex
}

// NewLoader создает загрузчик. Пустой configFile означает поиск
// config.yaml в каталоге конфигурации пользователя.
func NewLoader(configFile string) *Loader {
	v := viper.New()

	dir := DefaultDir()
	v.SetDefault(KeyServerURL, "http://localhost:8080")
	v.SetDefault(KeyToken, "")
	v.SetDefault(KeyDBPath, filepath.Join(dir, defaultDBFile))
	v.SetDefault(KeyHealthInterval, 30*time.Second)
	v.SetDefault(KeySyncInterval, 5*time.Minute)
	v.SetDefault(KeyRequestTimeout, 30*time.Second)
	v.SetDefault(KeyBackoffBase, time.Second)
	v.SetDefault(KeyMaxRetries, models.DefaultMaxRetries)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyLogFile, filepath.Join(dir, defaultLogFile))
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)

	v.SetConfigType(configType)
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(dir)
	}

	// GYMKEEPER_SERVER_URL, GYMKEEPER_LOG_LEVEL и т.д.
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{v: v}
}

// BindFlag связывает ключ конфигурации с флагом; заданный флаг важнее файла и окружения
func (l *Loader) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("flag for %s is not defined", key)
	}
	return l.v.BindPFlag(key, flag)
}

// Load читает файл (если он есть) и возвращает проверенную конфигурацию
func (l *Loader) Load() (*Config, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// Явно указанный файл обязан существовать, поиск по умолчанию - нет
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return l.decode()
}

// ConfigFileUsed путь прочитанного файла конфигурации, пустой если файла нет
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// Watch вызывает onChange после каждого изменения файла конфигурации.
// Ошибка разбора передается в onChange, предыдущая конфигурация остается в силе у вызывающего.
func (l *Loader) Watch(onChange func(cfg *Config, err error)) {
	l.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		l.mu.Lock()
		cfg, err := l.decode()
		l.mu.Unlock()
		onChange(cfg, err)
	})
	l.v.WatchConfig()
}

func (l *Loader) decode() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// DefaultDir каталог конфигурации и данных клиента
func DefaultDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appDir)
	}
	return "." + appDir
}
