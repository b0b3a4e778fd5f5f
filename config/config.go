package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Storage  StorageConfig  `yaml:"storage"`
	JWT      JWTConfig      `yaml:"jwt"`
	Share    ShareConfig    `yaml:"share"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

type DatabaseConfig struct {
	Driver       string `yaml:"driver"`
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	Database     string `yaml:"database"`
	Charset      string `yaml:"charset"`
	Path         string `yaml:"path"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type StorageConfig struct {
	UploadDir             string `yaml:"upload_dir"`
	ThumbnailDir          string `yaml:"thumbnail_dir"`
	MaxFilesPerUpload     int    `yaml:"max_files_per_upload"`
	MaxFileSizeMB         int64  `yaml:"max_file_size_mb"`
	SessionRetentionHours int    `yaml:"session_retention_hours"`
}

type JWTConfig struct {
	Secret      string `yaml:"secret"`
	ExpireHours int    `yaml:"expire_hours"`
}

type ShareConfig struct {
	DefaultExpireHours int `yaml:"default_expire_hours"`
	VerifiedTTLHours   int `yaml:"verified_ttl_hours"`
	ThumbnailMaxPixels int `yaml:"thumbnail_max_pixels"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

var AppConfig *Config

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	AppConfig = &cfg
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "mysql"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "pcbtrack.db"
	}
	if cfg.Storage.UploadDir == "" {
		cfg.Storage.UploadDir = "uploads"
	}
	if cfg.Storage.ThumbnailDir == "" {
		cfg.Storage.ThumbnailDir = "thumbnails"
	}
	if cfg.Storage.MaxFilesPerUpload <= 0 {
		cfg.Storage.MaxFilesPerUpload = 10
	}
	if cfg.Storage.MaxFileSizeMB <= 0 {
		cfg.Storage.MaxFileSizeMB = 300
	}
	if cfg.Storage.SessionRetentionHours <= 0 {
		cfg.Storage.SessionRetentionHours = 24
	}
	if cfg.JWT.ExpireHours <= 0 {
		cfg.JWT.ExpireHours = 2
	}
	if cfg.Share.DefaultExpireHours == 0 {
		cfg.Share.DefaultExpireHours = 24
	}
	if cfg.Share.VerifiedTTLHours <= 0 {
		cfg.Share.VerifiedTTLHours = 24
	}
	if cfg.Share.ThumbnailMaxPixels <= 0 {
		cfg.Share.ThumbnailMaxPixels = 256
	}
}
