package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultConfigYAML 内置默认配置
//
//go:embed config.yaml
var DefaultConfigYAML []byte

// Config 应用配置
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Email     EmailConfig     `mapstructure:"email"`
	Records   RecordsConfig   `mapstructure:"records"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"` // mysql / memory
	Host         string `mapstructure:"host"`
	Port         string `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	DBName       string `mapstructure:"dbname"`
	Charset      string `mapstructure:"charset"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

// JWTConfig JWT配置
type JWTConfig struct {
	Secret      string        `mapstructure:"secret"`
	Issuer      string        `mapstructure:"issuer"`
	ExpireHours int           `mapstructure:"expire_hours"`
	ExpireTime  time.Duration `mapstructure:"-"`
}

// EmailConfig 邮件配置
type EmailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// RecordsConfig 记录相关的行为开关
type RecordsConfig struct {
	// StrictValidation 为 true 时校验失败返回 400，否则静默忽略
	StrictValidation bool `mapstructure:"strict_validation"`
	// GoalCapAtTarget 为 true 时目标进度不会超过目标金额
	GoalCapAtTarget bool   `mapstructure:"goal_cap_at_target"`
	Timezone        string `mapstructure:"timezone"`

	Location *time.Location `mapstructure:"-"`
}

// RateLimitConfig 写接口限流配置
type RateLimitConfig struct {
	WriteMax           int `mapstructure:"write_max"`
	WriteWindowSeconds int `mapstructure:"write_window_seconds"`
}

// WriteWindow 限流窗口
func (r RateLimitConfig) WriteWindow() time.Duration {
	return time.Duration(r.WriteWindowSeconds) * time.Second
}

var (
	// GlobalConfig 全局配置实例，仅用于错误信息脱敏等少量全局读取
	GlobalConfig *Config
)

// LoadConfig 加载配置
// 优先级: 环境变量 > 外部配置文件 > 嵌入的默认配置
// configPath: 可选的外部配置文件路径
func LoadConfig(configPath string) (*Config, error) {
	// .env 文件可选，不存在时忽略
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("警告: 读取 .env 失败: %v", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")

	// 1. 首先加载嵌入的默认配置
	if err := v.ReadConfig(bytes.NewReader(DefaultConfigYAML)); err != nil {
		return nil, fmt.Errorf("读取内置配置失败: %w", err)
	}

	// 2. 尝试加载外部配置文件（可选，用于覆盖默认配置）
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.MergeInConfig(); err != nil {
			log.Printf("警告: 无法读取指定配置文件 %s: %v", configPath, err)
		} else {
			log.Printf("已合并外部配置文件: %s", configPath)
		}
	} else {
		externalViper := viper.New()
		externalViper.SetConfigName("config")
		externalViper.SetConfigType("yaml")
		externalViper.AddConfigPath(".")
		externalViper.AddConfigPath("./config")
		externalViper.AddConfigPath("/etc/budget")
		externalViper.AddConfigPath("$HOME/.budget")

		if err := externalViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(externalViper.AllSettings()); err != nil {
				log.Printf("警告: 合并外部配置失败: %v", err)
			} else {
				log.Printf("已合并外部配置文件: %s", externalViper.ConfigFileUsed())
			}
		}
	}

	// 3. 环境变量覆盖，例如 BUDGET_DATABASE_HOST
	v.SetEnvPrefix("BUDGET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	GlobalConfig = &cfg
	return &cfg, nil
}

// normalize 填充派生字段和默认值
func (cfg *Config) normalize() error {
	if cfg.JWT.ExpireHours <= 0 {
		cfg.JWT.ExpireHours = 24
	}
	cfg.JWT.ExpireTime = time.Duration(cfg.JWT.ExpireHours) * time.Hour

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "mysql"
	}

	tz := cfg.Records.Timezone
	if tz == "" || strings.EqualFold(tz, "local") {
		cfg.Records.Location = time.Local
	} else {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return fmt.Errorf("无效的时区 %q: %w", tz, err)
		}
		cfg.Records.Location = loc
	}

	if cfg.RateLimit.WriteMax <= 0 {
		cfg.RateLimit.WriteMax = 60
	}
	if cfg.RateLimit.WriteWindowSeconds <= 0 {
		cfg.RateLimit.WriteWindowSeconds = 60
	}
	return nil
}

// MustLoadConfig 加载配置，失败则 panic
func MustLoadConfig(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		panic(fmt.Sprintf("加载配置失败: %v", err))
	}
	return cfg
}

// PrintConfig 打印当前配置（隐藏敏感信息）
func PrintConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	log.Printf("当前配置:")
	log.Printf("  服务器: %s (模式: %s)", cfg.Server.Port, cfg.Server.Mode)
	if cfg.Database.Driver == "memory" {
		log.Printf("  存储: 内存")
	} else {
		log.Printf("  数据库: %s@%s:%s/%s",
			cfg.Database.Username,
			cfg.Database.Host,
			cfg.Database.Port,
			cfg.Database.DBName)
	}
	log.Printf("  邮件服务: %v", cfg.Email.Enabled)
	log.Printf("  严格校验: %v, 目标封顶: %v, 时区: %s",
		cfg.Records.StrictValidation,
		cfg.Records.GoalCapAtTarget,
		cfg.Records.Location)
}

// SafeErrorMessage 生产环境下不向客户端暴露内部错误详情
func SafeErrorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if GlobalConfig != nil && GlobalConfig.Server.Mode == "release" {
		return fallback
	}
	return err.Error()
}
