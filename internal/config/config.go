// Package config 负责合并默认值、配置文件、环境变量和命令行参数。
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// 默认值
const (
	DefaultWorkers         = 3
	DefaultRepoTimeout     = 30 * time.Second
	DefaultAnalysisTimeout = 2 * time.Minute
	DefaultRetries         = 2
	DefaultOutput          = "text"
	DefaultPort            = 5000
	DefaultGeminiModel     = "gemini-2.5-flash-lite"
)

// Config 是校验后的最终配置
type Config struct {
	GitHubToken     string        `mapstructure:"github-token"`
	Workers         int           `mapstructure:"workers"`
	RepoTimeout     time.Duration `mapstructure:"repo-timeout"`
	AnalysisTimeout time.Duration `mapstructure:"analysis-timeout"`
	Retries         int           `mapstructure:"retries"`
	Output          string        `mapstructure:"output"`
	Color           bool          `mapstructure:"color"`
	Verbose         bool          `mapstructure:"verbose"`
	Port            int           `mapstructure:"port"`
	FeishuWebhook   string        `mapstructure:"feishu-webhook"`
	GeminiAPIKey    string        `mapstructure:"gemini-api-key"`
	GeminiModel     string        `mapstructure:"gemini-model"`
	Narrate         bool          `mapstructure:"narrate"`
}

// New 创建带默认值和环境变量绑定的 viper 实例
// 环境变量前缀为 AUDITOR_，"-" 替换为 "_"；token 等密钥也认不带前缀的常用名字
func New() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix("AUDITOR")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("github-token", "AUDITOR_GITHUB_TOKEN", "GITHUB_TOKEN")
	_ = v.BindEnv("gemini-api-key", "AUDITOR_GEMINI_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("feishu-webhook", "AUDITOR_FEISHU_WEBHOOK", "FEISHU_WEBHOOK")

	v.SetDefault("github-token", "")
	v.SetDefault("workers", DefaultWorkers)
	v.SetDefault("repo-timeout", DefaultRepoTimeout)
	v.SetDefault("analysis-timeout", DefaultAnalysisTimeout)
	v.SetDefault("retries", DefaultRetries)
	v.SetDefault("output", DefaultOutput)
	v.SetDefault("color", true)
	v.SetDefault("verbose", false)
	v.SetDefault("port", DefaultPort)
	v.SetDefault("feishu-webhook", "")
	v.SetDefault("gemini-api-key", "")
	v.SetDefault("gemini-model", DefaultGeminiModel)
	v.SetDefault("narrate", false)

	return v
}

// Load 读取配置文件 (可选) 并返回校验后的配置
// configFile 为空时在当前目录和 $HOME 下查找 .auditor.yaml，找不到不算错误
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(".auditor")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}

	cfg.Output = strings.ToLower(strings.TrimSpace(cfg.Output))
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate 检查取值范围
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries must not be negative, got %d", c.Retries)
	}
	if c.RepoTimeout <= 0 {
		return fmt.Errorf("repo-timeout must be positive, got %s", c.RepoTimeout)
	}
	if c.AnalysisTimeout <= 0 {
		return fmt.Errorf("analysis-timeout must be positive, got %s", c.AnalysisTimeout)
	}
	switch c.Output {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("invalid output: %s. Must be 'text', 'json', or 'yaml'", c.Output)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be in 1..65535, got %d", c.Port)
	}
	return nil
}
