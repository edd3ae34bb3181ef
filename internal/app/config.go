// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/haierkeys/storyboard-studio-service/internal/dao"
	"github.com/haierkeys/storyboard-studio-service/internal/service"
	"github.com/haierkeys/storyboard-studio-service/pkg/imagequeue"
	"github.com/haierkeys/storyboard-studio-service/pkg/storage"
	"github.com/haierkeys/storyboard-studio-service/pkg/util"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// AppConfig 应用配置
type AppConfig struct {
	File       string                      `yaml:"-"` // 配置文件路径，不序列化
	Server     ServerConfig                `yaml:"server"`
	Log        LogConfig                   `yaml:"log"`
	Database   dao.Database                `yaml:"database"`
	Security   SecurityConfig              `yaml:"security"`
	User       service.UserConfig          `yaml:"user"`
	Generator  service.GeneratorConfig     `yaml:"generator"`
	Export     service.ExportServiceConfig `yaml:"export"`
	ImageQueue ImageQueueConfig            `yaml:"image-queue"`
	Storage    storage.Config              `yaml:"storage"`
	Tracer     TracerConfig                `yaml:"tracer"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	// RunMode 运行模式
	RunMode string `yaml:"run-mode" default:"release"`
	// HttpPort HTTP 端口
	HttpPort string `yaml:"http-port" default:":8000"`
	// ReadTimeout 读取超时（秒）
	ReadTimeout int `yaml:"read-timeout" default:"60"`
	// WriteTimeout 写入超时（秒）
	WriteTimeout int `yaml:"write-timeout" default:"60"`
	// DefaultContextTimeout 默认上下文超时时间（秒）
	DefaultContextTimeout int `yaml:"default-context-timeout" default:"30"`
	// PrivateHttpListen 私有 HTTP 监听地址（指标、pprof）
	PrivateHttpListen string `yaml:"private-http-listen" default:":8001"`
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别，参见 zapcore.ParseLevel
	Level string `yaml:"level" default:"warn"`
	// File 日志文件路径，默认为 stderr
	File string `yaml:"file" default:"storage/logs/log.log"`
	// Production 是否启用 JSON 输出
	Production bool `yaml:"production" default:"true"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	AuthTokenKey string `yaml:"auth-token-key" default:"storyboard-studio-Auth-Token"`
	// TokenExpiry Token 过期时间，支持格式：7d（天）、24h（小时）、30m（分钟）
	TokenExpiry string `yaml:"token-expiry" default:"30d"`
}

// ImageQueueConfig 画面生成队列配置
type ImageQueueConfig struct {
	// QueueCapacity 等待请求容量
	QueueCapacity int `yaml:"queue-capacity" default:"256"`
	// DrainDelay 两条请求之间的停顿，支持格式：150ms、1s
	DrainDelay string `yaml:"drain-delay" default:"150ms"`
}

// TracerConfig 请求追踪配置
type TracerConfig struct {
	// Enabled 是否启用追踪
	Enabled bool `yaml:"enabled" default:"true"`
	// Header 追踪 ID 请求头名称，默认 X-Trace-ID
	Header string `yaml:"header" default:"X-Trace-ID"`
}

// LoadConfig 从文件加载配置
// 返回配置实例和配置文件的绝对路径
func LoadConfig(f string) (*AppConfig, string, error) {
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, "", err
	}
	realpath = filepath.Clean(realpath)

	c := new(AppConfig)
	c.File = realpath

	// 设置默认值
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "set default config failed")
	}

	file, err := os.ReadFile(realpath)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "read config file failed")
	}

	err = yaml.Unmarshal(file, c)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "parse config file failed")
	}

	// 再次设置默认值，以填充 YAML 中存在但值为空的字段
	// defaults.Set 只有在字段为该类型的零值时才会填充
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "re-set default config failed")
	}

	return c, realpath, nil
}

// Save 保存配置到文件
func (c *AppConfig) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config failed")
	}

	err = os.WriteFile(c.File, data, 0644)
	if err != nil {
		return errors.Wrap(err, "write config file failed")
	}

	return nil
}

// GetTokenExpiry 获取 Token 过期时间
func (c *AppConfig) GetTokenExpiry() time.Duration {
	if expiry, err := util.ParseDuration(c.Security.TokenExpiry); err == nil {
		return expiry
	}
	return 30 * 24 * time.Hour // 理论上不会走到这里，因为有默认值
}

// GetImageQueueConfig 获取画面生成队列配置
func (c *AppConfig) GetImageQueueConfig() imagequeue.Config {
	cfg := imagequeue.DefaultConfig()

	if c.ImageQueue.QueueCapacity > 0 {
		cfg.QueueCapacity = c.ImageQueue.QueueCapacity
	}
	if c.ImageQueue.DrainDelay != "" {
		if delay, err := util.ParseDuration(c.ImageQueue.DrainDelay); err == nil {
			cfg.DrainDelay = delay
		}
	}
	return cfg
}

// GetServiceConfig 提取 Service 层需要的配置
func (c *AppConfig) GetServiceConfig() *service.ServiceConfig {
	return &service.ServiceConfig{
		User:      c.User,
		Generator: c.Generator,
		Export:    c.Export,
	}
}
