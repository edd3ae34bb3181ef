// Package logger 构建应用 zap 日志器
package logger

import (
	"os"

	"github.com/haierkeys/storyboard-studio-service/pkg/fileurl"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config 日志配置
type Config struct {
	// Level 日志级别，参见 zapcore.ParseLevel
	Level string
	// File 日志文件路径，为空时只输出到 stderr
	File string
	// Production 是否启用 JSON 输出
	Production bool
}

// NewLogger 根据配置构建日志器
// 文件与 stderr 双路输出，文件始终为 JSON 编码
func NewLogger(cfg Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.WarnLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var consoleEncoder zapcore.Encoder
	if cfg.Production {
		consoleEncoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		devConfig := zap.NewDevelopmentEncoderConfig()
		devConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		devConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		consoleEncoder = zapcore.NewConsoleEncoder(devConfig)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stderr), level),
	}

	if cfg.File != "" {
		if err := fileurl.CreatePath(cfg.File, os.ModePerm); err != nil {
			return nil, errors.Wrap(err, "create log path failed")
		}
		file, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, errors.Wrap(err, "open log file failed")
		}
		cores = append(cores,
			zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(file), level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}
