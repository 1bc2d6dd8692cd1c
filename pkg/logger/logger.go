package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Init 初始化全局zap日志器
// 设计说明：
// 1. 生产模式输出JSON结构化日志，开发模式输出彩色控制台日志
// 2. 通过zap.ReplaceGlobals注册为全局日志器，业务代码用zap.L()获取
// 3. 日志级别由配置控制（debug | info | warn | error）
func Init(level, format string) (*zap.Logger, error) {
	var cfg zap.Config
	if format == "console" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}

	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	lv, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("无效的日志级别%q: %w", level, err)
	}
	cfg.Level = zap.NewAtomicLevelAt(lv)

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("创建日志器失败: %w", err)
	}

	// 注册为全局日志器
	zap.ReplaceGlobals(logger)
	return logger, nil
}

// Named 返回带组件名的子日志器
func Named(base *zap.Logger, component string) *zap.Logger {
	if base == nil {
		return zap.NewNop()
	}
	return base.Named(component)
}
