package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"inventra/backend/config"
)

func TestNewLogger_Level(t *testing.T) {
	l, err := NewLogger(&config.LogConfig{Level: "warn", Format: "json"})
	if err != nil {
		t.Fatalf("NewLogger 失败: %v", err)
	}
	if l.Core().Enabled(zapcore.InfoLevel) {
		t.Error("warn 级别下 info 不应输出")
	}
	if !l.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("warn 级别下 error 应输出")
	}
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	if _, err := NewLogger(&config.LogConfig{Level: "verbose"}); err == nil {
		t.Error("无效级别应返回错误")
	}
}
