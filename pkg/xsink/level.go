package xsink

import (
	"fmt"
	"log/slog"
	"strings"
)

// Level 日志级别，数值域与 slog.Level 兼容。
//
// sink 本身不按级别过滤（过滤是前端的职责），Write 携带级别只为
// 接口对称性；类型提供给前端做配置序列化和比较。
type Level slog.Level

// 日志级别常量。Trace/Fatal/Off 按 slog 的 4 级间距向两端扩展。
const (
	LevelTrace = Level(slog.LevelDebug - 4)
	LevelDebug = Level(slog.LevelDebug)
	LevelInfo  = Level(slog.LevelInfo)
	LevelWarn  = Level(slog.LevelWarn)
	LevelError = Level(slog.LevelError)
	LevelFatal = Level(slog.LevelError + 4)

	// LevelOff 高于所有级别，表示禁用输出
	LevelOff = Level(slog.LevelError + 8)
)

// String 返回级别的大写名称，非标准级别委托给 slog.Level.String()
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	case LevelOff:
		return "OFF"
	default:
		return slog.Level(l).String()
	}
}

// MarshalText 实现 encoding.TextMarshaler，支持配置序列化
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler，支持从配置文件反序列化
func (l *Level) UnmarshalText(data []byte) error {
	parsed, err := ParseLevel(string(data))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLevel 解析字符串为日志级别。
// 支持 trace/debug/info/warn/warning/error/fatal/off，大小写不敏感，
// 输入自动 TrimSpace。
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "fatal":
		return LevelFatal, nil
	case "off":
		return LevelOff, nil
	default:
		return LevelInfo, fmt.Errorf("xsink: unknown level %q", s)
	}
}
