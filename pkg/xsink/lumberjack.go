package xsink

import (
	"fmt"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/jinlong631/QsLog/pkg/util/xfile"
)

// LumberjackSink 的默认配置与上限
const (
	// DefaultMaxSizeMB 默认单个日志文件最大大小（MB）
	DefaultMaxSizeMB = 100

	// DefaultMaxBackups 默认保留的备份文件数量
	DefaultMaxBackups = 7

	// DefaultMaxAgeDays 默认保留备份的天数
	DefaultMaxAgeDays = 30

	// maxSizeMB 单个日志文件大小上限（10 GB）
	maxSizeMB = 10240

	// maxBackups 备份文件数量上限
	maxBackups = 1024

	// maxAgeDays 备份保留天数上限（约 10 年）
	maxAgeDays = 3650
)

// LumberjackOption LumberjackSink 配置选项
type LumberjackOption func(*lumberjackConfig)

type lumberjackConfig struct {
	maxSizeMB  int
	maxBackups int
	maxAgeDays int
	onError    func(error)
}

// WithMaxSizeMB 设置单个日志文件最大大小（MB），超过时触发轮转
func WithMaxSizeMB(mb int) LumberjackOption {
	return func(c *lumberjackConfig) {
		c.maxSizeMB = mb
	}
}

// WithMaxBackups 设置保留的备份文件数量，0 表示不按数量清理
// （但仍受 MaxAgeDays 约束）
func WithMaxBackups(n int) LumberjackOption {
	return func(c *lumberjackConfig) {
		c.maxBackups = n
	}
}

// WithMaxAgeDays 设置保留备份的天数，0 表示不按天数清理
// （但仍受 MaxBackups 约束）
func WithMaxAgeDays(days int) LumberjackOption {
	return func(c *lumberjackConfig) {
		c.maxAgeDays = days
	}
}

// WithLumberjackOnError 设置写入错误回调。
// 默认回调输出到 os.Stderr。回调不得向同一 sink 写入数据。
func WithLumberjackOnError(fn func(error)) LumberjackOption {
	return func(c *lumberjackConfig) {
		c.onError = fn
	}
}

// LumberjackSink 基于 lumberjack 的日志 sink
//
// 与 [FileSink]+按大小策略的 .1..N 备份链不同，lumberjack 生成带时间戳
// 的备份文件（<name>-<timestamp><ext>），并支持按保留天数清理归档，
// 适合归档需要对接按日期检索的部署。备份不压缩。
type LumberjackSink struct {
	logger  *lumberjack.Logger
	onError func(error)
	closed  bool
}

// NewLumberjack 创建基于 lumberjack 的 sink。
//
// 与 [NewFile] 不同，配置非法时直接返回错误而非无效 sink：lumberjack
// 的清理策略必须在构造时确定。路径会被规范化，父目录自动创建。
func NewLumberjack(path string, opts ...LumberjackOption) (*LumberjackSink, error) {
	if path == "" {
		return nil, ErrEmptyFilename
	}

	cfg := lumberjackConfig{
		maxSizeMB:  DefaultMaxSizeMB,
		maxBackups: DefaultMaxBackups,
		maxAgeDays: DefaultMaxAgeDays,
		onError:    defaultOnError,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	clean, err := xfile.SanitizePath(path)
	if err != nil {
		return nil, err
	}
	if err := xfile.EnsureDir(clean); err != nil {
		return nil, err
	}

	return &LumberjackSink{
		logger: &lumberjack.Logger{
			Filename:   clean,
			MaxSize:    cfg.maxSizeMB,
			MaxBackups: cfg.maxBackups,
			MaxAge:     cfg.maxAgeDays,
			// 归档不压缩
			Compress: false,
		},
		onError: cfg.onError,
	}, nil
}

func (c *lumberjackConfig) validate() error {
	if c.maxSizeMB <= 0 || c.maxSizeMB > maxSizeMB {
		return fmt.Errorf("%w: got %d, want 1~%d", ErrInvalidMaxSizeMB, c.maxSizeMB, maxSizeMB)
	}
	if c.maxBackups < 0 || c.maxBackups > maxBackups {
		return fmt.Errorf("%w: got %d, want 0~%d", ErrInvalidMaxBackups, c.maxBackups, maxBackups)
	}
	if c.maxAgeDays < 0 || c.maxAgeDays > maxAgeDays {
		return fmt.Errorf("%w: got %d, want 0~%d", ErrInvalidMaxAgeDays, c.maxAgeDays, maxAgeDays)
	}
	if c.maxBackups == 0 && c.maxAgeDays == 0 {
		return fmt.Errorf("%w: MaxBackups and MaxAgeDays cannot both be 0", ErrNoCleanupPolicy)
	}
	return nil
}

// Write 写入一条消息并追加换行，写入错误通过回调上报。
// level 仅为接口对称性保留。
func (s *LumberjackSink) Write(message string, _ Level) {
	if s.closed {
		return
	}
	if _, err := s.logger.Write([]byte(message + "\n")); err != nil {
		s.report(fmt.Errorf("write log file %s: %w", s.logger.Filename, err))
	}
}

// IsValid 关闭前始终有效：lumberjack 延迟打开文件，写入失败通过回调上报
func (s *LumberjackSink) IsValid() bool {
	return !s.closed
}

// Close 关闭底层文件，重复调用返回 [ErrClosed]
func (s *LumberjackSink) Close() error {
	if s.closed {
		return ErrClosed
	}
	s.closed = true
	return s.logger.Close()
}

func (s *LumberjackSink) report(err error) {
	reportError(s.onError, err)
}
