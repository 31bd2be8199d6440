package xsink

import (
	"fmt"
	"os"

	"github.com/jinlong631/QsLog/pkg/util/xfile"
	"github.com/jinlong631/QsLog/pkg/xrotate"
)

// FileSink 固定文件名的日志 sink
//
// 独占一个打开的文件句柄，并以共享引用的方式持有一个轮转策略：
// 策略的累计计数反映本 sink 的全部写入活动，更换 sink 时传入同一个
// 策略实例即可延续计数。
//
// 写入序列（每次 Write）：
//
//	IncludeMessage → ShouldRotate → [关闭句柄 → Rotate → 按策略标志重开
//	→ SetInitialInfo] → 写入消息 + 换行
//
// *os.File 的写入不经过用户态缓冲，Write 返回即落到内核，崩溃时
// 不存在未刷出的尾部（持久性优先于吞吐）。
type FileSink struct {
	path     string
	file     *os.File
	strategy xrotate.Strategy
	onError  func(error)
	closed   bool
}

// NewFile 创建固定文件名的 sink。
//
// 打开模式为 写入 | 创建 | 策略推荐标志（按大小/按日轮转是追加，
// 不轮转是截断），父目录不存在时自动创建。打开成功后立即以文件的
// 磁盘大小调用一次 strategy.SetInitialInfo。
//
// 构造永不失败：路径非法或打开失败通过错误回调上报，sink 停留在
// 无效状态，由调用方通过 [FileSink.IsValid] 检测。strategy 为 nil 时
// 使用不轮转策略。
func NewFile(path string, strategy xrotate.Strategy, opts ...Option) *FileSink {
	cfg := newSinkConfig(opts)
	if strategy == nil {
		strategy = xrotate.NewNull()
	}
	s := &FileSink{
		path:     path,
		strategy: strategy,
		onError:  cfg.onError,
	}

	clean, err := xfile.SanitizePath(path)
	if err != nil {
		s.report(fmt.Errorf("invalid log path %q: %w", path, err))
		return s
	}
	s.path = clean

	if err := xfile.EnsureDir(clean); err != nil {
		s.report(fmt.Errorf("create log directory for %s: %w", clean, err))
		return s
	}

	f, err := os.OpenFile(clean, os.O_WRONLY|os.O_CREATE|strategy.OpenFlag(), defaultFileMode)
	if err != nil {
		s.report(fmt.Errorf("open log file %s: %w", clean, err))
		return s
	}
	s.file = f
	strategy.SetInitialInfo(clean, fileSize(f))
	return s
}

// Write 写入一条消息并追加换行。
//
// level 仅为接口对称性保留，本 sink 不按级别过滤（过滤是前端的职责）。
// sink 无效时为空操作。轮转重开失败时消息被丢弃，sink 转为无效。
func (s *FileSink) Write(message string, _ Level) {
	if s.file == nil {
		return
	}

	s.strategy.IncludeMessage(message)
	if s.strategy.ShouldRotate() {
		if err := s.file.Close(); err != nil {
			s.report(fmt.Errorf("close log file %s: %w", s.path, err))
		}
		s.file = nil

		s.strategy.Rotate()

		f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|s.strategy.OpenFlag(), defaultFileMode)
		if err != nil {
			s.report(fmt.Errorf("reopen log file %s: %w", s.path, err))
			return
		}
		s.file = f
		s.strategy.SetInitialInfo(s.path, fileSize(f))
	}

	if _, err := s.file.WriteString(message + "\n"); err != nil {
		s.report(fmt.Errorf("write log file %s: %w", s.path, err))
	}
}

// IsValid 返回底层句柄当前是否打开
func (s *FileSink) IsValid() bool {
	return s.file != nil
}

// Close 释放文件句柄，重复调用返回 [ErrClosed]
func (s *FileSink) Close() error {
	if s.closed {
		return ErrClosed
	}
	s.closed = true
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

func (s *FileSink) report(err error) {
	reportError(s.onError, err)
}

func fileSize(f *os.File) int64 {
	info, err := f.Stat()
	if err != nil {
		return 0
	}
	return info.Size()
}
