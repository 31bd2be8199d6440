package xsink

import (
	"fmt"
	"os"

	"github.com/jinlong631/QsLog/pkg/util/xfile"
	"github.com/jinlong631/QsLog/pkg/xrotate"
)

// DailyFileSink 按日期派生文件名的日志 sink
//
// 与 [FileSink] 的区别在于文件名本身：目标文件名在每次打开/重开时
// 向策略查询（[xrotate.Strategy.FileName]），"轮转"意味着切换目标
// 文件而非重命名固定文件。跨过轮转边界后，策略先执行保留数修剪，
// 随后 sink 以新日期的文件名重开。
//
// 通常与 [xrotate.NewDaily] 搭配使用。
type DailyFileSink struct {
	basePath string
	file     *os.File
	strategy xrotate.Strategy
	onError  func(error)
	closed   bool
}

// NewDailyFile 创建按日期派生文件名的 sink。
//
// 构造时先以基准路径调用 strategy.SetInitialInfo（建立轮转计划），
// 再向策略查询"今天的文件名"并打开它；策略不派生文件名时退回基准
// 路径。构造永不失败，失败状态通过 [DailyFileSink.IsValid] 暴露。
func NewDailyFile(path string, strategy xrotate.Strategy, opts ...Option) *DailyFileSink {
	cfg := newSinkConfig(opts)
	if strategy == nil {
		strategy = xrotate.NewNull()
	}
	s := &DailyFileSink{
		basePath: path,
		strategy: strategy,
		onError:  cfg.onError,
	}

	clean, err := xfile.SanitizePath(path)
	if err != nil {
		s.report(fmt.Errorf("invalid log path %q: %w", path, err))
		return s
	}
	s.basePath = clean

	strategy.SetInitialInfo(clean, 0)
	s.open()
	return s
}

// Write 写入一条消息并追加换行。
//
// 基于时间的策略不做字节统计，这里刻意不调用 IncludeMessage；
// 轮转后也刻意不重新调用 SetInitialInfo——计划已在 ShouldRotate
// 内部推进过了。level 仅为接口对称性保留。
func (s *DailyFileSink) Write(message string, _ Level) {
	if s.file == nil {
		return
	}

	if s.strategy.ShouldRotate() {
		if err := s.file.Close(); err != nil {
			s.report(fmt.Errorf("close log file %s: %w", s.file.Name(), err))
		}
		s.file = nil

		s.strategy.Rotate()

		s.open()
		if s.file == nil {
			return
		}
	}

	if _, err := s.file.WriteString(message + "\n"); err != nil {
		s.report(fmt.Errorf("write log file %s: %w", s.file.Name(), err))
	}
}

// IsValid 返回底层句柄当前是否打开
func (s *DailyFileSink) IsValid() bool {
	return s.file != nil
}

// Close 释放文件句柄，重复调用返回 [ErrClosed]
func (s *DailyFileSink) Close() error {
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

// open 查询当前目标文件名并打开，失败只上报，句柄保持 nil
func (s *DailyFileSink) open() {
	name := s.strategy.FileName()
	if name == "" {
		name = s.basePath
	}

	if err := xfile.EnsureDir(name); err != nil {
		s.report(fmt.Errorf("create log directory for %s: %w", name, err))
		return
	}

	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|s.strategy.OpenFlag(), defaultFileMode)
	if err != nil {
		s.report(fmt.Errorf("open log file %s: %w", name, err))
		return
	}
	s.file = f
}

func (s *DailyFileSink) report(err error) {
	reportError(s.onError, err)
}
