package xrotate

import (
	"fmt"
	"os"
)

// Size 策略的默认配置与上限
const (
	// DefaultMaxSizeBytes 默认单个日志文件最大字节数（10 MiB）
	DefaultMaxSizeBytes = 10 * 1024 * 1024

	// DefaultBackupCount 默认保留的备份数量
	DefaultBackupCount = 3

	// MaxBackupCount 备份数量硬上限。
	// 超出的配置值会被钳制到此值而非报错（刻意行为，区别于负数校验）。
	MaxBackupCount = 10
)

// Size 按大小轮转策略
//
// 累计每条消息的 UTF-8 字节长度，超过上限（严格大于）时轮转。
// 备份链为 <path>.1（最新）.. <path>.N（最旧），N ≤ [MaxBackupCount]；
// 轮转把既有备份整体上移一位，最旧的被丢弃，当前文件变为 .1。
type Size struct {
	fileName string
	current  int64
	max      int64
	backups  int
	onError  func(error)
}

// SizeOption Size 策略配置选项
type SizeOption func(*Size)

// WithMaxSize 设置单个日志文件最大字节数。
// 负数在 [NewSize] 中被拒绝；0 合法，表示每条消息都触发轮转。
func WithMaxSize(bytes int64) SizeOption {
	return func(s *Size) {
		s.max = bytes
	}
}

// WithBackupCount 设置保留的备份数量。
// 负数在 [NewSize] 中被拒绝；超过 [MaxBackupCount] 的值被钳制到上限。
// 0 表示不保留备份：轮转时直接删除当前日志文件。
func WithBackupCount(n int) SizeOption {
	return func(s *Size) {
		s.backups = n
	}
}

// WithSizeOnError 设置轮转错误回调。
// 默认回调输出到 os.Stderr。回调不得向使用本策略的 sink 写入数据。
func WithSizeOnError(fn func(error)) SizeOption {
	return func(s *Size) {
		s.onError = fn
	}
}

// NewSize 创建按大小轮转策略
func NewSize(opts ...SizeOption) (*Size, error) {
	s := &Size{
		max:     DefaultMaxSizeBytes,
		backups: DefaultBackupCount,
		onError: defaultOnError,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	if s.max < 0 {
		return nil, fmt.Errorf("%w: got %d, want >= 0", ErrInvalidMaxSize, s.max)
	}
	if s.backups < 0 {
		return nil, fmt.Errorf("%w: got %d, want >= 0", ErrInvalidBackupCount, s.backups)
	}
	// 上限钳制而非拒绝
	if s.backups > MaxBackupCount {
		s.backups = MaxBackupCount
	}
	return s, nil
}

// SetInitialInfo 记录文件名，并以磁盘上的当前大小重置累计字节数。
// sink 构造后和每次轮转重开后都会调用，计数因此隐式归零。
func (s *Size) SetInitialInfo(name string, size int64) {
	s.fileName = name
	s.current = size
}

// IncludeMessage 累加消息的 UTF-8 字节长度
func (s *Size) IncludeMessage(message string) {
	s.current += int64(len(message))
}

// ShouldRotate 严格大于才轮转：恰好落在边界上的消息不触发
func (s *Size) ShouldRotate() bool {
	return s.current > s.max
}

// Rotate 执行备份链上移。
//
// 备份命名为 <path>.X（1 ≤ X ≤ backups）。步骤：
//  1. 从 .1 向上扫描找到最后一个可上移的备份，上限钳在 backups-1，
//     保证上移后不会产生越过 .backups 的文件
//  2. 从高到低依次 .i → .(i+1)，先删除既有目标（覆盖语义）；
//     必须降序，否则会在上移前破坏尚未处理的备份
//  3. 当前日志文件改名为 .1
//
// backups == 0 时不保留任何备份，直接删除当前日志文件。
// 任何单步失败只上报不中断。
func (s *Size) Rotate() {
	if s.backups == 0 {
		if err := os.Remove(s.fileName); err != nil {
			s.report(fmt.Errorf("remove log %s: %w", s.fileName, err))
		}
		return
	}

	// 1. 找到最后一个可上移的备份
	lastShiftable := 0
	for i := 1; i <= s.backups; i++ {
		if _, err := os.Stat(s.backupName(i)); err != nil {
			break
		}
		lastShiftable = min(i, s.backups-1)
	}

	// 2. 从高到低上移
	for i := lastShiftable; i >= 1; i-- {
		oldName, newName := s.backupName(i), s.backupName(i+1)
		_ = os.Remove(newName)
		if err := os.Rename(oldName, newName); err != nil {
			s.report(fmt.Errorf("rename backup %s to %s: %w", oldName, newName, err))
		}
	}

	// 3. 当前日志变为最新备份
	first := s.backupName(1)
	_ = os.Remove(first)
	if err := os.Rename(s.fileName, first); err != nil {
		s.report(fmt.Errorf("rename log %s to %s: %w", s.fileName, first, err))
	}
}

// FileName 固定文件名策略，返回空串
func (*Size) FileName() string { return "" }

// OpenFlag 轮转已经移走了旧内容，新文件以追加模式打开
func (*Size) OpenFlag() int { return os.O_APPEND }

func (s *Size) backupName(i int) string {
	return fmt.Sprintf("%s.%d", s.fileName, i)
}

func (s *Size) report(err error) {
	reportError(s.onError, err)
}
