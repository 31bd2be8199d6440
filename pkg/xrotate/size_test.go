package xrotate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeLiveFile 写入（或覆盖）当前日志文件
func writeLiveFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// =============================================================================
// 构造与配置校验
// =============================================================================

// TestNewSizeDefaults 不传选项时使用默认配置
func TestNewSizeDefaults(t *testing.T) {
	s, err := NewSize()
	require.NoError(t, err)

	assert.Equal(t, int64(DefaultMaxSizeBytes), s.max)
	assert.Equal(t, DefaultBackupCount, s.backups)
}

// TestNewSizeValidation 负数配置在构造时被拒绝
func TestNewSizeValidation(t *testing.T) {
	tests := []struct {
		name    string
		opts    []SizeOption
		wantErr error
	}{
		{
			name:    "最大大小为负数",
			opts:    []SizeOption{WithMaxSize(-1)},
			wantErr: ErrInvalidMaxSize,
		},
		{
			name:    "备份数量为负数",
			opts:    []SizeOption{WithBackupCount(-1)},
			wantErr: ErrInvalidBackupCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSize(tt.opts...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// TestNewSizeZeroValuesAllowed 0 是合法配置：max=0 每条都轮转，backups=0 不留备份
func TestNewSizeZeroValuesAllowed(t *testing.T) {
	s, err := NewSize(WithMaxSize(0), WithBackupCount(0))
	require.NoError(t, err)
	assert.Equal(t, int64(0), s.max)
	assert.Equal(t, 0, s.backups)
}

// TestNewSizeNilOption nil 选项被静默忽略
func TestNewSizeNilOption(t *testing.T) {
	s, err := NewSize(nil, WithMaxSize(100), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(100), s.max)
}

// TestBackupCountClamp 备份数量钳制到硬上限 10：0..15 全部验证
func TestBackupCountClamp(t *testing.T) {
	for b := 0; b <= 15; b++ {
		t.Run(fmt.Sprintf("backups=%d", b), func(t *testing.T) {
			s, err := NewSize(WithBackupCount(b))
			require.NoError(t, err)

			want := min(b, MaxBackupCount)
			assert.Equal(t, want, s.backups)
		})
	}
}

// =============================================================================
// 轮转判定
// =============================================================================

// TestSizeShouldRotateBoundary 严格大于才轮转：恰好落在边界上不触发
func TestSizeShouldRotateBoundary(t *testing.T) {
	s, err := NewSize(WithMaxSize(100))
	require.NoError(t, err)
	s.SetInitialInfo("app.log", 0)

	s.IncludeMessage(strings.Repeat("x", 100))
	assert.False(t, s.ShouldRotate(), "累计字节数恰好等于上限时不轮转")

	s.IncludeMessage("x")
	assert.True(t, s.ShouldRotate(), "超过上限一个字节即轮转")
}

// TestSizeIncludeMessageUTF8 按 UTF-8 字节长度计数，不是按字符数
func TestSizeIncludeMessageUTF8(t *testing.T) {
	s, err := NewSize(WithMaxSize(8))
	require.NoError(t, err)
	s.SetInitialInfo("app.log", 0)

	// 3 个汉字 = 9 字节 > 8
	s.IncludeMessage("日志行")
	assert.True(t, s.ShouldRotate())
}

// TestSizeSetInitialInfoResetsCounter SetInitialInfo 以磁盘大小重置累计值
func TestSizeSetInitialInfoResetsCounter(t *testing.T) {
	s, err := NewSize(WithMaxSize(100))
	require.NoError(t, err)

	s.SetInitialInfo("app.log", 0)
	s.IncludeMessage(strings.Repeat("x", 200))
	require.True(t, s.ShouldRotate())

	// 轮转重开后 sink 会重新上报新文件大小
	s.SetInitialInfo("app.log", 0)
	assert.False(t, s.ShouldRotate())

	// 既有文件的大小作为计数起点
	s.SetInitialInfo("app.log", 90)
	s.IncludeMessage(strings.Repeat("x", 20))
	assert.True(t, s.ShouldRotate())
}

// =============================================================================
// 备份链
// =============================================================================

// TestSizeRotateNoBackups backups=0 时直接删除日志文件，不产生 .1
func TestSizeRotateNoBackups(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "app.log")

	s, err := NewSize(WithBackupCount(0))
	require.NoError(t, err)
	s.SetInitialInfo(logPath, 0)

	writeLiveFile(t, logPath, "content")
	s.Rotate()

	assert.False(t, fileExists(logPath), "日志文件应被删除")
	assert.False(t, fileExists(logPath+".1"), "不应产生任何备份")
}

// TestSizeRotateFirstBackup 首次轮转：当前日志变为 .1
func TestSizeRotateFirstBackup(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "app.log")

	s, err := NewSize(WithBackupCount(2))
	require.NoError(t, err)
	s.SetInitialInfo(logPath, 0)

	writeLiveFile(t, logPath, "round 1")
	s.Rotate()

	assert.False(t, fileExists(logPath))
	got, err := os.ReadFile(logPath + ".1")
	require.NoError(t, err)
	assert.Equal(t, "round 1", string(got))
}

// TestSizeRotateChain 连续轮转：.1 最新，最旧的被丢弃，备份数不超过配置值
func TestSizeRotateChain(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "app.log")

	s, err := NewSize(WithBackupCount(2))
	require.NoError(t, err)
	s.SetInitialInfo(logPath, 0)

	for i := 1; i <= 4; i++ {
		writeLiveFile(t, logPath, fmt.Sprintf("round %d", i))
		s.Rotate()
	}

	// 4 次轮转后只剩 .1（最新）和 .2，round 1/2 已被丢弃
	got1, err := os.ReadFile(logPath + ".1")
	require.NoError(t, err)
	assert.Equal(t, "round 4", string(got1))

	got2, err := os.ReadFile(logPath + ".2")
	require.NoError(t, err)
	assert.Equal(t, "round 3", string(got2))

	assert.False(t, fileExists(logPath+".3"), "不应产生越过备份上限的文件")
	assert.False(t, fileExists(logPath))
}

// TestSizeRotateExactBackupCount 边界验证：饱和轮转后恰好保留 backups 个备份，
// 命名为 .1..backups（上移钳制在 backups-1 的意义所在）
func TestSizeRotateExactBackupCount(t *testing.T) {
	const backups = 3
	dir := t.TempDir()
	logPath := filepath.Join(dir, "app.log")

	s, err := NewSize(WithBackupCount(backups))
	require.NoError(t, err)
	s.SetInitialInfo(logPath, 0)

	// 远多于 backups 次的轮转
	for i := 1; i <= backups*3; i++ {
		writeLiveFile(t, logPath, fmt.Sprintf("round %d", i))
		s.Rotate()
	}

	for i := 1; i <= backups; i++ {
		assert.True(t, fileExists(fmt.Sprintf("%s.%d", logPath, i)), "应存在 .%d", i)
	}
	assert.False(t, fileExists(fmt.Sprintf("%s.%d", logPath, backups+1)))

	// .1 持有最近一次轮转的内容
	got, err := os.ReadFile(logPath + ".1")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("round %d", backups*3), string(got))
}

// TestSizeRotateReportsFailure 轮转失败只上报不 panic，序列继续
func TestSizeRotateReportsFailure(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "app.log")

	var reported []error
	s, err := NewSize(
		WithBackupCount(2),
		WithSizeOnError(func(err error) { reported = append(reported, err) }),
	)
	require.NoError(t, err)
	s.SetInitialInfo(logPath, 0)

	// 日志文件不存在，最后一步 rename 必然失败
	s.Rotate()
	require.NotEmpty(t, reported)
}

// TestSizeRotateCallbackPanicIsolated 回调 panic 不扩散到调用方
func TestSizeRotateCallbackPanicIsolated(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "missing.log")

	s, err := NewSize(
		WithBackupCount(1),
		WithSizeOnError(func(error) { panic("callback exploded") }),
	)
	require.NoError(t, err)
	s.SetInitialInfo(logPath, 0)

	assert.NotPanics(t, func() { s.Rotate() })
}

// TestSizeOpenFlag 轮转后以追加模式重开
func TestSizeOpenFlag(t *testing.T) {
	s, err := NewSize()
	require.NoError(t, err)
	assert.Equal(t, os.O_APPEND, s.OpenFlag())
	assert.Empty(t, s.FileName())
}
