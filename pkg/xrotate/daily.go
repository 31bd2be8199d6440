package xrotate

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// retainedFiles 按日轮转时目录中保留的同扩展名文件数。
// 修剪按修改时间从新到旧排序，超出部分被删除。
const retainedFiles = 30

// Daily 按自然日轮转策略
//
// 与按大小轮转不同，本策略不重命名固定文件，而是派生目标文件名：
// <stem>_<年>_<月>_<日><扩展名>（月、日不补零），sink 在每次重开前
// 重新查询 [Daily.FileName]，跨过轮转边界后活动文件自然切换到新日期。
//
// Rotate 执行的是保留数修剪而非重命名：删除目录中同扩展名文件里
// 修改时间最旧的、超出保留数的部分。
type Daily struct {
	fileName string
	hour     int
	minute   int
	next     time.Time
	onError  func(error)
	now      func() time.Time
}

// DailyOption Daily 策略配置选项
type DailyOption func(*Daily)

// WithRotationTime 设置每日轮转时刻（小时 0~23，分钟 0~59）。
// 超出范围的值在 [NewDaily] 中被拒绝。默认 00:00。
func WithRotationTime(hour, minute int) DailyOption {
	return func(d *Daily) {
		d.hour = hour
		d.minute = minute
	}
}

// WithDailyOnError 设置修剪错误回调。
// 默认回调输出到 os.Stderr。回调不得向使用本策略的 sink 写入数据。
func WithDailyOnError(fn func(error)) DailyOption {
	return func(d *Daily) {
		d.onError = fn
	}
}

// WithClock 注入时钟，用于测试或模拟时间。默认 time.Now。
func WithClock(now func() time.Time) DailyOption {
	return func(d *Daily) {
		d.now = now
	}
}

// NewDaily 创建按自然日轮转策略
func NewDaily(opts ...DailyOption) (*Daily, error) {
	d := &Daily{
		onError: defaultOnError,
		now:     time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}

	if d.hour < 0 || d.hour > 23 || d.minute < 0 || d.minute > 59 {
		return nil, fmt.Errorf("%w: got %02d:%02d", ErrInvalidRotationTime, d.hour, d.minute)
	}
	if d.now == nil {
		d.now = time.Now
	}
	return d, nil
}

// SetInitialInfo 记录基准文件名并计算首个轮转时点。
// 首个时点永远是"明天的 HH:MM:00"——即使今天的 HH:MM 还没过，
// 也不安排在当天，因此严格在未来且距今 <48h。
func (d *Daily) SetInitialInfo(name string, _ int64) {
	d.fileName = name
	d.next = d.nextRotation(d.now())
}

// IncludeMessage 基于时间而非大小，忽略消息
func (*Daily) IncludeMessage(string) {}

// ShouldRotate 判定当前时刻是否已越过轮转时点。
//
// 这是带副作用的查询：越过时点时除返回 true 外，还会把内部计划推进到
// 下一天。每个写入判定点只能调用一次，不能当作纯谓词反复询问。
func (d *Daily) ShouldRotate() bool {
	now := d.now()
	if now.After(d.next) {
		d.next = d.nextRotation(now)
		return true
	}
	return false
}

// Rotate 按保留数修剪日志目录。
//
// 列出目标文件所在目录中同扩展名的普通文件，按修改时间从新到旧排序，
// 保留前 30 个，删除其余。单个删除失败只上报不中断。
func (d *Daily) Rotate() {
	target := d.FileName()
	dir := filepath.Dir(target)
	ext := filepath.Ext(target)

	entries, err := os.ReadDir(dir)
	if err != nil {
		d.report(fmt.Errorf("read log directory %s: %w", dir, err))
		return
	}

	type logFile struct {
		path    string
		modTime time.Time
	}
	var files []logFile
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ext {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, logFile{
			path:    filepath.Join(dir, entry.Name()),
			modTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].modTime.After(files[j].modTime)
	})

	for i := retainedFiles; i < len(files); i++ {
		if err := os.Remove(files[i].path); err != nil {
			d.report(fmt.Errorf("prune old log %s: %w", files[i].path, err))
		}
	}
}

// FileName 计算"此刻"对应的目标文件名。
// 每次调用重新计算而不缓存，sink 在重开前查询即可拿到当前日期的文件名。
func (d *Daily) FileName() string {
	return calcFileName(d.fileName, d.now())
}

// OpenFlag 同一天内可能重开多次，以追加模式打开
func (*Daily) OpenFlag() int { return os.O_APPEND }

// nextRotation 把 t 的时刻设为 HH:MM:00，再加整整一个自然日
func (d *Daily) nextRotation(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, d.hour, d.minute, 0, 0, t.Location()).AddDate(0, 0, 1)
}

// calcFileName 派生某一时刻的日期文件名：<stem>_<年>_<月>_<日><扩展名>，
// 月、日不补零。"app.log" + 2024-03-05 → "app_2024_3_5.log"。
// 没有扩展名时直接追加日期后缀。
func calcFileName(name string, t time.Time) string {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	year, month, day := t.Date()
	return fmt.Sprintf("%s_%d_%d_%d%s", stem, year, int(month), day, ext)
}

func (d *Daily) report(err error) {
	reportError(d.onError, err)
}
