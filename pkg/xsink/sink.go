package xsink

import (
	"fmt"
	"os"
)

// 编译时断言：所有 sink 实现 Sink 接口
var (
	_ Sink = (*FileSink)(nil)
	_ Sink = (*DailyFileSink)(nil)
	_ Sink = (*LumberjackSink)(nil)
)

// 日志文件权限。
// 0644：所有者读写，组和其他只读，归档文件对运维工具可读。
//
//#nosec G302 G306 -- 日志文件需要对同机读取方可见
const defaultFileMode = 0o644

// Sink 日志落盘目标
//
// 前端持有一个或多个 Sink，对每条已格式化的消息调用 Write。
// 实现约定：
//   - Write 追加恰好一个换行符，不做再格式化，不按 level 过滤
//   - Write 对无效或已关闭的 sink 是安全的空操作
//   - Close 后再次 Close 返回 [ErrClosed]
//   - 非并发安全，调用方负责串行化（见包文档）
type Sink interface {
	// Write 写入一条已格式化的日志行
	Write(message string, level Level)

	// IsValid 返回底层文件句柄当前是否打开
	IsValid() bool

	// Close 释放底层文件句柄
	Close() error
}

// Option sink 配置选项
type Option func(*sinkConfig)

type sinkConfig struct {
	onError func(error)
}

// WithOnError 设置 sink 的错误回调（打开失败、写入失败、重开失败）。
// 默认回调输出到 os.Stderr。回调不得向同一 sink 写入数据，否则会递归。
func WithOnError(fn func(error)) Option {
	return func(c *sinkConfig) {
		c.onError = fn
	}
}

func newSinkConfig(opts []Option) sinkConfig {
	cfg := sinkConfig{onError: defaultOnError}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// reportError 通过回调上报内部错误，回调 panic 被 recover 隔离。
//
// 设计决策: 不经由日志库上报自身错误，sink 本身就是日志输出目标，
// 经日志库会递归写入。
func reportError(fn func(error), err error) {
	if err == nil || fn == nil {
		return
	}
	defer func() { _ = recover() }()
	fn(err)
}

// defaultOnError 默认错误回调：报告到标准错误流
func defaultOnError(err error) {
	fmt.Fprintf(os.Stderr, "qslog: %v\n", err)
}
