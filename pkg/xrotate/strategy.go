package xrotate

import (
	"fmt"
	"os"
)

// 编译时断言：内置策略都实现 Strategy 接口
var (
	_ Strategy = (*Null)(nil)
	_ Strategy = (*Size)(nil)
	_ Strategy = (*Daily)(nil)
)

// Strategy 日志轮转策略接口
//
// sink 在每次写入时按固定顺序咨询策略：
//
//	IncludeMessage → ShouldRotate → [Rotate → 以 OpenFlag 重开 → SetInitialInfo]
//
// 实现约定：
//   - SetInitialInfo 在 sink 构造后和每次轮转重开后各调用一次
//     （按日期派生文件名的 sink 在轮转后刻意不重新调用，见 xsink）
//   - IncludeMessage 必须在 ShouldRotate 之前调用，使判定看到写入后的状态
//   - ShouldRotate 允许带副作用（如推进内部计划），因此每个判定点只能调用一次
//   - Rotate 是 best-effort：单步失败通过 OnError 回调上报后继续，不返回错误
//   - 策略不是并发安全的，依赖 sink 的单写者模型
type Strategy interface {
	// SetInitialInfo 记录目标文件的路径与当前磁盘大小
	SetInitialInfo(name string, size int64)

	// IncludeMessage 把一条待写消息计入轮转判定（按 UTF-8 字节长度）
	IncludeMessage(message string)

	// ShouldRotate 判定本次写入是否需要先轮转
	ShouldRotate() bool

	// Rotate 执行归档/清理动作（重命名备份链或按保留数修剪目录）
	Rotate()

	// FileName 计算"此刻"的目标文件名；固定文件名的策略返回 ""
	FileName() string

	// OpenFlag 返回重开文件时应追加的打开标志
	// （os.O_APPEND 或 os.O_TRUNC，与 os.O_WRONLY|os.O_CREATE 组合使用）
	OpenFlag() int
}

// reportError 通过回调上报轮转过程中的内部错误。
//
// 设计决策: 日志子系统遵循"失败不扩散"原则——回调 panic 被 recover 隔离，
// 不会中断宿主进程的写入路径。
func reportError(fn func(error), err error) {
	if err == nil || fn == nil {
		return
	}
	defer func() { _ = recover() }()
	fn(err)
}

// defaultOnError 默认错误回调：报告到标准错误流。
// 注意：自定义回调不得向同一个 sink 写入数据，否则会递归。
func defaultOnError(err error) {
	fmt.Fprintf(os.Stderr, "qslog: %v\n", err)
}
