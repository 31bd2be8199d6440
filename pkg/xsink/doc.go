// Package xsink 提供把格式化日志行落盘的文件 sink。
//
// sink 只负责持久化：上游前端完成格式化（时间戳、级别标签）后调用
// [Sink.Write]，sink 原样写入并追加恰好一个换行符，不做任何再格式化，
// 也不按级别过滤（level 参数仅为接口对称性保留）。
//
// # Sink 实现
//
//   - [NewFile]: 固定文件名 + 可插拔轮转策略（见 pkg/xrotate）
//   - [NewDailyFile]: 文件名按日期派生，轮转即切换目标文件而非重命名
//   - [NewLumberjack]: 基于 lumberjack 的适配 sink，按大小轮转并生成
//     带时间戳的备份，适合需要按天数清理归档的部署
//
// # 生命周期与有效性
//
// [NewFile] 和 [NewDailyFile] 不返回错误：打开失败通过错误回调上报，
// sink 停留在无效状态，调用方通过 [Sink.IsValid] 检测并决定丢弃消息或
// 切换目标。对无效 sink 调用 Write 是安全的空操作。
//
// # 错误处理
//
// 普通 I/O 失败不会越过 sink 边界：全部通过 [WithOnError] 回调上报后
// 就地吸收——日志子系统自身绝不能搞垮宿主进程。默认回调输出到
// os.Stderr。回调不得向同一 sink 写入数据，否则会递归。
//
// # 并发
//
// 单写者模型：sink 假定 Write 被顺序调用，由前端在到达 sink 之前
// 串行化并发调用（如单一分发点或外部互斥锁），sink 内部不加锁。
// 轮转边界上的那次 Write 需要 O(备份数) 或 O(目录项数) 次文件系统
// 操作，调用方应预期该次写入的延迟尖峰。
package xsink
