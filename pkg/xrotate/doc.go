// Package xrotate 提供日志文件的轮转策略对象。
//
// [Strategy] 接口把"何时轮转、如何归档、重开时用什么打开模式"从 sink 中
// 剥离出来，sink（见 pkg/xsink）在每次写入前后咨询策略并执行其决定。
//
// # 内置策略
//
//   - [NewNull]: 永不轮转，打开时截断既有文件
//   - [NewSize]: 按累计字节数轮转，维护 <path>.1..N 备份链（N ≤ 10）
//   - [NewDaily]: 按自然日轮转，文件名按日期派生，目录保留最近 30 个文件
//
// # 共享与生命周期
//
// 策略对象内部持有累计状态（字节计数 / 下次轮转时点），必须以指针形式
// 在 sink 之间共享，不能按值复制；更换 sink 时沿用同一个策略实例即可
// 保留计数。
//
// # 错误处理
//
// Rotate 过程中的重命名/删除失败是 best-effort 事件：通过 OnError 回调
// 上报后继续执行剩余步骤，不会中断轮转序列，更不会让错误越过接口边界。
// 默认回调输出到 os.Stderr。
//
// 设计决策: 不经由日志库上报内部错误，避免策略服务于日志输出目标时
// 产生递归写入（写失败 → 打日志 → 再写失败）。
//
// # 并发
//
// 策略对象与使用它的 sink 同属单写者模型：调用方负责在到达 sink 之前
// 串行化并发写入，策略内部不加锁。
package xrotate
