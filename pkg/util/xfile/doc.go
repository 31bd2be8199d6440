// Package xfile 提供日志文件路径的基础操作。
//
// 本包是 sink 打开日志文件前的薄 I/O 封装：
//
//   - [SanitizePath]: 路径格式净化，拒绝空路径、空字节、目录路径和相对路径穿越
//   - [EnsureDir] / [EnsureDirWithPerm]: 确保文件的父目录存在
//
// # 安全边界
//
// SanitizePath 只做格式净化，不做目录隔离。日志路径来自进程自身配置而非
// 不可信输入，对抗性场景应配合操作系统权限控制。
//
// 路径穿越检测按路径段精确匹配：只有 ".." 作为独立路径段才被拒绝，
// "app..2024.log" 这类合法文件名不会被误判。
//
// # 错误处理
//
// 预定义错误变量支持 [errors.Is] 判断。
package xfile
