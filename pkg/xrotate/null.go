package xrotate

import "os"

// Null 不轮转策略：永不轮转，打开时截断既有内容。
// 无任何内部状态，是纯粹的策略对象。
type Null struct{}

// NewNull 创建不轮转策略
func NewNull() *Null {
	return &Null{}
}

// SetInitialInfo 无状态，忽略
func (*Null) SetInitialInfo(string, int64) {}

// IncludeMessage 无状态，忽略
func (*Null) IncludeMessage(string) {}

// ShouldRotate 永远返回 false
func (*Null) ShouldRotate() bool { return false }

// Rotate 无动作
func (*Null) Rotate() {}

// FileName 固定文件名策略，返回空串
func (*Null) FileName() string { return "" }

// OpenFlag 打开时丢弃既有内容
func (*Null) OpenFlag() int { return os.O_TRUNC }
