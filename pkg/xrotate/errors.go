package xrotate

import "errors"

// 配置校验错误
var (
	// ErrInvalidMaxSize 最大文件大小为负数
	ErrInvalidMaxSize = errors.New("xrotate: invalid max size")

	// ErrInvalidBackupCount 备份数量为负数
	ErrInvalidBackupCount = errors.New("xrotate: invalid backup count")

	// ErrInvalidRotationTime 轮转时刻超出 00:00~23:59 范围
	ErrInvalidRotationTime = errors.New("xrotate: invalid rotation time")
)
