package xsink

import "errors"

var (
	// ErrClosed sink 已关闭，重复 Close 返回此错误
	ErrClosed = errors.New("xsink: sink is closed")

	// ErrEmptyFilename 文件名为空
	ErrEmptyFilename = errors.New("xsink: filename is required")

	// ErrInvalidMaxSizeMB MaxSizeMB 超出 1~10240 范围
	ErrInvalidMaxSizeMB = errors.New("xsink: invalid MaxSizeMB")

	// ErrInvalidMaxBackups MaxBackups 超出 0~1024 范围
	ErrInvalidMaxBackups = errors.New("xsink: invalid MaxBackups")

	// ErrInvalidMaxAgeDays MaxAgeDays 超出 0~3650 范围
	ErrInvalidMaxAgeDays = errors.New("xsink: invalid MaxAgeDays")

	// ErrNoCleanupPolicy MaxBackups 和 MaxAgeDays 不能同时为 0
	ErrNoCleanupPolicy = errors.New("xsink: no cleanup policy configured")
)
