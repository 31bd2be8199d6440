package xfile

import "errors"

var (
	// ErrEmptyPath 表示必需的路径参数为空。
	ErrEmptyPath = errors.New("xfile: path is required")

	// ErrInvalidPath 表示路径格式无效（如目录路径、缺少文件名）。
	ErrInvalidPath = errors.New("xfile: invalid path")

	// ErrPathTraversal 表示路径包含 ".." 路径段。
	ErrPathTraversal = errors.New("xfile: path traversal detected")

	// ErrNullByte 表示路径包含空字节（\x00）。Linux 内核在 VFS 层会在
	// 空字节处截断路径，导致 Go 代码与操作系统看到的路径不一致。
	ErrNullByte = errors.New("xfile: path contains null byte")

	// ErrInvalidPerm 表示目录权限缺少所有者执行位，目录无法遍历。
	ErrInvalidPerm = errors.New("xfile: invalid directory permission")
)
