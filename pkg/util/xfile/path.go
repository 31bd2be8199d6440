package xfile

import (
	"fmt"
	"path/filepath"
	"strings"
)

// hasDotDotSegment 检测 ".." 是否作为独立路径段出现。
// 逐字符扫描，零分配；'/' 和 '\' 都视为分隔符，
// 即使在 Linux 上也能识别 Windows 风格的穿越写法。
func hasDotDotSegment(path string) bool {
	i := 0
	for i < len(path) {
		if path[i] == '/' || path[i] == '\\' {
			i++
			continue
		}
		j := i
		for j < len(path) && path[j] != '/' && path[j] != '\\' {
			j++
		}
		if j-i == 2 && path[i] == '.' && path[i+1] == '.' {
			return true
		}
		i = j
	}
	return false
}

// SanitizePath 对日志文件路径做格式净化。
//
// 检查项：
//   - 空路径
//   - 空字节（内核会在空字节处截断路径）
//   - 尾随 "/" 或 "\"（目录路径，不是文件）
//   - ".." 路径段（相对路径穿越）
//
// 绝对路径原样接受，返回 [filepath.Clean] 后的结果。
// 本函数不限制目标目录；日志路径来自调用方自身配置，视为可信。
func SanitizePath(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename is required: %w", ErrEmptyPath)
	}

	if strings.ContainsRune(filename, 0) {
		return "", fmt.Errorf("filename contains null byte: %w", ErrNullByte)
	}

	// 尾部分隔符检查必须在 Clean 之前，Clean 会移除尾部斜杠
	if strings.HasSuffix(filename, "/") || strings.HasSuffix(filename, "\\") {
		return "", fmt.Errorf("path is a directory: %w", ErrInvalidPath)
	}

	cleaned := filepath.Clean(filename)

	// 按路径段精确判断，避免误伤 "app..2024.log" 这类文件名
	if hasDotDotSegment(cleaned) {
		return "", fmt.Errorf("path traversal in filename: %w", ErrPathTraversal)
	}

	if base := filepath.Base(cleaned); base == "." || base == string(filepath.Separator) {
		return "", fmt.Errorf("no file name specified: %w", ErrInvalidPath)
	}

	return cleaned, nil
}
