package xfile_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinlong631/QsLog/pkg/util/xfile"
)

// TestSanitizePath 路径格式净化
func TestSanitizePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{
			name:  "简单文件名",
			input: "app.log",
			want:  "app.log",
		},
		{
			name:  "绝对路径",
			input: "/var/log/app.log",
			want:  filepath.Clean("/var/log/app.log"),
		},
		{
			name:  "相对子目录",
			input: "logs/app.log",
			want:  filepath.Join("logs", "app.log"),
		},
		{
			name:  "冗余分隔符被 Clean 归一",
			input: "logs//app.log",
			want:  filepath.Join("logs", "app.log"),
		},
		{
			name:  "文件名内连续点不算穿越",
			input: "app..2024.log",
			want:  "app..2024.log",
		},
		{
			name:    "空路径",
			input:   "",
			wantErr: xfile.ErrEmptyPath,
		},
		{
			name:    "空字节",
			input:   "app\x00.log",
			wantErr: xfile.ErrNullByte,
		},
		{
			name:    "尾随斜杠",
			input:   "logs/",
			wantErr: xfile.ErrInvalidPath,
		},
		{
			name:    "尾随反斜杠",
			input:   `logs\`,
			wantErr: xfile.ErrInvalidPath,
		},
		{
			name:    "相对路径穿越",
			input:   "../etc/passwd",
			wantErr: xfile.ErrPathTraversal,
		},
		{
			name:    "中段穿越",
			input:   "logs/../../etc/passwd",
			wantErr: xfile.ErrPathTraversal,
		},
		{
			name:    "反斜杠穿越",
			input:   `..\etc\passwd`,
			wantErr: xfile.ErrPathTraversal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := xfile.SanitizePath(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
