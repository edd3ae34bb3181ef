package fileurl

import (
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// IsFile checks whether the path exists and is a regular file
// IsFile 检查路径是否存在且为普通文件
func IsFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsDir checks whether the path exists and is a directory
// IsDir 检查路径是否存在且为目录
func IsDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// GetFileName returns the base name of a path
// GetFileName 返回路径的文件名
func GetFileName(name string) string {
	return path.Base(name)
}

// GetFileExt returns the file extension including the dot
// GetFileExt 返回包含点号的文件扩展名
func GetFileExt(name string) string {
	return path.Ext(name)
}

// GetDatePath returns a date-based sub path like 2006/01/02/
// GetDatePath 返回基于日期的子路径，例如 2006/01/02/
func GetDatePath(timeFormat string) string {
	if timeFormat == "" {
		timeFormat = "2006/01/02"
	}
	return time.Now().Format(timeFormat) + "/"
}

// IsExist checks whether a file or directory exists
// IsExist 检查文件或目录是否存在
func IsExist(dst string) bool {
	_, err := os.Stat(dst)
	if err != nil {
		return os.IsExist(err)
	}
	return true
}

// CreatePath creates the parent directory of dst
// CreatePath 创建 dst 的父级目录
func CreatePath(dst string, perm os.FileMode) error {
	dir := filepath.Dir(dst)
	if IsDir(dir) {
		return nil
	}
	return os.MkdirAll(dir, perm)
}

// GetExePath returns the directory of the running executable
// GetExePath 返回可执行文件所在目录
func GetExePath() string {
	exePath, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exePath)
}

// PathSuffixCheckAdd appends suffix if path is non-empty and does not end with it
// PathSuffixCheckAdd 如果路径非空且不以 suffix 结尾则追加 suffix
func PathSuffixCheckAdd(path string, suffix string) string {
	if path == "" {
		return path
	}
	if !strings.HasSuffix(path, suffix) {
		return path + suffix
	}
	return path
}

// IsAbsPath reports whether the path is absolute
// IsAbsPath 判断路径是否为绝对路径
func IsAbsPath(path string) bool {
	return filepath.IsAbs(path)
}

// GetAbsPath resolves path against root when it is relative
// GetAbsPath 当 path 为相对路径时基于 root 解析为绝对路径
func GetAbsPath(path string, root string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}
	if root == "" {
		return filepath.Abs(path)
	}
	return filepath.Join(root, path), nil
}

// CopyFile copies srcPath to destPath, creating parent directories as needed
// CopyFile 复制文件，必要时创建父目录
func CopyFile(srcPath, destPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer src.Close()

	if err := CreatePath(destPath, os.ModePerm); err != nil {
		return err
	}

	dst, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}
