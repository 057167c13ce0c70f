package util

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/natefinch/atomic"
)

// CheckFilePermissionsForExecution checks whether the given filePath owner, group and permissions
// are safe to use this file for execution by fuzzy2go.
func CheckFilePermissionsForExecution(filePath string) (bool, error) {
	file, err := filepath.EvalSymlinks(filePath)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(file)
	if os.IsNotExist(err) {
		return false, errors.New("file not found")
	}

	stat := info.Sys().(*syscall.Stat_t)
	if stat.Uid != 0 {
		return false, errors.New("owner is not root")
	}

	if stat.Gid != 0 {
		groupWrite := info.Mode() & os.FileMode(0o020)
		if groupWrite != 0 {
			return false, errors.New("group is not root but has write permission")
		}
	}

	otherWrite := info.Mode() & os.FileMode(0o002)
	if otherWrite != 0 {
		return false, errors.New("others have write permission")
	}

	return true, nil
}

// ParseFloat parses a single, possibly whitespace padded, number
func ParseFloat(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if len(text) <= 0 {
		return 0, errors.New("value is empty")
	}
	return strconv.ParseFloat(text, 64)
}

func ReadFloatFromFile(path string) (float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	value, err := ParseFloat(string(data))
	if err != nil {
		return 0, fmt.Errorf("file %s: %w", path, err)
	}
	return value, nil
}

func resolvePath(path string) string {
	evaluatedPath, err := filepath.EvalSymlinks(path)
	if len(evaluatedPath) > 0 && err == nil {
		return evaluatedPath
	}
	return path
}

// WriteIntToFileAtomic writes a single integer to path, replacing its content atomically
func WriteIntToFileAtomic(value int, path string) error {
	return WriteFileAtomic(path, []byte(strconv.Itoa(value)))
}

func WriteFileAtomic(path string, data []byte) error {
	return atomic.WriteFile(resolvePath(path), strings.NewReader(string(data)))
}
