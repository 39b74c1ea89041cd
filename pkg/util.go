package pkg

import (
	"os"
	"strings"
	"unsafe"
)

// BytesToString converts bytes slice to a string without extra allocation
func BytesToString(buf []byte) string {
	return *(*string)(unsafe.Pointer(&buf))
}

var keyReplacer = strings.NewReplacer(" ", "_", "/", "_", "\\", "_")

// NormalizeKey turns free-text user and team names into storage keys:
// trimmed, lowercased, spaces and path separators replaced with underscores.
// A key never starts with a dot or an underscore.
func NormalizeKey(name string) string {
	key := keyReplacer.Replace(strings.ToLower(strings.TrimSpace(name)))
	return strings.TrimLeft(key, "._")
}

// PathExists returns whether the given file or directory exists
func PathExists(path string, isDir bool) (bool, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if (isDir && stat.IsDir()) || (!isDir && !stat.IsDir()) {
		return true, nil
	}
	return false, err
}

// EnsureDir creates the directory (and parents) when missing.
func EnsureDir(path string) error {
	exists, err := PathExists(path, true)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return os.MkdirAll(path, 0o755)
}
