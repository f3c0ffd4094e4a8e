package diagfmt

import (
	"os"
	"path/filepath"
	"strings"
)

// formatPath renders path for display according to mode.
func formatPath(path string, mode PathMode, baseDir string) string {
	if path == "" || path == "-" || strings.HasPrefix(path, "embedded:") {
		return path
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return filepath.ToSlash(abs)
		}
		return path
	case PathModeRelative:
		if rel, ok := relativeTo(path, baseDir); ok {
			return rel
		}
		return path
	case PathModeBasename:
		return filepath.Base(path)
	default:
		// auto: относительные как есть, абсолютные внутри baseDir укорачиваем
		if !filepath.IsAbs(path) {
			return path
		}
		if rel, ok := relativeTo(path, baseDir); ok && !strings.HasPrefix(rel, "..") {
			return rel
		}
		return path
	}
}

func relativeTo(path, baseDir string) (string, bool) {
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", false
		}
		baseDir = wd
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
