package stacktrace

import (
	"log/slog"
	"runtime/debug"
	"strings"
)

// InternalPaths returns the file:line locations under /internal/ found in a raw
// stack trace, trimmed to start at "internal/".
func InternalPaths(stack []byte) []string {
	lines := strings.Split(string(stack), "\n")
	paths := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		idx := strings.Index(line, ".go:")
		if idx == -1 {
			continue
		}

		loc := line
		if sp := strings.IndexByte(line[idx:], ' '); sp != -1 {
			loc = line[:idx+sp]
		}

		if _, rel, ok := strings.Cut(loc, "/internal/"); ok {
			paths = append(paths, "internal/"+rel)
		}
	}
	return paths
}

// Attr captures the current goroutine stack as a "stack" log attribute. Internal
// frames are preferred; the raw stack is used when none are found.
func Attr() slog.Attr {
	stack := debug.Stack()
	if paths := InternalPaths(stack); len(paths) > 0 {
		return slog.Any("stack", paths)
	}

	return slog.String("stack", string(stack))
}
