package subprocess

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// CreatePidfile writes the current PID to dir/pid, creating dir if needed.
// If the file already names a live process a *StillAliveError is returned
// and the file is left untouched.
func CreatePidfile(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create pidfile directory: %w", err)
	}
	path := filepath.Join(dir, "pid")

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return "", fmt.Errorf("read pidfile: %w", err)
	default:
		if text := strings.TrimSpace(string(data)); text != "" {
			pid, err := strconv.Atoi(text)
			if err != nil {
				return "", fmt.Errorf("parse pidfile %s: %w", path, err)
			}
			if pid != os.Getpid() && alive(pid) {
				return "", &StillAliveError{PID: pid, Pidfile: path}
			}
		}
	}

	if err := os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0o644); err != nil {
		return "", fmt.Errorf("write pidfile: %w", err)
	}
	return path, nil
}

// alive reports whether a process with the given PID exists. EPERM means
// it exists but belongs to another user.
func alive(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := unix.Kill(pid, 0)
	return err == nil || errors.Is(err, unix.EPERM)
}
