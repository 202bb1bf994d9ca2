// Package core collects small filesystem, shell and signal conveniences
// shared by bugyi programs.
package core

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/bbugyi200/bugyi/internal/bugyierror"
	"github.com/bbugyi200/bugyi/internal/inspect"
	"github.com/bbugyi200/bugyi/internal/result"
	"github.com/bbugyi200/bugyi/internal/subprocess"
)

const (
	secretLength   = 16
	secretAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// SecretDir is where Secret writes its files.
var SecretDir = os.TempDir()

// CreateDir creates dir and any missing parents. An existing directory is
// not an error.
func CreateDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// Mkfifo creates a named pipe at path. An existing named pipe at path is
// not an error; any other existing file is.
func Mkfifo(path string) error {
	err := unix.Mkfifo(path, 0o600)
	if err == nil {
		return nil
	}
	if errors.Is(err, unix.EEXIST) {
		info, statErr := os.Stat(path)
		if statErr == nil && info.Mode()&os.ModeNamedPipe != 0 {
			return nil
		}
	}
	return &os.PathError{Op: "mkfifo", Path: path, Err: err}
}

// Secret generates a random alphanumeric key and stores it in
// SecretDir/<name>.secret, where name defaults to the program name. The
// returned func removes the file.
func Secret(name string) (string, func(), error) {
	key, err := randomString(secretLength)
	if err != nil {
		return "", nil, err
	}

	path := SecretPath(name)
	if err := os.WriteFile(path, []byte(key), 0o600); err != nil {
		return "", nil, fmt.Errorf("write secret: %w", err)
	}

	cleanup := func() { _ = os.Remove(path) }
	return key, cleanup, nil
}

// SecretPath is the file Secret(name) writes.
func SecretPath(name string) string {
	if name == "" {
		name = inspect.ScriptName()
	}
	return filepath.Join(SecretDir, name+".secret")
}

func randomString(n int) (string, error) {
	limit := big.NewInt(int64(len(secretAlphabet)))

	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("generate secret: %w", err)
		}
		b[i] = secretAlphabet[idx.Int64()]
	}
	return string(b), nil
}

// Shell runs cmds joined by "; " with sh -c and returns the trimmed
// standard output.
func Shell(ctx context.Context, cmds ...string) bugyierror.Result[string] {
	r := subprocess.Run(ctx, []string{"sh", "-c", strings.Join(cmds, "; ")}, subprocess.AddCallerSkip(1))
	return result.Map(r, func(out subprocess.Output) string { return out.Stdout })
}

// OnSignal calls handler for every delivery of the given signals until the
// returned stop func is called.
func OnSignal(handler func(os.Signal), sigs ...os.Signal) (stop func()) {
	ch := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(ch, sigs...)

	go func() {
		for {
			select {
			case sig := <-ch:
				handler(sig)
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(ch)
		close(done)
	}
}
