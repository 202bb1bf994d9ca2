// Package xdg resolves XDG base directories and per-program subdirectories.
package xdg

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bbugyi200/bugyi/internal/bugyierror"
	"github.com/bbugyi200/bugyi/internal/inspect"
	"github.com/bbugyi200/bugyi/internal/result"
)

// Kind selects one of the XDG user directories.
type Kind string

const (
	Cache   Kind = "cache"
	Config  Kind = "config"
	Data    Kind = "data"
	Runtime Kind = "runtime"
)

// ErrInvalidKind is returned for a Kind outside Kinds().
var ErrInvalidKind = errors.New("invalid XDG directory kind")

type location struct {
	envVar string
	// fallback is relative to $HOME unless absolute
	fallback string
}

var locations = map[Kind]location{
	Cache:   {envVar: "XDG_CACHE_HOME", fallback: ".cache"},
	Config:  {envVar: "XDG_CONFIG_HOME", fallback: ".config"},
	Data:    {envVar: "XDG_DATA_HOME", fallback: filepath.Join(".local", "share")},
	Runtime: {envVar: "XDG_RUNTIME_DIR", fallback: "/tmp"},
}

// Kinds lists every valid Kind.
func Kinds() []Kind {
	return []Kind{Cache, Config, Data, Runtime}
}

// ParseKind converts s to a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if _, ok := locations[k]; !ok {
		return "", fmt.Errorf("%w: %q (valid: %v)", ErrInvalidKind, s, Kinds())
	}
	return k, nil
}

// BaseDir returns the base directory for kind, honouring the matching
// XDG_* environment variable.
func BaseDir(kind Kind) (string, error) {
	loc, ok := locations[kind]
	if !ok {
		return "", fmt.Errorf("%w: %q (valid: %v)", ErrInvalidKind, kind, Kinds())
	}

	if dir := os.Getenv(loc.envVar); dir != "" {
		return dir, nil
	}
	if filepath.IsAbs(loc.fallback) {
		return loc.fallback, nil
	}
	return filepath.Join(os.Getenv("HOME"), loc.fallback), nil
}

// FullDir returns BaseDir(kind)/name. An empty name selects the running
// program's name.
func FullDir(kind Kind, name string) (string, error) {
	base, err := BaseDir(kind)
	if err != nil {
		return "", err
	}
	if name == "" {
		name = inspect.ScriptName()
	}
	return filepath.Join(base, name), nil
}

// InitFullDir is FullDir that also creates the directory.
func InitFullDir(kind Kind, name string) bugyierror.Result[string] {
	dir, err := FullDir(kind, name)
	if err != nil {
		return result.Err[string](err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return bugyierror.Fail[string](
			fmt.Sprintf("Failed to create the %s directory: %s", kind, dir),
			bugyierror.WithCause(err),
			bugyierror.Up(1),
		)
	}
	return result.Ok(dir)
}
