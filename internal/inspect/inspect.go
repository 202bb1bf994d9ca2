// Package inspect captures call-site information (What line number is this?).
package inspect

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
)

// Site is an immutable snapshot of a single call site.
type Site struct {
	Module   string // package import path
	File     string // absolute source file path
	Function string // function name, receiver-qualified for methods
	Line     int
	Source   string // trimmed source text of Line, empty if unreadable
}

// String returns "file:line (function)".
func (s Site) String() string {
	return fmt.Sprintf("%s:%d (%s)", s.File, s.Line, s.Function)
}

// IsZero reports whether no frame was captured.
func (s Site) IsZero() bool {
	return s.File == "" && s.Line == 0
}

// maxDepth bounds how far Capture will look up the stack.
const maxDepth = 64

// Capture returns the call site skip frames above its caller. Capture(0)
// describes the line that called Capture.
func Capture(skip int) Site {
	if skip < 0 {
		skip = 0
	}
	if skip >= maxDepth {
		return Site{}
	}

	// 2 skips runtime.Callers and Capture. Frames are walked logically so
	// inlined callers still count as one frame each.
	pcs := make([]uintptr, maxDepth)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	for i := 0; ; i++ {
		fr, more := frames.Next()
		if fr.PC == 0 && !more {
			return Site{}
		}
		if i == skip {
			module, function := splitFuncName(fr.Function)
			return Site{
				Module:   module,
				File:     fr.File,
				Function: function,
				Line:     fr.Line,
				Source:   sourceLine(fr.File, fr.Line),
			}
		}
		if !more {
			return Site{}
		}
	}
}

// splitFuncName splits a fully-qualified name such as
// "github.com/a/b/pkg.(*T).Method" into its package path and function.
func splitFuncName(full string) (string, string) {
	if full == "" {
		return "", ""
	}

	start := strings.LastIndex(full, "/") + 1
	dot := strings.Index(full[start:], ".")
	if dot < 0 {
		return "", full
	}

	return full[:start+dot], full[start+dot+1:]
}

func sourceLine(file string, line int) string {
	f, err := os.Open(file)
	if err != nil {
		return ""
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for n := 1; scanner.Scan(); n++ {
		if n == line {
			return strings.TrimSpace(scanner.Text())
		}
	}

	return ""
}

// ScriptName returns the base name of the running executable with any
// extension stripped.
func ScriptName() string {
	name := filepath.Base(os.Args[0])
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// TypeName returns the name of v's dynamic type without its package
// qualifier or pointer markers.
func TypeName(v any) string {
	if v == nil {
		return "nil"
	}

	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	name := t.Name()
	// generic instantiations carry their type arguments, e.g. "Box[int]"
	if i := strings.Index(name, "["); i >= 0 {
		name = name[:i]
	}
	if name == "" {
		return t.String()
	}
	return name
}
