package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bbugyi200/bugyi/internal/colors"
	"github.com/bbugyi200/bugyi/internal/console"
)

const bold = "\033[1m"

// OutputConfig controls formatting behavior
type OutputConfig struct {
	Colors bool
}

// Writer provides formatted output with configurable styling
type Writer struct {
	out    io.Writer
	config OutputConfig
	err    error // first error encountered
}

// NewWriter creates a new Writer with the given configuration
func NewWriter(out io.Writer, config OutputConfig) *Writer {
	return &Writer{
		out:    out,
		config: config,
	}
}

// Message represents a structured message with optional formatting.
// Prefix is always written; Color and Bold only when colors are enabled.
type Message struct {
	Text   string
	Prefix string
	Color  colors.Color
	Bold   bool
}

// Write outputs a message according to the writer's configuration
func (w *Writer) Write(msg Message) *Writer {
	if w.err != nil {
		return w
	}

	output := msg.Prefix

	styled := w.config.Colors && (msg.Bold || msg.Color != 0)
	if styled {
		if msg.Bold {
			output += bold
		}
		if msg.Color != 0 {
			output += msg.Color.Code()
		}
	}

	output += msg.Text

	if styled {
		output += colors.Reset
	}

	_, w.err = fmt.Fprint(w.out, output)
	return w
}

// Printf is like Write but with format string
func (w *Writer) Printf(msg Message, args ...any) *Writer {
	newMsg := msg
	newMsg.Text = fmt.Sprintf(msg.Text, args...)
	return w.Write(newMsg)
}

// Writeln writes a message followed by a newline
func (w *Writer) Writeln(msg Message) *Writer {
	return w.Write(msg).WriteString("\n")
}

// WriteString outputs plain text (no formatting)
func (w *Writer) WriteString(text string) *Writer {
	if w.err != nil {
		return w
	}
	_, w.err = fmt.Fprint(w.out, text)
	return w
}

// WritelnString outputs plain text followed by a newline
func (w *Writer) WritelnString(text string) *Writer {
	if w.err != nil {
		return w
	}

	_, w.err = fmt.Fprintln(w.out, text)
	return w
}

// Err returns the first error encountered during writing
func (w *Writer) Err() error {
	return w.err
}

// Predefined message constructors for common patterns

func Success(text string) Message {
	return Message{Text: text, Color: colors.Green, Bold: true}
}

func Error(text string) Message {
	return Message{Text: text, Prefix: "[ERROR] ", Color: colors.Red}
}

func Warning(text string) Message {
	return Message{Text: text, Color: colors.Yellow, Bold: true}
}

func Info(text string) Message {
	return Message{Text: text, Prefix: ">>> ", Color: colors.Cyan}
}

func Link(text string) Message {
	return Message{Text: text, Color: colors.Cyan}
}

func Plain(text string) Message {
	return Message{Text: text}
}

func Bold(text string) Message {
	return Message{Text: text, Bold: true}
}

func Colored(text string, color colors.Color) Message {
	return Message{Text: text, Color: color}
}

// Global output configuration
var (
	globalConfig = OutputConfig{
		Colors: true, // auto-detect on first use
	}
	autoDetected bool
)

// SetGlobalConfig updates the global output configuration
func SetGlobalConfig(mode string) error {
	switch mode {
	case "auto":
		globalConfig.Colors = console.IsTerminal(os.Stdout)
	case "always":
		globalConfig.Colors = true
	case "never":
		globalConfig.Colors = false
	default:
		return fmt.Errorf("invalid color mode: %s (valid: auto, always, never)", mode)
	}

	// Check NO_COLOR environment variable (explicit flag takes precedence)
	if os.Getenv("NO_COLOR") != "" && mode == "auto" {
		globalConfig.Colors = false
	}

	autoDetected = true
	return nil
}

// autoDetectConfig performs one-time auto-detection if not explicitly configured
func autoDetectConfig() {
	if !autoDetected {
		if os.Getenv("NO_COLOR") != "" {
			globalConfig.Colors = false
		} else {
			globalConfig.Colors = console.IsTerminal(os.Stdout)
		}
		autoDetected = true
	}
}

// GetWriter returns a writer for the given cobra command
func GetWriter(cmd *cobra.Command) *Writer {
	autoDetectConfig()
	return NewWriter(cmd.OutOrStdout(), globalConfig)
}

// GetErrorWriter returns a writer for the command's error stream
func GetErrorWriter(cmd *cobra.Command) *Writer {
	autoDetectConfig()
	return NewWriter(cmd.ErrOrStderr(), globalConfig)
}

// printf writes straight to the command's stdout; write errors are dropped.
func printf(cmd *cobra.Command, format string, args ...any) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
