package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bbugyi200/bugyi/internal/bugyierror"
	"github.com/bbugyi200/bugyi/internal/console"
	"github.com/bbugyi200/bugyi/internal/core"
	"github.com/bbugyi200/bugyi/internal/logging"
)

const appName = "bugyi"

var (
	version   = "dev"
	buildTime = "unknown"
)

// SetVersion sets the version information for the CLI
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
}

// app holds the persistent flags and the resources opened for one run.
type app struct {
	debug   bool
	verbose int
	colors  string
	width   int
	logDir  string

	log     *zap.Logger
	closers []func()
}

func (a *app) logger() *zap.Logger {
	if a.log == nil {
		return logging.L()
	}
	return a.log
}

// setup configures output and logging from the persistent flags.
func (a *app) setup(cmd *cobra.Command) error {
	if err := SetGlobalConfig(a.colors); err != nil {
		return err
	}

	log, cleanup, err := logging.New(logging.Config{
		Name:    appName,
		LogDir:  a.logDir,
		Debug:   a.debug,
		Verbose: a.verbose,
		Console: cmd.ErrOrStderr(),
	})
	if err != nil {
		// not fatal: continue with the no-op logger
		GetErrorWriter(cmd).Writeln(Warning(fmt.Sprintf("Logging disabled: %v", err)))
		return nil
	}

	a.log = log
	a.closers = append(a.closers, cleanup, logging.Set(log))

	log.Debug("parsed command line",
		zap.String("command", cmd.CommandPath()),
		zap.Bool("debug", a.debug),
		zap.Int("verbose", a.verbose),
		zap.String("colors", a.colors),
		zap.Int("width", a.width),
	)
	return nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// reportWidth is the --width flag, or the width of the terminal on stderr.
func (a *app) reportWidth() int {
	if a.width > 0 {
		return a.width
	}
	return console.Width(os.Stderr)
}

// catch wraps a RunE so panics are logged before they propagate.
func (a *app) catch(run func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		logging.Catch(a.logger(), func() {
			err = run(cmd, args)
		})
		return err
	}
}

// NewRootCommand creates a new root command with all subcommands
func NewRootCommand() *cobra.Command {
	root, _ := newRootCommand()
	return root
}

func newRootCommand() (*cobra.Command, *app) {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   appName,
		Short: "Personal utility belt: git, XDG, notifications and error reports",
		Long: `bugyi bundles small command line conveniences: XDG directory lookup,
git helpers, desktop notifications, password lookup and date ranges.

Failures are reported as a boxed chain of errors, root cause first.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       fmt.Sprintf("%s (built %s)", version, buildTime),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&a.debug, "debug", "d", false, "Enable debugging mode")
	flags.CountVarP(&a.verbose, "verbose", "v", "Enable verbose output (repeat for more)")
	flags.StringVar(&a.colors, "colors", "auto", "When to use colors: auto, always or never")
	flags.IntVar(&a.width, "width", 0, "Width of error reports (0 = terminal width)")
	flags.StringVar(&a.logDir, "log-dir", "", "Directory for the log file (default $BUGYI_LOG_DIR or /var/tmp)")

	rootCmd.AddCommand(
		newXDGCmd(a),
		newGitCmd(a),
		newRunCmd(a),
		newNotifyCmd(a),
		newPassCmd(a),
		newDatesCmd(a),
		newColorCmd(a),
		newSecretCmd(a),
	)

	return rootCmd, a
}

// printError writes err to w: errors raised through bugyierror as a full
// report, anything else as a single line.
func printError(w io.Writer, err error, width int) {
	var berr *bugyierror.Error
	if errors.As(err, &berr) {
		_, _ = bugyierror.ReportOf(err, width).WriteTo(w)
		return
	}
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
}

// run executes the CLI with args and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	return runContext(context.Background(), args, nil, stdout, stderr)
}

// runContext is run with a context the commands observe. A command that
// stops because ctx was cancelled exits 0 without a report. A nil stdin
// leaves cobra's default in place.
func runContext(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	rootCmd, a := newRootCommand()
	defer a.close()

	rootCmd.SetArgs(args)
	if stdin != nil {
		rootCmd.SetIn(stdin)
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			a.logger().Debug("command interrupted", zap.Error(err))
			return 0
		}
		a.logger().Debug("command failed", zap.Error(err))
		printError(stderr, err, a.reportWidth())
		return 1
	}
	return 0
}

// interruptGrace is how long a command may take to wind down after SIGINT
// before the process exits anyway.
const interruptGrace = 3 * time.Second

// Execute runs the CLI and exits. SIGINT cancels the running command so its
// deferred cleanup runs, then ends the program quietly.
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := core.OnSignal(func(os.Signal) {
		fmt.Printf("Received SIGINT signal. Terminating %s...\n", appName)
		cancel()
		time.AfterFunc(interruptGrace, func() { os.Exit(0) })
	}, os.Interrupt)

	code := runContext(ctx, os.Args[1:], nil, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
