package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/bbugyi200/bugyi/internal/core"
	"github.com/bbugyi200/bugyi/internal/textwrap"
	"github.com/bbugyi200/bugyi/internal/xdg"
)

type CLITestSuite struct {
	suite.Suite
	tempDir string
	logDir  string
	binDir  string
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
}

func (suite *CLITestSuite) SetupTest() {
	suite.tempDir = suite.T().TempDir()
	suite.logDir = filepath.Join(suite.tempDir, "logs")
	suite.binDir = filepath.Join(suite.tempDir, "bin")
	suite.Require().NoError(os.MkdirAll(suite.logDir, 0o755))
	suite.Require().NoError(os.MkdirAll(suite.binDir, 0o755))

	suite.T().Setenv("HOME", suite.tempDir)
	suite.T().Setenv("BUGYI_LOG_DIR", suite.logDir)
	suite.T().Setenv("NO_COLOR", "")
	for _, env := range []string{"XDG_CACHE_HOME", "XDG_CONFIG_HOME", "XDG_DATA_HOME", "XDG_RUNTIME_DIR"} {
		suite.T().Setenv(env, "")
	}
	suite.T().Setenv("PATH", suite.binDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	// Capture output
	suite.stdout = &bytes.Buffer{}
	suite.stderr = &bytes.Buffer{}
}

func (suite *CLITestSuite) runCommand(args ...string) error {
	rootCmd, a := newRootCommand()
	defer a.close()

	rootCmd.SetOut(suite.stdout)
	rootCmd.SetErr(suite.stderr)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

// fakeBinary installs an executable shell script on PATH.
func (suite *CLITestSuite) fakeBinary(name, script string) {
	path := filepath.Join(suite.binDir, name)
	suite.Require().NoError(os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755))
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLITestSuite))
}

func (suite *CLITestSuite) TestNewRootCommandRegistersSubcommands() {
	root := NewRootCommand()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	suite.Subset(names, []string{"xdg", "git", "run", "notify", "pass", "dates", "color", "secret"})
}

func (suite *CLITestSuite) TestVersion() {
	SetVersion("1.2.3", "today")
	defer SetVersion("dev", "unknown")

	suite.Require().NoError(suite.runCommand("--version"))
	suite.Contains(suite.stdout.String(), "1.2.3 (built today)")
}

func (suite *CLITestSuite) TestXDGCommand() {
	suite.Require().NoError(suite.runCommand("xdg", "config"))
	suite.Equal(filepath.Join(suite.tempDir, ".config")+"\n", suite.stdout.String())

	suite.stdout.Reset()
	suite.Require().NoError(suite.runCommand("xdg", "cache", "--name", "tool"))
	suite.Equal(filepath.Join(suite.tempDir, ".cache", "tool")+"\n", suite.stdout.String())

	suite.stdout.Reset()
	suite.Require().NoError(suite.runCommand("xdg", "data", "--init", "-n", "tool"))
	dir := filepath.Join(suite.tempDir, ".local", "share", "tool")
	suite.Equal(dir+"\n", suite.stdout.String())
	suite.DirExists(dir)
}

func (suite *CLITestSuite) TestXDGInvalidKind() {
	err := suite.runCommand("xdg", "bogus")
	suite.ErrorIs(err, xdg.ErrInvalidKind)
}

func (suite *CLITestSuite) TestRunCommand() {
	suite.Require().NoError(suite.runCommand("run", "--", "sh", "-c", "echo hello"))
	suite.Equal("hello\n", suite.stdout.String())
}

func (suite *CLITestSuite) TestRunPassesFlagsThrough() {
	suite.Require().NoError(suite.runCommand("run", "echo", "-n", "x"))
	suite.Equal("x", suite.stdout.String())
}

func (suite *CLITestSuite) TestFailurePrintsReport() {
	code := run([]string{"--width", "60", "run", "--", "sh", "-c", "echo bad >&2; exit 2"}, suite.stdout, suite.stderr)
	suite.Equal(1, code)

	out := suite.stderr.String()
	suite.Contains(out, "BugyiError")
	suite.Contains(out, "Command Failed (ec=2)")
	suite.Contains(out, "----- STDERR")

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	suite.Empty(lines[0])
	for _, line := range lines[1:] {
		suite.Equal(60, textwrap.Width(line), line)
	}
	suite.True(strings.HasPrefix(lines[1], "+"))
	suite.True(strings.HasSuffix(lines[len(lines)-1], "+"))
}

func (suite *CLITestSuite) TestTimeoutReportShowsCause() {
	code := run([]string{"--width", "80", "run", "--timeout", "50ms", "--", "sleep", "5"}, suite.stdout, suite.stderr)
	suite.Equal(1, code)

	out := suite.stderr.String()
	suite.Contains(out, "was the direct cause of")
	suite.Contains(out, "*subprocess.TimeoutError: command timed out after 50ms: sleep 5")
}

func (suite *CLITestSuite) TestPlainErrorIsOneLine() {
	code := run([]string{"dates", "not-a-date"}, suite.stdout, suite.stderr)
	suite.Equal(1, code)
	suite.Equal("Error: invalid date: \"not-a-date\"\n", suite.stderr.String())
}

func (suite *CLITestSuite) TestSuccessExitCode() {
	suite.Equal(0, run([]string{"dates", "2024-01-01"}, suite.stdout, suite.stderr))
	suite.Equal("2024-01-01\n", suite.stdout.String())
}

func (suite *CLITestSuite) TestDatesCommand() {
	suite.Require().NoError(suite.runCommand("dates", "2023-12-30:2024-01-02"))
	suite.Equal("2023-12-30\n2023-12-31\n2024-01-01\n2024-01-02\n", suite.stdout.String())

	suite.stdout.Reset()
	suite.Require().NoError(suite.runCommand("dates", "2024-1-5:Jan 6, 2024"))
	suite.Equal("2024-01-05\n2024-01-06\n", suite.stdout.String())
}

func (suite *CLITestSuite) TestColorCommand() {
	suite.Require().NoError(suite.runCommand("--colors", "always", "color", "red", "hello", "world"))
	suite.Equal("\033[31mhello world\033[0m\n", suite.stdout.String())

	suite.stdout.Reset()
	suite.Require().NoError(suite.runCommand("--colors", "never", "color", "red", "hello"))
	suite.Equal("hello\n", suite.stdout.String())

	suite.Error(suite.runCommand("color", "orange", "hello"))
}

func (suite *CLITestSuite) TestInvalidColorsFlag() {
	err := suite.runCommand("--colors", "sometimes", "dates", "@today")
	suite.Error(err)
	suite.Contains(err.Error(), "invalid color mode")
}

func (suite *CLITestSuite) TestNotifyCommand() {
	log := filepath.Join(suite.tempDir, "notify.log")
	suite.fakeBinary("notify-send", `printf '%s|' "$@" > "`+log+`"`)

	suite.Require().NoError(suite.runCommand("notify", "-t", "Backup", "-u", "low", "all", "done"))

	data, err := os.ReadFile(log)
	suite.Require().NoError(err)
	suite.Equal("Backup|-u|low|all|done|", string(data))
}

func (suite *CLITestSuite) TestNotifyInvalidUrgency() {
	err := suite.runCommand("notify", "-u", "urgent", "hi")
	suite.Error(err)
	suite.Contains(err.Error(), "invalid urgency")
}

func (suite *CLITestSuite) TestPassCommand() {
	suite.fakeBinary("pass", `[ "$1" = show ] && [ "$2" = "mail" ] && echo s3cret`)

	suite.Require().NoError(suite.runCommand("pass", "mail"))
	suite.Equal("s3cret\n", suite.stdout.String())

	code := run([]string{"--width", "100", "pass", "missing"}, suite.stdout, suite.stderr)
	suite.Equal(1, code)
	suite.Contains(suite.stderr.String(), "Command Failed (ec=1)")
}

func (suite *CLITestSuite) TestSecretCommand() {
	orig := core.SecretDir
	core.SecretDir = suite.tempDir
	defer func() { core.SecretDir = orig }()

	suite.Require().NoError(suite.runCommand("secret", "--name", "cli-test"))

	suite.Regexp(`^[A-Za-z0-9]{16}\n$`, suite.stdout.String())
	suite.NoFileExists(filepath.Join(suite.tempDir, "cli-test.secret"))
}

func (suite *CLITestSuite) TestGitCommands() {
	if _, err := exec.LookPath("git"); err != nil {
		suite.T().Skip("git not installed")
	}

	repo := filepath.Join(suite.tempDir, "repo")
	gitCmd := exec.Command("git", "init", "-b", "trunk", repo)
	out, err := gitCmd.CombinedOutput()
	suite.Require().NoError(err, string(out))

	suite.Require().NoError(suite.runCommand("git", "-C", repo, "branch"))
	suite.Equal("trunk\n", suite.stdout.String())

	suite.stdout.Reset()
	suite.Require().NoError(suite.runCommand("git", "-C", repo, "add-remote", "origin", "https://example.com/r.git"))
	suite.Contains(suite.stdout.String(), "Remote origin")

	suite.stdout.Reset()
	suite.Require().NoError(suite.runCommand("--colors", "never", "git", "-C", repo, "remotes"))
	suite.Equal("origin\thttps://example.com/r.git\n", suite.stdout.String())

	suite.stdout.Reset()
	suite.Require().NoError(suite.runCommand("git", "-C", repo, "branch-exists", "feature"))
	suite.Equal("false\n", suite.stdout.String())

	code := run([]string{"--width", "80", "git", "-C", suite.tempDir, "toplevel"}, suite.stdout, suite.stderr)
	suite.Equal(1, code)
	suite.Contains(suite.stderr.String(), "BugyiError::")

	suite.stderr.Reset()
	code = run([]string{"--width", "120", "git", "-C", repo, "add-remote", "origin", "https://example.com/other.git"}, suite.stdout, suite.stderr)
	suite.Equal(1, code)
	suite.Contains(suite.stderr.String(), ">>> Use 'git remote set-url origin https://example.com/other.git' to repoint it\n")
	suite.Contains(suite.stderr.String(), "refusing to repoint")
}

func (suite *CLITestSuite) TestSecretWaitRemovesFileOnKeypress() {
	orig := core.SecretDir
	core.SecretDir = suite.tempDir
	defer func() { core.SecretDir = orig }()

	code := runContext(context.Background(), []string{"secret", "--wait", "--name", "pressed"}, strings.NewReader("q"), suite.stdout, suite.stderr)
	suite.Equal(0, code)

	suite.Regexp(`^[A-Za-z0-9]{16}\n$`, suite.stdout.String())
	suite.Contains(suite.stderr.String(), ">>> Secret stored in "+filepath.Join(suite.tempDir, "pressed.secret"))
	suite.Contains(suite.stderr.String(), "Press any key to remove the secret...")
	suite.NoFileExists(filepath.Join(suite.tempDir, "pressed.secret"))
}

func (suite *CLITestSuite) TestSecretWaitRemovesFileOnInterrupt() {
	orig := core.SecretDir
	core.SecretDir = suite.tempDir
	defer func() { core.SecretDir = orig }()

	stdin, stdinWriter := io.Pipe()
	defer func() { _ = stdinWriter.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	path := filepath.Join(suite.tempDir, "interrupted.secret")
	done := make(chan int, 1)
	go func() {
		done <- runContext(ctx, []string{"secret", "--wait", "--name", "interrupted"}, stdin, suite.stdout, suite.stderr)
	}()

	suite.Eventually(func() bool {
		_, err := os.Stat(path)
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case code := <-done:
		suite.Equal(0, code)
	case <-time.After(5 * time.Second):
		suite.FailNow("secret --wait kept waiting after cancel")
	}
	suite.NoFileExists(path)
	suite.NotContains(suite.stderr.String(), "Error")
}

func (suite *CLITestSuite) TestRunInterrupted() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	time.AfterFunc(100*time.Millisecond, cancel)

	start := time.Now()
	code := runContext(ctx, []string{"run", "--", "sleep", "5"}, nil, suite.stdout, suite.stderr)

	suite.Equal(0, code)
	suite.Less(time.Since(start), 4*time.Second)
	suite.NotContains(suite.stderr.String(), "BugyiError")
}

func (suite *CLITestSuite) TestVerboseLogging() {
	suite.Require().NoError(suite.runCommand("-v", "dates", "@today"))

	data, err := os.ReadFile(filepath.Join(suite.logDir, "bugyi.log"))
	suite.Require().NoError(err)
	suite.Contains(string(data), "parsed command line")
	suite.Contains(suite.stderr.String(), "parsed command line")
}

func (suite *CLITestSuite) TestQuietByDefault() {
	suite.Require().NoError(suite.runCommand("dates", "@today"))
	suite.Empty(suite.stderr.String())
}

func (suite *CLITestSuite) TestLogDirFlag() {
	dir := filepath.Join(suite.tempDir, "other-logs")
	suite.Require().NoError(os.MkdirAll(dir, 0o755))

	suite.Require().NoError(suite.runCommand("--log-dir", dir, "dates", "@today"))
	suite.FileExists(filepath.Join(dir, "bugyi.log"))
}
