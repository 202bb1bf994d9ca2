package subprocess

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbugyi200/bugyi/internal/bugyierror"
)

func TestRun_CapturesTrimmedOutput(t *testing.T) {
	out := Run(context.Background(), []string{"sh", "-c", "echo '  hello  '; echo oops >&2"}).Must()

	assert.Equal(t, "hello", out.Stdout)
	assert.Equal(t, "oops", out.Stderr)
}

func TestRun_NonZeroExitIsErr(t *testing.T) {
	r := Run(context.Background(), []string{"sh", "-c", "echo partial; echo bad >&2; exit 3"})
	require.True(t, r.IsErr())

	var berr *bugyierror.Error
	require.ErrorAs(t, r.Err(), &berr)
	assert.Equal(t, `Command Failed (ec=3): ["sh" "-c" "echo partial; echo bad >&2; exit 3"]`+
		"\n\n----- STDOUT\npartial\n\n----- STDERR\nbad", berr.Message())
	assert.Equal(t, "TestRun_NonZeroExitIsErr", berr.Site().Function)
}

func TestRun_MissingCommand(t *testing.T) {
	r := Run(context.Background(), []string{"bugyi-no-such-command"})
	require.True(t, r.IsErr())

	var berr *bugyierror.Error
	require.ErrorAs(t, r.Err(), &berr)
	assert.Contains(t, berr.Message(), "bugyi-no-such-command")
	assert.NotNil(t, berr.Cause())
	assert.Equal(t, "TestRun_MissingCommand", berr.Site().Function)
}

func TestRun_EmptyArgv(t *testing.T) {
	r := Run(context.Background(), nil)
	assert.ErrorIs(t, r.Err(), ErrNoCommand)
}

func TestRun_Timeout(t *testing.T) {
	start := time.Now()
	r := Run(context.Background(), []string{"sleep", "5"}, WithTimeout(50*time.Millisecond))

	assert.Less(t, time.Since(start), 4*time.Second)

	var timeoutErr *TimeoutError
	require.ErrorAs(t, r.Err(), &timeoutErr)
	assert.Equal(t, "sleep 5", timeoutErr.Command)
	assert.Equal(t, 50*time.Millisecond, timeoutErr.Timeout)
	assert.ErrorIs(t, r.Err(), context.DeadlineExceeded)
}

func TestRun_Options(t *testing.T) {
	dir := t.TempDir()
	var stdout bytes.Buffer

	out := Run(context.Background(),
		[]string{"sh", "-c", "pwd; echo $BUGYI_TEST; cat"},
		WithDir(dir),
		WithEnv("BUGYI_TEST=set"),
		WithStdin(strings.NewReader("from stdin")),
		WithStdout(&stdout),
	).Must()

	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)

	assert.Empty(t, out.Stdout, "redirected stream is not captured")
	assert.Equal(t, resolved+"\nset\nfrom stdin", strings.TrimSpace(stdout.String()))
}

func TestRunUnchecked(t *testing.T) {
	p, err := RunUnchecked(context.Background(), []string{"sh", "-c", "echo out; exit 7"})
	require.NoError(t, err)

	assert.Equal(t, 7, p.ExitCode)
	assert.Equal(t, "out", p.Stdout)
	assert.Equal(t, []string{"sh", "-c", "echo out; exit 7"}, p.Args)

	_, err = RunUnchecked(context.Background(), []string{"bugyi-no-such-command"})
	assert.Error(t, err)
}

func TestProcessToError_OmitsEmptySections(t *testing.T) {
	p := &Process{Args: []string{"false"}, ExitCode: 1}

	e := p.ToError()
	assert.Equal(t, `Command Failed (ec=1): ["false"]`, e.Message())
	assert.Equal(t, "TestProcessToError_OmitsEmptySections", e.Site().Function)
}

func TestCommandExists(t *testing.T) {
	assert.True(t, CommandExists("sh"))
	assert.False(t, CommandExists("bugyi-no-such-command"))
}

func TestCreatePidfile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "runtime")

	path, err := CreatePidfile(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "pid"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(os.Getpid()), string(data))

	// our own PID does not block a rerun
	_, err = CreatePidfile(dir)
	assert.NoError(t, err)
}

func TestCreatePidfile_StillAlive(t *testing.T) {
	dir := t.TempDir()
	parent := os.Getppid()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pid"), []byte(strconv.Itoa(parent)), 0o644))

	_, err := CreatePidfile(dir)

	var alive *StillAliveError
	require.ErrorAs(t, err, &alive)
	assert.Equal(t, parent, alive.PID)
}

func TestCreatePidfile_StaleOrGarbage(t *testing.T) {
	dir := t.TempDir()
	pidfile := filepath.Join(dir, "pid")

	require.NoError(t, os.WriteFile(pidfile, []byte("not-a-pid"), 0o644))
	_, err := CreatePidfile(dir)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(pidfile, []byte(""), 0o644))
	_, err = CreatePidfile(dir)
	assert.NoError(t, err)
}

func runFalse() bugyierror.Result[Output] {
	return Run(context.Background(), []string{"false"}, AddCallerSkip(1))
}

func TestRun_AddCallerSkip(t *testing.T) {
	r := runFalse()

	var berr *bugyierror.Error
	require.ErrorAs(t, r.Err(), &berr)
	assert.Equal(t, "TestRun_AddCallerSkip", berr.Site().Function)
	assert.Equal(t, "r := runFalse()", berr.Site().Source)
}
