// Package git wraps the git commands bugyi needs. Every operation returns a
// Result whose failures are *bugyierror.Error values attributed to the
// caller of the Git method.
package git

import (
	"context"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/bbugyi200/bugyi/internal/bugyierror"
	"github.com/bbugyi200/bugyi/internal/result"
	"github.com/bbugyi200/bugyi/internal/subprocess"
)

const (
	// shortTimeout for fast local operations (rev-parse, branch, checkout, etc.)
	shortTimeout = 30 * time.Second

	// longTimeout for network operations (fetch, pull, ls-remote)
	longTimeout = 5 * time.Minute
)

// Git runs git commands in a working directory.
type Git struct {
	repoPath string
	out      io.Writer
}

// New creates a Git for repoPath. An empty repoPath uses the current
// directory.
func New(repoPath string) *Git {
	return &Git{
		repoPath: repoPath,
		out:      io.Discard,
	}
}

// WithOutput returns a copy of g that streams the output of porcelain
// commands (checkout, pull, fetch) to w.
func (g *Git) WithOutput(w io.Writer) *Git {
	clone := *g
	clone.out = w
	return &clone
}

// Remote is one entry of `git remote -v`.
type Remote struct {
	Name string
	URL  string
}

// run executes git with args and attributes failures to the caller of the
// Git method that called run.
func (g *Git) run(timeout time.Duration, stream bool, args ...string) bugyierror.Result[subprocess.Output] {
	opts := []subprocess.Option{
		subprocess.WithDir(g.repoPath),
		subprocess.WithTimeout(timeout),
		subprocess.AddCallerSkip(2),
	}
	if stream {
		opts = append(opts, subprocess.WithStdout(g.out))
	}

	return subprocess.Run(context.Background(), append([]string{"git"}, args...), opts...)
}

func stdout(r bugyierror.Result[subprocess.Output]) bugyierror.Result[string] {
	return result.Map(r, func(out subprocess.Output) string { return out.Stdout })
}

func done(r bugyierror.Result[subprocess.Output]) bugyierror.Result[struct{}] {
	return result.Map(r, func(subprocess.Output) struct{} { return struct{}{} })
}

// TopLevelDir returns the root of the working tree containing repoPath.
func (g *Git) TopLevelDir() bugyierror.Result[string] {
	return stdout(g.run(shortTimeout, false, "rev-parse", "--show-toplevel"))
}

// IsRepository reports whether repoPath is inside a git working tree.
func (g *Git) IsRepository() bool {
	return g.run(shortTimeout, false, "rev-parse", "--is-inside-work-tree").IsOk()
}

// Remotes lists the configured remotes, once per name and URL pair.
func (g *Git) Remotes() bugyierror.Result[[]Remote] {
	return result.Map(g.run(shortTimeout, false, "remote", "-v"), func(out subprocess.Output) []Remote {
		remotes := []Remote{}
		for _, line := range strings.Split(out.Stdout, "\n") {
			fields := strings.Fields(line)
			if len(fields) < 2 {
				continue
			}

			remote := Remote{Name: fields[0], URL: fields[1]}
			if !slices.Contains(remotes, remote) {
				remotes = append(remotes, remote)
			}
		}
		return remotes
	})
}

// LocalBranchExists reports whether branch exists locally.
func (g *Git) LocalBranchExists(branch string) bugyierror.Result[bool] {
	return nonEmpty(g.run(shortTimeout, false, "branch", "--list", branch))
}

// RemoteBranchExists reports whether remote has a branch named branch.
func (g *Git) RemoteBranchExists(remote, branch string) bugyierror.Result[bool] {
	return nonEmpty(g.run(longTimeout, false, "ls-remote", "--heads", remote, branch))
}

func nonEmpty(r bugyierror.Result[subprocess.Output]) bugyierror.Result[bool] {
	return result.Map(r, func(out subprocess.Output) bool { return out.Stdout != "" })
}

// Checkout switches to branch. When template is non-empty, branch is
// created from template first.
func (g *Git) Checkout(branch, template string) bugyierror.Result[struct{}] {
	args := []string{"checkout"}
	if template == "" {
		args = append(args, branch)
	} else {
		args = append(args, "-b", branch, template)
	}

	return done(g.run(shortTimeout, true, args...))
}

// Pull pulls the current branch.
func (g *Git) Pull() bugyierror.Result[struct{}] {
	return done(g.run(longTimeout, true, "pull"))
}

// Fetch fetches remote, or every remote when remote is empty.
func (g *Git) Fetch(remote string) bugyierror.Result[struct{}] {
	if remote == "" {
		return done(g.run(longTimeout, true, "fetch", "--all"))
	}
	return done(g.run(longTimeout, true, "fetch", remote))
}

// AddRemote adds a remote. Adding a remote that already exists with the same
// URL is a no-op; a different URL fails with a *RemoteExistsError cause.
func (g *Git) AddRemote(name, url string) bugyierror.Result[struct{}] {
	existing := g.remoteURL(name)
	if existingURL, ok := existing.Ok(); ok {
		if existingURL == url {
			return result.Ok(struct{}{})
		}
		return bugyierror.Fail[struct{}](
			"Failed to add remote "+name,
			bugyierror.WithCause(&RemoteExistsError{Remote: name, ExistingURL: existingURL, NewURL: url}),
			bugyierror.Up(1),
		)
	}

	return done(g.run(shortTimeout, false, "remote", "add", name, url))
}

func (g *Git) remoteURL(name string) bugyierror.Result[string] {
	return stdout(g.run(shortTimeout, false, "remote", "get-url", name))
}

// CurrentBranch returns the short name of the checked out branch. It fails
// on a detached HEAD.
func (g *Git) CurrentBranch() bugyierror.Result[string] {
	return result.Map(g.run(shortTimeout, false, "symbolic-ref", "--quiet", "HEAD"), func(out subprocess.Output) string {
		return strings.TrimPrefix(out.Stdout, "refs/heads/")
	})
}
