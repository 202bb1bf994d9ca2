package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bbugyi200/bugyi/internal/git"
)

func newGitCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "git",
		Short: "Git helpers",
		Long:  "Thin wrappers around git commands. Failures are reported with the git output attached.",
	}
	cmd.PersistentFlags().StringP("repo", "C", "", "Run as if git was started in this directory")

	repo := func(cmd *cobra.Command) *git.Git {
		dir, _ := cmd.Flags().GetString("repo")
		return git.New(dir).WithOutput(cmd.OutOrStdout())
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "toplevel",
			Short: "Print the top-level directory of the working tree",
			Args:  cobra.NoArgs,
			RunE: a.catch(func(cmd *cobra.Command, args []string) error {
				dir, err := repo(cmd).TopLevelDir().Unwrap()
				if err != nil {
					return err
				}
				printf(cmd, "%s\n", dir)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "branch",
			Short: "Print the current branch",
			Args:  cobra.NoArgs,
			RunE: a.catch(func(cmd *cobra.Command, args []string) error {
				branch, err := repo(cmd).CurrentBranch().Unwrap()
				if err != nil {
					return err
				}
				printf(cmd, "%s\n", branch)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "remotes",
			Short: "List remotes",
			Args:  cobra.NoArgs,
			RunE: a.catch(func(cmd *cobra.Command, args []string) error {
				remotes, err := repo(cmd).Remotes().Unwrap()
				if err != nil {
					return err
				}

				w := GetWriter(cmd)
				for _, r := range remotes {
					w.Write(Bold(r.Name)).WriteString("\t").Writeln(Link(r.URL))
				}
				return w.Err()
			}),
		},
		newBranchExistsCmd(a, repo),
		&cobra.Command{
			Use:   "fetch [remote]",
			Short: "Fetch a remote, or all remotes",
			Args:  cobra.MaximumNArgs(1),
			RunE: a.catch(func(cmd *cobra.Command, args []string) error {
				remote := ""
				if len(args) == 1 {
					remote = args[0]
				}
				return repo(cmd).Fetch(remote).Err()
			}),
		},
		&cobra.Command{
			Use:   "pull",
			Short: "Pull the current branch",
			Args:  cobra.NoArgs,
			RunE: a.catch(func(cmd *cobra.Command, args []string) error {
				return repo(cmd).Pull().Err()
			}),
		},
		newCheckoutCmd(a, repo),
		&cobra.Command{
			Use:   "add-remote <name> <url>",
			Short: "Add a remote (no-op when it already points at url)",
			Args:  cobra.ExactArgs(2),
			RunE: a.catch(func(cmd *cobra.Command, args []string) error {
				if err := repo(cmd).AddRemote(args[0], args[1]).Err(); err != nil {
					var exists *git.RemoteExistsError
					if errors.As(err, &exists) {
						GetErrorWriter(cmd).Printf(Info("Use 'git remote set-url %s %s' to repoint it"), exists.Remote, exists.NewURL).WritelnString("")
					}
					return err
				}
				GetWriter(cmd).Writeln(Success(fmt.Sprintf("Remote %s → %s", args[0], args[1])))
				return nil
			}),
		},
	)

	return cmd
}

func newBranchExistsCmd(a *app, repo func(*cobra.Command) *git.Git) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "branch-exists <branch>",
		Short: "Print whether a branch exists locally or on a remote",
		Args:  cobra.ExactArgs(1),
		RunE: a.catch(func(cmd *cobra.Command, args []string) error {
			remote, _ := cmd.Flags().GetString("remote")
			g := repo(cmd)

			r := g.LocalBranchExists(args[0])
			if remote != "" {
				r = g.RemoteBranchExists(remote, args[0])
			}

			exists, err := r.Unwrap()
			if err != nil {
				return err
			}
			printf(cmd, "%t\n", exists)
			return nil
		}),
	}

	cmd.Flags().StringP("remote", "r", "", "Check this remote instead of local branches")
	return cmd
}

func newCheckoutCmd(a *app, repo func(*cobra.Command) *git.Git) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkout <branch>",
		Short: "Switch branches, optionally creating the branch from a template",
		Args:  cobra.ExactArgs(1),
		RunE: a.catch(func(cmd *cobra.Command, args []string) error {
			from, _ := cmd.Flags().GetString("from")
			return repo(cmd).Checkout(args[0], from).Err()
		}),
	}

	cmd.Flags().String("from", "", "Create the branch from this branch first")
	return cmd
}
