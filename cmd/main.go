package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/go-git/go-billy/v5/osfs"

	gitflow "github.com/Kingsrook/gitflow-version"
)

// Version will be set by build process
var Version = "dev"

// Globals are the flags shared by both artifact invocations.
type Globals struct {
	DryRun       bool             `help:"Compute the transition but write nothing."`
	Verbose      bool             `short:"v" help:"Print diagnostic lines to stderr."`
	OutputFormat string           `enum:"text,json" default:"text" help:"Result format (text or json)."`
	Workspace    string           `short:"w" default:"." type:"path" help:"Working-copy root."`
	Branch       string           `help:"Branch name override (default: resolved from the repository HEAD)."`
	Version      kong.VersionFlag `help:"Show version information."`
}

type CLI struct {
	Globals

	Maven MavenCmd `cmd:"" help:"Calculate and persist the pom.xml revision."`
	Npm   NpmCmd   `cmd:"" name:"npm" help:"Calculate and persist the package.json version."`
}

func main() {
	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("gitflow-version"),
		kong.Description("Calculate GitFlow semantic versions and keep the build and package descriptors in sync"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": Version,
		},
	)

	if err := ctx.Run(&cli.Globals); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// MavenCmd is the primary-artifact invocation.
type MavenCmd struct {
	Pom string `default:"pom.xml" help:"Build descriptor path, relative to the workspace."`
}

func (c *MavenCmd) Run(g *Globals) error {
	branch, err := g.resolveBranch()
	if err != nil {
		return err
	}

	category, err := gitflow.Classify(branch)
	if err != nil {
		return err
	}
	g.diag("branch %q classified as %s", branch, category.Kind)

	store := &gitflow.MavenStore{
		FS:   osfs.New(g.Workspace),
		Path: c.Pom,
		Dir:  g.Workspace,
	}
	if !g.DryRun {
		store.Runner = gitflow.NewExecRunner()
	}

	current, err := store.Read()
	if err != nil {
		return err
	}

	engine := g.engine()
	next, err := engine.Next(category, current)
	if err != nil {
		return err
	}

	if err := g.persist(store, current, next); err != nil {
		return err
	}

	return g.reporter().Report(gitflow.NewResult(current, next, branch, time.Now()))
}

// NpmCmd is the secondary-artifact invocation.
type NpmCmd struct {
	PackageJSON   string `default:"package.json" help:"Package descriptor path, relative to the workspace."`
	SyncWithMaven bool   `help:"Mirror the pom.xml revision (snapshot suffix stripped) instead of applying transition rules."`
	Pom           string `default:"pom.xml" help:"Synchronization source when --sync-with-maven is set."`
}

func (c *NpmCmd) Run(g *Globals) error {
	branch, err := g.resolveBranch()
	if err != nil {
		return err
	}

	fs := osfs.New(g.Workspace)
	store := &gitflow.PackageJSONStore{FS: fs, Path: c.PackageJSON}

	current, err := store.Read()
	if err != nil {
		return err
	}

	var next gitflow.Version
	mavenVersion := ""
	if c.SyncWithMaven {
		mavenStore := &gitflow.MavenStore{FS: fs, Path: c.Pom}
		source, err := mavenStore.Read()
		if err != nil {
			return err
		}
		mavenVersion = source.String()
		next = source.StripSnapshot()
		g.diag("syncing with maven version %s", mavenVersion)
	} else {
		category, err := gitflow.Classify(branch)
		if err != nil {
			return err
		}
		g.diag("branch %q classified as %s", branch, category.Kind)

		engine := g.engine()
		next, err = engine.Next(category, current)
		if err != nil {
			return err
		}
	}

	if err := g.persist(store, current, next); err != nil {
		return err
	}

	return g.reporter().Report(gitflow.SyncResult{
		Result:        gitflow.NewResult(current, next, branch, time.Now()),
		MavenVersion:  mavenVersion,
		SyncWithMaven: c.SyncWithMaven,
	})
}

// resolveBranch returns the branch override, or the short name of the
// repository HEAD.
func (g *Globals) resolveBranch() (string, error) {
	if g.Branch != "" {
		return g.Branch, nil
	}

	repo, err := gitflow.OpenRepository(g.Workspace)
	if err != nil {
		return "", fmt.Errorf("resolving branch: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolving branch: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", fmt.Errorf("HEAD is not on a branch; pass --branch")
	}

	return head.Name().Short(), nil
}

// engine builds the transition engine. A workspace that cannot be opened as
// a repository leaves the probe nil, which the engine treats as an
// unavailable merge signal.
func (g *Globals) engine() gitflow.Engine {
	var probe gitflow.Probe
	if repo, err := gitflow.OpenRepository(g.Workspace); err == nil {
		probe = &gitflow.HistoryProbe{Repository: repo}
	} else {
		g.diag("merge-signal probe unavailable: %v", err)
	}
	return gitflow.Engine{Probe: probe, Window: gitflow.DefaultLookback}
}

// persist writes next to the store unless the value is unchanged or dry-run
// is active.
func (g *Globals) persist(store gitflow.Store, current, next gitflow.Version) error {
	switch {
	case next == current:
		g.diag("version unchanged at %s, nothing to write", current)
	case g.DryRun:
		g.diag("dry-run: would write %s", next)
	default:
		g.diag("writing %s", next)
		return store.Write(next)
	}
	return nil
}

func (g *Globals) reporter() gitflow.Reporter {
	return gitflow.Reporter{Out: os.Stdout, Format: g.OutputFormat}
}

// diag writes a diagnostic line to stderr, keeping stdout clean for the
// result record.
func (g *Globals) diag(format string, args ...any) {
	if g.Verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
