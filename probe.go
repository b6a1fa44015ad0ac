package gitflow

import (
	"regexp"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// Probe answers "did a release or hotfix merge just complete on this
// branch?". The question is inherently fuzzy (it pattern-matches commit
// subjects), so the engine takes it as an injectable collaborator and tests
// supply synthetic histories.
type Probe interface {
	Detect(category BranchCategory, window LookbackWindow) MergeSignal
}

// OpenRepository opens a Git repository at the specified path
func OpenRepository(path string) (*git.Repository, error) {
	return git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
}

// mergeSubjectPattern matches the merge-commit subjects GitFlow tooling
// produces when a release or hotfix branch lands, e.g.
// "Merge branch 'release/1.5' into develop" or "Merge pull request #12 from
// org/hotfix/1.2.3".
var mergeSubjectPattern = regexp.MustCompile(`(?i)^merge\b.*\b(release|hotfix)/`)

// HistoryProbe scans recent commit history of the repository HEAD for a
// qualifying merge subject. Any failure to read history yields
// SignalUnavailable rather than an error: missing a merge only delays a bump,
// which is the conservative outcome.
type HistoryProbe struct {
	Repository *git.Repository

	// Now is the clock for the recency cutoff; defaults to time.Now.
	Now func() time.Time
}

// Detect walks at most window.MaxCommits commits from HEAD and stops at the
// recency cutoff, whichever comes first.
func (p *HistoryProbe) Detect(_ BranchCategory, window LookbackWindow) MergeSignal {
	if p.Repository == nil {
		return SignalUnavailable
	}

	head, err := p.Repository.Head()
	if err != nil {
		return SignalUnavailable
	}

	commit, err := p.Repository.CommitObject(head.Hash())
	if err != nil {
		return SignalUnavailable
	}

	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	cutoff := now().Add(-window.MaxAge)

	found := false
	seen := 0
	walker := object.NewCommitPreorderIter(commit, nil, nil)
	err = walker.ForEach(func(c *object.Commit) error {
		if seen >= window.MaxCommits || c.Committer.When.Before(cutoff) {
			return storer.ErrStop
		}
		seen++

		if mergeSubjectPattern.MatchString(commitSubject(c)) {
			found = true
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return SignalUnavailable
	}

	if found {
		return SignalPresent
	}
	return SignalAbsent
}

func commitSubject(c *object.Commit) string {
	subject, _, _ := strings.Cut(c.Message, "\n")
	return subject
}
