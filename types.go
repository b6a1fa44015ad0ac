// Package gitflow calculates semantic versions for repositories that follow
// the GitFlow branching model.
package gitflow

import "time"

// Qualifier identifies the pre-release form of a version.
type Qualifier int

const (
	// None means a stable MAJOR.MINOR.PATCH version.
	None Qualifier = iota
	// Snapshot marks an unstable in-progress build.
	Snapshot
	// ReleaseCandidate marks a numbered pre-release cut for a MAJOR.MINOR line.
	ReleaseCandidate
)

// Version is a parsed semantic version. RC holds the release-candidate index
// and is meaningful only when Qualifier is ReleaseCandidate.
type Version struct {
	Major     uint64
	Minor     uint64
	Patch     uint64
	Qualifier Qualifier
	RC        uint64
}

// StripQualifier returns the stable MAJOR.MINOR.PATCH form of v.
func (v Version) StripQualifier() Version {
	return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch}
}

// StripSnapshot returns v without a Snapshot qualifier. Other qualifiers are
// kept as-is.
func (v Version) StripSnapshot() Version {
	if v.Qualifier == Snapshot {
		return v.StripQualifier()
	}
	return v
}

// BranchKind enumerates the GitFlow branch categories.
type BranchKind int

const (
	BranchMain BranchKind = iota
	BranchDevelop
	BranchRelease
	BranchHotfix
	BranchFeature
	BranchOther
)

func (k BranchKind) String() string {
	switch k {
	case BranchMain:
		return "main"
	case BranchDevelop:
		return "develop"
	case BranchRelease:
		return "release"
	case BranchHotfix:
		return "hotfix"
	case BranchFeature:
		return "feature"
	default:
		return "other"
	}
}

// BranchCategory is the classification of a branch name. The numeric fields
// come from the branch name itself: Major and Minor are set for
// BranchRelease, all three for BranchHotfix, none otherwise.
type BranchCategory struct {
	Kind  BranchKind
	Major uint64
	Minor uint64
	Patch uint64
}

// MergeSignal is the outcome of a merge-history probe.
type MergeSignal int

const (
	// SignalAbsent means no qualifying merge commit was found in the window.
	SignalAbsent MergeSignal = iota
	// SignalPresent means a recent release or hotfix merge was found.
	SignalPresent
	// SignalUnavailable means the history could not be inspected. The engine
	// treats it exactly like SignalAbsent.
	SignalUnavailable
)

// LookbackWindow bounds a history probe. Both limits apply; whichever is
// reached first ends the scan.
type LookbackWindow struct {
	// MaxCommits is the number of most-recent commits to inspect.
	MaxCommits int
	// MaxAge is the recency cutoff; commits older than this are not inspected.
	MaxAge time.Duration
}

// DefaultLookback is the window used by the CLI.
var DefaultLookback = LookbackWindow{MaxCommits: 20, MaxAge: 24 * time.Hour}
