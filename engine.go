package gitflow

import "fmt"

// Engine computes the next version for a branch category. It is stateless
// across runs: every invocation derives the transition from the current
// persisted version, the category and (for main/develop) the merge signal.
type Engine struct {
	Probe  Probe
	Window LookbackWindow
}

// Next applies the category's transition rule to current.
//
// Main and develop consult the merge-signal probe because their next version
// depends on history, not just the branch name. Release and hotfix are
// derivable from current state alone. Feature and unrecognized branches never
// mutate the version.
func (e *Engine) Next(category BranchCategory, current Version) (Version, error) {
	switch category.Kind {
	case BranchMain:
		// Promote RC to stable only when a release/hotfix merge just landed.
		if current.Qualifier == ReleaseCandidate && e.detect(category) == SignalPresent {
			return current.StripQualifier(), nil
		}
		return current, nil

	case BranchDevelop:
		// A fresh cycle starts when a release line just closed: either the
		// history says so, or the persisted version still carries the closed
		// line's RC or stable form.
		if e.detect(category) == SignalPresent || current.Qualifier != Snapshot {
			return Version{Major: current.Major, Minor: current.Minor + 1, Qualifier: Snapshot}, nil
		}
		return current, nil

	case BranchRelease:
		if current.Qualifier == ReleaseCandidate &&
			current.Major == category.Major && current.Minor == category.Minor && current.Patch == 0 {
			next := current
			next.RC++
			return next, nil
		}
		return Version{Major: category.Major, Minor: category.Minor, Qualifier: ReleaseCandidate, RC: 1}, nil

	case BranchHotfix:
		// Patch comes from the persisted version, never from the branch name.
		return Version{Major: current.Major, Minor: current.Minor, Patch: current.Patch + 1}, nil

	case BranchFeature, BranchOther:
		return current, nil

	default:
		return Version{}, fmt.Errorf("unhandled branch kind %d", category.Kind)
	}
}

func (e *Engine) detect(category BranchCategory) MergeSignal {
	if e.Probe == nil {
		return SignalUnavailable
	}
	return e.Probe.Detect(category, e.Window)
}
