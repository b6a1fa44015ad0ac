package gitflow

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/blang/semver"
)

// The three version grammars, in the order Parse tries them. Suffixed forms
// go first so a stable-looking prefix never matches inside a longer string.
const snapshotSuffix = "-SNAPSHOT"

var rcSuffixPattern = regexp.MustCompile(`^(.*)-RC\.([1-9][0-9]*)$`)

// Parse parses text against the snapshot, release-candidate and stable
// grammars, in that order. Input matching none of them is rejected with a
// ParseError; there is no fallback value.
func Parse(text string) (Version, error) {
	if base, ok := strings.CutSuffix(text, snapshotSuffix); ok {
		v, err := parseTriple(base)
		if err != nil {
			return Version{}, &ParseError{Input: text}
		}
		v.Qualifier = Snapshot
		return v, nil
	}

	if m := rcSuffixPattern.FindStringSubmatch(text); m != nil {
		v, err := parseTriple(m[1])
		if err != nil {
			return Version{}, &ParseError{Input: text}
		}
		rc, err := strconv.ParseUint(m[2], 10, 64)
		if err != nil {
			return Version{}, &ParseError{Input: text}
		}
		v.Qualifier = ReleaseCandidate
		v.RC = rc
		return v, nil
	}

	v, err := parseTriple(text)
	if err != nil {
		return Version{}, &ParseError{Input: text}
	}
	return v, nil
}

// parseTriple parses a bare MAJOR.MINOR.PATCH string. Anything semver accepts
// beyond the numeric triple (pre-release or build metadata) is rejected so
// only the documented grammars ever succeed.
func parseTriple(s string) (Version, error) {
	parsed, err := semver.Parse(s)
	if err != nil {
		return Version{}, err
	}
	if len(parsed.Pre) > 0 || len(parsed.Build) > 0 {
		return Version{}, fmt.Errorf("unexpected suffix in %q", s)
	}
	return Version{Major: parsed.Major, Minor: parsed.Minor, Patch: parsed.Patch}, nil
}

// String renders v in the single textual grammar for its qualifier, so
// Parse(v.String()) round-trips for every valid version.
func (v Version) String() string {
	base := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	switch v.Qualifier {
	case Snapshot:
		return base + snapshotSuffix
	case ReleaseCandidate:
		return fmt.Sprintf("%s-RC.%d", base, v.RC)
	default:
		return base
	}
}
