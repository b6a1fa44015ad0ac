package gitflow

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	mainBranch    = "main"
	developBranch = "develop"
	releasePrefix = "release/"
	hotfixPrefix  = "hotfix/"
	featurePrefix = "feature/"
)

var (
	releaseSuffixPattern = regexp.MustCompile(`^([0-9]+)\.([0-9]+)$`)
	hotfixSuffixPattern  = regexp.MustCompile(`^([0-9]+)\.([0-9]+)\.([0-9]+)$`)
)

// Classify maps a branch name to its GitFlow category. Release and hotfix
// branches must embed their numeric suffix; a malformed suffix is a
// ClassificationError, never a silent fall-through to BranchOther.
func Classify(branch string) (BranchCategory, error) {
	switch {
	case branch == mainBranch:
		return BranchCategory{Kind: BranchMain}, nil

	case branch == developBranch:
		return BranchCategory{Kind: BranchDevelop}, nil

	case strings.HasPrefix(branch, releasePrefix):
		m := releaseSuffixPattern.FindStringSubmatch(strings.TrimPrefix(branch, releasePrefix))
		if m == nil {
			return BranchCategory{}, &ClassificationError{Branch: branch, Reason: MalformedReleaseBranch}
		}
		major, _ := strconv.ParseUint(m[1], 10, 64)
		minor, _ := strconv.ParseUint(m[2], 10, 64)
		return BranchCategory{Kind: BranchRelease, Major: major, Minor: minor}, nil

	case strings.HasPrefix(branch, hotfixPrefix):
		m := hotfixSuffixPattern.FindStringSubmatch(strings.TrimPrefix(branch, hotfixPrefix))
		if m == nil {
			return BranchCategory{}, &ClassificationError{Branch: branch, Reason: MalformedHotfixBranch}
		}
		major, _ := strconv.ParseUint(m[1], 10, 64)
		minor, _ := strconv.ParseUint(m[2], 10, 64)
		patch, _ := strconv.ParseUint(m[3], 10, 64)
		return BranchCategory{Kind: BranchHotfix, Major: major, Minor: minor, Patch: patch}, nil

	case strings.HasPrefix(branch, featurePrefix):
		return BranchCategory{Kind: BranchFeature}, nil

	default:
		return BranchCategory{Kind: BranchOther}, nil
	}
}
