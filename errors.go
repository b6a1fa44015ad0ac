package gitflow

import "fmt"

// ParseError reports a version string that matched none of the supported
// grammars.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unrecognized version grammar: %q", e.Input)
}

// ClassificationReason narrows a ClassificationError.
type ClassificationReason string

const (
	MalformedReleaseBranch ClassificationReason = "malformed release branch"
	MalformedHotfixBranch  ClassificationReason = "malformed hotfix branch"
)

// ClassificationError reports a release or hotfix branch name whose required
// numeric suffix is missing or malformed.
type ClassificationError struct {
	Branch string
	Reason ClassificationReason
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("%s: %q", e.Reason, e.Branch)
}

// NotFoundError reports a missing version artifact, or a missing version
// field inside one when Field is set.
type NotFoundError struct {
	Locator string
	Field   string
}

func (e *NotFoundError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("no %s field in %s", e.Field, e.Locator)
	}
	return fmt.Sprintf("version artifact not found: %s", e.Locator)
}

// WriteVerificationError reports that the value read back after a write does
// not match the value that was requested.
type WriteVerificationError struct {
	Locator string
	Want    string
	Got     string
}

func (e *WriteVerificationError) Error() string {
	return fmt.Sprintf("write verification failed for %s: wrote %q, read back %q", e.Locator, e.Want, e.Got)
}
