package gitflow

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Result is the machine-consumable record of one calculation run.
type Result struct {
	Success        bool   `json:"success"`
	OldVersion     string `json:"old_version"`
	NewVersion     string `json:"new_version"`
	Branch         string `json:"branch"`
	VersionChanged bool   `json:"version_changed"`
	Timestamp      string `json:"timestamp"`
}

// SyncResult extends Result for the secondary artifact, which reports its
// synchronization source alongside the transition.
type SyncResult struct {
	Result
	MavenVersion  string `json:"maven_version"`
	SyncWithMaven bool   `json:"sync_with_maven"`
}

// NewResult builds a successful Result for a computed transition.
func NewResult(old, next Version, branch string, now time.Time) Result {
	return Result{
		Success:        true,
		OldVersion:     old.String(),
		NewVersion:     next.String(),
		Branch:         branch,
		VersionChanged: next != old,
		Timestamp:      now.UTC().Format(time.RFC3339),
	}
}

// Reporter renders a run result. In JSON mode the record is the only thing
// written to Out; diagnostics belong on a separate stream so downstream
// parsers can rely on the output.
type Reporter struct {
	Out    io.Writer
	Format string
}

func (r Reporter) Report(record any) error {
	if r.Format == "json" {
		return json.NewEncoder(r.Out).Encode(record)
	}

	switch res := record.(type) {
	case Result:
		r.printResult(res)
	case SyncResult:
		r.printResult(res.Result)
		fmt.Fprintf(r.Out, "maven version: %s\n", res.MavenVersion)
		fmt.Fprintf(r.Out, "synced with maven: %t\n", res.SyncWithMaven)
	default:
		return fmt.Errorf("unsupported result type %T", record)
	}
	return nil
}

func (r Reporter) printResult(res Result) {
	fmt.Fprintf(r.Out, "branch: %s\n", res.Branch)
	fmt.Fprintf(r.Out, "old version: %s\n", res.OldVersion)
	fmt.Fprintf(r.Out, "new version: %s\n", res.NewVersion)
	fmt.Fprintf(r.Out, "changed: %t\n", res.VersionChanged)
}
