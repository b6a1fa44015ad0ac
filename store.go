package gitflow

import (
	"fmt"
	"os"
	"os/exec"
	"regexp"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// Store reads and writes a persisted version artifact. Write must re-read
// the artifact and fail with a WriteVerificationError if the stored value
// does not match what was requested, even when the write itself reported
// success.
type Store interface {
	Read() (Version, error)
	Write(Version) error
}

// Runner executes an external build tool in a working directory. The Maven
// store delegates its write to it so the build tool's own set-version
// mechanics stay authoritative.
type Runner interface {
	Run(dir string, name string, args ...string) error
}

type execRunner struct{}

func (execRunner) Run(dir string, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("running %s: %w: %s", name, err, output)
	}
	return nil
}

// NewExecRunner returns a Runner backed by os/exec.
func NewExecRunner() Runner {
	return execRunner{}
}

var revisionFieldPattern = regexp.MustCompile(`<revision>([^<]*)</revision>`)

// MavenStore is the primary artifact: the <revision> property of a pom.xml.
//
// When Runner is set, Write delegates to the Maven versions plugin and the
// workspace directory Dir must point at the checkout on the real filesystem;
// when Runner is nil the field is rewritten in place through FS.
type MavenStore struct {
	FS   billy.Filesystem
	Path string

	Runner Runner
	Dir    string
}

func (s *MavenStore) Read() (Version, error) {
	raw, err := readField(s.FS, s.Path, revisionFieldPattern, "revision")
	if err != nil {
		return Version{}, err
	}
	return Parse(raw)
}

func (s *MavenStore) Write(v Version) error {
	if s.Runner != nil {
		err := s.Runner.Run(s.Dir, "mvn", "--quiet", "--batch-mode",
			"-DgenerateBackupPoms=false",
			"-Dproperty=revision",
			"-DnewVersion="+v.String(),
			"versions:set-property")
		if err != nil {
			return fmt.Errorf("setting revision via maven: %w", err)
		}
	} else if err := writeField(s.FS, s.Path, revisionFieldPattern, "revision", v.String()); err != nil {
		return err
	}
	return verifyWrite(s, s.Path, v)
}

var versionFieldPattern = regexp.MustCompile(`"version"[ \t]*:[ \t]*"([^"]*)"`)

// PackageJSONStore is the secondary artifact: the "version" field of a
// package.json, rewritten in place.
type PackageJSONStore struct {
	FS   billy.Filesystem
	Path string
}

func (s *PackageJSONStore) Read() (Version, error) {
	raw, err := readField(s.FS, s.Path, versionFieldPattern, "version")
	if err != nil {
		return Version{}, err
	}
	return Parse(raw)
}

func (s *PackageJSONStore) Write(v Version) error {
	if err := writeField(s.FS, s.Path, versionFieldPattern, "version", v.String()); err != nil {
		return err
	}
	return verifyWrite(s, s.Path, v)
}

// readField extracts the single occurrence of a version field. Zero matches
// is a NotFoundError; more than one is fatal because a partial replacement
// across ambiguous matches could corrupt the artifact.
func readField(fs billy.Filesystem, path string, pattern *regexp.Regexp, field string) (string, error) {
	data, err := util.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &NotFoundError{Locator: path}
		}
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	matches := pattern.FindAllSubmatch(data, 2)
	switch len(matches) {
	case 0:
		return "", &NotFoundError{Locator: path, Field: field}
	case 1:
		return string(matches[0][1]), nil
	default:
		return "", fmt.Errorf("ambiguous %s field: multiple occurrences in %s", field, path)
	}
}

// writeField replaces the whole field value in place, leaving the rest of the
// artifact byte-for-byte untouched.
func writeField(fs billy.Filesystem, path string, pattern *regexp.Regexp, field, value string) error {
	data, err := util.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return &NotFoundError{Locator: path}
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}

	locs := pattern.FindAllSubmatchIndex(data, 2)
	switch len(locs) {
	case 0:
		return &NotFoundError{Locator: path, Field: field}
	case 1:
	default:
		return fmt.Errorf("ambiguous %s field: multiple occurrences in %s", field, path)
	}

	start, end := locs[0][2], locs[0][3]
	updated := make([]byte, 0, len(data)+len(value))
	updated = append(updated, data[:start]...)
	updated = append(updated, value...)
	updated = append(updated, data[end:]...)

	if err := util.WriteFile(fs, path, updated, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func verifyWrite(s Store, locator string, want Version) error {
	got, err := s.Read()
	if err != nil {
		return fmt.Errorf("verifying write to %s: %w", locator, err)
	}
	if got != want {
		return &WriteVerificationError{Locator: locator, Want: want.String(), Got: got.String()}
	}
	return nil
}
