package gitflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("Valid versions round-trip", func(t *testing.T) {
		tests := []struct {
			input    string
			expected Version
		}{
			{"0.0.0", Version{}},
			{"1.2.3", Version{Major: 1, Minor: 2, Patch: 3}},
			{"10.20.30", Version{Major: 10, Minor: 20, Patch: 30}},
			{"1.4.3-SNAPSHOT", Version{Major: 1, Minor: 4, Patch: 3, Qualifier: Snapshot}},
			{"0.1.0-SNAPSHOT", Version{Minor: 1, Qualifier: Snapshot}},
			{"2.0.0-RC.1", Version{Major: 2, Qualifier: ReleaseCandidate, RC: 1}},
			{"1.5.0-RC.42", Version{Major: 1, Minor: 5, Qualifier: ReleaseCandidate, RC: 42}},
		}

		for _, test := range tests {
			t.Run(test.input, func(t *testing.T) {
				version, err := Parse(test.input)
				require.NoError(t, err)
				require.Equal(t, test.expected, version)
				require.Equal(t, test.input, version.String())
			})
		}
	})

	t.Run("Invalid versions are rejected", func(t *testing.T) {
		inputs := []string{
			"",
			"1",
			"1.2",
			"1.2.3.4",
			"v1.2.3",
			"01.2.3",
			"1.2.3-snapshot",
			"1.2.3-SNAPSHOT-SNAPSHOT",
			"1.2.3-rc.1",
			"1.2.3-RC",
			"1.2.3-RC.0",
			"1.2.3-RC.01",
			"1.2.3-alpha.1",
			"1.2.3+build.5",
			"1.2.3-RC.1-SNAPSHOT",
		}

		for _, input := range inputs {
			t.Run(input, func(t *testing.T) {
				_, err := Parse(input)
				require.Error(t, err)

				var parseErr *ParseError
				require.True(t, errors.As(err, &parseErr))
				require.Equal(t, input, parseErr.Input)
			})
		}
	})
}

func TestVersionString(t *testing.T) {
	require.Equal(t, "1.2.3", Version{Major: 1, Minor: 2, Patch: 3}.String())
	require.Equal(t, "1.5.0-SNAPSHOT", Version{Major: 1, Minor: 5, Qualifier: Snapshot}.String())
	require.Equal(t, "2.0.0-RC.3", Version{Major: 2, Qualifier: ReleaseCandidate, RC: 3}.String())
}

func TestStripQualifier(t *testing.T) {
	rc := Version{Major: 2, Minor: 1, Qualifier: ReleaseCandidate, RC: 2}
	require.Equal(t, Version{Major: 2, Minor: 1}, rc.StripQualifier())
}

func TestStripSnapshot(t *testing.T) {
	t.Run("Snapshot is stripped", func(t *testing.T) {
		snapshot := Version{Major: 1, Minor: 5, Qualifier: Snapshot}
		require.Equal(t, Version{Major: 1, Minor: 5}, snapshot.StripSnapshot())
	})

	t.Run("Other qualifiers are kept", func(t *testing.T) {
		stable := Version{Major: 1, Minor: 5}
		require.Equal(t, stable, stable.StripSnapshot())

		rc := Version{Major: 1, Minor: 5, Qualifier: ReleaseCandidate, RC: 1}
		require.Equal(t, rc, rc.StripSnapshot())
	})
}
