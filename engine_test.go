package gitflow

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) Version {
	t.Helper()
	v, err := Parse(s)
	require.NoError(t, err)
	return v
}

func TestEngineNext(t *testing.T) {
	tests := []struct {
		name     string
		branch   string
		current  string
		signal   MergeSignal
		expected string
	}{
		{"Main promotes RC to stable on merge signal", "main", "2.1.0-RC.2", SignalPresent, "2.1.0"},
		{"Main keeps RC without merge signal", "main", "2.1.0-RC.2", SignalAbsent, "2.1.0-RC.2"},
		{"Main keeps RC when probe unavailable", "main", "2.1.0-RC.2", SignalUnavailable, "2.1.0-RC.2"},
		{"Main keeps stable version", "main", "2.1.0", SignalPresent, "2.1.0"},
		{"Main keeps snapshot version", "main", "2.1.0-SNAPSHOT", SignalPresent, "2.1.0-SNAPSHOT"},

		{"Develop opens next cycle on merge signal", "develop", "1.4.3-SNAPSHOT", SignalPresent, "1.5.0-SNAPSHOT"},
		{"Develop opens next cycle from stable version", "develop", "1.4.0", SignalAbsent, "1.5.0-SNAPSHOT"},
		{"Develop opens next cycle from RC version", "develop", "1.4.0-RC.2", SignalAbsent, "1.5.0-SNAPSHOT"},
		{"Develop keeps mid-cycle snapshot", "develop", "1.4.3-SNAPSHOT", SignalAbsent, "1.4.3-SNAPSHOT"},
		{"Develop keeps mid-cycle snapshot when probe unavailable", "develop", "1.4.3-SNAPSHOT", SignalUnavailable, "1.4.3-SNAPSHOT"},

		{"Release increments existing RC", "release/1.5", "1.5.0-RC.3", SignalAbsent, "1.5.0-RC.4"},
		{"Release cuts first RC for new line", "release/2.0", "1.9.0", SignalAbsent, "2.0.0-RC.1"},
		{"Release cuts first RC from snapshot", "release/2.0", "2.0.0-SNAPSHOT", SignalAbsent, "2.0.0-RC.1"},
		{"Release restarts RC for a different line", "release/2.0", "1.5.0-RC.3", SignalAbsent, "2.0.0-RC.1"},

		{"Hotfix bumps persisted patch", "hotfix/1.2.4", "1.2.3", SignalAbsent, "1.2.4"},
		{"Hotfix ignores branch-embedded numbers", "hotfix/9.9.9", "3.2.1", SignalAbsent, "3.2.2"},
		{"Hotfix strips qualifier", "hotfix/1.2.4", "1.2.3-SNAPSHOT", SignalAbsent, "1.2.4"},

		{"Feature inherits current version", "feature/shiny", "1.4.3-SNAPSHOT", SignalPresent, "1.4.3-SNAPSHOT"},
		{"Other inherits current version", "some-branch", "2.0.0-RC.1", SignalPresent, "2.0.0-RC.1"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			category, err := Classify(test.branch)
			require.NoError(t, err)

			engine := Engine{Probe: fixedProbe(test.signal)}
			next, err := engine.Next(category, mustParse(t, test.current))
			require.NoError(t, err)
			require.Equal(t, test.expected, next.String())
		})
	}
}

func TestEngineNilProbe(t *testing.T) {
	// No probe behaves exactly like an absent signal.
	engine := Engine{}

	category, err := Classify("main")
	require.NoError(t, err)

	current := mustParse(t, "2.1.0-RC.2")
	next, err := engine.Next(category, current)
	require.NoError(t, err)
	require.Equal(t, current, next)
}

func TestEngineIdempotence(t *testing.T) {
	// With no merge signal, running the engine on its own output is a no-op
	// for every history-independent category.
	branches := []string{"main", "develop", "feature/x", "anything-else"}
	currents := []string{"1.2.3", "1.4.3-SNAPSHOT", "2.0.0-RC.2"}

	for _, branch := range branches {
		for _, current := range currents {
			t.Run(branch+"/"+current, func(t *testing.T) {
				category, err := Classify(branch)
				require.NoError(t, err)

				engine := Engine{Probe: fixedProbe(SignalAbsent)}
				first, err := engine.Next(category, mustParse(t, current))
				require.NoError(t, err)

				second, err := engine.Next(category, first)
				require.NoError(t, err)
				require.Equal(t, first, second)
			})
		}
	}
}

func TestEngineReleaseRepeatedCuts(t *testing.T) {
	// Release legitimately increments on every explicit RC cut.
	category, err := Classify("release/1.5")
	require.NoError(t, err)

	engine := Engine{Probe: fixedProbe(SignalAbsent)}

	version := mustParse(t, "1.4.0")
	for i := 1; i <= 3; i++ {
		version, err = engine.Next(category, version)
		require.NoError(t, err)
		require.Equal(t, uint64(i), version.RC)
		require.Equal(t, "1.5.0", version.StripQualifier().String())
	}
}
