// Package featureflags provides runtime toggles for analyzer behavior.
// Flags are registered at package init with a default state and
// overridden per invocation via Update, fed by the -features CLI flag or
// the worker's RNDSEQ_FEATURE_FLAGS environment variable.
package featureflags

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUndefinedFlag = errors.New("undefined feature flag")

var registry = make(map[string]*FeatureFlag)

// FeatureFlag is a single registered toggle; check it with Enabled().
type FeatureFlag struct {
	enabled bool
}

// new registers a flag under the given name with its default state.
func new(name string, enabledByDefault bool) *FeatureFlag {
	ff := &FeatureFlag{enabled: enabledByDefault}
	registry[name] = ff
	return ff
}

// Enabled reports whether the flag is currently on.
func (ff *FeatureFlag) Enabled() bool {
	return ff.enabled
}

// Update applies a comma-separated list of overrides to the registered
// flags. A bare name enables the flag; a "-" prefix disables it, so
// "SaveRawCaptures,-PositionChartData" turns the first on and the second
// off. A name that was never registered yields an error wrapping
// ErrUndefinedFlag.
func Update(overrides string) error {
	if overrides == "" {
		return nil
	}
	for _, name := range strings.Split(overrides, ",") {
		enabled := true
		if rest, found := strings.CutPrefix(name, "-"); found {
			enabled = false
			name = rest
		}
		ff, ok := registry[name]
		if !ok {
			return fmt.Errorf("%w %q", ErrUndefinedFlag, name)
		}
		ff.enabled = enabled
	}
	return nil
}

// State snapshots the current on/off state of every registered flag.
func State() map[string]bool {
	state := make(map[string]bool, len(registry))
	for name, ff := range registry {
		state[name] = ff.Enabled()
	}
	return state
}
