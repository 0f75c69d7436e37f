package runidentifier

import (
	"strings"
)

// RunIdentifier identifies one token capture run: the target that was
// probed, the parameter (cookie, header field, JSON key) the tokens were
// extracted from, and an opaque run id assigned by the collector.
type RunIdentifier struct {
	Target    string `json:"target"`
	Parameter string `json:"parameter"`
	RunID     string `json:"runId,omitempty"`
}

func (r RunIdentifier) String() string {
	return strings.Join([]string{r.Target, r.Parameter, r.RunID}, "-")
}
