package resultstore

import "github.com/KodyMike/rndSequencer/pkg/runidentifier"

// result is the stored JSON envelope: the run the analysis belongs to,
// the creation time, and the analysis document itself.
type result struct {
	Run              runidentifier.RunIdentifier `json:"run"`
	CreatedTimestamp int64                       `json:"created"`
	Analysis         any                         `json:"analysis"`
}
