package state

import (
	"time"

	"mephrase/dom"
)

// newLocalEnv creates LocalEnv with defaults used when command line does not
// say otherwise.
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start:       time.Now(),
		Times:       1,
		OpenMarker:  dom.DefaultOpenMarker,
		CloseMarker: dom.DefaultCloseMarker,
	}
}
