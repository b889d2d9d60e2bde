package state

import "time"

var (
	// BroadcastInterval is the number of ticks a link state router
	// floods LSAs before it declares the broadcast complete and runs
	// its shortest path computation. This is long enough so that
	// broadcasts complete even on large topologies.
	BroadcastInterval = uint64(1000)

	// TraceDedupTTL suppresses duplicate route trace events for the
	// same (router, destination) pair within this window.
	TraceDedupTTL = time.Second * 3

	// default config file path, overridable via the CLI
	ConfigPath = "topology.yaml"
)
