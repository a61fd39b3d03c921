package game

// Options holds configuration for game initialization that comes from the
// command line rather than the config file.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	SnapshotDir    string // where P and bookmarks save poses
	OutputDir      string // CSV logs and config copy, empty disables
	RestorePath    string // pose to load at start
	AssetRoot      string // base for texture and sound paths
	Headless       bool
	Muted          bool
}
