package starfield

import "time"

// tickStats holds per-tick counters and timing.
// Only populated when Field.debug is true.
type tickStats struct {
	tick              uint64
	applied           int
	containmentPasses int
	killed            int
	alive             int
	duration          time.Duration
}

// debugLog reports tick stats at debug level. Ticks with no containment pass
// and no applied request are skipped to keep the log readable at 60 TPS.
func (f *Field) debugLog(stats tickStats) {
	if !f.debug {
		return
	}
	if stats.containmentPasses == 0 && stats.applied == 0 {
		return
	}
	Logger().Debug("tick",
		"tick", stats.tick,
		"applied", stats.applied,
		"containment_passes", stats.containmentPasses,
		"killed", stats.killed,
		"alive", stats.alive,
		"duration", stats.duration)
}
