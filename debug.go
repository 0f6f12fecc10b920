package picking

import (
	"time"

	"go.uber.org/zap"
)

// TickStats holds the counters of one Backend.Run.
type TickStats struct {
	Pointers int // pointers in the snapshot
	Batches  int // batches emitted
	Hits     int // hit records across all batches

	SkippedNoLocation int
	SkippedNoPrimary  int
	SkippedNoCamera   int
	SkippedProjection int

	Duration time.Duration
}

// Skipped returns the number of pointers that produced no batch.
func (s TickStats) Skipped() int {
	return s.SkippedNoLocation + s.SkippedNoPrimary + s.SkippedNoCamera + s.SkippedProjection
}

func (s *TickStats) skip(r skipReason) {
	switch r {
	case skipNoLocation:
		s.SkippedNoLocation++
	case skipNoPrimary:
		s.SkippedNoPrimary++
	case skipNoCamera:
		s.SkippedNoCamera++
	case skipProjection:
		s.SkippedProjection++
	}
}

// debugLog writes the tick counters at debug level.
func (b *Backend) debugLog(stats TickStats) {
	b.logger.Debug("pick tick",
		zap.Int("pointers", stats.Pointers),
		zap.Int("batches", stats.Batches),
		zap.Int("hits", stats.Hits),
		zap.Int("skipped", stats.Skipped()),
		zap.Int("geometry", len(b.geomBuf)),
		zap.Int("cameras", len(b.camBuf)),
		zap.Duration("elapsed", stats.Duration))
}
