package valentime

import (
	"time"

	"go.uber.org/zap"
)

// debugReportInterval is how much simulated time is aggregated into one
// stats log line.
const debugReportInterval = 1.0

// frameStats aggregates renderer metrics over debugReportInterval seconds
// and logs a summary. Only fed when Config.Debug is set.
type frameStats struct {
	logger *zap.Logger

	elapsed   float64
	frames    int
	drawCalls int
	culled    int
	project   time.Duration
	submit    time.Duration
	reports   int
}

func newFrameStats(logger *zap.Logger) *frameStats {
	return &frameStats{logger: orNop(logger).Named("stats")}
}

// observe adds one frame of dt seconds. It returns true when a report was
// emitted.
func (s *frameStats) observe(dt float64, rs RenderStats, progress float64, section int) bool {
	s.elapsed += dt
	s.frames++
	s.drawCalls += rs.DrawCalls
	s.culled += rs.Culled
	s.project += rs.ProjectTime
	s.submit += rs.SubmitTime
	if s.elapsed < debugReportInterval {
		return false
	}

	n := time.Duration(s.frames)
	s.logger.Debug("frame stats",
		zap.Int("frames", s.frames),
		zap.Float64("avg_draw_calls", float64(s.drawCalls)/float64(s.frames)),
		zap.Float64("avg_culled", float64(s.culled)/float64(s.frames)),
		zap.Duration("avg_project", s.project/n),
		zap.Duration("avg_submit", s.submit/n),
		zap.Int("particles", rs.Particles),
		zap.Int("dots", rs.Dots),
		zap.Int("segments", rs.Segments),
		zap.Float64("progress", progress),
		zap.Int("section", section),
	)
	s.reports++
	s.reset()
	return true
}

func (s *frameStats) reset() {
	s.elapsed = 0
	s.frames = 0
	s.drawCalls = 0
	s.culled = 0
	s.project = 0
	s.submit = 0
}
