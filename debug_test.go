package valentime

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFrameStatsReportsOncePerInterval(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := newFrameStats(zap.New(core))

	rs := RenderStats{DrawCalls: 2, Culled: 3, ProjectTime: time.Millisecond}
	reported := 0
	for i := 0; i < 8; i++ {
		if s.observe(0.25, rs, 0.5, 2) {
			reported++
		}
	}
	if reported != 2 {
		t.Fatalf("reports = %d, want 2 over two seconds", reported)
	}
	entries := logs.FilterMessage("frame stats").All()
	if len(entries) != 2 {
		t.Fatalf("logged %d entries, want 2", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["avg_draw_calls"] != 2.0 {
		t.Errorf("avg_draw_calls = %v, want 2", fields["avg_draw_calls"])
	}
	if fields["section"] != int64(2) {
		t.Errorf("section = %v, want 2", fields["section"])
	}
	if fields["avg_project"] != time.Millisecond {
		t.Errorf("avg_project = %v, want 1ms", fields["avg_project"])
	}
}

func TestFrameStatsResetsAfterReport(t *testing.T) {
	s := newFrameStats(nil)
	s.observe(2, RenderStats{DrawCalls: 5}, 0, 0)
	if s.frames != 0 || s.drawCalls != 0 || s.elapsed != 0 {
		t.Errorf("stats not reset: %+v", *s)
	}
	if s.reports != 1 {
		t.Errorf("reports = %d, want 1", s.reports)
	}
}
