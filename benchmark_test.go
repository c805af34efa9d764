package valentime

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func setupBenchRenderer(b *testing.B, particles int) (*Renderer, *SceneGraph) {
	b.Helper()
	cfg := DefaultConfig().Scene
	cfg.ParticleCount = particles
	cfg.Seed = 1
	cam := NewCamera(cfg, 1280, 720)
	sg := NewSceneGraph(cfg, 5, cam, nil)
	sg.Initialize()
	r := NewRenderer(cam, 1280, 720, nil)
	r.Mount(sg)
	b.Cleanup(func() {
		r.Dispose()
		sg.Dispose()
	})
	return r, sg
}

func BenchmarkRender_10000Particles(b *testing.B) {
	r, sg := setupBenchRenderer(b, 10000)
	screen := ebiten.NewImage(1280, 720)

	// Warm up: first render grows the vertex buffers.
	sg.Update(1.0 / 60)
	r.Render(screen)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sg.ApplyScrollProgress(float64(i%100) / 100)
		sg.Update(1.0 / 60)
		r.Render(screen)
	}
}

func BenchmarkSceneUpdate_10000Particles(b *testing.B) {
	_, sg := setupBenchRenderer(b, 10000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sg.Update(1.0 / 60)
	}
}

func BenchmarkScrollTick(b *testing.B) {
	e := NewScrollEngine(DefaultConfig().Scroll, nil)
	vp := &Viewport{Height: 720}
	content := &VirtualContent{viewport: vp, Screens: 5}
	var sink float64
	e.AddListener(func(p float64) { sink = p })
	sub := e.Start(vp, content)
	defer sub.Close()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if i%30 == 0 {
			e.OnWheel(120)
		}
		e.Tick(1.0 / 60)
	}
	_ = sink
}

func BenchmarkMapToSection(b *testing.B) {
	var sink int
	for i := 0; i < b.N; i++ {
		sink += MapToSection(float64(i%1000)/1000, 5)
	}
	_ = sink
}
