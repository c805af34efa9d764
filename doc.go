// Package valentime is a scroll-driven 3D narrative built on [Ebitengine].
//
// Wheel and touch input move a damped position along a virtual document.
// That position, normalized to progress in [0, 1], drives two consumers:
// a camera that travels through a field of particles and one wireframe
// object per section, and a tracker that keeps exactly one section active
// and publishes a [SectionChange] whenever it moves. Section changes fade
// the overlay text, highlight the navigation and play a sound cue.
//
// # Quick start
//
//	cfg := valentime.DefaultConfig()
//	exp, err := valentime.NewExperience(cfg, nil, nil,
//		valentime.NewDeviceInput(cfg.Scroll.WheelScale))
//	if err != nil {
//		log.Fatal(err)
//	}
//	log.Fatal(valentime.Run(exp, cfg.Window))
//
// # Components
//
// [ScrollEngine] owns the scroll state. [ScrollEngine.Start] binds input
// sources and returns a [Subscription]; closing it is the only way to
// unbind. The engine advances in [ScrollEngine.Tick], which the
// [Experience] calls once per frame.
//
// [SectionTracker] maps progress to a section with [MapToSection].
//
// [SceneGraph] builds the 3D content and converts progress to a camera
// depth. [Renderer] projects it with [Camera] and draws every point and
// segment additively.
//
// Sounds are played through a [CuePlayer]; [AudioService] is the
// Ebitengine audio implementation.
//
// Configuration comes from [DefaultConfig], optionally overlaid with YAML
// ([LoadConfig]) and VALENTIME_* environment variables ([ApplyEnv]).
//
// [Ebitengine]: https://ebitengine.org
package valentime
