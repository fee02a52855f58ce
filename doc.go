// Package scratchoff implements a scratch-off reveal surface and a simple
// card carousel for [Ebitengine] games and tools.
//
// The package itself never touches the GPU. A [Surface] owns a CPU canvas
// (see [Canvas]) and turns pointer strokes into erased pixels; a host copies
// the dirty canvas into a texture once per frame. The ebitenhost
// sub-package is that host, plus the carousel strip, buttons, and input
// wiring. The ecs module forwards component events into a donburi world.
//
// # Surface
//
//	cfg, _ := scratchoff.LoadConfig("")
//	s := scratchoff.NewSurface(cfg.Surface,
//		scratchoff.WithTexture(scratchoff.LoadTexture(ctx, cfg.Surface.Texture)))
//	s.Resize(scratchoff.Rect{Width: 320, Height: 180})
//	s.OnReveal(func(e scratchoff.Event) { ... })
//
//	// every frame
//	s.Update()
//
// Pointer input goes through [Surface.PointerDown], [Surface.PointerMove],
// [Surface.PointerUp] and [Surface.PointerCancel]. Only the pointer that
// started a stroke can continue it. The surface samples its erased fraction
// at most once per check interval and reveals itself when the fraction
// reaches the threshold; [Surface.ManualReveal] skips the check. After a
// reveal the overlay fades out and stops accepting input.
//
// The overlay is the configured texture when it has loaded and a gradient
// otherwise. Loading never blocks: the gradient is drawn first and replaced
// once the [Texture] completes.
//
// # Carousel
//
// [Carousel] tracks a wrapping index over a fixed number of equally sized
// items and tells a [Scroller] where to go. [SmoothScroller] animates the
// offset with an ease curve.
//
//	sc := &scratchoff.SmoothScroller{Duration: 400 * time.Millisecond}
//	c, _ := scratchoff.NewCarousel(5, 200, 16, sc)
//	c.Next()          // index 1, sc heads to 216
//	c.HandleKey(scratchoff.KeyLeft)
//
// # Timing
//
// Nothing in this package starts goroutines except [LoadTexture]. Throttles,
// debounces and fades are deadlines checked from Update against a [Clock],
// so tests can drive them with a fake clock.
//
// [Ebitengine]: https://ebitengine.org
package scratchoff
