// Package starfield renders seeded "stars": particle fields clipped to a
// procedurally generated silhouette, regenerated on request over HTTP.
//
// # Quick start
//
// Build a [Field] from a [Config], start the regeneration endpoint, then
// drive the field from a window with [Run] or headless with [Field.Run]:
//
//	cfg := starfield.DefaultConfig()
//	field, err := starfield.NewField(cfg, nil) // nil: cfg.Blob generator
//	if err != nil {
//		log.Fatal(err)
//	}
//	srv := starfield.NewServer(cfg.Listen, starfield.NewHandler(field.Dispatcher()))
//	if err := srv.Start(); err != nil {
//		log.Fatal(err)
//	}
//	defer srv.Shutdown(context.Background())
//	starfield.Run(ctx, field, starfield.RunConfig{Title: "Stars", Width: 800, Height: 600})
//
// # Seeds
//
// A seed determines both a star's hue ([HueFor]) and, through the same
// [Derive] hash, its boundary shape ([BlobGenerator]). Derive uses integer
// mixing only, so a seed means the same star on every platform.
//
// # Containment
//
// Each star owns an immutable [BoundaryMask]. Every [Containment.Interval]
// ticks, particles whose mask cell is blocked get their remaining lifetime set
// to zero and are retired by the emitter on its next update.
//
// # Regeneration
//
// A request moves a star from [StateIdle] to [StateFading]: emission stops and
// live particles age out. After the fade the star enters [StateRebuilding],
// builds a new mask and ramp, publishes them by pointer swap, and resumes
// emission. Requests arriving mid-sequence follow a last-wins policy, so at
// most one sequence per star is ever in flight.
//
// # Threading
//
// HTTP handlers only call [Dispatcher.Submit], which pushes onto a
// [RequestQueue]. The loop goroutine drains the queue once per tick in
// [Field.Update]; nothing else touches star state.
//
// # ECS integration
//
// Lifecycle events can be forwarded to an [EventSink]; starfield/ecs provides
// a [Donburi] adapter.
//
// [Donburi]: https://github.com/yohamta/donburi
package starfield
