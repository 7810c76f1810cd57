// Package blit is a deterministic 2D rendering backend.
//
// blit maps a fixed-point, Y-up world coordinate space onto a raster drawing
// surface while minimising redundant state changes and draw calls. It is the
// rendering plugin behind the drawing contract of an entity-component
// simulation framework: callers issue high-level "draw a shape/line/text"
// requests in world units, and blit turns them into an optimised sequence of
// low-level raster operations.
//
// Three cooperating subsystems form the core:
//
//   - CoordinateSystem converts between fixed-point world units (origin
//     centered, Y-up) and device pixels (origin top-left, Y-down), honouring
//     camera position/zoom, pixels-per-unit scale and device pixel ratio.
//   - StyleManager applies paint/stroke/font/composite state to the surface,
//     memoising the last-applied value per attribute so identical styles do
//     not cause redundant state writes.
//   - BatchManager buffers draw requests and executes them grouped by
//     (shape kind, style), applying each group's style once and merging line
//     segments into a single stroked path.
//
// A Renderer orchestrates the per-frame lifecycle around these subsystems.
//
// Basic usage:
//
//	surf, err := blit.NewSoftwareSurface(800, 600)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r, err := blit.NewRenderer(surf)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r.BeginFrame()
//	r.Clear(blit.RGB(0.1, 0.1, 0.12))
//	r.DrawCircle(geom.V(0, 0), geom.One, blit.ShapeStyle{FillColor: &blit.Red})
//	r.EndFrame()
//
// blit produces no log output by default. Call SetLogger to enable logging.
package blit
