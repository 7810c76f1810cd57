package blit

import "time"

// Statistics are per-frame rendering counters. All counters reset at
// BeginFrame and are finalized at EndFrame; they are plain in-process state
// with no atomicity requirements, since rendering is single-threaded.
type Statistics struct {
	// DrawCalls counts drawing entry points invoked on the renderer.
	DrawCalls int

	// BatchedDrawCalls counts executed batch groups (one per group, not
	// per command).
	BatchedDrawCalls int

	// StyleChanges counts raster state writes performed by the style
	// manager (cache misses, or every write when caching is disabled).
	StyleChanges int

	// TransformChanges counts pushed and popped local transforms.
	TransformChanges int

	// TextureBinds counts texture draw operations.
	TextureBinds int

	// PixelsDrawn is canvas width x height, recomputed at EndFrame.
	PixelsDrawn int

	// FrameTime is the wall time between BeginFrame and EndFrame.
	FrameTime time.Duration
}
