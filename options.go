package blit

// Option configures a Renderer during creation.
// Use functional options to customize Renderer behavior.
//
// Example:
//
//	// Defaults: 100 px/unit, batching, style caching and high-DPI enabled.
//	r, err := blit.NewRenderer(surf)
//
//	// Custom scale, batching off:
//	r, err := blit.NewRenderer(surf,
//	    blit.WithPixelsPerUnit(32),
//	    blit.WithBatchRendering(false))
type Option func(*rendererOptions)

// rendererOptions holds optional configuration for Renderer creation.
type rendererOptions struct {
	pixelsPerUnit    float64
	devicePixelRatio float64
	highDPI          bool
	styleCaching     bool
	batchRendering   bool
	maxBatchSize     int
	antialiasing     bool
	background       *RGBA
}

// defaultRendererOptions returns the default renderer options.
func defaultRendererOptions() rendererOptions {
	return rendererOptions{
		pixelsPerUnit:    100,
		devicePixelRatio: 1,
		highDPI:          true,
		styleCaching:     true,
		batchRendering:   true,
		maxBatchSize:     1000,
		antialiasing:     true,
	}
}

// WithPixelsPerUnit sets the world-to-pixel scale at zoom 1 (default 100).
func WithPixelsPerUnit(ppu float64) Option {
	return func(o *rendererOptions) {
		if ppu > 0 {
			o.pixelsPerUnit = ppu
		}
	}
}

// WithDevicePixelRatio sets the backing-store to display-pixel ratio
// (default 1). Values above 1 only take effect when high-DPI scaling is
// enabled.
func WithDevicePixelRatio(ratio float64) Option {
	return func(o *rendererOptions) {
		if ratio > 0 {
			o.devicePixelRatio = ratio
		}
	}
}

// WithHighDPI enables or disables high-DPI backing-store scaling
// (default enabled).
func WithHighDPI(enabled bool) Option {
	return func(o *rendererOptions) {
		o.highDPI = enabled
	}
}

// WithStyleCaching enables or disables memoisation of applied style state
// (default enabled). With caching disabled every style application writes
// through to the surface.
func WithStyleCaching(enabled bool) Option {
	return func(o *rendererOptions) {
		o.styleCaching = enabled
	}
}

// WithBatchRendering enables or disables draw-call batching
// (default enabled). With batching disabled every drawing call executes
// immediately.
func WithBatchRendering(enabled bool) Option {
	return func(o *rendererOptions) {
		o.batchRendering = enabled
	}
}

// WithMaxBatchSize sets the pending-command limit that triggers an
// auto-flush (default 1000).
func WithMaxBatchSize(n int) Option {
	return func(o *rendererOptions) {
		if n > 0 {
			o.maxBatchSize = n
		}
	}
}

// WithAntialiasing enables or disables anti-aliased rasterisation on
// surfaces that support toggling it (default enabled).
func WithAntialiasing(enabled bool) Option {
	return func(o *rendererOptions) {
		o.antialiasing = enabled
	}
}

// WithBackgroundColor sets the color used to clear the surface at the start
// of each frame. Without it, frames start on the previous contents.
func WithBackgroundColor(c RGBA) Option {
	return func(o *rendererOptions) {
		o.background = &c
	}
}
