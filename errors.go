package blit

import "errors"

// ErrNoContext is returned when a drawing context cannot be acquired from a
// surface at construction time. A renderer cannot be built without one.
var ErrNoContext = errors.New("no 2D drawing context available")

// ErrNilSurface is returned by NewRenderer when no surface is supplied.
var ErrNilSurface = errors.New("nil surface")
