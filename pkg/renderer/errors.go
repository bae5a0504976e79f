package renderer

import "errors"

var (
	ErrInvalidOptions = errors.New("renderer: invalid options")
	ErrNoScene        = errors.New("renderer: no scene defined")
	ErrNoCamera       = errors.New("renderer: no camera defined")
	ErrWorkerPanic    = errors.New("renderer: worker panicked")
)
