package physics

import "errors"

var (
	ErrInvalidShape     = errors.New("physics: invalid shape")
	ErrUnknownCollider  = errors.New("physics: unknown collider")
	ErrShapeKindChanged = errors.New("physics: collider cannot change between bounded and unbounded")
	ErrUnknownLayer     = errors.New("physics: unknown layer")
)
