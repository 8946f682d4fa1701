package physics

import (
	"fmt"
	"slices"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/firstperson/common"
	"github.com/milk9111/firstperson/ecs"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/spatial/r3"
)

// proxyMargin pads broadphase footprints so flat or thin shapes still have
// area in the XZ index.
const proxyMargin = 0.01

type body struct {
	name  string
	shape Shape
	layer LayerMask
	proxy *cp.Shape
}

// World holds static colliders and answers capsule and ray queries.
// Finite colliders are indexed by their XZ footprint in a Chipmunk space;
// planes are tested by every query.
type World struct {
	log zerolog.Logger

	registry ecs.Registry
	bodies   ecs.SparseSet[body]
	planes   []ecs.Entity
	space    *cp.Space
}

// NewWorld creates an empty collision world.
func NewWorld(log zerolog.Logger) *World {
	return &World{
		log:   log.With().Str("component", "physics").Logger(),
		space: cp.NewSpace(),
	}
}

// Add registers a collider and returns its handle.
func (w *World) Add(name string, shape Shape, layer LayerMask) (ecs.Entity, error) {
	shape, err := prepare(shape)
	if err != nil {
		return ecs.NoEntity, fmt.Errorf("physics: add %q: %w", name, err)
	}
	if layer == 0 {
		layer = LayerDefault
	}
	e := w.registry.Create()
	b := body{name: name, shape: shape, layer: layer}
	if _, _, finite := shape.Bounds(); finite {
		b.proxy = w.insertProxy(e, shape)
	} else {
		w.planes = append(w.planes, e)
	}
	w.bodies.Set(e, b)
	w.log.Debug().Str("name", name).Stringer("entity", e).Stringer("layer", layer).Msg("collider added")
	return e, nil
}

// Update replaces the shape of an existing finite collider.
func (w *World) Update(e ecs.Entity, shape Shape) error {
	b := w.bodies.Ptr(e)
	if b == nil {
		return fmt.Errorf("physics: update %s: %w", e, ErrUnknownCollider)
	}
	shape, err := prepare(shape)
	if err != nil {
		return fmt.Errorf("physics: update %s: %w", e, err)
	}
	if _, _, finite := shape.Bounds(); !finite || b.proxy == nil {
		return fmt.Errorf("physics: update %s: %w", e, ErrShapeKindChanged)
	}
	w.space.RemoveShape(b.proxy)
	b.shape = shape
	b.proxy = w.insertProxy(e, shape)
	return nil
}

// Remove unregisters a collider.
func (w *World) Remove(e ecs.Entity) bool {
	b, ok := w.bodies.Get(e)
	if !ok {
		return false
	}
	if b.proxy != nil {
		w.space.RemoveShape(b.proxy)
	} else {
		w.planes = slices.DeleteFunc(w.planes, func(p ecs.Entity) bool { return p == e })
	}
	w.bodies.Remove(e)
	w.registry.Destroy(e)
	return true
}

// Collider returns the shape and layer registered under e.
func (w *World) Collider(e ecs.Entity) (Shape, LayerMask, bool) {
	b, ok := w.bodies.Get(e)
	if !ok {
		return nil, 0, false
	}
	return b.shape, b.layer, true
}

// Name returns the collider's name.
func (w *World) Name(e ecs.Entity) string {
	b, _ := w.bodies.Get(e)
	return b.name
}

// Len returns the number of registered colliders.
func (w *World) Len() int {
	return w.bodies.Len()
}

// Each visits every collider.
func (w *World) Each(fn func(e ecs.Entity, name string, shape Shape, layer LayerMask)) {
	w.bodies.Each(func(e ecs.Entity, b *body) {
		fn(e, b.name, b.shape, b.layer)
	})
}

func (w *World) insertProxy(e ecs.Entity, shape Shape) *cp.Shape {
	lo, hi, _ := shape.Bounds()
	bb := cp.BB{L: lo.X - proxyMargin, B: lo.Z - proxyMargin, R: hi.X + proxyMargin, T: hi.Z + proxyMargin}
	proxy := cp.NewBox2(w.space.StaticBody, bb, 0)
	proxy.UserData = e
	w.space.AddShape(proxy)
	return proxy
}

// candidates returns, in handle order, the colliders whose bounds touch the
// region [lo, hi] and whose layer is in mask.
func (w *World) candidates(lo, hi r3.Vec, mask LayerMask, ignore ecs.Entity) []ecs.Entity {
	var out []ecs.Entity
	for _, e := range w.planes {
		if e == ignore {
			continue
		}
		if b, ok := w.bodies.Get(e); ok && mask.Has(b.layer) {
			out = append(out, e)
		}
	}

	var found []ecs.Entity
	bb := cp.BB{L: lo.X, B: lo.Z, R: hi.X, T: hi.Z}
	w.space.BBQuery(bb, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
		if e, ok := shape.UserData.(ecs.Entity); ok {
			found = append(found, e)
		}
	}, nil)
	for _, e := range found {
		if e == ignore {
			continue
		}
		b, ok := w.bodies.Get(e)
		if !ok || !mask.Has(b.layer) {
			continue
		}
		bmin, bmax, _ := b.shape.Bounds()
		if bmax.Y < lo.Y || bmin.Y > hi.Y {
			continue
		}
		out = append(out, e)
	}
	slices.Sort(out)
	return out
}

func prepare(shape Shape) (Shape, error) {
	switch s := shape.(type) {
	case nil:
		return nil, ErrInvalidShape
	case Plane:
		n, ok := common.SafeUnit(s.Normal)
		if !ok {
			return nil, fmt.Errorf("%w: plane normal is zero", ErrInvalidShape)
		}
		s.Offset /= r3.Norm(s.Normal)
		s.Normal = n
		return s, nil
	case Box:
		if s.Max.X < s.Min.X || s.Max.Y < s.Min.Y || s.Max.Z < s.Min.Z {
			return nil, fmt.Errorf("%w: box max below min", ErrInvalidShape)
		}
		return s, nil
	case Sphere:
		if s.Radius <= 0 {
			return nil, fmt.Errorf("%w: sphere radius must be positive", ErrInvalidShape)
		}
		return s, nil
	case Capsule:
		if s.Radius <= 0 {
			return nil, fmt.Errorf("%w: capsule radius must be positive", ErrInvalidShape)
		}
		return s, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrInvalidShape, shape)
}
