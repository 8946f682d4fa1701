package physics

import (
	"fmt"
	"strings"
)

// LayerMask selects which colliders a query considers. A collider belongs to
// exactly one layer; queries accept any combination.
type LayerMask uint32

const (
	LayerDefault LayerMask = 1 << iota
	LayerGrapple
	LayerPlayer
)

// MaskAll matches every layer.
const MaskAll LayerMask = ^LayerMask(0)

var layerNames = map[string]LayerMask{
	"default": LayerDefault,
	"grapple": LayerGrapple,
	"player":  LayerPlayer,
}

// Has reports whether m includes any bit of layer.
func (m LayerMask) Has(layer LayerMask) bool {
	return m&layer != 0
}

func (m LayerMask) String() string {
	if m == MaskAll {
		return "all"
	}
	var parts []string
	for _, name := range []string{"default", "grapple", "player"} {
		if m.Has(layerNames[name]) {
			parts = append(parts, name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// ParseLayer resolves a layer name. The empty string means LayerDefault.
func ParseLayer(name string) (LayerMask, error) {
	if name == "" {
		return LayerDefault, nil
	}
	layer, ok := layerNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w %q", ErrUnknownLayer, name)
	}
	return layer, nil
}

// ParseMask resolves a list of layer names into a mask. "all" matches
// every layer.
func ParseMask(names []string) (LayerMask, error) {
	var mask LayerMask
	for _, name := range names {
		if strings.EqualFold(name, "all") {
			return MaskAll, nil
		}
		layer, err := ParseLayer(name)
		if err != nil {
			return 0, err
		}
		mask |= layer
	}
	return mask, nil
}
