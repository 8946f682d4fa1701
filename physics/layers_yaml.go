package physics

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML accepts a single layer name or a list of names.
func (m *LayerMask) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		mask, err := ParseMask([]string{value.Value})
		if err != nil {
			return err
		}
		*m = mask
		return nil
	case yaml.SequenceNode:
		var names []string
		if err := value.Decode(&names); err != nil {
			return err
		}
		mask, err := ParseMask(names)
		if err != nil {
			return err
		}
		*m = mask
		return nil
	}
	return fmt.Errorf("physics: line %d: layer mask must be a name or a list of names", value.Line)
}

func (m LayerMask) MarshalYAML() (interface{}, error) {
	if m == MaskAll {
		return "all", nil
	}
	var names []string
	for _, name := range []string{"default", "grapple", "player"} {
		if m.Has(layerNames[name]) {
			names = append(names, name)
		}
	}
	return names, nil
}
