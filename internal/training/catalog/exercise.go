package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Base is the starting load of an exercise: either a numeric weight in lbs
// (0 meaning bodyweight) or a gear tag such as "band" or "cables".
type Base struct {
	Weight float64
	Tag    string
}

func Weight(lbs float64) Base {
	return Base{Weight: lbs}
}

func Gear(tag string) Base {
	return Base{Tag: tag}
}

func (b Base) IsGear() bool {
	return b.Tag != ""
}

func (b Base) String() string {
	if b.IsGear() {
		return b.Tag
	}
	return strconv.FormatFloat(b.Weight, 'f', -1, 64)
}

func (b Base) MarshalJSON() ([]byte, error) {
	if b.IsGear() {
		return json.Marshal(b.Tag)
	}
	return json.Marshal(b.Weight)
}

func (b *Base) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err == nil {
		*b = Gear(tag)
		return nil
	}
	var w float64
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("base must be a number or a gear tag: %w", err)
	}
	*b = Weight(w)
	return nil
}

func (b *Base) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: base must be a scalar", node.Line)
	}
	if w, err := strconv.ParseFloat(node.Value, 64); err == nil {
		*b = Weight(w)
		return nil
	}
	tag := strings.TrimSpace(node.Value)
	if tag == "" {
		return fmt.Errorf("line %d: empty gear tag", node.Line)
	}
	*b = Gear(tag)
	return nil
}

type Exercise struct {
	Name string `json:"name" yaml:"name"`
	Base Base   `json:"base" yaml:"base"`
}
