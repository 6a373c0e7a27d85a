package manifest

import (
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// listDocument is either a bare sequence of paths or a mapping with src and
// an optional dest.
type listDocument struct {
	Src  []string
	Dest string
}

// UnmarshalYAML accepts both document shapes. An empty document is an empty list.
func (d *listDocument) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		return node.Decode(&d.Src)
	case yaml.MappingNode:
		var m struct {
			Src  []string `yaml:"src"`
			Dest string   `yaml:"dest"`
		}
		if err := node.Decode(&m); err != nil {
			return err
		}
		d.Src, d.Dest = m.Src, m.Dest
		return nil
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil
		}
	}
	return zerr.With(zerr.New("expected a list of paths or a mapping with src"), "line", node.Line)
}
