package csvjson

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// EncodeYAML writes records as a YAML sequence of mappings in key order.
// indent is the number of spaces per nesting level; 0 uses the encoder
// default.
func EncodeYAML(w io.Writer, records []*Record, indent int) error {
	node, err := yamlNode(records)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	if indent > 0 {
		enc.SetIndent(indent)
	}
	if err := enc.Encode(node); err != nil {
		return err
	}
	return enc.Close()
}

// MarshalYAML encodes the record as a YAML mapping in key order.
func (r *Record) MarshalYAML() (any, error) {
	return yamlNode(r)
}

func yamlNode(v any) (*yaml.Node, error) {
	switch x := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case *Record:
		if x == nil {
			return yamlNode(nil)
		}
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range x.keys {
			value, err := yamlNode(x.values[k])
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, value)
		}
		return n, nil
	case Record:
		return yamlNode(&x)
	case []*Record:
		items := make([]any, len(x))
		for i, r := range x {
			items[i] = r
		}
		return yamlNode(items)
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range x {
			child, err := yamlNode(item)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, child)
		}
		return n, nil
	case json.Number:
		tag := "!!float"
		if _, err := x.Int64(); err == nil {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: x.String()}, nil
	default:
		n := &yaml.Node{}
		if err := n.Encode(x); err != nil {
			return nil, err
		}
		return n, nil
	}
}

// TableToYAML converts text to a YAML sequence of mappings.
func (c *Converter) TableToYAML(w io.Writer, text string, indent int) error {
	records, err := c.TableToRecords(text)
	if err != nil {
		return err
	}
	return EncodeYAML(w, records, indent)
}
