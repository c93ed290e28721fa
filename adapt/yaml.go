package adapt

import (
	"bytes"
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	toolform "github.com/toolform/toolform"
)

// YAMLDocument builds a schema tree from a YAML schema document. The YAML
// node tree is walked directly because mapping nodes keep their key order,
// which a round trip through map[string]any would destroy; the result feeds
// the same import path as JSONDocument.
func YAMLDocument(data []byte, opts ...Option) (*toolform.SchemaNode, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &toolform.BuildError{Msg: "adapt: invalid YAML document", Cause: err}
	}
	node := &doc
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil, toolform.NewBuildError("adapt: empty YAML document")
		}
		node = doc.Content[0]
	}
	var b bytes.Buffer
	if err := yamlToJSON(&b, node); err != nil {
		return nil, &toolform.BuildError{Msg: "adapt: invalid YAML document", Cause: err}
	}
	return JSONDocument(b.Bytes(), opts...)
}

func yamlToJSON(b *bytes.Buffer, n *yaml.Node) error {
	switch n.Kind {
	case yaml.MappingNode:
		b.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				b.WriteByte(',')
			}
			key, err := json.Marshal(n.Content[i].Value)
			if err != nil {
				return err
			}
			b.Write(key)
			b.WriteByte(':')
			if err := yamlToJSON(b, n.Content[i+1]); err != nil {
				return err
			}
		}
		b.WriteByte('}')
	case yaml.SequenceNode:
		b.WriteByte('[')
		for i, c := range n.Content {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := yamlToJSON(b, c); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!null":
			b.WriteString("null")
		case "!!bool":
			v, err := strconv.ParseBool(n.Value)
			if err != nil {
				return err
			}
			b.WriteString(strconv.FormatBool(v))
		case "!!int", "!!float":
			b.WriteString(n.Value)
		default:
			s, err := json.Marshal(n.Value)
			if err != nil {
				return err
			}
			b.Write(s)
		}
	case yaml.AliasNode:
		return yamlToJSON(b, n.Alias)
	default:
		return fmt.Errorf("unsupported YAML node kind %d", n.Kind)
	}
	return nil
}
