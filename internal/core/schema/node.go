package schema

import (
	"fmt"

	"github.com/berfenger/sen6xgen/internal/core/domain"
	"gopkg.in/yaml.v3"
)

// Pair is one key/value entry of a YAML mapping, in document order.
type Pair struct {
	Key   string
	Value *yaml.Node
}

// Parse decodes a YAML document and returns its root node.
// An empty document yields a nil node.
func Parse(source []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(source, &doc); err != nil {
		return nil, domain.NewFieldError(domain.ErrFormat, "", "invalid yaml: %s", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil
	}
	return Deref(doc.Content[0]), nil
}

// Deref follows alias nodes to their anchors.
func Deref(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func IsNull(n *yaml.Node) bool {
	n = Deref(n)
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

// Pairs returns the entries of a mapping node in document order.
func Pairs(path string, n *yaml.Node) ([]Pair, error) {
	n = Deref(n)
	if IsNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, domain.NewFieldError(domain.ErrFormat, path, "expected a mapping, got %s", kindName(n))
	}
	pairs := make([]Pair, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := Deref(n.Content[i])
		pairs = append(pairs, Pair{Key: k.Value, Value: Deref(n.Content[i+1])})
	}
	return pairs, nil
}

// Items returns a sequence as a list. A single mapping is treated as a one-item list.
func Items(path string, n *yaml.Node) ([]*yaml.Node, error) {
	n = Deref(n)
	switch {
	case IsNull(n):
		return nil, nil
	case n.Kind == yaml.SequenceNode:
		items := make([]*yaml.Node, 0, len(n.Content))
		for _, item := range n.Content {
			items = append(items, Deref(item))
		}
		return items, nil
	case n.Kind == yaml.MappingNode:
		return []*yaml.Node{n}, nil
	}
	return nil, domain.NewFieldError(domain.ErrFormat, path, "expected a list, got %s", kindName(n))
}

// Lookup returns the value of key in a mapping node, or nil.
func Lookup(n *yaml.Node, key string) *yaml.Node {
	n = Deref(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if Deref(n.Content[i]).Value == key {
			return Deref(n.Content[i+1])
		}
	}
	return nil
}

func Key(path string, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func Index(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

func kindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "list"
	case yaml.ScalarNode:
		return fmt.Sprintf("scalar %q", n.Value)
	}
	return "node"
}
