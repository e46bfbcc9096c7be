package utils

import "gopkg.in/yaml.v3"

// MappingValue returns the value node for a key in a mapping node, or nil if
// the key is absent or the node is not a mapping.
func MappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// LookupPath walks a mapping path and returns the final value node, or nil as
// soon as a segment is absent.
func LookupPath(node *yaml.Node, path ...string) *yaml.Node {
	for _, key := range path {
		node = MappingValue(node, key)
		if node == nil {
			return nil
		}
	}
	return node
}

// ReplaceMappingValue replaces the value node of an existing key in a mapping
// node. It returns false when the key is absent, it never inserts.
func ReplaceMappingValue(node *yaml.Node, key string, value *yaml.Node) bool {
	if node == nil || node.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			node.Content[i+1] = value
			return true
		}
	}
	return false
}

// SetScalar turns a node into a plain string scalar, dropping any previous
// content or style.
func SetScalar(node *yaml.Node, value string) {
	node.Kind = yaml.ScalarNode
	node.Tag = "!!str"
	node.Value = value
	node.Style = 0
	node.Content = nil
	node.Anchor = ""
	node.Alias = nil
}

// StringNode builds a new string scalar node.
func StringNode(value string) *yaml.Node {
	node := &yaml.Node{}
	SetScalar(node, value)
	return node
}

// CloneNode deep-copies a yaml node so a rewrite never mutates the parsed
// document.
func CloneNode(node *yaml.Node) *yaml.Node {
	if node == nil {
		return nil
	}
	clone := *node
	clone.Alias = nil
	if len(node.Content) > 0 {
		clone.Content = make([]*yaml.Node, len(node.Content))
		for i, child := range node.Content {
			clone.Content[i] = CloneNode(child)
		}
	}
	return &clone
}

// IsNullNode reports whether a node is a yaml null (or an unset node).
func IsNullNode(node *yaml.Node) bool {
	if node == nil || node.Kind == 0 {
		return true
	}
	return node.Kind == yaml.ScalarNode && node.Tag == "!!null"
}
