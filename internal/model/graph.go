package model

import (
	"fmt"
	"reflect"
)

// NativeNode is the narrow view of a resolver-produced dependency tree node.
type NativeNode interface {
	Coordinate() Coordinate
	Children() []NativeNode
}

// GraphNode is a node of the canonical dependency tree. Each node exclusively
// owns its children; the same coordinate may appear at several positions.
//
// Example:
//
//	app@1.0 -> children: [core@2.3 -> children: [util@1.1]], [junit@4.12]
type GraphNode struct {
	Coordinate Coordinate   `json:"coordinate"`
	Children   []*GraphNode `json:"children,omitempty"`
}

// workItem pairs a native node with the canonical node it is copied into.
type workItem struct {
	native NativeNode
	node   *GraphNode
}

// Normalize converts a native tree into a canonical GraphNode tree with the
// same shape, order and coordinates. Nothing is deduplicated.
//
// The traversal uses an explicit stack instead of recursion, so pathological
// transitive chains cannot overflow the goroutine stack. Nil children are
// skipped.
func Normalize(root NativeNode) (*GraphNode, error) {
	if isNil(root) {
		return nil, fmt.Errorf("normalize dependency tree: nil root: %w", ErrInvalidArgument)
	}

	out := &GraphNode{Coordinate: root.Coordinate()}
	stack := []workItem{{native: root, node: out}}

	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		children := item.native.Children()
		if len(children) == 0 {
			continue
		}
		item.node.Children = make([]*GraphNode, 0, len(children))
		for _, c := range children {
			if isNil(c) {
				continue
			}
			child := &GraphNode{Coordinate: c.Coordinate()}
			item.node.Children = append(item.node.Children, child)
			stack = append(stack, workItem{native: c, node: child})
		}
	}

	return out, nil
}

// isNil reports whether n is nil, including a nil pointer held in the
// interface.
func isNil(n NativeNode) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// Walk visits the tree depth-first in pre-order. fn receives each node and
// its depth (the root is depth 0). Returning false skips the node's subtree.
func (n *GraphNode) Walk(fn func(node *GraphNode, depth int) bool) {
	if n == nil {
		return
	}
	type frame struct {
		node  *GraphNode
		depth int
	}
	stack := []frame{{node: n}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(f.node, f.depth) {
			continue
		}
		// Push in reverse so the first child is visited first.
		for i := len(f.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: f.node.Children[i], depth: f.depth + 1})
		}
	}
}

// Count returns the number of nodes in the tree.
func (n *GraphNode) Count() int {
	count := 0
	n.Walk(func(*GraphNode, int) bool {
		count++
		return true
	})
	return count
}
