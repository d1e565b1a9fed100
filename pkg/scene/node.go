package scene

import (
	"github.com/sun-wendy/6.4400-graphics/pkg/core"
	"github.com/sun-wendy/6.4400-graphics/pkg/geometry"
	"github.com/sun-wendy/6.4400-graphics/pkg/lights"
	"github.com/sun-wendy/6.4400-graphics/pkg/material"
)

// Node is an element of the scene hierarchy. A node may carry geometry with a
// material, a light, both or neither; its local transform is relative to its parent.
type Node struct {
	Name     string
	Local    core.Transform
	Hittable geometry.Hittable  // Geometry in the node's local frame (optional)
	Material *material.Material // Surface material, nil means the default material
	Light    lights.Light       // Light positioned at the node origin (optional)

	parent   *Node
	children []*Node
}

// NewNode creates a node with the identity transform
func NewNode(name string) *Node {
	return &Node{Name: name, Local: core.Identity()}
}

// NewShapeNode creates a node carrying geometry and a material
func NewShapeNode(name string, hittable geometry.Hittable, mat *material.Material) *Node {
	n := NewNode(name)
	n.Hittable = hittable
	n.Material = mat
	return n
}

// NewLightNode creates a node carrying a light at position
func NewLightNode(name string, light lights.Light, position core.Vec3) *Node {
	n := NewNode(name)
	n.Light = light
	n.Local = core.Translate(position)
	return n
}

// AddChild attaches child to n, detaching it from any previous parent, and returns child
func (n *Node) AddChild(child *Node) *Node {
	if child.parent != nil {
		child.parent.removeChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	return child
}

func (n *Node) removeChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

// Children returns the direct children in insertion order
func (n *Node) Children() []*Node {
	return n.children
}

// Parent returns the parent node, nil for a root
func (n *Node) Parent() *Node {
	return n.parent
}

// WorldTransform composes the local transforms from the root down to n
func (n *Node) WorldTransform() core.Transform {
	world := n.Local
	for p := n.parent; p != nil; p = p.parent {
		world = p.Local.Mul(world)
	}
	return world
}

// Walk visits n and its descendants depth-first, parents before children.
// It stops at the first error returned by fn.
func (n *Node) Walk(fn func(*Node) error) error {
	if err := fn(n); err != nil {
		return err
	}
	for _, child := range n.children {
		if err := child.Walk(fn); err != nil {
			return err
		}
	}
	return nil
}

// Find returns the first node named name in depth-first order
func (n *Node) Find(name string) *Node {
	var found *Node
	_ = n.Walk(func(node *Node) error {
		if found == nil && node.Name == name {
			found = node
		}
		return nil
	})
	return found
}
