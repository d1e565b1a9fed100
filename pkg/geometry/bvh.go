package geometry

import (
	"github.com/sun-wendy/6.4400-graphics/pkg/core"
)

// BVHNode represents a node in the Bounding Volume Hierarchy
type BVHNode struct {
	BoundingBox core.AABB
	Left        *BVHNode
	Right       *BVHNode
	Shapes      []Hittable // Multiple shapes for leaf nodes (nil for internal nodes)
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection
type BVH struct {
	Root *BVHNode
}

// Leaf threshold: if we have this many or fewer shapes, store them in a leaf node
const leafThreshold = 8

// NewBVH constructs a BVH from a slice of shapes
func NewBVH(shapes []Hittable) *BVH {
	if len(shapes) == 0 {
		return &BVH{}
	}

	// Work on a copy so the caller's slice order is left alone
	shapesCopy := make([]Hittable, len(shapes))
	copy(shapesCopy, shapes)

	return &BVH{Root: buildBVH(shapesCopy)}
}

// buildBVH recursively builds the BVH using median splits along the longest axis
func buildBVH(shapes []Hittable) *BVHNode {
	boundingBox := shapes[0].BoundingBox()
	for i := 1; i < len(shapes); i++ {
		boundingBox = boundingBox.Union(shapes[i].BoundingBox())
	}

	if len(shapes) <= leafThreshold {
		return &BVHNode{BoundingBox: boundingBox, Shapes: shapes}
	}

	axis := boundingBox.LongestAxis()
	minVal, maxVal := boundingBox.Min.Component(axis), boundingBox.Max.Component(axis)
	if maxVal <= minVal {
		return &BVHNode{BoundingBox: boundingBox, Shapes: shapes}
	}
	splitPos := (minVal + maxVal) * 0.5

	leftShapes, rightShapes := partitionShapes(shapes, axis, splitPos)

	// Ensure we don't create empty partitions
	if len(leftShapes) == 0 || len(rightShapes) == 0 {
		return &BVHNode{BoundingBox: boundingBox, Shapes: shapes}
	}

	return &BVHNode{
		BoundingBox: boundingBox,
		Left:        buildBVH(leftShapes),
		Right:       buildBVH(rightShapes),
	}
}

// partitionShapes splits shapes by bounding box center on the chosen axis
func partitionShapes(shapes []Hittable, axis int, splitPos float64) ([]Hittable, []Hittable) {
	var leftShapes, rightShapes []Hittable
	for _, shape := range shapes {
		if shape.BoundingBox().Center().Component(axis) < splitPos {
			leftShapes = append(leftShapes, shape)
		} else {
			rightShapes = append(rightShapes, shape)
		}
	}
	return leftShapes, rightShapes
}

// Intersect tests the ray against every shape whose boxes the ray crosses
func (bvh *BVH) Intersect(ray core.Ray, tMin float64, record HitRecord) (HitRecord, bool) {
	if bvh.Root == nil {
		return record, false
	}
	return bvh.intersectNode(bvh.Root, ray, tMin, record)
}

// intersectNode recursively folds the closest hit over a subtree
func (bvh *BVH) intersectNode(node *BVHNode, ray core.Ray, tMin float64, record HitRecord) (HitRecord, bool) {
	// Skip subtrees that cannot contain anything closer than the current hit
	if !node.BoundingBox.Hit(ray, tMin, record.Time) {
		return record, false
	}

	hitAnything := false
	if node.Shapes != nil {
		for _, shape := range node.Shapes {
			if improved, ok := shape.Intersect(ray, tMin, record); ok {
				record = improved
				hitAnything = true
			}
		}
		return record, hitAnything
	}

	for _, child := range []*BVHNode{node.Left, node.Right} {
		if child == nil {
			continue
		}
		if improved, ok := bvh.intersectNode(child, ray, tMin, record); ok {
			record = improved
			hitAnything = true
		}
	}
	return record, hitAnything
}

// BoundingBox returns the overall bounding box of the BVH
func (bvh *BVH) BoundingBox() core.AABB {
	if bvh.Root == nil {
		return core.AABB{}
	}
	return bvh.Root.BoundingBox
}

// Depth returns the depth of the deepest leaf
func (bvh *BVH) Depth() int {
	return nodeDepth(bvh.Root)
}

func nodeDepth(node *BVHNode) int {
	if node == nil {
		return 0
	}
	return 1 + max(nodeDepth(node.Left), nodeDepth(node.Right))
}
