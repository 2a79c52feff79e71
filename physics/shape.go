package physics

import "github.com/milk9111/rube/common"

// Shape is one of Circle, Polygon, Edge or Chain. Coordinates are local to
// the owning body.
type Shape interface {
	ShapeName() string
}

type Circle struct {
	Center common.Vec2
	Radius float64
}

type Polygon struct {
	Vertices []common.Vec2
}

// Edge is a single segment with optional ghost vertices for smooth collision.
type Edge struct {
	Vertex1, Vertex2 common.Vec2
	HasVertex0       bool
	HasVertex3       bool
	Vertex0          common.Vec2
	Vertex3          common.Vec2
}

type Chain struct {
	Vertices      []common.Vec2
	Loop          bool
	HasPrevVertex bool
	HasNextVertex bool
	PrevVertex    common.Vec2
	NextVertex    common.Vec2
}

func (Circle) ShapeName() string  { return "circle" }
func (Polygon) ShapeName() string { return "polygon" }
func (Edge) ShapeName() string    { return "edge" }
func (Chain) ShapeName() string   { return "chain" }

// MaxPolygonVertices matches the Box2D polygon limit RUBE exports against.
const MaxPolygonVertices = 8
