package chipmunk

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rube/common"
	"github.com/milk9111/rube/physics"
)

// Fixture groups the Chipmunk shapes one RUBE fixture expands to. Chains
// become one segment per edge.
type Fixture struct {
	body   *Body
	def    physics.FixtureDef
	shapes []*cp.Shape
}

func (f *Fixture) CPShapes() []*cp.Shape  { return f.shapes }
func (f *Fixture) Body() physics.Body     { return f.body }
func (f *Fixture) Shape() physics.Shape   { return f.def.Shape }
func (f *Fixture) Density() float64       { return f.def.Density }
func (f *Fixture) Friction() float64      { return f.def.Friction }
func (f *Fixture) Restitution() float64   { return f.def.Restitution }
func (f *Fixture) Sensor() bool           { return f.def.Sensor }
func (f *Fixture) Filter() physics.Filter { return f.def.Filter }

func (b *Body) CreateFixture(def physics.FixtureDef) (physics.Fixture, error) {
	shapes, err := b.newShapes(def.Shape)
	if err != nil {
		return nil, err
	}

	filter := shapeFilter(def.Filter)
	if !b.def.Active {
		filter = cp.NewShapeFilter(0, 0, 0)
	}

	err = guard("create fixture", func() {
		for _, shape := range shapes {
			shape.SetFriction(def.Friction)
			shape.SetElasticity(def.Restitution)
			shape.SetSensor(def.Sensor)
			shape.SetFilter(filter)
			b.world.space.AddShape(shape)
			if def.Density > 0 {
				shape.SetDensity(def.Density)
			}
		}
		b.applyFixedRotation()
	})
	if err != nil {
		return nil, err
	}

	f := &Fixture{body: b, def: def, shapes: shapes}
	for _, shape := range shapes {
		shape.UserData = f
	}
	b.fixtures = append(b.fixtures, f)
	return f, nil
}

func (b *Body) newShapes(s physics.Shape) ([]*cp.Shape, error) {
	switch t := s.(type) {
	case physics.Circle:
		if t.Radius <= 0 {
			return nil, fmt.Errorf("chipmunk: circle radius %v must be positive", t.Radius)
		}
		return []*cp.Shape{cp.NewCircle(b.body, t.Radius, vec(t.Center))}, nil
	case physics.Polygon:
		n := len(t.Vertices)
		if n < 3 || n > physics.MaxPolygonVertices {
			return nil, fmt.Errorf("chipmunk: polygon has %d vertices, want 3..%d", n, physics.MaxPolygonVertices)
		}
		return []*cp.Shape{cp.NewPolyShapeRaw(b.body, n, vecs(t.Vertices), 0)}, nil
	case physics.Edge:
		return []*cp.Shape{cp.NewSegment(b.body, vec(t.Vertex1), vec(t.Vertex2), 0)}, nil
	case physics.Chain:
		n := len(t.Vertices)
		if n < 2 || (t.Loop && n < 3) {
			return nil, fmt.Errorf("chipmunk: chain has %d vertices", n)
		}
		edges := n - 1
		if t.Loop {
			edges = n
		}
		shapes := make([]*cp.Shape, 0, edges)
		for i := 0; i < edges; i++ {
			a := t.Vertices[i]
			c := t.Vertices[(i+1)%n]
			shapes = append(shapes, cp.NewSegment(b.body, vec(a), vec(c), 0))
		}
		return shapes, nil
	default:
		return nil, fmt.Errorf("chipmunk: shape %T: %w", s, physics.ErrUnsupported)
	}
}

// shapeFilter maps Box2D filtering onto Chipmunk's. A negative Box2D group
// never collides with itself, which is exactly a Chipmunk group; positive
// groups have no Chipmunk equivalent and fall back to category/mask only.
func shapeFilter(f physics.Filter) cp.ShapeFilter {
	var group uint
	if f.GroupIndex < 0 {
		group = uint(-int(f.GroupIndex))
	}
	return cp.NewShapeFilter(group, uint(f.CategoryBits), uint(f.MaskBits))
}

func vecs(in []common.Vec2) []cp.Vector {
	out := make([]cp.Vector, len(in))
	for i, v := range in {
		out[i] = vec(v)
	}
	return out
}
